//go:build sysalloc

package heap

import (
	"math"

	"github.com/joshuapare/regionkit/memory"
)

// Malloc returns size bytes from the Go heap.
func Malloc(size int) []byte { return memory.DefaultAllocator.Allocate(size) }

// Calloc is Malloc; the Go heap always returns zeroed memory.
func Calloc(size int) []byte { return memory.DefaultAllocator.Allocate(size) }

// Realloc resizes b to size bytes.
func Realloc(b []byte, size int) []byte { return memory.DefaultAllocator.Reallocate(size, b) }

// Free is a no-op; the garbage collector reclaims unreachable slices.
func Free(b []byte) { memory.DefaultAllocator.Free(b) }

// Reset is a no-op.
func Reset() {}

// Available is unbounded.
func Available() int { return math.MaxInt }

// Allocator returns the Go heap allocator.
func Allocator() memory.Allocator { return memory.DefaultAllocator }
