//go:build !sysalloc

package heap

import (
	"fmt"

	"github.com/joshuapare/regionkit/memory"
	"github.com/joshuapare/regionkit/region"
)

var (
	backing [BackingSize]byte

	def   *region.Region
	alloc *memory.RegionAllocator
)

func init() {
	r, err := region.New(backing[:], nil)
	if err != nil {
		panic(fmt.Sprintf("heap: default region: %v", err))
	}
	def = r
	alloc = memory.NewRegionAllocator(r)
}

// Malloc returns size bytes from the default region, or nil when it is exhausted.
func Malloc(size int) []byte { return alloc.Allocate(size) }

// Calloc is Malloc with the returned bytes zeroed.
func Calloc(size int) []byte {
	b := alloc.Allocate(size)
	clear(b[:cap(b)])
	return b
}

// Realloc resizes b to size bytes. It returns nil, leaving b intact, when
// the region cannot grow the allocation.
func Realloc(b []byte, size int) []byte { return alloc.Reallocate(size, b) }

// Free releases b. Slices not obtained from this package are ignored.
func Free(b []byte) { alloc.Free(b) }

// Reset invalidates every outstanding allocation at once.
func Reset() { def.Reset() }

// Available reports how many bytes bump allocation can still serve.
func Available() int { return def.Available() }

// Allocator returns the default allocator for use with memory.Buffer and
// other Allocator consumers.
func Allocator() memory.Allocator { return alloc }

// Region returns the default region. It does not exist in sysalloc builds.
func Region() *region.Region { return def }
