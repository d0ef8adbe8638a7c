package memory

import (
	"unsafe"

	"github.com/joshuapare/regionkit/region"
)

// RegionAllocator adapts a *region.Region to the Allocator interface.
//
// Slices are translated back to handles by comparing their data pointer
// against the region's backing memory, so only slices whose first element is
// the first byte of a payload (as returned by Allocate or Reallocate) can be
// freed or resized. Anything else, including slices from another region or
// the Go heap, is ignored by Free and rejected by Reallocate.
//
// RegionAllocator is not safe for concurrent use.
type RegionAllocator struct {
	r *region.Region
}

func NewRegionAllocator(r *region.Region) *RegionAllocator {
	return &RegionAllocator{r: r}
}

// Region returns the underlying region.
func (a *RegionAllocator) Region() *region.Region { return a.r }

func (a *RegionAllocator) Allocate(size int) []byte {
	_, b, err := a.r.Allocate(size)
	if err != nil {
		return nil
	}
	return b
}

// Reallocate resizes b. A slice with no backing array allocates fresh.
func (a *RegionAllocator) Reallocate(size int, b []byte) []byte {
	if cap(b) == 0 {
		return a.Allocate(size)
	}
	h, ok := a.Locate(b)
	if !ok {
		return nil
	}
	_, nb, err := a.r.Reallocate(h, size)
	if err != nil {
		return nil
	}
	return nb
}

func (a *RegionAllocator) Free(b []byte) {
	if h, ok := a.Locate(b); ok {
		_ = a.r.Free(h)
	}
}

// Locate returns the handle whose payload starts at b's first element, if b
// points into the region's payload range. It does not check that a header
// actually precedes that address; Free and Reallocate do.
func (a *RegionAllocator) Locate(b []byte) (region.Handle, bool) {
	base := a.r.Base()
	if cap(b) == 0 || len(base) == 0 {
		return region.Nil, false
	}
	start := uintptr(unsafe.Pointer(unsafe.SliceData(base)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if p < start || p-start >= uintptr(len(base)) {
		return region.Nil, false
	}
	off, ok := a.r.Position(region.Handle(p - start))
	return region.Handle(off), ok
}

var _ Allocator = (*RegionAllocator)(nil)
