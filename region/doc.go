// Package region implements a fixed-region allocator: it hands out, tracks and
// reclaims byte ranges inside one caller-owned, contiguous byte slice without
// touching the Go heap after construction.
//
// # Overview
//
// Every allocation is preceded by an 8-byte header (see internal/format)
// recording the payload size and two flags, HasHeader and IsAllocated.
// Headers are only ever created by bumping a high-water mark; freeing an
// allocation clears IsAllocated and leaves the header in place so a later
// allocation can reuse the slot.
//
//	mem:  [hdr|payload][hdr|payload ][hdr|p]..........
//	       ^0          ^h1           ^h2    ^next      ^len(mem)
//
// # Handles
//
// Allocations are identified by a Handle, the offset of the payload from
// the start of the region. Handle 0 (Nil) is never valid because the first
// payload always starts after the first header.
//
//	r, err := region.New(make([]byte, 1024), nil)
//	if err != nil {
//	    return err
//	}
//	h, payload, err := r.Allocate(100)
//	if err != nil {
//	    return err // region.ErrNoSpace when exhausted
//	}
//	copy(payload, data)
//	err = r.Free(h)
//
// # Allocation policy
//
// Allocate first scans existing headers in creation order and takes the
// first free slot whose recorded size is large enough (first fit). Slots
// are never split, so a reused slot may be larger than the request; the
// returned slice has the requested length and the slot size as capacity.
// When no slot fits, a new header is bump-allocated. Adjacent free slots
// are never coalesced; only Reset reclaims fragmented space.
//
// # Errors
//
// Failures are returned rather than swallowed: ErrNoSpace for exhaustion,
// ErrBadHandle for handles that do not name a header, and ErrCorrupt when
// the header chain is damaged. Freeing an already free handle is a no-op.
//
// # Thread Safety
//
// A Region is not safe for concurrent use. Callers must synchronize access
// externally; even read-only queries walk the header chain.
//
// # Related Packages
//
//   - github.com/joshuapare/regionkit/region/dirty: tracks modified byte ranges for flushing
//   - github.com/joshuapare/regionkit/region/mapped: regions over memory-mapped files
//   - github.com/joshuapare/regionkit/memory: slice-oriented allocator facade and growable buffers
//   - github.com/joshuapare/regionkit/heap: process-wide default region
package region
