package region

import (
	"fmt"

	"github.com/joshuapare/regionkit/internal/format"
)

// Walk calls fn for every header in creation order. Walking stops at the
// first error returned by fn, which Walk returns unchanged, or at the first
// header that cannot be decoded, reported as ErrCorrupt.
func (r *Region) Walk(fn func(hdr format.Header) error) error {
	off := 0
	for i := 0; i < r.headers; i++ {
		hdr, err := r.headerAt(off)
		if err != nil {
			return fmt.Errorf("walk header %d: %w: %w", i, ErrCorrupt, err)
		}
		if err := fn(hdr); err != nil {
			return err
		}
		off = hdr.End()
	}
	return nil
}

// Verify checks that the header chain decodes end to end, finishes exactly
// at the high-water mark and agrees with the header and free counters.
func (r *Region) Verify() error {
	if r.free > r.headers {
		return fmt.Errorf("verify: %d free headers > %d headers: %w", r.free, r.headers, ErrCorrupt)
	}
	if r.next > len(r.mem) {
		return fmt.Errorf("verify: high-water mark %d past %d bytes: %w", r.next, len(r.mem), ErrCorrupt)
	}

	end, free := 0, 0
	err := r.Walk(func(hdr format.Header) error {
		if hdr.Offset != end {
			return fmt.Errorf("verify: header at %d, expected %d: %w", hdr.Offset, end, ErrCorrupt)
		}
		if !hdr.Allocated() {
			free++
		}
		end = hdr.End()
		return nil
	})
	if err != nil {
		return err
	}

	if end != r.next {
		return fmt.Errorf("verify: chain ends at %d, high-water mark is %d: %w", end, r.next, ErrCorrupt)
	}
	if free != r.free {
		return fmt.Errorf("verify: counted %d free headers, bookkeeping says %d: %w", free, r.free, ErrCorrupt)
	}
	return nil
}

// Stats walks the header chain and summarises it.
func (r *Region) Stats() (Stats, error) {
	st := Stats{
		Capacity:  len(r.mem),
		Used:      r.next,
		Available: r.Available(),
		Headers:   r.headers,
		Overhead:  r.headers * format.HeaderSize,
	}
	err := r.Walk(func(hdr format.Header) error {
		size := int(hdr.Size)
		if hdr.Allocated() {
			st.AllocatedBytes += size
			return nil
		}
		st.FreeHeaders++
		st.FreeBytes += size
		if size > st.LargestFree {
			st.LargestFree = size
		}
		return nil
	})
	return st, err
}
