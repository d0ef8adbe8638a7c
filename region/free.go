package region

import (
	"fmt"

	"github.com/joshuapare/regionkit/internal/format"
)

// Free marks the slot named by h as free for reuse. Freeing a slot that is
// already free is a no-op. Handles that do not name a header are rejected
// with ErrBadHandle and leave the Region unchanged.
func (r *Region) Free(h Handle) error {
	hdr, err := r.lookup(h)
	if err != nil {
		return err
	}
	if !hdr.Allocated() {
		return nil
	}

	format.SetFlags(r.mem, hdr.Offset, format.FlagHasHeader)
	r.free++
	r.markDirty(hdr.Offset+format.FlagsOffset, 1)
	return nil
}

// Reallocate resizes the allocation named by h to n bytes.
//
// If n fits the slot's recorded size the same handle is returned and nothing
// moves. Otherwise a new slot is allocated, the old contents are copied and
// the old slot is freed. On failure the original allocation and its data are
// left untouched. A Nil handle behaves like Allocate(n).
func (r *Region) Reallocate(h Handle, n int) (Handle, []byte, error) {
	if h == Nil {
		return r.Allocate(n)
	}
	if n < 0 {
		return Nil, nil, ErrNegativeSize
	}

	hdr, err := r.lookup(h)
	if err != nil {
		return Nil, nil, err
	}
	if !hdr.Allocated() {
		return Nil, nil, fmt.Errorf("reallocate handle %d: slot is free: %w", h, ErrBadHandle)
	}

	old := r.slot(hdr)
	if n <= len(old) {
		return h, old[:n], nil
	}

	nh, payload, err := r.Allocate(n)
	if err != nil {
		return Nil, nil, err
	}
	copy(payload, old)
	r.markDirty(int(nh), len(old))

	format.SetFlags(r.mem, hdr.Offset, format.FlagHasHeader)
	r.free++
	r.markDirty(hdr.Offset+format.FlagsOffset, 1)

	return nh, payload, nil
}

// Header returns the decoded header for h, allocated or free.
func (r *Region) Header(h Handle) (format.Header, error) {
	return r.lookup(h)
}

// Payload returns the full slot of the allocation named by h. The slice
// length is the recorded slot size, which can exceed the size originally
// requested.
func (r *Region) Payload(h Handle) ([]byte, error) {
	hdr, err := r.lookup(h)
	if err != nil {
		return nil, err
	}
	if !hdr.Allocated() {
		return nil, fmt.Errorf("payload of handle %d: slot is free: %w", h, ErrBadHandle)
	}
	return r.slot(hdr), nil
}

// lookup resolves h to the header immediately preceding it.
func (r *Region) lookup(h Handle) (format.Header, error) {
	p, ok := r.Position(h)
	if !ok {
		r.log.Debug("region: handle outside payload range", "handle", h, "len", len(r.mem))
		return format.Header{}, fmt.Errorf("handle %d outside region of %d bytes: %w", h, len(r.mem), ErrBadHandle)
	}

	off := p - format.HeaderSize
	hdr, err := r.headerAt(off)
	if err != nil {
		r.log.Debug("region: handle does not name a header", "handle", h, "error", err)
		return format.Header{}, fmt.Errorf("handle %d: %w: %w", h, ErrBadHandle, err)
	}

	if r.cfg.StrictHandles {
		if err := r.checkBoundary(off); err != nil {
			return format.Header{}, fmt.Errorf("handle %d: %w", h, err)
		}
	}
	return hdr, nil
}

// checkBoundary walks the chain to prove a header starts at off.
func (r *Region) checkBoundary(off int) error {
	cur := 0
	for i := 0; i < r.headers && cur <= off; i++ {
		if cur == off {
			return nil
		}
		hdr, err := r.headerAt(cur)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		cur = hdr.End()
	}
	return fmt.Errorf("offset %d is not a header boundary: %w", off, ErrBadHandle)
}
