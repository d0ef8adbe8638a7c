package region

import (
	"errors"
	"fmt"

	"github.com/joshuapare/regionkit/internal/format"
)

// Allocate returns a handle and payload of at least n bytes.
//
// The payload slice has length n and the slot size as capacity; a reused
// slot can be larger than n because slots are never split. A request for 0
// bytes is served as a 1-byte slot so the handle stays distinct and in range.
func (r *Region) Allocate(n int) (Handle, []byte, error) {
	if n < 0 {
		return Nil, nil, ErrNegativeSize
	}
	want := n
	if n == 0 {
		n = 1
	}

	hdr, err := r.findFree(n)
	switch {
	case err == nil:
		format.SetFlags(r.mem, hdr.Offset, format.FlagHasHeader|format.FlagAllocated)
		r.free--
		r.markDirty(hdr.Offset+format.FlagsOffset, 1)
		return r.handout(hdr, want)
	case !errors.Is(err, ErrNotFound):
		return Nil, nil, err
	}

	if n > r.Available() {
		return Nil, nil, fmt.Errorf("allocate %d bytes with %d available: %w", want, r.Available(), ErrNoSpace)
	}

	off := r.next
	format.PutHeader(r.mem, off, uint32(n), format.FlagHasHeader|format.FlagAllocated)
	r.next += format.HeaderSize + n
	r.headers++
	r.markDirty(off, format.HeaderSize)

	return r.handout(format.Header{Offset: off, Size: uint32(n), Flags: format.FlagHasHeader | format.FlagAllocated}, want)
}

func (r *Region) handout(hdr format.Header, want int) (Handle, []byte, error) {
	payload := r.slot(hdr)
	if r.cfg.ZeroOnAlloc {
		clear(payload)
		r.markDirty(hdr.PayloadOffset(), len(payload))
	}
	return Handle(hdr.PayloadOffset()), payload[:want], nil
}

// slot returns the full payload recorded by hdr, capacity clipped.
func (r *Region) slot(hdr format.Header) []byte {
	p := hdr.PayloadOffset()
	end := p + int(hdr.Size)
	return r.mem[p:end:end]
}

// FindFree scans headers in creation order and returns the offset of the
// first free header whose recorded size is at least minSize. It returns
// ErrNotFound when none qualifies and ErrCorrupt when a header expected by
// the chain cannot be decoded.
func (r *Region) FindFree(minSize int) (int, error) {
	hdr, err := r.findFree(minSize)
	if err != nil {
		return 0, err
	}
	return hdr.Offset, nil
}

func (r *Region) findFree(minSize int) (format.Header, error) {
	if r.free == 0 {
		return format.Header{}, ErrNotFound
	}

	off := 0
	for i := 0; i < r.headers; i++ {
		hdr, err := r.headerAt(off)
		if err != nil {
			r.log.Warn("region: free-slot scan hit a broken header",
				"offset", off, "index", i, "headers", r.headers, "error", err)
			return format.Header{}, fmt.Errorf("scan header %d: %w: %w", i, ErrCorrupt, err)
		}
		if !hdr.Allocated() && int(hdr.Size) >= minSize {
			return hdr, nil
		}
		off = hdr.End()
	}
	return format.Header{}, ErrNotFound
}

// headerAt decodes the header at off, requiring it and its payload to sit
// below the high-water mark.
func (r *Region) headerAt(off int) (format.Header, error) {
	return format.ParseHeader(r.mem[:r.next], off)
}
