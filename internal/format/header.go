package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/regionkit/internal/buf"
)

// Header describes one allocation slot inside a region.
//
// Header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    4     Recorded payload size in bytes.
//	0x04    1     Flags (FlagHasHeader, FlagAllocated).
//	0x05    1     Reserved, zero.
//	0x06    2     Signature "rh".
//	0x08    ...   Payload.
type Header struct {
	Offset int    // Offset of the header relative to the region base
	Size   uint32 // Recorded payload size; never shrinks on reuse
	Flags  Flags
}

// Allocated reports whether the slot is currently handed out.
func (h Header) Allocated() bool { return h.Flags.Has(FlagHasHeader | FlagAllocated) }

// PayloadOffset returns the offset of the first payload byte.
func (h Header) PayloadOffset() int { return h.Offset + HeaderSize }

// End returns the offset one past the last payload byte, which is where the
// next header in creation order begins.
func (h Header) End() int { return h.Offset + HeaderSize + int(h.Size) }

// ParseHeader decodes the header at off. The header and the payload it
// records must both lie within b.
func ParseHeader(b []byte, off int) (Header, error) {
	raw, ok := buf.Slice(b, off, HeaderSize)
	if !ok {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrTruncated)
	}
	if !bytes.Equal(raw[SignatureOffset:SignatureOffset+SignatureSize], HeaderSignature) {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrSignatureMismatch)
	}
	flags := Flags(raw[FlagsOffset])
	if !flags.Has(FlagHasHeader) {
		return Header{}, fmt.Errorf("header at %d: %w", off, ErrNoHeader)
	}
	h := Header{
		Offset: off,
		Size:   ReadU32(raw, SizeOffset),
		Flags:  flags,
	}
	if !buf.Has(b, h.PayloadOffset(), int(h.Size)) {
		return Header{}, fmt.Errorf("header at %d: payload of %d bytes: %w", off, h.Size, ErrTruncated)
	}
	return h, nil
}

// PutHeader writes a complete header at off. The caller must ensure
// b[off:off+HeaderSize] is in range.
func PutHeader(b []byte, off int, size uint32, flags Flags) {
	PutU32(b, off+SizeOffset, size)
	b[off+FlagsOffset] = byte(flags)
	b[off+ReservedOffset] = 0
	copy(b[off+SignatureOffset:off+SignatureOffset+SignatureSize], HeaderSignature)
}

// SetFlags rewrites only the flags byte of the header at off.
func SetFlags(b []byte, off int, flags Flags) {
	b[off+FlagsOffset] = byte(flags)
}
