// Package format defines the on-region layout of allocation headers. It is
// kept free of allocator state so the engine, the mapped-file loader and the
// inspection tools all decode headers the same way.
package format

// HeaderSignature tags every header written by the allocator.
// Layout:
//
//	0x06  'r' 'h'
var HeaderSignature = []byte{'r', 'h'}

const (
	// HeaderSize is the fixed size of the header preceding every payload.
	HeaderSize = 8

	// SizeOffset holds the recorded payload size (uint32).
	SizeOffset = 0x00

	// FlagsOffset holds the status flags byte.
	FlagsOffset = 0x04

	// ReservedOffset is kept zero.
	ReservedOffset = 0x05

	// SignatureOffset holds HeaderSignature.
	SignatureOffset = 0x06

	// SignatureSize is the length of HeaderSignature.
	SignatureSize = 2

	// MaxPayloadSize is the largest size a header can record.
	MaxPayloadSize = 1<<32 - 1
)

// Flags describe the status of a header.
type Flags uint8

const (
	// FlagHasHeader marks a byte range that carries a header written by the allocator.
	FlagHasHeader Flags = 1 << 0

	// FlagAllocated marks a header whose payload is currently handed out.
	FlagAllocated Flags = 1 << 1
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

func (f Flags) String() string {
	switch {
	case f.Has(FlagHasHeader | FlagAllocated):
		return "allocated"
	case f.Has(FlagHasHeader):
		return "free"
	default:
		return "none"
	}
}
