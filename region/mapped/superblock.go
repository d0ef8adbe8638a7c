package mapped

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/regionkit/internal/format"
)

// SuperblockSize is the number of bytes in front of the region memory.
const SuperblockSize = 0x40

const (
	superVersion = 1

	magicOffset    = 0x00
	versionOffset  = 0x04
	lengthOffset   = 0x08
	nextOffset     = 0x0C
	headersOffset  = 0x10
	freeOffset     = 0x14
	checksumOffset = 0x3C
)

var superMagic = []byte{'r', 'g', 'n', 'k'}

type superblock struct {
	length  uint32
	next    uint32
	headers uint32
	free    uint32
}

func writeSuperblock(b []byte, sb superblock) {
	clear(b[:SuperblockSize])
	copy(b[magicOffset:magicOffset+4], superMagic)
	format.PutU32(b, versionOffset, superVersion)
	format.PutU32(b, lengthOffset, sb.length)
	format.PutU32(b, nextOffset, sb.next)
	format.PutU32(b, headersOffset, sb.headers)
	format.PutU32(b, freeOffset, sb.free)
	format.PutU32(b, checksumOffset, superChecksum(b))
}

func readSuperblock(b []byte) (superblock, error) {
	if len(b) < SuperblockSize {
		return superblock{}, ErrTooSmall
	}
	if !bytes.Equal(b[magicOffset:magicOffset+4], superMagic) {
		return superblock{}, ErrBadMagic
	}
	if v := format.ReadU32(b, versionOffset); v != superVersion {
		return superblock{}, fmt.Errorf("version %d: %w", v, ErrVersion)
	}
	if got, want := format.ReadU32(b, checksumOffset), superChecksum(b); got != want {
		return superblock{}, fmt.Errorf("stored 0x%08x, computed 0x%08x: %w", got, want, ErrChecksum)
	}
	return superblock{
		length:  format.ReadU32(b, lengthOffset),
		next:    format.ReadU32(b, nextOffset),
		headers: format.ReadU32(b, headersOffset),
		free:    format.ReadU32(b, freeOffset),
	}, nil
}

// superChecksum is the XOR of every dword before the checksum field.
func superChecksum(b []byte) uint32 {
	var sum uint32
	for i := 0; i < checksumOffset; i += 4 {
		sum ^= format.ReadU32(b, i)
	}
	return sum
}
