package mapped

import "errors"

var (
	// ErrBadMagic indicates the file does not start with the region magic.
	ErrBadMagic = errors.New("mapped: bad magic")
	// ErrVersion indicates an unsupported superblock version.
	ErrVersion = errors.New("mapped: unsupported version")
	// ErrChecksum indicates the superblock checksum did not match.
	ErrChecksum = errors.New("mapped: superblock checksum mismatch")
	// ErrSizeMismatch indicates the recorded region length disagrees with the file size.
	ErrSizeMismatch = errors.New("mapped: region length does not match file size")
	// ErrTooSmall indicates the file cannot hold a superblock.
	ErrTooSmall = errors.New("mapped: file smaller than superblock")
)
