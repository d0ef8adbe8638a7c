//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package mmfile

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func mapFile(f *os.File, size int) ([]byte, error) {
	return unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
}

func mapAnon(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

// syncRange msyncs data[off:end]. msync needs a page-aligned start address,
// and the mapping itself starts on a page boundary.
func syncRange(_ *os.File, data []byte, off, end int) error {
	page := unix.Getpagesize()
	start := off &^ (page - 1)
	if start == end {
		return nil
	}
	return unix.Msync(data[start:end], unix.MS_SYNC)
}

func unmap(data []byte) error {
	if data == nil {
		return nil
	}
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
