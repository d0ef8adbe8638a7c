//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package mmfile

import (
	"io"
	"os"
)

// Without mmap the file is read into heap memory and Sync writes ranges back.

func mapFile(f *os.File, size int) ([]byte, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(io.NewSectionReader(f, 0, int64(size)), data); err != nil {
		return nil, err
	}
	return data, nil
}

func mapAnon(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func syncRange(f *os.File, data []byte, off, end int) error {
	if _, err := f.WriteAt(data[off:end], int64(off)); err != nil {
		return err
	}
	return f.Sync()
}

func unmap([]byte) error { return nil }
