// Package mmfile provides platform-specific helpers for backing regions with
// memory mappings, either of a file or of anonymous memory.
package mmfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/joshuapare/regionkit/internal/buf"
)

var (
	// ErrEmpty indicates a zero-length mapping was requested.
	ErrEmpty = errors.New("mmfile: empty mapping")
	// ErrClosed indicates the mapping was already closed.
	ErrClosed = errors.New("mmfile: mapping closed")
)

// Mapping is a read-write view of a file or of anonymous memory.
type Mapping struct {
	data   []byte
	f      *os.File // nil for anonymous mappings
	closed bool
}

// Create creates or truncates the file at path to size bytes and maps it
// shared read-write.
func Create(path string, size int) (*Mapping, error) {
	if size <= 0 {
		return nil, fmt.Errorf("create %s: %w", path, ErrEmpty)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, err
	}
	return mapOpenFile(f, size)
}

// Open maps an existing file shared read-write.
func Open(path string) (*Mapping, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", path, ErrEmpty)
	}
	if size > int64(^uint(0)>>1) {
		f.Close()
		return nil, fmt.Errorf("mmfile: file too large to map (%d bytes)", size)
	}
	return mapOpenFile(f, int(size))
}

func mapOpenFile(f *os.File, size int) (*Mapping, error) {
	data, err := mapFile(f, size)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Mapping{data: data, f: f}, nil
}

// Anonymous maps size bytes of zeroed memory that is not backed by a file.
func Anonymous(size int) (*Mapping, error) {
	if size <= 0 {
		return nil, fmt.Errorf("anonymous: %w", ErrEmpty)
	}
	data, err := mapAnon(size)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data}, nil
}

// Bytes returns the mapped memory. The slice is invalid after Close.
func (m *Mapping) Bytes() []byte { return m.data }

// Len returns the mapping size.
func (m *Mapping) Len() int { return len(m.data) }

// Sync persists data[off:off+length] to the backing file. It is a no-op for
// anonymous mappings.
func (m *Mapping) Sync(off, length int) error {
	if m.closed {
		return ErrClosed
	}
	if m.f == nil {
		return nil
	}
	end, err := buf.CheckRange(len(m.data), off, length)
	if err != nil {
		return fmt.Errorf("mmfile: sync: %w", err)
	}
	return syncRange(m.f, m.data, off, end)
}

// Close unmaps the memory and closes the backing file. Closing twice is a no-op.
func (m *Mapping) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	err := unmap(m.data)
	m.data = nil
	if m.f != nil {
		err = errors.Join(err, m.f.Close())
	}
	return err
}
