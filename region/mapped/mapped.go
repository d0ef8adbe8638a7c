package mapped

import (
	"context"
	"errors"
	"fmt"

	"github.com/joshuapare/regionkit/internal/mmfile"
	"github.com/joshuapare/regionkit/region"
	"github.com/joshuapare/regionkit/region/dirty"
)

// Region is an allocation region living inside a memory mapping. All engine
// operations are available through the embedded *region.Region.
type Region struct {
	*region.Region

	m      *mmfile.Mapping
	dt     *dirty.Tracker // nil for anonymous mappings
	path   string
	closed bool
}

// Create creates (or truncates) the file at path holding a superblock and a
// region of size bytes, and returns it ready for allocation.
func Create(path string, size int, cfg *region.Config) (*Region, error) {
	if size <= 0 || uint64(size) > region.MaxRegionSize {
		return nil, fmt.Errorf("mapped: create %s: invalid region size %d", path, size)
	}
	m, err := mmfile.Create(path, SuperblockSize+size)
	if err != nil {
		return nil, fmt.Errorf("mapped: create %s: %w", path, err)
	}

	mr := newFileRegion(m, path)
	mr.Region, err = region.New(m.Bytes()[SuperblockSize:], mr.config(cfg))
	if err != nil {
		m.Close()
		return nil, err
	}
	if err := mr.Flush(context.Background()); err != nil {
		m.Close()
		return nil, fmt.Errorf("mapped: create %s: %w", path, err)
	}
	return mr, nil
}

// Open maps an existing region file and rebuilds its bookkeeping from the
// superblock and the header chain.
func Open(path string, cfg *region.Config) (*Region, error) {
	m, err := mmfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mapped: open %s: %w", path, err)
	}

	mr, err := attach(m, path, cfg)
	if err != nil {
		m.Close()
		return nil, fmt.Errorf("mapped: open %s: %w", path, err)
	}
	return mr, nil
}

func attach(m *mmfile.Mapping, path string, cfg *region.Config) (*Region, error) {
	data := m.Bytes()
	sb, err := readSuperblock(data)
	if err != nil {
		return nil, err
	}
	if int(sb.length) != len(data)-SuperblockSize {
		return nil, fmt.Errorf("superblock says %d bytes, file holds %d: %w",
			sb.length, len(data)-SuperblockSize, ErrSizeMismatch)
	}

	mr := newFileRegion(m, path)
	r, err := region.New(nil, mr.config(cfg))
	if err != nil {
		return nil, err
	}
	if err := r.Attach(data[SuperblockSize:], int(sb.next)); err != nil {
		return nil, err
	}
	if r.HeaderCount() != int(sb.headers) || r.FreeCount() != int(sb.free) {
		return nil, fmt.Errorf("superblock counts %d/%d, header chain holds %d/%d: %w",
			sb.headers, sb.free, r.HeaderCount(), r.FreeCount(), region.ErrCorrupt)
	}
	mr.Region = r
	return mr, nil
}

// Anonymous returns a region of size bytes over anonymous mapped memory.
// Nothing is persisted; Flush is a no-op.
func Anonymous(size int, cfg *region.Config) (*Region, error) {
	m, err := mmfile.Anonymous(size)
	if err != nil {
		return nil, fmt.Errorf("mapped: anonymous: %w", err)
	}
	r, err := region.New(m.Bytes(), cfg)
	if err != nil {
		m.Close()
		return nil, err
	}
	return &Region{Region: r, m: m}, nil
}

func newFileRegion(m *mmfile.Mapping, path string) *Region {
	return &Region{
		m:    m,
		dt:   dirty.NewTracker(m, m.Len()),
		path: path,
	}
}

// config copies cfg and routes engine writes into the tracker, shifted past
// the superblock. A caller-supplied tracker keeps receiving them too.
func (r *Region) config(cfg *region.Config) *region.Config {
	c := region.DefaultConfig()
	if cfg != nil {
		*c = *cfg
	}
	shifted := r.dt.Offset(SuperblockSize)
	if c.Tracker != nil {
		c.Tracker = fanout{c.Tracker, shifted}
	} else {
		c.Tracker = shifted
	}
	return c
}

type fanout []region.DirtyTracker

func (f fanout) Add(off, length int) {
	for _, t := range f {
		t.Add(off, length)
	}
}

// Path returns the backing file path, empty for anonymous regions.
func (r *Region) Path() string { return r.path }

// Flush records the current bookkeeping in the superblock and syncs it,
// together with everything below the high-water mark, to the file. Payload
// bytes written by callers are included even though the engine never saw
// those writes.
func (r *Region) Flush(ctx context.Context) error {
	if r.dt == nil || r.closed {
		return nil
	}
	r.stage()
	return r.dt.Flush(ctx)
}

// stage writes the superblock and marks it and the used part of the region dirty.
func (r *Region) stage() {
	writeSuperblock(r.m.Bytes(), superblock{
		length:  uint32(r.Len()),
		next:    uint32(r.Used()),
		headers: uint32(r.HeaderCount()),
		free:    uint32(r.FreeCount()),
	})
	r.dt.Add(0, SuperblockSize+r.Used())
}

// Close flushes, then unmaps the memory. Handles and payload slices from
// this region must not be used afterwards.
func (r *Region) Close() error {
	if r.closed {
		return nil
	}
	err := r.Flush(context.Background())
	r.closed = true
	r.Deinit()
	return errors.Join(err, r.m.Close())
}
