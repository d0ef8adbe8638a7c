package region

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/regionkit/internal/format"
)

// Region is the bookkeeping for one fixed block of memory. The backing
// slice is owned by the caller; a Region never grows, frees or replaces it.
//
// The zero value is usable after Init.
type Region struct {
	mem []byte

	// next is the high-water mark: the offset where the next header will be
	// bump-allocated. It only grows between resets.
	next int

	// headers counts headers created since the last reset.
	headers int

	// free counts headers whose IsAllocated flag is clear. Always <= headers.
	free int

	cfg Config
	log *slog.Logger
}

// New creates a Region over mem. The caller keeps ownership of mem and must
// keep it alive for as long as the Region is used.
func New(mem []byte, cfg *Config) (*Region, error) {
	r := &Region{}
	r.configure(cfg)
	if err := r.Init(mem); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Region) configure(cfg *Config) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r.cfg = *cfg
	r.log = cfg.Logger
	if r.log == nil {
		r.log = discardLogger()
	}
}

// Init binds the Region to mem and clears all bookkeeping. Any handles from
// a previous binding become invalid. The contents of mem are not touched.
func (r *Region) Init(mem []byte) error {
	if r.log == nil {
		r.configure(nil)
	}
	if uint64(len(mem)) > MaxRegionSize {
		return fmt.Errorf("init %d bytes: %w", len(mem), ErrTooLarge)
	}
	r.mem = mem[:len(mem):len(mem)]
	r.next, r.headers, r.free = 0, 0, 0
	return nil
}

// Deinit drops the Region's reference to its backing memory and zeroes the
// bookkeeping. The memory itself is left as is; it belongs to the caller.
func (r *Region) Deinit() {
	r.mem = nil
	r.next, r.headers, r.free = 0, 0, 0
}

// Attach binds the Region to mem whose first next bytes already hold a
// header chain written by a previous Region, for example a mapped file.
// Header and free counts are rebuilt by walking the chain, which must end
// exactly at next.
func (r *Region) Attach(mem []byte, next int) error {
	if err := r.Init(mem); err != nil {
		return err
	}
	if next < 0 || next > len(r.mem) {
		return fmt.Errorf("attach: high-water mark %d outside %d bytes: %w", next, len(r.mem), ErrCorrupt)
	}

	headers, free := 0, 0
	for off := 0; off < next; {
		hdr, err := format.ParseHeader(r.mem[:next], off)
		if err != nil {
			r.log.Warn("region: attach stopped at broken header", "offset", off, "error", err)
			return fmt.Errorf("attach: %w: %w", ErrCorrupt, err)
		}
		headers++
		if !hdr.Allocated() {
			free++
		}
		off = hdr.End()
	}

	r.next, r.headers, r.free = next, headers, free
	return nil
}

// Reset invalidates every outstanding handle in O(1) by rewinding the
// high-water mark. Memory contents are not cleared; using a handle obtained
// before the reset is undefined and usually reported as ErrBadHandle.
func (r *Region) Reset() {
	r.next, r.headers, r.free = 0, 0, 0
}

// Available returns the largest request that bump allocation can still
// satisfy. Space held by freed slots is not counted.
func (r *Region) Available() int {
	avail := len(r.mem) - format.HeaderSize - r.next
	if avail < 0 {
		return 0
	}
	return avail
}

// Len returns the size of the backing memory.
func (r *Region) Len() int { return len(r.mem) }

// Used returns the high-water mark.
func (r *Region) Used() int { return r.next }

// HeaderCount returns the number of headers created since the last reset.
func (r *Region) HeaderCount() int { return r.headers }

// FreeCount returns the number of headers currently marked free.
func (r *Region) FreeCount() int { return r.free }

// Base returns the backing memory. Facades use it to translate raw slices
// back into handles.
func (r *Region) Base() []byte { return r.mem }

// Position reports whether h lies in the valid payload range
// [HeaderSize, Len()) and, if so, its offset from the region base. It does
// not check that h names an allocation.
func (r *Region) Position(h Handle) (int, bool) {
	p := int(h)
	if p < format.HeaderSize || p >= len(r.mem) {
		return 0, false
	}
	return p, true
}

func (r *Region) markDirty(off, n int) {
	if r.cfg.Tracker != nil && n > 0 {
		r.cfg.Tracker.Add(off, n)
	}
}
