package dirty

import (
	"context"
	"os"
	"sort"
)

// defaultRangeCapacity is the pre-allocated capacity for dirty ranges.
const defaultRangeCapacity = 64

// Range represents a dirty byte range.
type Range struct {
	Off int64
	Len int64
}

// Tracker accumulates dirty ranges and flushes them through a Syncer.
type Tracker struct {
	s        Syncer
	limit    int64   // size of the synced storage; ranges are clipped to it
	ranges   []Range // raw ranges, coalesced at flush time
	pageSize int64
}

// NewTracker creates a tracker flushing through s, whose storage is limit
// bytes long.
func NewTracker(s Syncer, limit int) *Tracker {
	return &Tracker{
		s:        s,
		limit:    int64(limit),
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: int64(os.Getpagesize()),
	}
}

// Add records a dirty range.
func (t *Tracker) Add(off, length int) {
	if length <= 0 {
		return
	}
	t.ranges = append(t.ranges, Range{Off: int64(off), Len: int64(length)})
}

// Offset returns a DirtyTracker that records into t with base added to
// every offset. Mapped regions use it because the engine reports offsets
// relative to the region, which starts after the file superblock.
func (t *Tracker) Offset(base int) DirtyTracker {
	return offsetTracker{t: t, base: base}
}

type offsetTracker struct {
	t    *Tracker
	base int
}

func (o offsetTracker) Add(off, length int) { o.t.Add(o.base+off, length) }

// Pending returns the number of raw ranges recorded since the last flush.
func (t *Tracker) Pending() int { return len(t.ranges) }

// Flush syncs every dirty range and clears the tracker.
//
// The context is checked between ranges. If cancelled part way, ranges
// already synced stay synced and the tracker keeps all ranges so a later
// Flush retries them.
func (t *Tracker) Flush(ctx context.Context) error {
	if len(t.ranges) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, r := range t.coalesce() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.s.Sync(int(r.Off), int(r.Len)); err != nil {
			return err
		}
	}

	t.ranges = t.ranges[:0]
	return nil
}

// Reset drops all recorded ranges without syncing them.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// Ranges returns the coalesced, page-aligned ranges a Flush would sync.
func (t *Tracker) Ranges() []Range {
	return t.coalesce()
}

// coalesce page-aligns all ranges, clips them to the storage size, sorts
// them and merges overlapping or adjacent ranges.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, 0, len(t.ranges))
	for _, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = ((end / t.pageSize) + 1) * t.pageSize
		}
		if end > t.limit {
			end = t.limit
		}
		if start < 0 || start >= end {
			continue
		}
		aligned = append(aligned, Range{Off: start, Len: end - start})
	}
	if len(aligned) == 0 {
		return nil
	}

	sort.Slice(aligned, func(i, j int) bool {
		return aligned[i].Off < aligned[j].Off
	})

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			if end := next.Off + next.Len; end > current.Off+current.Len {
				current.Len = end - current.Off
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	return append(merged, current)
}
