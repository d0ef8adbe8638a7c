// Package dirty tracks byte ranges written by the allocation engine so that
// regions backed by a mapped file can flush only what changed.
//
// # Overview
//
// The engine reports every header write, flag flip and copied payload via
// Add. At flush time the tracker page-aligns the ranges, sorts and merges
// them, and hands each merged range to a Syncer (for example an
// internal/mmfile mapping, which msyncs on unix).
//
// # Usage
//
//	t := dirty.NewTracker(mapping, len(mapping.Bytes()))
//	cfg := &region.Config{Tracker: t.Offset(superblockSize)}
//	...
//	if err := t.Flush(ctx); err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// A Tracker is not thread-safe, matching the Region it serves.
package dirty
