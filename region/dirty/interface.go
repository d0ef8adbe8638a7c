package dirty

// DirtyTracker is the minimal interface for tracking modified byte ranges.
// The allocation engine only needs to report writes; it never flushes.
type DirtyTracker interface {
	// Add marks a byte range as dirty. off is relative to whatever base the
	// implementation was set up with; length is in bytes.
	Add(off, length int)
}

// Syncer persists a byte range of the underlying storage.
type Syncer interface {
	Sync(off, length int) error
}
