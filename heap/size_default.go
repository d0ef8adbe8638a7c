//go:build !heap_small && !heap_large

package heap

// BackingSize is the size of the static array behind the default region.
const BackingSize = 64 << 10
