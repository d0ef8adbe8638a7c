//go:build heap_small

package heap

// BackingSize is the size of the static array behind the default region.
const BackingSize = 4 << 10
