// Package buf contains overflow-safe bounds helpers shared by the header
// decoder and the allocation engine.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// CheckRange validates that n bytes starting at off end at or before limit.
// It returns the end offset, or an error naming the failed check.
//
//	end, err := buf.CheckRange(r.next, hdr.PayloadOffset(), int(hdr.Size))
//	if err != nil {
//	    return fmt.Errorf("payload: %w", err)
//	}
func CheckRange(limit, off, n int) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("negative offset: %d", off)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative length: %d", n)
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", off, n)
	}
	if end > limit {
		return 0, fmt.Errorf("bounds: end=%d > limit=%d", end, limit)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b). The
// result has its capacity clipped to n so appends never spill into the
// bytes that follow.
func Slice(b []byte, off, n int) ([]byte, bool) {
	end, err := CheckRange(len(b), off, n)
	if err != nil {
		return nil, false
	}
	return b[off:end:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n int) bool {
	_, err := CheckRange(len(b), off, n)
	return err == nil
}
