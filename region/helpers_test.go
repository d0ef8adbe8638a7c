package region

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regionkit/internal/format"
)

// newTestRegion creates a Region over a fresh heap slice of size bytes.
func newTestRegion(t testing.TB, size int, cfg *Config) *Region {
	t.Helper()
	r, err := New(make([]byte, size), cfg)
	require.NoError(t, err)
	return r
}

// mustAlloc allocates n bytes and fails the test on error.
func mustAlloc(t testing.TB, r *Region, n int) (Handle, []byte) {
	t.Helper()
	h, p, err := r.Allocate(n)
	require.NoError(t, err, "Allocate(%d)", n)
	return h, p
}

// fill writes v into every byte of b.
func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

// rawFlags reads the flags byte of the header preceding h.
func rawFlags(r *Region, h Handle) format.Flags {
	return format.Flags(r.Base()[int(h)-HeaderSize+format.FlagsOffset])
}

// recordingTracker collects every range reported by the engine.
type recordingTracker struct {
	ranges [][2]int
}

func (rt *recordingTracker) Add(off, length int) {
	rt.ranges = append(rt.ranges, [2]int{off, length})
}

// covers reports whether some recorded range contains [off, off+n).
func (rt *recordingTracker) covers(off, n int) bool {
	for _, r := range rt.ranges {
		if r[0] <= off && off+n <= r[0]+r[1] {
			return true
		}
	}
	return false
}
