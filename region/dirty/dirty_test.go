package dirty

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSyncer records every Sync call.
type fakeSyncer struct {
	calls []Range
	err   error
}

func (f *fakeSyncer) Sync(off, length int) error {
	f.calls = append(f.calls, Range{Off: int64(off), Len: int64(length)})
	return f.err
}

func newTestTracker(limit int) (*Tracker, *fakeSyncer) {
	fs := &fakeSyncer{}
	t := NewTracker(fs, limit)
	t.pageSize = 4096
	return t, fs
}

func Test_DirtyTracker_PageAlignment(t *testing.T) {
	tr, _ := newTestTracker(1 << 20)
	tr.Add(100, 200)

	got := tr.Ranges()
	require.Len(t, got, 1)
	assert.Equal(t, Range{Off: 0, Len: 4096}, got[0])
}

func Test_DirtyTracker_MergesAdjacentAndOverlapping(t *testing.T) {
	tr, _ := newTestTracker(1 << 20)
	tr.Add(9000, 10)  // page 2
	tr.Add(10, 10)    // page 0
	tr.Add(4096, 100) // page 1, adjacent to page 0
	tr.Add(20000, 1)  // page 4

	got := tr.Ranges()
	assert.Equal(t, []Range{
		{Off: 0, Len: 3 * 4096},
		{Off: 4 * 4096, Len: 4096},
	}, got)
}

func Test_DirtyTracker_ClipsToLimit(t *testing.T) {
	tr, _ := newTestTracker(5000)
	tr.Add(4100, 10)
	tr.Add(9000, 10) // entirely past the end

	assert.Equal(t, []Range{{Off: 4096, Len: 5000 - 4096}}, tr.Ranges())
}

func Test_DirtyTracker_IgnoresEmptyRanges(t *testing.T) {
	tr, _ := newTestTracker(1 << 20)
	tr.Add(10, 0)
	tr.Add(10, -3)
	assert.Equal(t, 0, tr.Pending())
	assert.Nil(t, tr.Ranges())
}

func Test_DirtyTracker_Offset(t *testing.T) {
	tr, _ := newTestTracker(1 << 20)
	view := tr.Offset(64)
	view.Add(0, 8)

	assert.Equal(t, 1, tr.Pending())
	assert.Equal(t, []Range{{Off: 0, Len: 4096}}, tr.Ranges())
	assert.Equal(t, int64(64), tr.ranges[0].Off)
}

func Test_DirtyTracker_Flush(t *testing.T) {
	tr, fs := newTestTracker(1 << 20)
	tr.Add(0, 8)
	tr.Add(8192, 8)

	require.NoError(t, tr.Flush(context.Background()))
	assert.Equal(t, []Range{{Off: 0, Len: 4096}, {Off: 8192, Len: 4096}}, fs.calls)
	assert.Equal(t, 0, tr.Pending())

	fs.calls = nil
	require.NoError(t, tr.Flush(context.Background()), "empty flush is a no-op")
	assert.Empty(t, fs.calls)
}

func Test_DirtyTracker_FlushCancelled(t *testing.T) {
	tr, fs := newTestTracker(1 << 20)
	tr.Add(0, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tr.Flush(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fs.calls)
	assert.Equal(t, 1, tr.Pending(), "ranges survive a cancelled flush")
}

func Test_DirtyTracker_FlushError(t *testing.T) {
	tr, fs := newTestTracker(1 << 20)
	fs.err = errors.New("disk gone")
	tr.Add(0, 8)

	assert.ErrorIs(t, tr.Flush(context.Background()), fs.err)
	assert.Equal(t, 1, tr.Pending())

	tr.Reset()
	assert.Equal(t, 0, tr.Pending())
}
