package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regionkit/region"
)

func newRegionAllocator(t *testing.T, size int) *RegionAllocator {
	t.Helper()
	r, err := region.New(make([]byte, size), nil)
	require.NoError(t, err)
	return NewRegionAllocator(r)
}

func TestRegionAllocator_AllocateFreeReuse(t *testing.T) {
	a := newRegionAllocator(t, 1024)

	b := a.Allocate(100)
	require.Len(t, b, 100)
	assert.Nil(t, a.Allocate(2000), "exhaustion returns nil")

	a.Free(b)
	assert.Equal(t, 1, a.Region().FreeCount())

	c := a.Allocate(50)
	require.Len(t, c, 50)
	assert.Equal(t, addressOf(b), addressOf(c), "the freed slot is reused")
}

func TestRegionAllocator_Locate(t *testing.T) {
	a := newRegionAllocator(t, 512)
	other := newRegionAllocator(t, 512)

	b := a.Allocate(32)
	h, ok := a.Locate(b)
	require.True(t, ok)
	assert.Equal(t, region.Handle(region.HeaderSize), h)

	foreign := other.Allocate(32)
	_, ok = a.Locate(foreign)
	assert.False(t, ok, "slices from another region are not found")

	_, ok = a.Locate(make([]byte, 32))
	assert.False(t, ok, "heap slices are not found")

	_, ok = a.Locate(nil)
	assert.False(t, ok)

	_, ok = a.Locate(a.Region().Base()[:1])
	assert.False(t, ok, "the first header is outside the payload range")
}

func TestRegionAllocator_FreeIgnoresUnknownSlices(t *testing.T) {
	a := newRegionAllocator(t, 512)
	b := a.Allocate(32)

	a.Free(b[4:])
	a.Free(make([]byte, 8))
	a.Free(nil)
	assert.Equal(t, 0, a.Region().FreeCount())

	a.Free(b)
	a.Free(b)
	assert.Equal(t, 1, a.Region().FreeCount())
}

func TestRegionAllocator_Reallocate(t *testing.T) {
	a := newRegionAllocator(t, 512)
	b := a.Allocate(16)
	copy(b, "0123456789abcdef")

	same := a.Reallocate(8, b)
	assert.Equal(t, addressOf(b), addressOf(same))
	assert.Len(t, same, 8)

	grown := a.Reallocate(64, b)
	require.Len(t, grown, 64)
	assert.Equal(t, []byte("0123456789abcdef"), grown[:16])
	assert.NotEqual(t, addressOf(b), addressOf(grown))

	assert.Nil(t, a.Reallocate(4096, grown), "failed growth returns nil")
	assert.Equal(t, []byte("0123456789abcdef"), grown[:16], "and leaves the data alone")

	assert.Nil(t, a.Reallocate(8, make([]byte, 4)), "foreign slices cannot be resized")

	fresh := a.Reallocate(10, nil)
	assert.Len(t, fresh, 10)
}

func TestGoAllocator(t *testing.T) {
	a := NewGoAllocator()
	b := a.Allocate(10)
	require.Len(t, b, 10)
	copy(b, "abc")

	c := a.Reallocate(20, b)
	require.Len(t, c, 20)
	assert.Equal(t, []byte("abc"), c[:3])

	assert.Len(t, a.Reallocate(5, c), 5)
	assert.Nil(t, a.Allocate(-1))
	a.Free(c)
}
