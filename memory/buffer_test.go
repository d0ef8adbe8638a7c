// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package memory

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResizableBuffer(t *testing.T) {
	mem := NewCheckedAllocator(newRegionAllocator(t, 4096))
	defer mem.AssertSize(t, 0)

	buf := NewResizableBuffer(mem)
	buf.Retain() // refCount == 2
	assert.True(t, buf.Owned())

	exp := 10
	require.NoError(t, buf.Resize(exp))
	assert.NotNil(t, buf.Bytes())
	assert.Equal(t, exp, len(buf.Bytes()))
	assert.Equal(t, exp, buf.Len())
	assert.Equal(t, 64, buf.Cap())

	buf.Release() // refCount == 1
	assert.NotNil(t, buf.Bytes())

	buf.Release() // refCount == 0
	assert.Nil(t, buf.Bytes())
	assert.Zero(t, buf.Len())
}

func TestBufferWriteGrows(t *testing.T) {
	mem := NewCheckedAllocator(newRegionAllocator(t, 4096))
	defer mem.AssertSize(t, 0)

	buf := NewResizableBuffer(mem)
	defer buf.Release()

	n, err := buf.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, 64, buf.Cap())

	tail := bytes.Repeat([]byte{'x'}, 100)
	_, err = buf.Write(tail)
	require.NoError(t, err)
	assert.Equal(t, 128, buf.Cap())
	assert.Equal(t, append([]byte("hello"), tail...), buf.Bytes())
	assert.Equal(t, 128, mem.CurrentAlloc())
}

func TestBufferResizeShrink(t *testing.T) {
	mem := NewCheckedAllocator(newRegionAllocator(t, 4096))
	defer mem.AssertSize(t, 0)

	buf := NewResizableBuffer(mem)
	require.NoError(t, buf.Resize(300))
	assert.Equal(t, 320, buf.Cap())

	require.NoError(t, buf.ResizeNoShrink(10))
	assert.Equal(t, 320, buf.Cap(), "ResizeNoShrink keeps the memory")
	assert.Equal(t, 10, buf.Len())

	require.NoError(t, buf.Resize(300))
	require.NoError(t, buf.Resize(10))
	assert.Equal(t, 64, buf.Cap())
	assert.Equal(t, 64, mem.CurrentAlloc())

	require.NoError(t, buf.Resize(0))
	assert.Zero(t, buf.Cap())
	assert.Zero(t, mem.CurrentAlloc())

	assert.Error(t, buf.Resize(-1))
	buf.Release()
}

func TestBufferExhaustedRegion(t *testing.T) {
	mem := NewCheckedAllocator(newRegionAllocator(t, 256))
	defer mem.AssertSize(t, 0)

	buf := NewResizableBuffer(mem)
	err := buf.Resize(512)
	assert.ErrorIs(t, err, ErrAllocFailed)
	assert.Zero(t, buf.Len(), "failed resize leaves the buffer unchanged")

	require.NoError(t, buf.Resize(100))
	_, err = buf.Write(make([]byte, 200))
	assert.ErrorIs(t, err, ErrAllocFailed)
	assert.Equal(t, 100, buf.Len())
	buf.Release()
}

func TestBufferBorrowed(t *testing.T) {
	backing := make([]byte, 4, 16)
	copy(backing, "abcd")

	buf := NewBufferBytes(backing)
	assert.False(t, buf.Owned())
	assert.Equal(t, []byte("abcd"), buf.Bytes())
	assert.Equal(t, 16, buf.Cap())

	_, err := buf.Write([]byte("efgh"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abcdefgh"), backing[:8], "writes land in the borrowed memory")

	_, err = buf.Write(make([]byte, 20))
	assert.ErrorIs(t, err, ErrBorrowed)
	assert.ErrorIs(t, buf.Reserve(100), ErrBorrowed)

	buf.Release()
	assert.Equal(t, []byte("abcdefgh"), backing[:8], "release never touches borrowed memory")
}

func TestBufferReset(t *testing.T) {
	mem := NewCheckedAllocator(newRegionAllocator(t, 1024))
	defer mem.AssertSize(t, 0)

	buf := NewResizableBuffer(mem)
	require.NoError(t, buf.Resize(40))

	newBytes := []byte("some-new-bytes")
	buf.Reset(newBytes)
	assert.Equal(t, newBytes, buf.Bytes())
	assert.Equal(t, len(newBytes), buf.Len())
	assert.False(t, buf.Owned())
	assert.Zero(t, mem.CurrentAlloc(), "owned memory goes back on reset")
	buf.Release()
}
