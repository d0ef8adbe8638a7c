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
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrBorrowed indicates a borrowed buffer was asked to grow past the
	// memory it wraps.
	ErrBorrowed = errors.New("memory: buffer is borrowed")
	// ErrAllocFailed indicates the allocator could not serve a request.
	ErrAllocFailed = errors.New("memory: allocation failed")
)

// Buffer is a growable byte buffer. An owned buffer gets its memory from an
// Allocator and returns it on the final Release; a borrowed buffer wraps
// caller memory that the allocator never sees.
type Buffer struct {
	refCount int64
	buf      []byte
	length   int
	owned    bool

	mem Allocator
}

// NewBufferBytes creates a borrowed buffer over data. Its length is len(data)
// and it can be resized up to cap(data) but never reallocated.
func NewBufferBytes(data []byte) *Buffer {
	return &Buffer{refCount: 1, buf: data[:cap(data)], length: len(data)}
}

// NewResizableBuffer creates an empty owned buffer backed by mem.
func NewResizableBuffer(mem Allocator) *Buffer {
	return &Buffer{refCount: 1, mem: mem, owned: true}
}

// Retain increases the reference count by 1.
func (b *Buffer) Retain() {
	atomic.AddInt64(&b.refCount, 1)
}

// Release decreases the reference count by 1. When it reaches zero an owned
// buffer hands its memory back to the allocator.
func (b *Buffer) Release() {
	if atomic.AddInt64(&b.refCount, -1) == 0 {
		b.free()
	}
}

func (b *Buffer) free() {
	if b.owned && b.buf != nil {
		b.mem.Free(b.buf)
	}
	b.buf, b.length = nil, 0
}

// Reset drops the current contents, returning owned memory to the
// allocator, and makes the buffer a borrowed view of buf.
func (b *Buffer) Reset(buf []byte) {
	b.free()
	b.owned = false
	b.buf = buf[:cap(buf)]
	b.length = len(buf)
}

// Buf returns the whole underlying slice, including unused capacity.
func (b *Buffer) Buf() []byte { return b.buf }

// Bytes returns the first Len bytes of the buffer.
func (b *Buffer) Bytes() []byte { return b.buf[:b.length] }

// Len returns the number of bytes in use.
func (b *Buffer) Len() int { return b.length }

// Cap returns the capacity of the underlying slice.
func (b *Buffer) Cap() int { return len(b.buf) }

// Owned reports whether the buffer's memory came from its allocator.
func (b *Buffer) Owned() bool { return b.owned }

// Reserve makes sure the buffer can hold capacity bytes without another
// allocation. Capacity is rounded up to a multiple of 64 bytes.
func (b *Buffer) Reserve(capacity int) error {
	if capacity <= len(b.buf) {
		return nil
	}
	if !b.owned {
		return fmt.Errorf("reserve %d bytes over %d borrowed: %w", capacity, len(b.buf), ErrBorrowed)
	}

	newCap := roundUpToMultipleOf64(capacity)
	var nb []byte
	if b.buf == nil {
		nb = b.mem.Allocate(newCap)
	} else {
		nb = b.mem.Reallocate(newCap, b.buf)
	}
	if nb == nil {
		return fmt.Errorf("reserve %d bytes: %w", newCap, ErrAllocFailed)
	}
	b.buf = nb
	return nil
}

// Resize sets the length to newSize, growing or shrinking the allocation to
// match.
func (b *Buffer) Resize(newSize int) error {
	return b.resize(newSize, true)
}

// ResizeNoShrink sets the length to newSize without giving memory back.
func (b *Buffer) ResizeNoShrink(newSize int) error {
	return b.resize(newSize, false)
}

func (b *Buffer) resize(newSize int, shrink bool) error {
	if newSize < 0 {
		return fmt.Errorf("resize to %d: negative size", newSize)
	}
	if !shrink || newSize > b.length {
		if err := b.Reserve(newSize); err != nil {
			return err
		}
	} else if b.owned && b.buf != nil {
		newCap := roundUpToMultipleOf64(newSize)
		if newCap < len(b.buf) {
			if newCap == 0 {
				b.mem.Free(b.buf)
				b.buf = nil
			} else if nb := b.mem.Reallocate(newCap, b.buf); nb != nil {
				b.buf = nb
			}
		}
	}
	b.length = newSize
	return nil
}

// Write appends p, growing the buffer geometrically. It implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	need := b.length + len(p)
	if need > len(b.buf) {
		if err := b.Reserve(max(need, 2*len(b.buf))); err != nil {
			return 0, err
		}
	}
	copy(b.buf[b.length:], p)
	b.length = need
	return len(p), nil
}

func roundToPowerOf2(v, round int) int {
	forceCarry := round - 1
	truncateMask := ^forceCarry
	return (v + forceCarry) & truncateMask
}

func roundUpToMultipleOf64(v int) int {
	return roundToPowerOf2(v, 64)
}
