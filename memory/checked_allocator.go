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
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
)

// CheckedAllocator wraps another Allocator and records every outstanding
// allocation with the call site that made it, so tests can assert that all
// memory was returned.
type CheckedAllocator struct {
	mem Allocator
	sz  int64

	allocs sync.Map
}

func NewCheckedAllocator(mem Allocator) *CheckedAllocator {
	return &CheckedAllocator{mem: mem}
}

func (a *CheckedAllocator) CurrentAlloc() int { return int(atomic.LoadInt64(&a.sz)) }

func (a *CheckedAllocator) Allocate(size int) []byte {
	out := a.mem.Allocate(size)
	if out == nil {
		return nil
	}
	atomic.AddInt64(&a.sz, int64(len(out)))
	a.record(out, callerFrames)
	return out
}

func (a *CheckedAllocator) Reallocate(size int, b []byte) []byte {
	out := a.mem.Reallocate(size, b)
	if out == nil {
		return nil
	}
	atomic.AddInt64(&a.sz, int64(len(out)-len(b)))
	if cap(b) > 0 {
		a.allocs.Delete(addressOf(b))
	}
	a.record(out, callerFrames)
	return out
}

func (a *CheckedAllocator) Free(b []byte) {
	atomic.AddInt64(&a.sz, int64(len(b)*-1))
	defer a.mem.Free(b)

	if cap(b) == 0 {
		return
	}
	a.allocs.Delete(addressOf(b))
}

func (a *CheckedAllocator) record(b []byte, skip int) {
	if cap(b) == 0 {
		return
	}
	if pc, _, l, ok := runtime.Caller(skip); ok {
		a.allocs.Store(addressOf(b), &dalloc{pc: pc, line: l, sz: len(b)})
	}
}

// callerFrames skips record and the Allocate/Reallocate frame so the stored
// call site is the code that asked for memory, typically a Buffer method.
const callerFrames = 2

type dalloc struct {
	pc   uintptr
	line int
	sz   int
}

type TestingT interface {
	Errorf(format string, args ...interface{})
	Helper()
}

// AssertSize reports every allocation still outstanding and fails if the
// tracked byte count differs from sz.
func (a *CheckedAllocator) AssertSize(t TestingT, sz int) {
	t.Helper()
	if sz == 0 {
		a.allocs.Range(func(_, value interface{}) bool {
			info := value.(*dalloc)
			f := runtime.FuncForPC(info.pc)
			t.Errorf("LEAK of %d bytes FROM %s line %d\n", info.sz, f.Name(), info.line)
			return true
		})
	}

	if got := int(atomic.LoadInt64(&a.sz)); got != sz {
		t.Errorf("invalid memory size exp=%d, got=%d", sz, got)
	}
}

func addressOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

var _ Allocator = (*CheckedAllocator)(nil)
