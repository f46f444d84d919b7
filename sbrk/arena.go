package sbrk

//#include <stdlib.h>
import "C"

import (
	"unsafe"

	"github.com/koko1996/Parallel-Memory-Allocator/spinlock"
)

// DefaultCapacity is used when Config does not specify one: 1 GiB of
// backing memory, reserved up front and handed out incrementally by
// Grow.
const DefaultCapacity = uintptr(1) << 30

// Arena is a single contiguous byte region that only ever grows. A
// process is expected to create exactly one Arena; every grow() call is
// serialized through a single spinlock, matching the one-lock-per-arena
// discipline of the system this package reimplements.
type Arena struct {
	lock     spinlock.T
	base     unsafe.Pointer
	capacity uintptr
	used     uintptr
}

// New reserves `capacity` bytes of backing memory and returns an empty
// Arena ready for Grow calls. capacity == 0 selects DefaultCapacity.
func New(capacity uintptr) (*Arena, error) {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	base := C.malloc(C.size_t(capacity))
	if base == nil {
		return nil, ErrArenaInit
	}
	return &Arena{base: unsafe.Pointer(base), capacity: capacity}, nil
}

// Grow extends the arena by exactly n bytes and returns a pointer to the
// new region, or nil if the arena is exhausted. Grow never shrinks or
// reuses memory; every byte it has ever handed out remains valid for the
// lifetime of the Arena.
func (a *Arena) Grow(n uintptr) unsafe.Pointer {
	a.lock.Lock()
	defer a.lock.Unlock()

	if a.used+n > a.capacity {
		return nil
	}
	ptr := unsafe.Pointer(uintptr(a.base) + a.used)
	a.used += n
	return ptr
}

// Bounds returns the current [lo, hi) extent of memory handed out so
// far. hi advances on every successful Grow; lo is fixed at creation.
func (a *Arena) Bounds() (lo, hi uintptr) {
	a.lock.Lock()
	defer a.lock.Unlock()
	return uintptr(a.base), uintptr(a.base) + a.used
}

// Release frees the entire backing region. It must not be called while
// any superblock carved from the arena is still in use; it exists for
// test teardown and short-lived benchmark processes, not for production
// use — this allocator otherwise never gives memory back to the OS.
func (a *Arena) Release() {
	a.lock.Lock()
	defer a.lock.Unlock()
	if a.base != nil {
		C.free(a.base)
		a.base = nil
	}
	a.capacity, a.used = 0, 0
}
