// Package spinlock implements a minimal compare-and-swap spinlock,
// the locking primitive used throughout the allocator's heap and arena
// layers. Every critical section guarded by a spinlock in this codebase
// is O(1) list-head manipulation, so contention is expected to be short
// and a spinlock beats parking a goroutine on a semaphore.
package spinlock

import (
	"runtime"
	"sync/atomic"
)

const (
	unlocked int32 = 0
	locked   int32 = 1
)

// T is a single spinlock. The zero value is an unlocked lock, ready to
// use. T must not be copied after first use.
type T struct {
	state int32
}

// Lock blocks until the lock is acquired.
func (l *T) Lock() {
	if atomic.CompareAndSwapInt32(&l.state, unlocked, locked) {
		return
	}
	spins := 0
	for !atomic.CompareAndSwapInt32(&l.state, unlocked, locked) {
		if spins < 4 {
			spins++
		} else {
			runtime.Gosched()
		}
	}
}

// Unlock releases the lock. It is a programming error to call Unlock on
// a lock that is not held.
func (l *T) Unlock() {
	if !atomic.CompareAndSwapInt32(&l.state, locked, unlocked) {
		panic("spinlock: unlock of unlocked lock")
	}
}

// TryLock attempts to acquire the lock without blocking.
func (l *T) TryLock() bool {
	return atomic.CompareAndSwapInt32(&l.state, unlocked, locked)
}
