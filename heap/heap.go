package heap

import "github.com/koko1996/Parallel-Memory-Allocator/spinlock"

// cachelinePad is at least 3 cache lines (192 bytes on a 64-byte line),
// enough slack that two heaps never share a cache line regardless of
// where the runtime places the backing slice.
type cachelinePad [192]byte

// Heap is one per-CPU (or, at index 0, global) bundle of superblock
// lists. Every list is guarded by its own spinlock so that unrelated
// operations on the same heap never contend with each other.
type Heap struct {
	ID int32

	freeLock   spinlock.T
	FreePages  *PageRef
	NFreePages int32
	_          cachelinePad

	completeLock  spinlock.T
	CompletePages *PageRef
	_             cachelinePad

	largeLock  spinlock.T
	LargePages *PageRef
	_          cachelinePad

	sizeLocks [NumSizes]spinlock.T
	Sizebases [NumSizes]*PageRef
	_         cachelinePad
}

// GlobalHeapID is the index of the shared global heap. It is never
// selected by the front-end as an allocation target; superblocks only
// arrive there through migration.
const GlobalHeapID = 0
