package heap

import (
	"sync"
	"unsafe"

	"github.com/koko1996/Parallel-Memory-Allocator/lib"
	"github.com/koko1996/Parallel-Memory-Allocator/log"
	"github.com/koko1996/Parallel-Memory-Allocator/sbrk"
)

// SuperblockSize is the size of every superblock: two OS pages. It must
// be a power of two so header recovery by masking is a single AND
// instruction.
const SuperblockSize = uintptr(8192)

// FreePageThreshold is the local-heap slack at or below which migration
// to the global heap does not trigger; it approximates Hoard's fullness
// invariant cheaply instead of tracking exact occupancy.
const FreePageThreshold = 2

// Arena is the subset of sbrk.Arena the heap layer depends on, narrowed
// to ease testing with a fake.
type Arena interface {
	Grow(n uintptr) unsafe.Pointer
	Bounds() (lo, hi uintptr)
}

// Allocator wires together the arena, the per-CPU heap array, and
// (optionally) an address index, implementing the front-end dispatch
// described below.
type Allocator struct {
	arena    Arena
	cpuCount int
	heaps    []Heap

	classCapacity [NumSizes]int32

	indexLock sync.RWMutex
	index     PageIndex
}

// New builds an Allocator over arena with cpuCount local heaps plus the
// global heap at index 0. cpuCount must be >= 1. index may be nil to use
// the default mask-based header lookup.
func New(arena Arena, cpuCount int, index PageIndex) (*Allocator, error) {
	if cpuCount < 1 {
		cpuCount = 1
	}
	lo, _ := arena.Bounds()
	if pad := lib.PadToAlign(lo, SuperblockSize); pad > 0 {
		if arena.Grow(pad) == nil {
			return nil, ErrArenaExhausted
		}
	}
	a := &Allocator{
		arena:    arena,
		cpuCount: cpuCount,
		heaps:    make([]Heap, cpuCount+1),
		index:    index,
	}
	for i := range a.heaps {
		a.heaps[i].ID = int32(i)
	}
	for k, sz := range sizes {
		a.classCapacity[k] = int32((int64(SuperblockSize) - int64(PRHeaderSize)) / sz)
	}
	log.Debugf("heap: initialized %d heaps (1 global + %d per-CPU)\n", len(a.heaps), cpuCount)
	return a, nil
}

// NewFromConfig builds an Allocator the way pmalloc's front-end does,
// reading the CPU count override from cfg and using index (nil for the
// default mask-based lookup, or an *avlindex.Tree for the AVL
// alternative).
func NewFromConfig(cfg lib.Config, arena Arena, index PageIndex) (*Allocator, error) {
	cpuCount := int(cfg.DefaultInt64("heap.cpucount", int64(sbrk.CPUCount())))
	return New(arena, cpuCount, index)
}

// CPUCount is the number of per-CPU local heaps (excludes the global
// heap).
func (a *Allocator) CPUCount() int { return a.cpuCount }

// Heaps exposes the backing heap array for diagnostics and tests. Index
// 0 is the global heap.
func (a *Allocator) Heaps() []Heap { return a.heaps }

// heapForCPU maps a raw CPU index onto one of the per-CPU local heaps,
// heap index 0 being reserved for the global heap.
func (a *Allocator) heapForCPU(cpu int) int {
	return (cpu % a.cpuCount) + 1
}

// Allocate returns an 8-byte-aligned pointer to at least size bytes, or
// nil on arena exhaustion. size == 0 allocates the smallest size class.
// The calling CPU is read fresh on every call, so the returned heap
// assignment can vary between calls from the same goroutine.
func (a *Allocator) Allocate(size uintptr) unsafe.Pointer {
	heapID := a.heapForCPU(sbrk.CurrentCPU())
	h := &a.heaps[heapID]
	if int64(size) > LargestClass {
		return a.largeAllocate(size, h, heapID)
	}
	return a.smallAllocate(size, h, heapID)
}

// Release returns a previously allocated block to the allocator. A nil
// ptr is a no-op, and a block whose header already reads free is
// silently ignored (double free is tolerated, not hardened against).
func (a *Allocator) Release(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	pr := a.pageRefFor(ptr)
	switch pr.BlockType {
	case blockFree:
		return
	case blockLarge:
		a.largeFree(pr)
	default:
		a.smallFree(ptr, pr)
	}
}

// pageRefFor recovers the PageRef governing ptr, by masking to
// SuperblockSize alignment unless a PageIndex is configured.
func (a *Allocator) pageRefFor(ptr unsafe.Pointer) *PageRef {
	if a.index != nil {
		a.indexLock.RLock()
		pr := a.index.Find(uintptr(ptr))
		a.indexLock.RUnlock()
		return pr
	}
	masked := uintptr(ptr) &^ (SuperblockSize - 1)
	return (*PageRef)(unsafe.Pointer(masked))
}

// registerSuperblock records a freshly carved superblock with the
// configured PageIndex, if any.
func (a *Allocator) registerSuperblock(pr *PageRef) {
	if a.index == nil {
		return
	}
	a.indexLock.Lock()
	a.index.Insert(pr)
	a.indexLock.Unlock()
}
