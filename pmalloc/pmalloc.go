// Package pmalloc is the package-level front door: Initialize once, then
// call Allocate/Release from as many goroutines as there are CPUs. It
// wires sbrk's arena, heap's per-CPU allocator, and (optionally)
// avlindex's page index into the single global allocator the rest of a
// process shares, the way the classic C malloc API is global by
// convention rather than by object.
package pmalloc

import (
	"sync"
	"unsafe"

	"github.com/koko1996/Parallel-Memory-Allocator/avlindex"
	"github.com/koko1996/Parallel-Memory-Allocator/heap"
	"github.com/koko1996/Parallel-Memory-Allocator/log"
	"github.com/koko1996/Parallel-Memory-Allocator/sbrk"
)

var (
	mu        sync.Mutex
	arena     *sbrk.Arena
	allocator *heap.Allocator
)

// Initialize reserves the backing arena and builds the per-CPU heap
// array described by cfg. It must be called exactly once before
// Allocate or Release.
func Initialize(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	if allocator != nil {
		return ErrAlreadyInitialized
	}

	capacity := uintptr(cfg.DefaultInt64("arena.capacity", int64(sbrk.DefaultCapacity)))
	a, err := sbrk.New(capacity)
	if err != nil {
		log.Errorf("pmalloc: arena init failed: %v\n", err)
		return ErrArenaInit
	}

	var index heap.PageIndex
	if cfg.DefaultString("pageindex", "mask") == "avl" {
		index = avlindex.New()
	}

	alloc, err := heap.NewFromConfig(cfg, a, index)
	if err != nil {
		a.Release()
		return err
	}

	arena, allocator = a, alloc
	log.Infof("pmalloc: initialized with %d CPU heaps, arena capacity %d bytes\n", alloc.CPUCount(), capacity)
	return nil
}

// Allocate returns a pointer to at least size usable bytes, or nil if
// the arena is exhausted. Panics with ErrNotInitialized if called before
// Initialize, matching the front-end dispatch contract that a
// misconfigured caller is a programming error, not a recoverable one.
func Allocate(size uintptr) unsafe.Pointer {
	a := currentAllocator()
	return a.Allocate(size)
}

// Release returns ptr, previously obtained from Allocate, to the
// allocator. A nil ptr is a no-op.
func Release(ptr unsafe.Pointer) {
	a := currentAllocator()
	a.Release(ptr)
}

func currentAllocator() *heap.Allocator {
	mu.Lock()
	a := allocator
	mu.Unlock()
	if a == nil {
		panic(ErrNotInitialized)
	}
	return a
}

// Shutdown releases the backing arena and clears allocator state. It
// exists for tests and short-lived benchmark processes; like
// sbrk.Arena.Release, it must not be called while any outstanding
// pointer is still in use.
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	if arena != nil {
		arena.Release()
	}
	arena, allocator = nil, nil
}
