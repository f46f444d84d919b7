package heap

import (
	"unsafe"

	"github.com/koko1996/Parallel-Memory-Allocator/log"
)

// largeAllocate serves requests above LargestClass by growing the arena
// by a run of whole superblocks, tagging the first superblock's header
// with the run length so largeFree later knows how much to give back.
func (a *Allocator) largeAllocate(size uintptr, h *Heap, heapID int) unsafe.Pointer {
	npages := (PRHeaderSize + size + SuperblockSize - 1) / SuperblockSize

	raw := a.arena.Grow(npages * SuperblockSize)
	if raw == nil {
		log.Warnf("heap: arena exhausted growing a %d-page large run\n", npages)
		return nil
	}
	pr := (*PageRef)(raw)
	pr.BlockType = blockLarge
	pr.Count = int32(npages)
	pr.HeapID = int32(heapID)
	a.registerSuperblock(pr)

	h.largeLock.Lock()
	listPrepend(&h.LargePages, pr)
	h.largeLock.Unlock()

	return unsafe.Pointer(pr.Addr() + PRHeaderSize)
}

// largeFree detaches a large run from its owning heap's large_pages list
// and splits it back into individual free superblocks, each pushed onto
// that heap's free_pages, then offers the heap up for migration.
func (a *Allocator) largeFree(pr *PageRef) {
	h := &a.heaps[pr.HeapID]
	npages := uintptr(pr.Count)

	h.largeLock.Lock()
	listDetach(&h.LargePages, pr)
	h.largeLock.Unlock()

	base := pr.Addr()
	for i := uintptr(1); i < npages; i++ {
		page := (*PageRef)(unsafe.Pointer(base + i*SuperblockSize))
		a.registerSuperblock(page)
	}

	h.freeLock.Lock()
	for i := uintptr(0); i < npages; i++ {
		page := (*PageRef)(unsafe.Pointer(base + i*SuperblockSize))
		page.BlockType = blockFree
		page.Count = 0
		page.HeapID = pr.HeapID
		freelistPush(&h.FreePages, page)
	}
	h.NFreePages += int32(npages)
	h.freeLock.Unlock()

	migrate(a, h)
}
