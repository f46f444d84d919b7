package heap

// migrate moves at most one free superblock from a local heap to the
// global heap, once that local heap holds more than FreePageThreshold of
// them. The global heap never migrates to itself. Migrating only the
// slack above the threshold, one superblock at a time, avoids
// oscillation between the two heaps.
func migrate(a *Allocator, h *Heap) {
	if h.ID == GlobalHeapID || a.cpuCount == 1 {
		return
	}

	h.freeLock.Lock()
	if h.NFreePages <= FreePageThreshold {
		h.freeLock.Unlock()
		return
	}
	pr := freelistPop(&h.FreePages)
	h.NFreePages--
	h.freeLock.Unlock()

	global := &a.heaps[GlobalHeapID]
	global.freeLock.Lock()
	pr.HeapID = GlobalHeapID
	freelistPush(&global.FreePages, pr)
	global.NFreePages++
	global.freeLock.Unlock()
}

// moveToFree retires a superblock whose size-classed blocks have all
// been freed: it is untagged from its size class, pushed onto h's
// free_pages, and h is offered up for migration.
func moveToFree(a *Allocator, h *Heap, pr *PageRef) {
	pr.BlockType = blockFree
	pr.Count = 0

	h.freeLock.Lock()
	freelistPush(&h.FreePages, pr)
	h.NFreePages++
	h.freeLock.Unlock()

	migrate(a, h)
}
