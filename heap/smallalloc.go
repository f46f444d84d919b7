package heap

import (
	"unsafe"

	"github.com/koko1996/Parallel-Memory-Allocator/log"
)

// smallAllocate tries the heap's partial list,
// then its free_pages, then the global heap's free_pages, and only then
// grow the arena. Each step takes only the lock(s) it needs.
func (a *Allocator) smallAllocate(size uintptr, h *Heap, heapID int) unsafe.Pointer {
	class := classify(size)

	if ptr := a.tryPartial(h, class); ptr != nil {
		return ptr
	}

	pr := a.takeFreePage(h)
	if pr == nil {
		pr = a.takeFreePage(&a.heaps[GlobalHeapID])
	}
	if pr == nil {
		raw := a.arena.Grow(SuperblockSize)
		if raw == nil {
			log.Warnf("heap: arena exhausted growing a class-%d superblock\n", class)
			return nil
		}
		pr = (*PageRef)(raw)
		a.registerSuperblock(pr)
	}

	ptr := a.formatSuperblock(pr, class, heapID)

	h.sizeLocks[class].Lock()
	listPrepend(&h.Sizebases[class], pr)
	h.sizeLocks[class].Unlock()

	return ptr
}

// tryPartial pops a block from the head
// superblock of h.sizebases[class], moving that superblock to
// complete_pages if it just became fully used.
func (a *Allocator) tryPartial(h *Heap, class int) unsafe.Pointer {
	h.sizeLocks[class].Lock()

	pr := h.Sizebases[class]
	if pr == nil {
		h.sizeLocks[class].Unlock()
		return nil
	}

	node := (*freeNode)(pr.flist)
	pr.flist = node.next
	pr.Count--

	if pr.Count == 0 {
		listDetach(&h.Sizebases[class], pr)

		h.completeLock.Lock()
		listPrepend(&h.CompletePages, pr)
		h.completeLock.Unlock()
	}
	h.sizeLocks[class].Unlock()

	return unsafe.Pointer(node)
}

// takeFreePage pops the head of h's free_pages list, or returns nil.
func (a *Allocator) takeFreePage(h *Heap) *PageRef {
	h.freeLock.Lock()
	pr := freelistPop(&h.FreePages)
	if pr != nil {
		h.NFreePages--
	}
	h.freeLock.Unlock()
	return pr
}

// formatSuperblock carves a raw (or repurposed free) superblock into
// blocks of the given size class, links them into an intrusive
// LIFO free-list, and pops one block to satisfy the allocation that
// triggered the format.
func (a *Allocator) formatSuperblock(pr *PageRef, class int, heapID int) unsafe.Pointer {
	usableBase := pr.Addr() + PRHeaderSize
	blockSize := uintptr(sizes[class])
	count := int(a.classCapacity[class])

	pr.BlockType = int32(class)
	pr.Count = int32(count)
	pr.HeapID = int32(heapID)
	pr.Prev = nil

	var tail *freeNode
	for i := 0; i < count; i++ {
		node := (*freeNode)(unsafe.Pointer(usableBase + uintptr(i)*blockSize))
		node.next = unsafe.Pointer(tail)
		tail = node
	}
	pr.flist = unsafe.Pointer(tail)

	head := (*freeNode)(pr.flist)
	pr.flist = head.next
	pr.Count--

	return unsafe.Pointer(head)
}
