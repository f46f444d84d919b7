package heap

import "unsafe"

// smallFree returns a block to its superblock's intrusive free-list and
// reclassifies the superblock if that push changed its fullness: a
// complete superblock rejoins its size class's partial list, and a
// superblock that just became fully free is handed to moveToFree.
//
// Lock order: h.sizeLocks[class] is always acquired before
// h.completeLock, matching every other path that touches both.
func (a *Allocator) smallFree(ptr unsafe.Pointer, pr *PageRef) {
	class := pr.SizeClass()
	h := &a.heaps[pr.HeapID]
	capacity := a.classCapacity[class]

	node := (*freeNode)(ptr)

	h.sizeLocks[class].Lock()

	wasFull := pr.Count == 0
	node.next = pr.flist
	pr.flist = unsafe.Pointer(node)
	pr.Count++

	nowEmpty := pr.Count == capacity

	if wasFull {
		h.completeLock.Lock()
		listDetach(&h.CompletePages, pr)
		h.completeLock.Unlock()
	} else if nowEmpty {
		listDetach(&h.Sizebases[class], pr)
	}

	if !nowEmpty {
		if wasFull {
			listPrepend(&h.Sizebases[class], pr)
		}
		h.sizeLocks[class].Unlock()
		return
	}

	h.sizeLocks[class].Unlock()
	moveToFree(a, h, pr)
}
