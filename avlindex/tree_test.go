package avlindex

import (
	"math/rand"
	"testing"
	"unsafe"

	"github.com/koko1996/Parallel-Memory-Allocator/heap"
	"github.com/stretchr/testify/require"
)

// pageAt builds a PageRef-shaped header at a synthetic, well-spaced
// address so tests can exercise the tree without a real arena.
func pageAt(buf []byte, offset uintptr) *heap.PageRef {
	base := uintptr(unsafe.Pointer(&buf[0]))
	return (*heap.PageRef)(unsafe.Pointer(base + offset))
}

func TestInsertFindRoundTrip(t *testing.T) {
	buf := make([]byte, 64*int(heap.SuperblockSize))
	tree := New()

	var prs []*heap.PageRef
	for i := 0; i < 20; i++ {
		pr := pageAt(buf, uintptr(i)*heap.SuperblockSize)
		tree.Insert(pr)
		prs = append(prs, pr)
	}

	for i, pr := range prs {
		addrInside := pr.Addr() + uintptr(i%8)
		found := tree.Find(addrInside)
		require.Same(t, pr, found)
	}
}

func TestFindMissingReturnsNil(t *testing.T) {
	buf := make([]byte, 4*int(heap.SuperblockSize))
	tree := New()
	tree.Insert(pageAt(buf, 0))

	require.Nil(t, tree.Find(uintptr(unsafe.Pointer(&buf[0]))+10*heap.SuperblockSize))
}

func TestDeleteRemovesEntry(t *testing.T) {
	buf := make([]byte, 8*int(heap.SuperblockSize))
	tree := New()

	var prs []*heap.PageRef
	for i := 0; i < 8; i++ {
		pr := pageAt(buf, uintptr(i)*heap.SuperblockSize)
		tree.Insert(pr)
		prs = append(prs, pr)
	}

	tree.Delete(prs[3])
	require.Nil(t, tree.Find(prs[3].Addr()))

	for i, pr := range prs {
		if i == 3 {
			continue
		}
		require.Same(t, pr, tree.Find(pr.Addr()))
	}
}

func TestInsertDeleteRandomOrderStaysConsistent(t *testing.T) {
	const n = 100
	buf := make([]byte, n*int(heap.SuperblockSize))
	tree := New()

	prs := make([]*heap.PageRef, n)
	for i := 0; i < n; i++ {
		prs[i] = pageAt(buf, uintptr(i)*heap.SuperblockSize)
	}

	order := rand.Perm(n)
	for _, i := range order {
		tree.Insert(prs[i])
	}
	for _, i := range order {
		require.Same(t, prs[i], tree.Find(prs[i].Addr()))
	}

	// Delete half, then confirm both halves are consistent.
	for _, i := range order[:n/2] {
		tree.Delete(prs[i])
	}
	for _, i := range order[:n/2] {
		require.Nil(t, tree.Find(prs[i].Addr()))
	}
	for _, i := range order[n/2:] {
		require.Same(t, prs[i], tree.Find(prs[i].Addr()))
	}
}
