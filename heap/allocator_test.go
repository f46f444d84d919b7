package heap

import (
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// fakeArena is an in-process Arena backed by a real heap-allocated Go
// byte slice, so tests don't depend on cgo or a real process arena.
type fakeArena struct {
	mu       sync.Mutex
	buf      []byte
	used     uintptr
	capacity uintptr
}

func newFakeArena(capacity uintptr) *fakeArena {
	return &fakeArena{buf: make([]byte, capacity), capacity: capacity}
}

func (f *fakeArena) Grow(n uintptr) unsafe.Pointer {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.used+n > f.capacity {
		return nil
	}
	ptr := unsafe.Pointer(&f.buf[f.used])
	f.used += n
	return ptr
}

func (f *fakeArena) Bounds() (lo, hi uintptr) {
	f.mu.Lock()
	defer f.mu.Unlock()
	base := uintptr(unsafe.Pointer(&f.buf[0]))
	return base, base + f.used
}

func newTestAllocator(t *testing.T, cpuCount int, capacity uintptr) (*Allocator, *fakeArena) {
	t.Helper()
	arena := newFakeArena(capacity)
	a, err := New(arena, cpuCount, nil)
	require.NoError(t, err)
	return a, arena
}

// Scenario 1: single-thread sanity. A fresh allocator serves a small
// request and the returned pointer falls inside the arena's bounds.
func TestAllocateSingleThreadSanity(t *testing.T) {
	a, arena := newTestAllocator(t, 4, 1<<20)

	ptr := a.Allocate(24)
	require.NotNil(t, ptr)

	lo, hi := arena.Bounds()
	got := uintptr(ptr)
	require.GreaterOrEqual(t, got, lo)
	require.Less(t, got, hi)
}

// Scenario 2: exhausting a superblock's size class forces a second
// superblock to be carved from the arena.
func TestAllocateExhaustsSuperblock(t *testing.T) {
	a, _ := newTestAllocator(t, 1, 1<<20)

	capacity := a.classCapacity[0] // smallest class, 8 bytes
	seen := make(map[uintptr]bool)
	for i := int32(0); i < capacity+1; i++ {
		ptr := a.Allocate(8)
		require.NotNil(t, ptr)
		require.False(t, seen[uintptr(ptr)], "returned same address twice")
		seen[uintptr(ptr)] = true
	}
	require.Len(t, seen, int(capacity+1))
}

// Scenario 3: a freed block is handed back out by a subsequent
// allocation of the same size class instead of growing the arena again.
func TestFreeListReuse(t *testing.T) {
	a, arena := newTestAllocator(t, 1, 1<<20)

	ptr1 := a.Allocate(16)
	require.NotNil(t, ptr1)
	_, hiBefore := arena.Bounds()

	a.Release(ptr1)

	ptr2 := a.Allocate(16)
	require.Equal(t, ptr1, ptr2)

	_, hiAfter := arena.Bounds()
	require.Equal(t, hiBefore, hiAfter, "arena should not have grown on reuse")
}

// Scenario 4: migration. Freeing enough superblocks on one local heap
// pushes the slack onto the global heap's free_pages.
func TestMigrationToGlobalHeap(t *testing.T) {
	// cpuCount must be > 1: migration is a deliberate no-op on a
	// single-CPU system, since there is only one local heap to feed.
	// Allocations are driven directly through smallAllocate (bypassing
	// Allocate's real CPU read) so every block lands on heap 1
	// deterministically, regardless of which CPU the test runs on.
	a, _ := newTestAllocator(t, 2, 8<<20)
	h := &a.heaps[1]
	capacity := a.classCapacity[0]

	// Build and then fully free enough size-0 superblocks to push this
	// heap's free_pages count above FreePageThreshold.
	const blocks = FreePageThreshold + 2
	ptrs := make([]unsafe.Pointer, 0, blocks*int(capacity))
	for i := 0; i < blocks; i++ {
		for j := int32(0); j < capacity; j++ {
			ptr := a.smallAllocate(8, h, 1)
			require.NotNil(t, ptr)
			ptrs = append(ptrs, ptr)
		}
	}
	for _, ptr := range ptrs {
		a.Release(ptr)
	}

	global := &a.heaps[GlobalHeapID]
	require.Greater(t, global.NFreePages, int32(0), "expected superblocks migrated to the global heap")
	require.LessOrEqual(t, h.NFreePages, int32(FreePageThreshold))
}

// Scenario 5: large allocation round-trips through the arena and back
// to a usable free superblock run.
func TestLargeAllocateAndFree(t *testing.T) {
	a, arena := newTestAllocator(t, 2, 8<<20)

	size := uintptr(LargestClass) * 3
	ptr := a.Allocate(size)
	require.NotNil(t, ptr)

	lo, hi := arena.Bounds()
	got := uintptr(ptr)
	require.GreaterOrEqual(t, got, lo)
	require.Less(t, got, hi)

	pr := a.pageRefFor(ptr)
	require.True(t, pr.IsLarge())
	npages := pr.Count

	a.Release(ptr)

	h := &a.heaps[pr.HeapID]
	require.GreaterOrEqual(t, h.NFreePages, npages)
}

// Scenario 6: a block allocated while pinned to one heap can be freed
// while the allocator reports a different current CPU; Release must
// resolve the owning heap from the block's own header, not the caller's
// CPU. Driving the allocation through smallAllocate directly (rather
// than Allocate, which reads the real CPU) pins the block to heap 3 no
// matter which CPU this test happens to run on, so the free can be
// checked against a heap the "current CPU" would not naturally pick.
func TestCrossHeapFree(t *testing.T) {
	a, _ := newTestAllocator(t, 4, 1<<20)

	owner := &a.heaps[3]
	ptr := a.smallAllocate(32, owner, 3)
	require.NotNil(t, ptr)

	pr := a.pageRefFor(ptr)
	require.NotNil(t, pr)
	require.EqualValues(t, 3, pr.HeapID)

	// Release is called as if the current CPU mapped to heap 1 instead
	// of heap 3 — Release never consults the calling CPU, only pr's own
	// header, so the freed block must land back on heap 3 regardless.
	other := &a.heaps[1]
	otherFreeBefore := other.NFreePages

	a.Release(ptr)

	require.Equal(t, otherFreeBefore, other.NFreePages,
		"free must not touch an unrelated heap just because it differs from the owning one")
	require.EqualValues(t, 1, owner.NFreePages,
		"the single-block superblock must be retired back onto its owning heap's free_pages")
}

func TestReleaseNilIsNoop(t *testing.T) {
	a, _ := newTestAllocator(t, 1, 1<<16)
	require.NotPanics(t, func() { a.Release(nil) })
}

func TestClassifyPanicsAboveLargestClass(t *testing.T) {
	require.Panics(t, func() { classify(uintptr(LargestClass) + 1) })
}

func TestConcurrentAllocateFree(t *testing.T) {
	a, _ := newTestAllocator(t, 8, 32<<20)

	const goroutines = 16
	const repeat = 2000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func(seed int) {
			defer wg.Done()
			sizes := []uintptr{8, 24, 100, 600, 3000}
			for i := 0; i < repeat; i++ {
				size := sizes[(seed+i)%len(sizes)]
				ptr := a.Allocate(size)
				if ptr == nil {
					continue
				}
				a.Release(ptr)
			}
		}(g)
	}
	wg.Wait()
}
