package heap

import "unsafe"

// NumSizes is the number of fixed size classes.
const NumSizes = 9

// sizes are the nine fixed block sizes, in bytes. A request of size s is
// rounded up to the smallest class >= s; requests above LargestClass
// take the large path.
var sizes = [NumSizes]int64{8, 16, 32, 64, 128, 256, 512, 1024, 2048}

// LargestClass is the largest size servable by the small-allocation
// path. Anything bigger is a large allocation.
const LargestClass = int64(2048)

// Sentinel block_type values outside the [0, NumSizes) size-class range.
const (
	blockFree  int32 = -1
	blockLarge int32 = -2
)

// freeNode is the intrusive free-list link written into the first
// pointer-width of an otherwise-unused block. It is the only part of a
// freed block the allocator ever touches.
type freeNode struct {
	next unsafe.Pointer
}

// PageRef is the header living at the start of every superblock. Its
// address is recoverable from any interior block pointer by masking to
// the superblock alignment (or, if configured, via the AVL index), which
// is the reason superblocks must start on a SuperblockSize boundary.
type PageRef struct {
	Next      *PageRef
	Prev      *PageRef
	flist     unsafe.Pointer // head of the intrusive free-list (size-classed only)
	BlockType int32          // size class [0, NumSizes), blockFree, or blockLarge
	Count     int32          // free blocks (size-classed) or run length (large)
	HeapID    int32
	_         int32 // pad to keep the struct 8-byte aligned throughout
}

// PRHeaderSize is sizeof(PageRef), the number of header bytes carved out
// of every superblock before its usable region begins.
var PRHeaderSize = unsafe.Sizeof(PageRef{})

// IsFree reports whether the header currently tags a free superblock.
func (pr *PageRef) IsFree() bool { return pr.BlockType == blockFree }

// IsLarge reports whether the header belongs to a large-allocation run.
func (pr *PageRef) IsLarge() bool { return pr.BlockType == blockLarge }

// SizeClass returns the size class index for a size-classed superblock.
// Only meaningful when neither IsFree nor IsLarge holds.
func (pr *PageRef) SizeClass() int { return int(pr.BlockType) }

// Addr returns the superblock's start address.
func (pr *PageRef) Addr() uintptr { return uintptr(unsafe.Pointer(pr)) }

// classify picks the smallest size class able to hold size bytes. A
// request of size 0 is rounded up to the first class, per the allocator
// contract that size 0 still returns a valid block.
func classify(size uintptr) int {
	if size == 0 {
		size = 1
	}
	for i, sz := range sizes {
		if int64(size) <= sz {
			return i
		}
	}
	// The front-end dispatcher is responsible for routing anything above
	// LargestClass to the large path; reaching here is a dispatch bug.
	panic(ErrSizeClass)
}
