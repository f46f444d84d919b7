// Package heap implements the concurrent, size-classed superblock
// allocator at the core of this module: one local heap per CPU feeding
// from a shared global heap (heap index 0), slab-style superblocks
// partitioned into fixed block sizes, and migration of emptied
// superblocks back to the global free list.
//
// Every operation takes only the locks it needs and releases them
// before the next is acquired, except for sizebases before
// complete_pages, which are held together to move a superblock between
// those two lists without a lost-update race. Migration releases the
// local heap's free_pages lock before taking the global heap's, so
// those two are never held at once.
package heap
