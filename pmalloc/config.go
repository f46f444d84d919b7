package pmalloc

import "github.com/koko1996/Parallel-Memory-Allocator/lib"

// Config configures Initialize. It is a thin alias over lib.Config so
// callers can build it the same way the rest of this codebase builds
// theirs: a flat map of dotted keys.
//
// Recognized keys:
//
//	"heap.cpucount"   int64  - override for sbrk.CPUCount(), mainly for tests
//	"arena.capacity"  int64  - bytes reserved up front, default sbrk.DefaultCapacity
//	"pageindex"       string - "mask" (default) or "avl"
type Config = lib.Config

// DefaultConfig returns an empty Config; every key falls back to its
// documented default.
func DefaultConfig() Config {
	return make(Config)
}
