// +build !linux

package sbrk

import (
	"runtime"
	"sync/atomic"
)

// CPUCount returns runtime.NumCPU() on platforms without a cheap
// affinity-mask syscall wired in.
func CPUCount() int {
	return runtime.NumCPU()
}

var cpuRoundRobin int64

// CurrentCPU approximates the calling thread's CPU with a round-robin
// counter. Platforms without sched_getcpu(3) cannot ask the kernel
// directly; callers only need a non-negative, not-necessarily-dense
// index to pick a heap, which a round-robin assignment satisfies for
// load-spreading purposes even though it is not a true affinity read
// and successive calls from the same thread return different indices.
func CurrentCPU() int {
	return int(atomic.AddInt64(&cpuRoundRobin, 1) % int64(runtime.NumCPU()))
}
