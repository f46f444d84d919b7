// +build linux

package sbrk

/*
#define _GNU_SOURCE
#include <sched.h>
*/
import "C"

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// CPUCount returns the number of CPUs this process may run on. It
// prefers the process's scheduling affinity mask, falling back to
// runtime.NumCPU() when the affinity syscall is unavailable (e.g. when
// sandboxed).
func CPUCount() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err == nil {
		if n := set.Count(); n > 0 {
			return n
		}
	}
	return runtime.NumCPU()
}

// CurrentCPU returns the index of the CPU the calling OS thread is
// presently running on. The allocator's front-end uses this to pick a
// heap; the index is not required to be dense, only non-negative.
//
// Getting a faithful answer requires asking the kernel directly, the way
// the system this package reimplements calls sched_getcpu(3) itself, so
// this locks the calling goroutine to its OS thread for the duration of
// the call to avoid being rescheduled onto a different CPU mid-syscall.
func CurrentCPU() int {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	cpu := int(C.sched_getcpu())
	if cpu < 0 {
		return 0
	}
	return cpu
}
