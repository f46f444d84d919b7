// Package sbrk implements the arena provider the allocator is built on:
// a single, monotonically growing contiguous byte region, handed out in
// coarse chunks via Grow. Memory handed out by Grow is never returned
// to the operating system piecemeal; only Arena.Release frees the whole
// region at once. Release of individual blocks is entirely the concern of the
// layers built on top of this package.
//
// The region is backed by a single cgo allocation, mirroring the way
// this codebase's memory pools have always sourced their backing memory
// from C.malloc rather than Go's own allocator — necessary here because
// superblocks must live at addresses the Go garbage collector does not
// scan or move.
package sbrk
