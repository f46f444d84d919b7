package pmalloc

import "errors"

var (
	// ErrArenaInit is returned when the backing arena could not be
	// reserved from the OS.
	ErrArenaInit = errors.New("pmalloc: failed to reserve arena")

	// ErrArenaExhausted names arena exhaustion. No function of this
	// package returns it: Allocate reports exhaustion as a nil pointer,
	// per the classic malloc contract, and Initialize passes on
	// heap.ErrArenaExhausted when the arena cannot grow during setup.
	ErrArenaExhausted = errors.New("pmalloc: arena exhausted")

	// ErrAlreadyInitialized is returned by Initialize if called more
	// than once.
	ErrAlreadyInitialized = errors.New("pmalloc: already initialized")

	// ErrNotInitialized is the value Allocate and Release panic with
	// when called before Initialize.
	ErrNotInitialized = errors.New("pmalloc: not initialized")

	// ErrSizeClass mirrors heap.ErrSizeClass: a request reached the
	// size-class classifier despite exceeding the largest class.
	ErrSizeClass = errors.New("pmalloc: size exceeds largest size class")
)
