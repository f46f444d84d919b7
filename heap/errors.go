package heap

import "errors"

// ErrSizeClass is raised when a request's size never should have reached
// the small-allocation size-class classifier (the front-end dispatcher
// is supposed to route anything above the largest class to the large
// path first). Seeing this indicates a dispatch bug, not a user error.
var ErrSizeClass = errors.New("heap: size exceeds largest size class")

// ErrArenaExhausted is returned by New when the backing arena cannot grow
// by the padding needed to align it to SuperblockSize. Exhaustion during
// Allocate does not use it: Allocate returns a nil pointer, per the
// classic allocator contract.
var ErrArenaExhausted = errors.New("heap: arena exhausted")
