package sbrk

import "errors"

// ErrArenaInit is returned by New when the backing allocation for the
// arena could not be obtained from the operating system.
var ErrArenaInit = errors.New("sbrk: arena init failed")
