// Package lib provides small, self-contained helpers used across the
// allocator packages. They are not tied to any single package and depend
// only on the standard library.
package lib
