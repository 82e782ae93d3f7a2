package slab

import "errors"

var (
	// ErrInvalidArgument indicates a zero-length backing buffer or an invalid Config.
	ErrInvalidArgument = errors.New("slab: invalid argument")

	// ErrArenaExhausted indicates that no room remains on the growth side needed
	// for a new meta or data slab. The arena is left unchanged.
	ErrArenaExhausted = errors.New("slab: arena exhausted")

	// ErrInvalidSize indicates a zero or negative request, or a spanning request
	// beyond the configured or representable bound.
	ErrInvalidSize = errors.New("slab: invalid allocation size")

	// ErrNotOwned indicates a free of an offset that is not a block issued by any slab.
	ErrNotOwned = errors.New("slab: pointer not owned by any slab")

	// ErrClosed indicates use of an allocator that was never initialized or was deinitialized.
	ErrClosed = errors.New("slab: allocator closed")
)
