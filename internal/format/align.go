package format

// Alignment helpers for placing slab pages inside the arena.
// These operate on arena-relative offsets, never on raw addresses.

// IsPowerOfTwo reports whether x is a power of two. Zero is not.
func IsPowerOfTwo(x uint64) bool {
	return x != 0 && x&(x-1) == 0
}

// AlignForward rounds off up to the next multiple of align.
// align must be a power of two; anything else is a programming error and panics.
//
// Example:
//
//	AlignForward(1, 16)  = 16
//	AlignForward(16, 16) = 16
//	AlignForward(17, 16) = 32
func AlignForward(off, align uint64) uint64 {
	mustPowerOfTwo(align)
	if mod := off & (align - 1); mod != 0 {
		off += align - mod
	}
	return off
}

// AlignBackward rounds off down to the previous multiple of align.
// align must be a power of two; anything else is a programming error and panics.
//
// Example:
//
//	AlignBackward(31, 16) = 16
//	AlignBackward(32, 16) = 32
func AlignBackward(off, align uint64) uint64 {
	mustPowerOfTwo(align)
	return off &^ (align - 1)
}

func mustPowerOfTwo(align uint64) {
	if !IsPowerOfTwo(align) {
		panic(ErrAlignment)
	}
}
