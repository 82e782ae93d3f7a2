package slab

import (
	"github.com/joshuapare/slabkit/internal/buf"
	"github.com/joshuapare/slabkit/internal/format"
)

// Arena owns the backing buffer and the two watermarks.
//
// Metadata pages are claimed upward from LeftOffset; data pages are claimed
// downward from RightOffset. Running out of memory is the single condition
// "the watermarks would cross", and a failed claim mutates nothing.
//
// Invariant: 0 <= LeftOffset <= RightOffset <= Len at all times.
type Arena struct {
	buf      []byte
	length   uint64
	left     uint64
	right    uint64
	pageSize uint64
	align    uint64

	// slabList heads the data-slab chain (most recently used first).
	slabList Ref
	// metaSlab is the descriptor of the meta slab currently issuing descriptors.
	metaSlab Ref

	// exhausted latches once neither side can fit another page.
	exhausted bool
}

func newArena(b []byte, pageSize, align int) *Arena {
	return &Arena{
		buf:      b,
		length:   uint64(len(b)),
		left:     0,
		right:    uint64(len(b)),
		pageSize: uint64(pageSize),
		align:    uint64(align),
		slabList: NilRef,
		metaSlab: NilRef,
	}
}

// Len returns the size of the backing buffer.
func (a *Arena) Len() uint64 { return a.length }

// LeftOffset returns the metadata watermark.
func (a *Arena) LeftOffset() uint64 { return a.left }

// RightOffset returns the data watermark.
func (a *Arena) RightOffset() uint64 { return a.right }

// Exhausted reports whether the arena can no longer fit a page on either side.
func (a *Arena) Exhausted() bool { return a.exhausted }

// claimLeft carves size bytes forward from the metadata watermark and zeroes them.
func (a *Arena) claimLeft(size uint64) (Ref, error) {
	if a.exhausted {
		return NilRef, ErrArenaExhausted
	}
	off, ok := a.fitLeft(size)
	if !ok {
		a.noteFailure()
		return NilRef, ErrArenaExhausted
	}
	end := off + size
	clear(a.buf[off:end])
	a.left = end
	return off, nil
}

// claimRight carves size bytes backward from the data watermark and zeroes them.
func (a *Arena) claimRight(size uint64) (Ref, error) {
	if a.exhausted {
		return NilRef, ErrArenaExhausted
	}
	off, ok := a.fitRight(size)
	if !ok {
		a.noteFailure()
		return NilRef, ErrArenaExhausted
	}
	clear(a.buf[off : off+size])
	a.right = off
	return off, nil
}

func (a *Arena) fitLeft(size uint64) (uint64, bool) {
	off := format.AlignForward(a.left, a.align)
	end, ok := buf.AddOverflowSafe(off, size)
	if !ok || end > a.right {
		return 0, false
	}
	return off, true
}

func (a *Arena) fitRight(size uint64) (uint64, bool) {
	top := format.AlignBackward(a.right, a.align)
	if top < size || top-size < a.left {
		return 0, false
	}
	return top - size, true
}

// noteFailure latches exhaustion only when even a single page no longer fits.
// A failed multi-page span claim leaves room for ordinary slabs.
func (a *Arena) noteFailure() {
	_, okL := a.fitLeft(a.pageSize)
	_, okR := a.fitRight(a.pageSize)
	if !okL && !okR {
		a.exhausted = true
	}
}

// readNext decodes the free-list link stored in a free block.
func (a *Arena) readNext(block Ref) Ref {
	return format.ReadU64(a.buf, int(block)+format.EntryNextOffset)
}

// writeNext encodes a free-list link into a free block.
func (a *Arena) writeNext(block, next Ref) {
	format.PutU64(a.buf, int(block)+format.EntryNextOffset, next)
}
