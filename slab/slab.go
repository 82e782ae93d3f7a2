package slab

import (
	"fmt"

	"github.com/joshuapare/slabkit/internal/buf"
)

// initSlab threads a free list through a freshly claimed, zeroed region and
// returns the transient descriptor for it. Slot i links to slot i+1; the last
// threaded slot links to NilRef.
func (a *Arena) initSlab(region Ref, pages, size uint32) descriptor {
	d := descriptor{
		next:     NilRef,
		freeList: region,
		start:    region,
		size:     size,
		pages:    pages,
	}
	stride := uint64(size)
	n := d.capacity(a.pageSize)
	cur := region
	for i := uint64(1); i < n; i++ {
		next := region + i*stride
		a.writeNext(cur, next)
		cur = next
	}
	a.writeNext(cur, NilRef)
	return d
}

// slabAlloc pops the head of d's free list. It fails when d is of another
// size or has no free block. O(1).
func (a *Arena) slabAlloc(d *descriptor, size uint32) (Ref, bool) {
	if d.size != size || d.freeList == NilRef {
		return NilRef, false
	}
	block := d.freeList
	d.freeList = a.readNext(block)
	return block, true
}

// contains reports whether off lies within d's region.
func (a *Arena) contains(d *descriptor, off Ref) bool {
	return buf.Within(off, d.start, d.regionLen(a.pageSize))
}

// checkBlock validates that off is a threadable block boundary of d.
// The caller has already established that off lies within d's region.
func (a *Arena) checkBlock(d *descriptor, off Ref) error {
	rel := off - d.start
	stride := uint64(d.size)
	if rel%stride != 0 {
		return fmt.Errorf("%w: offset %d is not a block boundary of slab at %d (stride %d)",
			ErrNotOwned, off, d.start, stride)
	}
	if rel/stride >= d.capacity(a.pageSize) {
		return fmt.Errorf("%w: offset %d is the unthreaded tail of slab at %d",
			ErrNotOwned, off, d.start)
	}
	return nil
}

// slabFree pushes off onto d's free list after validating ownership.
// A block already at the head of the free list is rejected.
// On failure nothing is written. O(1).
func (a *Arena) slabFree(d *descriptor, off Ref) error {
	if !a.contains(d, off) {
		return ErrNotOwned
	}
	if err := a.checkBlock(d, off); err != nil {
		return err
	}
	// Only the head is checked; a block deeper in the list is not detected.
	if off == d.freeList {
		return fmt.Errorf("%w: offset %d is already free in slab at %d", ErrNotOwned, off, d.start)
	}
	a.writeNext(off, d.freeList)
	d.freeList = off
	return nil
}
