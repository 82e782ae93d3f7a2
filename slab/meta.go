package slab

import (
	"fmt"

	"github.com/joshuapare/slabkit/internal/format"
)

// allocateMetaSlab claims a page at the metadata watermark and makes it the
// current source of descriptors.
//
// The bootstrap is two-phase: the descriptor is first built as a local value,
// then used to pop the first block of its own page, and finally copied into
// that block. A meta slab's permanent record is therefore its own first block.
func (al *Allocator) allocateMetaSlab() error {
	a := al.arena
	region, err := a.claimLeft(a.pageSize)
	if err != nil {
		al.logExhausted("meta")
		return err
	}

	m := a.initSlab(region, 1, format.DescriptorSize)
	self, ok := a.slabAlloc(&m, format.DescriptorSize)
	if !ok {
		// Config.Validate guarantees room for the self-describing slot.
		panic("slab: meta slab has no slot for its own descriptor")
	}
	m.next = a.metaSlab
	a.storeDescriptor(self, m)
	a.metaSlab = self

	al.stats.MetaSlabs++
	al.log.Debug("slab: bootstrapped meta slab",
		"start", region, "descriptors", m.capacity(a.pageSize)-1, "left", a.left)
	return nil
}

// takeDescriptor issues one descriptor slot from the current meta slab,
// bootstrapping a new meta slab when the current one is exhausted.
// Superseded meta slabs are never revisited for issuance.
func (al *Allocator) takeDescriptor() (Ref, error) {
	a := al.arena
	if ref, ok := al.popDescriptor(); ok {
		return ref, nil
	}
	if err := al.allocateMetaSlab(); err != nil {
		return NilRef, err
	}
	ref, ok := al.popDescriptor()
	if !ok {
		return NilRef, fmt.Errorf("slab: fresh meta slab at %d issued no descriptor", a.metaSlab)
	}
	return ref, nil
}

func (al *Allocator) popDescriptor() (Ref, bool) {
	a := al.arena
	m := a.loadDescriptor(a.metaSlab)
	ref, ok := a.slabAlloc(&m, format.DescriptorSize)
	if !ok {
		return NilRef, false
	}
	a.storeDescriptor(a.metaSlab, m)
	al.stats.Descriptors++
	return ref, true
}

// returnDescriptor gives back a descriptor slot that was taken for a slab
// whose region could not be claimed. The slot always belongs to the current
// meta slab: nothing can supersede it between take and return.
func (al *Allocator) returnDescriptor(ref Ref) {
	a := al.arena
	m := a.loadDescriptor(a.metaSlab)
	if err := a.slabFree(&m, ref); err != nil {
		panic(fmt.Sprintf("slab: returned descriptor %d not owned by current meta slab: %v", ref, err))
	}
	a.storeDescriptor(a.metaSlab, m)
	al.stats.Descriptors--
}
