package slab

import "github.com/joshuapare/slabkit/internal/format"

// descriptor is the decoded form of a slab descriptor.
// The authoritative copy always lives in a meta-slab block; a descriptor value
// is a transient view that is loaded, changed, and stored back.
type descriptor struct {
	next     Ref    // next descriptor in the owning chain
	freeList Ref    // first free block, NilRef when full
	start    Ref    // base offset of the slab region
	size     uint32 // object stride, immutable once set
	pages    uint32 // region length in pages
}

func (a *Arena) loadDescriptor(ref Ref) descriptor {
	off := int(ref)
	return descriptor{
		next:     format.ReadU64(a.buf, off+format.DescNextOffset),
		freeList: format.ReadU64(a.buf, off+format.DescFreeListOffset),
		start:    format.ReadU64(a.buf, off+format.DescStartOffset),
		size:     format.ReadU32(a.buf, off+format.DescSizeOffset),
		pages:    format.ReadU32(a.buf, off+format.DescPagesOffset),
	}
}

func (a *Arena) storeDescriptor(ref Ref, d descriptor) {
	off := int(ref)
	format.PutU64(a.buf, off+format.DescNextOffset, d.next)
	format.PutU64(a.buf, off+format.DescFreeListOffset, d.freeList)
	format.PutU64(a.buf, off+format.DescStartOffset, d.start)
	format.PutU32(a.buf, off+format.DescSizeOffset, d.size)
	format.PutU32(a.buf, off+format.DescPagesOffset, d.pages)
}

// regionLen is the byte length of the slab region.
func (d descriptor) regionLen(pageSize uint64) uint64 {
	return uint64(d.pages) * pageSize
}

// capacity is the number of threaded slots. The final slot of a region is
// never threaded, except that a region always carries at least one block.
// Span slabs follow the same rule: one block when the stride is at least half
// the region, pageSize/stride-1 blocks otherwise.
func (d descriptor) capacity(pageSize uint64) uint64 {
	n := d.regionLen(pageSize) / uint64(d.size)
	if n <= 1 {
		return 1
	}
	return n - 1
}
