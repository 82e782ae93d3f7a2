package slab

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// SlabKind distinguishes slab roles in inspection output.
type SlabKind uint8

const (
	KindData SlabKind = iota
	KindSpan
	KindMeta
)

func (k SlabKind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindSpan:
		return "span"
	case KindMeta:
		return "meta"
	default:
		return "unknown"
	}
}

// SlabInfo describes one slab as seen by walking its descriptor and free list.
type SlabInfo struct {
	Kind       SlabKind
	Descriptor Ref // where the descriptor lives
	Start      Ref
	Pages      uint32
	Size       uint32 // block stride
	Capacity   int    // threaded slots
	// Free holds the slot indexes currently on the free list.
	// A slot is occupied exactly when it is absent from Free.
	Free *roaring.Bitmap
}

// Used returns the number of occupied slots.
func (s SlabInfo) Used() int {
	return s.Capacity - int(s.Free.GetCardinality())
}

// Occupied reports whether slot i is allocated.
func (s SlabInfo) Occupied(i int) bool {
	return i >= 0 && i < s.Capacity && !s.Free.Contains(uint32(i))
}

// Slabs walks the data-slab chain, most recently used first.
// Intended for diagnostics; it allocates.
func (al *Allocator) Slabs() []SlabInfo {
	if al.usable() != nil {
		return nil
	}
	var out []SlabInfo
	maxClass := uint32(al.classes.maxClass)
	for ref := al.arena.slabList; ref != NilRef; {
		d := al.arena.loadDescriptor(ref)
		kind := KindData
		if d.size > maxClass {
			kind = KindSpan
		}
		out = append(out, al.describe(kind, ref, d))
		ref = d.next
	}
	return out
}

// MetaSlabs walks the meta-slab chain, current first.
func (al *Allocator) MetaSlabs() []SlabInfo {
	if al.usable() != nil {
		return nil
	}
	var out []SlabInfo
	for ref := al.arena.metaSlab; ref != NilRef; {
		d := al.arena.loadDescriptor(ref)
		out = append(out, al.describe(KindMeta, ref, d))
		ref = d.next
	}
	return out
}

func (al *Allocator) describe(kind SlabKind, ref Ref, d descriptor) SlabInfo {
	a := al.arena
	capacity := d.capacity(a.pageSize)
	free := roaring.New()
	// Bounded walk: a corrupted link (caller wrote into a freed block) must not loop forever.
	for off, n := d.freeList, uint64(0); off != NilRef && n < capacity; n++ {
		if !a.contains(&d, off) {
			break
		}
		free.Add(uint32((off - d.start) / uint64(d.size)))
		off = a.readNext(off)
	}
	return SlabInfo{
		Kind:       kind,
		Descriptor: ref,
		Start:      d.start,
		Pages:      d.pages,
		Size:       d.size,
		Capacity:   int(capacity),
		Free:       free,
	}
}
