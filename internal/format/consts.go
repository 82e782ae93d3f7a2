// Package format defines the in-arena layout used by the slab allocator:
// alignment helpers, the little-endian word codec, and the byte offsets of
// slab descriptors and free-list nodes. It knows nothing about allocation
// policy.
package format

// NilRef marks the end of a chain or an empty free list.
// Offset 0 is a valid block (the first meta-slab descriptor lives there),
// so the sentinel is the all-ones value instead.
const NilRef uint64 = ^uint64(0)

// Slab descriptor layout (little-endian, 32 bytes):
//
//	0x00  next      uint64  next descriptor in the owning chain
//	0x08  freeList  uint64  first free block in the slab region
//	0x10  start     uint64  base offset of the slab region
//	0x18  size      uint32  object stride
//	0x1C  pages     uint32  region length in pages
const (
	DescNextOffset     = 0x00
	DescFreeListOffset = 0x08
	DescStartOffset    = 0x10
	DescSizeOffset     = 0x18
	DescPagesOffset    = 0x1C

	// DescriptorSize is the stride of meta-slab blocks.
	DescriptorSize = 0x20
)

// Free-list node layout: the first word of a free block.
//
//	0x00  next  uint64  next free block, or NilRef
const (
	EntryNextOffset = 0x00

	// EntrySize is the smallest block that can hold a free-list node.
	EntrySize = 0x08
)

const (
	// DefaultPageSize is the slab page size used when none is configured.
	DefaultPageSize = 4096

	// DefaultAlignment is the page placement alignment (two machine words).
	DefaultAlignment = 16

	// DefaultMinShift and DefaultMaxShift bound the power-of-two class ladder (32B to 1KB).
	DefaultMinShift = 5
	DefaultMaxShift = 10
)
