// Package slab provides a fixed-arena, size-classed slab allocator.
//
// # Overview
//
// An Allocator manages one caller-supplied byte buffer. The buffer is carved
// into page-sized slabs, each dedicated to one power-of-two size class, and
// each slab threads an intrusive free list through its unused blocks.
// Allocation and free are O(1) apart from the slab-list search, and after
// New returns the allocator never allocates from the Go heap on the
// Allocate/Free path.
//
// # Arena Layout
//
// Metadata and data grow toward each other from opposite ends:
//
//	offset 0                                                     len(buf)
//	| meta | meta | ... ->       free gap        <- ... | data | data |
//	        LeftOffset                       RightOffset
//
// The allocator is out of memory exactly when the two watermarks would cross.
//
// # Self-Hosting Metadata
//
// Slab descriptors are 32-byte records stored in meta slabs, which are
// themselves slabs. The first block of every meta slab is its own
// descriptor: New builds the descriptor as a local value, pops one block
// from the page it describes, and copies itself there.
//
// # Size Classes
//
// Requests are rounded up to the smallest class in 1<<MinShift ... 1<<MaxShift
// (32B to 1KB by default). A request above the largest class is a spanning
// request: it needs ceil(size/maxClass) max-class blocks and is served from a
// span slab whose stride covers all of them, so the blocks are always
// contiguous. With the default page a span slab holds one block; larger pages
// fit several blocks of the same stride.
//
// # Usage Example
//
//	backing := make([]byte, 64*4096)
//	al, err := slab.New(backing, nil)
//	if err != nil {
//	    return err
//	}
//
//	blk, err := al.Allocate(20) // served from the 32-byte class
//	if err != nil {
//	    return err
//	}
//	copy(al.Bytes(blk), "hello")
//
//	if err := al.Free(blk); err != nil {
//	    return err
//	}
//
// # Reclamation
//
// Slabs and descriptors are never returned to the arena. A fully freed slab
// stays on the slab list and keeps serving its class.
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally.
package slab
