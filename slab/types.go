package slab

import "github.com/joshuapare/slabkit/internal/format"

// Ref is an arena-relative byte offset. It is the only kind of reference the
// allocator stores: descriptors, free-list links and block handles are all Refs.
type Ref = uint64

// NilRef is the empty reference. It terminates chains and empty free lists.
const NilRef Ref = format.NilRef

// Block is a handle to an allocated block.
type Block struct {
	// Off is the arena-relative offset of the first byte.
	Off Ref
	// Size is the number of bytes requested.
	Size int
	// Class is the block capacity: the size class, or the span stride for spanning requests.
	Class uint32
	// Blocks is the number of max-class blocks covered. It is 1 unless the request spans.
	Blocks int
}

// Spanning reports whether the block was served by a span slab.
func (b Block) Spanning() bool { return b.Blocks > 1 }

// State is the allocator lifecycle state.
type State uint8

const (
	StateUninitialized State = iota
	StateInitialized
	// StateExhausted is terminal for growth: no further slab can be created.
	// Blocks already carved remain allocatable and freeable.
	StateExhausted
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateExhausted:
		return "exhausted"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name in JSON and text encodings.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
