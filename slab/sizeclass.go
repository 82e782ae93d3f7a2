package slab

import (
	"fmt"
	"math"
	"math/bits"
	"strings"

	"github.com/joshuapare/slabkit/internal/buf"
)

// Class is the outcome of size-class selection.
type Class struct {
	// Size is the block stride: a power-of-two class, or blocks*maxClass when spanning.
	Size uint32
	// Blocks is the number of max-class blocks a spanning request covers (1 otherwise).
	Blocks int
	// Pages is the slab region length this class is carved from.
	Pages uint32
}

// Spanning reports whether the request exceeded the largest power-of-two class.
func (c Class) Spanning() bool { return c.Blocks > 1 }

// sizeClassTable holds the power-of-two ladder derived from a Config.
type sizeClassTable struct {
	minShift  uint
	maxShift  uint
	maxClass  uint64
	pageSize  uint64
	spanLimit int
}

func newSizeClassTable(c Config) *sizeClassTable {
	return &sizeClassTable{
		minShift:  c.MinShift,
		maxShift:  c.MaxShift,
		maxClass:  1 << c.MaxShift,
		pageSize:  uint64(c.PageSize),
		spanLimit: c.MaxSpanBlocks,
	}
}

// selectClass maps a request to the smallest class that holds it.
// Requests above the largest class span ceil(size/maxClass) max-class blocks,
// carved contiguously from one span slab. Selection is deterministic and
// monotonic in size.
func (t *sizeClassTable) selectClass(size int) (Class, error) {
	if size <= 0 {
		return Class{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	n := uint64(size)

	shift := uint(bits.Len64(n - 1))
	if shift < t.minShift {
		shift = t.minShift
	}
	if shift <= t.maxShift {
		return Class{Size: 1 << shift, Blocks: 1, Pages: 1}, nil
	}

	blocks := (n + t.maxClass - 1) / t.maxClass
	if t.spanLimit > 0 && blocks > uint64(t.spanLimit) {
		return Class{}, fmt.Errorf("%w: %d bytes needs %d blocks, limit is %d",
			ErrInvalidSize, size, blocks, t.spanLimit)
	}
	stride, ok := buf.MulOverflowSafe(blocks, t.maxClass)
	if !ok || stride > math.MaxUint32 {
		return Class{}, fmt.Errorf("%w: %d bytes exceeds the largest representable span", ErrInvalidSize, size)
	}
	pages := (stride + t.pageSize - 1) / t.pageSize
	return Class{Size: uint32(stride), Blocks: int(blocks), Pages: uint32(pages)}, nil
}

// classes lists the power-of-two ladder, smallest first.
func (t *sizeClassTable) classes() []uint32 {
	out := make([]uint32, 0, t.maxShift-t.minShift+1)
	for s := t.minShift; s <= t.maxShift; s++ {
		out = append(out, 1<<s)
	}
	return out
}

// String returns a human-readable description of the ladder.
func (t *sizeClassTable) String() string {
	parts := make([]string, 0, t.maxShift-t.minShift+1)
	for _, c := range t.classes() {
		parts = append(parts, fmt.Sprint(c))
	}
	return strings.Join(parts, " ")
}
