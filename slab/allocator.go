package slab

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/slabkit/internal/buf"
)

// Allocator is the public facade: size-class selection, slab search, slab
// creation and ownership-checked frees over one Arena.
//
// NOT thread-safe. Callers that share an Allocator across goroutines must
// serialize every call with their own mutex.
type Allocator struct {
	arena   *Arena
	classes *sizeClassTable
	log     *slog.Logger
	stats   allocatorStats
	closed  bool
}

// allocatorStats holds internal allocator counters.
type allocatorStats struct {
	MetaSlabs    int // meta slabs bootstrapped
	DataSlabs    int // power-of-two data slabs created
	SpanSlabs    int // span slabs created
	Descriptors  int // descriptor slots issued to data and span slabs
	AllocCalls   int
	AllocFailed  int
	SlowPath     int // allocations that created a slab
	FreeCalls    int
	FreeRejected int
	LiveBlocks   int
}

// New initializes an allocator over b, which the caller owns for the
// allocator's lifetime. The first meta slab is bootstrapped immediately, so a
// buffer smaller than one page fails with ErrArenaExhausted.
//
// A nil config uses DefaultConfig.
func New(b []byte, config *Config) (*Allocator, error) {
	if config == nil {
		config = &DefaultConfig
	}
	cfg := config.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: zero-length backing buffer", ErrInvalidArgument)
	}

	al := &Allocator{
		arena:   newArena(b, cfg.PageSize, cfg.Alignment),
		classes: newSizeClassTable(cfg),
		log:     cfg.logger(),
	}
	if err := al.allocateMetaSlab(); err != nil {
		return nil, fmt.Errorf("bootstrap meta slab in %d-byte arena: %w", len(b), err)
	}
	return al, nil
}

// State reports the lifecycle state.
func (al *Allocator) State() State {
	switch {
	case al == nil || (al.arena == nil && !al.closed):
		return StateUninitialized
	case al.closed:
		return StateClosed
	case al.arena.exhausted:
		return StateExhausted
	default:
		return StateInitialized
	}
}

// Arena exposes the watermarks for inspection. Nil after Deinit.
func (al *Allocator) Arena() *Arena {
	if al == nil || al.closed {
		return nil
	}
	return al.arena
}

// SelectClass reports the class a request of size bytes would be served from.
func (al *Allocator) SelectClass(size int) (Class, error) {
	if err := al.usable(); err != nil {
		return Class{}, err
	}
	return al.classes.selectClass(size)
}

// Classes lists the power-of-two ladder, smallest first.
func (al *Allocator) Classes() []uint32 {
	if al.usable() != nil {
		return nil
	}
	return al.classes.classes()
}

// Allocate returns a block of at least size bytes.
//
// Existing slabs of the selected class are searched most recently used
// first. On a miss a descriptor is taken from the current meta slab, a new
// slab is carved at the data watermark and prepended, and the allocation is
// retried once against it. Spanning requests are served the same way from a
// contiguous span slab.
func (al *Allocator) Allocate(size int) (Block, error) {
	if err := al.usable(); err != nil {
		return Block{}, err
	}
	al.stats.AllocCalls++

	cls, err := al.classes.selectClass(size)
	if err != nil {
		al.stats.AllocFailed++
		return Block{}, err
	}

	off, ok := al.search(cls.Size)
	if !ok {
		al.stats.SlowPath++
		off, err = al.grow(cls)
		if err != nil {
			al.stats.AllocFailed++
			return Block{}, fmt.Errorf("allocate %d bytes (class %d): %w", size, cls.Size, err)
		}
	}

	al.stats.LiveBlocks++
	return Block{Off: off, Size: size, Class: cls.Size, Blocks: cls.Blocks}, nil
}

// search walks the slab list for the first slab of the class with a free block.
func (al *Allocator) search(size uint32) (Ref, bool) {
	a := al.arena
	for ref := a.slabList; ref != NilRef; {
		d := a.loadDescriptor(ref)
		if off, ok := a.slabAlloc(&d, size); ok {
			a.storeDescriptor(ref, d)
			return off, true
		}
		ref = d.next
	}
	return NilRef, false
}

// grow creates a slab for cls, prepends it, and allocates from it.
func (al *Allocator) grow(cls Class) (Ref, error) {
	a := al.arena
	descRef, err := al.takeDescriptor()
	if err != nil {
		return NilRef, err
	}

	regionLen, ok := buf.MulOverflowSafe(uint64(cls.Pages), a.pageSize)
	if !ok {
		al.returnDescriptor(descRef)
		return NilRef, fmt.Errorf("%w: %d pages of %d bytes overflows", ErrInvalidSize, cls.Pages, a.pageSize)
	}
	region, err := a.claimRight(regionLen)
	if err != nil {
		al.returnDescriptor(descRef)
		al.logExhausted("data")
		return NilRef, err
	}

	d := a.initSlab(region, cls.Pages, cls.Size)
	off, ok := a.slabAlloc(&d, cls.Size)
	if !ok {
		panic("slab: freshly initialized slab has no free block")
	}
	d.next = a.slabList
	a.storeDescriptor(descRef, d)
	a.slabList = descRef

	if cls.Spanning() {
		al.stats.SpanSlabs++
	} else {
		al.stats.DataSlabs++
	}
	al.log.Debug("slab: created slab",
		"class", cls.Size, "blocks", cls.Blocks, "start", region, "pages", cls.Pages,
		"descriptor", descRef, "right", a.right)
	return off, nil
}

// Free returns b to the slab that issued it.
func (al *Allocator) Free(b Block) error {
	return al.FreeOffset(b.Off)
}

// FreeOffset returns the block at arena offset off to the slab whose region
// contains it. The slab list is walked most recently used first; the owning
// slab moves to the head so the freed block is the next one handed out.
//
// Ownership is validated before any link is written: a rejected free leaves
// the arena byte-for-byte unchanged and returns an error matching ErrNotOwned.
func (al *Allocator) FreeOffset(off Ref) error {
	if err := al.usable(); err != nil {
		return err
	}
	al.stats.FreeCalls++

	a := al.arena
	prev := NilRef
	for ref := a.slabList; ref != NilRef; {
		d := a.loadDescriptor(ref)
		if !a.contains(&d, off) {
			prev, ref = ref, d.next
			continue
		}
		if err := a.slabFree(&d, off); err != nil {
			al.stats.FreeRejected++
			return err
		}
		if prev != NilRef {
			// Unlink and move to front.
			p := a.loadDescriptor(prev)
			p.next = d.next
			a.storeDescriptor(prev, p)
			d.next = a.slabList
			a.slabList = ref
		}
		a.storeDescriptor(ref, d)
		al.stats.LiveBlocks--
		return nil
	}

	al.stats.FreeRejected++
	return fmt.Errorf("%w: offset %d", ErrNotOwned, off)
}

// Bytes returns the caller-visible bytes of b, capped at the block capacity.
// Returns nil for a block outside the arena or after Deinit.
func (al *Allocator) Bytes(b Block) []byte {
	if al.usable() != nil {
		return nil
	}
	data, ok := buf.Slice(al.arena.buf, b.Off, uint64(b.Class))
	if !ok {
		return nil
	}
	return data
}

// Deinit drops the allocator's reference to the backing buffer. It never
// touches the buffer itself; the caller remains its owner. Every later call
// returns ErrClosed.
func (al *Allocator) Deinit() {
	if al == nil {
		return
	}
	al.arena = nil
	al.closed = true
}

func (al *Allocator) usable() error {
	if al == nil || al.arena == nil {
		return ErrClosed
	}
	return nil
}

func (al *Allocator) logExhausted(side string) {
	a := al.arena
	if !a.exhausted {
		return
	}
	al.log.Debug("slab: arena exhausted",
		"side", side, "left", a.left, "right", a.right, "len", a.length)
}

// IsExhausted reports whether err is an out-of-space failure.
func IsExhausted(err error) bool {
	return errors.Is(err, ErrArenaExhausted)
}
