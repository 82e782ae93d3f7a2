package slab

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/joshuapare/slabkit/internal/format"
)

// Runtime debug flag for slab lifecycle logging - controlled by SLABKIT_LOG_ALLOC env var.
// Only consulted when Config.Logger is nil.
var logAlloc = os.Getenv("SLABKIT_LOG_ALLOC") != ""

// Config controls arena geometry and the size-class ladder.
// Zero fields take the value from DefaultConfig.
type Config struct {
	// PageSize is the slab page size in bytes. Must be a power of two >= 128.
	// The allocator never queries the OS; callers that want the system page
	// size pass it in explicitly.
	PageSize int

	// Alignment is the placement alignment of every slab region relative to
	// the start of the backing buffer. Must be a power of two <= PageSize.
	Alignment int

	// MinShift and MaxShift bound the power-of-two class ladder:
	// classes are 1<<MinShift ... 1<<MaxShift bytes.
	MinShift uint
	MaxShift uint

	// MaxSpanBlocks caps spanning requests at this many max-class blocks.
	// 0 means only the 32-bit stride limit applies.
	MaxSpanBlocks int

	// Logger receives debug records for slab creation and exhaustion.
	// If nil, records are discarded unless SLABKIT_LOG_ALLOC is set.
	Logger *slog.Logger
}

// DefaultConfig is a 4KB page, 16-byte aligned, 32B-1KB ladder.
var DefaultConfig = Config{
	PageSize:  format.DefaultPageSize,
	Alignment: format.DefaultAlignment,
	MinShift:  format.DefaultMinShift,
	MaxShift:  format.DefaultMaxShift,
}

// minPageSize keeps at least two issuable descriptors per meta slab
// once the self-describing slot and the unthreaded tail slot are taken.
const minPageSize = 4 * format.DescriptorSize

func (c Config) withDefaults() Config {
	if c.PageSize == 0 {
		c.PageSize = DefaultConfig.PageSize
	}
	if c.Alignment == 0 {
		c.Alignment = DefaultConfig.Alignment
	}
	if c.MinShift == 0 {
		c.MinShift = DefaultConfig.MinShift
	}
	if c.MaxShift == 0 {
		c.MaxShift = DefaultConfig.MaxShift
	}
	return c
}

// Validate reports whether c describes a usable geometry.
func (c Config) Validate() error {
	switch {
	case c.PageSize < minPageSize || !format.IsPowerOfTwo(uint64(c.PageSize)):
		return fmt.Errorf("%w: page size %d must be a power of two >= %d",
			ErrInvalidArgument, c.PageSize, minPageSize)
	case c.Alignment <= 0 || !format.IsPowerOfTwo(uint64(c.Alignment)) || c.Alignment > c.PageSize:
		return fmt.Errorf("%w: alignment %d must be a power of two <= page size",
			ErrInvalidArgument, c.Alignment)
	case 1<<c.MinShift < format.EntrySize:
		return fmt.Errorf("%w: min class %d cannot hold a free-list node",
			ErrInvalidArgument, 1<<c.MinShift)
	case c.MinShift > c.MaxShift:
		return fmt.Errorf("%w: min shift %d > max shift %d",
			ErrInvalidArgument, c.MinShift, c.MaxShift)
	case c.MaxShift > 30 || 2<<c.MaxShift > c.PageSize:
		return fmt.Errorf("%w: max class %d must fit twice in a %d-byte page",
			ErrInvalidArgument, 1<<c.MaxShift, c.PageSize)
	case c.MaxSpanBlocks < 0:
		return fmt.Errorf("%w: negative span cap %d", ErrInvalidArgument, c.MaxSpanBlocks)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	switch {
	case c.Logger != nil:
		return c.Logger
	case logAlloc:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}
