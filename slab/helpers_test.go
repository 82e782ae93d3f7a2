package slab

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPage = 4096

// newTestAllocator creates an allocator over a zeroed buffer of pages*pageSize bytes.
func newTestAllocator(t testing.TB, pages int, cfg *Config) (*Allocator, []byte) {
	t.Helper()
	pageSize := testPage
	if cfg != nil && cfg.PageSize != 0 {
		pageSize = cfg.PageSize
	}
	backing := make([]byte, pages*pageSize)
	al, err := New(backing, cfg)
	require.NoError(t, err)
	return al, backing
}

// snapshot copies the whole backing buffer for byte-for-byte comparison.
func snapshot(b []byte) []byte {
	return bytes.Clone(b)
}

// requireWatermarks asserts 0 <= left <= right <= len.
func requireWatermarks(t testing.TB, al *Allocator) {
	t.Helper()
	a := al.Arena()
	require.NotNil(t, a)
	require.LessOrEqual(t, a.LeftOffset(), a.RightOffset(), "left watermark crossed right")
	require.LessOrEqual(t, a.RightOffset(), a.Len(), "right watermark beyond arena")
}

// mustAllocate allocates and fails the test on error.
func mustAllocate(t testing.TB, al *Allocator, size int) Block {
	t.Helper()
	b, err := al.Allocate(size)
	require.NoError(t, err, "Allocate(%d)", size)
	return b
}
