package slab

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReport_Summary(t *testing.T) {
	al, _ := newTestAllocator(t, 4, nil)
	mustAllocate(t, al, 20)
	mustAllocate(t, al, 1500)

	var out bytes.Buffer
	require.NoError(t, al.WriteReport(&out))
	report := out.String()

	require.Contains(t, report, "arena: 16,384 bytes, page 4,096, state initialized")
	require.Contains(t, report, "slabs: 1 meta, 1 data, 1 span; 2 live blocks")

	lines := strings.Split(strings.TrimSpace(report), "\n")
	require.Len(t, lines, 3+3, "header lines plus one line per slab")
	require.Contains(t, lines[3], "meta")
	require.Contains(t, lines[4], "span")
	require.Contains(t, lines[5], "data")
	require.Contains(t, lines[5], "[#...")
}

func TestWriteReport_Closed(t *testing.T) {
	al, _ := newTestAllocator(t, 1, nil)
	al.Deinit()

	var out bytes.Buffer
	require.NoError(t, al.WriteReport(&out))
	require.Equal(t, "arena: 0 bytes, page 0, state closed\n", out.String())
}

func TestWriteReport_OccupancyBarBuckets(t *testing.T) {
	al, _ := newTestAllocator(t, 2, nil)
	mustAllocate(t, al, 1024)

	s := al.Slabs()[0]
	require.Equal(t, "[#..]", occupancyBar(s))

	m := al.MetaSlabs()[0]
	bar := occupancyBar(m)
	require.Len(t, bar, occupancyWidth+2)
	require.True(t, strings.HasPrefix(bar, "[#."), bar)
}
