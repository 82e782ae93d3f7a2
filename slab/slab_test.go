package slab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitSlab_ThreadsAllButLastSlot(t *testing.T) {
	for _, size := range []uint32{32, 64, 128, 256, 512, 1024} {
		a := newArena(make([]byte, testPage), testPage, 16)
		d := a.initSlab(0, 1, size)

		want := testPage/int(size) - 1
		got := 0
		for off := d.freeList; off != NilRef; off = a.readNext(off) {
			require.Equal(t, Ref(got)*Ref(size), off, "slot %d out of order", got)
			got++
			require.LessOrEqual(t, got, want, "free list longer than capacity")
		}
		require.Equal(t, want, got, "size %d", size)
	}
}

func TestInitSlab_SpanHoldsOneBlock(t *testing.T) {
	a := newArena(make([]byte, 2*testPage), testPage, 16)
	d := a.initSlab(0, 2, 5120)

	require.Equal(t, uint64(1), d.capacity(testPage))
	require.Equal(t, Ref(0), d.freeList)
	require.Equal(t, NilRef, a.readNext(0))
}

func TestInitSlab_SpanSharesLargePage(t *testing.T) {
	const page = 16384
	a := newArena(make([]byte, page), page, 16)
	d := a.initSlab(0, 1, 2048)

	require.Equal(t, uint64(page/2048-1), d.capacity(page), "stride below half the page threads several blocks")
	n := 0
	for off := d.freeList; off != NilRef; off = a.readNext(off) {
		n++
	}
	require.Equal(t, 7, n)
}

func TestSlabFree_RejectsHeadBlock(t *testing.T) {
	a := newArena(make([]byte, testPage), testPage, 16)
	d := a.initSlab(0, 1, 128)

	off, ok := a.slabAlloc(&d, 128)
	require.True(t, ok)
	require.NoError(t, a.slabFree(&d, off))

	before := d
	link := a.readNext(off)
	err := a.slabFree(&d, off)
	require.ErrorIs(t, err, ErrNotOwned)
	require.Equal(t, before, d, "descriptor mutated")
	require.Equal(t, link, a.readNext(off), "free-list link rewritten")

	// The head of a fresh slab was never issued.
	fresh := a.initSlab(0, 1, 128)
	require.ErrorIs(t, a.slabFree(&fresh, 0), ErrNotOwned)
}

func TestSlabAlloc_RequiresMatchingSize(t *testing.T) {
	a := newArena(make([]byte, testPage), testPage, 16)
	d := a.initSlab(0, 1, 64)

	_, ok := a.slabAlloc(&d, 32)
	require.False(t, ok, "size mismatch must fail")

	off, ok := a.slabAlloc(&d, 64)
	require.True(t, ok)
	require.Equal(t, Ref(0), off)
	require.Equal(t, Ref(64), d.freeList)
}

func TestSlabAlloc_FailsWhenFull(t *testing.T) {
	a := newArena(make([]byte, testPage), testPage, 16)
	d := a.initSlab(0, 1, 1024)

	for range 3 {
		_, ok := a.slabAlloc(&d, 1024)
		require.True(t, ok)
	}
	_, ok := a.slabAlloc(&d, 1024)
	require.False(t, ok)
	require.Equal(t, NilRef, d.freeList)
}

func TestSlabFree_PushesHead(t *testing.T) {
	a := newArena(make([]byte, testPage), testPage, 16)
	d := a.initSlab(0, 1, 256)

	first, _ := a.slabAlloc(&d, 256)
	second, _ := a.slabAlloc(&d, 256)

	require.NoError(t, a.slabFree(&d, first))
	require.Equal(t, first, d.freeList)
	require.Equal(t, Ref(512), a.readNext(first), "freed block links to previous head")

	require.NoError(t, a.slabFree(&d, second))
	require.Equal(t, second, d.freeList)
	require.Equal(t, first, a.readNext(second))
}

func TestSlabFree_RejectsForeignOffsets(t *testing.T) {
	a := newArena(make([]byte, 2*testPage), testPage, 16)
	d := a.initSlab(testPage, 1, 256)
	before := d

	cases := map[string]Ref{
		"below":      testPage - 1,
		"above":      2 * testPage,
		"misaligned": testPage + 10,
		"tail slot":  testPage + 15*256,
	}
	for name, off := range cases {
		err := a.slabFree(&d, off)
		require.ErrorIs(t, err, ErrNotOwned, name)
		require.Equal(t, before, d, "%s: descriptor mutated", name)
	}
}
