package slab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArena_ClaimsFromBothEnds(t *testing.T) {
	a := newArena(make([]byte, 4*testPage), testPage, 16)

	left, err := a.claimLeft(testPage)
	require.NoError(t, err)
	require.Equal(t, Ref(0), left)
	require.Equal(t, uint64(testPage), a.LeftOffset())

	right, err := a.claimRight(testPage)
	require.NoError(t, err)
	require.Equal(t, Ref(3*testPage), right)
	require.Equal(t, uint64(3*testPage), a.RightOffset())
}

func TestArena_ClaimZeroesPage(t *testing.T) {
	backing := make([]byte, 2*testPage)
	for i := range backing {
		backing[i] = 0xFF
	}
	a := newArena(backing, testPage, 16)

	off, err := a.claimRight(testPage)
	require.NoError(t, err)
	for i := off; i < off+testPage; i++ {
		require.Equal(t, byte(0), backing[i], "claimed byte %d not zeroed", i)
	}
	require.Equal(t, byte(0xFF), backing[0], "unclaimed bytes must not be touched")
}

func TestArena_AlignsUnevenLength(t *testing.T) {
	a := newArena(make([]byte, 2*testPage+7), testPage, 16)

	off, err := a.claimRight(testPage)
	require.NoError(t, err)
	require.Equal(t, Ref(testPage), off, "right side aligns backward before carving")

	a = newArena(make([]byte, 3*testPage), testPage, 16)
	a.left = 5 // simulate an unaligned metadata watermark
	off, err = a.claimLeft(testPage)
	require.NoError(t, err)
	require.Equal(t, Ref(16), off, "left side aligns forward before carving")
}

func TestArena_ExhaustionLatches(t *testing.T) {
	a := newArena(make([]byte, 2*testPage), testPage, 16)
	_, err := a.claimLeft(testPage)
	require.NoError(t, err)
	_, err = a.claimRight(testPage)
	require.NoError(t, err)

	_, err = a.claimRight(testPage)
	require.ErrorIs(t, err, ErrArenaExhausted)
	require.True(t, a.Exhausted())
	require.Equal(t, a.LeftOffset(), a.RightOffset())

	_, err = a.claimLeft(testPage)
	require.ErrorIs(t, err, ErrArenaExhausted)
	require.Equal(t, uint64(testPage), a.LeftOffset(), "failed claim must not move the watermark")
}

func TestArena_FailedSpanClaimDoesNotLatch(t *testing.T) {
	a := newArena(make([]byte, 3*testPage), testPage, 16)
	_, err := a.claimLeft(testPage)
	require.NoError(t, err)

	_, err = a.claimRight(3 * testPage)
	require.ErrorIs(t, err, ErrArenaExhausted)
	require.False(t, a.Exhausted(), "a single page still fits")
	require.Equal(t, uint64(3*testPage), a.RightOffset())

	_, err = a.claimRight(testPage)
	require.NoError(t, err)
}
