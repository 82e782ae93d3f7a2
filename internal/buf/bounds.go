// Package buf contains overflow-safe offset arithmetic for arena-relative
// ranges. All arena bookkeeping is expressed as offsets into one byte slice,
// so every range check funnels through here instead of comparing addresses.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow uint64.
func AddOverflowSafe(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow uint64.
// Used for pages * pageSize and blocks * maxClass calculations.
func MulOverflowSafe(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxUint64/b {
		return 0, false
	}
	return a * b, true
}

// CheckRange validates that [off, off+n) lies within a region of length bytes.
// Returns the end offset if valid.
//
//	end, err := buf.CheckRange(uint64(len(data)), off, pageSize)
//	if err != nil {
//	    return fmt.Errorf("claim: %w", err)
//	}
func CheckRange(length, off, n uint64) (uint64, error) {
	end, ok := AddOverflowSafe(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", off, n)
	}
	if end > length {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, length)
	}
	return end, nil
}

// Within reports whether off lies in [start, start+n).
func Within(off, start, n uint64) bool {
	if off < start {
		return false
	}
	return off-start < n
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n uint64) ([]byte, bool) {
	end, err := CheckRange(uint64(len(b)), off, n)
	if err != nil {
		return nil, false
	}
	return b[off:end:end], true
}
