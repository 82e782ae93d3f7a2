//go:build !unix

// Package mmfile provides backing buffers for slab arenas, preferring
// anonymous memory mappings where the platform supports them.
package mmfile

import (
	"fmt"
	"os"
)

// MapAnon allocates a heap buffer when anonymous mappings are unavailable.
func MapAnon(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmfile: invalid mapping size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}

// PageSize reports the operating system page size.
func PageSize() int {
	return os.Getpagesize()
}
