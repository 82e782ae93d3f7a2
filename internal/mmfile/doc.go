//go:build unix

// Package mmfile provides backing buffers for slab arenas, preferring
// anonymous memory mappings where the platform supports them.
package mmfile
