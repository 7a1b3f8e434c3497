// Package weights stores per-tile, per-vertex scalar weight fields (vertex groups).
package weights

import (
	"maps"
	"slices"
)

// Field is a sparse vertex index to weight map. A missing entry reads as 0.
type Field map[int]float64

// Get returns the weight at index i, or 0 if unset.
func (f Field) Get(i int) float64 {
	return f[i]
}

// Has reports whether index i has an explicit entry.
func (f Field) Has(i int) bool {
	_, ok := f[i]
	return ok
}

// Set assigns the weight at index i.
func (f Field) Set(i int, w float64) {
	f[i] = w
}

// Remove deletes the entries for the given indices.
func (f Field) Remove(indices []int) {
	for _, i := range indices {
		delete(f, i)
	}
}

// Clone returns a deep copy. Cloning a nil field yields an empty one.
func (f Field) Clone() Field {
	c := make(Field, len(f))
	maps.Copy(c, f)
	return c
}

// Indices returns the indices with explicit entries in ascending order.
func (f Field) Indices() []int {
	var keys []int
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
