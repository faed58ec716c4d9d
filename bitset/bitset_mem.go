// Package bitset wraps an in-memory bit array with the operations the
// filter structures need.
package bitset

import (
	"github.com/bits-and-blooms/bitset"
)

// BitSetMem is a fixed-length in-memory bit array.
type BitSetMem struct {
	set  *bitset.BitSet
	size uint
}

// NewBitSetMem returns a bit array of the given length with all bits
// unset.
func NewBitSetMem(size uint) *BitSetMem {
	return &BitSetMem{bitset.New(size), size}
}

// FromDataMem builds a bit array from packed 64-bit words.
func FromDataMem(data []uint64) *BitSetMem {
	return &BitSetMem{bitset.From(data), uint(len(data)) * 64}
}

// Size returns the length of the bit array in bits.
func (b *BitSetMem) Size() uint {
	return b.size
}

// Has reports whether the bit at index is set.
func (b *BitSetMem) Has(index uint) bool {
	return b.set.Test(index)
}

// Insert sets the bit at index. Bits are never cleared.
func (b *BitSetMem) Insert(index uint) {
	b.set.Set(index)
}

// BitCount returns the number of set bits.
func (b *BitSetMem) BitCount() uint {
	return b.set.Count()
}

// Union ORs other into b in place and reports whether any bit of b
// changed. Both bit arrays must have the same length.
func (b *BitSetMem) Union(other *BitSetMem) bool {
	before := b.set.Count()
	b.set.InPlaceUnion(other.set)
	return b.set.Count() != before
}

// Equals reports whether both bit arrays have the same length and the
// same bits set.
func (b *BitSetMem) Equals(other *BitSetMem) bool {
	return b.size == other.size && b.set.Equal(other.set)
}
