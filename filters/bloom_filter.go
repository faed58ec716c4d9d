// Package filters provides approximate membership structures.
package filters

import (
	"fmt"
	"math"

	"github.com/quantile-dev/sketches"
	"github.com/quantile-dev/sketches/bitset"
	"github.com/quantile-dev/sketches/hash"
)

// slackBits pads the bit array to absorb rounding in the bits-per-item
// calculation.
const slackBits = 20

// BloomFilter is a space-efficient probabilistic structure used to test
// whether an element is a member of a set. False positives are possible,
// bounded by the error rate the filter was built with; false negatives
// are not. Bits are only ever set, so membership answers are monotone.
//
// A BloomFilter is not safe for concurrent mutation; callers own
// synchronization.
type BloomFilter struct {
	size      uint
	numHashes uint
	filter    *bitset.BitSetMem
}

// NewBloomFilter returns a filter tuned for numItems elements with at
// most errorRate probability of a false positive. The bits-per-item and
// hash count are picked from a precomputed table; error rates beyond the
// table's range saturate to its boundaries.
func NewBloomFilter(numItems uint, errorRate float64) (*BloomFilter, error) {
	if numItems == 0 {
		return nil, fmt.Errorf("sketches: number of items should be greater than 0")
	}
	if errorRate <= 0 || errorRate >= 1 {
		return nil, fmt.Errorf("sketches: error rate should be in (0, 1), got %f", errorRate)
	}
	bitsPerItem, numHashes := sketches.OptimalBloomSize(errorRate)
	size := numItems*bitsPerItem + slackBits
	return &BloomFilter{size, numHashes, bitset.NewBitSetMem(size)}, nil
}

// NewBloomFilterWithBitSet wraps an existing bit array. The bit array
// length must match size.
func NewBloomFilterWithBitSet(size, numHashes uint, filter *bitset.BitSetMem) (*BloomFilter, error) {
	if filter.Size() != size {
		return nil, fmt.Errorf("sketches: bitset size %v doesn't match size %v passed", filter.Size(), size)
	}
	return &BloomFilter{sketches.Max(size, 1), sketches.Max(numHashes, 1), filter}, nil
}

// NewBloomFilterFromData rebuilds a filter from packed 64-bit words, as
// produced by a filter of the same shape.
func NewBloomFilterFromData(data []uint64, numHashes uint) *BloomFilter {
	size := uint(len(data)) * 64
	return &BloomFilter{sketches.Max(size, 1), sketches.Max(numHashes, 1), bitset.FromDataMem(data)}
}

// Insert adds data to the set.
func (bloomFilter *BloomFilter) Insert(data []byte) *BloomFilter {
	gen := hash.NewIndexGenerator(data, bloomFilter.size)
	for i := uint(0); i < bloomFilter.numHashes; i++ {
		bloomFilter.filter.Insert(gen.Next())
	}
	return bloomFilter
}

func (bloomFilter *BloomFilter) InsertString(data string) *BloomFilter {
	return bloomFilter.Insert([]byte(data))
}

// Lookup reports whether data is probably in the set. A false answer is
// always correct; a true answer may be wrong with the configured error
// rate.
func (bloomFilter *BloomFilter) Lookup(data []byte) bool {
	gen := hash.NewIndexGenerator(data, bloomFilter.size)
	for i := uint(0); i < bloomFilter.numHashes; i++ {
		if !bloomFilter.filter.Has(gen.Next()) {
			return false
		}
	}
	return true
}

func (bloomFilter *BloomFilter) LookupString(data string) bool {
	return bloomFilter.Lookup([]byte(data))
}

// Merge ORs another filter of identical shape into the receiver and
// reports whether any bit changed. Merging filters of different shapes
// is a caller contract violation and returns an error.
func (bloomFilter *BloomFilter) Merge(other *BloomFilter) (bool, error) {
	if bloomFilter.numHashes != other.numHashes {
		return false, fmt.Errorf("sketches: can't merge filters with unequal hash counts, %d and %d", bloomFilter.numHashes, other.numHashes)
	}
	if bloomFilter.size != other.size {
		return false, fmt.Errorf("sketches: can't merge filters with unequal sizes, %d and %d", bloomFilter.size, other.size)
	}
	return bloomFilter.filter.Union(other.filter), nil
}

func (bloomFilter *BloomFilter) Size() uint {
	return bloomFilter.size
}

func (bloomFilter *BloomFilter) NumHashes() uint {
	return bloomFilter.numHashes
}

// PositiveRate estimates the filter's current false positive rate from
// its fill ratio.
func (bloomFilter *BloomFilter) PositiveRate() float64 {
	length := bloomFilter.filter.BitCount()
	return math.Pow(1-math.Exp(-float64(length)/float64(bloomFilter.size)), float64(bloomFilter.numHashes))
}

// Equals reports whether both filters have the same shape and bits.
func (bloomFilter *BloomFilter) Equals(other *BloomFilter) bool {
	if bloomFilter.size != other.size || bloomFilter.numHashes != other.numHashes {
		return false
	}
	return bloomFilter.filter.Equals(other.filter)
}
