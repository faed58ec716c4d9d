// Package sample provides uniform random sampling over unbounded
// streams.
package sample

import (
	"fmt"
	"math/rand"
	"time"
)

// ReservoirSample maintains a fixed-size sample of elements drawn
// uniformly at random from a stream of unknown length, using
// Algorithm R: once the reservoir is full, the n-th element replaces a
// random slot with probability size/n.
//
// A ReservoirSample is not safe for concurrent mutation; callers own
// synchronization.
type ReservoirSample[E any] struct {
	size     uint
	count    uint64
	elements []E
	rng      *rand.Rand
}

// NewReservoirSample returns a sample holding at most size elements.
func NewReservoirSample[E any](size uint) (*ReservoirSample[E], error) {
	return NewReservoirSampleWithSource[E](size, rand.NewSource(time.Now().UnixNano()))
}

// NewReservoirSampleWithSource is NewReservoirSample with a
// caller-provided randomness source, for reproducible sampling.
func NewReservoirSampleWithSource[E any](size uint, src rand.Source) (*ReservoirSample[E], error) {
	if size == 0 {
		return nil, fmt.Errorf("sketches: reservoir size should be greater than 0")
	}
	return &ReservoirSample[E]{
		size:     size,
		elements: make([]E, 0, size),
		rng:      rand.New(src),
	}, nil
}

// Insert offers an element to the sample.
func (r *ReservoirSample[E]) Insert(e E) {
	r.count++
	if uint64(len(r.elements)) < uint64(r.size) {
		r.elements = append(r.elements, e)
		return
	}
	j := r.rng.Int63n(int64(r.count))
	if uint64(j) < uint64(r.size) {
		r.elements[j] = e
	}
}

// Elements returns a copy of the current sample.
func (r *ReservoirSample[E]) Elements() []E {
	out := make([]E, len(r.elements))
	copy(out, r.elements)
	return out
}

// Count returns the number of elements offered so far.
func (r *ReservoirSample[E]) Count() uint64 {
	return r.count
}

// Size returns the sample capacity.
func (r *ReservoirSample[E]) Size() uint {
	return r.size
}
