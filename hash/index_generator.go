package hash

// IndexGenerator lazily produces an unbounded sequence of pseudo-random
// indexes in [0, max), derived from the two base digests of one element
// via double hashing: the n-th draw is (h1 + n*h2) mod max. The
// generator holds no reference to the element after construction.
//
// The sequence is forward-only; to restart it, construct a new
// generator. Generators constructed from the same (data, max) pair
// produce identical sequences. max must be at least 1; that is a caller
// contract enforced by the structures owning the generator.
type IndexGenerator struct {
	h1, h2 uint64
	i      uint64
	max    uint64
}

// NewIndexGenerator returns a generator of indexes in [0, max) for the
// given element.
func NewIndexGenerator(data []byte, max uint) *IndexGenerator {
	h1, h2 := Sum128(data)
	return &IndexGenerator{h1: h1, h2: h2, max: uint64(max)}
}

// Next advances the generator and returns the next index. Arithmetic
// wraps modulo 2^64, so overflow of h1 + i*h2 is harmless.
func (g *IndexGenerator) Next() uint {
	g.i++
	return uint((g.h1 + g.i*g.h2) % g.max)
}
