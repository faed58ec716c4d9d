// Package hash provides the shared double-hash machinery used by the
// filter and sketch packages. Two base digests are computed per element;
// every further pseudo-random index is derived from those with a single
// multiply-add, so the per-row cost of a filter or sketch operation is
// independent of the underlying hash.
package hash

import (
	"github.com/dgryski/go-metro"
)

// baseSeed seeds the first hash pass. The second pass is seeded with the
// first digest, so the two digests never coincide for all inputs even
// though the underlying hash is deterministic per seed.
const baseSeed = 1373

// Sum128 returns two 64-bit digests of data, computed with exactly two
// passes of metro hash.
func Sum128(data []byte) (uint64, uint64) {
	hash1 := metro.Hash64(data, baseSeed)
	hash2 := metro.Hash64(data, hash1)
	return hash1, hash2
}
