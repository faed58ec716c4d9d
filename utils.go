// Package sketches provides probabilistic summary structures for data
// streams: membership (Bloom filter), frequency (Count-Min sketch),
// heavy hitters (Top-K), cardinality (HyperLogLog) and uniform sampling
// (reservoir). Each structure trades a bounded amount of accuracy for a
// fixed memory footprint.
package sketches

// Max returns the greater of a and b.
func Max(a, b uint) uint {
	if a > b {
		return a
	}
	return b
}

const (
	// MinBloomBitsPerItem and MaxBloomBitsPerItem bound the rows of the
	// probability table consulted by OptimalBloomSize.
	MinBloomBitsPerItem = 2
	MaxBloomBitsPerItem = 15

	// MinBloomHashes and MaxBloomHashes bound the number of index draws
	// per Bloom filter operation.
	MinBloomHashes = 1
	MaxBloomHashes = 8
)

// OptimalBloomSize returns a near-optimal (bitsPerItem, numHashes) pair
// for a Bloom filter that must keep its false positive rate at or below
// errorRate. It first finds the minimal bits-per-item row whose optimal
// hash count meets the bound, then relaxes the hash count downward while
// the bound still holds, trading a little precision headroom for fewer
// index draws per operation. Rates outside the table's range saturate to
// the nearest table boundary.
func OptimalBloomSize(errorRate float64) (uint, uint) {
	if errorRate >= bloomProbs[MinBloomBitsPerItem][MinBloomHashes] {
		return MinBloomBitsPerItem, bloomOptimalK[MinBloomBitsPerItem]
	}
	if errorRate < bloomProbs[MaxBloomBitsPerItem][MaxBloomHashes] {
		return MaxBloomBitsPerItem, MaxBloomHashes
	}

	bits := uint(MinBloomBitsPerItem)
	k := bloomOptimalK[bits]
	for bloomProbs[bits][k] > errorRate {
		bits++
		k = bloomOptimalK[bits]
	}

	for bloomProbs[bits][k-1] <= errorRate {
		k--
	}

	return bits, k
}

// bloomOptimalK[b] is the hash count minimizing the false positive rate
// at b bits per item.
var bloomOptimalK = []uint{
	1, // dummy entry for 0 bits per item
	1, // dummy entry for 1 bit per item
	1, 2, 3, 3, 4, 5, 5, 6, 7, 8, 8, 9, 10, 10, 11, 12, 12, 13, 14,
}

// bloomProbs[b][k] is the false positive rate of a Bloom filter holding
// its expected population at b bits per item and k hashes.
var bloomProbs = [][]float64{
	{1.0},      // dummy row for 0 bits per item
	{1.0, 1.0}, // dummy row for 1 bit per item
	{1.0, 0.393, 0.400},
	{1.0, 0.283, 0.237, 0.253},
	{1.0, 0.221, 0.155, 0.147, 0.1600},
	{1.0, 0.181, 0.109, 0.092, 0.092, 0.101}, // 5
	{1.0, 0.154, 0.0804, 0.0609, 0.0561, 0.0578, 0.0638},
	{1.0, 0.133, 0.0618, 0.0423, 0.0359, 0.0347, 0.0364},
	{1.0, 0.118, 0.0489, 0.0306, 0.024, 0.0217, 0.0216, 0.0229},
	{1.0, 0.105, 0.0397, 0.0228, 0.0166, 0.0141, 0.0133, 0.0135, 0.0145},
	{1.0, 0.0952, 0.0329, 0.0174, 0.0118, 0.00943, 0.00844, 0.00819, 0.00846}, // 10
	{1.0, 0.0869, 0.0276, 0.0136, 0.00864, 0.0065, 0.00552, 0.00513, 0.00509},
	{1.0, 0.08, 0.0236, 0.0108, 0.00646, 0.00459, 0.00371, 0.00329, 0.00314},
	{1.0, 0.074, 0.0203, 0.00875, 0.00492, 0.00332, 0.00255, 0.00217, 0.00199, 0.00194},
	{1.0, 0.0689, 0.0177, 0.00718, 0.00381, 0.00244, 0.00179, 0.00146, 0.00129, 0.00121, 0.0012},
	{1.0, 0.0645, 0.0156, 0.00596, 0.003, 0.00183, 0.00128, 0.001, 0.000852, 0.000775, 0.000744}, // 15
	{1.0, 0.0606, 0.0138, 0.005, 0.00239, 0.00139, 0.000935, 0.000702, 0.000574, 0.000505, 0.00047, 0.000459},
	{1.0, 0.0571, 0.0123, 0.00423, 0.00193, 0.00107, 0.000692, 0.000499, 0.000394, 0.000335, 0.000302, 0.000287, 0.000284},
	{1.0, 0.054, 0.0111, 0.00362, 0.00158, 0.000839, 0.000519, 0.00036, 0.000275, 0.000226, 0.000198, 0.000183, 0.000176},
	{1.0, 0.0513, 0.00998, 0.00312, 0.0013, 0.000663, 0.000394, 0.000264, 0.000194, 0.000155, 0.000132, 0.000118, 0.000111, 0.000109},
	{1.0, 0.0488, 0.00906, 0.0027, 0.00108, 0.00053, 0.000303, 0.000196, 0.00014, 0.000108, 8.89e-05, 7.77e-05, 7.12e-05, 6.79e-05, 6.71e-05}, // 20
}
