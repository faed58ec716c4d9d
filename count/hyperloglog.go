package count

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/twmb/murmur3"
)

// HyperLogLog estimates the number of distinct elements observed in a
// stream using a fixed array of registers. Typical relative error is
// 1.04/sqrt(numRegisters).
//
// A HyperLogLog is not safe for concurrent mutation; callers own
// synchronization.
type HyperLogLog struct {
	numRegisters   uint64
	precision      uint64
	correctionBias float64
	registers      []uint8
}

// NewHyperLogLog returns an estimator with the given register count,
// which must be a power of two.
func NewHyperLogLog(numRegisters uint64) (*HyperLogLog, error) {
	if numRegisters == 0 {
		return nil, fmt.Errorf("sketches: hyperloglog number of registers can't be zero")
	}
	if numRegisters&(numRegisters-1) != 0 {
		return nil, fmt.Errorf("sketches: hyperloglog number of registers %d not a power of two", numRegisters)
	}
	return &HyperLogLog{
		numRegisters:   numRegisters,
		precision:      uint64(math.Log2(float64(numRegisters))),
		correctionBias: getAlpha(numRegisters),
		registers:      make([]uint8, numRegisters),
	}, nil
}

// Update registers an occurrence of data. Re-observing an element never
// changes the estimate.
func (h *HyperLogLog) Update(data []byte) {
	digest := murmur3.Sum64(data)
	registerIndex := digest >> (64 - h.precision)
	rest := digest << h.precision
	var rank uint8
	if rest == 0 {
		rank = uint8(64-h.precision) + 1
	} else {
		rank = uint8(bits.LeadingZeros64(rest)) + 1
	}
	if rank > h.registers[registerIndex] {
		h.registers[registerIndex] = rank
	}
}

func (h *HyperLogLog) UpdateString(data string) {
	h.Update([]byte(data))
}

// Count returns the estimated number of distinct elements observed,
// with linear-counting correction in the small range.
func (h *HyperLogLog) Count() uint64 {
	harmonicMean := 0.0
	zeroRegisters := 0
	for i := range h.registers {
		harmonicMean += math.Pow(2, -float64(h.registers[i]))
		if h.registers[i] == 0 {
			zeroRegisters++
		}
	}
	m := float64(h.numRegisters)
	estimation := h.correctionBias * m * m / harmonicMean
	if estimation <= 2.5*m && zeroRegisters > 0 {
		estimation = m * math.Log(m/float64(zeroRegisters))
	}
	return uint64(math.Round(estimation))
}

// Merge folds another estimator of the same register count into the
// receiver by register-wise maximum.
func (h *HyperLogLog) Merge(g *HyperLogLog) error {
	if h.numRegisters != g.numRegisters {
		return fmt.Errorf("sketches: number of registers %d, %d don't match", h.numRegisters, g.numRegisters)
	}
	for i := range g.registers {
		if g.registers[i] > h.registers[i] {
			h.registers[i] = g.registers[i]
		}
	}
	return nil
}

// Reset clears all registers.
func (h *HyperLogLog) Reset() {
	for i := range h.registers {
		h.registers[i] = 0
	}
}

func (h *HyperLogLog) NumRegisters() uint64 {
	return h.numRegisters
}

// Accuracy returns the typical relative error of the estimator.
func (h *HyperLogLog) Accuracy() float64 {
	return 1.04 / math.Sqrt(float64(h.numRegisters))
}

// Equals reports whether both estimators have identical register
// contents.
func (h *HyperLogLog) Equals(g *HyperLogLog) bool {
	if h.numRegisters != g.numRegisters {
		return false
	}
	for i := range h.registers {
		if h.registers[i] != g.registers[i] {
			return false
		}
	}
	return true
}

func getAlpha(m uint64) float64 {
	switch m {
	case 16:
		return 0.673
	case 32:
		return 0.697
	case 64:
		return 0.709
	default:
		return 0.7213 / (1.0 + 1.079/float64(m))
	}
}
