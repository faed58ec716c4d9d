// Package count provides frequency-oriented stream summaries: the
// Count-Min sketch, the Top-K heavy hitter tracker built on it, and a
// HyperLogLog cardinality estimator.
package count

import (
	"fmt"
	"math"
	"sort"

	"github.com/quantile-dev/sketches/hash"
)

// CountMinSketch estimates element frequencies in a data stream. Hash
// collisions can only inflate counters, so estimates are one-sided:
// Estimate never returns less than the true frequency. Counters only
// ever grow; the sketch is never resized after construction.
//
// A CountMinSketch is not safe for concurrent mutation; callers own
// synchronization.
type CountMinSketch struct {
	rows    uint
	columns uint
	allSum  uint64
	// matrix is row-major: the counter at (r, c) lives at r*columns+c.
	matrix []uint64
}

// NewCountMinSketch returns a sketch with the given counter matrix
// dimensions, all counters zero.
func NewCountMinSketch(rows, columns uint) (*CountMinSketch, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("sketches: rows and columns size should be greater than 0")
	}
	return &CountMinSketch{
		rows:    rows,
		columns: columns,
		matrix:  make([]uint64, rows*columns),
	}, nil
}

// NewCountMinSketchFromEstimates returns a sketch whose estimates are
// within errorRate * total insertions of the truth with probability at
// least confidence.
func NewCountMinSketchFromEstimates(errorRate, confidence float64) (*CountMinSketch, error) {
	if errorRate <= 0 {
		return nil, fmt.Errorf("sketches: error rate should be greater than 0, got %f", errorRate)
	}
	if confidence <= 0 || confidence >= 1 {
		return nil, fmt.Errorf("sketches: confidence should be in (0, 1), got %f", confidence)
	}
	columns := uint(math.Ceil(math.E / errorRate))
	rows := uint(math.Ceil(math.Log(1 / (1 - confidence))))
	return NewCountMinSketch(rows, columns)
}

// Insert registers a single occurrence of data.
func (cms *CountMinSketch) Insert(data []byte) {
	cms.InsertN(data, 1)
}

// InsertN registers count occurrences of data.
func (cms *CountMinSketch) InsertN(data []byte, count uint64) {
	gen := hash.NewIndexGenerator(data, cms.columns)
	for r := uint(0); r < cms.rows; r++ {
		cms.matrix[r*cms.columns+gen.Next()] += count
	}
	cms.allSum += count
}

func (cms *CountMinSketch) InsertString(data string) {
	cms.Insert([]byte(data))
}

func (cms *CountMinSketch) InsertStringN(data string, count uint64) {
	cms.InsertN([]byte(data), count)
}

// Estimate returns the estimated frequency of data: the minimum counter
// across rows. The estimate is never below the true frequency.
func (cms *CountMinSketch) Estimate(data []byte) uint64 {
	var min uint64
	gen := hash.NewIndexGenerator(data, cms.columns)
	for r := uint(0); r < cms.rows; r++ {
		v := cms.matrix[r*cms.columns+gen.Next()]
		if r == 0 || v < min {
			min = v
		}
	}
	return min
}

func (cms *CountMinSketch) EstimateString(data string) uint64 {
	return cms.Estimate([]byte(data))
}

// EstimateMean returns the Count-Mean-Min estimate of data's frequency:
// each row's counter is reduced by the expected collision noise
// (totalN - counter) / (columns - 1) and the median of the corrected
// rows is returned, averaging the two middle rows when the depth is
// even. Corrections that would go negative saturate at zero.
//
// This trades the min estimator's positive bias for lower error on
// skewed streams and can return less than Estimate. totalN should be
// the caller's count of all insertions; the sketch's own TotalCount is
// a reasonable default when the caller hasn't tracked one.
func (cms *CountMinSketch) EstimateMean(data []byte, totalN uint64) uint64 {
	if cms.columns < 2 {
		return cms.Estimate(data)
	}
	corrected := make([]float64, cms.rows)
	gen := hash.NewIndexGenerator(data, cms.columns)
	for r := uint(0); r < cms.rows; r++ {
		v := float64(cms.matrix[r*cms.columns+gen.Next()])
		noise := (float64(totalN) - v) / float64(cms.columns-1)
		if v < noise {
			corrected[r] = 0
		} else {
			corrected[r] = v - noise
		}
	}
	sort.Float64s(corrected)
	mid := len(corrected) / 2
	if len(corrected)%2 == 1 {
		return uint64(corrected[mid])
	}
	return uint64((corrected[mid-1] + corrected[mid]) / 2)
}

func (cms *CountMinSketch) EstimateMeanString(data string, totalN uint64) uint64 {
	return cms.EstimateMean([]byte(data), totalN)
}

// Merge adds another sketch's counters into the receiver element-wise.
// Both sketches must have identical dimensions.
func (cms *CountMinSketch) Merge(other *CountMinSketch) error {
	if cms.rows != other.rows {
		return fmt.Errorf("sketches: can't merge sketches with unequal row counts, %d and %d", cms.rows, other.rows)
	}
	if cms.columns != other.columns {
		return fmt.Errorf("sketches: can't merge sketches with unequal column counts, %d and %d", cms.columns, other.columns)
	}
	for i := range cms.matrix {
		cms.matrix[i] += other.matrix[i]
	}
	cms.allSum += other.allSum
	return nil
}

func (cms *CountMinSketch) Rows() uint {
	return cms.rows
}

func (cms *CountMinSketch) Columns() uint {
	return cms.columns
}

// TotalCount returns the sum of all inserted counts.
func (cms *CountMinSketch) TotalCount() uint64 {
	return cms.allSum
}

// Equals reports whether both sketches have the same dimensions and
// counter values.
func (cms *CountMinSketch) Equals(other *CountMinSketch) bool {
	if cms.rows != other.rows || cms.columns != other.columns {
		return false
	}
	for i := range cms.matrix {
		if cms.matrix[i] != other.matrix[i] {
			return false
		}
	}
	return true
}
