package count

import (
	"fmt"
	"sort"
	"strings"
)

// TopKElement pairs an element with its estimated frequency at the time
// of the query.
type TopKElement struct {
	Element string
	Count   uint64
}

// TopK tracks the k most frequent elements of a stream using a
// Count-Min sketch for frequency estimates and a candidate set of
// elements that have, at some point, exceeded the minimum frequency
// share. The candidate set is always a superset of the true top k but
// may hold stale entries whose share has since fallen below the
// threshold; ShrinkToFit prunes those and must be called periodically
// by the caller to bound memory as the stream's distribution shifts.
//
// A TopK is not safe for concurrent mutation; callers own
// synchronization.
type TopK struct {
	k          uint
	min        float64
	n          uint64
	sketch     *CountMinSketch
	candidates map[string]struct{}
}

// NewTopK returns a TopK tracking k elements whose frequency share
// exceeds min (in (0, 1)), estimated with the given sketch. The TopK
// takes ownership of the sketch.
func NewTopK(k uint, min float64, sketch *CountMinSketch) (*TopK, error) {
	if k == 0 {
		return nil, fmt.Errorf("sketches: k should be greater than 0")
	}
	if min <= 0 || min >= 1 {
		return nil, fmt.Errorf("sketches: min should be in (0, 1), got %f", min)
	}
	if sketch == nil {
		return nil, fmt.Errorf("sketches: sketch can't be nil")
	}
	return &TopK{
		k:          k,
		min:        min,
		sketch:     sketch,
		candidates: make(map[string]struct{}, k),
	}, nil
}

// Insert registers one occurrence of data, adding it to the candidate
// set if its estimated frequency share exceeds the minimum. Inserts
// never remove candidates.
func (t *TopK) Insert(data []byte) {
	t.sketch.Insert(data)
	t.n++
	if t.isTop(data) {
		t.candidates[string(data)] = struct{}{}
	}
}

func (t *TopK) InsertString(data string) {
	t.Insert([]byte(data))
}

// Elements returns the candidates still exceeding the minimum frequency
// share, ordered by descending estimated frequency with lexicographic
// tiebreak, truncated to the top k. Shares are re-evaluated at call
// time since the sketch's counters keep growing.
func (t *TopK) Elements() []TopKElement {
	results := make([]TopKElement, 0, len(t.candidates))
	for e := range t.candidates {
		if !t.isTop([]byte(e)) {
			continue
		}
		results = append(results, TopKElement{e, t.sketch.EstimateString(e)})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Count == results[j].Count {
			return strings.Compare(results[i].Element, results[j].Element) < 0
		}
		return results[i].Count > results[j].Count
	})
	if uint(len(results)) > t.k {
		results = results[:t.k]
	}
	return results
}

// ShrinkToFit replaces a candidate set that has grown past k with the
// elements currently surviving the Elements filter. Amortized cleanup;
// not invoked automatically.
func (t *TopK) ShrinkToFit() {
	if uint(len(t.candidates)) <= t.k {
		return
	}
	kept := t.Elements()
	t.candidates = make(map[string]struct{}, t.k)
	for _, e := range kept {
		t.candidates[e.Element] = struct{}{}
	}
}

func (t *TopK) Observed() uint64 {
	return t.n
}

func (t *TopK) isTop(data []byte) bool {
	return float64(t.sketch.Estimate(data))/float64(t.n) > t.min
}
