package count

import (
	"fmt"
	"math"
	"testing"
)

func TestHyperLogLogParameterErrors(t *testing.T) {
	if _, err := NewHyperLogLog(0); err == nil {
		t.Error("should error out on zero registers")
	}
	if _, err := NewHyperLogLog(12); err == nil {
		t.Error("should error out on a register count that isn't a power of two")
	}
}

func TestHyperLogLogCount(t *testing.T) {
	h, err := NewHyperLogLog(4096)
	if err != nil {
		t.Fatal(err)
	}
	distinct := 10000
	for i := 0; i < distinct; i++ {
		h.UpdateString(fmt.Sprintf("element-%d", i))
		// Duplicates shouldn't move the estimate.
		h.UpdateString(fmt.Sprintf("element-%d", i))
	}
	estimate := float64(h.Count())
	relativeError := math.Abs(estimate-float64(distinct)) / float64(distinct)
	if relativeError > 3*h.Accuracy() {
		t.Errorf("estimate %v too far from %d, relative error %v", estimate, distinct, relativeError)
	}
}

func TestHyperLogLogSmallRange(t *testing.T) {
	h, _ := NewHyperLogLog(1024)
	for i := 0; i < 5; i++ {
		h.UpdateString(fmt.Sprintf("item-%d", i))
	}
	c := h.Count()
	if c < 4 || c > 6 {
		t.Errorf("small-range estimate should be close to 5, found %d", c)
	}
}

func TestHyperLogLogMerge(t *testing.T) {
	h, _ := NewHyperLogLog(2048)
	g, _ := NewHyperLogLog(2048)
	for i := 0; i < 5000; i++ {
		h.UpdateString(fmt.Sprintf("left-%d", i))
		g.UpdateString(fmt.Sprintf("right-%d", i))
	}
	if err := h.Merge(g); err != nil {
		t.Fatalf("merge of same-sized estimators shouldn't error, found %v", err)
	}
	estimate := float64(h.Count())
	relativeError := math.Abs(estimate-10000) / 10000
	if relativeError > 3*h.Accuracy() {
		t.Errorf("merged estimate %v too far from 10000, relative error %v", estimate, relativeError)
	}
}

func TestHyperLogLogMergeError(t *testing.T) {
	h, _ := NewHyperLogLog(1024)
	g, _ := NewHyperLogLog(2048)
	if err := h.Merge(g); err == nil {
		t.Error("it should error out as register counts don't match")
	}
}

func TestHyperLogLogReset(t *testing.T) {
	h, _ := NewHyperLogLog(512)
	g, _ := NewHyperLogLog(512)
	for i := 0; i < 100; i++ {
		h.UpdateString(fmt.Sprintf("element-%d", i))
	}
	h.Reset()
	if !h.Equals(g) {
		t.Error("a reset estimator should equal a fresh one")
	}
	if h.Count() != 0 {
		t.Errorf("count after reset should be 0, found %d", h.Count())
	}
}

func BenchmarkHyperLogLogUpdate(b *testing.B) {
	h, _ := NewHyperLogLog(4096)
	data := []byte("some element")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Update(data)
	}
}
