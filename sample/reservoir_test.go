package sample

import (
	"math/rand"
	"testing"
)

func TestReservoirSizeError(t *testing.T) {
	if _, err := NewReservoirSample[int](0); err == nil {
		t.Error("should error out on zero size")
	}
}

func TestReservoirFillPhase(t *testing.T) {
	res, _ := NewReservoirSample[string](5)
	for _, v := range []string{"one", "two", "three"} {
		res.Insert(v)
	}
	elements := res.Elements()
	if len(elements) != 3 {
		t.Fatalf("sample should hold all 3 elements before filling, found %d", len(elements))
	}
	if elements[0] != "one" || elements[1] != "two" || elements[2] != "three" {
		t.Errorf("fill phase should keep insertion order, found %v", elements)
	}
}

func TestReservoirBounds(t *testing.T) {
	res, _ := NewReservoirSample[int](10)
	for i := 0; i < 100; i++ {
		res.Insert(i)
	}
	elements := res.Elements()
	if len(elements) != 10 {
		t.Fatalf("sample should hold exactly 10 elements, found %d", len(elements))
	}
	for _, v := range elements {
		if v < 0 || v >= 100 {
			t.Errorf("sampled element %d was never inserted", v)
		}
	}
	if res.Count() != 100 {
		t.Errorf("count should be 100, found %d", res.Count())
	}
}

func TestReservoirDeterministicWithSource(t *testing.T) {
	a, _ := NewReservoirSampleWithSource[int](10, rand.NewSource(42))
	b, _ := NewReservoirSampleWithSource[int](10, rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		a.Insert(i)
		b.Insert(i)
	}
	ae, be := a.Elements(), b.Elements()
	for i := range ae {
		if ae[i] != be[i] {
			t.Fatalf("samples with identical sources should match at %d: %d and %d", i, ae[i], be[i])
		}
	}
}

func TestReservoirUniformity(t *testing.T) {
	// Each of 100 stream positions should land in a size-10 sample
	// about 10% of the time. Tally over many runs and check no position
	// is wildly over- or under-represented.
	const (
		runs       = 2000
		streamLen  = 100
		sampleSize = 10
	)
	hits := make([]int, streamLen)
	src := rand.NewSource(7)
	for run := 0; run < runs; run++ {
		res, _ := NewReservoirSampleWithSource[int](sampleSize, src)
		for i := 0; i < streamLen; i++ {
			res.Insert(i)
		}
		for _, v := range res.Elements() {
			hits[v]++
		}
	}
	expected := float64(runs) * float64(sampleSize) / float64(streamLen)
	for i, h := range hits {
		if float64(h) < 0.5*expected || float64(h) > 1.5*expected {
			t.Errorf("position %d sampled %d times, expected about %v", i, h, expected)
		}
	}
}

func TestReservoirElementsIsACopy(t *testing.T) {
	res, _ := NewReservoirSample[int](3)
	res.Insert(1)
	res.Insert(2)
	elements := res.Elements()
	elements[0] = 99
	if res.Elements()[0] != 1 {
		t.Error("mutating the returned slice shouldn't affect the sample")
	}
}

func BenchmarkReservoirInsert(b *testing.B) {
	res, _ := NewReservoirSample[int](1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res.Insert(i)
	}
}
