package hash

import "testing"

func TestSum128Deterministic(t *testing.T) {
	a1, a2 := Sum128([]byte("whee"))
	b1, b2 := Sum128([]byte("whee"))
	if a1 != b1 || a2 != b2 {
		t.Errorf("digests should be stable across calls, got (%d, %d) and (%d, %d)", a1, a2, b1, b2)
	}
	if a1 == a2 {
		t.Errorf("the two digests should differ, both are %d", a1)
	}
}

func TestSum128DistinctElements(t *testing.T) {
	a1, a2 := Sum128([]byte("foo"))
	b1, b2 := Sum128([]byte("bar"))
	if a1 == b1 && a2 == b2 {
		t.Error("distinct elements should not share both digests")
	}
}

func TestIndexGeneratorDeterministic(t *testing.T) {
	g1 := NewIndexGenerator([]byte("whee"), 100)
	g2 := NewIndexGenerator([]byte("whee"), 100)
	for i := 0; i < 10; i++ {
		a, b := g1.Next(), g2.Next()
		if a != b {
			t.Fatalf("draw %d differs between identical generators: %d and %d", i, a, b)
		}
		if a >= 100 {
			t.Fatalf("draw %d out of range: %d", i, a)
		}
	}
}

func TestIndexGeneratorRecurrence(t *testing.T) {
	h1, h2 := Sum128([]byte("whee"))
	g := NewIndexGenerator([]byte("whee"), 1000)
	for n := uint64(1); n <= 20; n++ {
		want := uint((h1 + n*h2) % 1000)
		if got := g.Next(); got != want {
			t.Fatalf("draw %d should be %d, found %d", n, want, got)
		}
	}
}

func BenchmarkIndexGenerator(b *testing.B) {
	data := []byte("some element")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g := NewIndexGenerator(data, 1<<20)
		for j := 0; j < 10; j++ {
			g.Next()
		}
	}
}
