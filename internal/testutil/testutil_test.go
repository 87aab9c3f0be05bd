package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSineStartsAtZero(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// 1 kHz at 48 kHz: a quarter period is 12 samples.
	if math.Abs(s[12]-1) > 1e-12 {
		t.Fatalf("s[12] = %v, want 1", s[12])
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(42, 0.5, 64)
	b := DeterministicNoise(42, 0.5, 64)
	RequireIdentical(t, a, b)
	for i, v := range a {
		if v < -0.5 || v >= 0.5 {
			t.Fatalf("a[%d] = %v out of range", i, v)
		}
	}

	c := DeterministicNoise(43, 0.5, 64)
	if a[0] == c[0] && a[1] == c[1] {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("imp[%d] = %v, want %v", i, v, want)
		}
	}
	RequireZero(t, Impulse(4, 10))
}

func TestNoteList(t *testing.T) {
	l := NoteList(0.8, 0, 69, 127, 128, -1)
	if len(l) != 128 {
		t.Fatalf("len = %d, want 128", len(l))
	}
	active := 0
	for _, v := range l {
		if v != 0 {
			active++
		}
	}
	if active != 3 || l[69] != 0.8 {
		t.Fatalf("active = %d, l[69] = %v", active, l[69])
	}
}

func TestGeometricSweepEnds(t *testing.T) {
	s := GeometricSweep(10, 0.001, 1000)
	if s[0] != 10 || s[len(s)-1] != 0.001 {
		t.Fatalf("ends = %v, %v", s[0], s[len(s)-1])
	}
	for i := 1; i < len(s); i++ {
		if s[i] >= s[i-1] {
			t.Fatalf("not decreasing at %d: %v >= %v", i, s[i], s[i-1])
		}
	}
}

func TestRenderBlocksCoversShortTail(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5}
	var sizes []int
	out := RenderBlocks(src, 2, func(dst, in []float64) {
		sizes = append(sizes, len(in))
		for i := range in {
			dst[i] = 2 * in[i]
		}
	})
	RequireIdentical(t, out, []float64{2, 4, 6, 8, 10})
	if len(sizes) != 3 || sizes[2] != 1 {
		t.Fatalf("block sizes = %v, want [2 2 1]", sizes)
	}
}
