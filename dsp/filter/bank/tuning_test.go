package bank

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultTuningReferencePoints(t *testing.T) {
	tests := []struct {
		note int
		want float64
	}{
		{note: 69, want: 440},
		{note: 57, want: 220},
		{note: 81, want: 880},
		{note: 60, want: 261.6255653005986},
		{note: 0, want: 8.175798915643707},
		{note: 127, want: 12543.853951415975},
	}

	tun := DefaultTuning()
	for _, tt := range tests {
		got, err := tun.Frequency(tt.note)
		if err != nil {
			t.Fatalf("Frequency(%d): %v", tt.note, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Frequency(%d) = %.12f, want %.12f", tt.note, got, tt.want)
		}
	}
}

func TestTuningMonotonic(t *testing.T) {
	table := DefaultTuning().Table()
	for n := 1; n < NoteCount; n++ {
		ratio := table[n] / table[n-1]
		if math.Abs(ratio-math.Pow(2, 1.0/12)) > 1e-12 {
			t.Fatalf("semitone ratio at %d = %v", n, ratio)
		}
	}
}

func TestNewTuningCustomReference(t *testing.T) {
	tun, err := NewTuning(432)
	if err != nil {
		t.Fatalf("NewTuning: %v", err)
	}
	if tun.A4() != 432 {
		t.Fatalf("A4() = %v", tun.A4())
	}
	f, _ := tun.Frequency(81)
	if math.Abs(f-864) > 1e-9 {
		t.Fatalf("A5 = %v, want 864", f)
	}

	for _, bad := range []float64{0, -440, math.NaN(), math.Inf(1)} {
		if _, err := NewTuning(bad); err == nil {
			t.Errorf("NewTuning(%v) accepted", bad)
		}
	}
}

func TestFrequencyRejectsOutOfRange(t *testing.T) {
	for _, note := range []int{-1, 128, 1000} {
		if _, err := DefaultTuning().Frequency(note); !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("Frequency(%d) err = %v, want ErrInvalidIndex", note, err)
		}
	}
}
