package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudeSquaredMatchesResponse(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	const sr = 48000.0

	for _, f := range []float64{20, 440, 1000, 5000, 15000, 23000} {
		h := c.Response(f, sr)
		want := cmplx.Abs(h) * cmplx.Abs(h)
		got := c.MagnitudeSquared(f, sr)
		if math.Abs(got-want) > 1e-9*math.Max(1, want) {
			t.Errorf("f=%v: MagnitudeSquared=%v, |H|^2=%v", f, got, want)
		}
	}
}

func TestMagnitudeDBPassthrough(t *testing.T) {
	c := Coefficients{B0: 1}
	if got := c.MagnitudeDB(1000, 48000); math.Abs(got) > 1e-12 {
		t.Fatalf("passthrough magnitude = %v dB, want 0", got)
	}
	if got := c.Phase(1000, 48000); math.Abs(got) > 1e-12 {
		t.Fatalf("passthrough phase = %v, want 0", got)
	}
}

func TestFinite(t *testing.T) {
	if !(Coefficients{B0: 1, A1: -1.9, A2: 0.9}).Finite() {
		t.Fatal("finite coefficients reported non-finite")
	}
	if (Coefficients{B0: math.NaN()}).Finite() {
		t.Fatal("NaN not detected")
	}
	if (Coefficients{A2: math.Inf(1)}).Finite() {
		t.Fatal("Inf not detected")
	}
}

func TestStable(t *testing.T) {
	tests := []struct {
		name string
		c    Coefficients
		want bool
	}{
		{name: "fir", c: Coefficients{B0: 1}, want: true},
		{name: "damped", c: Coefficients{A1: -1.8, A2: 0.81}, want: true},
		{name: "pole on circle", c: Coefficients{A2: 1}, want: false},
		{name: "real pole outside", c: Coefficients{A1: -2.5, A2: 1.2}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Stable(); got != tt.want {
				t.Fatalf("Stable() = %v, want %v", got, tt.want)
			}
		})
	}
}
