package core

import (
	"errors"
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampPositive(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{name: "zero", value: 0, want: 0.001},
		{name: "negative", value: -3, want: 0.001},
		{name: "nan", value: math.NaN(), want: 0.001},
		{name: "inside", value: 2.5, want: 2.5},
		{name: "ceiling", value: math.Inf(1), want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampPositive(tt.value, 0.001, 100); got != tt.want {
				t.Fatalf("ClampPositive(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestAllFinite(t *testing.T) {
	if !AllFinite([]float64{0, -1, 1e300}) {
		t.Fatal("finite slice reported non-finite")
	}
	if AllFinite([]float64{0, math.NaN()}) {
		t.Fatal("NaN not detected")
	}
	if AllFinite([]float64{math.Inf(-1)}) {
		t.Fatal("-Inf not detected")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-35); got != 0 {
		t.Fatalf("FlushDenormals(1e-35) = %v, want 0", got)
	}
	if got := FlushDenormals(-1e-35); got != 0 {
		t.Fatalf("FlushDenormals(-1e-35) = %v, want 0", got)
	}
	if got := FlushDenormals(1e-10); got != 1e-10 {
		t.Fatalf("FlushDenormals(1e-10) = %v, want unchanged", got)
	}
}

func TestEnsureLenAndZero(t *testing.T) {
	buf := make([]float64, 2, 8)
	buf[0], buf[1] = 1, 2

	grown := EnsureLen(buf, 6)
	if len(grown) != 6 || cap(grown) != 8 {
		t.Fatalf("EnsureLen reused capacity incorrectly: len=%d cap=%d", len(grown), cap(grown))
	}

	Zero(grown)
	for i, v := range grown {
		if v != 0 {
			t.Fatalf("grown[%d] = %v after Zero", i, v)
		}
	}

	if got := EnsureLen(buf, 0); len(got) != 0 {
		t.Fatalf("EnsureLen(0) len = %d", len(got))
	}
	if got := EnsureLen(nil, 3); len(got) != 3 {
		t.Fatalf("EnsureLen(nil, 3) len = %d", len(got))
	}
}

func TestProcessorConfigValidate(t *testing.T) {
	if err := DefaultProcessorConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := []ProcessorConfig{
		{SampleRate: 0, BlockSize: 64, Lanes: 1},
		{SampleRate: math.NaN(), BlockSize: 64, Lanes: 1},
		{SampleRate: 48000, BlockSize: 0, Lanes: 1},
		{SampleRate: 48000, BlockSize: 64, Lanes: 0},
	}
	for i, cfg := range bad {
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("case %d: Validate() = %v, want ErrInvalidConfig", i, err)
		}
	}
}
