package design

import (
	"math"
	"testing"
)

func TestGainMappingMu(t *testing.T) {
	tests := []struct {
		name    string
		mapping GainMapping
		gain    float64
		want    float64
	}{
		{name: "exp10 zero", mapping: GainExp10, gain: 0, want: 1},
		{name: "exp10 one", mapping: GainExp10, gain: 1, want: 10},
		{name: "legacy below knee", mapping: GainLegacy, gain: 0.5, want: math.Pow(10, 0.5)},
		{name: "legacy at knee", mapping: GainLegacy, gain: 0.6, want: 2},
		{name: "legacy above knee", mapping: GainLegacy, gain: 3, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mapping.Mu(tt.gain); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Mu(%v) = %v, want %v", tt.gain, got, tt.want)
			}
		})
	}
}

func TestFilterTypeFromValue(t *testing.T) {
	tests := []struct {
		v    float64
		want FilterType
	}{
		{0, FilterPeaking},
		{1, FilterBandpass},
		{0.49, FilterPeaking},
		{0.5, FilterBandpass},
		{7, FilterBandpass},
		{-1, FilterPeaking},
		{math.NaN(), FilterPeaking},
	}

	for _, tt := range tests {
		if got := FilterTypeFromValue(tt.v); got != tt.want {
			t.Errorf("FilterTypeFromValue(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, ft := range []FilterType{FilterPeaking, FilterBandpass} {
		got, err := ParseFilterType(ft.String())
		if err != nil || got != ft {
			t.Errorf("ParseFilterType(%q) = %v, %v", ft.String(), got, err)
		}
	}
	if _, err := ParseFilterType("lowpass"); err == nil {
		t.Error("expected error for unknown filter type")
	}

	for _, m := range []GainMapping{GainExp10, GainLegacy} {
		got, err := ParseGainMapping(m.String())
		if err != nil || got != m {
			t.Errorf("ParseGainMapping(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseGainMapping("db"); err == nil {
		t.Error("expected error for unknown gain mapping")
	}
}
