package design

import (
	"fmt"
	"math"
	"strings"
)

// FilterType selects the per-voice filter shape.
type FilterType int

const (
	// FilterPeaking is the peaking equalizer (scalar inlet value 0).
	FilterPeaking FilterType = iota
	// FilterBandpass is the constant-skirt-gain bandpass (scalar inlet value 1).
	FilterBandpass
)

// FilterTypeFromValue maps a scalar control value to a filter type.
// Values rounding to 1 or more select the bandpass; everything else,
// including NaN, selects the peaking equalizer.
func FilterTypeFromValue(v float64) FilterType {
	if v >= 0.5 {
		return FilterBandpass
	}
	return FilterPeaking
}

// Value returns the scalar control value for t.
func (t FilterType) Value() float64 {
	return float64(t)
}

func (t FilterType) String() string {
	switch t {
	case FilterPeaking:
		return "peaking"
	case FilterBandpass:
		return "bandpass"
	default:
		return fmt.Sprintf("FilterType(%d)", int(t))
	}
}

// ParseFilterType parses "peaking"/"peq" or "bandpass"/"bp".
func ParseFilterType(s string) (FilterType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "peaking", "peq", "0":
		return FilterPeaking, nil
	case "bandpass", "bp", "1":
		return FilterBandpass, nil
	default:
		return FilterPeaking, fmt.Errorf("design: unknown filter type %q", s)
	}
}

// GainMapping converts the gain control into the linear peak factor mu used
// by [Peaking].
type GainMapping int

const (
	// GainExp10 maps mu = 10^gain for every gain.
	GainExp10 GainMapping = iota
	// GainLegacy maps mu = 10^gain below 0.6 and holds mu = 2 from 0.6 up,
	// reproducing the two-lane plugin variant.
	GainLegacy
)

// legacyKnee is the gain at which GainLegacy switches to the fixed factor.
const legacyKnee = 0.6

// Mu returns the linear peak factor for gain.
func (m GainMapping) Mu(gain float64) float64 {
	if m == GainLegacy && !(gain < legacyKnee) {
		return 2
	}
	return math.Pow(10, gain)
}

func (m GainMapping) String() string {
	switch m {
	case GainExp10:
		return "exp10"
	case GainLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("GainMapping(%d)", int(m))
	}
}

// ParseGainMapping parses "exp10" or "legacy".
func ParseGainMapping(s string) (GainMapping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exp10", "":
		return GainExp10, nil
	case "legacy":
		return GainLegacy, nil
	default:
		return GainExp10, fmt.Errorf("design: unknown gain mapping %q", s)
	}
}
