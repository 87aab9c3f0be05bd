// Package signal generates deterministic test input for offline rendering
// and scales rendered output.
package signal

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Kind selects a generated waveform.
type Kind int

const (
	// KindNoise is uniform white noise.
	KindNoise Kind = iota
	// KindSine is a sine wave at a fixed frequency.
	KindSine
	// KindImpulse is a single unit sample at frame 0.
	KindImpulse
)

func (k Kind) String() string {
	switch k {
	case KindNoise:
		return "noise"
	case KindSine:
		return "sine"
	case KindImpulse:
		return "impulse"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses "noise", "sine" or "impulse".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "noise", "white", "":
		return KindNoise, nil
	case "sine":
		return KindSine, nil
	case "impulse":
		return KindImpulse, nil
	default:
		return KindNoise, fmt.Errorf("signal: unknown kind %q", s)
	}
}

// Generator creates deterministic signals at one sample rate.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed for noise.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator for sampleRate.
func NewGenerator(sampleRate float64, opts ...Option) *Generator {
	g := &Generator{sampleRate: sampleRate, seed: 1}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces frames samples of kind. freqHz is used by KindSine only.
func (g *Generator) Generate(kind Kind, freqHz, amplitude float64, frames int) ([]float64, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("signal: frames must be > 0: %d", frames)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("signal: amplitude must be >= 0: %f", amplitude)
	}

	switch kind {
	case KindNoise:
		return g.whiteNoise(amplitude, frames), nil
	case KindSine:
		if !(g.sampleRate > 0) {
			return nil, fmt.Errorf("signal: sample rate must be > 0: %f", g.sampleRate)
		}
		return g.sine(freqHz, amplitude, frames), nil
	case KindImpulse:
		out := make([]float64, frames)
		out[0] = amplitude
		return out, nil
	default:
		return nil, fmt.Errorf("signal: unknown kind %v", kind)
	}
}

func (g *Generator) sine(freqHz, amplitude float64, frames int) []float64 {
	out := make([]float64, frames)
	step := 2 * math.Pi * freqHz / g.sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

func (g *Generator) whiteNoise(amplitude float64, frames int) []float64 {
	out := make([]float64, frames)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Peak returns the largest absolute sample over all lanes.
func Peak(lanes ...[]float64) float64 {
	peak := 0.0
	for _, lane := range lanes {
		for _, v := range lane {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	return peak
}

// NormalizeInPlace scales all lanes by one common factor so the overall
// peak equals target, and returns that factor. Silent input is left alone
// and reports a factor of 1.
func NormalizeInPlace(target float64, lanes ...[]float64) float64 {
	peak := Peak(lanes...)
	if peak == 0 || target < 0 {
		return 1
	}
	scale := target / peak
	for _, lane := range lanes {
		vecmath.ScaleBlock(lane, lane, scale)
	}
	return scale
}
