package response

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-fofi/dsp/filter/biquad"
	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidConfig is returned for non-positive sample rates and FFT sizes
// that are not a power of two of at least 2.
var ErrInvalidConfig = errors.New("response: invalid config")

// minMagnitude floors magnitudes before conversion to dB.
const minMagnitude = 1e-15

// Config holds measurement parameters.
type Config struct {
	SampleRate float64
	FFTSize    int
}

// Result is a magnitude response on the bins 0..FFTSize/2.
type Result struct {
	Freqs       []float64
	Magnitude   []float64
	MagnitudeDB []float64
}

// Processor is anything that filters audio in blocks.
type Processor interface {
	Process(dst, src []float64)
}

func (cfg Config) validate() error {
	if !(cfg.SampleRate > 0) || math.IsInf(cfg.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, cfg.SampleRate)
	}
	if cfg.FFTSize < 2 || cfg.FFTSize&(cfg.FFTSize-1) != 0 {
		return fmt.Errorf("%w: FFT size %d", ErrInvalidConfig, cfg.FFTSize)
	}
	return nil
}

// Measure returns the response of c from its impulse response truncated to
// FFTSize samples.
func Measure(c biquad.Coefficients, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	return fromImpulseResponse(biquad.ImpulseResponse(c, cfg.FFTSize), cfg)
}

// MeasureProcessor feeds a unit impulse through p in blocks of blockSize and
// returns the response of the captured output. p should start from silent
// voice histories.
func MeasureProcessor(p Processor, blockSize int, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if blockSize <= 0 {
		return Result{}, fmt.Errorf("%w: block size %d", ErrInvalidConfig, blockSize)
	}

	src := make([]float64, cfg.FFTSize)
	src[0] = 1
	ir := make([]float64, cfg.FFTSize)
	for start := 0; start < len(src); start += blockSize {
		end := min(start+blockSize, len(src))
		p.Process(ir[start:end], src[start:end])
	}

	return fromImpulseResponse(ir, cfg)
}

// Analytic evaluates c on the same bin grid as Measure.
func Analytic(c biquad.Coefficients, cfg Config) (Result, error) {
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}

	res := newResult(cfg)
	for k, f := range res.Freqs {
		res.Magnitude[k] = math.Sqrt(c.MagnitudeSquared(f, cfg.SampleRate))
	}
	res.fillDB()
	return res, nil
}

func fromImpulseResponse(ir []float64, cfg Config) (Result, error) {
	plan, err := algofft.NewPlan64(cfg.FFTSize)
	if err != nil {
		return Result{}, fmt.Errorf("response: fft plan: %w", err)
	}

	in := make([]complex128, cfg.FFTSize)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, cfg.FFTSize)
	if err := plan.Forward(out, in); err != nil {
		return Result{}, fmt.Errorf("response: fft: %w", err)
	}

	res := newResult(cfg)
	bins := len(res.Freqs)
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	vecmath.Magnitude(res.Magnitude, re, im)
	res.fillDB()

	return res, nil
}

func newResult(cfg Config) Result {
	bins := cfg.FFTSize/2 + 1
	binHz := cfg.SampleRate / float64(cfg.FFTSize)

	res := Result{
		Freqs:       make([]float64, bins),
		Magnitude:   make([]float64, bins),
		MagnitudeDB: make([]float64, bins),
	}
	for k := range res.Freqs {
		res.Freqs[k] = float64(k) * binHz
	}
	return res
}

func (r *Result) fillDB() {
	for k, m := range r.Magnitude {
		r.MagnitudeDB[k] = 20 * math.Log10(math.Max(m, minMagnitude))
	}
}

// Peak returns the frequency and level of the loudest bin, ignoring DC.
func (r Result) Peak() (freqHz, db float64) {
	if len(r.Magnitude) < 2 {
		return 0, math.Inf(-1)
	}
	best := 1
	for k := 2; k < len(r.Magnitude); k++ {
		if r.Magnitude[k] > r.Magnitude[best] {
			best = k
		}
	}
	return r.Freqs[best], r.MagnitudeDB[best]
}

// At returns the level of the bin nearest to freqHz.
func (r Result) At(freqHz float64) float64 {
	if len(r.Freqs) < 2 {
		return math.Inf(-1)
	}
	binHz := r.Freqs[1]
	k := int(math.Round(freqHz / binHz))
	k = max(0, min(k, len(r.MagnitudeDB)-1))
	return r.MagnitudeDB[k]
}
