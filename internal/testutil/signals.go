// Package testutil holds deterministic signals, note lists and comparison
// helpers shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude)
// from a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at pos. Out-of-range positions give an
// all-zero signal.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// NoteList returns a 128-entry velocity list with the given notes set to
// velocity. Out-of-range notes are ignored.
func NoteList(velocity float64, notes ...int) []float64 {
	out := make([]float64, 128)
	for _, n := range notes {
		if n >= 0 && n < len(out) {
			out[n] = velocity
		}
	}
	return out
}

// GeometricSweep returns steps values moving geometrically from start to end.
// Both ends must be positive.
func GeometricSweep(start, end float64, steps int) []float64 {
	out := make([]float64, steps)
	if steps == 1 {
		out[0] = start
		return out
	}
	ratio := math.Pow(end/start, 1/float64(steps-1))
	v := start
	for i := range out {
		out[i] = v
		v *= ratio
	}
	out[steps-1] = end
	return out
}

// RenderBlocks feeds src to process in blocks of blockSize (the last block
// may be shorter) and returns the concatenated output.
func RenderBlocks(src []float64, blockSize int, process func(dst, src []float64)) []float64 {
	out := make([]float64, len(src))
	for start := 0; start < len(src); start += blockSize {
		end := min(start+blockSize, len(src))
		process(out[start:end], src[start:end])
	}
	return out
}
