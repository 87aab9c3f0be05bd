package design

import (
	"math"

	"github.com/cwbudde/algo-fofi/dsp/filter/biquad"
)

const (
	// minAngle keeps the normalized frequency off DC and Nyquist, where the
	// poles of both shapes reach the unit circle.
	minAngle = 1e-6

	// maxHalfAngle bounds the tangent argument of the peaking design.
	// Beyond pi/2 the tangent turns negative and the poles leave the unit
	// circle.
	maxHalfAngle = 0.49 * math.Pi
)

// Peaking designs the peaking equalizer for one voice.
//
//	wc  = 2*pi*freq/sampleRate
//	mu  = mapping.Mu(gain)
//	kq  = 4/(1+mu) * tan(wc/(2*width))
//	Cpk = (1+kq*mu)/(1+kq)
//	b1  = -2*cos(wc)/(1+kq*mu)
//	b2  = (1-kq*mu)/(1+kq*mu)
//	a1  = -2*cos(wc)/(1+kq)
//	a2  = (1-kq)/(1+kq)
//
// Cpk is returned as B0. width must be > 0; larger widths give a narrower
// peak.
func Peaking(freq, gain, width, sampleRate float64, mapping GainMapping) biquad.Coefficients {
	wc := angularFrequency(freq, sampleRate)
	mu := mapping.Mu(gain)

	half := wc / (2 * width)
	if half > maxHalfAngle {
		half = maxHalfAngle
	}

	kq := 4 / (1 + mu) * math.Tan(half)
	kqmu := kq * mu
	cw := math.Cos(wc)

	return biquad.Coefficients{
		B0: (1 + kqmu) / (1 + kq),
		B1: (-2 * cw) / (1 + kqmu),
		B2: (1 - kqmu) / (1 + kqmu),
		A1: (-2 * cw) / (1 + kq),
		A2: (1 - kq) / (1 + kq),
	}
}

// Bandpass designs a constant-skirt-gain bandpass whose Q (and peak gain)
// equals gain.
func Bandpass(freq, gain, sampleRate float64) biquad.Coefficients {
	w0 := angularFrequency(freq, sampleRate)
	sw := math.Sin(w0)
	alpha := sw / (2 * gain)

	b0 := gain * alpha
	b1 := 0.0
	b2 := -sw / 2
	a0 := 1 + alpha
	a1 := -2 * math.Cos(w0)
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// Voice designs the coefficients of one voice for the selected shape.
// width is ignored by the bandpass.
func Voice(kind FilterType, freq, gain, width, sampleRate float64, mapping GainMapping) biquad.Coefficients {
	if kind == FilterBandpass {
		return Bandpass(freq, gain, sampleRate)
	}
	return Peaking(freq, gain, width, sampleRate, mapping)
}

func angularFrequency(freq, sampleRate float64) float64 {
	w := 2 * math.Pi * freq / sampleRate
	if w < minAngle || math.IsNaN(w) {
		return minAngle
	}
	if w > math.Pi-minAngle {
		return math.Pi - minAngle
	}
	return w
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
