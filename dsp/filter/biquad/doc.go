// Package biquad provides the per-voice second-order IIR runtime.
//
// A [State] holds the last two input and output samples of one voice and
// advances with the direct form I recursion
//
//	y[n] = B0*x[n] + B1*x[n-1] + B2*x[n-2] - A1*y[n-1] - A2*y[n-2]
//
// for a set of [Coefficients]. Coefficients are stateless and can be
// recomputed every block; the history lives with the voice.
//
// Coefficient design (peaking equalizer, bandpass) lives in dsp/filter/design.
package biquad
