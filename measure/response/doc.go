// Package response measures the magnitude response of a filter voice or a
// whole block processor from its impulse response.
//
// The impulse response is captured into an FFT frame, transformed with
// algo-fft and converted to per-bin magnitude. [Analytic] evaluates the
// transfer function directly on the same bin grid so both can be compared.
//
// # Usage
//
//	res, err := response.Measure(coeffs, response.Config{SampleRate: 48000, FFTSize: 8192})
//	freq, db := res.Peak()
package response
