// Package design derives per-voice biquad coefficients for the note filter
// bank.
//
// Two shapes are provided:
//
//   - [Peaking]: a second-order peaking equalizer parameterized by a
//     logarithmic gain and a peak width (larger width, narrower peak).
//   - [Bandpass]: the cookbook constant-skirt-gain bandpass with the gain
//     parameter used as Q (peak gain = Q).
//
// Both are pure functions of their scalar inputs. Gain and width must be
// strictly positive; callers clamp them before designing.
package design
