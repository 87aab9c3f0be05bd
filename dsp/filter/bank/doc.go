// Package bank holds the per-note voice bank of the polyphonic filter and
// the note-to-frequency table that tunes it.
//
// A [VoiceBank] owns one [biquad.State] per MIDI note (0..127). Each voice
// is stepped independently; indices outside the MIDI range are rejected with
// [ErrInvalidIndex] and never written.
//
// A [Tuning] maps note numbers to center frequencies in twelve-tone equal
// temperament:
//
//	f(n) = a4 * 2^((n-69)/12)
//
// [DefaultTuning] uses A4 = 440 Hz and is shared process-wide.
//
// Basic usage:
//
//	var vb bank.VoiceBank
//	f, _ := bank.DefaultTuning().Frequency(69) // 440 Hz
//	c := design.Peaking(f, 1, 1, 48000, design.GainExp10)
//	y, err := vb.Step(69, c, x)
package bank
