package bank

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fofi/dsp/core"
	"github.com/cwbudde/algo-fofi/dsp/filter/biquad"
)

// ErrInvalidIndex is returned for note numbers outside [0, 127].
var ErrInvalidIndex = errors.New("bank: note index out of range")

// VoiceBank is a fixed array of filter states indexed by MIDI note number.
// The zero value is ready to use with all voices silent.
//
// A VoiceBank is owned by a single audio goroutine.
type VoiceBank struct {
	voices [NoteCount]biquad.State
}

// NewVoiceBank returns a zeroed voice bank.
func NewVoiceBank() *VoiceBank {
	return &VoiceBank{}
}

// Voice returns the state of note for direct stepping.
func (b *VoiceBank) Voice(note int) (*biquad.State, error) {
	if err := checkNote(note); err != nil {
		return nil, err
	}
	return &b.voices[note], nil
}

// At returns the state of note without a range check. It panics for notes
// outside [0, 127].
func (b *VoiceBank) At(note int) *biquad.State {
	return &b.voices[note]
}

// Step advances the voice of note by one sample.
func (b *VoiceBank) Step(note int, c biquad.Coefficients, x float64) (float64, error) {
	if err := checkNote(note); err != nil {
		return 0, err
	}
	return b.voices[note].Step(c, x), nil
}

// Reset clears the history of one voice.
func (b *VoiceBank) Reset(note int) error {
	if err := checkNote(note); err != nil {
		return err
	}
	b.voices[note].Reset()
	return nil
}

// ResetAll clears every voice.
func (b *VoiceBank) ResetAll() {
	for i := range b.voices {
		b.voices[i].Reset()
	}
}

// FlushDenormals zeroes history values that have decayed into the denormal
// range.
func (b *VoiceBank) FlushDenormals() {
	for i := range b.voices {
		v := &b.voices[i]
		v.In[0] = core.FlushDenormals(v.In[0])
		v.In[1] = core.FlushDenormals(v.In[1])
		v.Out[0] = core.FlushDenormals(v.Out[0])
		v.Out[1] = core.FlushDenormals(v.Out[1])
	}
}

// Snapshot returns a copy of every voice state.
func (b *VoiceBank) Snapshot() [NoteCount]biquad.State {
	return b.voices
}

// ProcessTo filters src into dst through the voice of note. dst may alias src.
func (b *VoiceBank) ProcessTo(note int, c biquad.Coefficients, dst, src []float64) error {
	if err := checkNote(note); err != nil {
		return err
	}
	b.voices[note].ProcessBlockTo(c, dst, src)
	return nil
}

// AccumulateTo filters src through the voice of note and adds the result to
// dst, using scratch as the voice's output buffer.
func (b *VoiceBank) AccumulateTo(note int, c biquad.Coefficients, dst, src, scratch []float64) error {
	if err := checkNote(note); err != nil {
		return err
	}
	b.voices[note].AccumulateTo(c, dst, src, scratch)
	return nil
}

func checkNote(note int) error {
	if note < 0 || note >= NoteCount {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, note)
	}
	return nil
}
