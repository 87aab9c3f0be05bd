package bank

import (
	"fmt"
	"math"
)

// NoteCount is the number of MIDI notes, and the size of every per-note
// table in the filter.
const NoteCount = 128

const (
	referenceNote = 69
	defaultA4     = 440.0
)

// Tuning is an immutable note-to-frequency table.
type Tuning struct {
	a4    float64
	freqs [NoteCount]float64
}

var defaultTuning = mustTuning(defaultA4)

// DefaultTuning returns the A4 = 440 Hz equal-tempered table.
func DefaultTuning() *Tuning { return defaultTuning }

// NewTuning builds an equal-tempered table with A4 (note 69) at a4Hz.
func NewTuning(a4Hz float64) (*Tuning, error) {
	if a4Hz <= 0 || math.IsNaN(a4Hz) || math.IsInf(a4Hz, 0) {
		return nil, fmt.Errorf("bank: reference frequency must be positive, got %v", a4Hz)
	}

	t := &Tuning{a4: a4Hz}
	for n := range t.freqs {
		t.freqs[n] = a4Hz * math.Pow(2, float64(n-referenceNote)/12)
	}
	return t, nil
}

func mustTuning(a4Hz float64) *Tuning {
	t, err := NewTuning(a4Hz)
	if err != nil {
		panic(err)
	}
	return t
}

// A4 returns the reference frequency of note 69.
func (t *Tuning) A4() float64 { return t.a4 }

// Frequency returns the center frequency of note.
func (t *Tuning) Frequency(note int) (float64, error) {
	if err := checkNote(note); err != nil {
		return 0, err
	}
	return t.freqs[note], nil
}

// Table returns a copy of all 128 frequencies.
func (t *Tuning) Table() [NoteCount]float64 {
	return t.freqs
}
