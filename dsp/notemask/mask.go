package notemask

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fofi/dsp/filter/bank"
)

// Size is the fixed length of every mask.
const Size = bank.NoteCount

// ErrInvalidMaskLength is returned when a note list does not hold exactly
// Size entries.
var ErrInvalidMaskLength = errors.New("notemask: note list must have 128 entries")

// Mask is one complete activity snapshot. Index = MIDI note number,
// value = velocity; values <= 0 are inactive.
type Mask [Size]float64

// FromValues copies a note list into a Mask.
func FromValues(values []float64) (Mask, error) {
	var m Mask
	if len(values) != Size {
		return m, fmt.Errorf("%w: got %d", ErrInvalidMaskLength, len(values))
	}
	copy(m[:], values)
	return m, nil
}

// Active reports whether note is sounding. Out-of-range notes are inactive.
func (m *Mask) Active(note int) bool {
	if note < 0 || note >= Size {
		return false
	}
	return m[note] > 0
}

// ActiveCount returns the number of active voices.
func (m *Mask) ActiveCount() int {
	n := 0
	for _, v := range m {
		if v > 0 {
			n++
		}
	}
	return n
}

// ActiveNotes appends the active note numbers, ascending, to dst.
func (m *Mask) ActiveNotes(dst []int) []int {
	for n, v := range m {
		if v > 0 {
			dst = append(dst, n)
		}
	}
	return dst
}

// Values returns the mask as a freshly allocated list.
func (m *Mask) Values() []float64 {
	out := make([]float64, Size)
	copy(out, m[:])
	return out
}
