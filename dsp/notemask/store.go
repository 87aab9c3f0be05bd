package notemask

import "sync/atomic"

var emptyMask Mask

// Store publishes masks from the control path to the audio path.
// Writers replace the whole snapshot; readers get a pointer to an immutable
// mask that stays valid for as long as they hold it.
type Store struct {
	current atomic.Pointer[Mask]
}

// Load returns the most recently published mask. Callers must not modify it.
func (s *Store) Load() *Mask {
	if m := s.current.Load(); m != nil {
		return m
	}
	return &emptyMask
}

// Replace validates values and publishes them. On error the previous mask
// stays in effect.
func (s *Store) Replace(values []float64) error {
	m, err := FromValues(values)
	if err != nil {
		return err
	}
	s.current.Store(&m)
	return nil
}

// Set publishes m.
func (s *Store) Set(m Mask) {
	s.current.Store(&m)
}

// Clear publishes an all-inactive mask.
func (s *Store) Clear() {
	s.current.Store(&Mask{})
}
