package notemask

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-fofi/dsp/filter/bank"
	"gitlab.com/gomidi/midi/v2"
)

type recordingSink struct {
	lists [][]float64
	err   error
}

func (r *recordingSink) SetMask(values []float64) error {
	r.lists = append(r.lists, append([]float64(nil), values...))
	return r.err
}

func TestProducerNoteUsesCurrentVelocity(t *testing.T) {
	sink := &recordingSink{}
	p := NewProducer(WithSink(sink))

	p.SetVelocity(90)
	m, err := p.Note(64)
	if err != nil {
		t.Fatalf("Note: %v", err)
	}
	if m[64] != 90 || m.ActiveCount() != 1 {
		t.Fatalf("mask after Note(64): active=%d m[64]=%v", m.ActiveCount(), m[64])
	}

	p.SetVelocity(0)
	m, _ = p.Note(64)
	if m.Active(64) {
		t.Fatal("velocity 0 did not release the note")
	}

	if len(sink.lists) != 2 {
		t.Fatalf("sink received %d lists, want 2", len(sink.lists))
	}
	for i, l := range sink.lists {
		if len(l) != Size {
			t.Fatalf("list %d has %d entries", i, len(l))
		}
	}
	if sink.lists[0][64] != 90 || sink.lists[1][64] != 0 {
		t.Fatalf("sink lists carry wrong velocities: %v / %v", sink.lists[0][64], sink.lists[1][64])
	}
}

func TestProducerRejectsInvalidNote(t *testing.T) {
	sink := &recordingSink{}
	p := NewProducer(WithSink(sink))
	if _, err := p.NoteOn(10, 50); err != nil {
		t.Fatal(err)
	}

	for _, note := range []int{-1, 128} {
		m, err := p.NoteOn(note, 100)
		if !errors.Is(err, bank.ErrInvalidIndex) {
			t.Fatalf("NoteOn(%d) err = %v, want ErrInvalidIndex", note, err)
		}
		if m.ActiveCount() != 1 || !m.Active(10) {
			t.Fatalf("rejected note changed the mask")
		}
	}

	if len(sink.lists) != 1 {
		t.Fatalf("rejected notes were emitted: %d lists", len(sink.lists))
	}
}

func TestProducerHandleMessage(t *testing.T) {
	p := NewProducer()

	m, handled, err := p.HandleMessage(midi.NoteOn(0, 69, 100))
	if err != nil || !handled {
		t.Fatalf("note on: handled=%v err=%v", handled, err)
	}
	if m[69] != 100 {
		t.Fatalf("m[69] = %v, want 100", m[69])
	}

	m, _, _ = p.HandleMessage(midi.NoteOn(0, 72, 64))
	if m.ActiveCount() != 2 {
		t.Fatalf("ActiveCount = %d, want 2", m.ActiveCount())
	}

	m, handled, _ = p.HandleMessage(midi.NoteOff(0, 69))
	if !handled || m.Active(69) || !m.Active(72) {
		t.Fatalf("note off: handled=%v mask69=%v mask72=%v", handled, m[69], m[72])
	}

	// Note-on with velocity 0 is a note-off.
	m, handled, _ = p.HandleMessage(midi.NoteOn(0, 72, 0))
	if !handled || m.Active(72) {
		t.Fatal("velocity-0 note-on did not release the note")
	}

	if _, handled, _ = p.HandleMessage(midi.ControlChange(0, 7, 100)); handled {
		t.Fatal("volume controller should not be handled")
	}

	_, _, _ = p.HandleMessage(midi.NoteOn(3, 40, 10))
	m, handled, _ = p.HandleMessage(midi.ControlChange(3, 123, 0))
	if !handled || m.ActiveCount() != 0 {
		t.Fatalf("all-notes-off: handled=%v active=%d", handled, m.ActiveCount())
	}

	_, _, _ = p.HandleMessage(midi.NoteOn(1, 50, 90))
	_, _, _ = p.HandleMessage(midi.NoteOn(1, 55, 90))
	m, handled, _ = p.HandleMessage(midi.ControlChange(1, 120, 0))
	if !handled || m.ActiveCount() != 0 {
		t.Fatalf("all-sound-off: handled=%v active=%d", handled, m.ActiveCount())
	}
}

func TestProducerFeedsStore(t *testing.T) {
	var s storeSink
	p := NewProducer(WithSink(&s))

	if _, err := p.NoteOn(60, 1); err != nil {
		t.Fatal(err)
	}
	if !s.Load().Active(60) {
		t.Fatal("store did not receive produced mask")
	}

	p.Reset()
	if s.Load().ActiveCount() != 0 {
		t.Fatal("store did not receive reset mask")
	}
}

type storeSink struct{ Store }

func (s *storeSink) SetMask(values []float64) error { return s.Replace(values) }

func TestProducerSinkErrorIsNotFatal(t *testing.T) {
	sink := &recordingSink{err: ErrInvalidMaskLength}
	p := NewProducer(WithSink(sink))

	m, err := p.NoteOn(1, 1)
	if err != nil {
		t.Fatalf("sink error leaked to caller: %v", err)
	}
	if !m.Active(1) {
		t.Fatal("mask not updated")
	}
	if p.Velocity() != 1 {
		t.Fatalf("Velocity() = %v", p.Velocity())
	}
}
