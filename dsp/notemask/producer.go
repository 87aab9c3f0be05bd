package notemask

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cwbudde/algo-fofi/dsp/filter/bank"
	"gitlab.com/gomidi/midi/v2"
)

// MIDI channel-mode controllers that silence every note.
const (
	ccAllSoundOff = 120
	ccAllNotesOff = 123
)

// Sink receives every mask a Producer emits, as a 128-entry list.
type Sink interface {
	SetMask(values []float64) error
}

// Producer turns single note events into complete masks. It keeps the
// current velocity (set separately from the note number) and the last
// velocity written for every note.
//
// Producer is safe for concurrent use.
type Producer struct {
	mu       sync.Mutex
	notes    Mask
	velocity float64
	sink     Sink
	logger   *slog.Logger
}

// ProducerOption configures a Producer.
type ProducerOption func(*Producer)

// WithSink connects the producer's output to s.
func WithSink(s Sink) ProducerOption {
	return func(p *Producer) {
		p.sink = s
	}
}

// WithLogger sets the logger used to report rejected events.
func WithLogger(l *slog.Logger) ProducerOption {
	return func(p *Producer) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewProducer returns a producer with every note inactive and velocity 0.
func NewProducer(opts ...ProducerOption) *Producer {
	p := &Producer{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// SetVelocity sets the velocity applied by the next Note call.
func (p *Producer) SetVelocity(v float64) {
	p.mu.Lock()
	p.velocity = v
	p.mu.Unlock()
}

// Velocity returns the current velocity.
func (p *Producer) Velocity() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.velocity
}

// Note writes the current velocity into note and emits the full mask.
// A velocity of 0 turns the note off. Out-of-range notes are reported and
// leave the mask unchanged.
func (p *Producer) Note(note int) (Mask, error) {
	p.mu.Lock()
	v := p.velocity
	p.mu.Unlock()
	return p.set(note, v)
}

// NoteOn sets the velocity and writes note in one step.
func (p *Producer) NoteOn(note int, velocity float64) (Mask, error) {
	p.SetVelocity(velocity)
	return p.Note(note)
}

// NoteOff marks note inactive without touching the current velocity.
func (p *Producer) NoteOff(note int) (Mask, error) {
	return p.set(note, 0)
}

// Reset marks every note inactive and emits the empty mask.
func (p *Producer) Reset() Mask {
	p.mu.Lock()
	p.notes = Mask{}
	m := p.notes
	p.mu.Unlock()

	p.emit(m)
	return m
}

// Snapshot returns the current mask without emitting it.
func (p *Producer) Snapshot() Mask {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notes
}

// HandleMessage applies a MIDI channel message. Note-on, note-off and the
// all-notes-off / all-sound-off controllers change the mask; every other
// message is ignored and reported as not handled.
func (p *Producer) HandleMessage(msg midi.Message) (Mask, bool, error) {
	var ch, key, vel, ctl, val uint8

	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		m, err := p.NoteOn(int(key), float64(vel))
		return m, true, err
	case msg.GetNoteEnd(&ch, &key):
		m, err := p.NoteOff(int(key))
		return m, true, err
	case msg.GetControlChange(&ch, &ctl, &val) && (ctl == ccAllNotesOff || ctl == ccAllSoundOff):
		return p.Reset(), true, nil
	default:
		return p.Snapshot(), false, nil
	}
}

func (p *Producer) set(note int, v float64) (Mask, error) {
	if note < 0 || note >= Size {
		err := fmt.Errorf("%w: %d", bank.ErrInvalidIndex, note)
		p.logger.Warn("note rejected", "note", note, "err", err)
		return p.Snapshot(), err
	}

	p.mu.Lock()
	p.notes[note] = v
	m := p.notes
	p.mu.Unlock()

	p.emit(m)
	return m, nil
}

func (p *Producer) emit(m Mask) {
	if p.sink == nil {
		return
	}
	if err := p.sink.SetMask(m[:]); err != nil {
		p.logger.Warn("mask sink rejected list", "err", err)
	}
}
