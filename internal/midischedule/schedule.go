// Package midischedule turns a Standard MIDI File into block-indexed note
// mask updates for offline rendering.
package midischedule

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"

	"github.com/cwbudde/algo-fofi/dsp/notemask"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ErrInvalidTiming is returned for non-positive sample rates or block sizes.
var ErrInvalidTiming = errors.New("midischedule: sample rate and block size must be positive")

// Event is the mask in effect from the start of Block on.
type Event struct {
	Block int
	Mask  notemask.Mask
}

// Schedule is an ordered list of mask changes. At most one event exists per
// block; several MIDI events inside one block collapse to the last mask.
type Schedule struct {
	Events []Event
	// Blocks is the number of blocks needed to reach the last event.
	Blocks int
}

type options struct {
	logger   *slog.Logger
	velocity func(uint8) float64
}

// Option configures schedule building.
type Option func(*options)

// WithLogger sets the logger for skipped events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNormalizedVelocity maps MIDI velocity 1..127 to (0, 1] instead of
// keeping the raw value.
func WithNormalizedVelocity() Option {
	return func(o *options) {
		o.velocity = func(v uint8) float64 { return float64(v) / 127 }
	}
}

// Load reads a MIDI file from path.
func Load(path string, sampleRate float64, blockSize int, opts ...Option) (*Schedule, error) {
	return build(smf.ReadTracks(path), sampleRate, blockSize, opts...)
}

// Read reads a MIDI file from r.
func Read(r io.Reader, sampleRate float64, blockSize int, opts ...Option) (*Schedule, error) {
	return build(smf.ReadTracksFrom(r), sampleRate, blockSize, opts...)
}

type timedMessage struct {
	micros int64
	msg    midi.Message
}

func build(tr *smf.TracksReader, sampleRate float64, blockSize int, opts ...Option) (*Schedule, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) || blockSize <= 0 {
		return nil, fmt.Errorf("%w: %v Hz, %d samples", ErrInvalidTiming, sampleRate, blockSize)
	}

	o := options{
		logger:   slog.New(slog.DiscardHandler),
		velocity: func(v uint8) float64 { return float64(v) },
	}
	for _, opt := range opts {
		opt(&o)
	}

	var msgs []timedMessage
	err := tr.Do(func(te smf.TrackEvent) {
		msgs = append(msgs, timedMessage{
			micros: te.AbsMicroSeconds,
			msg:    midi.Message(te.Message),
		})
	}).Error()
	if err != nil {
		return nil, fmt.Errorf("midischedule: %w", err)
	}

	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].micros < msgs[j].micros })

	prod := notemask.NewProducer(notemask.WithLogger(o.logger))
	s := &Schedule{}
	for _, tm := range msgs {
		var ch, key, vel uint8
		if tm.msg.GetNoteStart(&ch, &key, &vel) {
			m, err := prod.NoteOn(int(key), o.velocity(vel))
			if err != nil {
				o.logger.Warn("midischedule: skipped note", "key", key, "err", err)
				continue
			}
			s.add(tm.micros, sampleRate, blockSize, m)
			continue
		}

		m, handled, err := prod.HandleMessage(tm.msg)
		if err != nil {
			o.logger.Warn("midischedule: skipped message", "msg", tm.msg.String(), "err", err)
			continue
		}
		if handled {
			s.add(tm.micros, sampleRate, blockSize, m)
		}
	}

	o.logger.Debug("midischedule: built", "events", len(s.Events), "blocks", s.Blocks, "messages", len(msgs))
	return s, nil
}

func (s *Schedule) add(micros int64, sampleRate float64, blockSize int, m notemask.Mask) {
	sample := int64(math.Floor(float64(micros) * sampleRate / 1e6))
	block := int(sample / int64(blockSize))

	if n := len(s.Events); n > 0 && s.Events[n-1].Block == block {
		s.Events[n-1].Mask = m
	} else {
		s.Events = append(s.Events, Event{Block: block, Mask: m})
	}
	s.Blocks = max(s.Blocks, block+1)
}

// Cursor walks a schedule block by block.
type Cursor struct {
	s    *Schedule
	next int
}

// Cursor returns a cursor positioned before the first event.
func (s *Schedule) Cursor() *Cursor {
	return &Cursor{s: s}
}

// Advance returns the newest mask whose block is <= block and that has not
// been returned yet. ok is false when nothing changed.
func (c *Cursor) Advance(block int) (m notemask.Mask, ok bool) {
	for c.next < len(c.s.Events) && c.s.Events[c.next].Block <= block {
		m = c.s.Events[c.next].Mask
		ok = true
		c.next++
	}
	return m, ok
}
