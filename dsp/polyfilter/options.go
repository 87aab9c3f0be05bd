package polyfilter

import (
	"log/slog"

	"github.com/cwbudde/algo-fofi/dsp/core"
	"github.com/cwbudde/algo-fofi/dsp/filter/bank"
	"github.com/cwbudde/algo-fofi/dsp/filter/design"
)

// Parameter limits applied before coefficient design.
const (
	DefaultGainFloor    = 0.001
	DefaultGainCeiling  = 10.0
	DefaultWidthFloor   = 0.1
	DefaultWidthCeiling = 10.0
)

type config struct {
	core.ProcessorConfig

	gain       float64
	width      float64
	filterType design.FilterType
	mapping    design.GainMapping
	mix        MixMode
	idle       Idle

	gainFloor, gainCeil   float64
	widthFloor, widthCeil float64

	tuning *bank.Tuning
	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		gain:            1,
		width:           1,
		filterType:      design.FilterPeaking,
		mapping:         design.GainExp10,
		mix:             MixSum,
		idle:            IdleSilence,
		gainFloor:       DefaultGainFloor,
		gainCeil:        DefaultGainCeiling,
		widthFloor:      DefaultWidthFloor,
		widthCeil:       DefaultWidthCeiling,
		tuning:          bank.DefaultTuning(),
		logger:          slog.New(slog.DiscardHandler),
	}
}

// Option configures a Processor.
type Option func(*config)

// WithSampleRate sets the initial sample rate. Defaults to 48 kHz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithMaxBlockSize sets the largest block the host is expected to deliver.
// Scratch buffers are sized for it up front. Defaults to 64.
func WithMaxBlockSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.BlockSize = n
		}
	}
}

// WithLanes sets the number of independent signal lanes, each with its own
// voice bank. Defaults to 1.
func WithLanes(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.Lanes = n
		}
	}
}

// WithGain sets the initial gain. Defaults to 1.
func WithGain(gain float64) Option {
	return func(cfg *config) {
		cfg.gain = gain
	}
}

// WithPeakWidth sets the initial peak width. Defaults to 1.
func WithPeakWidth(width float64) Option {
	return func(cfg *config) {
		cfg.width = width
	}
}

// WithFilterType sets the initial filter shape.
func WithFilterType(t design.FilterType) Option {
	return func(cfg *config) {
		cfg.filterType = t
	}
}

// WithGainMapping selects how gain maps to the peaking factor.
// Defaults to design.GainExp10.
func WithGainMapping(m design.GainMapping) Option {
	return func(cfg *config) {
		cfg.mapping = m
	}
}

// WithMixMode selects how active voices combine. Defaults to MixSum.
func WithMixMode(m MixMode) Option {
	return func(cfg *config) {
		cfg.mix = m
	}
}

// WithIdle selects the output when no voice is active. Defaults to IdleSilence.
func WithIdle(i Idle) Option {
	return func(cfg *config) {
		cfg.idle = i
	}
}

// WithGainRange sets the clamp range for gain. floor must be > 0.
func WithGainRange(floor, ceil float64) Option {
	return func(cfg *config) {
		if floor > 0 && ceil >= floor {
			cfg.gainFloor, cfg.gainCeil = floor, ceil
		}
	}
}

// WithWidthRange sets the clamp range for peak width. floor must be > 0.
func WithWidthRange(floor, ceil float64) Option {
	return func(cfg *config) {
		if floor > 0 && ceil >= floor {
			cfg.widthFloor, cfg.widthCeil = floor, ceil
		}
	}
}

// WithTuning replaces the note-to-frequency table.
func WithTuning(t *bank.Tuning) Option {
	return func(cfg *config) {
		if t != nil {
			cfg.tuning = t
		}
	}
}

// WithLogger sets the logger used to report rejected control messages.
// Defaults to discarding.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
