package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is returned by ProcessorConfig.Validate.
var ErrInvalidConfig = errors.New("core: invalid processor config")

// ProcessorConfig defines the host-facing processing settings shared by
// block processors: the sample rate delivered by the configuration event,
// the largest block the host will hand over, and the number of signal lanes.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
	Lanes      int
}

// DefaultProcessorConfig returns 48 kHz, 64-sample blocks, one lane.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  64,
		Lanes:      1,
	}
}

// Validate reports whether the configuration can drive a processor.
func (c ProcessorConfig) Validate() error {
	if c.SampleRate <= 0 || math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate %v", ErrInvalidConfig, c.SampleRate)
	}

	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size %d", ErrInvalidConfig, c.BlockSize)
	}

	if c.Lanes <= 0 {
		return fmt.Errorf("%w: lanes %d", ErrInvalidConfig, c.Lanes)
	}

	return nil
}
