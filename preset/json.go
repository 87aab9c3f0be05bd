// Package preset loads polyphonic filter settings from JSON files.
package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-fofi/dsp/filter/bank"
	"github.com/cwbudde/algo-fofi/dsp/filter/design"
	"github.com/cwbudde/algo-fofi/dsp/polyfilter"
)

// File is the JSON schema for filter presets. Absent fields keep the
// defaults.
type File struct {
	SampleRate  *float64           `json:"sample_rate"`
	BlockSize   *int               `json:"block_size"`
	Gain        *float64           `json:"gain"`
	PeakWidth   *float64           `json:"peak_width"`
	FilterType  string             `json:"filter_type"`
	GainMapping string             `json:"gain_mapping"`
	MixMode     string             `json:"mix_mode"`
	Idle        string             `json:"idle"`
	TuningA4    *float64           `json:"tuning_a4"`
	InputWav    string             `json:"input_wav_path"`
	Notes       map[string]float64 `json:"notes"`
}

// Settings is a fully resolved preset.
type Settings struct {
	SampleRate  float64
	BlockSize   int
	Gain        float64
	PeakWidth   float64
	FilterType  design.FilterType
	GainMapping design.GainMapping
	MixMode     polyfilter.MixMode
	Idle        polyfilter.Idle
	TuningA4    float64
	InputWav    string

	// Notes maps MIDI note number to velocity.
	Notes map[int]float64
}

// NewDefaultSettings returns the settings used when a preset is empty.
func NewDefaultSettings() *Settings {
	return &Settings{
		SampleRate:  48000,
		BlockSize:   64,
		Gain:        1,
		PeakWidth:   1,
		FilterType:  design.FilterPeaking,
		GainMapping: design.GainExp10,
		MixMode:     polyfilter.MixSum,
		Idle:        polyfilter.IdleSilence,
		TuningA4:    440,
		Notes:       map[int]float64{},
	}
}

// LoadJSON loads a preset JSON file and applies it on top of the defaults.
// A relative input_wav_path is resolved against the preset's directory.
func LoadJSON(path string) (*Settings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}

	s := NewDefaultSettings()
	if err := ApplyFile(s, &f); err != nil {
		return nil, fmt.Errorf("preset %s: %w", path, err)
	}

	if s.InputWav != "" && !filepath.IsAbs(s.InputWav) {
		s.InputWav = filepath.Clean(filepath.Join(filepath.Dir(path), s.InputWav))
	}
	return s, nil
}

// ApplyFile applies a parsed preset file onto existing settings.
func ApplyFile(dst *Settings, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination settings")
	}
	if f == nil {
		return nil
	}

	if f.SampleRate != nil {
		if *f.SampleRate <= 0 {
			return fmt.Errorf("sample_rate must be > 0")
		}
		dst.SampleRate = *f.SampleRate
	}
	if f.BlockSize != nil {
		if *f.BlockSize <= 0 {
			return fmt.Errorf("block_size must be > 0")
		}
		dst.BlockSize = *f.BlockSize
	}
	if f.Gain != nil {
		if *f.Gain <= 0 {
			return fmt.Errorf("gain must be > 0")
		}
		dst.Gain = *f.Gain
	}
	if f.PeakWidth != nil {
		if *f.PeakWidth <= 0 {
			return fmt.Errorf("peak_width must be > 0")
		}
		dst.PeakWidth = *f.PeakWidth
	}
	if f.FilterType != "" {
		t, err := design.ParseFilterType(f.FilterType)
		if err != nil {
			return err
		}
		dst.FilterType = t
	}
	if f.GainMapping != "" {
		m, err := design.ParseGainMapping(f.GainMapping)
		if err != nil {
			return err
		}
		dst.GainMapping = m
	}
	if f.MixMode != "" {
		m, err := polyfilter.ParseMixMode(f.MixMode)
		if err != nil {
			return err
		}
		dst.MixMode = m
	}
	if f.Idle != "" {
		i, err := polyfilter.ParseIdle(f.Idle)
		if err != nil {
			return err
		}
		dst.Idle = i
	}
	if f.TuningA4 != nil {
		if _, err := bank.NewTuning(*f.TuningA4); err != nil {
			return fmt.Errorf("tuning_a4: %w", err)
		}
		dst.TuningA4 = *f.TuningA4
	}
	if f.InputWav != "" {
		dst.InputWav = strings.TrimSpace(f.InputWav)
	}

	if len(f.Notes) == 0 {
		return nil
	}
	if dst.Notes == nil {
		dst.Notes = make(map[int]float64, len(f.Notes))
	}

	keys := make([]string, 0, len(f.Notes))
	for k := range f.Notes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		note, err := strconv.Atoi(k)
		if err != nil || note < 0 || note >= bank.NoteCount {
			return fmt.Errorf("invalid notes key %q (expected 0..127)", k)
		}
		v := f.Notes[k]
		if v < 0 {
			return fmt.Errorf("notes[%d] velocity must be >= 0", note)
		}
		dst.Notes[note] = v
	}
	return nil
}

// Mask returns the 128-entry velocity list for the preset's notes.
func (s *Settings) Mask() []float64 {
	out := make([]float64, bank.NoteCount)
	for note, v := range s.Notes {
		if note >= 0 && note < len(out) {
			out[note] = v
		}
	}
	return out
}

// Options converts the settings into processor options.
func (s *Settings) Options() ([]polyfilter.Option, error) {
	tuning, err := bank.NewTuning(s.TuningA4)
	if err != nil {
		return nil, err
	}

	return []polyfilter.Option{
		polyfilter.WithSampleRate(s.SampleRate),
		polyfilter.WithMaxBlockSize(s.BlockSize),
		polyfilter.WithGain(s.Gain),
		polyfilter.WithPeakWidth(s.PeakWidth),
		polyfilter.WithFilterType(s.FilterType),
		polyfilter.WithGainMapping(s.GainMapping),
		polyfilter.WithMixMode(s.MixMode),
		polyfilter.WithIdle(s.Idle),
		polyfilter.WithTuning(tuning),
	}, nil
}
