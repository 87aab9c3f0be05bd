// Command fofi-render runs audio through the polyphonic per-note filter
// offline and writes the result to a WAV file.
//
// Usage:
//
//	fofi-render [flags]
//
// The input is either a WAV file (-input) or a generated signal (-signal,
// -duration). Active notes come from -notes, a preset, or a MIDI file (-midi),
// in which case the mask follows the file block by block.
//
// Examples:
//
//	fofi-render -notes 60,64,67 -output chord.wav
//	fofi-render -input drums.wav -midi song.mid -type bandpass -gain 8
//	fofi-render -preset assets/presets/default.json -mix chain
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-fofi/dsp/core"
	"github.com/cwbudde/algo-fofi/dsp/filter/bank"
	"github.com/cwbudde/algo-fofi/dsp/filter/design"
	"github.com/cwbudde/algo-fofi/dsp/polyfilter"
	"github.com/cwbudde/algo-fofi/dsp/signal"
	"github.com/cwbudde/algo-fofi/internal/logging"
	"github.com/cwbudde/algo-fofi/internal/midischedule"
	"github.com/cwbudde/algo-fofi/internal/wavio"
	"github.com/cwbudde/algo-fofi/preset"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

type renderFlags struct {
	input      string
	output     string
	presetPath string
	midiPath   string
	notes      string
	velocity   float64
	duration   float64
	signal     string
	freq       float64
	sampleRate float64
	blockSize  int
	gain       float64
	width      float64
	filterType string
	mapping    string
	mix        string
	idle       string
	normalize  bool
	logLevel   string
}

func run(args []string, stderr io.Writer) error {
	var rf renderFlags
	fs := flag.NewFlagSet("fofi-render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&rf.input, "input", "", "input WAV file (default: generated white noise)")
	fs.StringVar(&rf.output, "output", "output.wav", "output WAV file path")
	fs.StringVar(&rf.presetPath, "preset", "", "preset JSON file; flags given explicitly override it")
	fs.StringVar(&rf.midiPath, "midi", "", "Standard MIDI File driving the note mask")
	fs.StringVar(&rf.notes, "notes", "", "comma-separated MIDI notes held for the whole render")
	fs.Float64Var(&rf.velocity, "velocity", 1, "velocity for -notes")
	fs.Float64Var(&rf.duration, "duration", 2, "duration in seconds of generated input")
	fs.StringVar(&rf.signal, "signal", "noise", "generated input: noise, sine or impulse")
	fs.Float64Var(&rf.freq, "freq", 440, "frequency in Hz of generated sine input")
	fs.Float64Var(&rf.sampleRate, "sample-rate", 48000, "sample rate in Hz of generated input")
	fs.IntVar(&rf.blockSize, "block", 64, "block size in samples")
	fs.Float64Var(&rf.gain, "gain", 1, "gain (Q for bandpass)")
	fs.Float64Var(&rf.width, "width", 1, "peak width")
	fs.StringVar(&rf.filterType, "type", "peaking", "filter type: peaking or bandpass")
	fs.StringVar(&rf.mapping, "mapping", "exp10", "gain mapping: exp10 or legacy")
	fs.StringVar(&rf.mix, "mix", "sum", "voice mix: sum, last-wins or chain")
	fs.StringVar(&rf.idle, "idle", "silence", "output with no active note: silence or passthrough")
	fs.BoolVar(&rf.normalize, "normalize", false, "scale the output peak to -1 dBFS")
	fs.StringVar(&rf.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := logging.New(stderr, rf.logLevel)
	if err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	settings, err := resolveSettings(rf, set)
	if err != nil {
		return err
	}

	lanes, err := loadInput(rf, settings)
	if err != nil {
		return err
	}

	var sched *midischedule.Schedule
	if rf.midiPath != "" {
		sched, err = midischedule.Load(rf.midiPath, settings.SampleRate, settings.BlockSize,
			midischedule.WithLogger(logger), midischedule.WithNormalizedVelocity())
		if err != nil {
			return err
		}
		logger.Info("loaded MIDI", "path", rf.midiPath, "events", len(sched.Events), "blocks", sched.Blocks)
	}

	out, err := render(settings, lanes, sched, logger)
	if err != nil {
		return err
	}

	for c, lane := range out {
		if !core.AllFinite(lane) {
			logger.Warn("non-finite samples in output", "lane", c)
		}
	}

	if rf.normalize {
		scale := signal.NormalizeInPlace(math.Pow(10, -1.0/20), out...)
		logger.Debug("normalized output", "scale", scale)
	}

	if err := wavio.WriteLanes(rf.output, out, int(math.Round(settings.SampleRate))); err != nil {
		return err
	}
	logger.Info("wrote output", "path", rf.output, "lanes", len(out), "frames", len(out[0]))
	return nil
}

func resolveSettings(rf renderFlags, set map[string]bool) (*preset.Settings, error) {
	s := preset.NewDefaultSettings()
	if rf.presetPath != "" {
		var err error
		if s, err = preset.LoadJSON(rf.presetPath); err != nil {
			return nil, err
		}
	}
	explicit := func(name string) bool { return set[name] || rf.presetPath == "" }

	if rf.input != "" {
		s.InputWav = rf.input
	}
	if explicit("sample-rate") {
		s.SampleRate = rf.sampleRate
	}
	if explicit("block") {
		if rf.blockSize <= 0 {
			return nil, fmt.Errorf("block size must be > 0")
		}
		s.BlockSize = rf.blockSize
	}
	if explicit("gain") {
		s.Gain = rf.gain
	}
	if explicit("width") {
		s.PeakWidth = rf.width
	}

	var err error
	if explicit("type") {
		if s.FilterType, err = design.ParseFilterType(rf.filterType); err != nil {
			return nil, err
		}
	}
	if explicit("mapping") {
		if s.GainMapping, err = design.ParseGainMapping(rf.mapping); err != nil {
			return nil, err
		}
	}
	if explicit("mix") {
		if s.MixMode, err = polyfilter.ParseMixMode(rf.mix); err != nil {
			return nil, err
		}
	}
	if explicit("idle") {
		if s.Idle, err = polyfilter.ParseIdle(rf.idle); err != nil {
			return nil, err
		}
	}

	if rf.notes != "" {
		notes, err := parseNotes(rf.notes)
		if err != nil {
			return nil, err
		}
		s.Notes = make(map[int]float64, len(notes))
		for _, n := range notes {
			s.Notes[n] = rf.velocity
		}
	}
	return s, nil
}

func parseNotes(list string) ([]int, error) {
	var notes []int
	for _, f := range strings.Split(list, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n >= bank.NoteCount {
			return nil, fmt.Errorf("invalid note %q (expected 0..127)", f)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func loadInput(rf renderFlags, s *preset.Settings) ([][]float64, error) {
	if s.InputWav != "" {
		lanes, sr, err := wavio.ReadLanes(s.InputWav)
		if err != nil {
			return nil, err
		}
		s.SampleRate = float64(sr)
		return lanes, nil
	}

	frames := int(s.SampleRate * rf.duration)
	if frames < 1 {
		return nil, fmt.Errorf("duration too short: %v s", rf.duration)
	}
	kind, err := signal.ParseKind(rf.signal)
	if err != nil {
		return nil, err
	}
	in, err := signal.NewGenerator(s.SampleRate).Generate(kind, rf.freq, 0.25, frames)
	if err != nil {
		return nil, err
	}
	return [][]float64{in}, nil
}

func render(s *preset.Settings, in [][]float64, sched *midischedule.Schedule, logger *slog.Logger) ([][]float64, error) {
	opts, err := s.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		polyfilter.WithLanes(len(in)),
		polyfilter.WithLogger(logger),
	)
	p := polyfilter.New(opts...)
	if err := p.SetMask(s.Mask()); err != nil {
		return nil, err
	}

	frames := len(in[0])
	out := make([][]float64, len(in))
	for c := range out {
		out[c] = make([]float64, frames)
	}

	logger.Info("rendering",
		"frames", frames,
		"lanes", len(in),
		"sample_rate", s.SampleRate,
		"block", s.BlockSize,
		"mix", s.MixMode,
		"type", s.FilterType,
		"voices", p.ActiveVoices())

	var cursor *midischedule.Cursor
	if sched != nil {
		cursor = sched.Cursor()
	}

	dst := make([][]float64, len(in))
	src := make([][]float64, len(in))
	for block, start := 0, 0; start < frames; block, start = block+1, start+s.BlockSize {
		end := min(start+s.BlockSize, frames)
		if cursor != nil {
			if m, ok := cursor.Advance(block); ok {
				p.SetMaskValue(m)
				logger.Debug("mask change", "block", block, "voices", m.ActiveCount())
			}
		}
		for c := range in {
			dst[c] = out[c][start:end]
			src[c] = in[c][start:end]
		}
		if err := p.ProcessLanes(dst, src); err != nil {
			return nil, err
		}
	}
	return out, nil
}
