// Command fofi-response prints the per-note magnitude response of the
// polyphonic filter voices.
//
// Usage:
//
//	fofi-response [flags] [note ...]
//
// Without arguments it prints one row per octave of A (notes 9, 21, ... 117).
//
// Examples:
//
//	fofi-response 69
//	fofi-response -type bandpass -gain 4 60 64 67
//	fofi-response -fft 8192 -width 0.5 69
//	fofi-response -all
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-fofi/dsp/filter/bank"
	"github.com/cwbudde/algo-fofi/dsp/filter/design"
	"github.com/cwbudde/algo-fofi/dsp/polyfilter"
	"github.com/cwbudde/algo-fofi/internal/logging"
	"github.com/cwbudde/algo-fofi/measure/response"
	"github.com/cwbudde/algo-fofi/preset"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fofi-response", flag.ContinueOnError)
	fs.SetOutput(stderr)

	sampleRate := fs.Float64("sample-rate", 48000, "sample rate in Hz")
	gain := fs.Float64("gain", 1, "gain (Q for bandpass)")
	width := fs.Float64("width", 1, "peak width")
	filterType := fs.String("type", "peaking", "filter type: peaking or bandpass")
	mapping := fs.String("mapping", "exp10", "gain mapping: exp10 or legacy")
	fftSize := fs.Int("fft", 0, "measure with an FFT of this size instead of the analytic response")
	presetPath := fs.String("preset", "", "preset JSON file; flags given explicitly override it")
	all := fs.Bool("all", false, "show all 128 notes")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: fofi-response [flags] [note ...]\n\n")
		fmt.Fprintf(stderr, "Prints the magnitude response of the per-note filter voices.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := logging.New(stderr, *logLevel)
	if err != nil {
		return err
	}

	settings := preset.NewDefaultSettings()
	if *presetPath != "" {
		if settings, err = preset.LoadJSON(*presetPath); err != nil {
			return err
		}
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["sample-rate"] || *presetPath == "" {
		settings.SampleRate = *sampleRate
	}
	if set["gain"] || *presetPath == "" {
		settings.Gain = *gain
	}
	if set["width"] || *presetPath == "" {
		settings.PeakWidth = *width
	}
	if set["type"] || *presetPath == "" {
		if settings.FilterType, err = design.ParseFilterType(*filterType); err != nil {
			return err
		}
	}
	if set["mapping"] || *presetPath == "" {
		if settings.GainMapping, err = design.ParseGainMapping(*mapping); err != nil {
			return err
		}
	}

	notes, err := resolveNotes(fs.Args(), *all)
	if err != nil {
		return err
	}

	opts, err := settings.Options()
	if err != nil {
		return err
	}
	p := polyfilter.New(append(opts, polyfilter.WithLogger(logger))...)

	logger.Debug("fofi-response: settings",
		"sample_rate", settings.SampleRate,
		"gain", settings.Gain,
		"width", settings.PeakWidth,
		"type", settings.FilterType,
		"mapping", settings.GainMapping,
		"fft", *fftSize)

	return printResponse(stdout, p, notes, *fftSize)
}

func resolveNotes(args []string, all bool) ([]int, error) {
	if all {
		notes := make([]int, bank.NoteCount)
		for i := range notes {
			notes[i] = i
		}
		return notes, nil
	}
	if len(args) == 0 {
		return []int{9, 21, 33, 45, 57, 69, 81, 93, 105, 117}, nil
	}

	notes := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 0 || n >= bank.NoteCount {
			return nil, fmt.Errorf("invalid note %q (expected 0..127)", a)
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func printResponse(w io.Writer, p *polyfilter.Processor, notes []int, fftSize int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Note\tFreq [Hz]\tCenter [dB]\tPeak [Hz]\tPeak [dB]\tDC [dB]\tStable\n")
	fmt.Fprintf(tw, "----\t---------\t-----------\t---------\t---------\t-------\t------\n")

	sr := p.SampleRate()
	for _, note := range notes {
		c, err := p.Coefficients(note)
		if err != nil {
			return err
		}
		freq, _ := p.Tuning().Frequency(note)

		var res response.Result
		cfg := response.Config{SampleRate: sr, FFTSize: fftSize}
		if fftSize > 0 {
			res, err = response.Measure(c, cfg)
		} else {
			cfg.FFTSize = 8192
			res, err = response.Analytic(c, cfg)
		}
		if err != nil {
			return err
		}

		peakHz, peakDB := res.Peak()
		fmt.Fprintf(tw, "%d\t%.2f\t%.3f\t%.2f\t%.3f\t%.3f\t%t\n",
			note,
			freq,
			c.MagnitudeDB(freq, sr),
			peakHz,
			peakDB,
			res.MagnitudeDB[0],
			c.Stable(),
		)
	}
	return tw.Flush()
}
