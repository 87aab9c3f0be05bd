package response

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-fofi/dsp/filter/biquad"
	"github.com/cwbudde/algo-fofi/dsp/filter/design"
	"github.com/cwbudde/algo-fofi/dsp/polyfilter"
)

var cfg = Config{SampleRate: 48000, FFTSize: 8192}

func TestMeasureMatchesAnalytic(t *testing.T) {
	tests := []struct {
		name string
		c    biquad.Coefficients
	}{
		{"peaking A4", design.Peaking(440, 1, 1, 48000, design.GainExp10)},
		{"peaking 2k narrow", design.Peaking(2000, 0.5, 4, 48000, design.GainExp10)},
		{"bandpass 1k", design.Bandpass(1000, 4, 48000)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			measured, err := Measure(tc.c, cfg)
			if err != nil {
				t.Fatalf("Measure: %v", err)
			}
			analytic, err := Analytic(tc.c, cfg)
			if err != nil {
				t.Fatalf("Analytic: %v", err)
			}
			for k := range measured.MagnitudeDB {
				if math.Abs(measured.Magnitude[k]-analytic.Magnitude[k]) > 1e-6*math.Max(1, analytic.Magnitude[k]) {
					t.Fatalf("bin %d (%.1f Hz): measured %v, analytic %v",
						k, measured.Freqs[k], measured.Magnitude[k], analytic.Magnitude[k])
				}
			}
		})
	}
}

func TestBandpassPeakAtCenter(t *testing.T) {
	const q = 4.0
	res, err := Measure(design.Bandpass(3000, q, 48000), cfg)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	freq, db := res.Peak()
	binHz := cfg.SampleRate / float64(cfg.FFTSize)
	if math.Abs(freq-3000) > binHz {
		t.Fatalf("peak at %.1f Hz, want 3000", freq)
	}
	if want := 20 * math.Log10(q); math.Abs(db-want) > 0.01 {
		t.Fatalf("peak level %.3f dB, want %.3f", db, want)
	}
}

func TestUnityPeakingIsFlat(t *testing.T) {
	res, err := Measure(design.Peaking(440, 0, 1, 48000, design.GainExp10), cfg)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	for k, db := range res.MagnitudeDB {
		if math.Abs(db) > 1e-9 {
			t.Fatalf("bin %d: %v dB, want 0", k, db)
		}
	}
}

func TestMeasureProcessorSingleVoice(t *testing.T) {
	p := polyfilter.New(polyfilter.WithSampleRate(48000), polyfilter.WithMaxBlockSize(64))
	notes := make([]float64, 128)
	notes[69] = 1
	if err := p.SetMask(notes); err != nil {
		t.Fatalf("SetMask: %v", err)
	}

	got, err := MeasureProcessor(p, 64, cfg)
	if err != nil {
		t.Fatalf("MeasureProcessor: %v", err)
	}
	c, _ := p.Coefficients(69)
	want, _ := Measure(c, cfg)

	for _, f := range []float64{100, 440, 1000, 5000} {
		if math.Abs(got.At(f)-want.At(f)) > 1e-6 {
			t.Fatalf("%v Hz: processor %v dB, voice %v dB", f, got.At(f), want.At(f))
		}
	}
}

func TestConfigValidation(t *testing.T) {
	c := design.Bandpass(1000, 1, 48000)
	for _, bad := range []Config{
		{SampleRate: 0, FFTSize: 1024},
		{SampleRate: 48000, FFTSize: 1000},
		{SampleRate: 48000, FFTSize: 1},
		{SampleRate: math.NaN(), FFTSize: 1024},
	} {
		if _, err := Measure(c, bad); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%+v: err = %v, want ErrInvalidConfig", bad, err)
		}
	}
	if _, err := MeasureProcessor(polyfilter.New(), 0, cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("block size 0: err = %v", err)
	}
}
