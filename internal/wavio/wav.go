// Package wavio reads and writes 16-bit PCM WAV files as float64 lanes.
package wavio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// ErrInvalidFile is returned for files that are not readable WAV.
var ErrInvalidFile = errors.New("wavio: invalid wav file")

// ReadLanes reads path and returns one slice per channel plus the sample rate.
func ReadLanes(path string) ([][]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 || buf.Format.SampleRate <= 0 {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}

	ch := buf.Format.NumChannels
	frames := len(buf.Data) / ch
	lanes := make([][]float64, ch)
	for c := range lanes {
		lanes[c] = make([]float64, frames)
		for i := range frames {
			lanes[c][i] = float64(buf.Data[i*ch+c])
		}
	}
	return lanes, buf.Format.SampleRate, nil
}

// ReadMono reads path and averages all channels.
func ReadMono(path string) ([]float64, int, error) {
	lanes, sr, err := ReadLanes(path)
	if err != nil {
		return nil, 0, err
	}
	if len(lanes) == 1 {
		return lanes[0], sr, nil
	}

	out := make([]float64, len(lanes[0]))
	scale := 1 / float64(len(lanes))
	for _, lane := range lanes {
		for i, v := range lane {
			out[i] += v * scale
		}
	}
	return out, sr, nil
}

// WriteLanes writes equally long lanes as an interleaved 16-bit WAV file,
// creating parent directories as needed.
func WriteLanes(path string, lanes [][]float64, sampleRate int) error {
	if len(lanes) == 0 {
		return fmt.Errorf("wavio: no lanes to write")
	}
	frames := len(lanes[0])
	for c, lane := range lanes {
		if len(lane) != frames {
			return fmt.Errorf("wavio: lane %d has %d frames, want %d", c, len(lane), frames)
		}
	}

	ch := len(lanes)
	data := make([]float32, frames*ch)
	for c, lane := range lanes {
		for i, v := range lane {
			data[i*ch+c] = float32(v)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, ch, 1)
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: ch,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// WriteMono writes a single-channel 16-bit WAV file.
func WriteMono(path string, samples []float64, sampleRate int) error {
	return WriteLanes(path, [][]float64{samples}, sampleRate)
}
