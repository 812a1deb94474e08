package capture

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/farcloser/primordium/fault"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/farcloser/micdoctor/internal/pcm"
)

// ErrInvalidWAV is returned for files that are not PCM WAV.
var ErrInvalidWAV = errors.New("invalid wav file")

// ReadWAV decodes a 16, 24 or 32-bit integer PCM WAV file and mixes it to mono.
func ReadWAV(r io.ReadSeeker) (*Buffer, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}

	var scale float64

	switch buf.SourceBitDepth {
	case 16:
		scale = maxValue16
	case 24:
		scale = maxValue24
	case 32:
		scale = maxValue32
	default:
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidWAV, buf.SourceBitDepth)
	}

	channels := max(buf.Format.NumChannels, 1)
	interleaved := make([]float32, len(buf.Data))

	for i, v := range buf.Data {
		interleaved[i] = float32(float64(v) / scale)
	}

	return &Buffer{
		Samples:    pcm.MixToMono(pcm.Deinterleave(interleaved, channels)),
		SampleRate: buf.Format.SampleRate,
		Channels:   channels,
	}, nil
}

// WriteWAV encodes mono samples as a 16-bit PCM WAV file. Samples are clamped to [-1, 1].
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate int) error {
	encoder := wav.NewEncoder(w, sampleRate, 16, 1, 1)

	data := make([]int, len(samples))
	for i, v := range samples {
		clamped := math.Max(-1, math.Min(1, float64(v)))
		data[i] = int(math.Round(clamped * (maxValue16 - 1)))
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("writing wav: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("closing wav: %w", err)
	}

	return nil
}

// WriteWAVFile creates path and writes samples to it as a 16-bit PCM WAV file.
func WriteWAVFile(path string, samples []float32, sampleRate int) error {
	file, err := os.Create(path) //nolint:gosec // user-provided output path
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}

	if err := WriteWAV(file, samples, sampleRate); err != nil {
		file.Close()

		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing wav file: %w", err)
	}

	return nil
}
