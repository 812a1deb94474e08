package capture

import (
	"bytes"
	"context"
	"fmt"

	"github.com/farcloser/micdoctor/internal/integration/ffmpeg"
	"github.com/farcloser/micdoctor/internal/integration/ffprobe"
	"github.com/farcloser/micdoctor/internal/types"
)

// Decode reads any container ffmpeg understands. The first audio stream is probed with ffprobe,
// decoded to f32le with ffmpeg, then mixed to mono.
func Decode(ctx context.Context, path string) (*Buffer, error) {
	probed, err := ffprobe.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probing file: %w", err)
	}

	stream, err := probed.AudioStream()
	if err != nil {
		return nil, fmt.Errorf("probing file: %w", err)
	}

	format, err := FormatOf(stream)
	if err != nil {
		return nil, err
	}

	var pcmBuf bytes.Buffer

	if err = ffmpeg.Decode(ctx, path, &pcmBuf, 0, format.Encoding); err != nil {
		return nil, fmt.Errorf("extracting PCM: %w", err)
	}

	return ReadRaw(&pcmBuf, format)
}

// FormatOf builds the f32le format ffmpeg decodes a probed stream to.
func FormatOf(stream ffprobe.Stream) (types.PCMFormat, error) {
	sampleRate, err := stream.SampleRateHz()
	if err != nil {
		return types.PCMFormat{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	if stream.Channels <= 0 {
		return types.PCMFormat{}, fmt.Errorf("%w: invalid channel count from probe: %d", ErrInvalidFormat, stream.Channels)
	}

	return types.PCMFormat{
		SampleRate: sampleRate,
		Encoding:   types.EncodingF32LE,
		Channels:   stream.Channels,
	}, nil
}
