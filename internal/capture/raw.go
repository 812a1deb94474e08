package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/micdoctor/internal/pcm"
	"github.com/farcloser/micdoctor/internal/types"
)

const (
	maxValue16 = 32768.0      // 2^15
	maxValue24 = 8388608.0    // 2^23
	maxValue32 = 2147483648.0 // 2^31
)

// ErrInvalidFormat is returned for formats that cannot describe a PCM stream.
var ErrInvalidFormat = errors.New("invalid pcm format")

// ReadRaw decodes interleaved little-endian PCM and mixes it to mono. A trailing partial frame is dropped.
func ReadRaw(r io.Reader, format types.PCMFormat) (*Buffer, error) {
	if format.SampleRate <= 0 || format.Channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, format.SampleRate, format.Channels)
	}

	bytesPerSample := format.Encoding.BytesPerSample()
	frameSize := bytesPerSample * format.Channels
	buf := make([]byte, frameSize*4096)

	var (
		interleaved []float32
		pending     int
	)

	for {
		n, err := r.Read(buf[pending:])
		n += pending

		complete := (n / frameSize) * frameSize
		interleaved = appendDecoded(interleaved, buf[:complete], format.Encoding)

		pending = copy(buf, buf[complete:n])

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
		}
	}

	return &Buffer{
		Samples:    pcm.MixToMono(pcm.Deinterleave(interleaved, format.Channels)),
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
	}, nil
}

func appendDecoded(out []float32, data []byte, encoding types.Encoding) []float32 {
	switch encoding {
	case types.EncodingS16LE:
		for i := 0; i+2 <= len(data); i += 2 {
			//nolint:gosec // two's complement conversion for signed PCM samples
			out = append(out, float32(float64(int16(binary.LittleEndian.Uint16(data[i:])))/maxValue16))
		}
	case types.EncodingS24LE:
		for i := 0; i+3 <= len(data); i += 3 {
			raw := int32(data[i]) | int32(data[i+1])<<8 | int32(data[i+2])<<16
			if raw&0x800000 != 0 {
				raw |= ^0xFFFFFF
			}

			out = append(out, float32(float64(raw)/maxValue24))
		}
	case types.EncodingS32LE:
		for i := 0; i+4 <= len(data); i += 4 {
			//nolint:gosec // two's complement conversion for signed PCM samples
			out = append(out, float32(float64(int32(binary.LittleEndian.Uint32(data[i:])))/maxValue32))
		}
	default:
		for i := 0; i+4 <= len(data); i += 4 {
			out = append(out, math.Float32frombits(binary.LittleEndian.Uint32(data[i:])))
		}
	}

	return out
}

// EncodeF32LE writes samples as little-endian float32.
func EncodeF32LE(w io.Writer, samples []float32) error {
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return fmt.Errorf("writing pcm: %w", err)
	}

	return nil
}
