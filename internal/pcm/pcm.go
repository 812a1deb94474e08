// Package pcm provides float32 PCM buffer helpers: channel mixing, level measurement,
// normalization and resampling.
package pcm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultNormalizeTarget is the peak NormalizePeak scales to.
	DefaultNormalizeTarget = 0.95

	// floorAmplitude keeps dB conversions finite.
	floorAmplitude = 1e-8
)

// MixToMono averages N channels sample-wise.
// A single channel is returned as is (same backing array, no copy). No channels yields an empty slice.
// Channels of uneven length are mixed up to the shortest one.
func MixToMono(channels [][]float32) []float32 {
	switch len(channels) {
	case 0:
		return []float32{}
	case 1:
		return channels[0]
	default:
	}

	length := len(channels[0])
	for _, ch := range channels[1:] {
		length = min(length, len(ch))
	}

	out := make([]float32, length)
	scale := 1 / float64(len(channels))

	for i := range out {
		var sum float64
		for _, ch := range channels {
			sum += float64(ch[i])
		}

		out[i] = float32(sum * scale)
	}

	return out
}

// Deinterleave splits interleaved frames into per-channel slices.
// Trailing samples that do not complete a frame are dropped.
func Deinterleave(samples []float32, channels int) [][]float32 {
	if channels <= 1 {
		return [][]float32{samples}
	}

	frames := len(samples) / channels
	out := make([][]float32, channels)

	for ch := range out {
		out[ch] = make([]float32, frames)
	}

	for i := range frames {
		for ch := range channels {
			out[ch][i] = samples[i*channels+ch]
		}
	}

	return out
}

// RMS returns sqrt(mean(x^2)), or 0 for an empty buffer.
func RMS(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	return math.Sqrt(MeanSquare(samples))
}

// MeanSquare returns mean(x^2), or 0 for an empty buffer.
func MeanSquare(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	wide := widen(samples)

	return floats.Dot(wide, wide) / float64(len(wide))
}

// Peak returns max(|x|), or 0 for an empty buffer.
func Peak(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}

	wide := widen(samples)
	for i, v := range wide {
		wide[i] = math.Abs(v)
	}

	return floats.Max(wide)
}

// NormalizePeak scales samples so their peak equals target.
// A silent buffer is returned unchanged.
func NormalizePeak(samples []float32, target float64) []float32 {
	peak := Peak(samples)
	if peak == 0 {
		return samples
	}

	gain := target / peak
	out := make([]float32, len(samples))

	for i, v := range samples {
		out[i] = float32(float64(v) * gain)
	}

	return out
}

// ResampleLinear resamples from srcRate to dstRate using linear interpolation.
// If the rates match, either rate is not positive, or the buffer is empty, the input is returned unchanged.
// The output holds floor(len*dstRate/srcRate) samples, at least one.
func ResampleLinear(samples []float32, srcRate, dstRate int) []float32 {
	if srcRate == dstRate || len(samples) == 0 || srcRate <= 0 || dstRate <= 0 {
		return samples
	}

	ratio := float64(dstRate) / float64(srcRate)
	length := max(int(math.Floor(float64(len(samples))*ratio)), 1)
	out := make([]float32, length)
	step := 1 / ratio

	for i := range out {
		srcPos := float64(i) * step
		srcIdx := int(srcPos)
		frac := srcPos - float64(srcIdx)

		s0 := samples[min(srcIdx, len(samples)-1)]

		s1 := s0
		if srcIdx+1 < len(samples) {
			s1 = samples[srcIdx+1]
		}

		out[i] = float32(float64(s0)*(1-frac) + float64(s1)*frac)
	}

	return out
}

// ToDb converts a linear amplitude to dBFS, clamped at -160 dB.
func ToDb(amplitude float64) float64 {
	return 20 * math.Log10(math.Max(amplitude, floorAmplitude))
}

// FromDb converts dBFS to a linear amplitude.
func FromDb(db float64) float64 {
	return math.Pow(10, db/20)
}

func widen(samples []float32) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = float64(v)
	}

	return out
}
