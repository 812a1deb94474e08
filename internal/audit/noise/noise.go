//nolint:staticcheck // too dumb on Db vs. DB
package noise

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/micdoctor/internal/audit/vad"
	"github.com/farcloser/micdoctor/internal/pcm"
	"github.com/farcloser/micdoctor/internal/types"
)

const (
	floorPercentile          = 0.5
	fallbackFloorPercentile  = 0.1
	fallbackSpeechPercentile = 0.9
	highConfidenceRatio      = 0.3
)

// Measure estimates the noise floor from the pauses between speech, the SNR against the speech frames,
// and the share of energy sitting on mains hum frequencies.
//
// Without any pause the floor falls back to the 10th percentile of all frames. Without any speech the
// speech level falls back to the 90th percentile and confidence is low.
func Measure(samples []float32, sampleRate int, opts vad.Options) types.NoiseMetrics {
	if len(samples) == 0 {
		return types.NoiseMetrics{Confidence: types.ConfidenceLow}
	}

	segments := vad.Segment(samples, sampleRate, opts)

	var speech, pauses, all []float64

	for _, frame := range segments.Frames {
		all = append(all, frame.RMS)

		if frame.IsSpeech {
			speech = append(speech, frame.RMS)
		} else {
			pauses = append(pauses, frame.RMS)
		}
	}

	var noiseFloor, speechLevel float64

	if len(pauses) > 0 {
		noiseFloor = percentile(pauses, floorPercentile)
	} else {
		noiseFloor = percentile(all, fallbackFloorPercentile)
	}

	if len(speech) > 0 {
		speechLevel = percentile(speech, floorPercentile)
	} else {
		speechLevel = percentile(all, fallbackSpeechPercentile)
	}

	result := types.NoiseMetrics{
		NoiseFloor:   noiseFloor,
		NoiseFloorDb: pcm.ToDb(noiseFloor),
		SpeechLevel:  speechLevel,
		SNRDb:        pcm.ToDb(speechLevel) - pcm.ToDb(noiseFloor),
		SpeechRatio:  segments.SpeechRatio,
	}

	result.HumRatio, result.HumFrequency = humRatio(samples, sampleRate)

	switch {
	case len(speech) == 0:
		result.Confidence = types.ConfidenceLow
	case segments.SpeechRatio >= highConfidenceRatio:
		result.Confidence = types.ConfidenceHigh
	default:
		result.Confidence = types.ConfidenceMedium
	}

	return result
}

func humRatio(samples []float32, sampleRate int) (float64, float64) {
	energy := pcm.MeanSquare(samples)
	if energy == 0 {
		return 0, 0
	}

	var (
		strongest float64
		frequency float64
	)

	for _, freq := range MainsFrequencies {
		if power := goertzelPower(samples, freq, sampleRate); power > strongest {
			strongest = power
			frequency = freq
		}
	}

	return math.Min(strongest/energy, 1), frequency
}

// percentile sorts a copy of values and indexes into it.
func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
