package echo

import (
	"math"

	"github.com/farcloser/micdoctor/internal/types"
)

// scoreGain maps a peak correlation of 0.25 or more to the maximum score.
const scoreGain = 4

type Options struct {
	MinLagMs int // shortest reflection delay probed (default 80)
	MaxLagMs int // longest reflection delay probed (default 200)
	StepMs   int // lag step (default 10)
}

func DefaultOptions() Options {
	return Options{
		MinLagMs: 80,
		MaxLagMs: 200,
		StepMs:   10,
	}
}

// Measure estimates room echo from the normalized autocorrelation of samples over reflection-sized lags.
//
// Buffers no longer than the longest lag cannot be judged: they score exactly 0 with low confidence.
func Measure(samples []float32, sampleRate int, opts Options) types.EchoMetrics {
	if opts.MinLagMs == 0 {
		opts.MinLagMs = 80
	}

	if opts.MaxLagMs == 0 {
		opts.MaxLagMs = 200
	}

	if opts.StepMs == 0 {
		opts.StepMs = 10
	}

	neutral := types.EchoMetrics{Confidence: types.ConfidenceLow}

	maxLag := sampleRate * opts.MaxLagMs / 1000
	if sampleRate <= 0 || len(samples) <= maxLag {
		return neutral
	}

	var energy float64
	for _, v := range samples {
		energy += float64(v) * float64(v)
	}

	if energy == 0 {
		return neutral
	}

	minLag := max(sampleRate*opts.MinLagMs/1000, 1)
	step := max(sampleRate*opts.StepMs/1000, 1)

	var (
		peak    float64
		peakLag int
	)

	for lag := minLag; lag <= maxLag; lag += step {
		var sum float64
		for i := 0; i+lag < len(samples); i++ {
			sum += float64(samples[i]) * float64(samples[i+lag])
		}

		if corr := sum / energy; corr > peak {
			peak = corr
			peakLag = lag
		}
	}

	result := types.EchoMetrics{
		EchoScore:       math.Max(0, math.Min(1, peak*scoreGain)),
		PeakCorrelation: peak,
		Confidence:      types.ConfidenceHigh,
	}

	if peakLag > 0 {
		result.PeakLagMs = float64(peakLag) * 1000 / float64(sampleRate)
	}

	if len(samples) < sampleRate {
		result.Confidence = types.ConfidenceMedium
	}

	return result
}
