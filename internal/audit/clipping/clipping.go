package clipping

import (
	"math"

	"github.com/farcloser/micdoctor/internal/pcm"
	"github.com/farcloser/micdoctor/internal/types"
)

// DefaultThreshold is the absolute amplitude at which a sample counts as clipped.
const DefaultThreshold = 0.98

// Measure counts samples with |x| >= threshold. A threshold of 0 uses DefaultThreshold.
func Measure(samples []float32, threshold float64) types.ClippingMetrics {
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	result := types.ClippingMetrics{
		Samples: uint64(len(samples)),
		Peak:    pcm.Peak(samples),
	}

	if len(samples) == 0 {
		return result
	}

	for _, v := range samples {
		if math.Abs(float64(v)) >= threshold {
			result.ClippedSamples++
		}
	}

	result.ClippingRatio = float64(result.ClippedSamples) / float64(result.Samples)
	result.Peak = math.Min(result.Peak, 1)

	return result
}
