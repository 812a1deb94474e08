package level

import (
	"github.com/farcloser/micdoctor/internal/pcm"
	"github.com/farcloser/micdoctor/internal/types"
)

// Measure returns the RMS level of samples. An empty buffer measures -160 dBFS.
func Measure(samples []float32) types.LevelMetrics {
	rms := pcm.RMS(samples)

	return types.LevelMetrics{
		RMS:   rms,
		RMSDb: pcm.ToDb(rms),
	}
}
