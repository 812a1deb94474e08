// Package fit decides whether a recording is good enough for a given use case.
package fit

import (
	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/scoring"
	"github.com/farcloser/micdoctor/internal/types"
)

// Fit is the suitability of a recording for one use case.
type Fit string

const (
	Pass Fit = "pass"
	Warn Fit = "warn"
	Fail Fit = "fail"
)

// Rank orders fits from best (2) to worst (0).
func (f Fit) Rank() int {
	switch f {
	case Pass:
		return 2
	case Warn:
		return 1
	default:
		return 0
	}
}

// Worst returns the lowest ranked of the given fits. No fits is a pass.
func Worst(fits ...Fit) Fit {
	worst := Pass
	for _, f := range fits {
		if f.Rank() < worst.Rank() {
			worst = f
		}
	}

	return worst
}

// Result is the per-metric and overall fit for one use case.
type Result struct {
	Overall  Fit `json:"overall"`
	Level    Fit `json:"level"`
	Noise    Fit `json:"noise"`
	Echo     Fit `json:"echo"`
	Clipping Fit `json:"clipping"`
}

// Get returns the fit of a dimension.
func (r Result) Get(dim types.Dimension) Fit {
	switch dim {
	case types.DimensionNoise:
		return r.Noise
	case types.DimensionEcho:
		return r.Echo
	default:
		return r.Level
	}
}

// FromStars maps a star rating: 4 and up pass, 2 and up warn, below fails.
func FromStars(stars int) Fit {
	switch {
	case stars >= 4:
		return Pass
	case stars >= 2:
		return Warn
	default:
		return Fail
	}
}

// FromClipping compares a clipping ratio to the use case ratios.
func FromClipping(ratio float64, thresholds config.Clipping) Fit {
	switch {
	case ratio > thresholds.SevereRatio:
		return Fail
	case ratio > thresholds.WarnRatio:
		return Warn
	default:
		return Pass
	}
}

// Evaluate computes the fit from already scored insights.
func Evaluate(insights scoring.Insights, clip types.ClippingMetrics, profile config.Profile) Result {
	result := Result{
		Level:    FromStars(insights.Level.Stars),
		Noise:    FromStars(insights.Noise.Stars),
		Echo:     FromStars(insights.Echo.Stars),
		Clipping: FromClipping(clip.ClippingRatio, profile.Clipping),
	}

	result.Overall = Worst(result.Level, result.Noise, result.Echo, result.Clipping)

	return result
}

// Project scores the metrics against every use case profile and returns the overall fit of each.
func Project(metrics types.Metrics, profiles config.Profiles) map[types.UseCase]Fit {
	out := make(map[types.UseCase]Fit, len(types.UseCases))

	for _, useCase := range types.UseCases {
		profile := profiles.For(useCase)
		out[useCase] = Evaluate(scoring.Score(metrics, profile), metrics.Clipping, profile).Overall
	}

	return out
}

// Certainty derives how sure the diagnosis is: pass is high, warn medium, fail low.
// Without any speech to measure against, the diagnosis is always low certainty.
func Certainty(overall Fit, noiseConfidence types.Confidence) types.Confidence {
	if noiseConfidence == types.ConfidenceLow {
		return types.ConfidenceLow
	}

	switch overall {
	case Pass:
		return types.ConfidenceHigh
	case Warn:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}
