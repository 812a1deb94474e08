// Package scoring turns raw metrics into 1-5 star ratings with stable copy tags.
//
//nolint:staticcheck // too dumb on Db vs. DB
package scoring

import (
	"math"

	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/types"
)

const (
	MinStars = 1
	MaxStars = 5

	// Echo tiers, as fractions of the warning score.
	echoExcellentFactor = 0.4
	echoGoodFactor      = 0.7
)

// Insight is the rating of one dimension.
type Insight struct {
	Stars          int    `json:"stars"`
	DescriptionTag string `json:"description_tag"`
	ReasonTag      string `json:"reason_tag,omitempty"`
	FixTag         string `json:"fix_tag,omitempty"`
	IsCatastrophic bool   `json:"is_catastrophic"`
}

// Insights holds the rating of every dimension.
type Insights struct {
	Level Insight `json:"level"`
	Noise Insight `json:"noise"`
	Echo  Insight `json:"echo"`
}

// Get returns the insight of a dimension.
func (in Insights) Get(dim types.Dimension) Insight {
	switch dim {
	case types.DimensionNoise:
		return in.Noise
	case types.DimensionEcho:
		return in.Echo
	default:
		return in.Level
	}
}

// MinStars returns the lowest rating across dimensions.
func (in Insights) MinStars() int {
	return min(in.Level.Stars, in.Noise.Stars, in.Echo.Stars)
}

// Score rates every dimension against a profile.
func Score(metrics types.Metrics, profile config.Profile) Insights {
	return Insights{
		Level: Level(metrics.Level, metrics.Clipping, profile),
		Noise: Noise(metrics.Noise, profile),
		Echo:  Echo(metrics.Echo, profile),
	}
}

// Level rates loudness. Clipping beyond the warning ratio overrides everything else.
func Level(level types.LevelMetrics, clip types.ClippingMetrics, profile config.Profile) Insight {
	bounds := profile.Level
	deviation := level.RMSDb - bounds.TargetDb

	switch {
	case clip.ClippingRatio > profile.Clipping.WarnRatio:
		return catastrophic("level_clipping")
	case level.RMSDb < bounds.SevereLowDb:
		return catastrophic("level_extremely_quiet")
	case level.RMSDb > bounds.SevereHighDb:
		return catastrophic("level_extremely_loud")
	case level.RMSDb < bounds.WarnLowDb:
		return withAdvice(2, "level_too_quiet")
	case level.RMSDb > bounds.WarnHighDb:
		return withAdvice(2, "level_too_loud")
	case math.Abs(deviation) > bounds.ToleranceDb:
		if deviation < 0 {
			return withAdvice(3, "level_slightly_quiet")
		}

		return withAdvice(3, "level_slightly_loud")
	case math.Abs(deviation) > bounds.ToleranceDb/2:
		return plain(4, "level_good")
	default:
		return plain(MaxStars, "level_excellent")
	}
}

// Noise rates the SNR, then lets mains hum cap the result at 2 stars.
// Hum never raises a rating that is already at or below 2 stars.
func Noise(noise types.NoiseMetrics, profile config.Profile) Insight {
	tiers := profile.Noise

	var insight Insight

	switch snr := noise.SNRDb; {
	case snr >= tiers.ExcellentSNRDb:
		insight = plain(MaxStars, "noise_excellent")
	case snr >= tiers.GoodSNRDb:
		insight = plain(4, "noise_good")
	case snr >= tiers.FairSNRDb:
		insight = withAdvice(3, "noise_fair")
	case snr >= tiers.PoorSNRDb:
		insight = withAdvice(2, "noise_poor")
	default:
		insight = withAdvice(MinStars, "noise_very_poor")
		insight.IsCatastrophic = snr < tiers.SevereLowSNRDb
	}

	if noise.HumRatio > tiers.HumWarnRatio && insight.Stars > 2 {
		insight = withAdvice(2, "noise_hum")
	}

	return insight
}

// Echo rates the echo score.
func Echo(echo types.EchoMetrics, profile config.Profile) Insight {
	thresholds := profile.Echo

	switch score := echo.EchoScore; {
	case score < thresholds.WarnScore*echoExcellentFactor:
		return plain(MaxStars, "echo_excellent")
	case score < thresholds.WarnScore*echoGoodFactor:
		return plain(4, "echo_good")
	case score < thresholds.WarnScore:
		return withAdvice(3, "echo_noticeable")
	case score < thresholds.SevereScore:
		return withAdvice(2, "echo_strong")
	default:
		return catastrophic("echo_severe")
	}
}

func plain(stars int, tag string) Insight {
	return Insight{Stars: stars, DescriptionTag: tag}
}

func withAdvice(stars int, tag string) Insight {
	return Insight{
		Stars:          stars,
		DescriptionTag: tag,
		ReasonTag:      tag + "_reason",
		FixTag:         tag + "_fix",
	}
}

func catastrophic(tag string) Insight {
	insight := withAdvice(MinStars, tag)
	insight.IsCatastrophic = true

	return insight
}
