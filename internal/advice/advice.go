// Package advice selects, filters and orders the remediation steps for the primary issue of a recording.
//
// Selection is a pure table lookup: the same request always yields the same steps in the same order.
package advice

import (
	"slices"

	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/fit"
	"github.com/farcloser/micdoctor/internal/gear"
	"github.com/farcloser/micdoctor/internal/scoring"
	"github.com/farcloser/micdoctor/internal/types"
)

// Step is one piece of advice. Gear is set only for gear_optional steps.
type Step struct {
	Key  string     `json:"key"`
	Kind Kind       `json:"kind"`
	Gear *gear.Item `json:"gear,omitempty"`
}

// Relevance is how strongly a gear purchase is warranted.
type Relevance string

const (
	RelevanceLow    Relevance = "low"
	RelevanceMedium Relevance = "medium"
	RelevanceHigh   Relevance = "high"
)

// Request carries everything the policy looks at.
type Request struct {
	Context   types.Context
	Primary   types.Dimension
	Insight   scoring.Insight // rating of the primary dimension
	Metrics   types.Metrics
	Profile   config.Profile
	Fit       fit.Fit // overall fit for the selected use case
	Certainty types.Confidence
}

// SelectFailureMode names the specific problem behind a failing dimension.
func SelectFailureMode(
	dim types.Dimension,
	insight scoring.Insight,
	metrics types.Metrics,
	profile config.Profile,
) FailureMode {
	switch dim {
	case types.DimensionNoise:
		if hasHum(metrics, profile) {
			return ModeConstantHum
		}

		return ModeGeneralNoise
	case types.DimensionEcho:
		if insight.Stars <= 2 {
			return ModeStrongEcho
		}

		return ModeRoomy
	default:
		switch {
		case hasClipping(metrics, profile):
			return ModeClipping
		case metrics.Level.RMSDb < profile.Level.TargetDb:
			return ModeTooLow
		default:
			return ModeTooHigh
		}
	}
}

// GearCategory maps a failure mode to the catalog category it draws from.
func GearCategory(mode FailureMode) gear.Category {
	switch mode {
	case ModeClipping:
		return gear.CategoryClipping
	case ModeGeneralNoise:
		return gear.CategoryNoise
	case ModeConstantHum:
		return gear.CategoryHum
	case ModeRoomy, ModeStrongEcho:
		return gear.CategoryEcho
	default:
		return gear.CategoryLevel
	}
}

// GearRelevance is low unless the use case fails and the triggering dimension rates 2 stars or fewer.
// A catastrophic rating raises it to high.
func GearRelevance(overall fit.Fit, insight scoring.Insight) Relevance {
	switch {
	case overall != fit.Fail || insight.Stars > 2:
		return RelevanceLow
	case insight.IsCatastrophic:
		return RelevanceHigh
	default:
		return RelevanceMedium
	}
}

// MaxSteps caps the number of non-gear steps per mode.
func MaxSteps(mode types.Mode) int {
	switch mode {
	case types.ModeBasic:
		return 4
	case types.ModePro:
		return 6
	default:
		return 3
	}
}

// BuildSteps returns the ordered advice for a request. A passing recording gets no advice.
func BuildSteps(req Request) []Step {
	if req.Fit == fit.Pass {
		return nil
	}

	mode := SelectFailureMode(req.Primary, req.Insight, req.Metrics, req.Profile)

	var keys []string

	if req.Certainty == types.ConfidenceLow && !hasHum(req.Metrics, req.Profile) && !hasClipping(req.Metrics, req.Profile) {
		if row, ok := LookupHypothesis(hypotheses, req.Context.DeviceType); ok {
			keys = row.Steps
		}
	} else if row, ok := Lookup(templates, req.Primary, mode, req.Context.UseCase, req.Context.DeviceType); ok {
		keys = row.Steps
	}

	keys = ApplyDeviceConstraints(keys, req.Context.DeviceType)

	steps := make([]Step, 0, len(keys)+1)
	for _, key := range keys {
		steps = append(steps, Step{Key: key, Kind: KindOf(key)})
	}

	slices.SortStableFunc(steps, func(a, b Step) int {
		return a.Kind.Rank() - b.Kind.Rank()
	})

	if limit := MaxSteps(req.Context.Mode); len(steps) > limit {
		steps = steps[:limit]
	}

	if GearRelevance(req.Fit, req.Insight) != RelevanceLow {
		if item, ok := gear.Lookup(GearCategory(mode), req.Context.DeviceType); ok {
			steps = append(steps, Step{Key: item.ID, Kind: KindGearOptional, Gear: &item})
		}
	}

	if len(steps) == 0 {
		return nil
	}

	return steps
}

func hasHum(metrics types.Metrics, profile config.Profile) bool {
	return metrics.Noise.HumRatio > profile.Noise.HumWarnRatio
}

func hasClipping(metrics types.Metrics, profile config.Profile) bool {
	return metrics.Clipping.ClippingRatio > profile.Clipping.WarnRatio
}
