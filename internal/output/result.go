// Package output provides shared result serialization for micdoctor JSON output.
package output

import (
	"github.com/farcloser/micdoctor"
	"github.com/farcloser/micdoctor/internal/capture"
	"github.com/farcloser/micdoctor/internal/types"
	"github.com/farcloser/micdoctor/internal/verdict"
)

// SummaryToMap converts an analysis summary into the canonical map structure
// used for JSON and JSONL serialization.
func SummaryToMap(summary *micdoctor.Summary) map[string]any {
	meta := map[string]any{
		"special_state": summary.SpecialState.String(),
		"verdict":       VerdictToMap(summary.Verdict),
		"metrics":       MetricsToMap(&summary.Metrics),
	}

	recommendation := map[string]any{}
	if issue := summary.Recommendation.Issue; issue != nil {
		recommendation["issue"] = issue.String()
	}

	if summary.Recommendation.FixTag != "" {
		recommendation["fix_tag"] = summary.Recommendation.FixTag
	}

	if summary.Recommendation.StepKey != "" {
		recommendation["step_key"] = summary.Recommendation.StepKey
	}

	meta["recommendation"] = recommendation

	return meta
}

// VerdictToMap converts a verdict to a map.
func VerdictToMap(result *verdict.Verdict) map[string]any {
	dimensions := make(map[string]any, len(types.Dimensions))
	for _, dim := range types.Dimensions {
		rating := result.Dimensions.Get(dim)
		entry := map[string]any{
			"stars":           rating.Stars,
			"description_tag": rating.DescriptionTag,
			"fit":             string(result.FitDetail.Get(dim)),
		}

		if rating.ReasonTag != "" {
			entry["reason_tag"] = rating.ReasonTag
		}

		if rating.FixTag != "" {
			entry["fix_tag"] = rating.FixTag
		}

		dimensions[dim.String()] = entry
	}

	steps := make([]any, 0, len(result.BestNextSteps))
	for _, step := range result.BestNextSteps {
		entry := map[string]any{
			"key":  step.Key,
			"kind": string(step.Kind),
		}

		if step.Gear != nil {
			entry["gear"] = map[string]any{
				"id":              step.Gear.ID,
				"category":        string(step.Gear.Category),
				"name_tag":        step.Gear.NameTag,
				"description_tag": step.Gear.DescriptionTag,
				"price_tier":      string(step.Gear.PriceTier),
			}
		}

		steps = append(steps, entry)
	}

	notes := make([]any, 0, len(result.SecondaryNotes))
	for _, note := range result.SecondaryNotes {
		notes = append(notes, note)
	}

	meta := map[string]any{
		"version":              result.Version,
		"grade":                string(result.Overall.Grade),
		"label_tag":            result.Overall.LabelTag,
		"summary_tag":          result.Overall.SummaryTag,
		"dimensions":           dimensions,
		"use_case_fit":         string(result.UseCaseFit),
		"clipping_fit":         string(result.FitDetail.Clipping),
		"diagnostic_certainty": result.DiagnosticCertainty.String(),
		"reassurance_mode":     result.ReassuranceMode,
		"best_next_steps":      steps,
		"secondary_notes":      notes,
		"context": map[string]any{
			"mode":        result.Context.Mode.String(),
			"use_case":    result.Context.UseCase.String(),
			"device_type": result.Context.DeviceType.String(),
		},
		"copy_tags": map[string]any{
			"headline":    result.CopyTags.Headline,
			"explanation": result.CopyTags.Explanation,
			"impact":      result.CopyTags.Impact,
			"fix":         result.CopyTags.Fix,
		},
	}

	if result.PrimaryIssue != nil {
		meta["primary_issue"] = result.PrimaryIssue.String()
	}

	return meta
}

// MetricsToMap converts raw extractor measurements to a map.
func MetricsToMap(metrics *types.Metrics) map[string]any {
	return map[string]any{
		"level": map[string]any{
			"rms":    metrics.Level.RMS,
			"rms_db": metrics.Level.RMSDb,
		},
		"clipping": map[string]any{
			"clipping_ratio":  metrics.Clipping.ClippingRatio,
			"peak":            metrics.Clipping.Peak,
			"clipped_samples": metrics.Clipping.ClippedSamples,
			"samples":         metrics.Clipping.Samples,
		},
		"noise": map[string]any{
			"noise_floor":    metrics.Noise.NoiseFloor,
			"noise_floor_db": metrics.Noise.NoiseFloorDb,
			"speech_level":   metrics.Noise.SpeechLevel,
			"snr_db":         metrics.Noise.SNRDb,
			"hum_ratio":      metrics.Noise.HumRatio,
			"hum_frequency":  metrics.Noise.HumFrequency,
			"speech_ratio":   metrics.Noise.SpeechRatio,
			"confidence":     metrics.Noise.Confidence.String(),
		},
		"echo": map[string]any{
			"echo_score":       metrics.Echo.EchoScore,
			"peak_correlation": metrics.Echo.PeakCorrelation,
			"peak_lag_ms":      metrics.Echo.PeakLagMs,
			"confidence":       metrics.Echo.Confidence.String(),
		},
	}
}

// PropertiesToMap converts descriptive buffer properties to a map.
func PropertiesToMap(props capture.Properties) map[string]any {
	return map[string]any{
		"duration_sec":         props.DurationSec,
		"sample_rate":          props.SampleRate,
		"channels":             props.Channels,
		"peak_db":              props.PeakDb,
		"dc_offset":            props.DCOffset,
		"spectral_centroid_hz": props.SpectralCentroidHz,
	}
}
