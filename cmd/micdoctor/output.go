//nolint:wrapcheck
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/micdoctor"
	"github.com/farcloser/micdoctor/internal/capture"
	"github.com/farcloser/micdoctor/internal/output"
	"github.com/farcloser/micdoctor/internal/types"
)

const maxStars = 5

func outputSummary(
	name string,
	summary *micdoctor.Summary,
	props capture.Properties,
	formatName string,
	debug bool,
) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	var meta map[string]any
	if debug {
		meta = output.SummaryToMap(summary)
		meta["properties"] = output.PropertiesToMap(props)
	} else {
		meta = buildFriendlyOutput(summary, props)
	}

	data := &format.Data{
		Object: name,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}

// buildFriendlyOutput creates a user-friendly summary of the verdict. Copy is shown as tags.
func buildFriendlyOutput(summary *micdoctor.Summary, props capture.Properties) map[string]any {
	result := summary.Verdict

	meta := map[string]any{
		"summary": fmt.Sprintf("grade %s (%s), %s for %s",
			result.Overall.Grade, result.Overall.LabelTag, result.UseCaseFit, result.Context.UseCase),
		"certainty": result.DiagnosticCertainty.String(),
	}

	if summary.SpecialState != types.SpecialStateNone {
		meta["warning"] = fmt.Sprintf("%s: the grade may not reflect your microphone", summary.SpecialState)
	}

	ratings := make(map[string]any, len(types.Dimensions))
	for _, dim := range types.Dimensions {
		rating := result.Dimensions.Get(dim)
		ratings[dim.String()] = fmt.Sprintf("%s %s", stars(rating.Stars), rating.DescriptionTag)
	}

	meta["ratings"] = ratings

	if result.PrimaryIssue != nil {
		meta["issue"] = fmt.Sprintf("%s: %s (%s)", result.PrimaryIssue, result.CopyTags.Headline, result.CopyTags.Fix)
	} else {
		meta["issue"] = result.CopyTags.Headline
	}

	if len(result.BestNextSteps) > 0 {
		steps := make([]any, 0, len(result.BestNextSteps))
		for i, step := range result.BestNextSteps {
			line := fmt.Sprintf("%d. [%s] %s", i+1, step.Kind, step.Key)
			if step.Gear != nil {
				line += fmt.Sprintf(" (%s, %s)", step.Gear.NameTag, step.Gear.PriceTier)
			}

			steps = append(steps, line)
		}

		meta["next_steps"] = steps
	}

	if len(result.SecondaryNotes) > 0 {
		notes := make([]any, 0, len(result.SecondaryNotes))
		for _, note := range result.SecondaryNotes {
			notes = append(notes, note)
		}

		meta["notes"] = notes
	}

	meta["properties"] = buildProperties(summary, props)

	return meta
}

func buildProperties(summary *micdoctor.Summary, props capture.Properties) map[string]any {
	return map[string]any{
		"duration":          fmt.Sprintf("%.1f s", props.DurationSec),
		"format":            fmt.Sprintf("%d Hz, %d channel(s)", props.SampleRate, props.Channels),
		"level":             fmt.Sprintf("%.1f dBFS RMS (peak %.1f dBFS)", summary.Metrics.Level.RMSDb, props.PeakDb),
		"snr":               fmt.Sprintf("%.1f dB", summary.Metrics.Noise.SNRDb),
		"echo":              fmt.Sprintf("%.2f", summary.Metrics.Echo.EchoScore),
		"clipping":          fmt.Sprintf("%.3f%%", summary.Metrics.Clipping.ClippingRatio*100),
		"spectral_centroid": fmt.Sprintf("%.0f Hz", props.SpectralCentroidHz),
	}
}

func stars(n int) string {
	n = max(0, min(n, maxStars))

	return strings.Repeat("*", n) + strings.Repeat(".", maxStars-n)
}
