// Package verdict assembles the final, invariant-checked result of an analysis.
package verdict

import (
	"github.com/farcloser/micdoctor/internal/advice"
	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/fit"
	"github.com/farcloser/micdoctor/internal/grade"
	"github.com/farcloser/micdoctor/internal/scoring"
	"github.com/farcloser/micdoctor/internal/types"
)

// Version is bumped whenever the shape or meaning of a verdict changes.
const Version = "1"

// Overall is the letter grade and its copy tags.
type Overall struct {
	Grade      grade.Grade `json:"grade"`
	LabelTag   string      `json:"label_tag"`
	SummaryTag string      `json:"summary_tag"`
}

// Rating is a dimension insight reduced to what the caller displays.
type Rating struct {
	Stars          int    `json:"stars"`
	DescriptionTag string `json:"description_tag"`
	ReasonTag      string `json:"reason_tag,omitempty"`
	FixTag         string `json:"fix_tag,omitempty"`
}

// Dimensions holds the rating of every dimension.
type Dimensions struct {
	Level Rating `json:"level"`
	Noise Rating `json:"noise"`
	Echo  Rating `json:"echo"`
}

// Get returns the rating of a dimension.
func (d Dimensions) Get(dim types.Dimension) Rating {
	switch dim {
	case types.DimensionNoise:
		return d.Noise
	case types.DimensionEcho:
		return d.Echo
	default:
		return d.Level
	}
}

// CopyTags are the headline copy of the verdict, all resolved by the caller.
type CopyTags struct {
	Headline    string `json:"headline"`
	Explanation string `json:"explanation"`
	Impact      string `json:"impact"`
	Fix         string `json:"fix,omitempty"`
}

// Verdict is the complete, immutable result of grading one recording.
type Verdict struct {
	Version             string           `json:"version"`
	Overall             Overall          `json:"overall"`
	Dimensions          Dimensions       `json:"dimensions"`
	PrimaryIssue        *types.Dimension `json:"primary_issue"`
	CopyTags            CopyTags         `json:"copy_tags"`
	Context             types.Context    `json:"context"`
	UseCaseFit          fit.Fit          `json:"use_case_fit,omitempty"`
	FitDetail           fit.Result       `json:"fit_detail"`
	DiagnosticCertainty types.Confidence `json:"diagnostic_certainty"`
	ReassuranceMode     bool             `json:"reassurance_mode"`
	BestNextSteps       []advice.Step    `json:"best_next_steps"`
	SecondaryNotes      []string         `json:"secondary_notes"`
}

// Input is everything Assemble needs.
type Input struct {
	Context  types.Context
	Metrics  types.Metrics
	Profiles config.Profiles
}

// Assemble scores, grades and advises, then checks the result.
// A verdict that fails the check is never returned.
func Assemble(in Input) (*Verdict, error) {
	profile := in.Profiles.For(in.Context.UseCase)
	insights := scoring.Score(in.Metrics, profile)
	letter := grade.Compose(insights, in.Metrics, profile)
	result := fit.Evaluate(insights, in.Metrics.Clipping, profile)
	certainty := fit.Certainty(result.Overall, in.Metrics.Noise.Confidence)

	out := &Verdict{
		Version: Version,
		Overall: Overall{
			Grade:      letter,
			LabelTag:   letter.LabelTag(),
			SummaryTag: letter.SummaryTag(),
		},
		Dimensions: Dimensions{
			Level: rating(insights.Level),
			Noise: rating(insights.Noise),
			Echo:  rating(insights.Echo),
		},
		Context:             in.Context,
		UseCaseFit:          result.Overall,
		FitDetail:           result,
		DiagnosticCertainty: certainty,
		ReassuranceMode:     result.Overall == fit.Pass,
		BestNextSteps:       []advice.Step{},
		SecondaryNotes:      SecondaryNotes(in.Context.UseCase, result.Overall, fit.Project(in.Metrics, in.Profiles)),
	}

	primary, ok := PrimaryIssue(insights)
	if ok {
		out.PrimaryIssue = &primary
		out.CopyTags = issueCopy(primary, insights.Get(primary))

		steps := advice.BuildSteps(advice.Request{
			Context:   in.Context,
			Primary:   primary,
			Insight:   insights.Get(primary),
			Metrics:   in.Metrics,
			Profile:   profile,
			Fit:       result.Overall,
			Certainty: certainty,
		})
		if len(steps) > 0 {
			out.BestNextSteps = steps
		}
	} else {
		out.CopyTags = allClearCopy()
	}

	if err := Check(out); err != nil {
		return nil, err
	}

	return out, nil
}

// PrimaryIssue returns the lowest rated dimension, ties going to level, then noise, then echo.
// There is no primary issue when every dimension has five stars.
func PrimaryIssue(insights scoring.Insights) (types.Dimension, bool) {
	if insights.MinStars() >= scoring.MaxStars {
		return 0, false
	}

	primary := types.Dimensions[0]
	for _, dim := range types.Dimensions[1:] {
		if insights.Get(dim).Stars < insights.Get(primary).Stars {
			primary = dim
		}
	}

	return primary, true
}

func rating(in scoring.Insight) Rating {
	return Rating{
		Stars:          in.Stars,
		DescriptionTag: in.DescriptionTag,
		ReasonTag:      in.ReasonTag,
		FixTag:         in.FixTag,
	}
}

func issueCopy(dim types.Dimension, in scoring.Insight) CopyTags {
	explanation := in.ReasonTag
	if explanation == "" {
		explanation = in.DescriptionTag
	}

	return CopyTags{
		Headline:    dim.String() + "_headline",
		Explanation: explanation,
		Impact:      dim.String() + "_impact",
		Fix:         in.FixTag,
	}
}

func allClearCopy() CopyTags {
	return CopyTags{
		Headline:    "all_clear_headline",
		Explanation: "all_clear_explanation",
		Impact:      "all_clear_impact",
	}
}
