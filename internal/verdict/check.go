package verdict

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/farcloser/micdoctor/internal/advice"
	"github.com/farcloser/micdoctor/internal/fit"
	"github.com/farcloser/micdoctor/internal/grade"
	"github.com/farcloser/micdoctor/internal/scoring"
	"github.com/farcloser/micdoctor/internal/types"
)

// ErrInvariantViolation means the scoring or advice tables contradict each other. It is a defect, never a
// property of the recording.
var ErrInvariantViolation = errors.New("verdict invariant violation")

// Check rejects self-contradictory verdicts.
func Check(v *Verdict) error {
	var problems []string

	fail := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	lowest := scoring.MaxStars

	for _, dim := range types.Dimensions {
		stars := v.Dimensions.Get(dim).Stars
		if stars < 0 || stars > scoring.MaxStars {
			fail("%s stars %d out of range", dim, stars)
		}

		lowest = min(lowest, stars)
	}

	switch {
	case v.PrimaryIssue == nil && lowest < scoring.MaxStars:
		fail("no primary issue although a dimension has %d stars", lowest)
	case v.PrimaryIssue != nil && !isDimension(*v.PrimaryIssue):
		fail("primary issue %d is not a dimension", int(*v.PrimaryIssue))
	case v.PrimaryIssue != nil && v.Dimensions.Get(*v.PrimaryIssue).Stars >= scoring.MaxStars:
		fail("primary issue %s has %d stars", *v.PrimaryIssue, v.Dimensions.Get(*v.PrimaryIssue).Stars)
	}

	if v.Overall.LabelTag != v.Overall.Grade.LabelTag() || v.Overall.SummaryTag != v.Overall.Grade.SummaryTag() {
		fail("grade %s carries tags %q/%q", v.Overall.Grade, v.Overall.LabelTag, v.Overall.SummaryTag)
	}

	if v.UseCaseFit == fit.Pass && (!v.ReassuranceMode || len(v.BestNextSteps) > 0) {
		fail("pass fit without reassurance or with %d steps", len(v.BestNextSteps))
	}

	if v.Overall.Grade == grade.A && (v.UseCaseFit == fit.Warn || v.UseCaseFit == fit.Fail) {
		fail("grade A with %s fit", v.UseCaseFit)
	}

	if v.UseCaseFit == fit.Pass {
		switch v.Overall.Grade {
		case grade.C, grade.D, grade.E, grade.F:
			fail("pass fit with grade %s", v.Overall.Grade)
		default:
		}
	}

	if v.ReassuranceMode && len(v.BestNextSteps) > 0 {
		fail("reassurance with %d steps", len(v.BestNextSteps))
	}

	for i := 1; i < len(v.BestNextSteps); i++ {
		if v.BestNextSteps[i].Kind.Rank() < v.BestNextSteps[i-1].Kind.Rank() {
			fail("step %q (%s) after %q (%s)", v.BestNextSteps[i].Key, v.BestNextSteps[i].Kind,
				v.BestNextSteps[i-1].Key, v.BestNextSteps[i-1].Kind)
		}
	}

	for i, step := range v.BestNextSteps {
		if step.Kind == advice.KindGearOptional && i != len(v.BestNextSteps)-1 {
			fail("gear step %q is not last", step.Key)
		}
	}

	if len(v.SecondaryNotes) > maxNotes {
		fail("%d secondary notes", len(v.SecondaryNotes))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvariantViolation, strings.Join(problems, "; "))
	}

	return nil
}

func isDimension(dim types.Dimension) bool {
	return slices.Contains(types.Dimensions, dim)
}
