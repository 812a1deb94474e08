// Package grade reduces the three star ratings to a single letter.
//
//nolint:staticcheck // too dumb on Db vs. DB
package grade

import (
	"strings"

	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/scoring"
	"github.com/farcloser/micdoctor/internal/types"
)

// Grade is a letter grade, A (best) to F (terminal fail).
type Grade string

const (
	A Grade = "A"
	B Grade = "B"
	C Grade = "C"
	D Grade = "D"
	E Grade = "E"
	F Grade = "F"
)

// All lists the grades from best to worst.
//
//nolint:gochecknoglobals // effectively const
var All = []Grade{A, B, C, D, E, F}

// LabelTag is the copy tag of the grade's short label.
func (g Grade) LabelTag() string {
	return "grade_" + strings.ToLower(string(g)) + "_label"
}

// SummaryTag is the copy tag of the grade's one-line summary.
func (g Grade) SummaryTag() string {
	return "grade_" + strings.ToLower(string(g)) + "_summary"
}

// Compose maps the lowest star rating to a grade. A single star resolves to F only when a severe threshold
// was breached, E otherwise.
func Compose(insights scoring.Insights, metrics types.Metrics, profile config.Profile) Grade {
	switch insights.MinStars() {
	case 5:
		return A
	case 4:
		return B
	case 3:
		return C
	case 2:
		return D
	default:
		if Severe(metrics, profile) {
			return F
		}

		return E
	}
}

// Severe reports whether any metric breached a severe threshold.
func Severe(metrics types.Metrics, profile config.Profile) bool {
	return metrics.Clipping.ClippingRatio > profile.Clipping.SevereRatio ||
		metrics.Noise.SNRDb < profile.Noise.SevereLowSNRDb ||
		metrics.Echo.EchoScore >= profile.Echo.SevereScore ||
		metrics.Level.RMSDb < profile.Level.SevereLowDb ||
		metrics.Level.RMSDb > profile.Level.SevereHighDb
}
