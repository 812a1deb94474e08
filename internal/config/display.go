package config

import (
	"math"
	"strconv"
)

// Display returns the rounded, display-only mirror of a profile. It is derived from the canonical
// values and never fed back into scoring.
func (p Profile) Display() map[string]any {
	return map[string]any{
		"level": map[string]any{
			"target":       dbLabel(p.Level.TargetDb),
			"comfortable":  rangeLabel(p.Level.TargetDb-p.Level.ToleranceDb, p.Level.TargetDb+p.Level.ToleranceDb),
			"acceptable":   rangeLabel(p.Level.WarnLowDb, p.Level.WarnHighDb),
			"out_of_range": rangeLabel(p.Level.SevereLowDb, p.Level.SevereHighDb),
		},
		"clipping": map[string]any{
			"warn":   percentLabel(p.Clipping.WarnRatio),
			"severe": percentLabel(p.Clipping.SevereRatio),
		},
		"noise": map[string]any{
			"excellent_snr": dbLabel(p.Noise.ExcellentSNRDb),
			"good_snr":      dbLabel(p.Noise.GoodSNRDb),
			"fair_snr":      dbLabel(p.Noise.FairSNRDb),
			"poor_snr":      dbLabel(p.Noise.PoorSNRDb),
			"hum":           percentLabel(p.Noise.HumWarnRatio),
		},
		"echo": map[string]any{
			"warn":   round(p.Echo.WarnScore, 2),
			"severe": round(p.Echo.SevereScore, 2),
		},
	}
}

func dbLabel(v float64) string {
	return formatFloat(round(v, 1)) + " dB"
}

func rangeLabel(low, high float64) string {
	return formatFloat(round(low, 1)) + " to " + formatFloat(round(high, 1)) + " dB"
}

func percentLabel(ratio float64) string {
	return formatFloat(round(ratio*100, 2)) + "%"
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))

	return math.Round(v*scale) / scale
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
