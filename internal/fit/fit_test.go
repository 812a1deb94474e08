package fit_test

import (
	"testing"

	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/fit"
	"github.com/farcloser/micdoctor/internal/scoring"
	"github.com/farcloser/micdoctor/internal/types"
)

func TestFromStars(t *testing.T) {
	want := map[int]fit.Fit{1: fit.Fail, 2: fit.Warn, 3: fit.Warn, 4: fit.Pass, 5: fit.Pass}
	for stars, expected := range want {
		if got := fit.FromStars(stars); got != expected {
			t.Errorf("%d stars: got %s, want %s", stars, got, expected)
		}
	}
}

func TestFromClipping(t *testing.T) {
	thresholds := config.Default().Meetings.Clipping

	tests := []struct {
		ratio float64
		want  fit.Fit
	}{
		{0, fit.Pass},
		{0.001, fit.Pass},
		{0.002, fit.Warn},
		{0.01, fit.Warn},
		{0.02, fit.Fail},
	}

	for _, tt := range tests {
		if got := fit.FromClipping(tt.ratio, thresholds); got != tt.want {
			t.Errorf("ratio %v: got %s, want %s", tt.ratio, got, tt.want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	profile := config.Default().Meetings

	tests := []struct {
		name     string
		stars    [3]int
		clip     float64
		expected fit.Fit
	}{
		{"all good", [3]int{5, 4, 5}, 0, fit.Pass},
		{"one warn", [3]int{5, 3, 5}, 0, fit.Warn},
		{"one fail", [3]int{5, 3, 1}, 0, fit.Fail},
		{"clipping warns", [3]int{5, 5, 5}, 0.005, fit.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := scoring.Insights{
				Level: scoring.Insight{Stars: tt.stars[0]},
				Noise: scoring.Insight{Stars: tt.stars[1]},
				Echo:  scoring.Insight{Stars: tt.stars[2]},
			}

			got := fit.Evaluate(insights, types.ClippingMetrics{ClippingRatio: tt.clip}, profile)
			if got.Overall != tt.expected {
				t.Errorf("overall = %s, want %s (%+v)", got.Overall, tt.expected, got)
			}
		})
	}
}

func TestProject(t *testing.T) {
	// 16 dB SNR: good for voice notes, fair for meetings and streaming, poor for podcasts.
	metrics := types.Metrics{
		Level: types.LevelMetrics{RMSDb: -20},
		Noise: types.NoiseMetrics{SNRDb: 16},
	}

	got := fit.Project(metrics, config.Default())

	want := map[types.UseCase]fit.Fit{
		types.UseCaseMeetings:  fit.Warn,
		types.UseCasePodcast:   fit.Warn,
		types.UseCaseStreaming: fit.Warn,
		types.UseCaseVoiceNote: fit.Pass,
	}

	for useCase, expected := range want {
		if got[useCase] != expected {
			t.Errorf("%s: got %s, want %s", useCase, got[useCase], expected)
		}
	}
}

func TestCertainty(t *testing.T) {
	tests := []struct {
		overall    fit.Fit
		confidence types.Confidence
		want       types.Confidence
	}{
		{fit.Pass, types.ConfidenceHigh, types.ConfidenceHigh},
		{fit.Warn, types.ConfidenceHigh, types.ConfidenceMedium},
		{fit.Fail, types.ConfidenceMedium, types.ConfidenceLow},
		{fit.Pass, types.ConfidenceLow, types.ConfidenceLow},
	}

	for _, tt := range tests {
		if got := fit.Certainty(tt.overall, tt.confidence); got != tt.want {
			t.Errorf("Certainty(%s, %s) = %s, want %s", tt.overall, tt.confidence, got, tt.want)
		}
	}
}

func TestWorst(t *testing.T) {
	if fit.Worst() != fit.Pass {
		t.Error("no fits should be a pass")
	}

	if fit.Worst(fit.Pass, fit.Fail, fit.Warn) != fit.Fail {
		t.Error("fail should win")
	}
}
