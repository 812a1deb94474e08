package grade_test

import (
	"testing"

	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/grade"
	"github.com/farcloser/micdoctor/internal/scoring"
	"github.com/farcloser/micdoctor/internal/types"
)

func insights(level, noise, echo int) scoring.Insights {
	return scoring.Insights{
		Level: scoring.Insight{Stars: level},
		Noise: scoring.Insight{Stars: noise},
		Echo:  scoring.Insight{Stars: echo},
	}
}

func healthy() types.Metrics {
	return types.Metrics{
		Level: types.LevelMetrics{RMSDb: -20},
		Noise: types.NoiseMetrics{SNRDb: 30},
	}
}

func TestCompose(t *testing.T) {
	meetings := config.Default().Meetings

	tests := []struct {
		name    string
		in      scoring.Insights
		metrics types.Metrics
		want    grade.Grade
	}{
		{"all five", insights(5, 5, 5), healthy(), grade.A},
		{"one four", insights(5, 4, 5), healthy(), grade.B},
		{"one three", insights(3, 5, 4), healthy(), grade.C},
		{"one two", insights(5, 5, 2), healthy(), grade.D},
		{"one star without breach", insights(5, 1, 5), healthy(), grade.E},
		{"one star with severe SNR", insights(5, 1, 5), types.Metrics{
			Level: types.LevelMetrics{RMSDb: -20},
			Noise: types.NoiseMetrics{SNRDb: 1},
		}, grade.F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grade.Compose(tt.in, tt.metrics, meetings); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSevere(t *testing.T) {
	meetings := config.Default().Meetings

	tests := []struct {
		name   string
		mutate func(*types.Metrics)
		want   bool
	}{
		{"healthy", func(*types.Metrics) {}, false},
		{"clipping at severe", func(m *types.Metrics) { m.Clipping.ClippingRatio = 0.01 }, false},
		{"clipping over severe", func(m *types.Metrics) { m.Clipping.ClippingRatio = 0.011 }, true},
		{"low snr", func(m *types.Metrics) { m.Noise.SNRDb = 2.9 }, true},
		{"echo at severe", func(m *types.Metrics) { m.Echo.EchoScore = 0.8 }, true},
		{"too quiet", func(m *types.Metrics) { m.Level.RMSDb = -46 }, true},
		{"too loud", func(m *types.Metrics) { m.Level.RMSDb = -4 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := healthy()
			tt.mutate(&metrics)

			if got := grade.Severe(metrics, meetings); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTags(t *testing.T) {
	if grade.F.LabelTag() != "grade_f_label" || grade.B.SummaryTag() != "grade_b_summary" {
		t.Errorf("unexpected tags: %s %s", grade.F.LabelTag(), grade.B.SummaryTag())
	}
}
