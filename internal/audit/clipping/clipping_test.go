package clipping_test

import (
	"math"
	"testing"

	"github.com/farcloser/micdoctor/internal/audit/clipping"
	"github.com/farcloser/micdoctor/internal/pcm"
)

func TestMeasure(t *testing.T) {
	tests := []struct {
		name      string
		samples   []float32
		threshold float64
		wantRatio float64
		wantPeak  float64
	}{
		{"empty", nil, 0, 0, 0},
		{"clean tone", pcm.Sine(440, 0.5, 48000, 0.1), 0, 0, 0.5},
		{"two of four at full scale", []float32{1, -1, 0.5, 0.2}, 0, 0.5, 1},
		{"threshold is inclusive", []float32{0.98, 0.1}, 0, 0.5, 0.98},
		{"custom threshold", []float32{0.6, -0.7, 0.1, 0.2}, 0.5, 0.5, 0.7},
		{"peak is capped at full scale", []float32{1.4, 0}, 0, 0.5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clipping.Measure(tt.samples, tt.threshold)

			if math.Abs(got.ClippingRatio-tt.wantRatio) > 1e-9 {
				t.Errorf("ratio = %v, want %v", got.ClippingRatio, tt.wantRatio)
			}

			if math.Abs(got.Peak-tt.wantPeak) > 1e-3 {
				t.Errorf("peak = %v, want %v", got.Peak, tt.wantPeak)
			}
		})
	}
}

func TestMeasure_ClippedSignal(t *testing.T) {
	hot := pcm.Sine(440, 1.5, 48000, 0.5)
	clipped, count := pcm.Clip(hot, 1.0)

	got := clipping.Measure(clipped, 0)
	if got.ClippedSamples < uint64(count) {
		t.Errorf("clipped samples = %d, want at least %d", got.ClippedSamples, count)
	}

	if got.ClippingRatio < 0.3 {
		t.Errorf("ratio = %v, expected a heavily clipped signal", got.ClippingRatio)
	}
}
