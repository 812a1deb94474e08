package echo_test

import (
	"math"
	"testing"

	"github.com/farcloser/micdoctor/internal/audit/echo"
	"github.com/farcloser/micdoctor/internal/pcm"
	"github.com/farcloser/micdoctor/internal/types"
)

func TestMeasure_TooShort(t *testing.T) {
	const rate = 48000

	for _, n := range []int{0, 1, 4800, 9600} {
		samples := pcm.WhiteNoise(n, 0.5, 1)
		got := echo.Measure(samples, rate, echo.DefaultOptions())

		if got.EchoScore != 0 || math.Signbit(got.EchoScore) || math.IsNaN(got.EchoScore) {
			t.Errorf("n=%d: score = %v, want exactly +0", n, got.EchoScore)
		}

		if got.Confidence != types.ConfidenceLow {
			t.Errorf("n=%d: confidence = %s, want low", n, got.Confidence)
		}
	}
}

func TestMeasure_DryNoise(t *testing.T) {
	got := echo.Measure(pcm.WhiteNoise(48000, 0.3, 11), 48000, echo.Options{})

	if got.EchoScore > 0.1 {
		t.Errorf("score = %v, want close to 0 for uncorrelated noise", got.EchoScore)
	}

	if got.Confidence != types.ConfidenceHigh {
		t.Errorf("confidence = %s, want high", got.Confidence)
	}
}

func TestMeasure_Reflection(t *testing.T) {
	const (
		rate  = 16000
		delay = rate / 10 // 100 ms
	)

	dry := pcm.WhiteNoise(rate, 0.3, 5)
	wet := make([]float32, len(dry))

	for i := range dry {
		wet[i] = dry[i]
		if i >= delay {
			wet[i] += 0.6 * dry[i-delay]
		}
	}

	got := echo.Measure(wet, rate, echo.DefaultOptions())

	if got.EchoScore < 0.9 {
		t.Errorf("score = %v, want a strong echo", got.EchoScore)
	}

	if math.Abs(got.PeakLagMs-100) > 0.5 {
		t.Errorf("peak lag = %v ms, want 100 ms", got.PeakLagMs)
	}
}

func TestMeasure_MediumConfidenceUnderOneSecond(t *testing.T) {
	got := echo.Measure(pcm.WhiteNoise(12000, 0.3, 2), 16000, echo.DefaultOptions())
	if got.Confidence != types.ConfidenceMedium {
		t.Errorf("confidence = %s, want medium", got.Confidence)
	}
}

func TestMeasure_Silence(t *testing.T) {
	got := echo.Measure(make([]float32, 48000), 48000, echo.DefaultOptions())
	if got.EchoScore != 0 || math.Signbit(got.EchoScore) {
		t.Errorf("score = %v, want +0", got.EchoScore)
	}
}
