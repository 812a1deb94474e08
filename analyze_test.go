package micdoctor_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/farcloser/micdoctor"
	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/fit"
	"github.com/farcloser/micdoctor/internal/grade"
	"github.com/farcloser/micdoctor/internal/pcm"
)

func constant(value float32, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = value
	}

	return out
}

// speechLike alternates 300 ms of tone with 300 ms of quiet noise.
func speechLike(rate int, seconds float64, amplitude, noiseAmplitude float64, seed uint64) []float32 {
	total := int(seconds * float64(rate))
	burst := rate * 3 / 10
	tone := pcm.Sine(180, amplitude, rate, 0.3)
	out := pcm.WhiteNoise(total, noiseAmplitude, seed)

	for start := 0; start+burst <= total; start += 2 * burst {
		for i := range burst {
			out[start+i] += tone[i]
		}
	}

	return out
}

func TestAnalyze_ConstantBuffer(t *testing.T) {
	summary, err := micdoctor.Analyze(constant(0.1, 48000), 48000, micdoctor.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := summary.Verdict

	if v.Overall.Grade != grade.F {
		t.Errorf("grade = %s, want F", v.Overall.Grade)
	}

	if v.PrimaryIssue == nil || *v.PrimaryIssue != micdoctor.DimensionNoise {
		t.Errorf("primary = %v, want noise", v.PrimaryIssue)
	}

	if summary.Metrics.Clipping.ClippingRatio != 0 {
		t.Errorf("clipping ratio = %v, want 0", summary.Metrics.Clipping.ClippingRatio)
	}

	if !strings.HasPrefix(summary.Recommendation.FixTag, "noise_") {
		t.Errorf("fix tag = %q, want a noise fix", summary.Recommendation.FixTag)
	}
}

func TestAnalyze_ShortBufferHasNeutralEcho(t *testing.T) {
	for _, n := range []int{0, 1, 4800, 9600} {
		summary, err := micdoctor.Analyze(pcm.WhiteNoise(n, 0.3, 3), 48000, micdoctor.Options{})
		if err != nil {
			t.Fatalf("%d samples: unexpected error: %v", n, err)
		}

		score := summary.Metrics.Echo.EchoScore
		if score != 0 || math.Signbit(score) || math.IsNaN(score) {
			t.Errorf("%d samples: echo score = %v, want +0", n, score)
		}

		if summary.Metrics.Echo.Confidence.String() != "low" {
			t.Errorf("%d samples: echo confidence = %s, want low", n, summary.Metrics.Echo.Confidence)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	samples := speechLike(48000, 3, 0.2, 0.01, 11)
	opts := micdoctor.DefaultOptions()
	opts.Context = micdoctor.Context{Mode: micdoctor.ModePro, UseCase: micdoctor.UseCasePodcast}

	first, err := micdoctor.Analyze(samples, 48000, opts)
	if err != nil {
		t.Fatal(err)
	}

	second, err := micdoctor.Analyze(samples, 48000, opts)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two analyses of the same buffer differ")
	}

	a, err := json.Marshal(first.Verdict)
	if err != nil {
		t.Fatal(err)
	}

	b, err := json.Marshal(second.Verdict)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(a, b) {
		t.Error("serialized verdicts differ")
	}
}

func TestAnalyze_Invariants(t *testing.T) {
	const rate = 16000

	buffers := map[string][]float32{
		"silence":     constant(0, rate),
		"constant":    constant(0.1, rate),
		"clean":       speechLike(rate, 2, 0.15, 0.0005, 1),
		"noisy":       speechLike(rate, 2, 0.15, 0.05, 2),
		"quiet":       speechLike(rate, 2, 0.005, 0.0001, 3),
		"hot":         speechLike(rate, 2, 0.9, 0.001, 4),
		"hum":         pcm.Sine(50, 0.2, rate, 2),
		"white noise": pcm.WhiteNoise(rate*2, 0.5, 5),
		"tiny":        {0.3, -0.3},
	}

	clipped, _ := pcm.Clip(speechLike(rate, 2, 1.5, 0.01, 6), 1)
	buffers["clipped"] = clipped

	for seed := range uint64(8) {
		buffers["random "+string(rune('a'+seed))] = pcm.WhiteNoise(rate/2+int(seed)*1000, 0.05*float64(seed+1), seed)
	}

	devices := []micdoctor.DeviceType{
		micdoctor.DeviceUnknown, micdoctor.DeviceLaptop, micdoctor.DeviceMobile,
		micdoctor.DeviceUSBMic, micdoctor.DeviceBluetooth, micdoctor.DeviceBuiltIn,
	}

	for name, samples := range buffers {
		for _, useCase := range []micdoctor.UseCase{
			micdoctor.UseCaseMeetings, micdoctor.UseCasePodcast, micdoctor.UseCaseStreaming, micdoctor.UseCaseVoiceNote,
		} {
			for _, device := range devices {
				opts := micdoctor.Options{Context: micdoctor.Context{UseCase: useCase, DeviceType: device}}

				summary, err := micdoctor.Analyze(samples, rate, opts)
				if err != nil {
					t.Fatalf("%s/%s/%s: %v", name, useCase, device, err)
				}

				v := summary.Verdict
				lowest := min(v.Dimensions.Level.Stars, v.Dimensions.Noise.Stars, v.Dimensions.Echo.Stars)

				if (v.PrimaryIssue == nil) != (lowest == 5) {
					t.Errorf("%s/%s/%s: primary %v with lowest %d stars", name, useCase, device, v.PrimaryIssue, lowest)
				}

				if v.UseCaseFit == fit.Pass && (len(v.BestNextSteps) != 0 || !v.ReassuranceMode) {
					t.Errorf("%s/%s/%s: pass fit with steps %v", name, useCase, device, v.BestNextSteps)
				}

				if len(v.SecondaryNotes) > 2 {
					t.Errorf("%s/%s/%s: %d notes", name, useCase, device, len(v.SecondaryNotes))
				}
			}
		}
	}
}

func TestAnalyze_ZeroOptionsMatchDefaults(t *testing.T) {
	samples := speechLike(16000, 2, 0.1, 0.002, 9)

	zero, err := micdoctor.Analyze(samples, 16000, micdoctor.Options{})
	if err != nil {
		t.Fatal(err)
	}

	defaults, err := micdoctor.Analyze(samples, 16000, micdoctor.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(zero, defaults) {
		t.Error("zero-value options do not behave like the defaults")
	}
}

func TestAnalyze_PartialProfilesFillFromDefaults(t *testing.T) {
	samples := speechLike(16000, 2, 0.1, 0.01, 11)

	opts := micdoctor.Options{Profiles: config.Profiles{Meetings: config.Default().Meetings}}

	partial, err := micdoctor.Analyze(samples, 16000, opts)
	if err != nil {
		t.Fatal(err)
	}

	defaults, err := micdoctor.Analyze(samples, 16000, micdoctor.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(partial, defaults) {
		t.Errorf("unset profiles were not taken from the defaults: notes %v, want %v",
			partial.Verdict.SecondaryNotes, defaults.Verdict.SecondaryNotes)
	}
}

func TestAnalyze_InvalidProfiles(t *testing.T) {
	profiles := config.Default()
	profiles.Podcast.Echo = config.Echo{WarnScore: 0.9, SevereScore: 0.5}

	_, err := micdoctor.Analyze(constant(0.1, 48000), 48000, micdoctor.Options{Profiles: profiles})
	if !errors.Is(err, micdoctor.ErrInvalidProfiles) {
		t.Errorf("expected ErrInvalidProfiles, got %v", err)
	}
}

func TestAnalyze_SpecialStatePassesThrough(t *testing.T) {
	opts := micdoctor.Options{SpecialState: micdoctor.SpecialStateTooShort}

	summary, err := micdoctor.Analyze(constant(0.1, 100), 48000, opts)
	if err != nil {
		t.Fatal(err)
	}

	if summary.SpecialState != micdoctor.SpecialStateTooShort {
		t.Errorf("special state = %s, want too_short", summary.SpecialState)
	}
}

func TestAnalyze_InvalidSampleRate(t *testing.T) {
	if _, err := micdoctor.Analyze(constant(0.1, 10), 0, micdoctor.Options{}); !errors.Is(err, micdoctor.ErrInvalidSampleRate) {
		t.Errorf("expected ErrInvalidSampleRate, got %v", err)
	}
}

func TestAnalyze_DoesNotModifyInput(t *testing.T) {
	samples := speechLike(16000, 1, 0.4, 0.01, 10)
	original := append([]float32(nil), samples...)

	if _, err := micdoctor.Analyze(samples, 16000, micdoctor.Options{}); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(samples, original) {
		t.Error("input buffer was modified")
	}
}

func TestAnalyze_Concurrent(t *testing.T) {
	samples := speechLike(16000, 2, 0.1, 0.01, 12)

	want, err := micdoctor.Analyze(samples, 16000, micdoctor.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var group errgroup.Group

	for range 8 {
		group.Go(func() error {
			got, err := micdoctor.Analyze(samples, 16000, micdoctor.Options{})
			if err != nil {
				return err
			}

			if !reflect.DeepEqual(got, want) {
				return errors.New("concurrent analysis diverged")
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		t.Error(err)
	}
}

func TestAnalyze_GeneratedSignals(t *testing.T) {
	const rate = 48000

	cases := []struct {
		kind    string
		grade   grade.Grade
		primary *micdoctor.Dimension
		tag     string
	}{
		{kind: "clean", grade: grade.A},
		{kind: "loud", grade: grade.D, primary: ptr(micdoctor.DimensionLevel), tag: "level_too_loud"},
		{kind: "clipped", grade: grade.F, primary: ptr(micdoctor.DimensionLevel), tag: "level_clipping"},
		{kind: "quiet", grade: grade.F, primary: ptr(micdoctor.DimensionLevel), tag: "level_extremely_quiet"},
		{kind: "noisy", grade: grade.F, primary: ptr(micdoctor.DimensionNoise), tag: "noise_very_poor"},
		{kind: "echo", grade: grade.F, primary: ptr(micdoctor.DimensionEcho), tag: "echo_severe"},
	}

	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			samples, err := pcm.Signal(tc.kind, rate, 3, 1)
			if err != nil {
				t.Fatal(err)
			}

			summary, err := micdoctor.Analyze(samples, rate, micdoctor.DefaultOptions())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			v := summary.Verdict
			if v.Overall.Grade != tc.grade {
				t.Errorf("grade = %s, want %s (metrics %+v)", v.Overall.Grade, tc.grade, summary.Metrics)
			}

			if tc.primary == nil {
				if v.PrimaryIssue != nil {
					t.Errorf("primary = %s, want none", *v.PrimaryIssue)
				}

				return
			}

			if v.PrimaryIssue == nil || *v.PrimaryIssue != *tc.primary {
				t.Fatalf("primary = %v, want %s", v.PrimaryIssue, *tc.primary)
			}

			if got := v.Dimensions.Get(*tc.primary).DescriptionTag; got != tc.tag {
				t.Errorf("description = %q, want %q", got, tc.tag)
			}
		})
	}
}

func TestAnalyze_GeneratedHum(t *testing.T) {
	samples, err := pcm.Signal("hum", 48000, 3, 1)
	if err != nil {
		t.Fatal(err)
	}

	summary, err := micdoctor.Analyze(samples, 48000, micdoctor.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Metrics.Noise.HumFrequency != 50 || summary.Metrics.Noise.HumRatio < 0.2 {
		t.Errorf("unexpected hum: %v at %v Hz", summary.Metrics.Noise.HumRatio, summary.Metrics.Noise.HumFrequency)
	}
}

func ptr[T any](v T) *T {
	return &v
}
