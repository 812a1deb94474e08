// Package micdoctor grades the technical quality of a short speech recording and tells the user the single most
// useful thing to fix.
package micdoctor

import (
	"errors"
	"fmt"

	"github.com/farcloser/micdoctor/internal/audit/clipping"
	"github.com/farcloser/micdoctor/internal/audit/echo"
	"github.com/farcloser/micdoctor/internal/audit/level"
	"github.com/farcloser/micdoctor/internal/audit/noise"
	"github.com/farcloser/micdoctor/internal/audit/vad"
	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/verdict"
)

/*
Usage:

summary, err := micdoctor.Analyze(samples, 48000, micdoctor.DefaultOptions())
if err != nil {
    // invalid sample rate, incoherent thresholds, or an invariant violation
}

fmt.Println(summary.Verdict.Overall.Grade)

// Context-aware
opts := micdoctor.DefaultOptions()
opts.Context = micdoctor.Context{
    Mode:       micdoctor.ModeBasic,
    UseCase:    micdoctor.UseCasePodcast,
    DeviceType: micdoctor.DeviceUSBMic,
}
summary, err := micdoctor.Analyze(samples, 48000, opts)

// Custom thresholds
opts.Profiles, err = config.Load("thresholds.yaml")

// Walk the advice
for _, step := range summary.Verdict.BestNextSteps {
    fmt.Printf("[%s] %s\n", step.Kind, step.Key)
}
*/

var (
	// ErrInvalidSampleRate is returned when the sample rate is not positive.
	ErrInvalidSampleRate = errors.New("invalid sample rate")

	// ErrInvalidProfiles is returned when caller-supplied thresholds are incoherent.
	ErrInvalidProfiles = errors.New("invalid threshold profiles")
)

// Options configures an analysis.
type Options struct {
	// Context is who records and why (default: single, meetings, unknown device).
	Context Context

	// Profiles are the threshold tables. Unset profiles come from config.Default().
	Profiles config.Profiles

	// SpecialState is reported by the capture layer and passed through untouched.
	SpecialState SpecialState

	// ClippingThreshold is the absolute amplitude counted as clipped (default: 0.98).
	ClippingThreshold float64

	// VAD configures speech framing for the noise measurement.
	VAD vad.Options

	// Echo configures the reflection lags probed.
	Echo echo.Options
}

// DefaultOptions returns the canonical configuration.
func DefaultOptions() Options {
	return Options{
		Profiles:          config.Default(),
		ClippingThreshold: clipping.DefaultThreshold,
		VAD:               vad.DefaultOptions(),
		Echo:              echo.DefaultOptions(),
	}
}

// Measure runs every extractor on a mono buffer.
func Measure(samples []float32, sampleRate int, opts Options) Metrics {
	applyDefaults(&opts)

	return Metrics{
		Level:    level.Measure(samples),
		Clipping: clipping.Measure(samples, opts.ClippingThreshold),
		Noise:    noise.Measure(samples, sampleRate, opts.VAD),
		Echo:     echo.Measure(samples, sampleRate, opts.Echo),
	}
}

// Analyze grades a mono buffer. It reads samples without retaining or modifying them, and is safe for concurrent
// use. Poor recordings are valid results; an error means invalid input (ErrInvalidSampleRate,
// ErrInvalidProfiles) or a contradiction in the tables, wrapping verdict.ErrInvariantViolation.
func Analyze(samples []float32, sampleRate int, opts Options) (*Summary, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	applyDefaults(&opts)

	if err := config.Validate(opts.Profiles); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfiles, err)
	}

	metrics := Measure(samples, sampleRate, opts)

	result, err := verdict.Assemble(verdict.Input{
		Context:  opts.Context,
		Metrics:  metrics,
		Profiles: opts.Profiles,
	})
	if err != nil {
		return nil, fmt.Errorf("assembling verdict: %w", err)
	}

	return &Summary{
		Verdict:        result,
		Metrics:        metrics,
		Recommendation: recommend(result),
		SpecialState:   opts.SpecialState,
	}, nil
}

func recommend(v *verdict.Verdict) Recommendation {
	rec := Recommendation{
		Issue:  v.PrimaryIssue,
		FixTag: v.CopyTags.Fix,
	}

	if len(v.BestNextSteps) > 0 {
		rec.StepKey = v.BestNextSteps[0].Key
	}

	return rec
}

func applyDefaults(opts *Options) {
	defaults := DefaultOptions()

	opts.Profiles = opts.Profiles.WithDefaults(defaults.Profiles)

	if opts.ClippingThreshold == 0 {
		opts.ClippingThreshold = defaults.ClippingThreshold
	}

	if opts.VAD == (vad.Options{}) {
		opts.VAD = defaults.VAD
	}

	if opts.Echo == (echo.Options{}) {
		opts.Echo = defaults.Echo
	}
}
