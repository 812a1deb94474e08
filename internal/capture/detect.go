//nolint:staticcheck // too dumb on Db vs. DB
package capture

import (
	"time"

	"github.com/farcloser/micdoctor/internal/audit/vad"
	"github.com/farcloser/micdoctor/internal/pcm"
	"github.com/farcloser/micdoctor/internal/types"
)

type DetectOptions struct {
	MinDuration     time.Duration // shorter recordings are too short (default 1s)
	SilenceThreshDb float64       // overall RMS below this is silence (default -60)
	MinSpeechRatio  float64       // fewer speech frames than this means no speech (default 0.05)
	VAD             vad.Options
}

func DefaultDetectOptions() DetectOptions {
	return DetectOptions{
		MinDuration:     time.Second,
		SilenceThreshDb: -60,
		MinSpeechRatio:  0.05,
		VAD:             vad.DefaultOptions(),
	}
}

// Detect reports the first special state that applies, checking duration, then silence, then speech.
func Detect(buf *Buffer, opts DetectOptions) types.SpecialState {
	if opts.MinDuration == 0 {
		opts.MinDuration = time.Second
	}

	if opts.SilenceThreshDb == 0 {
		opts.SilenceThreshDb = -60
	}

	if opts.MinSpeechRatio == 0 {
		opts.MinSpeechRatio = 0.05
	}

	if buf.Duration() < opts.MinDuration.Seconds() {
		return types.SpecialStateTooShort
	}

	if pcm.ToDb(pcm.RMS(buf.Samples)) < opts.SilenceThreshDb {
		return types.SpecialStateSilent
	}

	if vad.Segment(buf.Samples, buf.SampleRate, opts.VAD).SpeechRatio < opts.MinSpeechRatio {
		return types.SpecialStateNoSpeech
	}

	return types.SpecialStateNone
}
