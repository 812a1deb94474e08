package pcm

import (
	"fmt"
	"strings"
)

const (
	syllableOnMs  = 400
	syllableOffMs = 200
	roomToneLevel = 0.0005
	echoDelayMs   = 120
)

// SignalKinds lists the signals Signal knows.
//
//nolint:gochecknoglobals // effectively const
var SignalKinds = []string{"clean", "quiet", "loud", "clipped", "noisy", "hum", "echo", "silent"}

// Signal synthesizes a speech-like test recording with a known defect. See SignalKinds.
func Signal(kind string, sampleRate int, seconds float64, seed uint64) ([]float32, error) {
	if sampleRate <= 0 || seconds <= 0 {
		return nil, fmt.Errorf("invalid signal length: %v s at %d Hz", seconds, sampleRate)
	}

	switch kind {
	case "clean":
		return speech(sampleRate, seconds, 0.2, seed), nil
	case "quiet":
		return speech(sampleRate, seconds, 0.004, seed), nil
	case "loud":
		return speech(sampleRate, seconds, 0.9, seed), nil
	case "clipped":
		clipped, _ := Clip(speech(sampleRate, seconds, 1.6, seed), 1)

		return clipped, nil
	case "noisy":
		voice := speech(sampleRate, seconds, 0.2, seed)

		return MixAtSNR(voice, WhiteNoise(len(voice), 1, seed+2), -6), nil
	case "hum":
		voice := speech(sampleRate, seconds, 0.2, seed)
		hum := Sine(50, 0.08, sampleRate, seconds)

		for i := range min(len(voice), len(hum)) {
			voice[i] += hum[i]
		}

		return voice, nil
	case "echo":
		voice := speech(sampleRate, seconds, 0.2, seed)
		delay := sampleRate * echoDelayMs / 1000
		out := make([]float32, len(voice))

		for i := range out {
			out[i] = voice[i]
			if i >= delay {
				out[i] += 0.8 * voice[i-delay]
			}
		}

		return out, nil
	case "silent":
		return make([]float32, int(seconds*float64(sampleRate))), nil
	default:
		return nil, fmt.Errorf("unknown kind %q (valid: %s)", kind, strings.Join(SignalKinds, ", "))
	}
}

// speech is gated noise over a faint room tone: bursts standing in for syllables, separated by pauses.
// Noise keeps the autocorrelation flat, so only the echo kind reads as reverberant.
func speech(sampleRate int, seconds, amplitude float64, seed uint64) []float32 {
	n := int(seconds * float64(sampleRate))
	voice := WhiteNoise(n, amplitude, seed)
	room := WhiteNoise(n, roomToneLevel, seed+1)
	period := sampleRate * (syllableOnMs + syllableOffMs) / 1000
	onSamples := sampleRate * syllableOnMs / 1000

	for i := range voice {
		if period > 0 && i%period >= onSamples {
			voice[i] = 0
		}

		voice[i] += room[i]
	}

	return voice
}
