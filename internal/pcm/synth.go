package pcm

import (
	"math"
	"math/rand/v2"
)

// Clip hard-limits samples to [-limit, limit] and reports how many samples were changed.
// The input is not modified.
func Clip(samples []float32, limit float32) ([]float32, int) {
	out := make([]float32, len(samples))
	clipped := 0

	for i, v := range samples {
		switch {
		case v > limit:
			out[i] = limit
			clipped++
		case v < -limit:
			out[i] = -limit
			clipped++
		default:
			out[i] = v
		}
	}

	return out, clipped
}

// Sine generates a sine wave.
func Sine(freq, amplitude float64, sampleRate int, seconds float64) []float32 {
	n := int(math.Round(seconds * float64(sampleRate)))
	out := make([]float32, n)
	step := 2 * math.Pi * freq / float64(sampleRate)

	for i := range out {
		out[i] = float32(amplitude * math.Sin(step*float64(i)))
	}

	return out
}

// WhiteNoise generates uniform noise in [-amplitude, amplitude].
// The same seed always yields the same buffer.
func WhiteNoise(n int, amplitude float64, seed uint64) []float32 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // test signal, not crypto
	out := make([]float32, n)

	for i := range out {
		out[i] = float32(amplitude * (2*rng.Float64() - 1))
	}

	return out
}

// MixAtSNR adds noise to signal, scaled so that 20*log10(rms(signal)/rms(noise)) equals snrDb.
// The result has the length of the shorter input. A silent noise buffer returns a copy of signal.
func MixAtSNR(signal, noise []float32, snrDb float64) []float32 {
	length := min(len(signal), len(noise))
	out := make([]float32, length)
	copy(out, signal[:length])

	noiseRMS := RMS(noise[:length])
	if noiseRMS == 0 {
		return out
	}

	gain := RMS(signal[:length]) / FromDb(snrDb) / noiseRMS

	for i := range out {
		out[i] += float32(float64(noise[i]) * gain)
	}

	return out
}
