package noise

import "math"

// MainsFrequencies are the electrical hum fundamentals probed by Measure.
//
//nolint:gochecknoglobals // effectively const
var MainsFrequencies = []float64{50, 60}

// goertzelPower returns the power of a single frequency over the whole buffer, scaled so that
// a pure sinusoid at freq yields its own mean square (A^2/2).
func goertzelPower(samples []float32, freq float64, sampleRate int) float64 {
	n := len(samples)
	if n == 0 || sampleRate <= 0 {
		return 0
	}

	coeff := 2 * math.Cos(2*math.Pi*freq/float64(sampleRate))

	var s1, s2 float64

	for _, v := range samples {
		s0 := float64(v) + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}

	power := s1*s1 + s2*s2 - coeff*s1*s2

	return 2 * math.Max(power, 0) / (float64(n) * float64(n))
}
