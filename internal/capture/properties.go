//nolint:staticcheck // too dumb on Db vs. DB
package capture

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/farcloser/micdoctor/internal/pcm"
)

const spectrumWindow = 4096

// Properties are descriptive measurements of a buffer. They do not feed the grade.
type Properties struct {
	DurationSec        float64 `json:"duration_sec"`
	SampleRate         int     `json:"sample_rate"`
	Channels           int     `json:"channels"`
	PeakDb             float64 `json:"peak_db"`
	DCOffset           float64 `json:"dc_offset"`            // mean sample value; should be near 0
	SpectralCentroidHz float64 `json:"spectral_centroid_hz"` // brightness; speech sits around 500-2000 Hz
}

// Inspect measures the descriptive properties of a buffer.
func Inspect(buf *Buffer) Properties {
	props := Properties{
		DurationSec: buf.Duration(),
		SampleRate:  buf.SampleRate,
		Channels:    buf.Channels,
		PeakDb:      pcm.ToDb(pcm.Peak(buf.Samples)),
	}

	if len(buf.Samples) == 0 {
		return props
	}

	var sum float64
	for _, v := range buf.Samples {
		sum += float64(v)
	}

	props.DCOffset = sum / float64(len(buf.Samples))
	props.SpectralCentroidHz = spectralCentroid(buf.Samples, buf.SampleRate)

	return props
}

// spectralCentroid averages Hann-windowed magnitude spectra over consecutive windows.
// Buffers shorter than one window are analyzed as a single zero-padded window.
func spectralCentroid(samples []float32, sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0
	}

	fft := fourier.NewFFT(spectrumWindow)
	window := makeHannWindow(spectrumWindow)
	in := make([]float64, spectrumWindow)
	magnitudeSum := make([]float64, spectrumWindow/2+1)

	for start := 0; start == 0 || start+spectrumWindow <= len(samples); start += spectrumWindow {
		for i := range in {
			in[i] = 0
			if start+i < len(samples) {
				in[i] = float64(samples[start+i]) * window[i]
			}
		}

		for i, c := range fft.Coefficients(nil, in) {
			magnitudeSum[i] += math.Hypot(real(c), imag(c))
		}
	}

	binHz := float64(sampleRate) / spectrumWindow

	var weighted, total float64

	for i, mag := range magnitudeSum {
		weighted += float64(i) * binHz * mag
		total += mag
	}

	if total == 0 {
		return 0
	}

	return weighted / total
}

func makeHannWindow(size int) []float64 {
	window := make([]float64, size)
	for i := range window {
		window[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(size-1)))
	}

	return window
}
