//nolint:staticcheck // too dumb
package vad

import (
	"github.com/farcloser/micdoctor/internal/pcm"
	"github.com/farcloser/micdoctor/internal/types"
)

type Options struct {
	FrameMs     int     // frame length (default 30)
	ThresholdDb float64 // frames at or above this RMS are speech (default -35)
}

func DefaultOptions() Options {
	return Options{
		FrameMs:     30,
		ThresholdDb: -35,
	}
}

// Segment splits samples into fixed-length frames and classifies each one by energy.
// Only full frames are classified; a non-empty buffer shorter than one frame counts as a single frame.
func Segment(samples []float32, sampleRate int, opts Options) *types.VADResult {
	if opts.FrameMs == 0 {
		opts.FrameMs = 30
	}

	if opts.ThresholdDb == 0 {
		opts.ThresholdDb = -35
	}

	frameSamples := max(sampleRate*opts.FrameMs/1000, 1)
	result := &types.VADResult{FrameSamples: frameSamples}

	if len(samples) == 0 {
		return result
	}

	threshold := pcm.FromDb(opts.ThresholdDb)

	frameCount := len(samples) / frameSamples
	if frameCount == 0 {
		frameCount = 1
		frameSamples = len(samples)
		result.FrameSamples = frameSamples
	}

	result.Frames = make([]types.VADFrame, frameCount)

	var (
		speechFrames int
		speechSum    float64
	)

	for i := range frameCount {
		rms := pcm.RMS(samples[i*frameSamples : (i+1)*frameSamples])
		isSpeech := rms >= threshold

		result.Frames[i] = types.VADFrame{IsSpeech: isSpeech, RMS: rms}

		if isSpeech {
			speechFrames++
			speechSum += rms
		}
	}

	result.SpeechRatio = float64(speechFrames) / float64(frameCount)
	if speechFrames > 0 {
		result.MeanSpeechRMS = speechSum / float64(speechFrames)
	}

	return result
}
