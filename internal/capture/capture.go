// Package capture turns recordings into mono float32 buffers and flags the ones that cannot be graded.
package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/micdoctor/internal/types"
)

// Buffer is a decoded, mono recording.
type Buffer struct {
	Samples    []float32
	SampleRate int
	Channels   int // channel count before mixing
}

// Duration returns the length of the buffer in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}

	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Input selects how a file is decoded.
type Input int

const (
	InputAuto Input = iota
	InputRaw
	InputWAV
)

func (i Input) String() string {
	switch i {
	case InputAuto:
		return "auto"
	case InputRaw:
		return "raw"
	case InputWAV:
		return "wav"
	}

	return "unknown"
}

// ParseInput converts a string to an Input value. Empty means auto.
func ParseInput(s string) (Input, error) {
	switch s {
	case "auto", "":
		return InputAuto, nil
	case "raw":
		return InputRaw, nil
	case "wav":
		return InputWAV, nil
	default:
		return 0, fmt.Errorf("unknown input %q (valid: auto, raw, wav)", s)
	}
}

// Open decodes a file. "-" reads raw PCM from stdin. In auto mode, files ending in .wav are decoded as WAV,
// anything else as raw PCM described by format.
func Open(path string, input Input, format types.PCMFormat) (*Buffer, error) {
	if path == "-" {
		if input == InputWAV {
			return nil, fmt.Errorf("%w: wav input cannot be read from stdin", fault.ErrReadFailure)
		}

		return ReadRaw(os.Stdin, format)
	}

	f, err := os.Open(path) //nolint:gosec // user-provided recording
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
	}
	defer f.Close()

	if input == InputWAV || (input == InputAuto && strings.EqualFold(filepath.Ext(path), ".wav")) {
		return ReadWAV(f)
	}

	return ReadRaw(f, format)
}
