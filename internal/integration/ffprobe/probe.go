//nolint:tagliatelle
package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/micdoctor/internal/integration/binary"
)

// ErrNoAudio is returned when a file has no audio stream.
var ErrNoAudio = errors.New("no audio stream")

// Result contains the parts of the ffprobe output needed to decode a recording.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream is a single media stream.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`                // opus
	CodecType     string `json:"codec_type"`                // audio
	SampleRate    string `json:"sample_rate,omitempty"`     // 48000
	Channels      int    `json:"channels,omitempty"`        // 1
	ChannelLayout string `json:"channel_layout,omitempty"`  // mono
	Duration      string `json:"duration,omitempty"`        // 5.120000
	BitRate       string `json:"bit_rate,omitempty"`        // 64000
	SampleFmt     string `json:"sample_fmt,omitempty"`      // fltp
	BitsPerSample int    `json:"bits_per_sample,omitempty"` // 0 for lossy codecs
}

// Format is container-level information.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`        // e.g. "mov,mp4,m4a,3gp,3g2,mj2"
	Duration   string `json:"duration,omitempty"` // seconds as a float string
	ProbeScore int    `json:"probe_score"`        // 0-100, 100 = certain
}

// SampleRateHz parses the stream sample rate.
func (s Stream) SampleRateHz() (int, error) {
	rate, err := strconv.Atoi(s.SampleRate)
	if err != nil || rate <= 0 {
		return 0, fmt.Errorf("%w: sample rate %q", fault.ErrInvalidJSON, s.SampleRate)
	}

	return rate, nil
}

// AudioStream returns the first audio stream, which ffmpeg maps as 0:a:0.
func (r *Result) AudioStream() (Stream, error) {
	for _, stream := range r.Streams {
		if stream.CodecType == "audio" {
			return stream, nil
		}
	}

	return Stream{}, ErrNoAudio
}

// DurationSeconds parses the container duration, or returns 0 when unknown.
func (r *Result) DurationSeconds() float64 {
	duration, err := strconv.ParseFloat(r.Format.Duration, 64)
	if err != nil {
		return 0
	}

	return duration
}

// Parse decodes ffprobe JSON output.
func Parse(output []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	return &result, nil
}

// Probe runs ffprobe on the given file path and returns parsed metadata.
// It requires ffprobe to be available in the system PATH.
func Probe(ctx context.Context, filePath string) (*Result, error) {
	slog.Debug("ffprobe.Probe", "file path", filePath)

	ffprobePath, err := binary.Require(name)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input for probing media files
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		return nil, fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	return Parse(output)
}
