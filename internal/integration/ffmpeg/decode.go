package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/micdoctor/internal/integration/binary"
	"github.com/farcloser/micdoctor/internal/types"
)

// Decode decodes one audio stream of a media file to raw PCM in the requested encoding, at the stream's native
// sample rate and channel count.
func Decode(
	ctx context.Context,
	filePath string,
	output io.Writer,
	streamIndex int,
	encoding types.Encoding,
) error {
	slog.Debug("ffmpeg.Decode", "file path", filePath, "stream index", streamIndex, "stage", "start")

	ffmpegPath, err := binary.Require(name)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input
	cmd := exec.CommandContext(ctx, ffmpegPath, Args(filePath, streamIndex, encoding)...)

	cmd.Stdout = output

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			slog.Debug("ffmpeg.Decode", "file path", filePath, "stage", "timeout")

			return fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		slog.Debug("ffmpeg.Decode", "file path", filePath, "stage", "error")

		return fmt.Errorf("%w: %s: %w", fault.ErrCommandFailure, stderr.String(), err)
	}

	slog.Debug("ffmpeg.Decode", "file path", filePath, "stage", "done")

	return nil
}

// Args builds the ffmpeg command line for Decode.
func Args(filePath string, streamIndex int, encoding types.Encoding) []string {
	return []string{
		"-i", filePath,
		"-map", "0:a:" + strconv.Itoa(streamIndex),
		"-f", encoding.String(),
		"-acodec", codecFor(encoding),
		"-v", "quiet",
		"-",
	}
}

func codecFor(encoding types.Encoding) string {
	return "pcm_" + encoding.String()
}
