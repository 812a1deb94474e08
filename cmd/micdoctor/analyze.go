//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/micdoctor/internal/capture"
	"github.com/farcloser/micdoctor/internal/types"
)

var errInvalidArgCount = errors.New("expected exactly one argument: file path or \"-\" for stdin")

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Grade a raw PCM or WAV speech recording",
		ArgsUsage: "<file | ->",
		Flags: append([]cli.Flag{
			// PCMFormat flags, ignored for WAV input.
			&cli.IntFlag{
				Name:    "sample-rate",
				Aliases: []string{"s"},
				Usage:   "Sample rate in Hz of raw input (e.g., 16000, 44100, 48000)",
				Value:   48000,
			},
			&cli.StringFlag{
				Name:    "encoding",
				Aliases: []string{"e"},
				Usage:   "Sample encoding of raw input: f32le, s16le, s24le, s32le",
				Value:   "f32le",
			},
			&cli.IntFlag{
				Name:    "channels",
				Aliases: []string{"c"},
				Usage:   "Number of interleaved channels of raw input",
				Value:   1,
			},
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Input type: auto (by extension), raw, wav",
				Value:   "auto",
			},
		}, gradingFlags()...),
		Action: func(_ context.Context, cmd *cli.Command) error {
			setupLogging(cmd)

			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			format, err := parsePCMFormat(cmd)
			if err != nil {
				return err
			}

			input, err := capture.ParseInput(cmd.String("input"))
			if err != nil {
				return err
			}

			inputPath := cmd.Args().First()

			buf, err := capture.Open(inputPath, input, format)
			if err != nil {
				return err
			}

			return gradeBuffer(cmd, inputPath, buf)
		},
	}
}

func parsePCMFormat(cmd *cli.Command) (types.PCMFormat, error) {
	encoding, err := types.ParseEncoding(cmd.String("encoding"))
	if err != nil {
		return types.PCMFormat{}, fmt.Errorf("--encoding: %w", err)
	}

	return types.PCMFormat{
		SampleRate: cmd.Int("sample-rate"),
		Encoding:   encoding,
		Channels:   cmd.Int("channels"),
	}, nil
}
