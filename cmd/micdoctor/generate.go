//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/micdoctor/internal/capture"
	"github.com/farcloser/micdoctor/internal/pcm"
)

var errGenerateArgs = errors.New("expected exactly one argument: output .wav path")

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Write a synthetic test recording with a known defect",
		ArgsUsage: "<output.wav>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Signal: " + strings.Join(pcm.SignalKinds, ", "),
				Value:   "clean",
			},
			&cli.IntFlag{
				Name:    "sample-rate",
				Aliases: []string{"s"},
				Usage:   "Sample rate in Hz",
				Value:   48000,
			},
			&cli.FloatFlag{
				Name:  "seconds",
				Usage: "Duration in seconds",
				Value: 3,
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Noise seed",
				Value: 1,
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errGenerateArgs, cmd.NArg())
			}

			sampleRate := cmd.Int("sample-rate")

			samples, err := pcm.Signal(cmd.String("kind"), sampleRate, cmd.Float("seconds"), cmd.Uint64("seed"))
			if err != nil {
				return err
			}

			outputPath := cmd.Args().First()

			slog.Debug("generate", "file path", outputPath, "kind", cmd.String("kind"), "samples", len(samples))

			return capture.WriteWAVFile(outputPath, samples, sampleRate)
		},
	}
}
