//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/micdoctor/internal/capture"
)

var errProcessArgs = errors.New("expected exactly one argument: file path")

func processCommand() *cli.Command {
	return &cli.Command{
		Name:      "process",
		Usage:     "Decode any audio file with ffmpeg and grade it",
		ArgsUsage: "<file>",
		Flags:     gradingFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			setupLogging(cmd)

			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errProcessArgs, cmd.NArg())
			}

			filePath := cmd.Args().First()

			buf, err := capture.Decode(ctx, filePath)
			if err != nil {
				return err
			}

			return gradeBuffer(cmd, filePath, buf)
		},
	}
}
