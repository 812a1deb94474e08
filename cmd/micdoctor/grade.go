//nolint:wrapcheck
package main

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/micdoctor"
	"github.com/farcloser/micdoctor/internal/capture"
	"github.com/farcloser/micdoctor/internal/cliopts"
	"github.com/farcloser/micdoctor/internal/types"
)

// gradingFlags are shared by every command that grades a recording.
func gradingFlags() []cli.Flag {
	return append(cliopts.Flags(types.ModeSingle),
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: console, json, markdown",
			Value:   "console",
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"D"},
			Usage:   "Include all raw analyzer data in output and log at debug level",
		},
	)
}

func setupLogging(cmd *cli.Command) {
	if cmd.Bool("debug") {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
}

// gradeBuffer flags special states, grades the buffer and prints the result.
func gradeBuffer(cmd *cli.Command, name string, buf *capture.Buffer) error {
	opts, err := cliopts.Options(cmd)
	if err != nil {
		return err
	}

	opts.SpecialState = capture.Detect(buf, capture.DefaultDetectOptions())

	slog.Debug("grading", "file path", name, "duration", buf.Duration(), "special state", opts.SpecialState.String())

	summary, err := micdoctor.Analyze(buf.Samples, buf.SampleRate, opts)
	if err != nil {
		return err
	}

	return outputSummary(name, summary, capture.Inspect(buf), cmd.String("format"), cmd.Bool("debug"))
}
