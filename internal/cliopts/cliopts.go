// Package cliopts holds the grading flags shared by the micdoctor binaries and turns them into analysis options.
//
//nolint:wrapcheck
package cliopts

import (
	"github.com/urfave/cli/v3"

	"github.com/farcloser/micdoctor"
	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/types"
)

// Flags returns the context and threshold flags. defaultMode differs per binary: the console shows one step,
// batch reports keep a few so the digest has something to aggregate.
func Flags(defaultMode types.Mode) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "use-case",
			Aliases: []string{"u"},
			Usage:   "What the recording is for: meetings, podcast, streaming, voice_note",
			Value:   types.UseCaseMeetings.String(),
		},
		&cli.StringFlag{
			Name:    "device",
			Aliases: []string{"d"},
			Usage:   "Microphone type: laptop, desktop, mobile, usb_mic, headset, bluetooth, built_in, other, unknown",
			Value:   types.DeviceUnknown.String(),
		},
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   "Advice detail: single, basic, pro",
			Value:   defaultMode.String(),
		},
		&cli.StringFlag{
			Name:    "thresholds",
			Aliases: []string{"t"},
			Usage:   "YAML file overriding the threshold profiles",
		},
	}
}

// Options parses the flags registered by Flags.
func Options(cmd *cli.Command) (micdoctor.Options, error) {
	opts := micdoctor.DefaultOptions()

	useCase, err := types.ParseUseCase(cmd.String("use-case"))
	if err != nil {
		return opts, err
	}

	device, err := types.ParseDeviceType(cmd.String("device"))
	if err != nil {
		return opts, err
	}

	mode, err := types.ParseMode(cmd.String("mode"))
	if err != nil {
		return opts, err
	}

	opts.Context = micdoctor.Context{Mode: mode, UseCase: useCase, DeviceType: device}

	if path := cmd.String("thresholds"); path != "" {
		if opts.Profiles, err = config.Load(path); err != nil {
			return opts, err
		}
	}

	return opts, nil
}
