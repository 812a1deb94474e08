//nolint:wrapcheck
package main

import (
	"context"
	"os"

	"github.com/farcloser/primordium/format"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/types"
)

func thresholdsCommand() *cli.Command {
	return &cli.Command{
		Name:  "thresholds",
		Usage: "Print the threshold profiles in use",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "use-case",
				Aliases: []string{"u"},
				Usage:   "Only print this use case: meetings, podcast, streaming, voice_note",
			},
			&cli.StringFlag{
				Name:    "thresholds",
				Aliases: []string{"t"},
				Usage:   "YAML file overriding the threshold profiles (validated before printing)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			formatter, err := format.GetFormatter(cmd.String("format"))
			if err != nil {
				return err
			}

			profiles := config.Default()
			if path := cmd.String("thresholds"); path != "" {
				if profiles, err = config.Load(path); err != nil {
					return err
				}
			}

			useCases := types.UseCases
			if name := cmd.String("use-case"); name != "" {
				useCase, err := types.ParseUseCase(name)
				if err != nil {
					return err
				}

				useCases = []types.UseCase{useCase}
			}

			data := make([]*format.Data, 0, len(useCases))
			for _, useCase := range useCases {
				data = append(data, &format.Data{
					Object: useCase.String(),
					Meta:   profiles.For(useCase).Display(),
				})
			}

			return formatter.PrintAll(data, os.Stdout)
		},
	}
}
