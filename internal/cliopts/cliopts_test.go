package cliopts_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/micdoctor"
	"github.com/farcloser/micdoctor/internal/cliopts"
	"github.com/farcloser/micdoctor/internal/config"
	"github.com/farcloser/micdoctor/internal/types"
)

func parse(t *testing.T, defaultMode types.Mode, args ...string) (micdoctor.Options, error) {
	t.Helper()

	var (
		opts    micdoctor.Options
		optsErr error
	)

	cmd := &cli.Command{
		Name:  "grade",
		Flags: cliopts.Flags(defaultMode),
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts, optsErr = cliopts.Options(cmd)

			return nil
		},
	}

	if err := cmd.Run(context.Background(), append([]string{"grade"}, args...)); err != nil {
		t.Fatalf("running command: %v", err)
	}

	return opts, optsErr
}

func TestOptions_Defaults(t *testing.T) {
	for _, mode := range []types.Mode{types.ModeSingle, types.ModeBasic} {
		opts, err := parse(t, mode)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := types.Context{Mode: mode, UseCase: types.UseCaseMeetings, DeviceType: types.DeviceUnknown}
		if opts.Context != want {
			t.Errorf("default %s: context = %+v, want %+v", mode, opts.Context, want)
		}

		if opts.Profiles != config.Default() {
			t.Errorf("default %s: profiles differ from the canonical table", mode)
		}
	}
}

func TestOptions_Context(t *testing.T) {
	opts, err := parse(t, types.ModeSingle, "-u", "voice-note", "--device", "bluetooth", "-m", "pro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := types.Context{Mode: types.ModePro, UseCase: types.UseCaseVoiceNote, DeviceType: types.DeviceBluetooth}
	if opts.Context != want {
		t.Errorf("context = %+v, want %+v", opts.Context, want)
	}
}

func TestOptions_Thresholds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	if err := os.WriteFile(path, []byte("meetings:\n  echo:\n    warn_score: 0.4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	opts, err := parse(t, types.ModeSingle, "--thresholds", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := opts.Profiles.Meetings.Echo.WarnScore; got != 0.4 {
		t.Errorf("meetings echo warn score = %v, want 0.4", got)
	}

	if opts.Profiles.Podcast != config.Default().Podcast {
		t.Error("podcast profile should keep its defaults")
	}
}

func TestOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown use case", []string{"--use-case", "karaoke"}},
		{"unknown device", []string{"--device", "tin_can"}},
		{"unknown mode", []string{"--mode", "verbose"}},
		{"missing thresholds file", []string{"--thresholds", "/nonexistent/thresholds.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parse(t, types.ModeSingle, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
