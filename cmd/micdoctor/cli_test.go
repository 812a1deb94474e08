package main_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"
	"github.com/containerd/nerdctl/mod/tigron/tig"

	"github.com/farcloser/micdoctor/internal/capture"
	"github.com/farcloser/micdoctor/internal/pcm"
	"github.com/farcloser/micdoctor/internal/testutils"
)

// expectContains returns a comparator verifying the output contains every substring.
func expectContains(substrings ...string) test.Comparator {
	return func(stdout string, testing tig.T) {
		testing.Helper()

		for _, substr := range substrings {
			if !strings.Contains(stdout, substr) {
				testing.Log(fmt.Sprintf("expected substring %q not found in output:\n%s", substr, stdout))
				testing.Fail()
			}
		}
	}
}

func succeedsWith(substrings ...string) test.Manager {
	return test.Expects(expect.ExitCodeSuccess, nil, expectContains(substrings...))
}

func rawRecording(t *testing.T, dir string) string {
	t.Helper()

	samples, err := pcm.Signal("clean", 48000, 3, 1)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "clean.f32")

	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	if err := capture.EncodeF32LE(file, samples); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestAnalyzeCLI(t *testing.T) {
	dir := t.TempDir()
	clean := testutils.Recording(t, dir, "clean")
	noisy := testutils.Recording(t, dir, "noisy")
	clipped := testutils.Recording(t, dir, "clipped")
	quiet := testutils.Recording(t, dir, "quiet")
	raw := rawRecording(t, dir)

	testCase := testutils.Setup("micdoctor")

	testCase.SubTests = []*test.Case{
		{
			Description: "analyze without arguments fails",
			Command:     test.Command("analyze"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "analyze nonexistent file fails",
			Command:     test.Command("analyze", "/nonexistent/path/take.wav"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "clean recording grades A",
			Command:     test.Command("analyze", clean),
			Expected:    succeedsWith("grade A", "all_clear_headline"),
		},
		{
			Description: "noisy recording grades F on noise",
			Command:     test.Command("analyze", noisy),
			Expected:    succeedsWith("grade F", "noise_very_poor", "noise_headline"),
		},
		{
			Description: "clipped recording reports clipping as json",
			Command:     test.Command("analyze", "--format", "json", clipped),
			Expected:    succeedsWith("level_clipping"),
		},
		{
			Description: "quiet recording is flagged as having no speech",
			Command:     test.Command("analyze", "--debug", quiet),
			Expected:    succeedsWith("no_speech", "level_extremely_quiet"),
		},
		{
			Description: "context flags are accepted",
			Command: test.Command(
				"analyze",
				"--use-case", "podcast",
				"--device", "usb_mic",
				"--mode", "pro",
				noisy,
			),
			Expected: succeedsWith("podcast"),
		},
		{
			Description: "raw input is decoded with the given format",
			Command:     test.Command("analyze", "--input", "raw", "--sample-rate", "48000", "--encoding", "f32le", raw),
			Expected:    succeedsWith("grade A"),
		},
		{
			Description: "unknown use case fails",
			Command:     test.Command("analyze", "--use-case", "karaoke", clean),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "unknown encoding fails",
			Command:     test.Command("analyze", "--input", "raw", "--encoding", "u8", raw),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}

func TestThresholdsCLI(t *testing.T) {
	dir := t.TempDir()

	override := filepath.Join(dir, "override.yaml")
	if err := os.WriteFile(override, []byte("podcast:\n  level:\n    target_db: -16\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("podcast:\n  loudness: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	testCase := testutils.Setup("micdoctor")

	testCase.SubTests = []*test.Case{
		{
			Description: "prints every use case",
			Command:     test.Command("thresholds"),
			Expected:    succeedsWith("meetings", "podcast", "streaming", "voice_note"),
		},
		{
			Description: "applies overrides",
			Command:     test.Command("thresholds", "--thresholds", override, "--use-case", "podcast"),
			Expected:    succeedsWith("-16 dB"),
		},
		{
			Description: "rejects unknown keys",
			Command:     test.Command("thresholds", "--thresholds", invalid),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}

func TestGenerateCLI(t *testing.T) {
	dir := t.TempDir()

	testCase := testutils.Setup("micdoctor")

	testCase.SubTests = []*test.Case{
		{
			Description: "writes a recording",
			Command:     test.Command("generate", "--kind", "echo", filepath.Join(dir, "echo.wav")),
			Expected:    test.Expects(expect.ExitCodeSuccess, nil, nil),
		},
		{
			Description: "unknown kind fails",
			Command:     test.Command("generate", "--kind", "whale", filepath.Join(dir, "whale.wav")),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "missing output path fails",
			Command:     test.Command("generate"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}
