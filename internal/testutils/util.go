// Package testutils provides test infrastructure for micdoctor CLI tests.
package testutils

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/farcloser/agar/pkg/agar"

	"github.com/farcloser/micdoctor/internal/capture"
	"github.com/farcloser/micdoctor/internal/pcm"
)

// Setup creates a test case configured to run the named binary from bin/.
func Setup(binary string) *test.Case {
	_, thisFile, _, _ := runtime.Caller(0) //nolint:dogsled // runtime.Caller returns 4 values, only file is needed
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	binaryPath := filepath.Join(projectRoot, "bin", binary)

	return agar.Setup(binaryPath)
}

// Recording writes a synthetic 3 second 48 kHz recording of the given kind to dir and returns its path.
func Recording(t *testing.T, dir, kind string) string {
	t.Helper()

	samples, err := pcm.Signal(kind, 48000, 3, 1)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, kind+".wav")

	if err := capture.WriteWAVFile(path, samples, 48000); err != nil {
		t.Fatal(err)
	}

	return path
}
