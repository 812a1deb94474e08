package pcm_test

import (
	"testing"

	"github.com/farcloser/micdoctor/internal/pcm"
)

func TestSignal(t *testing.T) {
	for _, kind := range pcm.SignalKinds {
		samples, err := pcm.Signal(kind, 16000, 1.5, 3)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", kind, err)
		}

		if len(samples) != 24000 {
			t.Errorf("%s: length = %d, want 24000", kind, len(samples))
		}
	}

	clipped, err := pcm.Signal("clipped", 16000, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if peak := pcm.Peak(clipped); peak != 1 {
		t.Errorf("clipped peak = %v, want 1", peak)
	}

	silent, err := pcm.Signal("silent", 16000, 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	if pcm.Peak(silent) != 0 {
		t.Error("silent signal is not silent")
	}
}

func TestSignal_Errors(t *testing.T) {
	if _, err := pcm.Signal("whale", 16000, 1, 1); err == nil {
		t.Error("expected an error for an unknown kind")
	}

	if _, err := pcm.Signal("clean", 16000, 0, 1); err == nil {
		t.Error("expected an error for a zero length")
	}

	if _, err := pcm.Signal("clean", 0, 1, 1); err == nil {
		t.Error("expected an error for a zero sample rate")
	}
}
