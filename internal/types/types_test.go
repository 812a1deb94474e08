package types_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/farcloser/micdoctor/internal/types"
)

func TestParseUseCase(t *testing.T) {
	for _, useCase := range types.UseCases {
		got, err := types.ParseUseCase(useCase.String())
		if err != nil || got != useCase {
			t.Errorf("round trip %s: got %s, %v", useCase, got, err)
		}
	}

	if got, err := types.ParseUseCase("voice-note"); err != nil || got != types.UseCaseVoiceNote {
		t.Errorf("dashed alias: got %s, %v", got, err)
	}

	if got, err := types.ParseUseCase(""); err != nil || got != types.UseCaseMeetings {
		t.Errorf("empty: got %s, %v", got, err)
	}

	_, err := types.ParseUseCase("karaoke")
	if err == nil || !strings.Contains(err.Error(), "voice_note") {
		t.Errorf("expected an error listing valid values, got %v", err)
	}
}

func TestParseDeviceType(t *testing.T) {
	for device := types.DeviceUnknown; device <= types.DeviceOther; device++ {
		got, err := types.ParseDeviceType(device.String())
		if err != nil || got != device {
			t.Errorf("round trip %s: got %s, %v", device, got, err)
		}
	}

	if got, err := types.ParseDeviceType("usb-mic"); err != nil || got != types.DeviceUSBMic {
		t.Errorf("dashed alias: got %s, %v", got, err)
	}

	if _, err := types.ParseDeviceType("theremin"); err == nil {
		t.Error("expected an error for an unknown device")
	}
}

func TestParseModeDimensionEncoding(t *testing.T) {
	for _, mode := range []types.Mode{types.ModeSingle, types.ModeBasic, types.ModePro} {
		if got, err := types.ParseMode(mode.String()); err != nil || got != mode {
			t.Errorf("mode %s: got %s, %v", mode, got, err)
		}
	}

	for _, dim := range types.Dimensions {
		if got, err := types.ParseDimension(dim.String()); err != nil || got != dim {
			t.Errorf("dimension %s: got %s, %v", dim, got, err)
		}
	}

	widths := map[types.Encoding]int{
		types.EncodingF32LE: 4,
		types.EncodingS16LE: 2,
		types.EncodingS24LE: 3,
		types.EncodingS32LE: 4,
	}

	for encoding, width := range widths {
		got, err := types.ParseEncoding(encoding.String())
		if err != nil || got != encoding {
			t.Errorf("encoding %s: got %s, %v", encoding, got, err)
		}

		if got.BytesPerSample() != width {
			t.Errorf("encoding %s: width = %d, want %d", encoding, got.BytesPerSample(), width)
		}
	}

	if _, err := types.ParseMode("expert"); err == nil {
		t.Error("expected an error for an unknown mode")
	}

	if _, err := types.ParseDimension("loudness"); err == nil {
		t.Error("expected an error for an unknown dimension")
	}

	if _, err := types.ParseEncoding("u8"); err == nil {
		t.Error("expected an error for an unknown encoding")
	}
}

func TestMarshalText(t *testing.T) {
	out, err := json.Marshal(struct {
		Context types.Context      `json:"context"`
		State   types.SpecialState `json:"state"`
		Conf    types.Confidence   `json:"conf"`
		Dim     types.Dimension    `json:"dim"`
	}{
		Context: types.Context{Mode: types.ModePro, UseCase: types.UseCasePodcast, DeviceType: types.DeviceBuiltIn},
		State:   types.SpecialStateNoSpeech,
		Conf:    types.ConfidenceMedium,
		Dim:     types.DimensionEcho,
	})
	if err != nil {
		t.Fatal(err)
	}

	want := `{"context":{"mode":"pro","use_case":"podcast","device_type":"built_in"},` +
		`"state":"no_speech","conf":"medium","dim":"echo"}`
	if string(out) != want {
		t.Errorf("got %s\nwant %s", out, want)
	}
}
