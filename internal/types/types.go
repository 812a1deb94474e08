//nolint:staticcheck // too dumb on Db vs. DB
package types

import (
	"fmt"
	"strings"
)

// UseCase is what the recording is meant for. The zero value is meetings.
type UseCase int

const (
	UseCaseMeetings UseCase = iota
	UseCasePodcast
	UseCaseStreaming
	UseCaseVoiceNote
)

// UseCases lists every use case in declaration order.
//
//nolint:gochecknoglobals // effectively const
var UseCases = []UseCase{UseCaseMeetings, UseCasePodcast, UseCaseStreaming, UseCaseVoiceNote}

func (u UseCase) String() string {
	switch u {
	case UseCaseMeetings:
		return "meetings"
	case UseCasePodcast:
		return "podcast"
	case UseCaseStreaming:
		return "streaming"
	case UseCaseVoiceNote:
		return "voice_note"
	}

	return "unknown"
}

// ParseUseCase converts a string to a UseCase value. Empty means meetings.
func ParseUseCase(s string) (UseCase, error) {
	switch strings.ReplaceAll(s, "-", "_") {
	case "meetings", "":
		return UseCaseMeetings, nil
	case "podcast":
		return UseCasePodcast, nil
	case "streaming":
		return UseCaseStreaming, nil
	case "voice_note":
		return UseCaseVoiceNote, nil
	default:
		return 0, fmt.Errorf("unknown use case %q (valid: meetings, podcast, streaming, voice_note)", s)
	}
}

// Mode is the level of detail the caller asked for. The zero value is single.
type Mode int

const (
	ModeSingle Mode = iota
	ModeBasic
	ModePro
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeBasic:
		return "basic"
	case ModePro:
		return "pro"
	}

	return "unknown"
}

// ParseMode converts a string to a Mode value. Empty means single.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "single", "":
		return ModeSingle, nil
	case "basic":
		return ModeBasic, nil
	case "pro":
		return ModePro, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (valid: single, basic, pro)", s)
	}
}

// DeviceType is the kind of microphone the recording came from. The zero value is unknown.
type DeviceType int

const (
	DeviceUnknown DeviceType = iota
	DeviceLaptop
	DeviceDesktop
	DeviceMobile
	DeviceUSBMic
	DeviceHeadset
	DeviceBluetooth
	DeviceBuiltIn
	DeviceOther
)

func (d DeviceType) String() string {
	switch d {
	case DeviceUnknown:
		return "unknown"
	case DeviceLaptop:
		return "laptop"
	case DeviceDesktop:
		return "desktop"
	case DeviceMobile:
		return "mobile"
	case DeviceUSBMic:
		return "usb_mic"
	case DeviceHeadset:
		return "headset"
	case DeviceBluetooth:
		return "bluetooth"
	case DeviceBuiltIn:
		return "built_in"
	case DeviceOther:
		return "other"
	}

	return "unknown"
}

// ParseDeviceType converts a string to a DeviceType value. Empty means unknown.
func ParseDeviceType(s string) (DeviceType, error) {
	switch strings.ReplaceAll(s, "-", "_") {
	case "unknown", "":
		return DeviceUnknown, nil
	case "laptop":
		return DeviceLaptop, nil
	case "desktop":
		return DeviceDesktop, nil
	case "mobile":
		return DeviceMobile, nil
	case "usb_mic":
		return DeviceUSBMic, nil
	case "headset":
		return DeviceHeadset, nil
	case "bluetooth":
		return DeviceBluetooth, nil
	case "built_in":
		return DeviceBuiltIn, nil
	case "other":
		return DeviceOther, nil
	default:
		return 0, fmt.Errorf(
			"unknown device type %q (valid: laptop, desktop, mobile, usb_mic, headset, bluetooth, built_in, other, unknown)",
			s,
		)
	}
}

// Context describes who is recording and why. The zero value is {single, meetings, unknown}.
type Context struct {
	Mode       Mode       `json:"mode"`
	UseCase    UseCase    `json:"use_case"`
	DeviceType DeviceType `json:"device_type"`
}

// Confidence grades how much a measurement can be trusted.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	}

	return "unknown"
}

// Dimension is one of the three graded aspects of a recording.
type Dimension int

const (
	DimensionLevel Dimension = iota
	DimensionNoise
	DimensionEcho
)

// Dimensions lists the graded dimensions in tie-break order.
//
//nolint:gochecknoglobals // effectively const
var Dimensions = []Dimension{DimensionLevel, DimensionNoise, DimensionEcho}

func (d Dimension) String() string {
	switch d {
	case DimensionLevel:
		return "level"
	case DimensionNoise:
		return "noise"
	case DimensionEcho:
		return "echo"
	}

	return "unknown"
}

// ParseDimension converts a string to a Dimension value.
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "level":
		return DimensionLevel, nil
	case "noise":
		return DimensionNoise, nil
	case "echo":
		return DimensionEcho, nil
	default:
		return 0, fmt.Errorf("unknown dimension %q (valid: level, noise, echo)", s)
	}
}

/*
Level Interpretation (speech, dBFS RMS)

| RmsDb         | Interpretation                         |
|---------------|----------------------------------------|
| < -45         | Barely audible. Wrong mic or muted.    |
| -45 to -30    | Quiet. Listeners reach for the volume. |
| -26 to -14    | Comfortable speech level.              |
| -10 to -5     | Hot. Little headroom left.             |
| > -5          | Overdriven, almost certainly distorted.|
*/

// LevelMetrics contains loudness measurements.
type LevelMetrics struct {
	RMS   float64 `json:"rms"`
	RMSDb float64 `json:"rms_db"` // 20*log10(max(rms, 1e-8))
}

// ClippingMetrics contains clipping measurements.
type ClippingMetrics struct {
	ClippingRatio  float64 `json:"clipping_ratio"` // fraction of samples at or above the clipping threshold
	Peak           float64 `json:"peak"`           // max |x|
	ClippedSamples uint64  `json:"clipped_samples"`
	Samples        uint64  `json:"samples"`
}

/*
Noise Interpretation

## SNR (speech median vs. pause median)

| SNRDb     | Interpretation                            |
|-----------|-------------------------------------------|
| > 30 dB   | Studio quiet.                             |
| 20-30 dB  | Clean home office.                        |
| 12-20 dB  | Audible background, still intelligible.   |
| 6-12 dB   | Distracting. Listeners strain.            |
| < 6 dB    | Speech competes with the noise.           |

## Hum ratio (max(50 Hz, 60 Hz) Goertzel power / mean square energy)

| HumRatio  | Interpretation                            |
|-----------|-------------------------------------------|
| < 0.02    | No mains hum.                             |
| 0.02-0.1  | Faint hum, mostly masked by speech.       |
| > 0.1     | Clear ground loop or power interference.  |

Confidence is low when no frame was classified as speech: the SNR is then a guess.
*/

// NoiseMetrics contains noise floor, SNR and hum measurements.
type NoiseMetrics struct {
	NoiseFloor   float64    `json:"noise_floor"` // linear RMS of the pauses
	NoiseFloorDb float64    `json:"noise_floor_db"`
	SpeechLevel  float64    `json:"speech_level"` // linear RMS of the speech frames
	SNRDb        float64    `json:"snr_db"`
	HumRatio     float64    `json:"hum_ratio"`     // [0, 1]
	HumFrequency float64    `json:"hum_frequency"` // 50 or 60, whichever is stronger (0 when nothing was measured)
	SpeechRatio  float64    `json:"speech_ratio"`  // fraction of frames classified as speech
	Confidence   Confidence `json:"confidence"`
}

/*
Echo Interpretation

EchoScore is min(1, max(0, 4 * peak normalized autocorrelation)) over 80-200 ms lags.

| EchoScore | Interpretation                               |
|-----------|----------------------------------------------|
| < 0.2     | Dry, treated or small furnished room.        |
| 0.2-0.5   | Some room tone. Fine for calls.              |
| 0.5-0.8   | Roomy. Bare walls, hard floors.              |
| > 0.8     | Strong echo. Hall, bathroom, empty room.     |
*/

// EchoMetrics contains room echo measurements.
type EchoMetrics struct {
	EchoScore       float64    `json:"echo_score"` // [0, 1]
	PeakCorrelation float64    `json:"peak_correlation"`
	PeakLagMs       float64    `json:"peak_lag_ms"`
	Confidence      Confidence `json:"confidence"`
}

// Metrics groups every extractor's output for one buffer.
type Metrics struct {
	Level    LevelMetrics    `json:"level"`
	Clipping ClippingMetrics `json:"clipping"`
	Noise    NoiseMetrics    `json:"noise"`
	Echo     EchoMetrics     `json:"echo"`
}

// VADFrame is the classification of a single fixed-length frame.
type VADFrame struct {
	IsSpeech bool
	RMS      float64
}

// VADResult contains voice activity segmentation results.
type VADResult struct {
	Frames        []VADFrame
	FrameSamples  int
	SpeechRatio   float64 // speech frames / total frames
	MeanSpeechRMS float64
}

func (u UseCase) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (d DeviceType) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (d Dimension) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// SpecialState is a condition detected by the capture layer before grading.
// The zero value means the recording is gradable as is.
type SpecialState int

const (
	SpecialStateNone SpecialState = iota
	SpecialStateNoSpeech
	SpecialStateTooShort
	SpecialStateSilent
)

func (s SpecialState) String() string {
	switch s {
	case SpecialStateNone:
		return "none"
	case SpecialStateNoSpeech:
		return "no_speech"
	case SpecialStateTooShort:
		return "too_short"
	case SpecialStateSilent:
		return "silent"
	}

	return "unknown"
}

func (s SpecialState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Encoding is the sample layout of raw little-endian PCM.
type Encoding int

const (
	EncodingF32LE Encoding = iota
	EncodingS16LE
	EncodingS24LE
	EncodingS32LE
)

func (e Encoding) String() string {
	switch e {
	case EncodingF32LE:
		return "f32le"
	case EncodingS16LE:
		return "s16le"
	case EncodingS24LE:
		return "s24le"
	case EncodingS32LE:
		return "s32le"
	}

	return "unknown"
}

// BytesPerSample is the width of a single sample of one channel.
func (e Encoding) BytesPerSample() int {
	switch e {
	case EncodingS16LE:
		return 2
	case EncodingS24LE:
		return 3
	default:
		return 4
	}
}

// ParseEncoding converts a string to an Encoding value. Empty means f32le.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "f32le", "":
		return EncodingF32LE, nil
	case "s16le":
		return EncodingS16LE, nil
	case "s24le":
		return EncodingS24LE, nil
	case "s32le":
		return EncodingS32LE, nil
	default:
		return 0, fmt.Errorf("unknown encoding %q (valid: f32le, s16le, s24le, s32le)", s)
	}
}

// PCMFormat describes a raw PCM stream.
type PCMFormat struct {
	SampleRate int
	Encoding   Encoding
	Channels   int
}
