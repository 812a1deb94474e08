package micdoctor

import (
	"github.com/farcloser/micdoctor/internal/types"
	"github.com/farcloser/micdoctor/internal/verdict"
)

type (
	Context      = types.Context
	UseCase      = types.UseCase
	Mode         = types.Mode
	DeviceType   = types.DeviceType
	Dimension    = types.Dimension
	Metrics      = types.Metrics
	SpecialState = types.SpecialState
	Verdict      = verdict.Verdict
)

const (
	UseCaseMeetings  = types.UseCaseMeetings
	UseCasePodcast   = types.UseCasePodcast
	UseCaseStreaming = types.UseCaseStreaming
	UseCaseVoiceNote = types.UseCaseVoiceNote

	ModeSingle = types.ModeSingle
	ModeBasic  = types.ModeBasic
	ModePro    = types.ModePro

	DeviceUnknown   = types.DeviceUnknown
	DeviceLaptop    = types.DeviceLaptop
	DeviceDesktop   = types.DeviceDesktop
	DeviceMobile    = types.DeviceMobile
	DeviceUSBMic    = types.DeviceUSBMic
	DeviceHeadset   = types.DeviceHeadset
	DeviceBluetooth = types.DeviceBluetooth
	DeviceBuiltIn   = types.DeviceBuiltIn
	DeviceOther     = types.DeviceOther

	DimensionLevel = types.DimensionLevel
	DimensionNoise = types.DimensionNoise
	DimensionEcho  = types.DimensionEcho

	SpecialStateNone     = types.SpecialStateNone
	SpecialStateNoSpeech = types.SpecialStateNoSpeech
	SpecialStateTooShort = types.SpecialStateTooShort
	SpecialStateSilent   = types.SpecialStateSilent
)

// Recommendation is the single most useful thing to fix.
type Recommendation struct {
	Issue   *Dimension `json:"issue"`
	FixTag  string     `json:"fix_tag,omitempty"`
	StepKey string     `json:"step_key,omitempty"`
}

// Summary is the result of one analysis.
type Summary struct {
	Verdict        *Verdict       `json:"verdict"`
	Metrics        Metrics        `json:"metrics"`
	Recommendation Recommendation `json:"recommendation"`
	SpecialState   SpecialState   `json:"special_state"`
}
