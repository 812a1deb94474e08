package advice

import (
	"github.com/farcloser/micdoctor/internal/types"
)

// FailureMode narrows a failing dimension to the specific problem the advice addresses.
type FailureMode string

const (
	ModeTooLow       FailureMode = "too_low"
	ModeTooHigh      FailureMode = "too_high"
	ModeClipping     FailureMode = "clipping"
	ModeGeneralNoise FailureMode = "general_noise"
	ModeConstantHum  FailureMode = "constant_hum"
	ModeRoomy        FailureMode = "roomy"
	ModeStrongEcho   FailureMode = "strong_echo"
)

// Wildcards for template keys.
const (
	AnyUseCase types.UseCase    = -1
	AnyDevice  types.DeviceType = -1
)

// Template is one row of the advice table.
type Template struct {
	Metric      types.Dimension
	FailureMode FailureMode
	UseCase     types.UseCase
	Device      types.DeviceType
	Steps       []string
}

// Hypothesis is one row of the low-certainty table: generic verification steps for a device.
type Hypothesis struct {
	Device types.DeviceType
	Steps  []string
}

// Lookup finds the template for a failure. Rows are tried most specific first: use case and device,
// use case only, device only, then the global row. Within a tier the first row in table order wins.
func Lookup(
	table []Template,
	metric types.Dimension,
	mode FailureMode,
	useCase types.UseCase,
	device types.DeviceType,
) (Template, bool) {
	tiers := [][2]bool{
		{true, true},
		{true, false},
		{false, true},
		{false, false},
	}

	for _, tier := range tiers {
		wantUseCase, wantDevice := AnyUseCase, AnyDevice
		if tier[0] {
			wantUseCase = useCase
		}

		if tier[1] {
			wantDevice = device
		}

		for _, row := range table {
			if row.Metric == metric && row.FailureMode == mode &&
				row.UseCase == wantUseCase && row.Device == wantDevice {
				return row, true
			}
		}
	}

	return Template{}, false
}

// LookupHypothesis returns the low-certainty steps for a device, falling back to the wildcard row.
func LookupHypothesis(table []Hypothesis, device types.DeviceType) (Hypothesis, bool) {
	for _, want := range []types.DeviceType{device, AnyDevice} {
		for _, row := range table {
			if row.Device == want {
				return row, true
			}
		}
	}

	return Hypothesis{}, false
}

// Templates returns a copy of the built-in advice table.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)

	return out
}

func global(metric types.Dimension, mode FailureMode, steps ...string) Template {
	return Template{Metric: metric, FailureMode: mode, UseCase: AnyUseCase, Device: AnyDevice, Steps: steps}
}

func forUseCase(metric types.Dimension, mode FailureMode, useCase types.UseCase, steps ...string) Template {
	return Template{Metric: metric, FailureMode: mode, UseCase: useCase, Device: AnyDevice, Steps: steps}
}

func forDevice(metric types.Dimension, mode FailureMode, device types.DeviceType, steps ...string) Template {
	return Template{Metric: metric, FailureMode: mode, UseCase: AnyUseCase, Device: device, Steps: steps}
}

func exact(
	metric types.Dimension,
	mode FailureMode,
	useCase types.UseCase,
	device types.DeviceType,
	steps ...string,
) Template {
	return Template{Metric: metric, FailureMode: mode, UseCase: useCase, Device: device, Steps: steps}
}

const (
	level = types.DimensionLevel
	noise = types.DimensionNoise
	echo  = types.DimensionEcho
)

//nolint:gochecknoglobals // read-only table
var templates = []Template{
	// Level, too low.
	exact(level, ModeTooLow, types.UseCasePodcast, types.DeviceUSBMic,
		PositionMicAtMouthLevel, MoveCloserToMic, RaiseInputGain, DisableAGC),
	forUseCase(level, ModeTooLow, types.UseCasePodcast,
		MoveCloserToMic, SpeakUp, RaiseInputGain, DisableAGC),
	forDevice(level, ModeTooLow, types.DeviceMobile,
		HoldPhoneCloser, CheckMicNotCovered, SpeakUp),
	forDevice(level, ModeTooLow, types.DeviceHeadset,
		PositionMicAtMouthLevel, RaiseInputGain, CheckCorrectMicSelected),
	forDevice(level, ModeTooLow, types.DeviceBluetooth,
		SpeakUp, UseWiredConnection, CheckCorrectMicSelected, SwitchBluetoothToHandsFree),
	forDevice(level, ModeTooLow, types.DeviceLaptop,
		MoveCloserToMic, SpeakUp, RaiseInputGain, CheckCorrectMicSelected),
	global(level, ModeTooLow,
		MoveCloserToMic, SpeakUp, RaiseInputGain, DisableAGC, CheckCorrectMicSelected),

	// Level, too high.
	forUseCase(level, ModeTooHigh, types.UseCaseStreaming,
		MoveBackFromMic, LowerInputGain, UseLimiter),
	forDevice(level, ModeTooHigh, types.DeviceHeadset,
		AngleMicOffAxis, MoveBackFromMic, LowerInputGain),
	global(level, ModeTooHigh,
		MoveBackFromMic, SpeakSofter, LowerInputGain, DisableAGC),

	// Level, clipping.
	exact(level, ModeClipping, types.UseCasePodcast, types.DeviceUSBMic,
		LowerInputGain, MoveBackFromMic, AngleMicOffAxis, UseLimiter),
	forUseCase(level, ModeClipping, types.UseCaseStreaming,
		UseLimiter, LowerInputGain, MoveBackFromMic, SpeakSofter),
	forDevice(level, ModeClipping, types.DeviceMobile,
		MoveBackFromMic, SpeakSofter, DisableAGC),
	global(level, ModeClipping,
		LowerInputGain, MoveBackFromMic, SpeakSofter, UseLimiter, DisableAGC),

	// Noise, broadband.
	exact(noise, ModeGeneralNoise, types.UseCaseVoiceNote, types.DeviceMobile,
		MoveToQuieterRoom, HoldPhoneCloser, EnableNoiseSuppression),
	forUseCase(noise, ModeGeneralNoise, types.UseCaseMeetings,
		ReduceBackgroundNoise, MoveCloserToMic, EnableNoiseSuppression, UseHeadphones),
	forUseCase(noise, ModeGeneralNoise, types.UseCasePodcast,
		ReduceBackgroundNoise, TurnOffFans, CloseWindowsDoors, MoveCloserToMic, ApplyHighPassFilter),
	forDevice(noise, ModeGeneralNoise, types.DeviceLaptop,
		CloseHeavyApps, MoveCloserToMic, ReduceBackgroundNoise, EnableNoiseSuppression),
	forDevice(noise, ModeGeneralNoise, types.DeviceMobile,
		ReduceBackgroundNoise, HoldPhoneCloser, EnableNoiseSuppression),
	forDevice(noise, ModeGeneralNoise, types.DeviceBluetooth,
		ReduceBackgroundNoise, CloseWindowsDoors, EnableNoiseSuppression),
	global(noise, ModeGeneralNoise,
		ReduceBackgroundNoise, CloseWindowsDoors, TurnOffFans, EnableNoiseSuppression),

	// Noise, mains hum.
	forUseCase(noise, ModeConstantHum, types.UseCasePodcast,
		CheckCablesGrounding, MoveAwayFromPower, ApplyHumFilter, ApplyHighPassFilter),
	forDevice(noise, ModeConstantHum, types.DeviceDesktop,
		CheckCablesGrounding, TryDifferentUSBPort, ApplyHumFilter),
	forDevice(noise, ModeConstantHum, types.DeviceLaptop,
		UnplugCharger, MoveAwayFromPower, ApplyHumFilter),
	global(noise, ModeConstantHum,
		CheckCablesGrounding, MoveAwayFromPower, ApplyHumFilter),

	// Echo, roomy.
	forUseCase(echo, ModeRoomy, types.UseCaseMeetings,
		UseHeadphones, MoveCloserToMic, EnableEchoCancellation),
	forUseCase(echo, ModeRoomy, types.UseCasePodcast,
		AddSoftFurnishings, RecordAwayFromWalls, MoveCloserToMic),
	global(echo, ModeRoomy,
		AddSoftFurnishings, MoveCloserToMic, EnableEchoCancellation),

	// Echo, strong.
	forDevice(echo, ModeStrongEcho, types.DeviceMobile,
		MoveToSmallerRoom, HoldPhoneCloser, AddSoftFurnishings),
	forDevice(echo, ModeStrongEcho, types.DeviceHeadset,
		MoveToSmallerRoom, PositionMicAtMouthLevel, EnableEchoCancellation),
	global(echo, ModeStrongEcho,
		MoveToSmallerRoom, AddSoftFurnishings, RecordAwayFromWalls, MoveCloserToMic, EnableEchoCancellation),
}

//nolint:gochecknoglobals // read-only table
var hypotheses = []Hypothesis{
	{Device: types.DeviceBluetooth, Steps: []string{CheckCorrectMicSelected, CheckBatteryLevel, RecordTestClip}},
	{Device: types.DeviceMobile, Steps: []string{CheckMicNotCovered, CheckAppMicPermission, RecordTestClip}},
	{Device: types.DeviceLaptop, Steps: []string{CheckCorrectMicSelected, CheckMicNotMuted, SpeakContinuously}},
	{Device: types.DeviceBuiltIn, Steps: []string{CheckCorrectMicSelected, CheckMicNotMuted, SpeakContinuously}},
	{Device: types.DeviceUSBMic, Steps: []string{CheckMicNotMuted, CheckCorrectMicSelected, RecordTestClip}},
	{Device: types.DeviceHeadset, Steps: []string{CheckMicNotMuted, CheckCorrectMicSelected}},
	{Device: AnyDevice, Steps: []string{CheckCorrectMicSelected, CheckMicNotMuted, RecordTestClip}},
}
