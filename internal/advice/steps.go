package advice

// Kind classifies a step by the effort it asks of the user. Steps are ordered by kind rank.
type Kind string

const (
	KindBehavioral   Kind = "behavioral"
	KindSoftware     Kind = "software"
	KindGearOptional Kind = "gear_optional"
)

// Rank orders kinds: behavioral, then software, then gear.
func (k Kind) Rank() int {
	switch k {
	case KindBehavioral:
		return 0
	case KindSoftware:
		return 1
	default:
		return 2
	}
}

// Step keys. Each key is a stable copy tag resolved by the caller.
const (
	MoveCloserToMic            = "move_closer_to_mic"
	MoveBackFromMic            = "move_back_from_mic"
	PositionMicAtMouthLevel    = "position_mic_at_mouth_level"
	HoldPhoneCloser            = "hold_phone_closer"
	AngleMicOffAxis            = "angle_mic_off_axis"
	RecordAwayFromWalls        = "record_away_from_walls"
	MoveToSmallerRoom          = "move_to_smaller_room"
	MoveToQuieterRoom          = "move_to_quieter_room"
	AddSoftFurnishings         = "add_soft_furnishings"
	ReduceBackgroundNoise      = "reduce_background_noise"
	CloseWindowsDoors          = "close_windows_doors"
	TurnOffFans                = "turn_off_fans"
	CloseHeavyApps             = "close_heavy_apps"
	SpeakUp                    = "speak_up"
	SpeakSofter                = "speak_softer"
	SpeakContinuously          = "speak_continuously"
	UseHeadphones              = "use_headphones"
	UseWiredConnection         = "use_wired_connection"
	CheckCablesGrounding       = "check_cables_grounding"
	UnplugCharger              = "unplug_charger"
	MoveAwayFromPower          = "move_away_from_power"
	TryDifferentUSBPort        = "try_different_usb_port"
	CheckMicNotMuted           = "check_mic_not_muted"
	CheckMicNotCovered         = "check_mic_not_covered"
	CheckBatteryLevel          = "check_battery_level"
	RecordTestClip             = "record_test_clip"
	RaiseInputGain             = "raise_input_gain"
	LowerInputGain             = "lower_input_gain"
	DisableAGC                 = "disable_agc"
	EnableNoiseSuppression     = "enable_noise_suppression"
	EnableEchoCancellation     = "enable_echo_cancellation"
	ApplyHighPassFilter        = "apply_high_pass_filter"
	ApplyHumFilter             = "apply_hum_filter"
	UseLimiter                 = "use_limiter"
	CheckCorrectMicSelected    = "check_correct_mic_selected"
	CheckAppMicPermission      = "check_app_mic_permission"
	SwitchBluetoothToHandsFree = "switch_bluetooth_to_hands_free"
)

//nolint:gochecknoglobals // read-only
var softwareSteps = map[string]bool{
	RaiseInputGain:             true,
	LowerInputGain:             true,
	DisableAGC:                 true,
	EnableNoiseSuppression:     true,
	EnableEchoCancellation:     true,
	ApplyHighPassFilter:        true,
	ApplyHumFilter:             true,
	UseLimiter:                 true,
	CheckCorrectMicSelected:    true,
	CheckAppMicPermission:      true,
	SwitchBluetoothToHandsFree: true,
}

// distanceSteps ask the user to move the microphone or themselves.
//
//nolint:gochecknoglobals // read-only
var distanceSteps = map[string]bool{
	MoveCloserToMic:         true,
	MoveBackFromMic:         true,
	PositionMicAtMouthLevel: true,
	HoldPhoneCloser:         true,
	AngleMicOffAxis:         true,
}

// gainSteps need an exposed input gain control.
//
//nolint:gochecknoglobals // read-only
var gainSteps = map[string]bool{
	RaiseInputGain: true,
	LowerInputGain: true,
}

// KindOf returns the kind of a step key. Unknown keys are behavioral.
func KindOf(key string) Kind {
	if softwareSteps[key] {
		return KindSoftware
	}

	return KindBehavioral
}

// IsDistanceStep reports whether a key asks for repositioning.
func IsDistanceStep(key string) bool {
	return distanceSteps[key]
}

// IsGainStep reports whether a key asks for a gain change.
func IsGainStep(key string) bool {
	return gainSteps[key]
}
