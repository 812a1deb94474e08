package advice

import "github.com/farcloser/micdoctor/internal/types"

// Capabilities describes what a device lets the user change.
type Capabilities struct {
	CanReposition  bool
	HasGainControl bool
	HasCables      bool
	BuiltIn        bool
}

// CapabilitiesOf returns the capabilities of a device. Unknown and other devices are assumed fully adjustable.
func CapabilitiesOf(device types.DeviceType) Capabilities {
	switch device {
	case types.DeviceLaptop:
		return Capabilities{CanReposition: true, HasGainControl: true, BuiltIn: true}
	case types.DeviceDesktop, types.DeviceUSBMic, types.DeviceHeadset:
		return Capabilities{CanReposition: true, HasGainControl: true, HasCables: true}
	case types.DeviceMobile, types.DeviceBuiltIn:
		return Capabilities{CanReposition: true, BuiltIn: true}
	case types.DeviceBluetooth:
		return Capabilities{}
	default:
		return Capabilities{CanReposition: true, HasGainControl: true, HasCables: true}
	}
}

//nolint:gochecknoglobals // read-only
var builtInInterferenceChecks = []string{UnplugCharger, MoveAwayFromPower, TryDifferentUSBPort}

// ApplyDeviceConstraints filters and substitutes steps the device cannot act on.
// Duplicates created by substitution keep their first position.
func ApplyDeviceConstraints(keys []string, device types.DeviceType) []string {
	caps := CapabilitiesOf(device)
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))

	add := func(key string) {
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}

	for _, key := range keys {
		switch {
		case !caps.CanReposition && IsDistanceStep(key):
		case !caps.HasGainControl && IsGainStep(key):
		case key == CheckCablesGrounding && !caps.HasCables:
			if caps.BuiltIn {
				for _, sub := range builtInInterferenceChecks {
					add(sub)
				}
			}
		default:
			add(key)
		}
	}

	return out
}
