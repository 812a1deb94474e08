// Package gear is the read-only equipment catalog consulted when advice alone cannot fix a recording.
package gear

import (
	"slices"

	"github.com/farcloser/micdoctor/internal/types"
)

// Category is the issue a piece of gear addresses.
type Category string

const (
	CategoryLevel    Category = "level"
	CategoryClipping Category = "clipping"
	CategoryNoise    Category = "noise"
	CategoryHum      Category = "hum"
	CategoryEcho     Category = "echo"
)

// PriceTier is a coarse cost bucket.
type PriceTier string

const (
	PriceBudget  PriceTier = "budget"
	PriceMid     PriceTier = "mid"
	PricePremium PriceTier = "premium"
)

// Item is a catalog entry. Only tags are carried; names and links are resolved by the caller.
type Item struct {
	ID             string    `json:"id"`
	Category       Category  `json:"category"`
	NameTag        string    `json:"name_tag"`
	DescriptionTag string    `json:"description_tag"`
	PriceTier      PriceTier `json:"price_tier"`

	// Devices restricts the entry to these devices. Empty means any device not excluded.
	Devices []types.DeviceType `json:"-"`
	// Excludes lists devices the entry never applies to.
	Excludes []types.DeviceType `json:"-"`
}

func (it Item) matches(category Category, device types.DeviceType) bool {
	if it.Category != category || slices.Contains(it.Excludes, device) {
		return false
	}

	return len(it.Devices) == 0 || slices.Contains(it.Devices, device)
}

// Lookup returns the first catalog entry for a category that suits the device.
// Device-specific entries are listed before generic ones.
func Lookup(category Category, device types.DeviceType) (Item, bool) {
	for _, it := range catalog {
		if it.matches(category, device) {
			return it, true
		}
	}

	return Item{}, false
}

// All returns a copy of the catalog.
func All() []Item {
	return slices.Clone(catalog)
}

func item(id string, category Category, tier PriceTier) Item {
	return Item{
		ID:             id,
		Category:       category,
		NameTag:        "gear_" + id + "_name",
		DescriptionTag: "gear_" + id + "_description",
		PriceTier:      tier,
	}
}

func only(it Item, devices ...types.DeviceType) Item {
	it.Devices = devices

	return it
}

func except(it Item, devices ...types.DeviceType) Item {
	it.Excludes = devices

	return it
}

//nolint:gochecknoglobals // read-only catalog
var catalog = []Item{
	only(item("lavalier_mic", CategoryLevel, PriceBudget), types.DeviceMobile),
	only(item("boom_arm", CategoryLevel, PriceBudget), types.DeviceUSBMic),
	except(item("usb_dynamic_mic", CategoryLevel, PriceMid), types.DeviceUSBMic),

	only(item("inline_attenuator", CategoryClipping, PriceBudget), types.DeviceDesktop, types.DeviceOther),
	except(item("usb_mic_with_gain_knob", CategoryClipping, PriceMid), types.DeviceUSBMic),
	item("pop_filter", CategoryClipping, PriceBudget),

	only(item("wired_headset", CategoryNoise, PriceBudget), types.DeviceBluetooth),
	only(item("noise_cancelling_headset", CategoryNoise, PriceMid), types.DeviceHeadset),
	only(item("lavalier_mic", CategoryNoise, PriceBudget), types.DeviceMobile),
	item("usb_dynamic_mic", CategoryNoise, PriceMid),

	only(item("powered_usb_hub", CategoryHum, PriceBudget), types.DeviceLaptop, types.DeviceBuiltIn),
	except(item("ground_loop_isolator", CategoryHum, PriceBudget), types.DeviceBluetooth, types.DeviceMobile),

	only(item("lavalier_mic", CategoryEcho, PriceBudget), types.DeviceMobile),
	only(item("headset_mic", CategoryEcho, PriceBudget), types.DeviceLaptop, types.DeviceBuiltIn, types.DeviceDesktop),
	item("acoustic_panels", CategoryEcho, PricePremium),
}
