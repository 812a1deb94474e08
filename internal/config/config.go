// Package config holds the canonical threshold tables, one profile per use case, and the YAML
// loader that overrides them.
//
//nolint:staticcheck // too dumb on Db vs. DB
package config

import "github.com/farcloser/micdoctor/internal/types"

// Level bounds are RMS dBFS. Target +/- Tolerance/2 scores 5 stars, +/- Tolerance scores 4.
type Level struct {
	TargetDb     float64 `yaml:"target_db"`
	ToleranceDb  float64 `yaml:"tolerance_db"`
	WarnLowDb    float64 `yaml:"warn_low_db"`
	WarnHighDb   float64 `yaml:"warn_high_db"`
	SevereLowDb  float64 `yaml:"severe_low_db"`
	SevereHighDb float64 `yaml:"severe_high_db"`
}

// Clipping ratios are fractions of samples. Exceeding WarnRatio fails the level dimension.
type Clipping struct {
	WarnRatio   float64 `yaml:"warn_ratio"`
	SevereRatio float64 `yaml:"severe_ratio"`
}

// Noise tiers are SNR lower bounds in dB, best first.
type Noise struct {
	ExcellentSNRDb float64 `yaml:"excellent_snr_db"`
	GoodSNRDb      float64 `yaml:"good_snr_db"`
	FairSNRDb      float64 `yaml:"fair_snr_db"`
	PoorSNRDb      float64 `yaml:"poor_snr_db"`
	SevereLowSNRDb float64 `yaml:"severe_low_snr_db"`
	HumWarnRatio   float64 `yaml:"hum_warn_ratio"`
}

// Echo scores are in [0, 1].
type Echo struct {
	WarnScore   float64 `yaml:"warn_score"`
	SevereScore float64 `yaml:"severe_score"`
}

// Profile is the full threshold set for one use case.
type Profile struct {
	Level    Level    `yaml:"level"`
	Clipping Clipping `yaml:"clipping"`
	Noise    Noise    `yaml:"noise"`
	Echo     Echo     `yaml:"echo"`
}

// Profiles holds one profile per use case. It is a plain value: copies never alias.
type Profiles struct {
	Meetings  Profile `yaml:"meetings"`
	Podcast   Profile `yaml:"podcast"`
	Streaming Profile `yaml:"streaming"`
	VoiceNote Profile `yaml:"voice_note"`
}

// For returns the profile of a use case. Unknown values get the meetings profile.
func (p Profiles) For(useCase types.UseCase) Profile {
	switch useCase {
	case types.UseCasePodcast:
		return p.Podcast
	case types.UseCaseStreaming:
		return p.Streaming
	case types.UseCaseVoiceNote:
		return p.VoiceNote
	default:
		return p.Meetings
	}
}

// WithDefaults returns p with every unset profile taken from defaults.
func (p Profiles) WithDefaults(defaults Profiles) Profiles {
	fill := func(dst *Profile, src Profile) {
		if *dst == (Profile{}) {
			*dst = src
		}
	}

	fill(&p.Meetings, defaults.Meetings)
	fill(&p.Podcast, defaults.Podcast)
	fill(&p.Streaming, defaults.Streaming)
	fill(&p.VoiceNote, defaults.VoiceNote)

	return p
}

//nolint:gochecknoglobals // canonical table, read-only
var canonical = Profiles{
	Meetings: Profile{
		Level:    Level{TargetDb: -20, ToleranceDb: 6, WarnLowDb: -32, WarnHighDb: -10, SevereLowDb: -45, SevereHighDb: -5},
		Clipping: Clipping{WarnRatio: 0.001, SevereRatio: 0.01},
		Noise: Noise{
			ExcellentSNRDb: 25, GoodSNRDb: 18, FairSNRDb: 12, PoorSNRDb: 6, SevereLowSNRDb: 3,
			HumWarnRatio: 0.10,
		},
		Echo: Echo{WarnScore: 0.5, SevereScore: 0.8},
	},
	Podcast: Profile{
		Level:    Level{TargetDb: -18, ToleranceDb: 4, WarnLowDb: -28, WarnHighDb: -10, SevereLowDb: -40, SevereHighDb: -5},
		Clipping: Clipping{WarnRatio: 0.0005, SevereRatio: 0.005},
		Noise: Noise{
			ExcellentSNRDb: 35, GoodSNRDb: 28, FairSNRDb: 20, PoorSNRDb: 12, SevereLowSNRDb: 6,
			HumWarnRatio: 0.05,
		},
		Echo: Echo{WarnScore: 0.35, SevereScore: 0.6},
	},
	Streaming: Profile{
		Level:    Level{TargetDb: -18, ToleranceDb: 5, WarnLowDb: -30, WarnHighDb: -8, SevereLowDb: -42, SevereHighDb: -4},
		Clipping: Clipping{WarnRatio: 0.001, SevereRatio: 0.01},
		Noise: Noise{
			ExcellentSNRDb: 30, GoodSNRDb: 22, FairSNRDb: 15, PoorSNRDb: 8, SevereLowSNRDb: 4,
			HumWarnRatio: 0.08,
		},
		Echo: Echo{WarnScore: 0.45, SevereScore: 0.7},
	},
	VoiceNote: Profile{
		Level:    Level{TargetDb: -22, ToleranceDb: 8, WarnLowDb: -36, WarnHighDb: -8, SevereLowDb: -50, SevereHighDb: -4},
		Clipping: Clipping{WarnRatio: 0.002, SevereRatio: 0.02},
		Noise: Noise{
			ExcellentSNRDb: 20, GoodSNRDb: 14, FairSNRDb: 9, PoorSNRDb: 4, SevereLowSNRDb: 2,
			HumWarnRatio: 0.15,
		},
		Echo: Echo{WarnScore: 0.6, SevereScore: 0.9},
	},
}

// Default returns the canonical profiles.
func Default() Profiles {
	return canonical
}
