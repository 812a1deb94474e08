package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/farcloser/micdoctor/internal/types"
)

// Load reads a YAML override file at path on top of the canonical profiles.
func Load(path string) (Profiles, error) {
	f, err := os.Open(path) //nolint:gosec // user-specified threshold file
	if err != nil {
		return Profiles{}, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	profiles, err := LoadFromReader(f)
	if err != nil {
		return Profiles{}, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return profiles, nil
}

// LoadFromReader decodes YAML overrides from r. Keys that are absent keep their canonical value.
func LoadFromReader(r io.Reader) (Profiles, error) {
	profiles := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&profiles); err != nil && !errors.Is(err, io.EOF) {
		return Profiles{}, fmt.Errorf("config: decode yaml: %w", err)
	}

	if err := Validate(profiles); err != nil {
		return Profiles{}, err
	}

	return profiles, nil
}

// Validate checks every profile for coherent bounds.
// It returns a joined error listing all validation failures found.
func Validate(profiles Profiles) error {
	var errs []error

	for _, useCase := range types.UseCases {
		errs = append(errs, validateProfile(useCase.String(), profiles.For(useCase))...)
	}

	return errors.Join(errs...)
}

func validateProfile(prefix string, p Profile) []error {
	var errs []error

	lvl := p.Level
	if lvl.ToleranceDb <= 0 {
		errs = append(errs, fmt.Errorf("%s.level.tolerance_db %.1f must be positive", prefix, lvl.ToleranceDb))
	}

	if !(lvl.SevereLowDb < lvl.WarnLowDb && lvl.WarnLowDb < lvl.TargetDb &&
		lvl.TargetDb < lvl.WarnHighDb && lvl.WarnHighDb < lvl.SevereHighDb) {
		errs = append(errs, fmt.Errorf(
			"%s.level bounds must satisfy severe_low < warn_low < target < warn_high < severe_high (got %.1f, %.1f, %.1f, %.1f, %.1f)",
			prefix, lvl.SevereLowDb, lvl.WarnLowDb, lvl.TargetDb, lvl.WarnHighDb, lvl.SevereHighDb,
		))
	}

	clip := p.Clipping
	if clip.WarnRatio <= 0 || clip.SevereRatio > 1 || clip.WarnRatio >= clip.SevereRatio {
		errs = append(errs, fmt.Errorf(
			"%s.clipping ratios must satisfy 0 < warn_ratio < severe_ratio <= 1 (got %g, %g)",
			prefix, clip.WarnRatio, clip.SevereRatio,
		))
	}

	nse := p.Noise
	if !(nse.ExcellentSNRDb > nse.GoodSNRDb && nse.GoodSNRDb > nse.FairSNRDb &&
		nse.FairSNRDb > nse.PoorSNRDb && nse.PoorSNRDb >= nse.SevereLowSNRDb) {
		errs = append(errs, fmt.Errorf(
			"%s.noise tiers must be strictly descending with severe_low_snr_db <= poor_snr_db", prefix,
		))
	}

	if nse.HumWarnRatio <= 0 || nse.HumWarnRatio > 1 {
		errs = append(errs, fmt.Errorf("%s.noise.hum_warn_ratio %g is out of range (0, 1]", prefix, nse.HumWarnRatio))
	}

	ech := p.Echo
	if ech.WarnScore <= 0 || ech.SevereScore > 1 || ech.WarnScore >= ech.SevereScore {
		errs = append(errs, fmt.Errorf(
			"%s.echo scores must satisfy 0 < warn_score < severe_score <= 1 (got %g, %g)",
			prefix, ech.WarnScore, ech.SevereScore,
		))
	}

	return errs
}
