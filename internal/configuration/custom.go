package configuration

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// customOverrides mirrors the YAML override file. Every field is optional;
// nil means "keep the preset value".
type customOverrides struct {
	RightHand map[string]*distancesOverride `yaml:"right_hand"`
	LeftHand  map[string]*distancesOverride `yaml:"left_hand"`
	Weights   map[int]*float64              `yaml:"weights"`
	Algorithm *algorithmOverride            `yaml:"algorithm"`
}

type distancesOverride struct {
	MinPrac *int `yaml:"min_prac"`
	MinComf *int `yaml:"min_comf"`
	MinRel  *int `yaml:"min_rel"`
	MaxRel  *int `yaml:"max_rel"`
	MaxComf *int `yaml:"max_comf"`
	MaxPrac *int `yaml:"max_prac"`
}

type algorithmOverride struct {
	BeamWidth            *int `yaml:"beam_width"`
	ILSIterations        *int `yaml:"ils_iterations"`
	PerturbationStrength *int `yaml:"perturbation_strength"`
}

func (o *distancesOverride) apply(d *FingerPairDistances) {
	if o.MinPrac != nil {
		d.MinPrac = *o.MinPrac
	}
	if o.MinComf != nil {
		d.MinComf = *o.MinComf
	}
	if o.MinRel != nil {
		d.MinRel = *o.MinRel
	}
	if o.MaxRel != nil {
		d.MaxRel = *o.MaxRel
	}
	if o.MaxComf != nil {
		d.MaxComf = *o.MaxComf
	}
	if o.MaxPrac != nil {
		d.MaxPrac = *o.MaxPrac
	}
}

func applyMatrixOverrides(m *DistanceMatrix, overrides map[string]*distancesOverride) error {
	for name, o := range overrides {
		if o == nil {
			continue
		}
		pair, err := ParseFingerPair(name)
		if err != nil {
			return err
		}
		o.apply(&m[pair])
	}
	return nil
}

// LoadCustom reads a YAML override file and applies it on top of the named
// hand size preset. Pairs, weights and algorithm parameters not mentioned in
// the file keep their preset values. The merged result is validated as a
// whole.
func LoadCustom(preset string, path string) (Config, error) {
	cfg, err := LoadPreset(preset)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading custom config: %w", err)
	}

	var overrides customOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Config{}, fmt.Errorf("error unmarshaling custom config: %w", err)
	}

	if err := applyMatrixOverrides(&cfg.RightHand, overrides.RightHand); err != nil {
		return Config{}, err
	}
	if err := applyMatrixOverrides(&cfg.LeftHand, overrides.LeftHand); err != nil {
		return Config{}, err
	}

	for n, w := range overrides.Weights {
		if w == nil {
			continue
		}
		if n < 1 || n > RuleCount {
			return Config{}, NewConfigurationError(fmt.Sprintf("unknown rule number %d", n))
		}
		cfg.Weights[n-1] = *w
	}

	if a := overrides.Algorithm; a != nil {
		if a.BeamWidth != nil {
			cfg.Algorithm.BeamWidth = *a.BeamWidth
		}
		if a.ILSIterations != nil {
			cfg.Algorithm.ILSIterations = *a.ILSIterations
		}
		if a.PerturbationStrength != nil {
			cfg.Algorithm.PerturbationStrength = *a.PerturbationStrength
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
