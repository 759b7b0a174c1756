package config

// Preset files let a curation recipe (stride, offset, discovery rules) be
// checked in next to a dataset and shared across runs. Values from the
// preset apply on top of defaults; explicit CLI flags win over the preset.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Preset is the YAML shape of a curation preset file. Pointer fields
// distinguish "absent" from zero values.
type Preset struct {
	KeepEvery  *int     `yaml:"keep_every"`
	Offset     *int     `yaml:"offset"`
	Extensions []string `yaml:"extensions"`
	Separator  *string  `yaml:"separator"`
}

// LoadPreset reads and parses a preset file. A missing file is an error:
// presets are only consulted when explicitly requested via --preset.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return &p, nil
}

// Apply copies the preset's set fields into cfg, skipping any field whose
// flag name appears in setFlags (explicit CLI flags take precedence).
func (p *Preset) Apply(cfg *Config, setFlags map[string]bool) {
	if p.KeepEvery != nil && !setFlags["keep-every"] && !setFlags["n"] {
		cfg.KeepEvery = *p.KeepEvery
	}
	if p.Offset != nil && !setFlags["offset"] {
		cfg.Offset = *p.Offset
	}
	if len(p.Extensions) > 0 && !setFlags["extensions"] {
		cfg.Extensions = append([]string(nil), p.Extensions...)
	}
	if p.Separator != nil && !setFlags["separator"] {
		cfg.Separator = *p.Separator
	}
}
