package spinsys

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileSystem is the YAML shape of a persisted spin-system description.
type fileSystem struct {
	Name  string `yaml:"name"`
	Spins []struct {
		Label   string  `yaml:"label"`
		ShiftHz float64 `yaml:"shift_hz"`
	} `yaml:"spins"`
	Couplings []struct {
		A   int     `yaml:"a"`
		B   int     `yaml:"b"`
		JHz float64 `yaml:"j_hz"`
	} `yaml:"couplings"`
}

// Load reads a spin-system description from a YAML file.
func Load(path string) (System, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return System{}, fmt.Errorf("reading spin system: %w", err)
	}
	sys, err := Parse(data)
	if err != nil {
		return System{}, fmt.Errorf("parsing spin system %s: %w", path, err)
	}
	return sys, nil
}

// Parse decodes a YAML spin-system description.
func Parse(data []byte) (System, error) {
	var fs fileSystem
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return System{}, err
	}

	spins := make([]Spin, len(fs.Spins))
	for i, s := range fs.Spins {
		spins[i] = Spin{Label: s.Label, ShiftHz: s.ShiftHz}
	}
	couplings := make([]Coupling, len(fs.Couplings))
	for i, c := range fs.Couplings {
		couplings[i] = Coupling{A: c.A, B: c.B, JHz: c.JHz}
	}
	return New(fs.Name, spins, couplings)
}
