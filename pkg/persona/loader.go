package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// registryFile is the on-disk override format. Any section left empty
// keeps the built-in table, so a file can override just the personas
// while inheriting the default handbook.
type registryFile struct {
	Personas         []Persona         `yaml:"personas"`
	AttackerPersonas []AttackerPersona `yaml:"attacker_personas"`
	Handbook         []HandbookEntry   `yaml:"handbook"`
}

// Load builds a registry from a YAML override file. An empty path
// returns the built-in registry unchanged.
func Load(path string) (*Registry, error) {
	reg := NewRegistry()
	if path == "" {
		return reg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read persona file %s: %w", path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse persona file %s: %w", path, err)
	}

	if len(file.Personas) > 0 {
		for _, p := range file.Personas {
			if p.ID == "" {
				return nil, fmt.Errorf("persona file %s: persona with empty id", path)
			}
		}
		reg.victims = file.Personas
	}
	if len(file.AttackerPersonas) > 0 {
		reg.attackers = file.AttackerPersonas
	}
	if len(file.Handbook) > 0 {
		reg.handbook = file.Handbook
	}
	return reg, nil
}
