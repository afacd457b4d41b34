package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads a settings file on top of Default: keys missing from the file
// keep their default value.
func Load(path string) (*Settings, error) {
	s := Default()
	if err := loadYAML(path, s); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

// Parse is Load for settings already in memory.
func Parse(b []byte) (*Settings, error) {
	s := Default()
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return s, nil
}
