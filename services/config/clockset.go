package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"clockcode-go/types"
)

// LoadClockSetFile loads and validates a single clock set YAML file.
func LoadClockSetFile(path string) (*types.ClockSetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read clock set file: %w", err)
	}

	var cfg types.ClockSetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse clock set file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid clock set in %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadClockSetDir loads every *.yaml / *.yml file in dir, keyed by file
// name without extension. A missing directory is not an error, just no
// clock sets available.
func LoadClockSetDir(dir string) (map[string]*types.ClockSetConfig, error) {
	sets := make(map[string]*types.ClockSetConfig)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return sets, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read clock set directory %s: %w", dir, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, e.Name())
		cfg, err := LoadClockSetFile(path)
		if err != nil {
			return nil, err
		}
		sets[strings.TrimSuffix(e.Name(), ext)] = cfg
	}
	return sets, nil
}
