package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const configFile = "watersort.yaml"

// Load loads the watersort configuration.
// Search order: customPath -> ~/.watersort/configs/watersort.yaml ->
// ./configs/watersort.yaml -> embedded default.
// An explicit path must exist, parse and validate; the other locations are
// skipped when unreadable or invalid.
func Load(customPath string) (WaterSortConfig, string, error) {
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			return cfg, "", err
		}
		return cfg, customPath, nil
	}

	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		if cfg, err := LoadFile(path); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := Parse(defaultWaterSortYAML)
	if err != nil {
		return DefaultWaterSortConfig(), "", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "", nil
}

// LoadFile reads, parses and validates one config file.
func LoadFile(path string) (WaterSortConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WaterSortConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults and validates the result,
// so a file only needs the keys it changes.
func Parse(data []byte) (WaterSortConfig, error) {
	cfg := DefaultWaterSortConfig()
	// Profiles are replaced as a whole, not merged row by row.
	cfg.Profiles = nil

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = DefaultWaterSortConfig().Profiles
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".watersort", "configs", filename)
}
