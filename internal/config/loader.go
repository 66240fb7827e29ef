package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the tuning file name looked up in the config directories.
const FileName = "passage.yaml"

// LoadPassage loads the game tuning.
// Search order: customPath -> ~/.passage/configs/passage.yaml -> ./configs/passage.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadPassage(customPath string) (PassageConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PassageConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return PassageConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultPassageYAML)
	if err != nil {
		return DefaultPassageConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the defaults and validates the result.
func parse(data []byte) (PassageConfig, error) {
	cfg := DefaultPassageConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PassageConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PassageConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".passage", "configs", filename)
}
