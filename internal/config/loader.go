package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadAirplane loads the airplane configuration.
// Search order: customPath -> ~/.airplane/configs/airplane.yaml -> ./configs/airplane.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadAirplane(customPath string) (AirplaneConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultAirplaneConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseAirplane(data)
		if err != nil {
			return DefaultAirplaneConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("airplane.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseAirplane(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "airplane.yaml")); err == nil {
		if cfg, err := parseAirplane(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseAirplane(defaultAirplaneYAML)
	if err != nil {
		return DefaultAirplaneConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseAirplane(data []byte) (AirplaneConfig, error) {
	cfg := DefaultAirplaneConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
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
	return filepath.Join(home, ".airplane", "configs", filename)
}

// ApplyAirplanePreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyAirplanePreset(cfg *AirplaneConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.SpeedStep = SpeedStepForPreset(preset)
}
