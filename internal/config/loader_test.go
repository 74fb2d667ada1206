package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseAirplane(GetDefaultYAML("airplane"))
	if err != nil {
		t.Fatalf("embedded YAML should parse: %v", err)
	}
	if cfg != DefaultAirplaneConfig() {
		t.Errorf("embedded defaults drifted from DefaultAirplaneConfig():\n got %+v\nwant %+v", cfg, DefaultAirplaneConfig())
	}
}

func TestLoadAirplaneCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airplane.yaml")
	data := []byte("motion:\n  base_speed: 8\nspawn:\n  obstacle_floor: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAirplane(path)
	if err != nil {
		t.Fatalf("LoadAirplane() failed: %v", err)
	}
	if cfg.Motion.BaseSpeed != 8 {
		t.Errorf("BaseSpeed = %v, expected 8", cfg.Motion.BaseSpeed)
	}
	if cfg.Spawn.ObstacleFloor != 7 {
		t.Errorf("ObstacleFloor = %d, expected 7", cfg.Spawn.ObstacleFloor)
	}
	// Unspecified keys keep defaults
	if cfg.Spawn.FuelFloor != 3 {
		t.Errorf("FuelFloor = %d, expected default 3", cfg.Spawn.FuelFloor)
	}
	if cfg.Collision.HalfExtent != 30 {
		t.Errorf("HalfExtent = %v, expected default 30", cfg.Collision.HalfExtent)
	}
}

func TestLoadAirplaneMissingCustomPath(t *testing.T) {
	cfg, err := LoadAirplane(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing custom config")
	}
	if cfg != DefaultAirplaneConfig() {
		t.Error("a failed load should still return usable defaults")
	}
}

func TestLoadAirplaneInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("motion: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAirplane(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestApplyAirplanePreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantStep    float64
	}{
		{DifficultyEasy, true, 0.05},
		{DifficultyNormal, true, 0.10},
		{DifficultyHard, true, 0.15},
		{DifficultyFixed, false, 0.10},
		{"", true, 0.10},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultAirplaneConfig()
			ApplyAirplanePreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.wantEnabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.wantEnabled)
			}
			if cfg.Difficulty.SpeedStep != tc.wantStep {
				t.Errorf("SpeedStep = %v, expected %v", cfg.Difficulty.SpeedStep, tc.wantStep)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("hard should parse")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown presets should parse to empty")
	}
}

func TestDifficultyManager(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{Enabled: true, SpeedStep: 0.10})
	if got := d.Next(1.0); got != 1.1 {
		t.Errorf("Next(1.0) = %v, expected 1.1", got)
	}

	d.SetEnabled(false)
	if d.IsEnabled() {
		t.Error("manager should report disabled")
	}
	if got := d.Next(1.5); got != 1.5 {
		t.Errorf("disabled ramp should not change multiplier, got %v", got)
	}

	neg := NewDifficultyManager(DifficultyConfig{Enabled: true, SpeedStep: -1})
	if neg.Next(1.0) != 1.0 {
		t.Error("negative steps should be ignored so the multiplier never drops below 1.0")
	}
}
