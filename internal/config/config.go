// Package config provides YAML-based game configuration loading and
// difficulty management for the airplane game.
package config

// AirplaneConfig contains all tuning for the airplane side-scroller.
// Distances are world units (screen points), not terminal cells.
type AirplaneConfig struct {
	World      AirplaneWorld     `yaml:"world"`
	Motion     AirplaneMotion    `yaml:"motion"`
	Spawn      AirplaneSpawn     `yaml:"spawn"`
	Collision  AirplaneCollision `yaml:"collision"`
	Scoring    AirplaneScoring   `yaml:"scoring"`
	Render     AirplaneRender    `yaml:"render"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// AirplaneWorld defines the playfield layout.
type AirplaneWorld struct {
	AirplaneX     float64 `yaml:"airplane_x"`     // Fixed horizontal position of the airplane
	TopPadding    float64 `yaml:"top_padding"`    // Lowest allowed Y
	BottomPadding float64 `yaml:"bottom_padding"` // Distance of the highest allowed Y from the bottom edge
}

// AirplaneMotion defines scrolling and cadence parameters.
type AirplaneMotion struct {
	BaseSpeed    float64 `yaml:"base_speed"`    // Units moved left per tick at multiplier 1.0
	DespawnX     float64 `yaml:"despawn_x"`     // Objects with x below this are removed
	TickMillis   int     `yaml:"tick_millis"`   // Motion/collision cadence
	AccrueMillis int     `yaml:"accrue_millis"` // Score/time cadence
}

// AirplaneSpawn defines how many objects stay in play and how far apart they spawn.
type AirplaneSpawn struct {
	ObstacleFloor  int     `yaml:"obstacle_floor"`
	FuelFloor      int     `yaml:"fuel_floor"`
	ObstacleGapMin float64 `yaml:"obstacle_gap_min"`
	ObstacleGapMax float64 `yaml:"obstacle_gap_max"`
	FuelGapMin     float64 `yaml:"fuel_gap_min"`
	FuelGapMax     float64 `yaml:"fuel_gap_max"`
}

// AirplaneCollision defines the bounding-box test.
type AirplaneCollision struct {
	HalfExtent float64 `yaml:"half_extent"`
}

// AirplaneScoring defines point values. Both are multiplied by the current
// speed multiplier and floored.
type AirplaneScoring struct {
	TimePoints float64 `yaml:"time_points"` // Awarded every accrue interval
	FuelPoints float64 `yaml:"fuel_points"` // Awarded per collected pickup
}

// AirplaneRender defines how world units map to terminal cells.
type AirplaneRender struct {
	CellWidth  float64 `yaml:"cell_width"`  // World units per terminal column
	CellHeight float64 `yaml:"cell_height"` // World units per terminal row
	SteerStep  float64 `yaml:"steer_step"`  // Units moved per up/down key press
}

// DifficultyConfig defines the linear speed ramp.
type DifficultyConfig struct {
	Enabled   bool    `yaml:"enabled"`
	SpeedStep float64 `yaml:"speed_step"` // Added to the speed multiplier every accrue interval
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// SpeedStepForPreset returns the per-second multiplier increase for a preset.
func SpeedStepForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.15
	default:
		return 0.10
	}
}

// IsFixedPreset returns true if the preset disables the speed ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
