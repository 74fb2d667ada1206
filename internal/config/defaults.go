package config

import (
	_ "embed"
)

//go:embed defaults/airplane.yaml
var defaultAirplaneYAML []byte

// DefaultAirplaneConfig returns the default airplane configuration.
func DefaultAirplaneConfig() AirplaneConfig {
	return AirplaneConfig{
		World: AirplaneWorld{
			AirplaneX:     50,
			TopPadding:    50,
			BottomPadding: 50,
		},
		Motion: AirplaneMotion{
			BaseSpeed:    5,
			DespawnX:     -50,
			TickMillis:   100,
			AccrueMillis: 1000,
		},
		Spawn: AirplaneSpawn{
			ObstacleFloor:  5,
			FuelFloor:      3,
			ObstacleGapMin: 100,
			ObstacleGapMax: 200,
			FuelGapMin:     150,
			FuelGapMax:     300,
		},
		Collision: AirplaneCollision{
			HalfExtent: 30,
		},
		Scoring: AirplaneScoring{
			TimePoints: 10,
			FuelPoints: 50,
		},
		Render: AirplaneRender{
			CellWidth:  10,
			CellHeight: 20,
			SteerStep:  40,
		},
		Difficulty: DifficultyConfig{
			Enabled:   true,
			SpeedStep: 0.10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "airplane":
		return defaultAirplaneYAML
	default:
		return nil
	}
}
