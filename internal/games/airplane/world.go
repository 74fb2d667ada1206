package airplane

import "github.com/PabloKostenko/airplane/internal/core"

// Obstacle is a cloud the airplane must avoid.
type Obstacle struct {
	Position core.Vec2
	Visible  bool
}

// FuelPickup is a collectible worth points. A collected pickup stays in the
// list, invisible, until it scrolls off and is replaced.
type FuelPickup struct {
	Position core.Vec2
	Visible  bool
}

// World is the complete mutable state of one round.
type World struct {
	Width  float64
	Height float64

	Airplane  core.Vec2
	Obstacles []Obstacle
	Fuels     []FuelPickup

	Elapsed         float64 // Seconds survived
	Score           int
	SpeedMultiplier float64
	GameOver        bool
	JustCollected   bool // Raised on collect, cleared by the renderer

	// Best-of records, committed on game over and reset.
	HighScore       int
	LongestPlayTime float64
}

// Snapshot is a read-only copy of the world for renderers and spectators.
// Only visible objects are included.
type Snapshot struct {
	Width           float64     `json:"width"`
	Height          float64     `json:"height"`
	Airplane        core.Vec2   `json:"airplane"`
	Obstacles       []core.Vec2 `json:"obstacles"`
	Fuels           []core.Vec2 `json:"fuels"`
	Score           int         `json:"score"`
	Elapsed         float64     `json:"elapsed"`
	SpeedMultiplier float64     `json:"speed_multiplier"`
	GameOver        bool        `json:"game_over"`
	JustCollected   bool        `json:"just_collected"`
	HighScore       int         `json:"high_score"`
	LongestPlayTime float64     `json:"longest_play_time"`
}

func (w *World) snapshot() Snapshot {
	s := Snapshot{
		Width:           w.Width,
		Height:          w.Height,
		Airplane:        w.Airplane,
		Obstacles:       make([]core.Vec2, 0, len(w.Obstacles)),
		Fuels:           make([]core.Vec2, 0, len(w.Fuels)),
		Score:           w.Score,
		Elapsed:         w.Elapsed,
		SpeedMultiplier: w.SpeedMultiplier,
		GameOver:        w.GameOver,
		JustCollected:   w.JustCollected,
		HighScore:       w.HighScore,
		LongestPlayTime: w.LongestPlayTime,
	}
	for _, o := range w.Obstacles {
		if o.Visible {
			s.Obstacles = append(s.Obstacles, o.Position)
		}
	}
	for _, f := range w.Fuels {
		if f.Visible {
			s.Fuels = append(s.Fuels, f.Position)
		}
	}
	return s
}
