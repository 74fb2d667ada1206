package airplane

import (
	"math"
	"math/rand"

	"github.com/PabloKostenko/airplane/internal/config"
	"github.com/PabloKostenko/airplane/internal/core"
)

// Spawner places new obstacles and pickups to the right of the playfield.
type Spawner struct {
	rng *rand.Rand
	cfg *config.AirplaneConfig
}

// NewSpawner creates a new spawner with the given RNG seed.
func NewSpawner(seed int64, cfg *config.AirplaneConfig) *Spawner {
	return &Spawner{
		rng: rand.New(rand.NewSource(seed)),
		cfg: cfg,
	}
}

// FillObstacles appends obstacles until the configured floor is reached.
func (s *Spawner) FillObstacles(w *World) {
	for len(w.Obstacles) < s.cfg.Spawn.ObstacleFloor {
		s.SpawnObstacle(w)
	}
}

// FillFuels appends pickups until the configured floor is reached.
func (s *Spawner) FillFuels(w *World) {
	for len(w.Fuels) < s.cfg.Spawn.FuelFloor {
		s.SpawnFuel(w)
	}
}

// SpawnObstacle appends one obstacle past the furthest existing obstacle.
func (s *Spawner) SpawnObstacle(w *World) {
	furthest, ok := math.Inf(-1), false
	for _, o := range w.Obstacles {
		furthest, ok = math.Max(furthest, o.Position.X), true
	}
	x := s.nextX(w, furthest, ok, s.cfg.Spawn.ObstacleGapMin, s.cfg.Spawn.ObstacleGapMax)

	w.Obstacles = append(w.Obstacles, Obstacle{
		Position: core.V(x, s.randomY(w)),
		Visible:  true,
	})
}

// SpawnFuel appends one pickup past the furthest existing pickup.
// Collected (invisible) pickups still count as existing.
func (s *Spawner) SpawnFuel(w *World) {
	furthest, ok := math.Inf(-1), false
	for _, f := range w.Fuels {
		furthest, ok = math.Max(furthest, f.Position.X), true
	}
	x := s.nextX(w, furthest, ok, s.cfg.Spawn.FuelGapMin, s.cfg.Spawn.FuelGapMax)

	w.Fuels = append(w.Fuels, FuelPickup{
		Position: core.V(x, s.randomY(w)),
		Visible:  true,
	})
}

// nextX anchors at the furthest object of a kind, or the right edge when
// there is none, and adds a random gap in [gapMin, gapMax).
func (s *Spawner) nextX(w *World, furthest float64, ok bool, gapMin, gapMax float64) float64 {
	anchor := w.Width
	if ok {
		anchor = furthest
	}
	return anchor + s.between(gapMin, gapMax)
}

// randomY picks a vertical position inside the airplane's band.
func (s *Spawner) randomY(w *World) float64 {
	minY, maxY := verticalBounds(w, s.cfg)
	return s.between(minY, maxY)
}

func (s *Spawner) between(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}

// verticalBounds returns [topPadding, height-bottomPadding].
func verticalBounds(w *World, cfg *config.AirplaneConfig) (float64, float64) {
	return cfg.World.TopPadding, w.Height - cfg.World.BottomPadding
}
