package airplane

import (
	"math"

	"github.com/PabloKostenko/airplane/internal/config"
	"github.com/PabloKostenko/airplane/internal/core"
)

// Listener receives one-shot gameplay signals. Calls happen synchronously
// inside Tick and must return quickly.
type Listener interface {
	OnGameOver()
	OnCollect()
}

// Engine owns the world state and advances it when told to.
// It has no timers and no locks: Tick, AccrueTime and SetAirplaneVertical
// must be called sequentially from a single goroutine.
//
// Screen dimensions <= 0 are not supported.
type Engine struct {
	cfg        config.AirplaneConfig
	difficulty *config.DifficultyManager
	spawner    *Spawner
	listener   Listener
	recorder   core.Recorder
	world      World
}

// NewEngine creates an engine with an empty world. Call Initialize before
// the first tick.
func NewEngine(cfg config.AirplaneConfig, seed int64) *Engine {
	e := &Engine{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	e.spawner = NewSpawner(seed, &e.cfg)
	e.world.SpeedMultiplier = 1.0
	return e
}

// SetListener registers the receiver of hit/collect signals. nil disables them.
func (e *Engine) SetListener(l Listener) {
	e.listener = l
}

// SetRecorder registers the persistence collaborator and loads the stored
// records into the world. nil disables persistence.
func (e *Engine) SetRecorder(r core.Recorder) {
	e.recorder = r
	if r == nil {
		return
	}
	high, longest := r.Records()
	if high > e.world.HighScore {
		e.world.HighScore = high
	}
	if longest > e.world.LongestPlayTime {
		e.world.LongestPlayTime = longest
	}
}

// Initialize starts a fresh round on a width x height playfield.
// Records carry over from the previous round.
func (e *Engine) Initialize(width, height float64) {
	high, longest := e.world.HighScore, e.world.LongestPlayTime

	e.world = World{
		Width:           width,
		Height:          height,
		Obstacles:       make([]Obstacle, 0, e.cfg.Spawn.ObstacleFloor),
		Fuels:           make([]FuelPickup, 0, e.cfg.Spawn.FuelFloor),
		SpeedMultiplier: 1.0,
		HighScore:       high,
		LongestPlayTime: longest,
	}
	e.world.Airplane = core.V(e.cfg.World.AirplaneX, height/2)
	e.clampAirplane()

	e.spawner.FillObstacles(&e.world)
	e.spawner.FillFuels(&e.world)
}

// Tick advances motion, respawns and collisions by one fine step.
func (e *Engine) Tick() {
	e.Advance(true)
}

// Advance is Tick with control over respawning. With spawn false, objects
// that scroll off are dropped without replacement.
func (e *Engine) Advance(spawn bool) {
	if e.world.GameOver {
		return
	}

	e.clampAirplane()

	dx := e.cfg.Motion.BaseSpeed * e.world.SpeedMultiplier
	for i := range e.world.Obstacles {
		e.world.Obstacles[i].Position.X -= dx
	}
	for i := range e.world.Fuels {
		e.world.Fuels[i].Position.X -= dx
	}

	e.despawn(spawn)
	e.checkCollisions()
}

// despawn removes objects past the left threshold and, if allowed, replaces
// each one immediately.
func (e *Engine) despawn(spawn bool) {
	limit := e.cfg.Motion.DespawnX

	obstacles := e.world.Obstacles[:0]
	for _, o := range e.world.Obstacles {
		if o.Position.X >= limit {
			obstacles = append(obstacles, o)
		}
	}
	droppedObstacles := len(e.world.Obstacles) - len(obstacles)
	e.world.Obstacles = obstacles

	fuels := e.world.Fuels[:0]
	for _, f := range e.world.Fuels {
		if f.Position.X >= limit {
			fuels = append(fuels, f)
		}
	}
	droppedFuels := len(e.world.Fuels) - len(fuels)
	e.world.Fuels = fuels

	if !spawn {
		return
	}
	for i := 0; i < droppedObstacles; i++ {
		e.spawner.SpawnObstacle(&e.world)
	}
	for i := 0; i < droppedFuels; i++ {
		e.spawner.SpawnFuel(&e.world)
	}
	e.spawner.FillObstacles(&e.world)
	e.spawner.FillFuels(&e.world)
}

// AccrueTime advances the coarse clock by one accrue interval: elapsed time,
// the speed multiplier, then the time bonus at the new multiplier.
func (e *Engine) AccrueTime() {
	if e.world.GameOver {
		return
	}

	e.world.Elapsed += e.accrueSeconds()
	e.world.SpeedMultiplier = e.difficulty.Next(e.world.SpeedMultiplier)
	e.world.Score += points(e.cfg.Scoring.TimePoints, e.world.SpeedMultiplier)
}

func (e *Engine) accrueSeconds() float64 {
	if e.cfg.Motion.AccrueMillis <= 0 {
		return 1
	}
	return float64(e.cfg.Motion.AccrueMillis) / 1000
}

// SetAirplaneVertical moves the airplane to y, clamped to the playfield band.
func (e *Engine) SetAirplaneVertical(y float64) {
	if e.world.GameOver {
		return
	}
	e.world.Airplane.Y = y
	e.clampAirplane()
}

// NudgeAirplane moves the airplane vertically by dy.
func (e *Engine) NudgeAirplane(dy float64) {
	e.SetAirplaneVertical(e.world.Airplane.Y + dy)
}

// CommitRecords stores the current score and elapsed time if they beat the
// records. Safe to call more than once per round.
func (e *Engine) CommitRecords() {
	if e.world.Score > e.world.HighScore {
		e.world.HighScore = e.world.Score
		if e.recorder != nil {
			e.recorder.PersistHighScore(e.world.HighScore)
		}
	}
	if e.world.Elapsed > e.world.LongestPlayTime {
		e.world.LongestPlayTime = e.world.Elapsed
		if e.recorder != nil {
			e.recorder.PersistLongestPlayTime(e.world.LongestPlayTime)
		}
	}
}

// Reset commits records and starts a new round.
func (e *Engine) Reset(width, height float64) {
	e.CommitRecords()
	e.Initialize(width, height)
}

// ClearJustCollected drops the collect flag once the renderer has shown it.
func (e *Engine) ClearJustCollected() {
	e.world.JustCollected = false
}

// Snapshot returns a read-only copy of the world.
func (e *Engine) Snapshot() Snapshot {
	return e.world.snapshot()
}

// GameOver reports whether the round has ended.
func (e *Engine) GameOver() bool {
	return e.world.GameOver
}

// Dimensions returns the playfield size of the current round.
func (e *Engine) Dimensions() (float64, float64) {
	return e.world.Width, e.world.Height
}

func (e *Engine) clampAirplane() {
	minY, maxY := verticalBounds(&e.world, &e.cfg)
	e.world.Airplane.Y = core.ClampF(e.world.Airplane.Y, minY, maxY)
}

// points scales a base value by the multiplier and floors it.
func points(base, multiplier float64) int {
	return int(math.Floor(base * multiplier))
}
