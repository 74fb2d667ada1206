// Package airplane implements a side-scrolling airplane game.
// The player steers a plane up and down, avoiding clouds and collecting
// fuel while the scroll speed ramps up every second.
package airplane

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/PabloKostenko/airplane/internal/config"
	"github.com/PabloKostenko/airplane/internal/core"
	"github.com/PabloKostenko/airplane/internal/registry"
)

// hudRows is the number of terminal rows above the playfield.
const hudRows = 1

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// logger receives config load warnings.
var logger = log.New(io.Discard)

// SetLogger routes the game's warnings to l. A nil l silences them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game adapts the Engine to the terminal platform: it maps cells to world
// units and turns engine signals into step events.
type Game struct {
	engine   *Engine
	cfg      config.AirplaneConfig
	runtime  core.RuntimeConfig
	recorder core.Recorder
	paused   bool
	events   []core.Event
}

// New creates a new airplane game instance.
func New() *Game {
	return &Game{cfg: config.DefaultAirplaneConfig()}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "airplane"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Airplane"
}

// Reset loads the config and starts a fresh round sized to the screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.engine != nil {
		g.engine.CommitRecords()
	}
	g.runtime = runtime

	cfg, err := config.LoadAirplane(configPath)
	if err != nil {
		logger.Warn("using default airplane config", "path", configPath, "error", err)
		cfg = config.DefaultAirplaneConfig()
	}
	config.ApplyAirplanePreset(&cfg, difficultyPreset)
	g.cfg = cfg

	g.engine = NewEngine(cfg, runtime.Seed)
	g.engine.SetListener(g)
	g.engine.SetRecorder(g.recorder)
	g.engine.Initialize(g.worldSize())
	g.paused = false
	g.events = g.events[:0]
}

// worldSize converts the playfield (screen minus HUD) to world units.
func (g *Game) worldSize() (float64, float64) {
	cols := g.runtime.ScreenW
	rows := g.runtime.ScreenH - hudRows
	return float64(cols) * g.cfg.Render.CellWidth, float64(rows) * g.cfg.Render.CellHeight
}

// SetRecorder attaches the persistence collaborator. Takes effect
// immediately when a round is running.
func (g *Game) SetRecorder(r core.Recorder) {
	g.recorder = r
	if g.engine != nil {
		g.engine.SetRecorder(r)
	}
}

// Cadence returns the motion and accrue intervals from the config.
func (g *Game) Cadence() (time.Duration, time.Duration) {
	step := time.Duration(g.cfg.Motion.TickMillis) * time.Millisecond
	if step <= 0 {
		step = 100 * time.Millisecond
	}
	accrue := time.Duration(g.cfg.Motion.AccrueMillis) * time.Millisecond
	if accrue <= 0 {
		accrue = time.Second
	}
	return step, accrue
}

// Step advances the game by one motion tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine.GameOver() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionUp) {
		g.engine.NudgeAirplane(-g.cfg.Render.SteerStep)
	}
	if in.Has(core.ActionDown) {
		g.engine.NudgeAirplane(g.cfg.Render.SteerStep)
	}

	g.events = g.events[:0]
	g.engine.Tick()
	if g.engine.GameOver() {
		g.engine.CommitRecords()
	}

	return core.StepResult{State: g.State(), Events: g.takeEvents()}
}

// Accrue advances the score/time clock by one interval.
func (g *Game) Accrue() core.StepResult {
	if !g.paused {
		g.engine.AccrueTime()
	}
	return core.StepResult{State: g.State()}
}

// Steer places the airplane at the center of a screen row.
func (g *Game) Steer(row int) {
	if g.paused {
		return
	}
	y := (float64(row-hudRows) + 0.5) * g.cfg.Render.CellHeight
	g.engine.SetAirplaneVertical(y)
}

// Restart commits records and begins a new round sized to cfg's screen,
// which may have changed since the last Reset.
func (g *Game) Restart(cfg core.RuntimeConfig) {
	if cfg.ScreenW > 0 && cfg.ScreenH > hudRows {
		g.runtime.ScreenW = cfg.ScreenW
		g.runtime.ScreenH = cfg.ScreenH
	}
	g.engine.Reset(g.worldSize())
	g.paused = false
}

// ClearFlash drops the collect highlight.
func (g *Game) ClearFlash() {
	g.engine.ClearJustCollected()
}

// OnGameOver implements Listener.
func (g *Game) OnGameOver() {
	g.events = append(g.events, core.EventHit)
}

// OnCollect implements Listener.
func (g *Game) OnCollect() {
	g.events = append(g.events, core.EventCollect)
}

func (g *Game) takeEvents() []core.Event {
	if len(g.events) == 0 {
		return nil
	}
	out := make([]core.Event, len(g.events))
	copy(out, g.events)
	g.events = g.events[:0]
	return out
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.engine.Snapshot()
	return core.GameState{
		Score:    s.Score,
		Elapsed:  s.Elapsed,
		GameOver: s.GameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns the engine snapshot.
func (g *Game) Snapshot() any {
	return g.engine.Snapshot()
}

// Register the game with the registry
func init() {
	registry.Register("airplane", func() registry.Game {
		return New()
	})
}
