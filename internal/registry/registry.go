// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/PabloKostenko/airplane/internal/core"
)

// Game is the interface the terminal platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform owns the timers and calls Step and Accrue on two independent
// cadences from the same goroutine.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "airplane").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the game for the given screen, discarding any
	// round in progress after committing its records.
	Reset(cfg core.RuntimeConfig)

	// Step advances motion and collisions by one fine tick.
	Step(in core.InputFrame) core.StepResult

	// Accrue advances the coarse clock (time, speed, time bonus).
	Accrue() core.StepResult

	// Cadence returns the intervals at which Step and Accrue should run.
	Cadence() (step, accrue time.Duration)

	// Steer moves the player to the given screen row (pointer drag).
	Steer(row int)

	// Restart begins a new round after game over on cfg's screen, which
	// may differ from the one the finished round was sized to.
	Restart(cfg core.RuntimeConfig)

	// ClearFlash drops the transient collect highlight.
	ClearFlash()

	// SetRecorder attaches the persistence collaborator.
	SetRecorder(r core.Recorder)

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState

	// Snapshot returns a JSON-encodable read-only view of the world.
	Snapshot() any
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
