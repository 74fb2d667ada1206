package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed for deterministic gameplay
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int     // Current score
	Elapsed  float64 // Seconds survived in the current round
	GameOver bool    // Whether the game has ended
	Paused   bool    // Whether the game is paused
}

// Event is a one-shot signal raised by a game during a tick.
type Event int

const (
	EventNone    Event = iota
	EventHit           // Fatal collision, the round is over
	EventCollect       // A pickup was collected
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventHit:
		return "hit"
	case EventCollect:
		return "collect"
	default:
		return "none"
	}
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the given event was raised during the tick.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}

// Recorder persists the two best-of records for a game.
// Implementations must not block; failures are theirs to report.
type Recorder interface {
	// Records returns the stored high score and longest play time in seconds.
	Records() (highScore int, longestPlayTime float64)
	PersistHighScore(value int)
	PersistLongestPlayTime(seconds float64)
}
