// Package tui provides the Bubble Tea integration for the airplane game.
// It handles the terminal UI loop, input mapping, and screen orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg triggers a motion/collision step. Gen ties it to the game model
// that scheduled it; ticks from an earlier model are dropped.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

// AccrueMsg triggers a score/time step.
type AccrueMsg struct {
	Time time.Time
	Gen  uint64
}

// FlashMsg ends the collect highlight.
type FlashMsg struct {
	Gen uint64
}

var generation atomic.Uint64

func nextGeneration() uint64 {
	return generation.Add(1)
}

// flashDuration is how long the airplane stays highlighted after a pickup.
const flashDuration = 100 * time.Millisecond

// tickCmd returns a command that sends a TickMsg after interval.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}

// accrueCmd returns a command that sends an AccrueMsg after interval.
func accrueCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return AccrueMsg{Time: t, Gen: gen}
	})
}

func flashCmd(gen uint64) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return FlashMsg{Gen: gen}
	})
}
