package registry

import (
	"testing"
	"time"

	"github.com/PabloKostenko/airplane/internal/core"
)

type stubGame struct{ id string }

func (g stubGame) ID() string                              { return g.id }
func (g stubGame) Title() string                           { return "Stub " + g.id }
func (g stubGame) Reset(core.RuntimeConfig)                {}
func (g stubGame) Step(core.InputFrame) core.StepResult    { return core.StepResult{} }
func (g stubGame) Accrue() core.StepResult                 { return core.StepResult{} }
func (g stubGame) Cadence() (time.Duration, time.Duration) { return time.Millisecond, time.Second }
func (g stubGame) Steer(int)                               {}
func (g stubGame) Restart(core.RuntimeConfig)              {}
func (g stubGame) ClearFlash()                             {}
func (g stubGame) SetRecorder(core.Recorder)               {}
func (g stubGame) Render(*core.Screen)                     {}
func (g stubGame) State() core.GameState                   { return core.GameState{} }
func (g stubGame) Snapshot() any                           { return nil }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_b", func() Game { return stubGame{id: "stub_b"} })
	Register("stub_a", func() Game { return stubGame{id: "stub_a"} })

	if !Exists("stub_a") || !Exists("stub_b") {
		t.Fatal("registered games not found")
	}
	if Exists("stub_missing") {
		t.Error("Exists reported an unregistered game")
	}

	g, err := Create("stub_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("ID() = %q, want stub_a", g.ID())
	}

	if _, err := Create("stub_missing"); err == nil {
		t.Error("Create() of unknown game should fail")
	}
}

func TestListSortedWithTitles(t *testing.T) {
	Register("stub_z", func() Game { return stubGame{id: "stub_z"} })
	Register("stub_y", func() Game { return stubGame{id: "stub_y"} })

	games := List()
	for i := 1; i < len(games); i++ {
		if games[i-1].ID >= games[i].ID {
			t.Fatalf("List() not sorted: %v", games)
		}
	}

	found := false
	for _, g := range games {
		if g.ID == "stub_y" {
			found = true
			if g.Title != "Stub stub_y" {
				t.Errorf("Title = %q, want %q", g.Title, "Stub stub_y")
			}
		}
	}
	if !found {
		t.Error("stub_y missing from List()")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func() Game { return stubGame{id: "stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("stub_dup", func() Game { return stubGame{id: "stub_dup"} })
}
