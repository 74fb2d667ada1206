package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PabloKostenko/airplane/internal/core"
	"github.com/PabloKostenko/airplane/internal/registry"
	"github.com/PabloKostenko/airplane/internal/storage"
)

// fakeGame is a scripted registry.Game.
type fakeGame struct {
	state      core.GameState
	next       []core.Event // Events returned by the next Step
	overNext   bool         // End the round on the next Step
	steps      int
	accrues    int
	restarts   int
	restartCfg core.RuntimeConfig
	flashes    int
	steered    []int
	lastInput  core.InputFrame
	recorder   core.Recorder
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastInput = core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			g.lastInput.Set(a)
		}
	}
	if g.overNext {
		g.state.GameOver = true
		g.overNext = false
	}
	events := g.next
	g.next = nil
	return core.StepResult{State: g.state, Events: events}
}

func (g *fakeGame) Accrue() core.StepResult {
	g.accrues++
	g.state.Score += 10
	g.state.Elapsed++
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Cadence() (time.Duration, time.Duration) {
	return 100 * time.Millisecond, time.Second
}

func (g *fakeGame) Steer(row int) { g.steered = append(g.steered, row) }
func (g *fakeGame) Restart(cfg core.RuntimeConfig) {
	g.restarts++
	g.restartCfg = cfg
	g.state = core.GameState{}
}
func (g *fakeGame) ClearFlash()                 { g.flashes++ }
func (g *fakeGame) SetRecorder(r core.Recorder) { g.recorder = r }
func (g *fakeGame) Render(dst *core.Screen)     { dst.Clear(); dst.DrawText(0, 0, "FAKE") }
func (g *fakeGame) State() core.GameState       { return g.state }
func (g *fakeGame) Snapshot() any               { return g.state }

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelTickForwardsInput(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, Services{}, testConfig)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, TickMsg{Gen: m.gen})

	if g.steps != 1 {
		t.Fatalf("steps = %d, want 1", g.steps)
	}
	if !g.lastInput.Has(core.ActionUp) {
		t.Error("up key not forwarded to Step")
	}

	m = update(t, m, TickMsg{Gen: m.gen})
	if g.lastInput.Has(core.ActionUp) {
		t.Error("input frame not cleared between ticks")
	}
}

func TestGameModelDropsStaleTicks(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, Services{}, testConfig)

	m = update(t, m, TickMsg{Gen: m.gen - 1})
	m = update(t, m, AccrueMsg{Gen: m.gen + 1})
	update(t, m, FlashMsg{Gen: m.gen + 1})

	if g.steps != 0 || g.accrues != 0 || g.flashes != 0 {
		t.Errorf("stale messages reached the game: steps=%d accrues=%d flashes=%d", g.steps, g.accrues, g.flashes)
	}
}

func TestGameModelAccrueAndFlash(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, Services{}, testConfig)

	m = update(t, m, AccrueMsg{Gen: m.gen})
	if g.accrues != 1 || m.State().Score != 10 {
		t.Errorf("accrue not applied: accrues=%d state=%+v", g.accrues, m.State())
	}

	g.next = []core.Event{core.EventCollect}
	next, cmd := m.Update(TickMsg{Gen: m.gen})
	m = next.(GameModel)
	if cmd == nil {
		t.Fatal("expected follow-up commands")
	}
	update(t, m, FlashMsg{Gen: m.gen})
	if g.flashes != 1 {
		t.Errorf("flashes = %d, want 1", g.flashes)
	}
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &fakeGame{}
	m := NewGameModel(g, Services{Store: store}, testConfig)
	if g.recorder == nil {
		t.Error("recorder not attached")
	}

	m = update(t, m, AccrueMsg{Gen: m.gen})
	g.overNext = true
	g.next = []core.Event{core.EventHit}
	m = update(t, m, TickMsg{Gen: m.gen})
	m = update(t, m, TickMsg{Gen: m.gen})
	m.recorder.Flush()

	scores, err := store.TopScores("fake", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 10 || scores[0].PlaySecs != 1 {
		t.Fatalf("scores = %+v, want one entry of 10 points / 1s", scores)
	}

	// Restart, then a second round ends.
	m = update(t, m, keyRunes("r"))
	if g.restarts != 1 {
		t.Fatalf("restarts = %d, want 1", g.restarts)
	}
	m = update(t, m, AccrueMsg{Gen: m.gen})
	g.overNext = true
	m = update(t, m, TickMsg{Gen: m.gen})
	m.Close()

	scores, _ = store.TopScores("fake", 10)
	if len(scores) != 2 {
		t.Errorf("scores after second round = %d, want 2", len(scores))
	}
}

func TestGameModelRestartUsesResizedScreen(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, Services{}, testConfig)

	g.overNext = true
	m = update(t, m, TickMsg{Gen: m.gen})
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	update(t, m, keyRunes("r"))

	if g.restarts != 1 {
		t.Fatalf("restarts = %d, want 1", g.restarts)
	}
	if g.restartCfg.ScreenW != 40 || g.restartCfg.ScreenH != 12 {
		t.Errorf("restart screen = %dx%d, want 40x12", g.restartCfg.ScreenW, g.restartCfg.ScreenH)
	}
}

func TestGameModelRestartOnlyWhenOver(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, Services{}, testConfig)

	update(t, m, keyRunes("r"))
	if g.restarts != 0 {
		t.Error("restart allowed during a running round")
	}
}

func TestGameModelMouseSteers(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, Services{}, testConfig)

	m = update(t, m, tea.MouseMsg{X: 3, Y: 7, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 3, Y: 9, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	update(t, m, tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if len(g.steered) != 2 || g.steered[0] != 7 || g.steered[1] != 9 {
		t.Errorf("steered = %v, want [7 9]", g.steered)
	}
}

func TestGameModelBackAndQuit(t *testing.T) {
	g := &fakeGame{}
	m := NewGameModel(g, Services{}, testConfig)

	// Esc during play pauses instead of leaving.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("esc during play should not leave the game")
	}

	g.state.Paused = true
	m = update(t, m, TickMsg{Gen: m.gen})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while paused should go back to menu")
	}

	m = update(t, m, keyRunes("q"))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit")
	}
}

func TestGameModelView(t *testing.T) {
	m := NewGameModel(&fakeGame{}, Services{}, testConfig)
	if !strings.Contains(m.View(), "FAKE") {
		t.Error("view does not contain the game frame")
	}
}
