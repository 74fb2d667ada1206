package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/PabloKostenko/airplane/internal/audio"
	"github.com/PabloKostenko/airplane/internal/core"
	"github.com/PabloKostenko/airplane/internal/registry"
	"github.com/PabloKostenko/airplane/internal/settings"
	"github.com/PabloKostenko/airplane/internal/spectate"
	"github.com/PabloKostenko/airplane/internal/storage"
)

// Services bundles the collaborators shared by the screens of a session.
// Every field is optional.
type Services struct {
	Store    *storage.Store
	Settings *settings.Manager
	Bell     *audio.Bell
	Hub      *spectate.Hub
	Logger   *log.Logger
	Ended    <-chan struct{} // Closed when the session ends
}

func (s Services) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

// GameModel runs one game: two tick cadences, input, audio, persistence.
type GameModel struct {
	game        registry.Game
	screen      *core.Screen
	svc         Services
	recorder    *storage.Recorder
	config      core.RuntimeConfig
	inputFrame  core.InputFrame
	gameState   core.GameState
	keyMapper   *KeyMapper
	stepEvery   time.Duration
	accrueEvery time.Duration
	gen         uint64
	quitting    bool
	backToMenu  bool
	scoreSaved  bool // Whether the round has been added to the score history
}

// NewGameModel creates a game model and starts the first round.
func NewGameModel(game registry.Game, svc Services, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var recorder *storage.Recorder
	if svc.Store != nil {
		recorder = storage.NewRecorder(svc.Store, game.ID(), svc.logger())
		if svc.Ended != nil {
			recorder.CloseOn(svc.Ended)
		}
		game.SetRecorder(recorder)
	}
	game.Reset(cfg)
	step, accrue := game.Cadence()

	return GameModel{
		game:        game,
		screen:      core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:         svc,
		recorder:    recorder,
		config:      cfg,
		inputFrame:  core.NewInputFrame(),
		gameState:   game.State(),
		keyMapper:   NewKeyMapper(),
		stepEvery:   step,
		accrueEvery: accrue,
		gen:         nextGeneration(),
	}
}

// Init starts both cadences and the music.
func (m GameModel) Init() tea.Cmd {
	if m.svc.Bell != nil {
		m.svc.Bell.StartMusic()
	}
	return tea.Batch(tickCmd(m.stepEvery, m.gen), accrueCmd(m.accrueEvery, m.gen))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()

	case AccrueMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		m.gameState = m.game.Accrue().State
		m.publish()
		return m, accrueCmd(m.accrueEvery, m.gen)

	case FlashMsg:
		if msg.Gen == m.gen {
			m.game.ClearFlash()
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.stopMusic()
		m.quitting = true
		return m, nil
	}

	switch action {
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.stopMusic()
			m.backToMenu = true
			return m, nil
		}
		m.inputFrame.Set(core.ActionPause)
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.restart()
		}
	case core.ActionMusic:
		m.toggle(settings.Music)
	case core.ActionSound:
		m.toggle(settings.Sound)
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleMouse steers the airplane to the pointer row while dragging.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.gameState.GameOver {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft || msg.Button == tea.MouseButtonNone {
			m.game.Steer(msg.Y)
		}
	}
	return m, nil
}

// handleResize restarts the round on the new playfield.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// World size depends on the terminal, so a running round starts over.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}

	return m, nil
}

// handleTick processes one motion step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	var cmds []tea.Cmd
	for _, e := range result.Events {
		if m.svc.Bell != nil {
			m.svc.Bell.PlayEvent(e)
		}
		if e == core.EventCollect {
			cmds = append(cmds, flashCmd(m.gen))
		}
	}

	if m.gameState.GameOver && !wasOver {
		m.stopMusic()
		m.saveScore()
	}

	m.publish()
	cmds = append(cmds, tickCmd(m.stepEvery, m.gen))
	return m, tea.Batch(cmds...)
}

// saveScore adds the finished round to the score history, once.
func (m *GameModel) saveScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.recorder == nil || m.gameState.Score <= 0 {
		return
	}
	m.recorder.SaveRound(m.gameState.Score, m.gameState.Elapsed)
}

// restart begins a new round on the current terminal size.
func (m *GameModel) restart() {
	m.game.Restart(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.inputFrame.Clear()
	if m.svc.Bell != nil {
		m.svc.Bell.StartMusic()
	}
}

func (m *GameModel) toggle(name string) {
	if m.svc.Settings == nil {
		return
	}
	on := m.svc.Settings.Toggle(name)
	if name == settings.Music && m.svc.Bell != nil {
		if on && !m.gameState.GameOver {
			m.svc.Bell.StartMusic()
		} else {
			m.svc.Bell.StopMusic()
		}
	}
}

func (m *GameModel) stopMusic() {
	if m.svc.Bell != nil {
		m.svc.Bell.StopMusic()
	}
}

func (m *GameModel) publish() {
	if m.svc.Hub != nil {
		m.svc.Hub.Publish(m.game.Snapshot())
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".airplane", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.svc.logger().Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.logger().Warn("could not save screenshot", "error", err)
		return
	}
	m.svc.logger().Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Close waits for queued score writes and stops the recorder.
func (m GameModel) Close() {
	if m.recorder != nil {
		m.recorder.Close()
	}
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}
