package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PabloKostenko/airplane/internal/core"
	"github.com/PabloKostenko/airplane/internal/registry"
)

// SessionModel manages the full session flow between the menu and the
// game, settings, scores and about screens. It is the top-level model for
// both local and SSH sessions.
type SessionModel struct {
	svc      Services
	config   core.RuntimeConfig
	username string
	gameID   string
	screen   Screen
	single   bool // Leaving the start screen ends the session

	menu       MenuModel
	gameModel  *GameModel
	settings   SettingsModel
	about      AboutModel
	scoreboard ScoreboardModel

	quitting bool
}

// NewSessionModel creates a session that opens on start. gameID selects the
// game for ScreenGame and ScreenAbout starts; empty picks the first one.
// Any start other than ScreenMenu makes a single-screen session.
func NewSessionModel(svc Services, cfg core.RuntimeConfig, username string, start Screen, gameID string) SessionModel {
	if gameID == "" {
		if games := registry.List(); len(games) > 0 {
			gameID = games[0].ID
		}
	}
	m := SessionModel{
		svc:      svc,
		config:   cfg,
		username: username,
		gameID:   gameID,
		single:   start != ScreenMenu,
	}
	m.open(start)
	return m
}

// open switches to screen s, building a fresh sub-model.
// Returns the sub-model's init command.
func (m *SessionModel) open(s Screen) tea.Cmd {
	m.screen = s
	switch s {
	case ScreenGame:
		game, err := registry.Create(m.gameID)
		if err != nil {
			m.svc.logger().Error("cannot start game", "game", m.gameID, "error", err)
			return m.back()
		}
		gm := NewGameModel(game, m.svc, m.config)
		m.gameModel = &gm
		m.svc.logger().Info("round started", "user", m.username, "game", m.gameID)
		return gm.Init()
	case ScreenSettings:
		m.settings = NewSettingsModel(m.svc.Settings, m.config.ScreenW)
	case ScreenScores:
		m.scoreboard = NewScoreboardModel(m.svc.Store, m.gameID, m.config.ScreenW, m.config.ScreenH)
	case ScreenAbout:
		m.about = NewAboutModel(m.svc.Store, m.gameID, m.config.ScreenW)
	default:
		m.screen = ScreenMenu
		m.menu = NewMenuModel(m.config)
	}
	return nil
}

// back returns to the menu, or ends a single-screen session.
func (m *SessionModel) back() tea.Cmd {
	m.closeGame()
	if m.single {
		m.quitting = true
		return tea.Quit
	}
	return m.open(ScreenMenu)
}

// closeGame drops the game screen after flushing its writes.
func (m *SessionModel) closeGame() {
	if m.gameModel != nil {
		m.gameModel.Close()
		m.gameModel = nil
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == ScreenGame && m.gameModel != nil {
		return m.gameModel.Init()
	}
	return nil
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case ScreenGame:
		return m.updateGame(msg)
	case ScreenSettings:
		next, cmd := m.settings.Update(msg)
		m.settings = next.(SettingsModel)
		return m.after(m.settings.IsQuitting(), m.settings.Done(), cmd)
	case ScreenScores:
		next, cmd := m.scoreboard.Update(msg)
		m.scoreboard = next.(ScoreboardModel)
		return m.after(m.scoreboard.IsQuitting(), m.scoreboard.IsGoingBack(), cmd)
	case ScreenAbout:
		next, cmd := m.about.Update(msg)
		m.about = next.(AboutModel)
		return m.after(m.about.IsQuitting(), m.about.Done(), cmd)
	default:
		return m.updateMenu(msg)
	}
}

// after applies a sub-screen's exit flags.
func (m SessionModel) after(quit, done bool, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if quit {
		m.quitting = true
		return m, tea.Quit
	}
	if done {
		return m, m.back()
	}
	return m, cmd
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		m.config = m.menu.Config()
		if selected.GameID != "" {
			m.gameID = selected.GameID
		}
		return m, m.open(selected.Target)
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.gameModel.Update(msg)
	gm := next.(GameModel)
	m.gameModel = &gm

	if gm.IsQuitting() {
		m.closeGame()
		m.quitting = true
		return m, tea.Quit
	}

	if gm.BackToMenu() {
		return m, m.back()
	}

	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case ScreenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case ScreenSettings:
		return m.settings.View()
	case ScreenScores:
		return m.scoreboard.View()
	case ScreenAbout:
		return m.about.View()
	}
	return m.menu.View()
}

// Active returns the screen currently shown.
func (m SessionModel) Active() Screen {
	return m.screen
}

// Run starts a local Bubble Tea program on the given screen.
func Run(svc Services, cfg core.RuntimeConfig, start Screen, gameID string) error {
	model := NewSessionModel(svc, cfg, "local", start, gameID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag to steer
	)

	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.closeGame()
	}
	return err
}
