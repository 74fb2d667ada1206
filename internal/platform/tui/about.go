package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PabloKostenko/airplane/internal/core"
	"github.com/PabloKostenko/airplane/internal/storage"
)

var aboutBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(1, 3)

// AboutModel shows how to play and the stored records.
type AboutModel struct {
	highScore int
	longest   float64
	stats     *storage.GameStats
	width     int
	keyMapper *KeyMapper
	quitting  bool
	done      bool
}

// NewAboutModel loads the records for gameID. A nil store shows zeros.
func NewAboutModel(store *storage.Store, gameID string, width int) AboutModel {
	m := AboutModel{width: width, keyMapper: NewKeyMapper()}
	if store == nil {
		return m
	}
	if rec, err := store.Records(gameID); err == nil {
		m.highScore = rec.HighScore
		m.longest = rec.LongestPlaySecs
	}
	if stats, err := store.GetGameStats(gameID); err == nil {
		m.stats = stats
	}
	return m
}

// Init implements tea.Model.
func (m AboutModel) Init() tea.Cmd {
	return nil
}

// Update leaves the screen on back or select.
func (m AboutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
		case MenuActionBack, MenuActionSelect:
			m.done = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

// View renders the about box.
func (m AboutModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	var body strings.Builder
	body.WriteString(menuTitleStyle.Render("AIRPLANE"))
	body.WriteString("\n\n")
	body.WriteString("Fly right through the sky. Clouds end the flight,\n")
	body.WriteString("fuel cans are worth bonus points. Everything speeds\n")
	body.WriteString("up a little every second.\n\n")
	body.WriteString("Steer:   Up/Down, W/S or drag with the mouse\n")
	body.WriteString("Pause:   P    Restart: R    Music: M    Sound: N\n\n")
	body.WriteString(fmt.Sprintf("High score:        %d\n", m.highScore))
	body.WriteString(fmt.Sprintf("Longest play time: %s", core.FormatDuration(m.longest)))
	if m.stats != nil && m.stats.GamesCount > 0 {
		body.WriteString(fmt.Sprintf("\nFlights logged:    %d (%s total)",
			m.stats.GamesCount, core.FormatDuration(m.stats.TotalSecs)))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, aboutBoxStyle.Render(body.String())))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuHintStyle.Render("Esc: Back"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Done returns true once the player leaves the screen.
func (m AboutModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user requested to quit.
func (m AboutModel) IsQuitting() bool {
	return m.quitting
}
