package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PabloKostenko/airplane/internal/settings"
)

// settingsRows lists the toggles shown on the settings screen.
var settingsRows = []struct {
	name  string
	label string
}{
	{settings.Music, "Music"},
	{settings.Sound, "Sound effects"},
}

// SettingsModel lets the player flip the music and sound toggles.
// Changes are saved immediately.
type SettingsModel struct {
	settings  *settings.Manager
	cursor    int
	width     int
	keyMapper *KeyMapper
	quitting  bool
	done      bool
}

// NewSettingsModel creates the settings screen. A nil manager shows
// defaults and ignores changes.
func NewSettingsModel(s *settings.Manager, width int) SettingsModel {
	return SettingsModel{
		settings:  s,
		width:     width,
		keyMapper: NewKeyMapper(),
	}
}

// Init implements tea.Model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation and toggling.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
		case MenuActionBack:
			m.done = true
		case MenuActionUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case MenuActionDown:
			if m.cursor < len(settingsRows)-1 {
				m.cursor++
			}
		case MenuActionSelect:
			if m.settings != nil {
				m.settings.Toggle(settingsRows[m.cursor].name)
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m SettingsModel) enabled(name string) bool {
	if m.settings == nil {
		return true
	}
	return m.settings.Enabled(name)
}

// View renders the toggles.
func (m SettingsModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SETTINGS"), m.width))
	b.WriteString("\n\n")

	for i, row := range settingsRows {
		state := "OFF"
		if m.enabled(row.name) {
			state = "ON "
		}
		line := "  " + padRight(row.label, 16) + state
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + padRight(row.label, 16) + state)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHintStyle.Render("Enter: Toggle  |  Esc: Back"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Done returns true once the player leaves the screen.
func (m SettingsModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user requested to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
