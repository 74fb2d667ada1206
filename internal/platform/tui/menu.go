package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PabloKostenko/airplane/internal/core"
	"github.com/PabloKostenko/airplane/internal/registry"
)

// Screen identifies a top-level view of a session.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenGame
	ScreenSettings
	ScreenScores
	ScreenAbout
	ScreenQuit
)

// MenuItem represents a selectable entry in the main menu.
type MenuItem struct {
	Label  string
	Target Screen
	GameID string // Set for ScreenGame entries
}

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
	menuCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))
	menuHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// menuItemsRow is the screen row of the first item in View.
const menuItemsRow = 5

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates the main menu. Every registered game gets a Play
// entry, followed by the settings, scores and about screens.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+4)

	for _, g := range games {
		label := "Play"
		if len(games) > 1 {
			label = "Play " + g.Title
		}
		items = append(items, MenuItem{Label: label, Target: ScreenGame, GameID: g.ID})
	}
	items = append(items,
		MenuItem{Label: "Settings", Target: ScreenSettings},
		MenuItem{Label: "High Scores", Target: ScreenScores},
		MenuItem{Label: "About", Target: ScreenAbout},
		MenuItem{Label: "Quit", Target: ScreenQuit},
	)

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		m.choose()
	}

	return m, nil
}

// handleMouse moves the cursor to the hovered item and picks it on click.
func (m MenuModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	i := m.itemAt(msg.X, msg.Y)
	if i < 0 {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionMotion:
		m.cursor = i
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.cursor = i
			m.choose()
		}
	}
	return m, nil
}

// choose selects the item under the cursor.
func (m *MenuModel) choose() {
	selected := m.items[m.cursor]
	if selected.Target == ScreenQuit {
		m.quitting = true
		return
	}
	m.selected = &selected
}

// itemRect is the area View draws item i in, cursor marker included.
func (m MenuModel) itemRect(i int) core.Rect {
	w := lipgloss.Width(m.items[i].Label) + 2
	x := 0
	if w < m.width {
		x = (m.width - w) / 2
	}
	return core.NewRect(x, menuItemsRow+i, w, 1)
}

// itemAt returns the item drawn at cell (x, y), or -1.
func (m MenuModel) itemAt(x, y int) int {
	for i := range m.items {
		if m.itemRect(i).Contains(x, y) {
			return i
		}
	}
	return -1
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("-=>  A I R P L A N E  <=-"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Dodge the clouds, grab the fuel", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Label
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + item.Label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := fmt.Sprintf("%s  |  %s  |  %s", "Up/Down: Navigate", "Enter/Click: Select", "Q: Quit")
	b.WriteString(centerText(menuHintStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
