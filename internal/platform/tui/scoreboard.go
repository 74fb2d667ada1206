package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PabloKostenko/airplane/internal/core"
	"github.com/PabloKostenko/airplane/internal/storage"
)

// maxFlights caps how many rows the board loads.
const maxFlights = 100

// flightOrder selects how the board lists flights.
type flightOrder int

const (
	orderBest flightOrder = iota
	orderRecent
)

func (o flightOrder) String() string {
	if o == orderRecent {
		return "Recent flights"
	}
	return "Best flights"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Order  key.Binding
	Clear  key.Binding
	Back   key.Binding
	Quit   key.Binding
	Expand key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Order, k.Back, k.Expand}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Order},
		{k.Clear, k.Back, k.Quit, k.Expand},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Order: key.NewBinding(
			key.WithKeys("tab", "o"),
			key.WithHelp("tab", "best/recent"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x x", "clear history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Expand: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	boardRecordStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("14"))
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	boardWarnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))
)

// ScoreboardModel lists the flight history of one game with its records.
type ScoreboardModel struct {
	store   *storage.Store
	gameID  string
	order   flightOrder
	flights []storage.ScoreEntry
	records storage.Records
	stats   *storage.GameStats

	table table.Model
	keys  ScoreboardKeyMap
	help  help.Model

	width        int
	height       int
	confirmClear bool // First x pressed, waiting for the second
	quitting     bool
	goingBack    bool
}

// NewScoreboardModel creates the board for gameID. A nil store shows an
// empty history.
func NewScoreboardModel(store *storage.Store, gameID string, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		store:  store,
		gameID: gameID,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

// newTable sizes the flight table to the terminal.
func (m *ScoreboardModel) newTable() table.Model {
	dateWidth := core.Clamp(m.width-40, 12, 20)
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Score", Width: 10},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: dateWidth},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-12, 3)), // Title, records, stats, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload fetches flights, records and stats. Read errors show as empty.
func (m *ScoreboardModel) reload() {
	m.flights = nil
	m.records = storage.Records{}
	m.stats = nil

	if m.store != nil {
		var flights []storage.ScoreEntry
		var err error
		if m.order == orderRecent {
			flights, err = m.store.RecentScores(m.gameID, maxFlights)
		} else {
			flights, err = m.store.TopScores(m.gameID, maxFlights)
		}
		if err == nil {
			m.flights = flights
		}
		if rec, err := m.store.Records(m.gameID); err == nil {
			m.records = rec
		}
		if stats, err := m.store.GetGameStats(m.gameID); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.flights))
	for i, f := range m.flights {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", f.Score),
			core.FormatDuration(f.PlaySecs),
			f.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		clearing := key.Matches(msg, m.keys.Clear)
		if !clearing {
			m.confirmClear = false
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Order):
			m.order = 1 - m.order
			m.reload()
			return m, nil

		case clearing:
			if m.store == nil {
				return m, nil
			}
			if !m.confirmClear {
				m.confirmClear = true
				return m, nil
			}
			m.confirmClear = false
			if err := m.store.ClearScores(m.gameID); err == nil {
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Expand):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES - "+m.order.String()), m.width))
	b.WriteString("\n\n")

	records := fmt.Sprintf("Best: %d  |  Longest flight: %s",
		m.records.HighScore, core.FormatDuration(m.records.LongestPlaySecs))
	b.WriteString(centerText(boardRecordStyle.Render(records), m.width))
	b.WriteString("\n")
	if m.stats != nil && m.stats.GamesCount > 0 {
		stats := fmt.Sprintf("%d flights  |  avg %.0f points  |  %s in the air",
			m.stats.GamesCount, m.stats.AvgScore, core.FormatDuration(m.stats.TotalSecs))
		b.WriteString(centerText(menuHintStyle.Render(stats), m.width))
	}
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrameStyle.Render(m.tableContent())))
	b.WriteString("\n")

	if m.confirmClear {
		b.WriteString(centerText(boardWarnStyle.Render("Press x again to delete every flight and record"), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(menuHintStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

func (m ScoreboardModel) tableContent() string {
	if len(m.flights) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No flights recorded yet.\nTake off to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
