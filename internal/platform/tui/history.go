package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stonefall/internal/registry"
	"github.com/vovakirdan/stonefall/internal/storage"
)

const (
	maxRuns   = 200
	maxScores = 100
)

// HistoryView selects what the history board shows.
type HistoryView int

const (
	ViewRuns   HistoryView = iota // Level attempts of one owner
	ViewScores                    // Best session scores per game
)

// HistoryKeyMap defines the key bindings for the history board.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Switch   key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.NextGame, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Switch, k.NextGame, k.PrevGame},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "runs/scores"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev game"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the run history screen.
type HistoryModel struct {
	store      *storage.Store
	owner      string
	view       HistoryView
	games      []registry.GameInfo
	gameCursor int
	runs       []storage.Run
	scores     []storage.ScoreEntry
	stats      *storage.RunStats
	err        error
	table      table.Model
	help       help.Model
	keys       HistoryKeyMap
	width      int
	height     int
	quitting   bool
}

// NewHistoryModel creates a history board for owner.
func NewHistoryModel(store *storage.Store, owner string, width, height int) HistoryModel {
	h := help.New()
	h.Width = width

	m := HistoryModel{
		store:  store,
		owner:  owner,
		games:  registry.List(),
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// columns returns the table columns for the current view.
func (m *HistoryModel) columns() []table.Column {
	if m.view == ViewScores {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Stones", Width: 10},
			{Title: "Date", Width: 18},
		}
	}
	return []table.Column{
		{Title: "Date", Width: 14},
		{Title: "Mode", Width: 16},
		{Title: "Level", Width: 6},
		{Title: "Outcome", Width: 9},
		{Title: "Stones", Width: 7},
		{Title: "Coins", Width: 6},
		{Title: "Time", Width: 6},
	}
}

// createTable creates a table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats and help
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

// reload queries the store for the current view and refills the table.
func (m *HistoryModel) reload() {
	m.table = m.createTable()
	m.err = nil
	m.runs = nil
	m.scores = nil

	if m.store == nil {
		return
	}

	stats, err := m.store.GetRunStats(m.owner)
	if err != nil {
		m.err = err
		return
	}
	m.stats = stats

	var rows []table.Row
	switch m.view {
	case ViewRuns:
		m.runs, m.err = m.store.RecentRuns(m.owner, maxRuns)
		rows = runRows(m.runs)
	case ViewScores:
		if len(m.games) == 0 {
			return
		}
		m.scores, m.err = m.store.TopScores(m.games[m.gameCursor].ID, maxScores)
		rows = scoreRows(m.scores)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func runRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			r.CreatedAt.Format("Jan 02 15:04"),
			r.GameID,
			fmt.Sprintf("%d", r.Level),
			r.Outcome,
			fmt.Sprintf("%d", r.Stones),
			fmt.Sprintf("%d", r.Coins),
			formatTicks(r.Ticks),
		}
	}
	return rows
}

func scoreRows(scores []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// formatTicks renders a tick count at 60 ticks per second as m:ss.
func formatTicks(ticks int) string {
	secs := ticks / 60
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history board.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Switch):
			if m.view == ViewRuns {
				m.view = ViewScores
			} else {
				m.view = ViewRuns
			}
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if m.view == ViewScores && len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if m.view == ViewScores && len(m.games) > 0 {
				m.gameCursor = (m.gameCursor - 1 + len(m.games)) % len(m.games)
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

var (
	historyTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	historyDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	historyEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	historyBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)

// View renders the history board.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("RUN HISTORY - %s", m.owner)
	if m.view == ViewScores && len(m.games) > 0 {
		title = fmt.Sprintf("HIGH SCORES - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(historyTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.stats != nil {
		b.WriteString(centerText(historyDimStyle.Render(statsLine(m.stats)), m.width))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, historyBoxStyle.Render(m.renderTableContent())))
	b.WriteString("\n")
	b.WriteString(historyDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func statsLine(s *storage.RunStats) string {
	line := fmt.Sprintf("runs %d  |  passed %d  |  defeated %d  |  stones %d",
		s.Runs, s.Passed, s.Defeated, s.Stones)
	if !s.LastRun.IsZero() {
		line += "  |  last " + s.LastRun.Format("Jan 02 15:04")
	}
	return line
}

// renderTableContent renders the table or a placeholder.
func (m HistoryModel) renderTableContent() string {
	switch {
	case m.store == nil:
		return historyEmptyStyle.Render("No database available.")
	case m.err != nil:
		return historyEmptyStyle.Render("Cannot read history:\n" + m.err.Error())
	case m.view == ViewRuns && len(m.runs) == 0:
		return historyEmptyStyle.Render("No runs recorded yet.\nFinish a level to start your history!")
	case m.view == ViewScores && len(m.scores) == 0:
		return historyEmptyStyle.Render("No scores recorded yet.")
	}
	return m.table.View()
}

// centerText pads text so that it is centered in width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the history board until the user quits.
func RunHistory(store *storage.Store, owner string, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, owner, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
