package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/secret-passage/internal/games/passage"
	"github.com/vovakirdan/secret-passage/internal/storage"
)

const maxRuns = 100

// RunSource provides run history.
type RunSource interface {
	RecentRuns(limit int) ([]storage.Run, error)
	FastestRuns(limit int) ([]storage.Run, error)
}

// RunOrder selects how the history table is sorted.
type RunOrder int

const (
	OrderRecent RunOrder = iota
	OrderFastest
)

func (o RunOrder) String() string {
	if o == OrderFastest {
		return "FASTEST RUNS"
	}
	return "RECENT RUNS"
}

// RunsKeyMap defines the key bindings for the run history.
type RunsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.Quit}}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab", "s"),
			key.WithHelp("tab", "recent/fastest"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for the run history screen.
type RunsModel struct {
	source   RunSource
	order    RunOrder
	runs     []storage.Run
	loadErr  error
	table    table.Model
	help     help.Model
	keys     RunsKeyMap
	width    int
	height   int
	quitting bool
}

// NewRunsModel creates a run history model.
func NewRunsModel(source RunSource, width, height int) RunsModel {
	m := RunsModel{
		source: source,
		keys:   DefaultRunsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *RunsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Time", Width: 9},
		{Title: "Rooms", Width: 6},
		{Title: "Falls", Width: 6},
		{Title: "Secrets", Width: 8},
		{Title: "Finished", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
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

// load reads runs in the current order.
func (m *RunsModel) load() {
	m.runs, m.loadErr = nil, nil
	if m.source != nil {
		if m.order == OrderFastest {
			m.runs, m.loadErr = m.source.FastestRuns(maxRuns)
		} else {
			m.runs, m.loadErr = m.source.RecentRuns(maxRuns)
		}
	}
	m.table.SetRows(runRows(m.runs))
	m.table.GotoTop()
}

// runRows formats runs as table rows.
func runRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		finished := "-"
		if !r.FinishedAt.IsZero() {
			finished = r.FinishedAt.Local().Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			passage.FormatDuration(r.Duration),
			fmt.Sprintf("%d", r.RoomsCleared),
			fmt.Sprintf("%d", r.Falls),
			fmt.Sprintf("%d", r.Secrets),
			finished,
		}
	}
	return rows
}

// Init initializes the model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run history.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if m.order == OrderRecent {
				m.order = OrderFastest
			} else {
				m.order = OrderRecent
			}
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(runRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run history.
func (m RunsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Width(m.width).
		Align(lipgloss.Center)
	b.WriteString(titleStyle.Render(m.order.String()))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boxStyle.Render(m.tableContent())))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m RunsModel) tableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render(fmt.Sprintf("Could not load runs:\n%v", m.loadErr))
	case len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nReach the last flag to record one!")
	}
	return m.table.View()
}

// Order returns the current sort order.
func (m RunsModel) Order() RunOrder {
	return m.order
}

// RunRunsTable shows the run history until the user quits.
func RunRunsTable(source RunSource, width, height int) error {
	p := tea.NewProgram(
		NewRunsModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
