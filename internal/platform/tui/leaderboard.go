package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bike-city/internal/backend"
)

// Leaderboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the tab sidebar
	sidebarWidth       = 20  // Width of the tab sidebar
	maxRiders          = 100 // Max players to load
	loadTimeout        = 5 * time.Second
)

// LeaderboardSource is the data shown by the leaderboard. *storage.Store
// implements it.
type LeaderboardSource interface {
	ListPlayers(ctx context.Context, limit int) ([]backend.PlayerRecord, error)
	ListBicycles(ctx context.Context) ([]backend.Bicycle, error)
	ListMissions(ctx context.Context) ([]backend.MissionInfo, error)
}

// LeaderboardTab selects what the table lists.
type LeaderboardTab int

const (
	TabRiders LeaderboardTab = iota
	TabBicycles
	TabMissions
)

var leaderboardTabs = []LeaderboardTab{TabRiders, TabBicycles, TabMissions}

func (t LeaderboardTab) String() string {
	switch t {
	case TabRiders:
		return "Riders"
	case TabBicycles:
		return "Bicycles"
	case TabMissions:
		return "Missions"
	default:
		return "Unknown"
	}
}

// LeaderboardKeyMap defines the key bindings for the leaderboard.
type LeaderboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.PrevTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.PrevTab, k.Quit},
	}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next list"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev list"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderboardModel is the Bubble Tea model for the leaderboard screen.
type LeaderboardModel struct {
	source      LeaderboardSource
	tab         int
	rows        []table.Row
	loadErr     error
	table       table.Model
	help        help.Model
	keys        LeaderboardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewLeaderboardModel creates a leaderboard showing the riders tab.
func NewLeaderboardModel(source LeaderboardSource, width, height int) LeaderboardModel {
	h := help.New()
	h.ShowAll = false

	m := LeaderboardModel{
		source:      source,
		keys:        DefaultLeaderboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// Tab returns the selected tab.
func (m LeaderboardModel) Tab() LeaderboardTab {
	return leaderboardTabs[m.tab]
}

// Rows returns the rows of the selected tab.
func (m LeaderboardModel) Rows() []table.Row {
	return m.rows
}

func (m LeaderboardModel) columns() []table.Column {
	switch m.Tab() {
	case TabBicycles:
		return []table.Column{
			{Title: "Bicycle", Width: 18},
			{Title: "Type", Width: 10},
			{Title: "Speed", Width: 6},
			{Title: "Price", Width: 6},
		}
	case TabMissions:
		return []table.Column{
			{Title: "Mission", Width: 26},
			{Title: "Goal", Width: 5},
			{Title: "Eco", Width: 5},
			{Title: "Money", Width: 6},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Rider", Width: 16},
			{Title: "Eco", Width: 6},
			{Title: "Money", Width: 6},
			{Title: "Done", Width: 5},
		}
	}
}

// createTable creates a table with the columns of the selected tab.
func (m *LeaderboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
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

// load fetches the rows of the selected tab.
func (m *LeaderboardModel) load() {
	m.rows, m.loadErr = nil, nil
	if m.source == nil {
		m.table.SetRows(nil)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	switch m.Tab() {
	case TabRiders:
		players, err := m.source.ListPlayers(ctx, maxRiders)
		m.loadErr = err
		for i, p := range players {
			m.rows = append(m.rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				p.Name,
				fmt.Sprintf("%d", p.EcoPoints),
				fmt.Sprintf("$%d", p.Money),
				fmt.Sprintf("%d", len(p.CompletedMissions)),
			})
		}
	case TabBicycles:
		bikes, err := m.source.ListBicycles(ctx)
		m.loadErr = err
		for _, b := range bikes {
			m.rows = append(m.rows, table.Row{
				b.Name,
				b.Type,
				fmt.Sprintf("%.0f", b.Speed),
				fmt.Sprintf("$%d", b.Price),
			})
		}
	case TabMissions:
		missions, err := m.source.ListMissions(ctx)
		m.loadErr = err
		for _, ms := range missions {
			m.rows = append(m.rows, table.Row{
				ms.Name,
				fmt.Sprintf("%d", ms.Objectives.Required),
				fmt.Sprintf("%d", ms.Rewards.EcoPoints),
				fmt.Sprintf("$%d", ms.Rewards.Money),
			})
		}
	}

	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

// switchTab moves the tab cursor by delta, wrapping around.
func (m *LeaderboardModel) switchTab(delta int) {
	n := len(leaderboardTabs)
	m.tab = ((m.tab+delta)%n + n) % n
	// Rows must be cleared before the column count changes.
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.load()
}

// Init initializes the leaderboard model.
func (m LeaderboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.switchTab(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.switchTab(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("BIKE CITY - %s", m.Tab())
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the tab list as a sidebar next to the table.
func (m LeaderboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Lists\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, t := range leaderboardTabs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.tab {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + t.String()))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the tabs above the table.
func (m LeaderboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(leaderboardTabs))
	for i, t := range leaderboardTabs {
		if i == m.tab {
			tabs[i] = activeTabStyle.Render(t.String())
		} else {
			tabs[i] = tabStyle.Render(" " + t.String() + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table, a load error or an empty message.
func (m LeaderboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load the list:\n" + m.loadErr.Error())
	case len(m.rows) == 0 && m.Tab() == TabRiders:
		return emptyStyle.Render("No riders yet.\nStart a ride to join the board!")
	case len(m.rows) == 0:
		return emptyStyle.Render("Nothing here yet.")
	}
	return m.table.View()
}

// centerText pads text on the left so it sits in the middle of width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunLeaderboard runs the leaderboard screen until the user quits.
func RunLeaderboard(source LeaderboardSource, width, height int) error {
	p := tea.NewProgram(
		NewLeaderboardModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
