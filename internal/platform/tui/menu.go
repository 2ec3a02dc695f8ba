package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bike-city/internal/core"
)

// MenuItem is a selectable rider in the menu. An empty PlayerID stands for a
// new rider named Name.
type MenuItem struct {
	PlayerID  string
	Name      string
	EcoPoints int
}

// MenuKeyMap defines the key bindings for the rider menu.
type MenuKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	Leaderboard key.Binding
	Quit        key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k", "w")),
		Down:        key.NewBinding(key.WithKeys("down", "j", "s")),
		Select:      key.NewBinding(key.WithKeys("enter", " ")),
		Leaderboard: key.NewBinding(key.WithKeys("tab")),
		Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	}
}

// MenuModel is the Bubble Tea model for the rider picker.
type MenuModel struct {
	items           []MenuItem
	cursor          int
	width           int
	height          int
	config          core.RuntimeConfig
	keys            MenuKeyMap
	quitting        bool
	selected        *MenuItem // Set when user selects a rider
	openLeaderboard bool      // True if user pressed Tab for the leaderboard
}

// NewMenuModel lists the riders known to source, best first, followed by an
// entry for a new rider called newName.
func NewMenuModel(source LeaderboardSource, cfg core.RuntimeConfig, newName string) MenuModel {
	var items []MenuItem
	if source != nil {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		// An unreachable store just leaves the new rider entry.
		players, err := source.ListPlayers(ctx, maxRiders)
		if err != nil {
			players = nil
		}
		for _, p := range players {
			items = append(items, MenuItem{PlayerID: p.ID, Name: p.Name, EcoPoints: p.EcoPoints})
		}
	}
	if strings.TrimSpace(newName) != "" {
		items = append(items, MenuItem{Name: newName})
	}

	return MenuModel{
		items:  items,
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		config: cfg,
		keys:   DefaultMenuKeyMap(),
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

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Leaderboard):
		m.openLeaderboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("  B I K E   C I T Y  ", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Who is riding?", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		var line string
		if item.PlayerID == "" {
			line = fmt.Sprintf("%s+ new rider %q", cursor, item.Name)
		} else {
			line = fmt.Sprintf("%s%-16s eco %d", cursor, item.Name, item.EcoPoints)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Ride  |  Tab: Leaderboard  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected rider, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsLeaderboard returns true if user requested the leaderboard.
func (m MenuModel) WantsLeaderboard() bool {
	return m.openLeaderboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Rider            MenuItem
	Config           core.RuntimeConfig
	WantsLeaderboard bool
	Quit             bool
}

// RunMenu runs the rider picker and returns the selection.
func RunMenu(source LeaderboardSource, cfg core.RuntimeConfig, newName string) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(source, cfg, newName),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsLeaderboard():
		result.WantsLeaderboard = true
	case m.Selected() != nil:
		result.Rider = *m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
