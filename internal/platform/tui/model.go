package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bike-city/internal/backend"
	"github.com/vovakirdan/bike-city/internal/config"
	"github.com/vovakirdan/bike-city/internal/core"
	"github.com/vovakirdan/bike-city/internal/game"
)

// ActionResultMsg carries the outcome of a backend action back to the model.
type ActionResultMsg game.ActionResult

var (
	screenshotKey = key.NewBinding(key.WithKeys("ctrl+s"))
	helpKey       = key.NewBinding(key.WithKeys("?"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model running one game session.
type Model struct {
	session  *game.GameSession
	backend  backend.Backend
	screen   *core.Screen
	tracker  *KeyTracker
	keys     KeyMap
	help     help.Model
	cfg      config.GameConfig
	runtime  core.RuntimeConfig
	quitting bool
}

// NewModel creates a model driving session. Actions the session requests are
// run against b; a nil b drops them.
func NewModel(session *game.GameSession, b backend.Backend, cfg config.GameConfig, rt core.RuntimeConfig) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		session: session,
		backend: b,
		screen:  core.NewScreen(rt.ScreenW, max(1, rt.ScreenH-1)),
		tracker: NewKeyTracker(cfg.Input.Hold()),
		keys:    DefaultKeyMap(),
		help:    h,
		cfg:     cfg,
		runtime: rt,
	}
	m.session.SetViewport(ViewportSize(m.screen.Width(), m.screen.Height(), cfg.Render.CellWidth, cfg.Render.CellHeight))
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case ActionResultMsg:
		m.session.Apply(game.ActionResult(msg))
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, screenshotKey):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, helpKey):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	keys, quit := m.keys.MapKey(msg)
	if quit {
		m.quitting = true
		m.session.Close()
		return m, tea.Quit
	}
	m.tracker.Press(time.Now(), keys...)
	return m, nil
}

// handleResize keeps one row for the help line below the screen.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.runtime.ScreenW = msg.Width
	m.runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-1))
	m.help.Width = msg.Width
	m.session.SetViewport(ViewportSize(m.screen.Width(), m.screen.Height(), m.cfg.Render.CellWidth, m.cfg.Render.CellHeight))
	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.session.Closed() {
		return m, nil
	}

	res := m.session.Step(m.tracker.HeldAt(now), now)

	cmds := []tea.Cmd{tickCmd(m.runtime.TickRate)}
	if res.Action.Kind != game.ActionNone && m.backend != nil {
		cmds = append(cmds, m.runAction(res.Action))
	}
	return m, tea.Batch(cmds...)
}

// runAction executes a backend action off the update loop.
func (m Model) runAction(a game.Action) tea.Cmd {
	b := m.backend
	timeout := m.cfg.Sync.Timeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ActionResultMsg(a.Run(ctx, b))
	}
}

// saveScreenshot saves the current screen as plain text.
func (m *Model) saveScreenshot() {
	DrawFrame(m.screen, m.session.Frame(), m.cfg.Render.CellWidth, m.cfg.Render.CellHeight)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".bikecity", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("bikecity_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the latest frame and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	f := m.session.Frame()
	DrawFrame(m.screen, f, m.cfg.Render.CellWidth, m.cfg.Render.CellHeight)
	return RenderScreen(m.screen, f.World.IsNight()) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts the Bubble Tea program for session and closes the session when
// the program exits.
func Run(session *game.GameSession, b backend.Backend, cfg config.GameConfig, rt core.RuntimeConfig) error {
	defer session.Close()

	p := tea.NewProgram(
		NewModel(session, b, cfg, rt),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
