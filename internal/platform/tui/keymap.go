package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bike-city/internal/core"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Sprint  key.Binding
	Shop    key.Binding
	Mission key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Menu    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Sprint, k.Shop, k.Mission, k.Confirm, k.Menu, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Sprint},
		{k.Shop, k.Mission, k.Confirm, k.Cancel},
		{k.Menu, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings. Capital WASD and shift+arrows
// move while sprinting.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up", "W", "shift+up"),
			key.WithHelp("wasd/arrows", "ride"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down", "S", "shift+down"),
			key.WithHelp("s/down", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left", "A", "shift+left"),
			key.WithHelp("a/left", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right", "D", "shift+right"),
			key.WithHelp("d/right", "right"),
		),
		Sprint: key.NewBinding(
			key.WithKeys("W", "A", "S", "D", "shift+up", "shift+down", "shift+left", "shift+right"),
			key.WithHelp("shift", "sprint"),
		),
		Shop: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "shop"),
		),
		Mission: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "mission"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "accept"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "dismiss"),
		),
		Menu: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "missions"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message into the game keys it presses.
// isQuit is set for the quit binding, which maps to no game key.
func (k KeyMap) MapKey(msg tea.KeyMsg) (keys []core.Key, isQuit bool) {
	if key.Matches(msg, k.Quit) {
		return nil, true
	}

	bindings := []struct {
		binding key.Binding
		key     core.Key
	}{
		{k.Up, core.KeyUp},
		{k.Down, core.KeyDown},
		{k.Left, core.KeyLeft},
		{k.Right, core.KeyRight},
		{k.Sprint, core.KeySprint},
		{k.Shop, core.KeyInteractShop},
		{k.Mission, core.KeyInteractMission},
		{k.Confirm, core.KeyConfirm},
		{k.Cancel, core.KeyCancel},
		{k.Menu, core.KeyMenu},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			keys = append(keys, b.key)
		}
	}
	return keys, false
}

// DefaultHoldWindow is used when a KeyTracker is created with a
// non-positive window.
const DefaultHoldWindow = 150 * time.Millisecond

// KeyTracker turns key presses into held keys. Terminals report presses and
// auto-repeats but no releases, so a key counts as held until the hold
// window has passed since its last press.
type KeyTracker struct {
	hold  time.Duration
	clock func() time.Time
	last  map[core.Key]time.Time
}

// NewKeyTracker creates a tracker with the given hold window.
func NewKeyTracker(hold time.Duration) *KeyTracker {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &KeyTracker{
		hold:  hold,
		clock: time.Now,
		last:  make(map[core.Key]time.Time),
	}
}

// Press records a press of every key in keys at time now.
func (t *KeyTracker) Press(now time.Time, keys ...core.Key) {
	for _, k := range keys {
		t.last[k] = now
	}
}

// HeldAt returns the keys held at time now and forgets expired ones.
func (t *KeyTracker) HeldAt(now time.Time) core.InputSnapshot {
	snap := core.NewInputSnapshot()
	for k, at := range t.last {
		if now.Sub(at) < t.hold {
			snap.Set(k)
		} else {
			delete(t.last, k)
		}
	}
	return snap
}

// CurrentKeys returns the keys held right now.
func (t *KeyTracker) CurrentKeys() core.InputSnapshot {
	return t.HeldAt(t.clock())
}

// Reset releases every key.
func (t *KeyTracker) Reset() {
	clear(t.last)
}

var _ core.InputSource = (*KeyTracker)(nil)
