package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bike-city/internal/backend"
	"github.com/vovakirdan/bike-city/internal/config"
	"github.com/vovakirdan/bike-city/internal/core"
	"github.com/vovakirdan/bike-city/internal/game"
	"github.com/vovakirdan/bike-city/internal/storage"
	"github.com/vovakirdan/bike-city/internal/world"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	cfg := config.DefaultConfig()
	rec := backend.PlayerRecord{
		ID:        "p1",
		Name:      "tester",
		Position:  backend.Position{X: backend.StartX, Y: backend.StartY},
		Health:    backend.StartHealth,
		Stamina:   backend.StartStamina,
		Money:     backend.StartMoney,
		BicycleID: backend.StartBicycleID,
	}
	w := world.Generate(cfg.WorldParams(), 1)

	session, err := game.NewSession(&rec, w, nil, cfg)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(session.Close)

	return NewModel(session, nil, cfg, core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60})
}

func TestModelTickDrivesSession(t *testing.T) {
	var m tea.Model = newTestModel(t)

	m = press(m, runeKey('d'))
	m, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}

	p := m.(Model).session.Player()
	if p.Dir != core.DirRight {
		t.Errorf("player direction = %v, expected right", p.Dir)
	}
	if !strings.Contains(m.View(), "tester") {
		t.Error("View() should show the HUD")
	}
}

func TestModelQuitClosesSession(t *testing.T) {
	var m tea.Model = newTestModel(t)

	m, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if !m.(Model).session.Closed() {
		t.Error("quitting should close the session")
	}
	if m.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelResizeUpdatesViewport(t *testing.T) {
	var m tea.Model = newTestModel(t)

	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 41})
	m, _ = m.Update(TickMsg(time.Now()))

	// One row goes to the help line, two to the HUD.
	f := m.(Model).session.Frame()
	if f.ViewW != 800 || f.ViewH != 38*16 {
		t.Errorf("viewport = (%v, %v), expected (800, %v)", f.ViewW, f.ViewH, 38*16)
	}
}

func TestRiderName(t *testing.T) {
	tests := []struct {
		user string
		want string
	}{
		{"alice", "alice"},
		{"  bob ", "bob"},
		{"", "rider"},
		{strings.Repeat("x", storage.MaxNameLength+5), strings.Repeat("x", storage.MaxNameLength)},
	}

	for _, tt := range tests {
		if got := riderName(tt.user); got != tt.want {
			t.Errorf("riderName(%q) = %q, expected %q", tt.user, got, tt.want)
		}
	}
}

func TestRiderRegistryClaimsOnce(t *testing.T) {
	r := NewRiderRegistry()

	if ok, _ := r.Claim("p1", "10.0.0.1:5000"); !ok {
		t.Fatal("first claim should succeed")
	}
	ok, holder := r.Claim("p1", "10.0.0.2:6000")
	if ok || holder != "10.0.0.1:5000" {
		t.Errorf("second claim = %v, %q, expected refusal naming the holder", ok, holder)
	}
	if r.Count() != 1 {
		t.Errorf("Count() = %d, expected 1", r.Count())
	}

	r.Release("p1")
	if ok, _ := r.Claim("p1", "10.0.0.2:6000"); !ok {
		t.Error("claim after release should succeed")
	}
}
