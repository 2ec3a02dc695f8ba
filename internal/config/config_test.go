package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("embedded defaults = %+v\nexpected %+v", cfg, DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte("world:\n  vehicles: 4\nplayer:\n  sprint_factor: 3\n")

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.World.Vehicles != 4 {
		t.Errorf("Vehicles = %d, expected 4", cfg.World.Vehicles)
	}
	if cfg.Player.SprintFactor != 3 {
		t.Errorf("SprintFactor = %v, expected 3", cfg.Player.SprintFactor)
	}
	// Untouched keys keep their defaults
	if cfg.World.NPCs != 20 || cfg.Sync.IntervalMS != 1000 {
		t.Errorf("defaults lost: NPCs=%d IntervalMS=%d", cfg.World.NPCs, cfg.Sync.IntervalMS)
	}
}

func TestParseRejectsUnknownPreset(t *testing.T) {
	if _, err := Parse([]byte("traffic:\n  preset: gridlock\n")); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestParseTrafficPreset(t *testing.T) {
	tests := []struct {
		in       string
		expected TrafficPreset
		wantErr  bool
	}{
		{"", TrafficNormal, false},
		{"light", TrafficLight, false},
		{" Heavy ", TrafficHeavy, false},
		{"fixed", TrafficFixed, false},
		{"rush", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTrafficPreset(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseTrafficPreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.expected {
				t.Errorf("ParseTrafficPreset(%q) = %q, expected %q", tc.in, got, tc.expected)
			}
		})
	}
}

func TestApplyTrafficPreset(t *testing.T) {
	tests := []struct {
		preset   TrafficPreset
		vehicles int
		npcs     int
		speed    float64
	}{
		{TrafficLight, 6, 20, 0.75},
		{TrafficNormal, 12, 20, 1.0},
		{TrafficHeavy, 24, 30, 1.3},
		{TrafficFixed, 12, 20, 0.5},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Traffic.SpeedScale = 0.5

			ApplyTrafficPreset(&cfg, tc.preset)

			if cfg.World.Vehicles != tc.vehicles {
				t.Errorf("Vehicles = %d, expected %d", cfg.World.Vehicles, tc.vehicles)
			}
			if cfg.World.NPCs != tc.npcs {
				t.Errorf("NPCs = %d, expected %d", cfg.World.NPCs, tc.npcs)
			}
			if cfg.Traffic.SpeedScale != tc.speed {
				t.Errorf("SpeedScale = %v, expected %v", cfg.Traffic.SpeedScale, tc.speed)
			}
			if cfg.Traffic.Preset != tc.preset {
				t.Errorf("Preset = %q, expected %q", cfg.Traffic.Preset, tc.preset)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("world:\n  recyclables: 40\ntraffic:\n  preset: light\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.World.Recyclables != 40 {
		t.Errorf("Recyclables = %d, expected 40", cfg.World.Recyclables)
	}
	if cfg.World.Vehicles != 6 {
		t.Errorf("Vehicles = %d, expected light preset to halve traffic to 6", cfg.World.Vehicles)
	}
}

func TestLoadWithTrafficOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("traffic:\n  preset: light\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithTraffic(path, "heavy")
	if err != nil {
		t.Fatalf("LoadWithTraffic() failed: %v", err)
	}
	if cfg.Traffic.Preset != TrafficHeavy {
		t.Errorf("Preset = %q, expected heavy", cfg.Traffic.Preset)
	}
	if cfg.World.Vehicles != 24 {
		t.Errorf("Vehicles = %d, expected heavy preset applied once to 24", cfg.World.Vehicles)
	}

	if _, err := LoadWithTraffic(path, "gridlock"); err == nil {
		t.Error("expected an error for an unknown override")
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing custom config")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("world:\n  width: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a validation error for a negative width")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"zero height", func(c *GameConfig) { c.World.Height = 0 }},
		{"negative npcs", func(c *GameConfig) { c.World.NPCs = -1 }},
		{"waypoint share above one", func(c *GameConfig) { c.World.WaypointShare = 1.5 }},
		{"player larger than world", func(c *GameConfig) { c.Player.Width = 5000 }},
		{"zero cell width", func(c *GameConfig) { c.Render.CellWidth = 0 }},
		{"zero sync interval", func(c *GameConfig) { c.Sync.IntervalMS = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, expected an error")
			}
		})
	}
}

func TestWorldParams(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Traffic.SpeedScale = 1.3

	p := cfg.WorldParams()
	if p.Width != 1200 || p.Height != 800 {
		t.Errorf("size = %vx%v, expected 1200x800", p.Width, p.Height)
	}
	if p.Vehicles != 12 || p.NPCs != 20 || p.Recyclables != 15 || p.Hotspots != 8 {
		t.Errorf("counts = %d/%d/%d/%d", p.Vehicles, p.NPCs, p.Recyclables, p.Hotspots)
	}
	if p.TrafficSpeedScale != 1.3 {
		t.Errorf("TrafficSpeedScale = %v, expected 1.3", p.TrafficSpeedScale)
	}
}

func TestDurations(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Sync.Interval().Milliseconds(); got != 1000 {
		t.Errorf("Sync.Interval() = %dms, expected 1000ms", got)
	}
	if got := cfg.Input.Hold().Milliseconds(); got != 150 {
		t.Errorf("Input.Hold() = %dms, expected 150ms", got)
	}
}
