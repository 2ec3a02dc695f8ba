// Package config provides YAML-based game configuration loading and
// traffic preset management for the city.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/bike-city/internal/world"
)

// GameConfig contains all tunable parameters of a play session.
type GameConfig struct {
	World       WorldConfig       `yaml:"world"`
	Player      PlayerConfig      `yaml:"player"`
	Interaction InteractionConfig `yaml:"interaction"`
	Sync        SyncConfig        `yaml:"sync"`
	Render      RenderConfig      `yaml:"render"`
	Input       InputConfig       `yaml:"input"`
	Traffic     TrafficConfig     `yaml:"traffic"`
}

// WorldConfig defines world size and spawn counts.
type WorldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Vehicles      int     `yaml:"vehicles"`
	NPCs          int     `yaml:"npcs"`
	Recyclables   int     `yaml:"recyclables"`
	Hotspots      int     `yaml:"hotspots"`
	WaypointShare float64 `yaml:"waypoint_share"` // 0.0 = all NPCs follow lanes
}

// PlayerConfig defines the player body and movement.
type PlayerConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	BaseSpeed     float64 `yaml:"base_speed"`     // Used when no bicycle is equipped
	BicycleFactor float64 `yaml:"bicycle_factor"` // Bicycle speed rating to world units per tick
	SprintFactor  float64 `yaml:"sprint_factor"`
	StartHealth   int     `yaml:"start_health"`
	StartStamina  int     `yaml:"start_stamina"`
}

// InteractionConfig defines proximity radii in world units.
type InteractionConfig struct {
	InteractRadius   float64 `yaml:"interact_radius"`
	RecyclableRadius float64 `yaml:"recyclable_radius"`
	CleanupRadius    float64 `yaml:"cleanup_radius"`
	SiteRadius       float64 `yaml:"site_radius"`
	SafeSearch       float64 `yaml:"safe_search"` // Max distance for the respawn search
}

// SyncConfig defines the remote position sync throttle.
type SyncConfig struct {
	IntervalMS int `yaml:"interval_ms"`
	TimeoutMS  int `yaml:"timeout_ms"`
}

// Interval returns the throttle window.
func (s SyncConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// Timeout returns the per-call deadline.
func (s SyncConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// RenderConfig defines how world units map onto terminal cells.
type RenderConfig struct {
	CellWidth  float64 `yaml:"cell_width"`  // World units per terminal column
	CellHeight float64 `yaml:"cell_height"` // World units per terminal row
}

// InputConfig defines key handling.
type InputConfig struct {
	HoldMS int `yaml:"hold_ms"` // A key counts as held this long after its last press
}

// Hold returns the key hold window.
func (i InputConfig) Hold() time.Duration {
	return time.Duration(i.HoldMS) * time.Millisecond
}

// TrafficConfig selects the traffic density.
type TrafficConfig struct {
	Preset     TrafficPreset `yaml:"preset"`
	SpeedScale float64       `yaml:"speed_scale"`
}

// WorldParams converts the configuration into world generation parameters.
func (c GameConfig) WorldParams() world.Params {
	return world.Params{
		Width:             c.World.Width,
		Height:            c.World.Height,
		Vehicles:          c.World.Vehicles,
		NPCs:              c.World.NPCs,
		Recyclables:       c.World.Recyclables,
		Hotspots:          c.World.Hotspots,
		WaypointShare:     c.World.WaypointShare,
		TrafficSpeedScale: c.Traffic.SpeedScale,
	}
}

// Validate reports every setting that would make the session unplayable.
func (c GameConfig) Validate() error {
	var errs []error
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size %vx%v must be positive", c.World.Width, c.World.Height))
	}
	if c.World.Vehicles < 0 || c.World.NPCs < 0 || c.World.Recyclables < 0 || c.World.Hotspots < 0 {
		errs = append(errs, errors.New("entity counts must not be negative"))
	}
	if c.World.WaypointShare < 0 || c.World.WaypointShare > 1 {
		errs = append(errs, fmt.Errorf("waypoint_share %v must be within [0, 1]", c.World.WaypointShare))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Player.Width > c.World.Width || c.Player.Height > c.World.Height {
		errs = append(errs, errors.New("player does not fit into the world"))
	}
	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		errs = append(errs, errors.New("render cell size must be positive"))
	}
	if c.Sync.IntervalMS <= 0 {
		errs = append(errs, errors.New("sync interval must be positive"))
	}
	if _, err := ParseTrafficPreset(string(c.Traffic.Preset)); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
