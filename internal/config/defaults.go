package config

import (
	_ "embed"
)

//go:embed defaults/bikecity.yaml
var defaultYAML []byte

// DefaultConfig returns the default game configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		World: WorldConfig{
			Width:         1200,
			Height:        800,
			Vehicles:      12,
			NPCs:          20,
			Recyclables:   15,
			Hotspots:      8,
			WaypointShare: 0.25,
		},
		Player: PlayerConfig{
			Width:         16,
			Height:        16,
			BaseSpeed:     2.0,
			BicycleFactor: 0.3,
			SprintFactor:  2.0,
			StartHealth:   100,
			StartStamina:  100,
		},
		Interaction: InteractionConfig{
			InteractRadius:   50,
			RecyclableRadius: 20,
			CleanupRadius:    30,
			SiteRadius:       30,
			SafeSearch:       100,
		},
		Sync: SyncConfig{
			IntervalMS: 1000,
			TimeoutMS:  5000,
		},
		Render: RenderConfig{
			CellWidth:  8,
			CellHeight: 16,
		},
		Input: InputConfig{
			HoldMS: 150,
		},
		Traffic: TrafficConfig{
			Preset:     TrafficNormal,
			SpeedScale: 1.0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
