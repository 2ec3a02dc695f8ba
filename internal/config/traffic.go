package config

import (
	"fmt"
	"math"
	"strings"
)

// TrafficPreset represents a named traffic density.
type TrafficPreset string

const (
	TrafficLight  TrafficPreset = "light"
	TrafficNormal TrafficPreset = "normal"
	TrafficHeavy  TrafficPreset = "heavy"
	TrafficFixed  TrafficPreset = "fixed"
)

// TrafficPresets lists every preset in display order.
var TrafficPresets = []TrafficPreset{TrafficLight, TrafficNormal, TrafficHeavy, TrafficFixed}

// ParseTrafficPreset validates a preset name. The empty string means normal.
func ParseTrafficPreset(name string) (TrafficPreset, error) {
	switch p := TrafficPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return TrafficNormal, nil
	case TrafficLight, TrafficNormal, TrafficHeavy, TrafficFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown traffic preset %q (want light, normal, heavy or fixed)", name)
	}
}

// trafficScaling returns the vehicle count multiplier and speed scale for a preset.
func trafficScaling(preset TrafficPreset) (count float64, speed float64) {
	switch preset {
	case TrafficLight:
		return 0.5, 0.75
	case TrafficHeavy:
		return 2.0, 1.3
	default:
		return 1.0, 1.0
	}
}

// IsFixedPreset returns true if the preset leaves the configured traffic untouched.
func IsFixedPreset(preset TrafficPreset) bool {
	return preset == TrafficFixed
}

// ApplyTrafficPreset modifies the config based on a traffic preset.
func ApplyTrafficPreset(cfg *GameConfig, preset TrafficPreset) {
	cfg.Traffic.Preset = preset
	if IsFixedPreset(preset) {
		return
	}

	count, speed := trafficScaling(preset)
	cfg.World.Vehicles = int(math.Round(float64(cfg.World.Vehicles) * count))
	cfg.Traffic.SpeedScale = speed

	// Busier streets also draw more people out.
	if preset == TrafficHeavy {
		cfg.World.NPCs = int(math.Round(float64(cfg.World.NPCs) * 1.5))
	}
}
