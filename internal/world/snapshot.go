package world

import "github.com/vovakirdan/bike-city/internal/core"

// Snapshot is a read-only copy of the world taken between ticks.
// It shares no memory with the World it was taken from.
type Snapshot struct {
	Width       float64
	Height      float64
	Tick        uint64
	DayNight    float64
	Buildings   []Building
	Roads       []Road
	Shops       []Shop
	Missions    []Mission
	Traffic     []Vehicle
	NPCs        []NPC
	Recyclables []Recyclable
	Pollution   []Hotspot
}

// Snapshot returns a deep copy of the current world state.
func (w *World) Snapshot() Snapshot {
	missions := make([]Mission, len(w.Missions))
	for i, m := range w.Missions {
		m.Objectives.Sites = append([]core.Vec(nil), m.Objectives.Sites...)
		missions[i] = m
	}

	return Snapshot{
		Width:       w.params.Width,
		Height:      w.params.Height,
		Tick:        w.tick,
		DayNight:    w.dayNight,
		Buildings:   append([]Building(nil), w.Buildings...),
		Roads:       append([]Road(nil), w.Roads...),
		Shops:       append([]Shop(nil), w.Shops...),
		Missions:    missions,
		Traffic:     append([]Vehicle(nil), w.Traffic...),
		NPCs:        append([]NPC(nil), w.NPCs...),
		Recyclables: append([]Recyclable(nil), w.Recyclables...),
		Pollution:   append([]Hotspot(nil), w.Pollution...),
	}
}

// IsNight reports whether the phase falls in the dark half of the cycle.
func (s Snapshot) IsNight() bool {
	return s.DayNight >= 0.5
}
