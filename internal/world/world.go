// Package world owns every entity of the city and advances the dynamic ones
// by exactly one tick per Update call.
//
// Buildings, roads, shops and missions come from fixed tables so the layout is
// identical for every run. Traffic, NPCs, recyclables and pollution hotspots
// are spawned from an injected random source; the same seed yields the same
// world.
package world

import (
	"math/rand"
)

// Default world dimensions and entity counts.
const (
	DefaultWidth       = 1200
	DefaultHeight      = 800
	DefaultVehicles    = 12
	DefaultNPCs        = 20
	DefaultRecyclables = 15
	DefaultHotspots    = 8
)

// Params controls world generation.
type Params struct {
	Width  float64
	Height float64

	Vehicles    int
	NPCs        int
	Recyclables int
	Hotspots    int

	// WaypointShare is the probability that a spawned NPC seeks random
	// waypoints instead of following its road lane.
	WaypointShare float64

	// TrafficSpeedScale multiplies every spawned vehicle speed.
	TrafficSpeedScale float64
}

// DefaultParams returns the stock city configuration.
func DefaultParams() Params {
	return Params{
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		Vehicles:          DefaultVehicles,
		NPCs:              DefaultNPCs,
		Recyclables:       DefaultRecyclables,
		Hotspots:          DefaultHotspots,
		WaypointShare:     0.25,
		TrafficSpeedScale: 1.0,
	}
}

// World holds all entities of a play session.
type World struct {
	params Params
	rng    *rand.Rand

	Buildings   []Building
	Roads       []Road
	Shops       []Shop
	Missions    []Mission
	Traffic     []Vehicle
	NPCs        []NPC
	Recyclables []Recyclable
	Pollution   []Hotspot

	tick     uint64
	dayNight float64
}

// New creates an empty world. Call Initialize to populate it.
// A nil rng is replaced by one seeded with 1 so generation stays deterministic.
func New(p Params, rng *rand.Rand) *World {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	if p.Width <= 0 {
		p.Width = DefaultWidth
	}
	if p.Height <= 0 {
		p.Height = DefaultHeight
	}
	if p.TrafficSpeedScale <= 0 {
		p.TrafficSpeedScale = 1.0
	}
	return &World{
		params: p,
		rng:    rng,
	}
}

// Generate creates and initializes a world in one call.
func Generate(p Params, seed int64) *World {
	w := New(p, rand.New(rand.NewSource(seed)))
	w.Initialize()
	return w
}

// Initialize builds the fixed layout and spawns the randomized entities.
// Order matters: spawning consumes the random source in a fixed sequence.
func (w *World) Initialize() {
	w.Buildings = fixedBuildings()
	w.Roads = fixedRoads(w.params.Width, w.params.Height)
	w.Shops = fixedShops()
	w.Missions = fixedMissions()

	w.spawnTraffic()
	w.spawnNPCs()
	w.spawnRecyclables()
	w.spawnPollution()

	w.tick = 0
	w.dayNight = 0
}

// Width returns the world width in world units.
func (w *World) Width() float64 {
	return w.params.Width
}

// Height returns the world height in world units.
func (w *World) Height() float64 {
	return w.params.Height
}

// Tick returns the number of updates applied so far.
func (w *World) Tick() uint64 {
	return w.tick
}

// DayNight returns the day-night phase in [0, 1).
func (w *World) DayNight() float64 {
	return w.dayNight
}
