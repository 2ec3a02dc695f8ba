package world

import (
	"math"

	"github.com/vovakirdan/bike-city/internal/collision"
	"github.com/vovakirdan/bike-city/internal/core"
)

const pollutionReduction = 0.1

// NearbyShop returns the shop whose center is closest to (x, y), provided it
// lies within radius.
func (w *World) NearbyShop(x, y, radius float64) (Shop, bool) {
	var (
		best     Shop
		bestDist = math.Inf(1)
	)
	for _, s := range w.Shops {
		c := s.Center()
		d := core.Distance(x, y, c.X, c.Y)
		if d < radius && d < bestDist {
			best, bestDist = s, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// NearbyMission returns the closest uncompleted mission anchored within radius
// of (x, y).
func (w *World) NearbyMission(x, y, radius float64) (Mission, bool) {
	var (
		best     Mission
		bestDist = math.Inf(1)
	)
	for _, m := range w.Missions {
		if m.Completed {
			continue
		}
		d := core.Distance(x, y, m.X, m.Y)
		if d < radius && d < bestDist {
			best, bestDist = m, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

// Shop looks a shop up by id.
func (w *World) Shop(id string) (Shop, bool) {
	for _, s := range w.Shops {
		if s.ID == id {
			return s, true
		}
	}
	return Shop{}, false
}

// Mission looks a mission up by id.
func (w *World) Mission(id string) (Mission, bool) {
	for _, m := range w.Missions {
		if m.ID == id {
			return m, true
		}
	}
	return Mission{}, false
}

// CollectRecyclable marks the first uncollected item whose top-left corner
// lies within radius of (x, y) as collected and returns it. Items already
// collected are never returned again.
func (w *World) CollectRecyclable(x, y, radius float64) (Recyclable, bool) {
	for i := range w.Recyclables {
		item := &w.Recyclables[i]
		if item.Collected {
			continue
		}
		if core.Distance(x, y, item.X, item.Y) < radius {
			item.Collected = true
			return *item, true
		}
	}
	return Recyclable{}, false
}

// RemainingRecyclables counts the items not yet collected.
func (w *World) RemainingRecyclables() int {
	n := 0
	for _, item := range w.Recyclables {
		if !item.Collected {
			n++
		}
	}
	return n
}

// ReducePollution lowers every hotspot within radius of (x, y) by a fixed
// step, never below zero, and returns how many were affected.
func (w *World) ReducePollution(x, y, radius float64) int {
	n := 0
	for i := range w.Pollution {
		h := &w.Pollution[i]
		if core.Distance(x, y, h.X, h.Y) < radius {
			h.Intensity = math.Max(0, h.Intensity-pollutionReduction)
			n++
		}
	}
	return n
}

// PollutionAt returns the strongest intensity of the hotspots covering (x, y).
func (w *World) PollutionAt(x, y float64) float64 {
	level := 0.0
	for _, h := range w.Pollution {
		if core.Distance(x, y, h.X, h.Y) <= h.Radius {
			level = math.Max(level, h.Intensity)
		}
	}
	return level
}

// IsValidBuildingPosition reports whether r could hold a new building: inside
// the world and clear of every road and existing building.
func (w *World) IsValidBuildingPosition(r core.Rect) bool {
	if !collision.WithinWorldBounds(r, w.params.Width, w.params.Height) {
		return false
	}
	for _, road := range w.Roads {
		if collision.RectsOverlap(r, road.Rect) {
			return false
		}
	}
	for _, b := range w.Buildings {
		if collision.RectsOverlap(r, b.Rect) {
			return false
		}
	}
	return true
}

// IsOnRoad reports whether the point lies on any road, edges included.
func (w *World) IsOnRoad(x, y float64) bool {
	for _, road := range w.Roads {
		if road.Contains(x, y) {
			return true
		}
	}
	return false
}

// NearestRoadPosition returns the intersection closest to (x, y). Crossings
// on the eastmost avenue are not candidates.
func (w *World) NearestRoadPosition(x, y float64) core.Vec {
	best := intersections[0]
	bestDist := math.Inf(1)
	for _, c := range intersections[:respawnIntersections] {
		if d := core.Distance(x, y, c.X, c.Y); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// CompleteMission marks the mission as completed. It reports false for an
// unknown id. Completion is never undone.
func (w *World) CompleteMission(id string) bool {
	for i := range w.Missions {
		if w.Missions[i].ID == id {
			w.Missions[i].Completed = true
			return true
		}
	}
	return false
}

// BuildingRects returns the footprint of every building.
func (w *World) BuildingRects() []core.Rect {
	out := make([]core.Rect, len(w.Buildings))
	for i, b := range w.Buildings {
		out[i] = b.Rect
	}
	return out
}

// TrafficRects returns the current footprint of every vehicle.
func (w *World) TrafficRects() []core.Rect {
	out := make([]core.Rect, len(w.Traffic))
	for i, v := range w.Traffic {
		out[i] = v.Rect
	}
	return out
}

// NPCRects returns the current footprint of every NPC.
func (w *World) NPCRects() []core.Rect {
	out := make([]core.Rect, len(w.NPCs))
	for i, n := range w.NPCs {
		out[i] = n.Rect
	}
	return out
}

// CollisionArea describes the world for the nearest-safe-position search.
func (w *World) CollisionArea() collision.Area {
	return collision.Area{
		Width:   w.params.Width,
		Height:  w.params.Height,
		Static:  w.BuildingRects(),
		Dynamic: w.TrafficRects(),
	}
}
