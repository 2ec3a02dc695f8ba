package world

import (
	"math"

	"github.com/vovakirdan/bike-city/internal/core"
)

// Update rule constants.
const (
	pollutionDecay     = 0.9995
	carPollutionRate   = 0.001
	carPollutionRadius = 50
	laneSwitchChance   = 0.01
	laneSwitchRadius   = 30
	waypointArrival    = 5
	dayLengthTicks     = 1000
)

// Update advances every dynamic entity by exactly one tick.
func (w *World) Update() {
	w.tick++

	for i := range w.Traffic {
		w.Traffic[i].advance(w.params.Width, w.params.Height)
	}

	for i := range w.NPCs {
		npc := &w.NPCs[i]
		switch npc.Mode {
		case NPCLane:
			w.advanceLaneNPC(npc)
		case NPCWaypoint:
			w.advanceWaypointNPC(npc)
		}
	}

	w.updatePollution()

	w.dayNight = math.Mod(float64(w.tick)/dayLengthTicks, 1)
}

// advance moves the vehicle along its heading and wraps it around the world
// once it has fully left the visible area.
func (v *Vehicle) advance(worldW, worldH float64) {
	d := v.Dir.Delta()
	v.X += d.X * v.Speed
	v.Y += d.Y * v.Speed
	v.wrap(worldW, worldH)
}

func (v *Vehicle) wrap(worldW, worldH float64) {
	switch v.Dir {
	case core.DirRight:
		if v.X > worldW+v.W {
			v.X = -v.W
		}
	case core.DirLeft:
		if v.X < -v.W {
			v.X = worldW + v.W
		}
	case core.DirDown:
		if v.Y > worldH+v.H {
			v.Y = -v.H
		}
	case core.DirUp:
		if v.Y < -v.H {
			v.Y = worldH + v.H
		}
	}
}

func (w *World) advanceLaneNPC(n *NPC) {
	d := n.Dir.Delta()
	n.X += d.X * n.Speed
	n.Y += d.Y * n.Speed

	// Lane walkers wrap inside the world instead of leaving it.
	maxX := w.params.Width - n.W
	maxY := w.params.Height - n.H
	if n.X > maxX {
		n.X = 0
	} else if n.X < 0 {
		n.X = maxX
	}
	if n.Y > maxY {
		n.Y = 0
	} else if n.Y < 0 {
		n.Y = maxY
	}

	// Draw every tick so the random sequence does not depend on position.
	roll := w.rng.Float64()
	if roll < laneSwitchChance && nearIntersection(core.Vec{X: n.X, Y: n.Y}, laneSwitchRadius) {
		n.Lane = n.Lane.Other()
		n.Dir = w.laneDirection(n.Lane)
	}

	w.keepOnLane(n)
}

// keepOnLane pulls the NPC back onto the nearest road running along its lane.
func (w *World) keepOnLane(n *NPC) {
	road, ok := w.nearestRoad(n.Center(), n.Lane)
	if !ok {
		return
	}
	switch n.Lane {
	case Horizontal:
		n.Y = core.ClampF(n.Y, road.Y, road.Bottom()-n.H)
	case Vertical:
		n.X = core.ClampF(n.X, road.X, road.Right()-n.W)
	}
}

// nearestRoad returns the road of the given orientation whose center line is
// closest to p.
func (w *World) nearestRoad(p core.Vec, o Orientation) (Road, bool) {
	var (
		best     Road
		bestDist = math.Inf(1)
		found    bool
	)
	for _, r := range w.Roads {
		if r.Orientation != o {
			continue
		}
		c := r.Center()
		var d float64
		switch o {
		case Horizontal:
			d = math.Abs(p.Y - c.Y)
		case Vertical:
			d = math.Abs(p.X - c.X)
		}
		if d < bestDist {
			best, bestDist, found = r, d, true
		}
	}
	return best, found
}

func nearIntersection(p core.Vec, radius float64) bool {
	for _, c := range intersections {
		if core.Distance(p.X, p.Y, c.X, c.Y) < radius {
			return true
		}
	}
	return false
}

func (w *World) advanceWaypointNPC(n *NPC) {
	dx := n.TargetX - n.X
	dy := n.TargetY - n.Y
	dist := math.Hypot(dx, dy)

	if dist < waypointArrival {
		n.TargetX = w.rng.Float64() * (w.params.Width - n.W)
		n.TargetY = w.rng.Float64() * (w.params.Height - n.H)
	} else {
		n.X += dx / dist * n.Speed
		n.Y += dy / dist * n.Speed
		n.Dir = headingOf(dx, dy)
	}

	n.X = core.ClampF(n.X, 0, w.params.Width-n.W)
	n.Y = core.ClampF(n.Y, 0, w.params.Height-n.H)
}

// headingOf returns the cardinal direction of the dominant axis of (dx, dy).
func headingOf(dx, dy float64) core.Direction {
	if math.Abs(dx) >= math.Abs(dy) {
		if dx >= 0 {
			return core.DirRight
		}
		return core.DirLeft
	}
	if dy >= 0 {
		return core.DirDown
	}
	return core.DirUp
}

func (w *World) updatePollution() {
	for i := range w.Pollution {
		h := &w.Pollution[i]
		h.Intensity *= pollutionDecay

		for _, v := range w.Traffic {
			switch v.Kind {
			case VehicleCar:
				// Measured to the car's top-left corner.
				if core.Distance(h.X, h.Y, v.X, v.Y) < carPollutionRadius {
					h.Intensity = math.Min(1, h.Intensity+carPollutionRate)
				}
			case VehicleBus:
				// Buses are counted as clean transport.
			}
		}

		h.Intensity = core.ClampF(h.Intensity, 0, 1)
	}
}
