// Package collision implements the geometry queries the simulation gates
// movement with: rectangle and circle overlap, world bounds, push-out
// resolution against obstacles and the nearest-safe-position search.
//
// Every function is pure. Resolution helpers compute a position; the caller
// decides whether to apply it.
package collision

import (
	"math"

	"github.com/vovakirdan/bike-city/internal/core"
)

// Margin is the clearance left between an entity and an obstacle it was
// pushed out of, so the next tick does not start in contact.
const Margin = 2.0

// Ring search parameters for NearestSafePosition.
const (
	ringStep       = 5.0
	minRingSamples = 8
)

// RectsOverlap reports whether two rectangles intersect. Edges that only
// touch do not count as a collision.
func RectsOverlap(a, b core.Rect) bool {
	return a.X < b.Right() &&
		a.Right() > b.X &&
		a.Y < b.Bottom() &&
		a.Bottom() > b.Y
}

// RectCircleOverlap reports whether a rectangle and a circle intersect.
// A circle touching the rectangle at exactly its radius overlaps.
func RectCircleOverlap(r core.Rect, c core.Circle) bool {
	distX := math.Abs(c.X - r.X - r.W/2)
	distY := math.Abs(c.Y - r.Y - r.H/2)

	if distX > r.W/2+c.R || distY > r.H/2+c.R {
		return false
	}
	if distX <= r.W/2 || distY <= r.H/2 {
		return true
	}

	dx := distX - r.W/2
	dy := distY - r.H/2
	return dx*dx+dy*dy <= c.R*c.R
}

// WithinWorldBounds reports whether all four corners of r lie inside
// [0, worldW] x [0, worldH].
func WithinWorldBounds(r core.Rect, worldW, worldH float64) bool {
	return r.X >= 0 &&
		r.Y >= 0 &&
		r.Right() <= worldW &&
		r.Bottom() <= worldH
}

// FirstOverlap returns the index of the first rectangle in rects that
// overlaps entity.
func FirstOverlap(entity core.Rect, rects []core.Rect) (int, bool) {
	for i, r := range rects {
		if RectsOverlap(entity, r) {
			return i, true
		}
	}
	return -1, false
}

// OverlapsAny reports whether entity overlaps any of rects.
func OverlapsAny(entity core.Rect, rects []core.Rect) bool {
	_, hit := FirstOverlap(entity, rects)
	return hit
}

// ResolveAgainstObstacles moves the entity's proposed position out of every
// obstacle it overlaps, pushing along the axis of smaller penetration.
// Obstacles are handled in order and each test uses the position produced by
// the previous ones, so the result is order dependent and not guaranteed to be
// clear of all obstacles.
func ResolveAgainstObstacles(entity core.Rect, proposedX, proposedY float64, obstacles []core.Rect) core.Vec {
	test := entity.At(proposedX, proposedY)

	for _, obstacle := range obstacles {
		if !RectsOverlap(test, obstacle) {
			continue
		}

		overlapX := math.Min(test.Right()-obstacle.X, obstacle.Right()-test.X)
		overlapY := math.Min(test.Bottom()-obstacle.Y, obstacle.Bottom()-test.Y)

		if overlapX < overlapY {
			if test.X < obstacle.X {
				test.X = obstacle.X - test.W - Margin
			} else {
				test.X = obstacle.Right() + Margin
			}
		} else {
			if test.Y < obstacle.Y {
				test.Y = obstacle.Y - test.H - Margin
			} else {
				test.Y = obstacle.Bottom() + Margin
			}
		}
	}

	return core.Vec{X: test.X, Y: test.Y}
}

// Area is the part of the world an entity must stay clear of: the world
// bounds, static obstacles (buildings) and dynamic ones (traffic).
type Area struct {
	Width   float64
	Height  float64
	Static  []core.Rect
	Dynamic []core.Rect
}

// IsPositionSafe reports whether entity is inside the area bounds and clear of
// every static and dynamic obstacle.
func IsPositionSafe(entity core.Rect, area Area) bool {
	if !WithinWorldBounds(entity, area.Width, area.Height) {
		return false
	}
	if OverlapsAny(entity, area.Static) {
		return false
	}
	return !OverlapsAny(entity, area.Dynamic)
}

// NearestSafePosition searches concentric rings around the entity for a
// position that IsPositionSafe accepts. Rings start at radius 1 and grow by 5
// up to maxDistance; each ring is sampled proportionally to its circumference
// with at least 8 samples. When nothing is found the original position is
// returned unchanged.
func NearestSafePosition(entity core.Rect, area Area, maxDistance float64) core.Vec {
	origin := core.Vec{X: entity.X, Y: entity.Y}

	for radius := 1.0; radius <= maxDistance; radius += ringStep {
		for _, pos := range RingSamples(origin, radius) {
			if IsPositionSafe(entity.At(pos.X, pos.Y), area) {
				return pos
			}
		}
	}

	return origin
}

// RingSamples returns evenly spaced points on the circle of the given radius
// around center, starting at angle zero.
func RingSamples(center core.Vec, radius float64) []core.Vec {
	steps := int(math.Floor(2 * math.Pi * radius / ringStep))
	if steps < minRingSamples {
		steps = minRingSamples
	}

	samples := make([]core.Vec, 0, steps)
	for i := 0; i < steps; i++ {
		angle := float64(i) / float64(steps) * 2 * math.Pi
		samples = append(samples, core.Vec{
			X: center.X + math.Cos(angle)*radius,
			Y: center.Y + math.Sin(angle)*radius,
		})
	}
	return samples
}

// CanInteract reports whether the centers of a and b are at most maxDistance apart.
func CanInteract(a, b core.Rect, maxDistance float64) bool {
	ca, cb := a.Center(), b.Center()
	return core.Distance(ca.X, ca.Y, cb.X, cb.Y) <= maxDistance
}

// ObstacleKind classifies what an entity ran into for damage purposes.
type ObstacleKind int

const (
	ObstacleOther ObstacleKind = iota
	ObstacleCar
	ObstacleBus
	ObstacleBuilding
)

// String returns a human-readable name for the obstacle kind.
func (k ObstacleKind) String() string {
	switch k {
	case ObstacleCar:
		return "car"
	case ObstacleBus:
		return "bus"
	case ObstacleBuilding:
		return "building"
	default:
		return "other"
	}
}

// CollisionDamage returns the health a hit against the given obstacle would
// cost. The simulation reports hits but does not apply damage.
func CollisionDamage(kind ObstacleKind) int {
	switch kind {
	case ObstacleBus:
		return 30
	case ObstacleCar:
		return 20
	case ObstacleBuilding:
		return 10
	default:
		return 5
	}
}
