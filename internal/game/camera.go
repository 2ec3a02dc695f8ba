package game

import "math"

// Camera is the top-left world coordinate of the visible viewport.
type Camera struct {
	X, Y float64
}

// Follow centers the viewport on (x, y) and clamps it to the world, so the
// camera stays within [0, world-view] on each axis. A world smaller than the
// viewport pins that axis to 0.
func Follow(x, y, viewW, viewH, worldW, worldH float64) Camera {
	return Camera{
		X: clampAxis(x-viewW/2, worldW-viewW),
		Y: clampAxis(y-viewH/2, worldH-viewH),
	}
}

func clampAxis(v, limit float64) float64 {
	return math.Max(0, math.Min(v, limit))
}

// ToView converts a world coordinate into viewport-relative coordinates.
func (c Camera) ToView(x, y float64) (float64, float64) {
	return x - c.X, y - c.Y
}
