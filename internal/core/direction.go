package core

// Direction is a cardinal heading, numbered clockwise from Up.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Horizontal reports whether the direction moves along the x axis.
func (d Direction) Horizontal() bool {
	return d == DirLeft || d == DirRight
}

// Delta returns the unit step for the direction in screen coordinates
// (y grows downward).
func (d Direction) Delta() Vec {
	switch d {
	case DirUp:
		return Vec{Y: -1}
	case DirRight:
		return Vec{X: 1}
	case DirDown:
		return Vec{Y: 1}
	case DirLeft:
		return Vec{X: -1}
	default:
		return Vec{}
	}
}
