package core

// Key represents a semantic game key, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Key int

const (
	KeyNone            Key = iota
	KeyUp                  // W, Up arrow
	KeyDown                // S, Down arrow
	KeyLeft                // A, Left arrow
	KeyRight               // D, Right arrow
	KeySprint              // Shift modifier or capital WASD
	KeyInteractShop        // E - look for a shop nearby
	KeyInteractMission     // F - look for a mission nearby
	KeyConfirm             // Enter - accept the current prompt
	KeyCancel              // Esc - dismiss the current prompt
	KeyMenu                // Tab - toggle the shop/mission overlay
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeySprint:
		return "Sprint"
	case KeyInteractShop:
		return "InteractShop"
	case KeyInteractMission:
		return "InteractMission"
	case KeyConfirm:
		return "Confirm"
	case KeyCancel:
		return "Cancel"
	case KeyMenu:
		return "Menu"
	default:
		return "Unknown"
	}
}

// InputSnapshot is the set of keys held down during one simulation tick.
type InputSnapshot struct {
	// Keys maps key identifiers to whether they are currently down.
	Keys map[Key]bool
}

// NewInputSnapshot creates an empty snapshot.
func NewInputSnapshot(keys ...Key) InputSnapshot {
	s := InputSnapshot{Keys: make(map[Key]bool, len(keys))}
	for _, k := range keys {
		s.Keys[k] = true
	}
	return s
}

// Set marks a key as held.
func (s *InputSnapshot) Set(k Key) {
	if s.Keys == nil {
		s.Keys = make(map[Key]bool)
	}
	s.Keys[k] = true
}

// Has returns true if the given key is held.
func (s InputSnapshot) Has(k Key) bool {
	if s.Keys == nil {
		return false
	}
	return s.Keys[k]
}

// Clear releases all keys.
func (s *InputSnapshot) Clear() {
	for k := range s.Keys {
		delete(s.Keys, k)
	}
}

// Clone creates a copy of this snapshot.
func (s InputSnapshot) Clone() InputSnapshot {
	clone := NewInputSnapshot()
	for k, v := range s.Keys {
		clone.Keys[k] = v
	}
	return clone
}

// InputSource exposes the current key state to the simulation as a pure read.
// Implementations are refreshed by listeners outside the simulation loop.
type InputSource interface {
	CurrentKeys() InputSnapshot
}
