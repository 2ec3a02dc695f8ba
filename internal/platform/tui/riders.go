package tui

import "sync"

// RiderRegistry tracks which players are riding right now, so one player
// record is never driven by two connections at once.
// Thread-safe for concurrent access.
type RiderRegistry struct {
	mu     sync.Mutex
	riders map[string]string // player ID -> remote address
}

// NewRiderRegistry creates an empty registry.
func NewRiderRegistry() *RiderRegistry {
	return &RiderRegistry{
		riders: make(map[string]string),
	}
}

// Claim marks playerID as riding from remote. It returns false, and the
// address holding the claim, when the player is already riding.
func (r *RiderRegistry) Claim(playerID, remote string) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if holder, ok := r.riders[playerID]; ok {
		return false, holder
	}
	r.riders[playerID] = remote
	return true, ""
}

// Release ends the claim on playerID.
func (r *RiderRegistry) Release(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.riders, playerID)
}

// Count returns the number of players riding.
func (r *RiderRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.riders)
}
