package game

import (
	"github.com/vovakirdan/bike-city/internal/backend"
	"github.com/vovakirdan/bike-city/internal/config"
	"github.com/vovakirdan/bike-city/internal/core"
)

// Player is the locally authoritative state of the rider. Position is owned
// by the session between syncs; everything else is folded in from backend
// records.
type Player struct {
	core.Rect
	ID        string
	Name      string
	Dir       core.Direction
	Moving    bool
	Health    int
	Stamina   int
	EcoPoints int
	Money     int
	BicycleID string
	Mission   string   // Active mission ID, empty when none
	Completed []string // Completed mission IDs
}

// PlayerView is the read-only projection of the player handed to renderers.
type PlayerView struct {
	X, Y          float64
	Width, Height float64
	Direction     core.Direction
	IsMoving      bool
	Health        int
	Stamina       int
	EcoPoints     int
	Money         int
	Name          string
	Bicycle       string // Display name of the equipped bicycle
}

func newPlayer(rec backend.PlayerRecord, cfg config.PlayerConfig) Player {
	p := Player{
		Rect: core.NewRect(rec.Position.X, rec.Position.Y, cfg.Width, cfg.Height),
		ID:   rec.ID,
		Name: rec.Name,
		Dir:  core.DirDown,
	}
	p.apply(rec)
	return p
}

// apply folds a backend record into the player, keeping the local position.
func (p *Player) apply(rec backend.PlayerRecord) {
	p.Health = rec.Health
	p.Stamina = rec.Stamina
	p.EcoPoints = rec.EcoPoints
	p.Money = rec.Money
	p.BicycleID = rec.BicycleID
	p.Mission = rec.CurrentMission
	p.Completed = append(p.Completed[:0], rec.CompletedMissions...)
}

// bicycle resolves the equipped bicycle in the catalog. An unknown ID falls
// back to the first catalog entry; an empty catalog means riding on foot.
func (p Player) bicycle(catalog []backend.Bicycle) (backend.Bicycle, bool) {
	if b, ok := backend.FindBicycle(catalog, p.BicycleID); ok {
		return b, true
	}
	if len(catalog) > 0 {
		return catalog[0], true
	}
	return backend.Bicycle{}, false
}

func (p Player) view(catalog []backend.Bicycle) PlayerView {
	v := PlayerView{
		X:         p.X,
		Y:         p.Y,
		Width:     p.W,
		Height:    p.H,
		Direction: p.Dir,
		IsMoving:  p.Moving,
		Health:    p.Health,
		Stamina:   p.Stamina,
		EcoPoints: p.EcoPoints,
		Money:     p.Money,
		Name:      p.Name,
	}
	if b, ok := p.bicycle(catalog); ok {
		v.Bicycle = b.Name
	}
	return v
}
