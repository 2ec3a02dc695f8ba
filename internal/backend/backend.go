// Package backend defines the persistence contract the game core talks to:
// player records, the bicycle/shop/mission catalog and the mission rules.
//
// Two implementations exist: storage.Store keeps everything in SQLite in the
// same process, Client talks to a remote api.Server over HTTP. Both report
// rule violations with the sentinel errors below so callers can use errors.Is
// without caring which one they hold.
package backend

import (
	"context"
	"time"
)

// Backend is the persistence adapter. The core never persists anything
// itself; it calls these methods and folds the results into local state.
type Backend interface {
	CreatePlayer(ctx context.Context, name string) (string, error)
	GetPlayer(ctx context.Context, id string) (PlayerRecord, error)
	SetPlayerPosition(ctx context.Context, id string, x, y float64) error
	PurchaseBicycle(ctx context.Context, id, bicycleID string) (PlayerRecord, error)
	StartMission(ctx context.Context, id, missionID string) error
	CompleteMission(ctx context.Context, id, missionID string) (Rewards, error)
	ListBicycles(ctx context.Context) ([]Bicycle, error)
	ListShops(ctx context.Context) ([]ShopInfo, error)
	ListMissions(ctx context.Context) ([]MissionInfo, error)
}

// Position is a point in world units.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerRecord is the persisted player.
type PlayerRecord struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Position          Position  `json:"position"`
	Health            int       `json:"health"`
	Stamina           int       `json:"stamina"`
	EcoPoints         int       `json:"eco_points"`
	Money             int       `json:"money"`
	BicycleID         string    `json:"bicycle_id"`
	CompletedMissions []string  `json:"completed_missions"`
	CurrentMission    string    `json:"current_mission,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// HasCompleted reports whether the player finished the mission.
func (p PlayerRecord) HasCompleted(missionID string) bool {
	for _, id := range p.CompletedMissions {
		if id == missionID {
			return true
		}
	}
	return false
}

// Bicycle is a purchasable bicycle model.
type Bicycle struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"` // "city", "mountain", "electric", "cargo"
	Speed         float64 `json:"speed"`
	Durability    int     `json:"durability"`
	EcoEfficiency float64 `json:"eco_efficiency"`
	UpgradeLevel  int     `json:"upgrade_level"`
	Price         int     `json:"price"`
}

// ShopItem is one entry of a shop inventory.
type ShopItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int    `json:"price,omitempty"`
	BuyPrice  int    `json:"buy_price,omitempty"` // What a recycling center pays per item
	EcoImpact int    `json:"eco_impact,omitempty"`
	Capacity  int    `json:"capacity,omitempty"`
	Energy    int    `json:"energy,omitempty"`
}

// ShopInfo describes a shop and its keeper.
type ShopInfo struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"` // "bike_repair", "eco_store", "recycling_center"
	Position  Position   `json:"position"`
	Inventory []ShopItem `json:"inventory"`
	Dialogue  []string   `json:"npc_dialogue"`
}

// MissionObjectives lists what a mission asks for.
type MissionObjectives struct {
	Required  int        `json:"required"`
	Location  *Position  `json:"location,omitempty"`
	Locations []Position `json:"locations,omitempty"`
	Types     []string   `json:"types,omitempty"`
}

// Rewards are paid out when a mission is completed.
type Rewards struct {
	EcoPoints int `json:"eco_points"`
	Money     int `json:"money"`
}

// MissionInfo describes a mission in the catalog.
type MissionInfo struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Type        string            `json:"type"` // "pollution_cleanup", "renewable_energy", "recycling"
	Objectives  MissionObjectives `json:"objectives"`
	Rewards     Rewards           `json:"rewards"`
}
