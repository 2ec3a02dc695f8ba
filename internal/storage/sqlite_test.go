package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/bike-city/internal/backend"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestReopenKeepsDataAndDoesNotDuplicateCatalog(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.CreatePlayer(ctx, "rider")
	if err != nil {
		t.Fatalf("CreatePlayer() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.GetPlayer(ctx, id); err != nil {
		t.Errorf("GetPlayer() after reopen failed: %v", err)
	}
	bikes, err := store.ListBicycles(ctx)
	if err != nil {
		t.Fatalf("ListBicycles() failed: %v", err)
	}
	if len(bikes) != 4 {
		t.Errorf("got %d bicycles after reopen, expected 4", len(bikes))
	}
}

func TestCreatePlayerDefaults(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.CreatePlayer(ctx, "  Alex  ")
	if err != nil {
		t.Fatalf("CreatePlayer() failed: %v", err)
	}

	p, err := store.GetPlayer(ctx, id)
	if err != nil {
		t.Fatalf("GetPlayer() failed: %v", err)
	}

	if p.Name != "Alex" {
		t.Errorf("Name = %q, expected trimmed %q", p.Name, "Alex")
	}
	if p.Position != (backend.Position{X: 220, Y: 170}) {
		t.Errorf("Position = %+v, expected (220, 170)", p.Position)
	}
	if p.Health != 100 || p.Stamina != 100 || p.Money != 500 || p.EcoPoints != 0 {
		t.Errorf("stats = health %d stamina %d money %d eco %d", p.Health, p.Stamina, p.Money, p.EcoPoints)
	}
	if p.BicycleID != "city_bike_basic" {
		t.Errorf("BicycleID = %q, expected city_bike_basic", p.BicycleID)
	}
	if p.CurrentMission != "" || len(p.CompletedMissions) != 0 {
		t.Errorf("missions = current %q completed %v, expected none", p.CurrentMission, p.CompletedMissions)
	}
	if p.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestCreatePlayerRejectsBadNames(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"", "   ", "abcdefghijklmnopqrstuvwxyz0123456789"} {
		if _, err := store.CreatePlayer(context.Background(), name); !errors.Is(err, backend.ErrInvalidName) {
			t.Errorf("CreatePlayer(%q) error = %v, expected ErrInvalidName", name, err)
		}
	}
}

func TestGetPlayerNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.GetPlayer(context.Background(), "missing"); !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("GetPlayer() error = %v, expected ErrNotFound", err)
	}
}

func TestSetPlayerPosition(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	id, _ := store.CreatePlayer(ctx, "rider")

	if err := store.SetPlayerPosition(ctx, id, 512.5, 64); err != nil {
		t.Fatalf("SetPlayerPosition() failed: %v", err)
	}
	p, _ := store.GetPlayer(ctx, id)
	if p.Position.X != 512.5 || p.Position.Y != 64 {
		t.Errorf("Position = %+v, expected (512.5, 64)", p.Position)
	}

	if err := store.SetPlayerPosition(ctx, "missing", 1, 1); !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("SetPlayerPosition(missing) error = %v, expected ErrNotFound", err)
	}
}

func TestPurchaseBicycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	id, _ := store.CreatePlayer(ctx, "rider")

	p, err := store.PurchaseBicycle(ctx, id, "mountain_bike_basic")
	if err != nil {
		t.Fatalf("PurchaseBicycle() failed: %v", err)
	}
	if p.BicycleID != "mountain_bike_basic" || p.Money != 150 {
		t.Errorf("after purchase: bicycle %q money %d, expected mountain_bike_basic 150", p.BicycleID, p.Money)
	}

	// 150 left, electric costs 800
	if _, err := store.PurchaseBicycle(ctx, id, "electric_bike_basic"); !errors.Is(err, backend.ErrInsufficientFunds) {
		t.Errorf("PurchaseBicycle(electric) error = %v, expected ErrInsufficientFunds", err)
	}
	p, _ = store.GetPlayer(ctx, id)
	if p.Money != 150 || p.BicycleID != "mountain_bike_basic" {
		t.Errorf("failed purchase changed the player: money %d bicycle %q", p.Money, p.BicycleID)
	}

	if _, err := store.PurchaseBicycle(ctx, id, "tandem"); !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("PurchaseBicycle(unknown) error = %v, expected ErrNotFound", err)
	}
	if _, err := store.PurchaseBicycle(ctx, "missing", "city_bike_basic"); !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("PurchaseBicycle(missing player) error = %v, expected ErrNotFound", err)
	}
}

func TestMissionLifecycle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	id, _ := store.CreatePlayer(ctx, "rider")

	// Completing before starting is rejected
	if _, err := store.CompleteMission(ctx, id, "cleanup_park"); !errors.Is(err, backend.ErrMissionNotActive) {
		t.Errorf("CompleteMission() before start error = %v, expected ErrMissionNotActive", err)
	}

	if err := store.StartMission(ctx, id, "cleanup_park"); err != nil {
		t.Fatalf("StartMission() failed: %v", err)
	}

	// Only one active mission at a time
	if err := store.StartMission(ctx, id, "recycling_drive"); !errors.Is(err, backend.ErrMissionActive) {
		t.Errorf("StartMission(second) error = %v, expected ErrMissionActive", err)
	}
	// Completing a mission that is not the active one is rejected
	if _, err := store.CompleteMission(ctx, id, "recycling_drive"); !errors.Is(err, backend.ErrMissionNotActive) {
		t.Errorf("CompleteMission(other) error = %v, expected ErrMissionNotActive", err)
	}

	rewards, err := store.CompleteMission(ctx, id, "cleanup_park")
	if err != nil {
		t.Fatalf("CompleteMission() failed: %v", err)
	}
	if rewards != (backend.Rewards{EcoPoints: 50, Money: 100}) {
		t.Errorf("rewards = %+v, expected 50 eco / 100 money", rewards)
	}

	p, _ := store.GetPlayer(ctx, id)
	if p.EcoPoints != 50 || p.Money != 600 {
		t.Errorf("after rewards: eco %d money %d, expected 50 and 600", p.EcoPoints, p.Money)
	}
	if p.CurrentMission != "" {
		t.Errorf("CurrentMission = %q, expected cleared", p.CurrentMission)
	}
	if !p.HasCompleted("cleanup_park") {
		t.Errorf("CompletedMissions = %v, expected cleanup_park", p.CompletedMissions)
	}

	// Completed missions cannot be restarted
	if err := store.StartMission(ctx, id, "cleanup_park"); !errors.Is(err, backend.ErrMissionCompleted) {
		t.Errorf("StartMission(completed) error = %v, expected ErrMissionCompleted", err)
	}
	// Another player is unaffected
	other, _ := store.CreatePlayer(ctx, "other")
	if err := store.StartMission(ctx, other, "cleanup_park"); err != nil {
		t.Errorf("StartMission() for another player failed: %v", err)
	}

	if err := store.StartMission(ctx, id, "moon_landing"); !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("StartMission(unknown) error = %v, expected ErrNotFound", err)
	}
}

func TestCatalog(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	bikes, err := store.ListBicycles(ctx)
	if err != nil {
		t.Fatalf("ListBicycles() failed: %v", err)
	}
	if len(bikes) != 4 || bikes[0].ID != "city_bike_basic" {
		t.Errorf("bicycles = %+v, expected 4 starting with the cheapest", bikes)
	}

	shops, err := store.ListShops(ctx)
	if err != nil {
		t.Fatalf("ListShops() failed: %v", err)
	}
	if len(shops) != 3 {
		t.Fatalf("got %d shops, expected 3", len(shops))
	}
	for _, s := range shops {
		if len(s.Inventory) != 3 || len(s.Dialogue) != 3 {
			t.Errorf("shop %s has %d items and %d lines", s.ID, len(s.Inventory), len(s.Dialogue))
		}
	}

	missions, err := store.ListMissions(ctx)
	if err != nil {
		t.Fatalf("ListMissions() failed: %v", err)
	}
	if len(missions) != 3 {
		t.Fatalf("got %d missions, expected 3", len(missions))
	}
	for _, m := range missions {
		if m.ID == "install_solar_panels" && len(m.Objectives.Locations) != 3 {
			t.Errorf("solar mission locations = %v", m.Objectives.Locations)
		}
		if m.ID == "cleanup_park" && (m.Objectives.Location == nil || m.Objectives.Location.X != 300) {
			t.Errorf("cleanup mission location = %v", m.Objectives.Location)
		}
	}
}

func TestListPlayersOrdersByEcoPoints(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	slow, _ := store.CreatePlayer(ctx, "slow")
	fast, _ := store.CreatePlayer(ctx, "fast")
	if err := store.StartMission(ctx, fast, "install_solar_panels"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.CompleteMission(ctx, fast, "install_solar_panels"); err != nil {
		t.Fatal(err)
	}

	players, err := store.ListPlayers(ctx, 10)
	if err != nil {
		t.Fatalf("ListPlayers() failed: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("got %d players, expected 2", len(players))
	}
	if players[0].ID != fast || players[1].ID != slow {
		t.Errorf("order = %s, %s; expected fast first", players[0].Name, players[1].Name)
	}
	if len(players[0].CompletedMissions) != 1 {
		t.Errorf("leader completed missions = %v", players[0].CompletedMissions)
	}
}

func TestFindPlayerByName(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, _ := store.CreatePlayer(ctx, "sshuser")
	p, err := store.FindPlayerByName(ctx, "sshuser")
	if err != nil {
		t.Fatalf("FindPlayerByName() failed: %v", err)
	}
	if p.ID != id {
		t.Errorf("FindPlayerByName() = %s, expected %s", p.ID, id)
	}

	if _, err := store.FindPlayerByName(ctx, "nobody"); !errors.Is(err, backend.ErrNotFound) {
		t.Errorf("FindPlayerByName(nobody) error = %v, expected ErrNotFound", err)
	}
}
