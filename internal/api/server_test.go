package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/bike-city/internal/backend"
	"github.com/vovakirdan/bike-city/internal/storage"
)

func newTestAPI(t *testing.T) (*backend.Client, *httptest.Server) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ts := httptest.NewServer(NewServer(store, nil).Handler())
	t.Cleanup(ts.Close)

	return backend.NewClient(ts.URL, backend.WithHTTPClient(ts.Client())), ts
}

func TestHealth(t *testing.T) {
	client, _ := newTestAPI(t)
	if err := client.Health(context.Background()); err != nil {
		t.Errorf("Health() failed: %v", err)
	}
}

func TestClientRoundTrip(t *testing.T) {
	client, _ := newTestAPI(t)
	ctx := context.Background()

	id, err := client.CreatePlayer(ctx, "courier")
	if err != nil {
		t.Fatalf("CreatePlayer() failed: %v", err)
	}

	p, err := client.GetPlayer(ctx, id)
	if err != nil {
		t.Fatalf("GetPlayer() failed: %v", err)
	}
	if p.Name != "courier" || p.Money != 500 || p.Position != (backend.Position{X: 220, Y: 170}) {
		t.Errorf("GetPlayer() = %+v", p)
	}

	if err := client.SetPlayerPosition(ctx, id, 333.25, 190); err != nil {
		t.Fatalf("SetPlayerPosition() failed: %v", err)
	}
	p, _ = client.GetPlayer(ctx, id)
	if p.Position != (backend.Position{X: 333.25, Y: 190}) {
		t.Errorf("Position = %+v, expected (333.25, 190)", p.Position)
	}

	p, err = client.PurchaseBicycle(ctx, id, "mountain_bike_basic")
	if err != nil {
		t.Fatalf("PurchaseBicycle() failed: %v", err)
	}
	if p.BicycleID != "mountain_bike_basic" || p.Money != 150 {
		t.Errorf("after purchase = bicycle %q money %d", p.BicycleID, p.Money)
	}

	if err := client.StartMission(ctx, id, "recycling_drive"); err != nil {
		t.Fatalf("StartMission() failed: %v", err)
	}
	rewards, err := client.CompleteMission(ctx, id, "recycling_drive")
	if err != nil {
		t.Fatalf("CompleteMission() failed: %v", err)
	}
	if rewards != (backend.Rewards{EcoPoints: 75, Money: 150}) {
		t.Errorf("rewards = %+v", rewards)
	}

	p, _ = client.GetPlayer(ctx, id)
	if !p.HasCompleted("recycling_drive") || p.EcoPoints != 75 || p.Money != 300 {
		t.Errorf("after completion = %+v", p)
	}
}

func TestClientSeesSentinelErrors(t *testing.T) {
	client, _ := newTestAPI(t)
	ctx := context.Background()
	id, _ := client.CreatePlayer(ctx, "broke")

	tests := []struct {
		name     string
		call     func() error
		expected error
	}{
		{
			name:     "unknown player",
			call:     func() error { _, err := client.GetPlayer(ctx, "nobody"); return err },
			expected: backend.ErrNotFound,
		},
		{
			name:     "empty name",
			call:     func() error { _, err := client.CreatePlayer(ctx, ""); return err },
			expected: backend.ErrInvalidName,
		},
		{
			name:     "too expensive",
			call:     func() error { _, err := client.PurchaseBicycle(ctx, id, "electric_bike_basic"); return err },
			expected: backend.ErrInsufficientFunds,
		},
		{
			name:     "complete without start",
			call:     func() error { _, err := client.CompleteMission(ctx, id, "cleanup_park"); return err },
			expected: backend.ErrMissionNotActive,
		},
		{
			name:     "unknown mission",
			call:     func() error { return client.StartMission(ctx, id, "nope") },
			expected: backend.ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.call(); !errors.Is(err, tc.expected) {
				t.Errorf("error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

func TestCatalogRoutes(t *testing.T) {
	client, _ := newTestAPI(t)
	ctx := context.Background()

	bikes, err := client.ListBicycles(ctx)
	if err != nil || len(bikes) != 4 {
		t.Errorf("ListBicycles() = %d items, err %v", len(bikes), err)
	}
	shops, err := client.ListShops(ctx)
	if err != nil || len(shops) != 3 {
		t.Errorf("ListShops() = %d items, err %v", len(shops), err)
	}
	missions, err := client.ListMissions(ctx)
	if err != nil || len(missions) != 3 {
		t.Errorf("ListMissions() = %d items, err %v", len(missions), err)
	}
}

func TestSetPositionRejectsBadNumbers(t *testing.T) {
	_, ts := newTestAPI(t)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/player/abc/position?x=left&y=1", nil)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, expected %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestPreflightAllowsAnyOrigin(t *testing.T) {
	_, ts := newTestAPI(t)

	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/bicycles", nil)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, expected 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, expected *", got)
	}
}
