package world

import (
	"math"
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/bike-city/internal/core"
)

func emptyWorld() *World {
	return New(DefaultParams(), rand.New(rand.NewSource(1)))
}

func TestFixedLayoutIgnoresSeed(t *testing.T) {
	a := Generate(DefaultParams(), 1)
	b := Generate(DefaultParams(), 987654321)

	if len(a.Buildings) != 30 {
		t.Errorf("got %d buildings, expected 30", len(a.Buildings))
	}
	if len(a.Roads) != horizontalRoads+verticalRoads {
		t.Errorf("got %d roads, expected %d", len(a.Roads), horizontalRoads+verticalRoads)
	}
	if len(a.Shops) != 3 || len(a.Missions) != 3 {
		t.Errorf("got %d shops and %d missions, expected 3 and 3", len(a.Shops), len(a.Missions))
	}

	if !reflect.DeepEqual(a.Buildings, b.Buildings) {
		t.Error("buildings differ between seeds")
	}
	if !reflect.DeepEqual(a.Roads, b.Roads) {
		t.Error("roads differ between seeds")
	}
	if !reflect.DeepEqual(a.Shops, b.Shops) {
		t.Error("shops differ between seeds")
	}
	if !reflect.DeepEqual(a.Missions, b.Missions) {
		t.Error("missions differ between seeds")
	}
}

func TestDeterminism(t *testing.T) {
	// Two worlds with the same seed should stay identical tick for tick
	w1 := Generate(DefaultParams(), 12345)
	w2 := Generate(DefaultParams(), 12345)

	if !reflect.DeepEqual(w1.Snapshot(), w2.Snapshot()) {
		t.Fatal("initial snapshots differ")
	}

	for i := 0; i < 300; i++ {
		w1.Update()
		w2.Update()

		if i%50 == 0 && !reflect.DeepEqual(w1.Snapshot(), w2.Snapshot()) {
			t.Fatalf("snapshots diverged at tick %d", i)
		}
	}

	if !reflect.DeepEqual(w1.Snapshot(), w2.Snapshot()) {
		t.Error("final snapshots differ")
	}
}

func TestSpawnCounts(t *testing.T) {
	w := Generate(DefaultParams(), 42)

	if len(w.Traffic) != DefaultVehicles {
		t.Errorf("got %d vehicles, expected %d", len(w.Traffic), DefaultVehicles)
	}
	if len(w.NPCs) != DefaultNPCs {
		t.Errorf("got %d NPCs, expected %d", len(w.NPCs), DefaultNPCs)
	}
	if len(w.Recyclables) != DefaultRecyclables {
		t.Errorf("got %d recyclables, expected %d", len(w.Recyclables), DefaultRecyclables)
	}
	if len(w.Pollution) != DefaultHotspots {
		t.Errorf("got %d hotspots, expected %d", len(w.Pollution), DefaultHotspots)
	}

	for i, h := range w.Pollution {
		if h.Intensity < 0.2 || h.Intensity > 1 {
			t.Errorf("hotspot %d intensity %v out of [0.2, 1]", i, h.Intensity)
		}
		if h.Radius < 30 || h.Radius > 80 {
			t.Errorf("hotspot %d radius %v out of [30, 80]", i, h.Radius)
		}
	}

	for i, n := range w.NPCs {
		c := n.Center()
		if !w.IsOnRoad(c.X, c.Y) {
			t.Errorf("NPC %d spawned off-road at (%v, %v)", i, n.X, n.Y)
		}
	}
}

func TestCustomCounts(t *testing.T) {
	p := DefaultParams()
	p.Vehicles = 3
	p.NPCs = 0
	p.Recyclables = 1
	p.Hotspots = 0

	w := Generate(p, 7)
	if len(w.Traffic) != 3 || len(w.NPCs) != 0 || len(w.Recyclables) != 1 || len(w.Pollution) != 0 {
		t.Errorf("counts = %d/%d/%d/%d, expected 3/0/1/0",
			len(w.Traffic), len(w.NPCs), len(w.Recyclables), len(w.Pollution))
	}
}

func TestTrafficWrapAround(t *testing.T) {
	const worldW, worldH = 1200.0, 800.0

	tests := []struct {
		name      string
		vehicle   Vehicle
		expectedX float64
		expectedY float64
	}{
		{
			name:      "right exits past width plus vehicle width",
			vehicle:   Vehicle{Rect: core.NewRect(worldW+24, 100, 24, 12), Dir: core.DirRight, Speed: 1},
			expectedX: -24,
			expectedY: 100,
		},
		{
			name:      "left exits past minus vehicle width",
			vehicle:   Vehicle{Rect: core.NewRect(-24, 100, 24, 12), Dir: core.DirLeft, Speed: 1},
			expectedX: worldW + 24,
			expectedY: 100,
		},
		{
			name:      "down exits past height plus vehicle height",
			vehicle:   Vehicle{Rect: core.NewRect(206, worldH+24, 12, 24), Dir: core.DirDown, Speed: 1},
			expectedX: 206,
			expectedY: -24,
		},
		{
			name:      "up exits past minus vehicle height",
			vehicle:   Vehicle{Rect: core.NewRect(206, -24, 12, 24), Dir: core.DirUp, Speed: 1},
			expectedX: 206,
			expectedY: worldH + 24,
		},
		{
			name:      "inside the world just moves",
			vehicle:   Vehicle{Rect: core.NewRect(600, 100, 24, 12), Dir: core.DirRight, Speed: 2},
			expectedX: 602,
			expectedY: 100,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.vehicle
			v.advance(worldW, worldH)
			if v.X != tc.expectedX || v.Y != tc.expectedY {
				t.Errorf("advance() = (%v, %v), expected (%v, %v)", v.X, v.Y, tc.expectedX, tc.expectedY)
			}
		})
	}
}

func TestCarRaisesNearbyPollution(t *testing.T) {
	w := emptyWorld()
	w.Pollution = []Hotspot{{X: 100, Y: 100, Intensity: 0.5, Radius: 50}}
	w.Traffic = []Vehicle{{Rect: core.NewRect(110, 100, 24, 12), Kind: VehicleCar, Dir: core.DirRight}}

	prev := w.Pollution[0].Intensity
	for i := 0; i < 100; i++ {
		w.Traffic[0].X, w.Traffic[0].Y = 110, 100
		w.Update()

		got := w.Pollution[0].Intensity
		if got > 1 {
			t.Fatalf("tick %d: intensity %v exceeds 1", i, got)
		}
		if got < prev {
			t.Fatalf("tick %d: intensity dropped from %v to %v with a car nearby", i, prev, got)
		}
		prev = got
	}

	if prev <= 0.5 {
		t.Errorf("intensity = %v after 100 ticks, expected it to rise above 0.5", prev)
	}
}

func TestCarPollutionMeasuresFromCorner(t *testing.T) {
	tests := []struct {
		name     string
		car      core.Rect
		expected float64
	}{
		// Corner 48 away, center about 60.
		{"corner in range", core.NewRect(148, 100, 24, 12), 0.5*pollutionDecay + carPollutionRate},
		// Corner about 60 away, center 48.
		{"center in range", core.NewRect(40, 94, 24, 12), 0.5 * pollutionDecay},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := emptyWorld()
			w.Pollution = []Hotspot{{X: 100, Y: 100, Intensity: 0.5, Radius: 50}}
			w.Traffic = []Vehicle{{Rect: tc.car, Kind: VehicleCar}}

			w.Update()

			if got := w.Pollution[0].Intensity; math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("intensity = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBusDoesNotPollute(t *testing.T) {
	w := emptyWorld()
	w.Pollution = []Hotspot{{X: 100, Y: 100, Intensity: 0.5, Radius: 50}}
	w.Traffic = []Vehicle{{Rect: core.NewRect(110, 100, 32, 16), Kind: VehicleBus, Dir: core.DirRight}}

	w.Update()

	if got := w.Pollution[0].Intensity; got != 0.5*pollutionDecay {
		t.Errorf("intensity = %v, expected plain decay to %v", got, 0.5*pollutionDecay)
	}
}

func TestPollutionStaysInRange(t *testing.T) {
	w := Generate(DefaultParams(), 99)
	for i := range w.Pollution {
		if i%2 == 0 {
			w.Pollution[i].Intensity = 1
		} else {
			w.Pollution[i].Intensity = 0
		}
	}
	// Park a car on every hotspot so both decay and growth apply.
	for i, h := range w.Pollution {
		w.Traffic = append(w.Traffic, Vehicle{
			Rect: core.NewRect(h.X, h.Y, 24, 12),
			Kind: VehicleCar,
			Dir:  core.Direction(i % 4),
		})
	}

	for tick := 0; tick < 2000; tick++ {
		w.Update()
		for i, h := range w.Pollution {
			if h.Intensity < 0 || h.Intensity > 1 {
				t.Fatalf("tick %d: hotspot %d intensity %v out of [0, 1]", tick, i, h.Intensity)
			}
		}
	}
}

func TestNPCsStayInBounds(t *testing.T) {
	p := DefaultParams()
	p.NPCs = 60
	p.WaypointShare = 0.5
	w := Generate(p, 2024)

	for tick := 0; tick < 3000; tick++ {
		w.Update()
		for i, n := range w.NPCs {
			if n.X < 0 || n.Y < 0 || n.Right() > w.Width() || n.Bottom() > w.Height() {
				t.Fatalf("tick %d: NPC %d (%v) left the world at (%v, %v)", tick, i, n.Mode, n.X, n.Y)
			}
		}
	}
}

func TestLaneSwitchOnlyNearIntersections(t *testing.T) {
	p := DefaultParams()
	p.NPCs = 100
	p.WaypointShare = 0
	w := Generate(p, 77)

	for tick := 0; tick < 3000; tick++ {
		before := make([]Orientation, len(w.NPCs))
		for i, n := range w.NPCs {
			before[i] = n.Lane
		}

		w.Update()

		for i, n := range w.NPCs {
			if n.Lane == before[i] {
				continue
			}
			if !nearIntersection(core.Vec{X: n.X, Y: n.Y}, laneSwitchRadius) {
				t.Fatalf("tick %d: NPC %d switched lanes at (%v, %v), away from any intersection", tick, i, n.X, n.Y)
			}
			if n.Dir.Horizontal() != (n.Lane == Horizontal) {
				t.Fatalf("tick %d: NPC %d heading %v does not match lane %v", tick, i, n.Dir, n.Lane)
			}
		}
	}
}

func TestLaneSwitchMeasuresFromCorner(t *testing.T) {
	w := emptyWorld()
	w.NPCs = []NPC{
		// Corner 25 from (220, 170), center about 30.4.
		{Rect: core.NewRect(245, 170, 10, 10), Mode: NPCLane, Lane: Horizontal, Dir: core.DirRight},
		// Corner about 36 from (220, 170), center about 22.
		{Rect: core.NewRect(190, 150, 20, 20), Mode: NPCLane, Lane: Horizontal, Dir: core.DirRight},
	}

	switched := [2]bool{}
	for tick := 0; tick < 2000; tick++ {
		w.Update()
		for i, n := range w.NPCs {
			if n.Lane != Horizontal {
				switched[i] = true
			}
		}
	}

	if !switched[0] {
		t.Error("NPC with its corner near an intersection never switched lanes")
	}
	if switched[1] {
		t.Error("NPC with only its center near an intersection switched lanes")
	}
}

func TestWaypointNPCPicksNewTargetOnArrival(t *testing.T) {
	w := emptyWorld()
	w.NPCs = []NPC{{
		Rect:    core.NewRect(100, 100, npcW, npcH),
		Mode:    NPCWaypoint,
		Speed:   1,
		TargetX: 102,
		TargetY: 100,
	}}

	w.Update()

	n := w.NPCs[0]
	if n.X != 100 || n.Y != 100 {
		t.Errorf("NPC moved to (%v, %v) on the arrival tick", n.X, n.Y)
	}
	if n.TargetX == 102 && n.TargetY == 100 {
		t.Error("expected a new target after arrival")
	}
	if n.TargetX < 0 || n.TargetX > w.Width()-n.W || n.TargetY < 0 || n.TargetY > w.Height()-n.H {
		t.Errorf("new target (%v, %v) outside the world", n.TargetX, n.TargetY)
	}
}

func TestWaypointNPCSteersTowardTarget(t *testing.T) {
	w := emptyWorld()
	w.NPCs = []NPC{{
		Rect:    core.NewRect(100, 100, npcW, npcH),
		Mode:    NPCWaypoint,
		Speed:   2,
		TargetX: 100,
		TargetY: 200,
	}}

	w.Update()

	n := w.NPCs[0]
	if n.X != 100 || n.Y != 102 {
		t.Errorf("NPC at (%v, %v), expected (100, 102)", n.X, n.Y)
	}
	if n.Dir != core.DirDown {
		t.Errorf("NPC heading %v, expected Down", n.Dir)
	}
}

func TestCollectRecyclableIsIdempotent(t *testing.T) {
	w := emptyWorld()
	w.Recyclables = []Recyclable{{Rect: core.NewRect(100, 100, 8, 8), Kind: AluminumCan}}

	item, ok := w.CollectRecyclable(104, 104, 20)
	if !ok {
		t.Fatal("expected the first call to collect the item")
	}
	if !item.Collected || item.Kind != AluminumCan {
		t.Errorf("collected item = %+v", item)
	}

	if _, ok := w.CollectRecyclable(104, 104, 20); ok {
		t.Error("second call should find nothing")
	}
	if !w.Recyclables[0].Collected {
		t.Error("item should stay collected")
	}
	if n := w.RemainingRecyclables(); n != 0 {
		t.Errorf("RemainingRecyclables() = %d, expected 0", n)
	}
}

func TestCollectRecyclableOutOfRange(t *testing.T) {
	w := emptyWorld()
	w.Recyclables = []Recyclable{{Rect: core.NewRect(100, 100, 8, 8)}}

	if _, ok := w.CollectRecyclable(200, 200, 20); ok {
		t.Error("expected no item far away")
	}
	if w.Recyclables[0].Collected {
		t.Error("item far away should not be collected")
	}
}

func TestCollectRecyclableMeasuresFromCorner(t *testing.T) {
	w := emptyWorld()
	w.Recyclables = []Recyclable{{Rect: core.NewRect(100, 100, 8, 8)}}

	// Center (104, 104) is 18 away, the corner about 22.4.
	if _, ok := w.CollectRecyclable(122, 104, 20); ok {
		t.Error("item collected by distance to its center")
	}
	// Corner 18 away, center about 22.4.
	if _, ok := w.CollectRecyclable(82, 100, 20); !ok {
		t.Error("item within range of its corner not collected")
	}
}

func TestSpawnRecyclablesAppendsBatch(t *testing.T) {
	w := Generate(DefaultParams(), 3)
	for _, item := range w.Recyclables {
		w.CollectRecyclable(item.X, item.Y, 1)
	}
	if n := w.RemainingRecyclables(); n != 0 {
		t.Fatalf("RemainingRecyclables() = %d after collecting all, expected 0", n)
	}

	w.SpawnRecyclables(5)

	if len(w.Recyclables) != DefaultRecyclables+5 {
		t.Errorf("got %d items, expected %d", len(w.Recyclables), DefaultRecyclables+5)
	}
	if n := w.RemainingRecyclables(); n != 5 {
		t.Errorf("RemainingRecyclables() = %d, expected 5", n)
	}
	for _, item := range w.Recyclables[DefaultRecyclables:] {
		if item.X < 0 || item.Right() > w.Width() || item.Y < 0 || item.Bottom() > w.Height() {
			t.Errorf("item %+v outside the world", item.Rect)
		}
	}
}

func TestNearbyMissionExcludesCompleted(t *testing.T) {
	w := Generate(DefaultParams(), 1)

	m, ok := w.NearbyMission(300, 190, 50)
	if !ok || m.ID != "cleanup_park" {
		t.Fatalf("NearbyMission() = (%q, %v), expected (cleanup_park, true)", m.ID, ok)
	}

	if !w.CompleteMission("cleanup_park") {
		t.Fatal("CompleteMission() = false for a known mission")
	}
	if _, ok := w.NearbyMission(300, 190, 50); ok {
		t.Error("completed mission should be excluded")
	}
	if w.CompleteMission("no_such_mission") {
		t.Error("CompleteMission() = true for an unknown mission")
	}
}

func TestNearbyShop(t *testing.T) {
	w := Generate(DefaultParams(), 1)

	tests := []struct {
		name     string
		x, y     float64
		expected string
	}{
		{"near repair shop", 190, 160, "bike_repair_shop"},
		{"near eco store", 430, 330, "eco_store"},
		{"near recycling hub", 625, 120, "recycling_center"},
		{"nowhere near", 1000, 700, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, ok := w.NearbyShop(tc.x, tc.y, 50)
			if tc.expected == "" {
				if ok {
					t.Errorf("NearbyShop() = %q, expected none", s.ID)
				}
				return
			}
			if !ok || s.ID != tc.expected {
				t.Errorf("NearbyShop() = (%q, %v), expected %q", s.ID, ok, tc.expected)
			}
		})
	}
}

func TestReducePollution(t *testing.T) {
	w := emptyWorld()
	w.Pollution = []Hotspot{
		{X: 100, Y: 100, Intensity: 0.05, Radius: 40},
		{X: 110, Y: 100, Intensity: 0.5, Radius: 40},
		{X: 500, Y: 500, Intensity: 0.5, Radius: 40},
	}

	if n := w.ReducePollution(100, 100, 30); n != 2 {
		t.Errorf("ReducePollution() = %d, expected 2", n)
	}

	expected := []float64{0, 0.4, 0.5}
	for i, h := range w.Pollution {
		if math.Abs(h.Intensity-expected[i]) > 1e-9 {
			t.Errorf("hotspot %d intensity = %v, expected %v", i, h.Intensity, expected[i])
		}
	}

	if got := w.PollutionAt(500, 500); got != 0.5 {
		t.Errorf("PollutionAt() = %v, expected 0.5", got)
	}
}

func TestIsOnRoad(t *testing.T) {
	w := Generate(DefaultParams(), 1)

	tests := []struct {
		x, y     float64
		expected bool
	}{
		{10, 160, true},
		{10, 100, false},
		{210, 10, true},
		{0, 150, true},
		{1199, 689, true},
		{1000, 300, false},
	}
	for _, tc := range tests {
		if got := w.IsOnRoad(tc.x, tc.y); got != tc.expected {
			t.Errorf("IsOnRoad(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestNearestRoadPosition(t *testing.T) {
	w := Generate(DefaultParams(), 1)

	if got := w.NearestRoadPosition(0, 0); got != (core.Vec{X: 220, Y: 170}) {
		t.Errorf("NearestRoadPosition(0, 0) = %v, expected (220, 170)", got)
	}
	if got := w.NearestRoadPosition(1190, 790); got != (core.Vec{X: 820, Y: 670}) {
		t.Errorf("NearestRoadPosition(1190, 790) = %v, expected (820, 670)", got)
	}
	if got := w.NearestRoadPosition(1120, 420); got != (core.Vec{X: 820, Y: 420}) {
		t.Errorf("NearestRoadPosition(1120, 420) = %v, expected (820, 420)", got)
	}
	if got := w.NearestRoadPosition(530, 400); got != (core.Vec{X: 520, Y: 420}) {
		t.Errorf("NearestRoadPosition(530, 400) = %v, expected (520, 420)", got)
	}
}

func TestIsValidBuildingPosition(t *testing.T) {
	w := Generate(DefaultParams(), 1)

	tests := []struct {
		name     string
		r        core.Rect
		expected bool
	}{
		{"on a building", core.NewRect(60, 60, 10, 10), false},
		{"on a road", core.NewRect(0, 150, 10, 10), false},
		{"outside the world", core.NewRect(-5, 10, 10, 10), false},
		{"free lot", core.NewRect(140, 10, 20, 20), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := w.IsValidBuildingPosition(tc.r); got != tc.expected {
				t.Errorf("IsValidBuildingPosition(%+v) = %v, expected %v", tc.r, got, tc.expected)
			}
		})
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	w := Generate(DefaultParams(), 5)
	snap := w.Snapshot()

	origX := w.Traffic[0].X
	origSite := w.Missions[1].Objectives.Sites[0]

	snap.Traffic[0].X = -999
	snap.Missions[1].Objectives.Sites[0].X = -1
	snap.Recyclables[0].Collected = true

	if w.Traffic[0].X != origX {
		t.Error("mutating the snapshot changed world traffic")
	}
	if w.Missions[1].Objectives.Sites[0] != origSite {
		t.Error("mutating the snapshot changed mission objectives")
	}
	if w.Recyclables[0].Collected {
		t.Error("mutating the snapshot changed recyclables")
	}
}

func TestDayNightPhase(t *testing.T) {
	w := emptyWorld()
	for i := 0; i < 1500; i++ {
		w.Update()
	}

	if w.Tick() != 1500 {
		t.Errorf("Tick() = %d, expected 1500", w.Tick())
	}
	if got := w.DayNight(); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("DayNight() = %v, expected 0.5", got)
	}
	if !w.Snapshot().IsNight() {
		t.Error("phase 0.5 should be night")
	}
}

func TestCollisionArea(t *testing.T) {
	w := Generate(DefaultParams(), 3)
	area := w.CollisionArea()

	if area.Width != 1200 || area.Height != 800 {
		t.Errorf("area size = %vx%v, expected 1200x800", area.Width, area.Height)
	}
	if len(area.Static) != len(w.Buildings) || len(area.Dynamic) != len(w.Traffic) {
		t.Errorf("area has %d static and %d dynamic rects", len(area.Static), len(area.Dynamic))
	}
}
