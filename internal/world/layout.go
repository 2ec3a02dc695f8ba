package world

import "github.com/vovakirdan/bike-city/internal/core"

// Road grid. Horizontal roads run the full width, vertical roads the full height.
const (
	roadThickness     = 40
	horizontalRoads   = 3
	horizontalRoadY0  = 150
	horizontalRoadGap = 250
	verticalRoads     = 4
	verticalRoadX0    = 200
	verticalRoadGap   = 300
)

// intersections are the centers of the road crossings.
var intersections = []core.Vec{
	{X: 220, Y: 170},
	{X: 220, Y: 420},
	{X: 220, Y: 670},
	{X: 520, Y: 170},
	{X: 520, Y: 420},
	{X: 520, Y: 670},
	{X: 820, Y: 170},
	{X: 820, Y: 420},
	{X: 820, Y: 670},
	{X: 1120, Y: 170},
	{X: 1120, Y: 420},
	{X: 1120, Y: 670},
}

// respawnIntersections is the number of leading intersections, the three
// western avenues, that NearestRoadPosition picks from.
const respawnIntersections = 9

// Intersections returns the known road crossing points.
func Intersections() []core.Vec {
	out := make([]core.Vec, len(intersections))
	copy(out, intersections)
	return out
}

type buildingSpec struct {
	x, y, w, h float64
	color      core.Color
}

// buildingTable is the city block layout, five rows of six buildings.
var buildingTable = []buildingSpec{
	// Row 1 (top)
	{50, 50, 80, 80, core.ColorBrown},
	{250, 30, 100, 100, core.ColorOrange},
	{450, 40, 90, 90, core.ColorSlate},
	{650, 20, 120, 110, core.ColorGray},
	{850, 50, 80, 80, core.ColorBrown},
	{1050, 30, 100, 100, core.ColorOrange},

	// Row 2 (between roads)
	{30, 200, 60, 120, core.ColorSlate},
	{280, 220, 80, 100, core.ColorGray},
	{520, 210, 100, 110, core.ColorBrown},
	{680, 200, 90, 120, core.ColorOrange},
	{880, 220, 80, 100, core.ColorSlate},
	{1080, 210, 100, 110, core.ColorGray},

	// Row 3 (middle)
	{70, 350, 120, 80, core.ColorOrange},
	{300, 370, 80, 100, core.ColorBrown},
	{470, 360, 100, 90, core.ColorSlate},
	{650, 350, 90, 110, core.ColorGray},
	{850, 370, 80, 100, core.ColorOrange},
	{1000, 360, 120, 90, core.ColorBrown},

	// Row 4 (between roads)
	{40, 520, 80, 120, core.ColorSlate},
	{270, 540, 100, 80, core.ColorGray},
	{450, 530, 90, 100, core.ColorBrown},
	{620, 520, 120, 90, core.ColorOrange},
	{820, 540, 80, 110, core.ColorSlate},
	{1020, 530, 100, 100, core.ColorGray},

	// Row 5 (bottom)
	{60, 670, 100, 80, core.ColorOrange},
	{290, 690, 80, 100, core.ColorBrown},
	{480, 680, 120, 90, core.ColorSlate},
	{680, 670, 90, 110, core.ColorGray},
	{870, 690, 80, 80, core.ColorOrange},
	{1070, 680, 100, 100, core.ColorBrown},
}

func fixedBuildings() []Building {
	out := make([]Building, 0, len(buildingTable))
	for _, b := range buildingTable {
		out = append(out, Building{
			Rect:  core.NewRect(b.x, b.y, b.w, b.h),
			Color: b.color,
		})
	}
	return out
}

func fixedRoads(width, height float64) []Road {
	out := make([]Road, 0, horizontalRoads+verticalRoads)
	for i := 0; i < horizontalRoads; i++ {
		out = append(out, Road{
			Rect:        core.NewRect(0, float64(horizontalRoadY0+i*horizontalRoadGap), width, roadThickness),
			Orientation: Horizontal,
		})
	}
	for i := 0; i < verticalRoads; i++ {
		out = append(out, Road{
			Rect:        core.NewRect(float64(verticalRoadX0+i*verticalRoadGap), 0, roadThickness, height),
			Orientation: Vertical,
		})
	}
	return out
}

// Shop and mission IDs match the persistence catalog.
func fixedShops() []Shop {
	return []Shop{
		{Rect: core.NewRect(150, 120, 80, 60), ID: "bike_repair_shop", Name: "Green Wheels Repair", Kind: ShopBikeRepair},
		{Rect: core.NewRect(380, 270, 100, 80), ID: "eco_store", Name: "Earth First Store", Kind: ShopEcoStore},
		{Rect: core.NewRect(580, 70, 90, 70), ID: "recycling_center", Name: "City Recycling Hub", Kind: ShopRecyclingCenter},
	}
}

func fixedMissions() []Mission {
	return []Mission{
		{
			X: 300, Y: 180,
			ID:         "cleanup_park",
			Name:       "Clean Up Central Park",
			Kind:       MissionCleanup,
			Objectives: Objectives{Required: 10},
		},
		{
			X: 750, Y: 400,
			ID:   "install_solar_panels",
			Name: "Solar Panel Installation",
			Kind: MissionSolar,
			Objectives: Objectives{
				Required: 3,
				Sites:    []core.Vec{{X: 150, Y: 100}, {X: 450, Y: 250}, {X: 550, Y: 350}},
			},
		},
		{
			X: 900, Y: 150,
			ID:         "recycling_drive",
			Name:       "Community Recycling Drive",
			Kind:       MissionRecycle,
			Objectives: Objectives{Required: 20},
		},
	}
}
