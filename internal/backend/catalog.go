package backend

// New player defaults. Players start on the first road crossing.
const (
	StartX         = 220
	StartY         = 170
	StartHealth    = 100
	StartStamina   = 100
	StartMoney     = 500
	StartBicycleID = "city_bike_basic"
)

// DefaultBicycles returns the stock bicycle catalog.
func DefaultBicycles() []Bicycle {
	return []Bicycle{
		{ID: "city_bike_basic", Name: "City Cruiser", Type: "city", Speed: 20, Durability: 100, EcoEfficiency: 0.8, UpgradeLevel: 1, Price: 200},
		{ID: "mountain_bike_basic", Name: "Trail Blazer", Type: "mountain", Speed: 18, Durability: 120, EcoEfficiency: 0.7, UpgradeLevel: 1, Price: 350},
		{ID: "electric_bike_basic", Name: "Eco Thunder", Type: "electric", Speed: 35, Durability: 80, EcoEfficiency: 1.0, UpgradeLevel: 1, Price: 800},
		{ID: "cargo_bike_basic", Name: "Green Hauler", Type: "cargo", Speed: 15, Durability: 150, EcoEfficiency: 0.9, UpgradeLevel: 1, Price: 600},
	}
}

// DefaultShops returns the stock shops with their inventories and dialogue.
func DefaultShops() []ShopInfo {
	return []ShopInfo{
		{
			ID:       "bike_repair_shop",
			Name:     "Green Wheels Repair",
			Type:     "bike_repair",
			Position: Position{X: 200, Y: 150},
			Inventory: []ShopItem{
				{ID: "eco_tire", Name: "Eco-Friendly Tire", Price: 50, EcoImpact: 10},
				{ID: "bamboo_frame", Name: "Bamboo Frame", Price: 200, EcoImpact: 50},
				{ID: "solar_light", Name: "Solar Light", Price: 30, EcoImpact: 15},
			},
			Dialogue: []string{
				"Welcome to Green Wheels! We only use eco-friendly parts.",
				"Your bike needs some TLC? We've got sustainable solutions!",
				"Every repair here helps the environment!",
			},
		},
		{
			ID:       "eco_store",
			Name:     "Earth First Store",
			Type:     "eco_store",
			Position: Position{X: 400, Y: 300},
			Inventory: []ShopItem{
				{ID: "recycling_bag", Name: "Recycling Bag", Price: 20, Capacity: 10},
				{ID: "solar_panel_kit", Name: "Solar Panel Kit", Price: 500, Energy: 100},
				{ID: "compost_bin", Name: "Compost Bin", Price: 80, EcoImpact: 25},
			},
			Dialogue: []string{
				"Everything here is 100% eco-friendly!",
				"Help save the planet, one purchase at a time!",
				"Our products are made from recycled materials!",
			},
		},
		{
			ID:       "recycling_center",
			Name:     "City Recycling Hub",
			Type:     "recycling_center",
			Position: Position{X: 600, Y: 100},
			Inventory: []ShopItem{
				{ID: "plastic_bottle", Name: "Plastic Bottle", BuyPrice: 2, EcoImpact: 5},
				{ID: "aluminum_can", Name: "Aluminum Can", BuyPrice: 3, EcoImpact: 8},
				{ID: "paper_waste", Name: "Paper Waste", BuyPrice: 1, EcoImpact: 3},
			},
			Dialogue: []string{
				"Bring me your recyclables and earn money!",
				"Every item recycled makes the city cleaner!",
				"We accept all kinds of recyclable materials!",
			},
		},
	}
}

// DefaultMissions returns the stock missions.
func DefaultMissions() []MissionInfo {
	return []MissionInfo{
		{
			ID:          "cleanup_park",
			Name:        "Clean Up Central Park",
			Description: "The park is littered with trash. Help clean it up!",
			Type:        "pollution_cleanup",
			Objectives: MissionObjectives{
				Required: 10,
				Location: &Position{X: 300, Y: 200},
			},
			Rewards: Rewards{EcoPoints: 50, Money: 100},
		},
		{
			ID:          "install_solar_panels",
			Name:        "Solar Panel Installation",
			Description: "Install solar panels on rooftops to promote renewable energy.",
			Type:        "renewable_energy",
			Objectives: MissionObjectives{
				Required:  3,
				Locations: []Position{{X: 150, Y: 100}, {X: 450, Y: 250}, {X: 550, Y: 350}},
			},
			Rewards: Rewards{EcoPoints: 100, Money: 200},
		},
		{
			ID:          "recycling_drive",
			Name:        "Community Recycling Drive",
			Description: "Collect recyclables from around the city and bring them to the recycling center.",
			Type:        "recycling",
			Objectives: MissionObjectives{
				Required: 20,
				Types:    []string{"plastic_bottle", "aluminum_can", "paper_waste"},
			},
			Rewards: Rewards{EcoPoints: 75, Money: 150},
		},
	}
}

// FindBicycle returns the bicycle with the given id from list.
func FindBicycle(list []Bicycle, id string) (Bicycle, bool) {
	for _, b := range list {
		if b.ID == id {
			return b, true
		}
	}
	return Bicycle{}, false
}
