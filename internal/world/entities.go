package world

import "github.com/vovakirdan/bike-city/internal/core"

// Orientation is the axis a road (or a lane-following entity) runs along.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns a human-readable name for the orientation.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Other returns the perpendicular orientation.
func (o Orientation) Other() Orientation {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Building is a static obstacle. Immutable after generation.
type Building struct {
	core.Rect
	Color core.Color
}

// Road is a static strip vehicles and lane NPCs travel along.
type Road struct {
	core.Rect
	Orientation Orientation
}

// ShopKind identifies what a shop sells.
type ShopKind int

const (
	ShopBikeRepair ShopKind = iota
	ShopEcoStore
	ShopRecyclingCenter
)

// String returns the wire name of the shop kind.
func (k ShopKind) String() string {
	switch k {
	case ShopBikeRepair:
		return "bike_repair"
	case ShopEcoStore:
		return "eco_store"
	case ShopRecyclingCenter:
		return "recycling_center"
	default:
		return "unknown"
	}
}

// Shop is a fixed storefront the player can enter.
type Shop struct {
	core.Rect
	ID   string
	Name string
	Kind ShopKind
}

// MissionKind identifies the objective type of a mission.
type MissionKind int

const (
	MissionCleanup MissionKind = iota
	MissionSolar
	MissionRecycle
)

// String returns the wire name of the mission kind.
func (k MissionKind) String() string {
	switch k {
	case MissionCleanup:
		return "cleanup"
	case MissionSolar:
		return "solar"
	case MissionRecycle:
		return "recycle"
	default:
		return "unknown"
	}
}

// Objectives describes what has to happen before a mission can be completed.
// Cleanup and recycle missions count collected recyclables; solar missions
// count install sites visited.
type Objectives struct {
	Required int
	Sites    []core.Vec
}

// Mission is a marker anchored at a point. Completed only moves false -> true
// and is set from persistence results, never by the tick itself.
type Mission struct {
	X, Y       float64
	ID         string
	Name       string
	Kind       MissionKind
	Completed  bool
	Objectives Objectives
}

// VehicleKind distinguishes traffic types.
type VehicleKind int

const (
	VehicleCar VehicleKind = iota
	VehicleBus
)

// String returns a human-readable name for the vehicle kind.
func (k VehicleKind) String() string {
	switch k {
	case VehicleCar:
		return "car"
	case VehicleBus:
		return "bus"
	default:
		return "unknown"
	}
}

// Vehicle is a traffic entity driving along a road and wrapping at the world edges.
type Vehicle struct {
	core.Rect
	Kind  VehicleKind
	Dir   core.Direction
	Speed float64
	Lane  Orientation
}

// NPCKind distinguishes non-player characters.
type NPCKind int

const (
	NPCPedestrian NPCKind = iota
	NPCCyclist
)

// String returns a human-readable name for the NPC kind.
func (k NPCKind) String() string {
	switch k {
	case NPCPedestrian:
		return "pedestrian"
	case NPCCyclist:
		return "cyclist"
	default:
		return "unknown"
	}
}

// NPCMode selects how an NPC moves each tick.
type NPCMode int

const (
	// NPCLane follows a road lane and may switch lanes at intersections.
	NPCLane NPCMode = iota
	// NPCWaypoint steers toward TargetX/TargetY and picks a new target on arrival.
	NPCWaypoint
)

// NPC is a pedestrian or cyclist wandering the city.
type NPC struct {
	core.Rect
	Kind    NPCKind
	Mode    NPCMode
	Dir     core.Direction
	Speed   float64
	TargetX float64
	TargetY float64
	Lane    Orientation
}

// RecyclableKind is the material of a recyclable item.
type RecyclableKind int

const (
	PlasticBottle RecyclableKind = iota
	AluminumCan
	PaperWaste
)

// String returns the wire name of the recyclable kind.
func (k RecyclableKind) String() string {
	switch k {
	case PlasticBottle:
		return "plastic_bottle"
	case AluminumCan:
		return "aluminum_can"
	case PaperWaste:
		return "paper_waste"
	default:
		return "unknown"
	}
}

// Recyclable is litter the player picks up by riding close to it.
// Collected only moves false -> true.
type Recyclable struct {
	core.Rect
	Kind      RecyclableKind
	Collected bool
}

// Hotspot is a localized pollution source. Intensity stays in [0, 1].
type Hotspot struct {
	X, Y      float64
	Intensity float64
	Radius    float64
}
