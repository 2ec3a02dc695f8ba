package world

import (
	"github.com/vovakirdan/bike-city/internal/core"
)

// Spawn sizes and tuning.
const (
	carW, carH          = 24, 12
	busW, busH          = 32, 16
	busShare            = 0.3
	npcW, npcH          = 12, 16
	cyclistShare        = 0.4
	spawnPointSpacing   = 50
	npcTargetSpread     = 200
	recyclableSize      = 8
	hotspotMinIntensity = 0.2
	hotspotIntensity    = 0.8
	hotspotMinRadius    = 30
	hotspotRadiusRange  = 50
)

func (w *World) spawnTraffic() {
	w.Traffic = make([]Vehicle, 0, w.params.Vehicles)
	if len(w.Roads) == 0 {
		return
	}

	for i := 0; i < w.params.Vehicles; i++ {
		kind := VehicleCar
		if w.rng.Float64() > 1-busShare {
			kind = VehicleBus
		}
		road := w.Roads[w.rng.Intn(len(w.Roads))]

		width, height := float64(carW), float64(carH)
		if kind == VehicleBus {
			width, height = busW, busH
		}

		v := Vehicle{
			Kind: kind,
			Lane: road.Orientation,
		}

		if road.Orientation == Horizontal {
			x := w.rng.Float64() * w.params.Width
			y := road.Y + road.H/2 - height/2
			v.Rect = core.NewRect(x, y, width, height)
			v.Dir = core.DirRight
			if w.rng.Float64() <= 0.5 {
				v.Dir = core.DirLeft
			}
		} else {
			// Vertical lanes carry the vehicle rotated.
			width, height = height, width
			x := road.X + road.W/2 - width/2
			y := w.rng.Float64() * w.params.Height
			v.Rect = core.NewRect(x, y, width, height)
			v.Dir = core.DirDown
			if w.rng.Float64() <= 0.5 {
				v.Dir = core.DirUp
			}
		}

		v.Speed = (w.rng.Float64()*2 + 1) * w.params.TrafficSpeedScale
		w.Traffic = append(w.Traffic, v)
	}
}

type spawnPoint struct {
	pos  core.Vec
	lane Orientation
}

// roadSpawnPoints lists lane positions every spawnPointSpacing units along each road.
func (w *World) roadSpawnPoints() []spawnPoint {
	var points []spawnPoint
	for _, road := range w.Roads {
		switch road.Orientation {
		case Horizontal:
			for x := 0.0; x < w.params.Width-npcW; x += spawnPointSpacing {
				points = append(points, spawnPoint{
					pos:  core.Vec{X: x, Y: road.Y + w.rng.Float64()*(road.H-npcH)},
					lane: Horizontal,
				})
			}
		case Vertical:
			for y := 0.0; y < w.params.Height-npcH; y += spawnPointSpacing {
				points = append(points, spawnPoint{
					pos:  core.Vec{X: road.X + w.rng.Float64()*(road.W-npcW), Y: y},
					lane: Vertical,
				})
			}
		}
	}
	return points
}

func (w *World) spawnNPCs() {
	w.NPCs = make([]NPC, 0, w.params.NPCs)
	points := w.roadSpawnPoints()
	if len(points) == 0 {
		return
	}

	for i := 0; i < w.params.NPCs; i++ {
		kind := NPCPedestrian
		if w.rng.Float64() > 1-cyclistShare {
			kind = NPCCyclist
		}
		p := points[w.rng.Intn(len(points))]

		mode := NPCLane
		if w.rng.Float64() < w.params.WaypointShare {
			mode = NPCWaypoint
		}

		npc := NPC{
			Rect:  core.NewRect(p.pos.X, p.pos.Y, npcW, npcH),
			Kind:  kind,
			Mode:  mode,
			Speed: w.rng.Float64() + 0.5,
			Lane:  p.lane,
		}
		npc.Dir = w.laneDirection(p.lane)
		npc.TargetX = core.ClampF(p.pos.X+(w.rng.Float64()-0.5)*npcTargetSpread, 0, w.params.Width-npcW)
		npc.TargetY = core.ClampF(p.pos.Y+(w.rng.Float64()-0.5)*npcTargetSpread, 0, w.params.Height-npcH)

		w.NPCs = append(w.NPCs, npc)
	}
}

// laneDirection picks one of the two travel directions of a lane.
func (w *World) laneDirection(lane Orientation) core.Direction {
	forward := w.rng.Float64() > 0.5
	switch lane {
	case Horizontal:
		if forward {
			return core.DirRight
		}
		return core.DirLeft
	case Vertical:
		if forward {
			return core.DirDown
		}
		return core.DirUp
	default:
		return core.DirRight
	}
}

func (w *World) spawnRecyclables() {
	w.Recyclables = make([]Recyclable, 0, w.params.Recyclables)
	w.SpawnRecyclables(w.params.Recyclables)
}

// SpawnRecyclables scatters n new uncollected items over the world. Collected
// items stay in the list.
func (w *World) SpawnRecyclables(n int) {
	kinds := []RecyclableKind{PlasticBottle, AluminumCan, PaperWaste}

	for i := 0; i < n; i++ {
		x := w.rng.Float64() * (w.params.Width - recyclableSize)
		y := w.rng.Float64() * (w.params.Height - recyclableSize)
		w.Recyclables = append(w.Recyclables, Recyclable{
			Rect: core.NewRect(x, y, recyclableSize, recyclableSize),
			Kind: kinds[w.rng.Intn(len(kinds))],
		})
	}
}

func (w *World) spawnPollution() {
	w.Pollution = make([]Hotspot, 0, w.params.Hotspots)
	for i := 0; i < w.params.Hotspots; i++ {
		w.Pollution = append(w.Pollution, Hotspot{
			X:         w.rng.Float64() * w.params.Width,
			Y:         w.rng.Float64() * w.params.Height,
			Intensity: w.rng.Float64()*hotspotIntensity + hotspotMinIntensity,
			Radius:    w.rng.Float64()*hotspotRadiusRange + hotspotMinRadius,
		})
	}
}
