package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/bike-city/internal/backend"
)

// ActionKind identifies a backend call requested by the session.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionStartMission
	ActionCompleteMission
	ActionPurchaseBicycle
)

// String returns a human-readable name for the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionStartMission:
		return "start_mission"
	case ActionCompleteMission:
		return "complete_mission"
	case ActionPurchaseBicycle:
		return "purchase_bicycle"
	default:
		return "unknown"
	}
}

// Action is a backend call the host executes off the simulation goroutine.
// The outcome comes back to the session through Apply.
type Action struct {
	Kind     ActionKind
	PlayerID string
	TargetID string
}

// ActionResult is the outcome of running an Action. Err is set only when the
// call itself failed. When the call went through but the player could not be
// reloaded, ReloadErr is set and Player is empty.
type ActionResult struct {
	Action    Action
	Player    backend.PlayerRecord
	Rewards   backend.Rewards
	Err       error
	ReloadErr error
}

// Run executes the action against b and reloads the player record on success.
func (a Action) Run(ctx context.Context, b backend.Backend) ActionResult {
	res := ActionResult{Action: a}

	switch a.Kind {
	case ActionStartMission:
		res.Err = b.StartMission(ctx, a.PlayerID, a.TargetID)
	case ActionCompleteMission:
		res.Rewards, res.Err = b.CompleteMission(ctx, a.PlayerID, a.TargetID)
	case ActionPurchaseBicycle:
		res.Player, res.Err = b.PurchaseBicycle(ctx, a.PlayerID, a.TargetID)
		return res
	case ActionNone:
		return res
	default:
		res.Err = fmt.Errorf("game: unknown action %d", a.Kind)
		return res
	}

	if res.Err != nil {
		return res
	}
	res.Player, res.ReloadErr = b.GetPlayer(ctx, a.PlayerID)
	return res
}

// failureMessage turns a backend error into player-facing text.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, backend.ErrInsufficientFunds):
		return "Not enough money"
	case errors.Is(err, backend.ErrMissionCompleted):
		return "Mission already completed"
	case errors.Is(err, backend.ErrMissionActive):
		return "Finish your current mission first"
	case errors.Is(err, backend.ErrMissionNotActive):
		return "That mission is not active"
	case errors.Is(err, backend.ErrNotFound):
		return "Not found"
	default:
		return "Server unavailable, try again"
	}
}
