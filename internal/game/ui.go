package game

import (
	"time"

	"github.com/vovakirdan/bike-city/internal/backend"
	"github.com/vovakirdan/bike-city/internal/world"
)

// NotificationTTL is how long a notification stays on screen.
const NotificationTTL = 3 * time.Second

// NotificationKind selects how a notification is styled.
type NotificationKind int

const (
	NotifyInfo NotificationKind = iota
	NotifySuccess
	NotifyError
)

// String returns the notification kind name.
func (k NotificationKind) String() string {
	switch k {
	case NotifyInfo:
		return "info"
	case NotifySuccess:
		return "success"
	case NotifyError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification is a transient message shown to the player.
type Notification struct {
	ID      uint64
	Kind    NotificationKind
	Message string
	Expires time.Time
}

// PromptKind identifies what the open prompt offers.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptShop
	PromptMission
)

// Prompt is an offer surfaced by an interact key. It never opens anything on
// its own; the player has to confirm it.
type Prompt struct {
	Kind     PromptKind
	TargetID string
	Title    string
	Detail   string
}

// ShopMenu is the open bicycle shop overlay.
type ShopMenu struct {
	ShopID   string
	ShopName string
	Items    []backend.Bicycle
	Selected int
	Owned    string
}

// MissionStatus is the progress of one mission as shown in the HUD.
type MissionStatus struct {
	ID        string
	Name      string
	Kind      world.MissionKind
	Progress  int
	Required  int
	Active    bool
	Completed bool
}

// Ready reports whether the objectives are met.
func (m MissionStatus) Ready() bool {
	return m.Active && m.Required > 0 && m.Progress >= m.Required
}

// UIState is the presentation state handed to renderers with each frame.
type UIState struct {
	Notifications []Notification
	Prompt        Prompt
	Shop          *ShopMenu
	Active        *MissionStatus
	ShowMissions  bool
	Missions      []MissionStatus
}

type uiState struct {
	notifications []Notification
	nextID        uint64
	prompt        Prompt
	shop          *ShopMenu
	showMissions  bool
}

func (u *uiState) notify(kind NotificationKind, msg string, now time.Time) {
	u.nextID++
	u.notifications = append(u.notifications, Notification{
		ID:      u.nextID,
		Kind:    kind,
		Message: msg,
		Expires: now.Add(NotificationTTL),
	})
}

// expire drops notifications whose time is up.
func (u *uiState) expire(now time.Time) {
	kept := u.notifications[:0]
	for _, n := range u.notifications {
		if now.Before(n.Expires) {
			kept = append(kept, n)
		}
	}
	u.notifications = kept
}

func (u *uiState) clearPrompt() {
	u.prompt = Prompt{}
}

func (u *uiState) view() UIState {
	v := UIState{
		Notifications: append([]Notification(nil), u.notifications...),
		Prompt:        u.prompt,
		ShowMissions:  u.showMissions,
	}
	if u.shop != nil {
		shop := *u.shop
		shop.Items = append([]backend.Bicycle(nil), u.shop.Items...)
		v.Shop = &shop
	}
	return v
}
