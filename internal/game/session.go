// Package game runs the per-tick simulation for one player: movement gated by
// collision, the camera, throttled position sync, interaction prompts and
// mission progress, on top of a world.World.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bike-city/internal/backend"
	"github.com/vovakirdan/bike-city/internal/collision"
	"github.com/vovakirdan/bike-city/internal/config"
	"github.com/vovakirdan/bike-city/internal/core"
	"github.com/vovakirdan/bike-city/internal/world"
)

// ErrNotReady is returned when a session is created without a player record
// or a world.
var ErrNotReady = errors.New("game: player and world are required")

// Catalog is the backend reference data a session displays and prices from.
type Catalog struct {
	Bicycles []backend.Bicycle
	Shops    []backend.ShopInfo
	Missions []backend.MissionInfo
}

// LoadCatalog fetches bicycles, shops and missions from b.
func LoadCatalog(ctx context.Context, b backend.Backend) (Catalog, error) {
	var (
		c   Catalog
		err error
	)
	if c.Bicycles, err = b.ListBicycles(ctx); err != nil {
		return c, fmt.Errorf("game: load bicycles: %w", err)
	}
	if c.Shops, err = b.ListShops(ctx); err != nil {
		return c, fmt.Errorf("game: load shops: %w", err)
	}
	if c.Missions, err = b.ListMissions(ctx); err != nil {
		return c, fmt.Errorf("game: load missions: %w", err)
	}
	return c, nil
}

// Hit is a contact between the player and traffic or an NPC. Hits are
// reported only; they neither block movement nor cost health.
type Hit struct {
	Kind   collision.ObstacleKind
	Damage int
}

// RenderFrame is everything a renderer needs for one frame. It shares no
// memory with the session.
type RenderFrame struct {
	World  world.Snapshot
	Camera Camera
	ViewW  float64
	ViewH  float64
	Player PlayerView
	UI     UIState
}

// StepResult is the outcome of one simulation tick.
type StepResult struct {
	Frame     RenderFrame
	Hits      []Hit
	Collected []world.Recyclable
	// Action is a backend call for the host to run; Kind is ActionNone
	// when there is nothing to do.
	Action Action
}

// Option configures a GameSession.
type Option func(*GameSession)

// WithLogger sets the logger used for sync and action failures.
func WithLogger(l *log.Logger) Option {
	return func(s *GameSession) {
		s.logger = l
	}
}

// WithCatalog sets the bicycles, shops and missions known to the session.
func WithCatalog(c Catalog) Option {
	return func(s *GameSession) {
		s.catalog = c
	}
}

// WithViewport sets the visible area in world units.
func WithViewport(w, h float64) Option {
	return func(s *GameSession) {
		s.viewW, s.viewH = w, h
	}
}

// WithClock replaces time.Now for notifications raised outside Step.
func WithClock(now func() time.Time) Option {
	return func(s *GameSession) {
		s.clock = now
	}
}

type progress struct {
	missionID string
	count     int
	visited   map[int]bool
	announced bool
}

// GameSession owns the player, camera, UI state and position syncer of one
// running game. It is driven from a single goroutine; only Close and Closed
// may be called from others.
type GameSession struct {
	world   *world.World
	backend backend.Backend
	cfg     config.GameConfig
	logger  *log.Logger
	clock   func() time.Time
	catalog Catalog

	player   Player
	camera   Camera
	viewW    float64
	viewH    float64
	syncer   *PositionSyncer
	ui       uiState
	progress progress
	prev     core.InputSnapshot
	last     RenderFrame
	closed   atomic.Bool
}

// NewSession starts a session for rec in w. b may be nil, in which case
// nothing is synced. Missions the player already completed are marked in
// the world, and a saved position inside a building is moved to the nearest
// free spot.
func NewSession(rec *backend.PlayerRecord, w *world.World, b backend.Backend, cfg config.GameConfig, opts ...Option) (*GameSession, error) {
	if rec == nil || w == nil {
		return nil, ErrNotReady
	}

	def := core.DefaultConfig()
	s := &GameSession{
		world:   w,
		backend: b,
		cfg:     cfg,
		clock:   time.Now,
		viewW:   float64(def.ScreenW) * cfg.Render.CellWidth,
		viewH:   float64(def.ScreenH) * cfg.Render.CellHeight,
		prev:    core.NewInputSnapshot(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	s.player = newPlayer(*rec, cfg.Player)
	for _, id := range s.player.Completed {
		w.CompleteMission(id)
	}
	s.placeSafely()
	s.resetProgress(s.player.Mission)

	if b != nil {
		s.syncer = NewPositionSyncer(b, rec.ID, cfg.Sync.Interval(), cfg.Sync.Timeout())
	}

	s.camera = Follow(s.player.X, s.player.Y, s.viewW, s.viewH, w.Width(), w.Height())
	s.last = s.frame()
	return s, nil
}

// Step advances the session by one tick using the keys held in in.
func (s *GameSession) Step(in core.InputSnapshot, now time.Time) StepResult {
	if s.closed.Load() {
		return StepResult{Frame: s.last}
	}

	var res StepResult
	s.drainSync(now)
	s.ui.expire(now)

	if s.ui.shop != nil {
		s.player.Moving = false
		res.Action = s.stepShop(in, now)
	} else {
		s.move(in)
	}

	res.Hits = s.hits()
	s.camera = Follow(s.player.X, s.player.Y, s.viewW, s.viewH, s.world.Width(), s.world.Height())

	if s.syncer != nil {
		s.syncer.MaybeSync(now, s.player.X, s.player.Y)
	}

	if s.ui.shop == nil {
		if a := s.interact(in, now); a.Kind != ActionNone {
			res.Action = a
		}
	}
	res.Collected = s.collect(now)

	s.world.Update()

	s.prev = in.Clone()
	s.last = s.frame()
	res.Frame = s.last
	return res
}

// pressed reports a key that is held now but was not held on the previous tick.
func (s *GameSession) pressed(in core.InputSnapshot, k core.Key) bool {
	return in.Has(k) && !s.prev.Has(k)
}

func (s *GameSession) speed(in core.InputSnapshot) float64 {
	speed := s.cfg.Player.BaseSpeed
	if b, ok := s.player.bicycle(s.catalog.Bicycles); ok {
		speed = b.Speed * s.cfg.Player.BicycleFactor
	}
	if in.Has(core.KeySprint) {
		speed *= s.cfg.Player.SprintFactor
	}
	return speed
}

// move applies the directional keys. Each axis key adds its own delta, so
// diagonals are faster than straight lines. The last key in up, down, left,
// right order sets the facing.
func (s *GameSession) move(in core.InputSnapshot) {
	speed := s.speed(in)
	x, y := s.player.X, s.player.Y
	moving := false

	if in.Has(core.KeyUp) {
		y -= speed
		s.player.Dir = core.DirUp
		moving = true
	}
	if in.Has(core.KeyDown) {
		y += speed
		s.player.Dir = core.DirDown
		moving = true
	}
	if in.Has(core.KeyLeft) {
		x -= speed
		s.player.Dir = core.DirLeft
		moving = true
	}
	if in.Has(core.KeyRight) {
		x += speed
		s.player.Dir = core.DirRight
		moving = true
	}

	s.player.Moving = moving
	if !moving {
		return
	}

	proposed := s.player.At(x, y)
	if s.canOccupy(proposed) {
		s.player.Rect = proposed
	}
}

// canOccupy reports whether r is inside the world and clear of buildings.
func (s *GameSession) canOccupy(r core.Rect) bool {
	return collision.WithinWorldBounds(r, s.world.Width(), s.world.Height()) &&
		!collision.OverlapsAny(r, s.world.BuildingRects())
}

func (s *GameSession) hits() []Hit {
	var hits []Hit
	for _, v := range s.world.Traffic {
		if collision.RectsOverlap(s.player.Rect, v.Rect) {
			kind := vehicleObstacle(v.Kind)
			hits = append(hits, Hit{Kind: kind, Damage: collision.CollisionDamage(kind)})
		}
	}
	for _, n := range s.world.NPCs {
		if collision.RectsOverlap(s.player.Rect, n.Rect) {
			hits = append(hits, Hit{Kind: collision.ObstacleOther, Damage: collision.CollisionDamage(collision.ObstacleOther)})
		}
	}
	return hits
}

func vehicleObstacle(k world.VehicleKind) collision.ObstacleKind {
	switch k {
	case world.VehicleCar:
		return collision.ObstacleCar
	case world.VehicleBus:
		return collision.ObstacleBus
	default:
		return collision.ObstacleOther
	}
}

func (s *GameSession) drainSync(now time.Time) {
	if s.syncer == nil {
		return
	}
	done, err := s.syncer.Poll()
	if !done || err == nil || isCancellation(err) {
		return
	}
	s.logger.Warn("position sync failed", "player", s.player.ID, "error", err)
	s.ui.notify(NotifyError, "Position sync failed", now)
}

// interact handles prompt keys. Interaction is measured from the player
// center to the shop center or mission anchor.
func (s *GameSession) interact(in core.InputSnapshot, now time.Time) Action {
	if s.pressed(in, core.KeyMenu) {
		s.ui.showMissions = !s.ui.showMissions
	}
	if s.pressed(in, core.KeyCancel) {
		s.ui.clearPrompt()
	}

	c := s.player.Center()
	radius := s.cfg.Interaction.InteractRadius

	if s.pressed(in, core.KeyInteractShop) {
		if shop, ok := s.world.NearbyShop(c.X, c.Y, radius); ok {
			s.ui.prompt = Prompt{
				Kind:     PromptShop,
				TargetID: shop.ID,
				Title:    shop.Name,
				Detail:   s.shopDialogue(shop.ID),
			}
		}
	}
	if s.pressed(in, core.KeyInteractMission) {
		if m, ok := s.world.NearbyMission(c.X, c.Y, radius); ok {
			s.ui.prompt = s.missionPrompt(m)
		}
	}

	if s.ui.prompt.Kind == PromptNone {
		return Action{}
	}
	if !s.promptInRange(c) {
		s.ui.clearPrompt()
		return Action{}
	}
	if s.pressed(in, core.KeyConfirm) {
		return s.acceptPrompt(now)
	}
	return Action{}
}

func (s *GameSession) promptInRange(c core.Vec) bool {
	radius := s.cfg.Interaction.InteractRadius
	switch s.ui.prompt.Kind {
	case PromptShop:
		shop, ok := s.world.Shop(s.ui.prompt.TargetID)
		if !ok {
			return false
		}
		sc := shop.Center()
		return core.Distance(c.X, c.Y, sc.X, sc.Y) < radius
	case PromptMission:
		m, ok := s.world.Mission(s.ui.prompt.TargetID)
		return ok && core.Distance(c.X, c.Y, m.X, m.Y) < radius
	default:
		return false
	}
}

func (s *GameSession) shopDialogue(id string) string {
	for _, info := range s.catalog.Shops {
		if info.ID == id {
			return info.Dialogue
		}
	}
	return ""
}

func (s *GameSession) missionPrompt(m world.Mission) Prompt {
	p := Prompt{Kind: PromptMission, TargetID: m.ID, Title: m.Name}

	if s.player.Mission == m.ID {
		if s.MissionReady() {
			p.Title = "Complete " + m.Name
			p.Detail = "Objectives met. Enter to claim rewards"
		} else {
			p.Detail = fmt.Sprintf("In progress %d/%d", s.progress.count, m.Objectives.Required)
		}
		return p
	}

	for _, info := range s.catalog.Missions {
		if info.ID == m.ID {
			p.Detail = fmt.Sprintf("%s (+%d eco, +$%d)", info.Description, info.Rewards.EcoPoints, info.Rewards.Money)
			break
		}
	}
	return p
}

// AcceptPrompt confirms the open prompt. A shop prompt opens the shop menu;
// a mission prompt yields the backend call that starts or completes it.
func (s *GameSession) AcceptPrompt() Action {
	if s.closed.Load() {
		return Action{}
	}
	return s.acceptPrompt(s.clock())
}

func (s *GameSession) acceptPrompt(now time.Time) Action {
	p := s.ui.prompt
	s.ui.clearPrompt()

	switch p.Kind {
	case PromptShop:
		s.openShop(p.TargetID, p.Title, now)
	case PromptMission:
		if s.player.Mission == p.TargetID {
			if !s.MissionReady() {
				s.ui.notify(NotifyInfo, "Objectives not met yet", now)
				return Action{}
			}
			return Action{Kind: ActionCompleteMission, PlayerID: s.player.ID, TargetID: p.TargetID}
		}
		if s.player.Mission != "" {
			s.ui.notify(NotifyError, failureMessage(backend.ErrMissionActive), now)
			return Action{}
		}
		return Action{Kind: ActionStartMission, PlayerID: s.player.ID, TargetID: p.TargetID}
	case PromptNone:
	}
	return Action{}
}

func (s *GameSession) openShop(id, name string, now time.Time) {
	if len(s.catalog.Bicycles) == 0 {
		s.ui.notify(NotifyInfo, "Nothing for sale here", now)
		return
	}
	s.ui.shop = &ShopMenu{
		ShopID:   id,
		ShopName: name,
		Items:    s.catalog.Bicycles,
		Owned:    s.player.BicycleID,
	}
	s.player.Moving = false
}

// stepShop drives the open shop menu; movement is suspended meanwhile.
func (s *GameSession) stepShop(in core.InputSnapshot, now time.Time) Action {
	m := s.ui.shop
	n := len(m.Items)

	switch {
	case s.pressed(in, core.KeyCancel), s.pressed(in, core.KeyInteractShop):
		s.ui.shop = nil
	case s.pressed(in, core.KeyUp):
		m.Selected = (m.Selected - 1 + n) % n
	case s.pressed(in, core.KeyDown):
		m.Selected = (m.Selected + 1) % n
	case s.pressed(in, core.KeyConfirm):
		item := m.Items[m.Selected]
		if item.ID == s.player.BicycleID {
			s.ui.notify(NotifyInfo, "Already riding the "+item.Name, now)
			return Action{}
		}
		if item.Price > s.player.Money {
			s.ui.notify(NotifyError, failureMessage(backend.ErrInsufficientFunds), now)
			return Action{}
		}
		return Action{Kind: ActionPurchaseBicycle, PlayerID: s.player.ID, TargetID: item.ID}
	}
	return Action{}
}

// collect picks up a recyclable near the player while a collection mission
// is active, and tracks solar site visits.
func (s *GameSession) collect(now time.Time) []world.Recyclable {
	m, ok := s.activeMission()
	if !ok {
		return nil
	}

	var collected []world.Recyclable
	c := s.player.Center()

	switch m.Kind {
	case world.MissionCleanup, world.MissionRecycle:
		item, ok := s.world.CollectRecyclable(c.X, c.Y, s.cfg.Interaction.RecyclableRadius)
		if !ok {
			break
		}
		collected = append(collected, item)
		s.progress.count++
		if m.Kind == world.MissionCleanup {
			s.world.ReducePollution(c.X, c.Y, s.cfg.Interaction.CleanupRadius)
		}
		s.ui.notify(NotifyInfo, fmt.Sprintf("Collected %s (%d/%d)", item.Kind, s.progress.count, m.Objectives.Required), now)
		if s.world.RemainingRecyclables() == 0 {
			s.world.SpawnRecyclables(s.cfg.World.Recyclables)
		}
	case world.MissionSolar:
		for i, site := range m.Objectives.Sites {
			if s.progress.visited[i] || core.Distance(c.X, c.Y, site.X, site.Y) > s.cfg.Interaction.SiteRadius {
				continue
			}
			s.progress.visited[i] = true
			s.progress.count = len(s.progress.visited)
			s.ui.notify(NotifyInfo, fmt.Sprintf("Solar panel installed (%d/%d)", s.progress.count, m.Objectives.Required), now)
		}
	}

	if s.MissionReady() && !s.progress.announced {
		s.progress.announced = true
		s.ui.notify(NotifySuccess, fmt.Sprintf("Objectives met! Return to %s and press F", m.Name), now)
	}
	return collected
}

func (s *GameSession) activeMission() (world.Mission, bool) {
	if s.player.Mission == "" {
		return world.Mission{}, false
	}
	return s.world.Mission(s.player.Mission)
}

func (s *GameSession) resetProgress(missionID string) {
	s.progress = progress{missionID: missionID, visited: make(map[int]bool)}
}

// MissionReady reports whether the active mission's objectives are met.
func (s *GameSession) MissionReady() bool {
	m, ok := s.activeMission()
	if !ok || s.progress.missionID != m.ID {
		return false
	}
	return m.Objectives.Required > 0 && s.progress.count >= m.Objectives.Required
}

// Apply folds the result of an Action into the session.
func (s *GameSession) Apply(res ActionResult) {
	if s.closed.Load() {
		return
	}
	now := s.clock()

	if res.Err != nil {
		s.logger.Warn("backend action failed",
			"action", res.Action.Kind,
			"player", s.player.ID,
			"target", res.Action.TargetID,
			"error", res.Err,
		)
		s.ui.notify(NotifyError, failureMessage(res.Err), now)
		return
	}

	if res.ReloadErr != nil {
		s.logger.Warn("player reload failed",
			"action", res.Action.Kind,
			"player", s.player.ID,
			"error", res.ReloadErr,
		)
	}
	reloaded := res.ReloadErr == nil

	switch res.Action.Kind {
	case ActionStartMission:
		if reloaded {
			s.ApplyPlayer(res.Player)
		} else if s.player.Mission != res.Action.TargetID {
			s.player.Mission = res.Action.TargetID
			s.resetProgress(res.Action.TargetID)
		}
		name := res.Action.TargetID
		if m, ok := s.world.Mission(name); ok {
			name = m.Name
		}
		s.ui.notify(NotifyInfo, "Mission started: "+name, now)
	case ActionCompleteMission:
		s.ApplyMissionComplete(res.Action.TargetID, res.Rewards)
		if reloaded {
			s.ApplyPlayer(res.Player)
		}
	case ActionPurchaseBicycle:
		s.ApplyPlayer(res.Player)
		s.ui.notify(NotifySuccess, "Bicycle purchased successfully!", now)
	case ActionNone:
	}
}

// ApplyPlayer folds a backend player record into the local player. The local
// position is kept; the backend only ever sees it through sync.
func (s *GameSession) ApplyPlayer(rec backend.PlayerRecord) {
	if s.closed.Load() {
		return
	}
	before := s.player.Mission
	s.player.apply(rec)
	for _, id := range s.player.Completed {
		s.world.CompleteMission(id)
	}
	if s.player.Mission != before {
		s.resetProgress(s.player.Mission)
	}
	if s.ui.shop != nil {
		s.ui.shop.Owned = s.player.BicycleID
	}
}

// ApplyMissionComplete marks a mission completed in the world and credits the
// rewards locally until the next player record arrives.
func (s *GameSession) ApplyMissionComplete(id string, rewards backend.Rewards) {
	if s.closed.Load() {
		return
	}
	s.world.CompleteMission(id)

	name := id
	if m, ok := s.world.Mission(id); ok {
		name = m.Name
	}
	s.ui.notify(NotifySuccess,
		fmt.Sprintf("%s complete! +%d eco points, +$%d", name, rewards.EcoPoints, rewards.Money),
		s.clock(),
	)

	s.player.EcoPoints += rewards.EcoPoints
	s.player.Money += rewards.Money
	if s.player.Mission == id {
		s.player.Mission = ""
		s.player.Completed = append(s.player.Completed, id)
		s.resetProgress("")
	}
}

// placeSafely moves a player saved inside a building or outside the world to
// the nearest free position, falling back to the closest intersection.
func (s *GameSession) placeSafely() {
	area := s.world.CollisionArea()
	area.Dynamic = nil
	if collision.IsPositionSafe(s.player.Rect, area) {
		return
	}

	pos := collision.NearestSafePosition(s.player.Rect, area, s.cfg.Interaction.SafeSearch)
	moved := s.player.At(pos.X, pos.Y)
	if !collision.IsPositionSafe(moved, area) {
		c := s.player.Center()
		road := s.world.NearestRoadPosition(c.X, c.Y)
		moved = s.player.At(road.X-s.player.W/2, road.Y-s.player.H/2)
	}

	s.logger.Info("moved player to a free position",
		"player", s.player.ID,
		"from", fmt.Sprintf("(%.0f,%.0f)", s.player.X, s.player.Y),
		"to", fmt.Sprintf("(%.0f,%.0f)", moved.X, moved.Y),
	)
	s.player.Rect = moved
}

// SetViewport resizes the visible area, in world units.
func (s *GameSession) SetViewport(w, h float64) {
	s.viewW, s.viewH = w, h
	s.camera = Follow(s.player.X, s.player.Y, w, h, s.world.Width(), s.world.Height())
	s.last.Camera = s.camera
	s.last.ViewW, s.last.ViewH = w, h
}

// Player returns a copy of the local player.
func (s *GameSession) Player() Player {
	p := s.player
	p.Completed = append([]string(nil), s.player.Completed...)
	return p
}

// Camera returns the current camera.
func (s *GameSession) Camera() Camera {
	return s.camera
}

// Frame returns the frame produced by the latest Step.
func (s *GameSession) Frame() RenderFrame {
	return s.last
}

// Closed reports whether Close has been called.
func (s *GameSession) Closed() bool {
	return s.closed.Load()
}

// Close stops the session. An in-flight sync is cancelled and its result
// discarded; later Steps and results are ignored. Close may be called from
// any goroutine, for example when the connection hosting the session drops.
func (s *GameSession) Close() {
	if s.closed.Swap(true) {
		return
	}
	if s.syncer != nil {
		s.syncer.Close()
	}
	s.logger.Debug("session closed")
}

func (s *GameSession) frame() RenderFrame {
	ui := s.ui.view()
	ui.Missions = make([]MissionStatus, 0, len(s.world.Missions))
	for _, m := range s.world.Missions {
		st := MissionStatus{
			ID:        m.ID,
			Name:      m.Name,
			Kind:      m.Kind,
			Required:  m.Objectives.Required,
			Completed: m.Completed,
			Active:    m.ID == s.player.Mission,
		}
		if st.Active {
			st.Progress = s.progress.count
			active := st
			ui.Active = &active
		}
		ui.Missions = append(ui.Missions, st)
	}

	return RenderFrame{
		World:  s.world.Snapshot(),
		Camera: s.camera,
		ViewW:  s.viewW,
		ViewH:  s.viewH,
		Player: s.player.view(s.catalog.Bicycles),
		UI:     ui,
	}
}
