package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/bike-city/internal/core"
	"github.com/vovakirdan/bike-city/internal/game"
	"github.com/vovakirdan/bike-city/internal/world"
)

// HUDRows is the number of screen rows below the map used by the HUD.
const HUDRows = 2

const (
	smogThreshold = 0.3
	smogHeavy     = 0.7
	maxToasts     = 3
)

// Projection maps world coordinates onto screen cells.
type Projection struct {
	Camera game.Camera
	CellW  float64
	CellH  float64
}

// Cell returns the screen cell containing the world point (x, y).
func (p Projection) Cell(x, y float64) (int, int) {
	vx, vy := p.Camera.ToView(x, y)
	return int(math.Floor(vx / p.CellW)), int(math.Floor(vy / p.CellH))
}

// Span returns the cells covered by r. Anything with an area covers at least
// one cell.
func (p Projection) Span(r core.Rect) (x0, y0, w, h int) {
	x0, y0 = p.Cell(r.X, r.Y)
	vx, vy := p.Camera.ToView(r.Right(), r.Bottom())
	x1 := int(math.Ceil(vx / p.CellW))
	y1 := int(math.Ceil(vy / p.CellH))
	return x0, y0, max(1, x1-x0), max(1, y1-y0)
}

// ViewportSize returns the world area shown by a screen of the given size.
func ViewportSize(cols, rows int, cellW, cellH float64) (float64, float64) {
	return float64(cols) * cellW, float64(max(0, rows-HUDRows)) * cellH
}

// canvas clips drawing to the map rows.
type canvas struct {
	s    *core.Screen
	p    Projection
	rows int
}

func (c canvas) set(x, y int, r rune, col core.Color) {
	if y >= c.rows {
		return
	}
	c.s.Set(x, y, r, col)
}

func (c canvas) fill(r core.Rect, ch rune, col core.Color) {
	x0, y0, w, h := c.p.Span(r)
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			c.set(x, y, ch, col)
		}
	}
}

func (c canvas) point(x, y float64, ch rune, col core.Color) {
	cx, cy := c.p.Cell(x, y)
	c.set(cx, cy, ch, col)
}

func (c canvas) text(x, y, width int, s string, col core.Color) {
	i := 0
	for _, r := range s {
		if i >= width {
			break
		}
		c.set(x+i, y, r, col)
		i++
	}
}

// DrawFrame draws f onto s: the map scaled by cellW x cellH world units per
// cell, overlays, then the HUD on the bottom rows.
func DrawFrame(s *core.Screen, f game.RenderFrame, cellW, cellH float64) {
	s.Clear()
	c := canvas{
		s:    s,
		p:    Projection{Camera: f.Camera, CellW: cellW, CellH: cellH},
		rows: max(0, s.Height()-HUDRows),
	}

	drawWorld(c, f)
	drawPlayer(c, f.Player)
	drawToasts(c, f.UI.Notifications)

	switch {
	case f.UI.Shop != nil:
		drawShop(c, *f.UI.Shop)
	case f.UI.ShowMissions:
		drawMissionLog(c, f.UI.Missions)
	}

	drawHUD(s, f)
}

func drawWorld(c canvas, f game.RenderFrame) {
	w := f.World

	for _, r := range w.Roads {
		c.fill(r.Rect, '░', core.ColorGray)
	}
	for _, h := range w.Pollution {
		drawSmog(c, h)
	}
	for _, b := range w.Buildings {
		c.fill(b.Rect, '█', b.Color)
	}
	for _, sh := range w.Shops {
		col := shopColor(sh.Kind)
		c.fill(sh.Rect, '▓', col)
		x0, y0, width, _ := c.p.Span(sh.Rect)
		c.text(x0, y0, width, sh.Name, core.ColorBrightWhite)
	}
	for _, m := range w.Missions {
		drawMission(c, m, f.UI.Active)
	}
	for _, item := range w.Recyclables {
		if item.Collected {
			continue
		}
		center := item.Center()
		c.point(center.X, center.Y, '*', core.ColorBrightCyan)
	}
	for _, n := range w.NPCs {
		center := n.Center()
		ch, col := npcGlyph(n.Kind)
		c.point(center.X, center.Y, ch, col)
	}
	for _, v := range w.Traffic {
		ch, col := vehicleGlyph(v.Kind)
		c.fill(v.Rect, ch, col)
	}
}

func drawSmog(c canvas, h world.Hotspot) {
	if h.Intensity < smogThreshold {
		return
	}
	col := core.ColorYellow
	if h.Intensity >= smogHeavy {
		col = core.ColorRed
	}

	x0, y0, w, ht := c.p.Span(core.NewRect(h.X-h.Radius, h.Y-h.Radius, 2*h.Radius, 2*h.Radius))
	for y := y0; y < y0+ht; y++ {
		for x := x0; x < x0+w; x++ {
			wx := c.p.Camera.X + (float64(x)+0.5)*c.p.CellW
			wy := c.p.Camera.Y + (float64(y)+0.5)*c.p.CellH
			if core.Distance(wx, wy, h.X, h.Y) <= h.Radius {
				c.set(x, y, '~', col)
			}
		}
	}
}

func drawMission(c canvas, m world.Mission, active *game.MissionStatus) {
	switch {
	case m.Completed:
		c.point(m.X, m.Y, '✓', core.ColorBrightGreen)
		return
	case active != nil && active.ID == m.ID:
		c.point(m.X, m.Y, '!', core.ColorBrightMagenta)
	default:
		c.point(m.X, m.Y, '!', core.ColorBrightYellow)
	}

	if active == nil || active.ID != m.ID || m.Kind != world.MissionSolar {
		return
	}
	for _, site := range m.Objectives.Sites {
		c.point(site.X, site.Y, '+', core.ColorBrightYellow)
	}
}

func drawPlayer(c canvas, p game.PlayerView) {
	c.fill(core.NewRect(p.X, p.Y, p.Width, p.Height), playerGlyph(p.Direction), core.ColorBrightGreen)
}

func playerGlyph(d core.Direction) rune {
	switch d {
	case core.DirUp:
		return '^'
	case core.DirRight:
		return '>'
	case core.DirDown:
		return 'v'
	case core.DirLeft:
		return '<'
	default:
		return '@'
	}
}

func shopColor(k world.ShopKind) core.Color {
	switch k {
	case world.ShopBikeRepair:
		return core.ColorCyan
	case world.ShopEcoStore:
		return core.ColorGreen
	case world.ShopRecyclingCenter:
		return core.ColorBlue
	default:
		return core.ColorWhite
	}
}

func npcGlyph(k world.NPCKind) (rune, core.Color) {
	switch k {
	case world.NPCPedestrian:
		return 'i', core.ColorWhite
	case world.NPCCyclist:
		return 'c', core.ColorMagenta
	default:
		return '?', core.ColorWhite
	}
}

func vehicleGlyph(k world.VehicleKind) (rune, core.Color) {
	switch k {
	case world.VehicleCar:
		return '■', core.ColorBrightRed
	case world.VehicleBus:
		return '■', core.ColorBrightBlue
	default:
		return '■', core.ColorWhite
	}
}

func notificationColor(k game.NotificationKind) core.Color {
	switch k {
	case game.NotifySuccess:
		return core.ColorBrightGreen
	case game.NotifyError:
		return core.ColorBrightRed
	default:
		return core.ColorBrightBlue
	}
}

// drawToasts stacks the newest notifications in the top right corner.
func drawToasts(c canvas, notes []game.Notification) {
	if len(notes) > maxToasts {
		notes = notes[len(notes)-maxToasts:]
	}
	for i, n := range notes {
		msg := " " + n.Message + " "
		x := max(0, c.s.Width()-len([]rune(msg))-1)
		c.text(x, 1+i, c.s.Width()-x, msg, notificationColor(n.Kind))
	}
}

type boxLine struct {
	text  string
	color core.Color
}

func drawBox(c canvas, title string, lines []boxLine) {
	width := len([]rune(title)) + 4
	for _, l := range lines {
		width = max(width, len([]rune(l.text))+4)
	}
	width = min(width, c.s.Width())
	height := min(len(lines)+2, c.rows)

	x0 := max(0, (c.s.Width()-width)/2)
	y0 := max(0, (c.rows-height)/2)

	for y := y0; y < y0+height; y++ {
		for x := x0; x < x0+width; x++ {
			ch := ' '
			switch {
			case y == y0 || y == y0+height-1:
				ch = '─'
			case x == x0 || x == x0+width-1:
				ch = '│'
			}
			c.set(x, y, ch, core.ColorGray)
		}
	}
	c.text(x0+2, y0, width-4, title, core.ColorBrightWhite)
	for i, l := range lines {
		if i+1 >= height-1 {
			break
		}
		c.text(x0+2, y0+1+i, width-4, l.text, l.color)
	}
}

func drawShop(c canvas, m game.ShopMenu) {
	lines := make([]boxLine, 0, len(m.Items)+2)
	for i, b := range m.Items {
		cursor := "  "
		col := core.ColorWhite
		if i == m.Selected {
			cursor = "> "
			col = core.ColorBrightYellow
		}
		owned := ""
		if b.ID == m.Owned {
			owned = " (riding)"
		}
		lines = append(lines, boxLine{
			text:  fmt.Sprintf("%s%-14s $%-4d speed %-3.0f%s", cursor, b.Name, b.Price, b.Speed, owned),
			color: col,
		})
	}
	lines = append(lines,
		boxLine{},
		boxLine{text: "up/down choose  enter buy  esc close", color: core.ColorGray},
	)
	drawBox(c, m.ShopName, lines)
}

func drawMissionLog(c canvas, missions []game.MissionStatus) {
	lines := make([]boxLine, 0, len(missions))
	for _, m := range missions {
		status, col := "open", core.ColorWhite
		switch {
		case m.Completed:
			status, col = "done", core.ColorBrightGreen
		case m.Active:
			status, col = fmt.Sprintf("%d/%d", m.Progress, m.Required), core.ColorBrightMagenta
		}
		lines = append(lines, boxLine{text: fmt.Sprintf("%-22s %s", m.Name, status), color: col})
	}
	drawBox(c, "Missions", lines)
}

// drawHUD fills the bottom rows with player stats and the open prompt.
func drawHUD(s *core.Screen, f game.RenderFrame) {
	top := s.Height() - HUDRows
	if top < 0 {
		return
	}
	p := f.Player

	phase := "day"
	if f.World.IsNight() {
		phase = "night"
	}
	stats := fmt.Sprintf(" %s  HP %d  ST %d  %s  eco %d  $%d  %s",
		p.Name, p.Health, p.Stamina, orDash(p.Bicycle), p.EcoPoints, p.Money, phase)
	if a := f.UI.Active; a != nil {
		stats += fmt.Sprintf("  [%s %d/%d]", a.Name, a.Progress, a.Required)
	}
	s.FillRect(0, top, s.Width(), 1, ' ', core.ColorDefault)
	s.DrawText(0, top, stats, core.ColorBrightWhite)

	s.FillRect(0, top+1, s.Width(), 1, ' ', core.ColorDefault)
	if pr := f.UI.Prompt; pr.Kind != game.PromptNone {
		line := " " + pr.Title
		if pr.Detail != "" {
			line += ": " + pr.Detail
		}
		s.DrawText(0, top+1, line+"  [enter] accept  [esc] dismiss", core.ColorBrightYellow)
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "on foot"
	}
	return s
}
