package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bike-city/internal/core"
)

// dayCodes are the 256-colour codes of the cell colours.
var dayCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorBrown:         "94",
	core.ColorSlate:         "66",
}

// nightCodes replace the scenery colours after dusk. Bright colours are
// riders, headlights and text, and keep their day codes.
var nightCodes = map[core.Color]string{
	core.ColorRed:     "52",
	core.ColorGreen:   "22",
	core.ColorYellow:  "58",
	core.ColorBlue:    "17",
	core.ColorMagenta: "53",
	core.ColorCyan:    "23",
	core.ColorOrange:  "130",
	core.ColorGray:    "238",
	core.ColorBrown:   "52",
	core.ColorSlate:   "59",
}

type palette map[core.Color]lipgloss.Style

func newPalette(overrides map[core.Color]string) palette {
	p := palette{core.ColorDefault: lipgloss.NewStyle()}
	for c, code := range dayCodes {
		if o, ok := overrides[c]; ok {
			code = o
		}
		p[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return p
}

var (
	dayPalette   = newPalette(nil)
	nightPalette = newPalette(nightCodes)
)

func (p palette) style(c core.Color) lipgloss.Style {
	if st, ok := p[c]; ok {
		return st
	}
	return p[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string, one style per run
// of same-coloured cells. With night set the scenery is drawn dimmed.
func RenderScreen(s *core.Screen, night bool) string {
	p := dayPalette
	if night {
		p = nightPalette
	}

	var (
		sb  strings.Builder
		run strings.Builder
	)
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		run.Reset()
		col := s.GetCell(0, y).Color
		for x := 0; x < s.Width(); x++ {
			cell := s.GetCell(x, y)
			if cell.Color != col {
				sb.WriteString(p.style(col).Render(run.String()))
				run.Reset()
				col = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			sb.WriteString(p.style(col).Render(run.String()))
		}
	}
	return sb.String()
}
