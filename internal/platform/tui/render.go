package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mazetrace/internal/canvas"
	"github.com/vovakirdan/mazetrace/internal/core"
)

// TileCols is how many terminal columns one tile occupies.
// Terminal cells are about twice as tall as wide, so two columns keep tiles square.
const TileCols = 2

type cellStyle struct {
	fg, bg core.Color
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[cellStyle]lipgloss.Style)
	styleFor := func(key cellStyle) lipgloss.Style {
		if st, ok := styles[key]; ok {
			return st
		}
		st := lipgloss.NewStyle()
		if !key.fg.IsTransparent() {
			st = st.Foreground(lipgloss.Color(key.fg.Hex()))
		}
		if !key.bg.IsTransparent() {
			st = st.Background(lipgloss.Color(key.bg.Hex()))
		}
		styles[key] = st
		return st
	}

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			key := cellStyle{fg: cell.FG, bg: cell.BG}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.FG != key.fg || cell.BG != key.bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if key == (cellStyle{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(key).Render(run.String()))
		}
	}
	return sb.String()
}

// DrawCanvas paints every tile of c into the screen with its top-left at
// (originX, originY) and returns the area it covers. Tile row 0 is drawn at
// the top, the same way layout files are written. Tiles past the screen edge
// are skipped. The canvas buffers are read in place, row-major.
func DrawCanvas(s *core.Screen, c *canvas.Canvas, f *Fader, originX, originY int) core.Rect {
	w, h := c.TilesW(), c.TilesH()
	area := core.NewRect(originX, originY, w*TileCols, h)
	bounds := core.NewRect(0, 0, s.Width(), s.Height())
	ranges, strengths := c.ColorRanges(), c.Strengths()

	for i, r := range ranges {
		tx, ty := i%w, i/w
		sx, sy := originX+tx*TileCols, originY+ty
		if !bounds.Contains(sx, sy) {
			continue
		}
		inst := canvas.Instance{High: r.High, Low: r.Low, Strength: float32(strengths[i])}
		cell := core.Cell{Rune: ' ', BG: f.Color(inst)}
		for col := 0; col < TileCols; col++ {
			s.SetCell(sx+col, sy, cell)
		}
	}
	return area
}
