// Package termrender draws sapling scenes onto a terminal with tcell.
//
// World space is divided into cells of a fixed size; a shape paints every
// cell whose center it covers. Filled shapes paint the cell background, text
// paints runes in the foreground.
package termrender

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/sapling"
)

// Canvas is the part of tcell.Screen the renderer needs.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Renderer implements sapling.Renderer on a Canvas.
type Renderer struct {
	canvas Canvas
	cellW  float64
	cellH  float64
}

// New returns a renderer mapping cellW x cellH world units to one cell.
// Non-positive sizes fall back to 1.
func New(canvas Canvas, cellW, cellH float64) *Renderer {
	if cellW <= 0 {
		cellW = 1
	}
	if cellH <= 0 {
		cellH = 1
	}
	return &Renderer{canvas: canvas, cellW: cellW, cellH: cellH}
}

// Color converts a sapling color to a tcell RGB color.
func Color(c sapling.Color) tcell.Color {
	rgba := c.RGBA()
	return tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B))
}

// Clear paints every cell with bg.
func (r *Renderer) Clear(bg sapling.Color) {
	style := tcell.StyleDefault.Background(Color(bg))
	w, h := r.canvas.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.canvas.SetContent(x, y, ' ', nil, style)
		}
	}
}

// CellOf returns the cell containing world point p.
func (r *Renderer) CellOf(p sapling.Vec2) (int, int) {
	return int(math.Floor(p.X / r.cellW)), int(math.Floor(p.Y / r.cellH))
}

// cellCenter returns the world position of the center of cell (x, y).
func (r *Renderer) cellCenter(x, y int) sapling.Vec2 {
	return sapling.Vec2{X: (float64(x) + 0.5) * r.cellW, Y: (float64(y) + 0.5) * r.cellH}
}

func (r *Renderer) fill(x, y int, c sapling.Color) {
	w, h := r.canvas.Size()
	if x < 0 || y < 0 || x >= w || y >= h || c.A <= 0 {
		return
	}
	r.canvas.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(Color(c)))
}

// fillWhere paints every visible cell in the world-space box [min, max]
// whose center satisfies inside.
func (r *Renderer) fillWhere(min, max sapling.Vec2, c sapling.Color, inside func(sapling.Vec2) bool) {
	x0, y0 := r.CellOf(min)
	x1, y1 := r.CellOf(max)
	w, h := r.canvas.Size()
	x0, y0 = clampInt(x0, 0, w-1), clampInt(y0, 0, h-1)
	x1, y1 = clampInt(x1, 0, w-1), clampInt(y1, 0, h-1)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if inside(r.cellCenter(x, y)) {
				r.fill(x, y, c)
			}
		}
	}
}

// DrawRect implements sapling.Renderer.
func (r *Renderer) DrawRect(center, size sapling.Vec2, rotation float64, c sapling.Color) {
	half := sapling.Vec2{X: math.Abs(size.X) / 2, Y: math.Abs(size.Y) / 2}
	if half.X == 0 || half.Y == 0 {
		return
	}
	extent := math.Hypot(half.X, half.Y)
	if rotation == 0 {
		extent = 0
	}
	lo := center.Sub(half)
	hi := center.Add(half)
	if extent > 0 {
		lo = center.Sub(sapling.Vec2{X: extent, Y: extent})
		hi = center.Add(sapling.Vec2{X: extent, Y: extent})
	}
	r.fillWhere(lo, hi, c, func(p sapling.Vec2) bool {
		local := p.Sub(center).Rotate(-rotation)
		return math.Abs(local.X) <= half.X && math.Abs(local.Y) <= half.Y
	})
}

// DrawCircle implements sapling.Renderer.
func (r *Renderer) DrawCircle(center sapling.Vec2, radius float64, c sapling.Color) {
	if radius <= 0 {
		return
	}
	ext := sapling.Vec2{X: radius, Y: radius}
	r.fillWhere(center.Sub(ext), center.Add(ext), c, func(p sapling.Vec2) bool {
		return p.DistanceTo(center) <= radius
	})
}

// StrokeCircle implements sapling.Renderer. Strokes thinner than half a cell
// are widened so the outline stays visible.
func (r *Renderer) StrokeCircle(center sapling.Vec2, radius, width float64, c sapling.Color) {
	if radius <= 0 || width <= 0 {
		return
	}
	halfW := math.Max(width/2, math.Min(r.cellW, r.cellH)/2)
	ext := sapling.Vec2{X: radius + halfW, Y: radius + halfW}
	r.fillWhere(center.Sub(ext), center.Add(ext), c, func(p sapling.Vec2) bool {
		return math.Abs(p.DistanceTo(center)-radius) <= halfW
	})
}

// DrawLine implements sapling.Renderer. Lines are one cell wide.
func (r *Renderer) DrawLine(from, to sapling.Vec2, _ float64, c sapling.Color) {
	x0, y0 := r.CellOf(from)
	x1, y1 := r.CellOf(to)
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		r.fill(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawText implements sapling.Renderer. The text is centered horizontally
// on pos and keeps the background of the cells it covers unset.
func (r *Renderer) DrawText(pos sapling.Vec2, s string, c sapling.Color) {
	runes := []rune(s)
	cx, cy := r.CellOf(pos)
	w, h := r.canvas.Size()
	if cy < 0 || cy >= h {
		return
	}
	style := tcell.StyleDefault.Foreground(Color(c))
	x := cx - len(runes)/2
	for _, ch := range runes {
		if x >= 0 && x < w {
			r.canvas.SetContent(x, cy, ch, nil, style)
		}
		x++
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ sapling.Renderer = (*Renderer)(nil)
