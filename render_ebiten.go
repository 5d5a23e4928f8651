package sapling

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// whitePixel is a 1x1 white image scaled and tinted to draw rectangles.
var whitePixel *ebiten.Image

// debugFace is the built-in bitmap face used for DrawText.
var debugFace = text.NewGoXFace(basicfont.Face7x13)

func whiteImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.RGBA())
	}
	return whitePixel
}

// EbitenRenderer draws onto an *ebiten.Image. World units map 1:1 to pixels
// of the target.
type EbitenRenderer struct {
	target *ebiten.Image
	op     ebiten.DrawImageOptions
}

// NewEbitenRenderer returns a renderer drawing onto target.
func NewEbitenRenderer(target *ebiten.Image) *EbitenRenderer {
	return &EbitenRenderer{target: target}
}

// SetTarget changes the image drawn onto. The engine calls it every frame
// with the screen image.
func (r *EbitenRenderer) SetTarget(target *ebiten.Image) {
	r.target = target
}

// DrawRect draws a filled rectangle of the given size centered on center and
// rotated around it.
func (r *EbitenRenderer) DrawRect(center, size Vec2, rotation float64, c Color) {
	if size.X == 0 || size.Y == 0 {
		return
	}
	r.op = ebiten.DrawImageOptions{}
	r.op.GeoM.Scale(size.X, size.Y)
	r.op.GeoM.Translate(-size.X/2, -size.Y/2)
	if rotation != 0 {
		r.op.GeoM.Rotate(rotation)
	}
	r.op.GeoM.Translate(center.X, center.Y)
	r.op.ColorScale.ScaleWithColor(c.RGBA())
	r.target.DrawImage(whiteImage(), &r.op)
}

// DrawCircle draws a filled circle.
func (r *EbitenRenderer) DrawCircle(center Vec2, radius float64, c Color) {
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(r.target, float32(center.X), float32(center.Y), float32(radius), c.RGBA(), true)
}

// StrokeCircle draws a circle outline of the given stroke width.
func (r *EbitenRenderer) StrokeCircle(center Vec2, radius, width float64, c Color) {
	if radius <= 0 || width <= 0 {
		return
	}
	vector.StrokeCircle(r.target, float32(center.X), float32(center.Y), float32(radius), float32(width), c.RGBA(), true)
}

// DrawLine draws a line segment of the given stroke width.
func (r *EbitenRenderer) DrawLine(from, to Vec2, width float64, c Color) {
	if width <= 0 {
		return
	}
	vector.StrokeLine(r.target, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), float32(width), c.RGBA(), true)
}

// DrawText draws text centered on pos with the built-in bitmap font.
func (r *EbitenRenderer) DrawText(pos Vec2, s string, c Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(r.target, s, debugFace, op)
}

var _ Renderer = (*EbitenRenderer)(nil)
