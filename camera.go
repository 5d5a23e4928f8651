package sapling

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies inside r (edges included).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// scrollAnim holds active scroll-to tweens for the camera position.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// viewKey is the input the cached view matrix was computed from.
type viewKey struct {
	pos      Vec2
	zoom     float64
	rotation float64
	viewport Rect
}

// Camera controls the view into a scene: position, zoom, rotation and
// viewport. Assign one to Scene.Camera and every object is drawn through it.
type Camera struct {
	// Position is the world point shown at the viewport center.
	Position Vec2
	// Zoom is the scale factor (1 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians.
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	follow       *GameObject
	followOffset Vec2
	followLerp   float64

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	cachedFor     viewKey
	cached        bool

	scroll *scrollAnim
	wrap   cameraRenderer
}

// NewCamera creates a camera centered on the origin rendering into viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{Zoom: 1, Viewport: viewport}
}

// Follow makes the camera track obj's world position plus offset. A lerp of
// 1 snaps immediately; lower values follow smoothly. Following stops when
// obj is destroyed.
func (c *Camera) Follow(obj *GameObject, offset Vec2, lerp float64) {
	c.follow = obj
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.follow = nil
}

// ScrollTo animates the camera to target over duration seconds.
func (c *Camera) ScrollTo(target Vec2, duration float32, easeFn ease.TweenFunc) {
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.Position.X), float32(target.X), duration, easeFn),
		tweenY: gween.New(float32(c.Position.Y), float32(target.Y), duration, easeFn),
	}
}

// IsScrolling reports whether a ScrollTo animation is running.
func (c *Camera) IsScrolling() bool {
	return c.scroll != nil
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// ClampToBounds immediately clamps the camera position so the visible area
// stays within Bounds. No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// Update advances follow, scroll and bounds clamping. Scene.Update calls it
// once per frame after the objects have moved.
func (c *Camera) Update(dt float64) {
	if c.follow != nil {
		if c.follow.IsDestroyed() {
			c.follow = nil
		} else {
			target := c.follow.Position().Add(c.followOffset)
			c.Position = c.Position.Lerp(target, c.followLerp)
		}
	}

	if c.scroll != nil {
		if !c.scroll.doneX {
			val, done := c.scroll.tweenX.Update(float32(dt))
			c.Position.X = float64(val)
			c.scroll.doneX = done
		}
		if !c.scroll.doneY {
			val, done := c.scroll.tweenY.Update(float32(dt))
			c.Position.Y = float64(val)
			c.scroll.doneY = done
		}
		if c.scroll.doneX && c.scroll.doneY {
			c.scroll = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts the position so the visible area stays within
// Bounds. Bounds smaller than the visible area center the camera.
func (c *Camera) clampToBounds() {
	zoom := c.zoom()
	halfW := c.Viewport.Width / (2 * zoom)
	halfH := c.Viewport.Height / (2 * zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	if minX > maxX {
		c.Position.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.Position.X = math.Max(minX, math.Min(c.Position.X, maxX))
	}
	if minY > maxY {
		c.Position.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Position.Y = math.Max(minY, math.Min(c.Position.Y, maxY))
	}
}

func (c *Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// computeViewMatrix recomputes the view matrix when the camera changed.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() [6]float64 {
	key := viewKey{c.Position, c.zoom(), c.Rotation, c.Viewport}
	if c.cached && key == c.cachedFor {
		return c.viewMatrix
	}
	c.cachedFor, c.cached = key, true

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	sin, cos := math.Sincos(-c.Rotation)
	z := key.zoom
	x, y := c.Position.X, c.Position.Y

	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := cx + z*(-cos*x+sin*y)
	ty := cy + z*(-sin*x-cos*y)

	c.viewMatrix = [6]float64{a, cc, b, d, tx, ty}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts a world point to screen coordinates.
func (c *Camera) WorldToScreen(p Vec2) Vec2 {
	m := c.computeViewMatrix()
	x, y := transformPoint(m, p.X, p.Y)
	return Vec2{x, y}
}

// ScreenToWorld converts a screen point to world coordinates.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	c.computeViewMatrix()
	x, y := transformPoint(c.invViewMatrix, p.X, p.Y)
	return Vec2{x, y}
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's
// visible area in world space.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	inv := c.invViewMatrix

	vx := c.Viewport.X
	vy := c.Viewport.Y
	vr := vx + c.Viewport.Width
	vb := vy + c.Viewport.Height

	x0, y0 := transformPoint(inv, vx, vy)
	x1, y1 := transformPoint(inv, vr, vy)
	x2, y2 := transformPoint(inv, vr, vb)
	x3, y3 := transformPoint(inv, vx, vb)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Apply returns a Renderer that maps world coordinates through the camera
// before drawing on r. The returned value is reused by the next Apply call.
func (c *Camera) Apply(r Renderer) Renderer {
	c.wrap = cameraRenderer{cam: c, base: r}
	return &c.wrap
}

// cameraRenderer draws world-space shapes through a camera.
type cameraRenderer struct {
	cam  *Camera
	base Renderer
}

func (w *cameraRenderer) DrawRect(center, size Vec2, rotation float64, c Color) {
	w.base.DrawRect(w.cam.WorldToScreen(center), size.Scale(w.cam.zoom()), rotation-w.cam.Rotation, c)
}

func (w *cameraRenderer) DrawCircle(center Vec2, radius float64, c Color) {
	w.base.DrawCircle(w.cam.WorldToScreen(center), radius*w.cam.zoom(), c)
}

func (w *cameraRenderer) StrokeCircle(center Vec2, radius, width float64, c Color) {
	z := w.cam.zoom()
	w.base.StrokeCircle(w.cam.WorldToScreen(center), radius*z, width*z, c)
}

func (w *cameraRenderer) DrawLine(from, to Vec2, width float64, c Color) {
	w.base.DrawLine(w.cam.WorldToScreen(from), w.cam.WorldToScreen(to), width*w.cam.zoom(), c)
}

func (w *cameraRenderer) DrawText(pos Vec2, s string, c Color) {
	w.base.DrawText(w.cam.WorldToScreen(pos), s, c)
}
