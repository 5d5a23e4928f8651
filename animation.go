package sapling

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 values simultaneously and writes them
// back through an apply function. Create one via the convenience
// constructors (TweenPosition, TweenScale, TweenRotation, TweenColor) and
// call Update(dt) each frame, typically from a GameObject's OnUpdate. If the
// target transform is destroyed, the group stops immediately.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float64
	apply  func(v [4]float64)
	target *Transform
	Done   bool
}

// Update advances all tweens by dt seconds and applies the current values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDestroyed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	g.apply(g.values)
}

// TweenPosition animates t's local position to the target over duration
// seconds using the easing function.
func TweenPosition(t *Transform, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := t.LocalPosition()
	g := &TweenGroup{count: 2, target: t}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	g.apply = func(v [4]float64) { t.SetLocalPosition(Vec2{v[0], v[1]}) }
	return g
}

// TweenScale animates t's local scale to the target.
func TweenScale(t *Transform, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := t.LocalScale()
	g := &TweenGroup{count: 2, target: t}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	g.apply = func(v [4]float64) { t.SetLocalScale(Vec2{v[0], v[1]}) }
	return g
}

// TweenRotation animates t's local rotation (radians) to the target. The
// rotation is interpolated numerically, not along the shortest arc.
func TweenRotation(t *Transform, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: t}
	g.tweens[0] = gween.New(float32(t.LocalRotation()), float32(to), duration, fn)
	g.apply = func(v [4]float64) { t.SetLocalRotation(v[0]) }
	return g
}

// TweenColor animates all four components of a sprite's color.
func TweenColor(s *Sprite, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(s.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(s.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(s.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(s.Color.A), float32(to.A), duration, fn)
	g.apply = func(v [4]float64) { s.Color = Color{v[0], v[1], v[2], v[3]} }
	return g
}
