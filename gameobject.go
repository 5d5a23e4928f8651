package sapling

import (
	"errors"
	"sync/atomic"
)

// ErrObjectDestroyed is returned when attaching a destroyed GameObject.
var ErrObjectDestroyed = errors.New("sapling: game object is destroyed")

var objectIDCounter atomic.Uint32

func nextObjectID() uint32 {
	return objectIDCounter.Add(1)
}

// GameObject is an element of a Scene. It owns a Transform, an ordered list
// of components, and an ordered list of child objects whose transforms are
// parented to its own. Draw order among siblings comes from ZOrder, not from
// tree position.
type GameObject struct {
	// Identity
	ID   uint32
	Name string
	Tag  string

	// Ordering & visibility
	ZOrder  int
	Visible bool

	Transform *Transform

	// OnUpdate runs once per Scene.Update after the object's Updater
	// components. Nil by default.
	OnUpdate func(obj *GameObject, dt float64)

	// UserData is free for game code.
	UserData any

	parent     *GameObject
	children   []*GameObject
	components []any
	scene      *Scene
	destroyed  bool
}

// NewGameObject creates a visible object whose transform lives in h. A nil h
// gives the object a private hierarchy; such an object can be added to a
// scene but cannot be parented to objects of another hierarchy.
func NewGameObject(name string, h *Hierarchy) *GameObject {
	if h == nil {
		h = NewHierarchy()
	}
	return &GameObject{
		ID:        nextObjectID(),
		Name:      name,
		Visible:   true,
		Transform: h.NewTransform(),
	}
}

// --- Components ---

// AddComponent appends c to the object's components. Renderable components
// are drawn in attachment order; Updater components are updated in the same
// order.
func (o *GameObject) AddComponent(c any) {
	if c == nil {
		panic("sapling: cannot add nil component")
	}
	o.components = append(o.components, c)
}

// RemoveComponent removes c. Returns false if c was not attached.
func (o *GameObject) RemoveComponent(c any) bool {
	for i, have := range o.components {
		if have == c {
			copy(o.components[i:], o.components[i+1:])
			o.components[len(o.components)-1] = nil
			o.components = o.components[:len(o.components)-1]
			return true
		}
	}
	return false
}

// Components returns the attached components in order. The returned slice
// MUST NOT be mutated by the caller.
func (o *GameObject) Components() []any {
	return o.components
}

// ComponentOf returns the first component of o assignable to T.
func ComponentOf[T any](o *GameObject) (T, bool) {
	for _, c := range o.components {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// --- Tree manipulation ---

// AddChild makes child a child of o, parenting its transform to o's. The
// child is removed from its previous parent or from its scene's top level
// first. Cycle and hierarchy errors from the transform are returned and leave
// both objects unchanged.
func (o *GameObject) AddChild(child *GameObject) error {
	if child == nil {
		panic("sapling: cannot add nil child")
	}
	if o.destroyed || child.destroyed {
		return ErrObjectDestroyed
	}
	if err := child.Transform.SetParent(o.Transform); err != nil {
		return err
	}
	switch {
	case child.parent != nil:
		child.parent.removeChildByPtr(child)
	case child.scene != nil:
		child.scene.removeTop(child)
	}
	child.parent = o
	o.children = append(o.children, child)
	child.setScene(o.scene)
	return nil
}

// RemoveChild detaches child from o and from o's scene. Its transform becomes
// a root. Returns false if child is not a child of o.
func (o *GameObject) RemoveChild(child *GameObject) bool {
	if child == nil || child.parent != o {
		return false
	}
	o.removeChildByPtr(child)
	child.parent = nil
	_ = child.Transform.SetParent(nil)
	child.setScene(nil)
	return true
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (o *GameObject) Children() []*GameObject {
	return o.children
}

// Parent returns the parent object, or nil for top-level and detached objects.
func (o *GameObject) Parent() *GameObject {
	return o.parent
}

// Scene returns the scene the object belongs to, or nil.
func (o *GameObject) Scene() *Scene {
	return o.scene
}

// --- Transform shortcuts ---

// Position returns the object's world position.
func (o *GameObject) Position() Vec2 {
	return o.Transform.WorldPosition()
}

// SetPosition moves the object so that its world position becomes p.
func (o *GameObject) SetPosition(p Vec2) {
	o.Transform.SetWorldPosition(p)
}

// SetZOrder sets the draw order key.
func (o *GameObject) SetZOrder(z int) {
	o.ZOrder = z
}

// --- Destruction ---

// Destroy marks the object for removal. Inside a scene the removal happens at
// the end of the current Scene.Update so iteration stays valid; outside a
// scene it happens immediately. Children are not destroyed: they are
// promoted to top-level objects of the scene and their transforms become
// roots.
func (o *GameObject) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	if o.scene != nil {
		o.scene.pending = append(o.scene.pending, o)
		return
	}
	o.finalize(nil)
}

// IsDestroyed reports whether Destroy has been called.
func (o *GameObject) IsDestroyed() bool {
	return o.destroyed
}

// finalize unlinks a destroyed object. Orphaned children are handed to
// promote, which may be nil.
func (o *GameObject) finalize(promote func(*GameObject)) {
	if o.parent != nil {
		o.parent.removeChildByPtr(o)
		o.parent = nil
	}
	children := o.children
	o.children = nil
	for _, c := range children {
		c.parent = nil
		if promote != nil {
			promote(c)
		} else {
			c.setScene(nil)
		}
	}
	o.Transform.Destroy()
	o.scene = nil
	o.OnUpdate = nil
}

// --- Helpers ---

// removeChildByPtr removes child from o.children without clearing
// child.parent.
func (o *GameObject) removeChildByPtr(child *GameObject) {
	for i, c := range o.children {
		if c == child {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			return
		}
	}
}

// setScene assigns s to o and all its descendants.
func (o *GameObject) setScene(s *Scene) {
	o.scene = s
	for _, c := range o.children {
		c.setScene(s)
	}
}
