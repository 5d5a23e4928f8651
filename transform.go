package sapling

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrCycle is wrapped by CycleError.
	ErrCycle = errors.New("sapling: reparent would create a cycle")
	// ErrForeignHierarchy is returned when parenting across hierarchies.
	ErrForeignHierarchy = errors.New("sapling: transforms belong to different hierarchies")
	// ErrDestroyed is returned when reparenting a destroyed transform.
	ErrDestroyed = errors.New("sapling: transform is destroyed")
)

// CycleError reports a rejected SetParent call. The transforms involved are
// left exactly as they were.
type CycleError struct {
	Child  *Transform
	Parent *Transform
}

func (e *CycleError) Error() string {
	if e.Child == e.Parent {
		return "sapling: transform cannot be its own parent"
	}
	return "sapling: new parent is a descendant of the transform"
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// Pose is a position, rotation (radians) and scale triple.
type Pose struct {
	Position Vec2
	Rotation float64
	Scale    Vec2
}

// Transform is a node in a parent/child hierarchy holding a local pose.
// World values are never stored; each read composes the chain from the root.
//
// The parent pointer is a back reference only. A transform's children slice
// contains exactly the transforms whose parent is that transform.
type Transform struct {
	h *Hierarchy

	position Vec2
	rotation float64
	scale    Vec2

	parent    *Transform
	children  []*Transform
	destroyed bool
}

// Hierarchy returns the hierarchy t belongs to.
func (t *Transform) Hierarchy() *Hierarchy { return t.h }

// --- Local pose ---

// LocalPosition returns the position relative to the parent.
func (t *Transform) LocalPosition() Vec2 {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	return t.position
}

// SetLocalPosition sets the position relative to the parent.
func (t *Transform) SetLocalPosition(p Vec2) {
	t.h.mu.Lock()
	t.position = p
	t.h.mu.Unlock()
}

// LocalRotation returns the rotation relative to the parent, in radians.
// The value is returned exactly as stored, without wrapping.
func (t *Transform) LocalRotation() float64 {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	return t.rotation
}

// SetLocalRotation sets the rotation relative to the parent, in radians.
func (t *Transform) SetLocalRotation(r float64) {
	t.h.mu.Lock()
	t.rotation = r
	t.h.mu.Unlock()
}

// LocalScale returns the scale relative to the parent.
func (t *Transform) LocalScale() Vec2 {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	return t.scale
}

// SetLocalScale sets the scale relative to the parent.
func (t *Transform) SetLocalScale(s Vec2) {
	t.h.mu.Lock()
	t.scale = s
	t.h.mu.Unlock()
}

// LocalPose returns all three local values at once.
func (t *Transform) LocalPose() Pose {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	return Pose{t.position, t.rotation, t.scale}
}

// SetLocalPose sets all three local values at once.
func (t *Transform) SetLocalPose(p Pose) {
	t.h.mu.Lock()
	t.position, t.rotation, t.scale = p.Position, p.Rotation, p.Scale
	t.h.mu.Unlock()
}

// Translate moves the local position by d.
func (t *Transform) Translate(d Vec2) {
	t.h.mu.Lock()
	t.position = t.position.Add(d)
	t.h.mu.Unlock()
}

// Rotate adds r radians to the local rotation.
func (t *Transform) Rotate(r float64) {
	t.h.mu.Lock()
	t.rotation += r
	t.h.mu.Unlock()
}

// --- Derived world pose ---

// worldPose composes the local pose with every ancestor. Caller holds the lock.
func (t *Transform) worldPose() Pose {
	if t.parent == nil {
		return Pose{t.position, t.rotation, t.scale}
	}
	p := t.parent.worldPose()
	return Pose{
		Position: p.Position.Add(t.position.Mul(p.Scale).Rotate(p.Rotation)),
		Rotation: p.Rotation + t.rotation,
		Scale:    p.Scale.Mul(t.scale),
	}
}

// WorldPose returns the world-space position, rotation and scale.
func (t *Transform) WorldPose() Pose {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	return t.worldPose()
}

// WorldPosition returns the position relative to the global origin.
func (t *Transform) WorldPosition() Vec2 { return t.WorldPose().Position }

// WorldRotation returns the accumulated rotation in radians. It is the plain
// sum of the chain's local rotations and is not wrapped.
func (t *Transform) WorldRotation() float64 { return t.WorldPose().Rotation }

// WorldScale returns the component-wise product of the chain's local scales.
func (t *Transform) WorldScale() Vec2 { return t.WorldPose().Scale }

// SetWorldPosition sets the local position so that the world position
// becomes p. Axes with a zero parent scale are set to 0.
func (t *Transform) SetWorldPosition(p Vec2) {
	t.h.mu.Lock()
	defer t.h.mu.Unlock()
	if t.parent == nil {
		t.position = p
		return
	}
	pp := t.parent.worldPose()
	d := p.Sub(pp.Position).Rotate(-pp.Rotation)
	t.position = Vec2{safeDiv(d.X, pp.Scale.X), safeDiv(d.Y, pp.Scale.Y)}
}

// WorldMatrix returns the world pose as an affine matrix [a, b, c, d, tx, ty].
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func (t *Transform) WorldMatrix() [6]float64 {
	return poseMatrix(t.WorldPose())
}

// LocalToWorld converts a point in t's local space to world space.
func (t *Transform) LocalToWorld(p Vec2) Vec2 {
	x, y := transformPoint(t.WorldMatrix(), p.X, p.Y)
	return Vec2{x, y}
}

// WorldToLocal converts a world-space point to t's local space.
func (t *Transform) WorldToLocal(p Vec2) Vec2 {
	x, y := transformPoint(invertAffine(t.WorldMatrix()), p.X, p.Y)
	return Vec2{x, y}
}

// --- Hierarchy ---

// Parent returns the current parent, or nil for a root.
func (t *Transform) Parent() *Transform {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	return t.parent
}

// Children returns a copy of the ordered child list.
func (t *Transform) Children() []*Transform {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	out := make([]*Transform, len(t.children))
	copy(out, t.children)
	return out
}

// NumChildren returns the number of children.
func (t *Transform) NumChildren() int {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	return len(t.children)
}

// Root returns the topmost ancestor of t, or t itself.
func (t *Transform) Root() *Transform {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	r := t
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth returns the number of ancestors of t.
func (t *Transform) Depth() int {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	return depthOf(t)
}

// IsAncestorOf reports whether t is a strict ancestor of other.
func (t *Transform) IsAncestorOf(other *Transform) bool {
	if other == nil || other.h != t.h {
		return false
	}
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	return other != t && isAncestor(t, other)
}

// SetParent moves t under parent, appending it to parent's children. A nil
// parent detaches t and makes it a root. The new parent is validated before
// any link is changed: on error t, its old parent and the new parent are
// untouched. Setting the current parent again is a no-op.
func (t *Transform) SetParent(parent *Transform) error {
	if parent != nil && parent.h != t.h {
		return fmt.Errorf("set parent: %w", ErrForeignHierarchy)
	}
	t.h.mu.Lock()
	defer t.h.mu.Unlock()
	if t.destroyed || (parent != nil && parent.destroyed) {
		return fmt.Errorf("set parent: %w", ErrDestroyed)
	}
	if parent == t.parent {
		return nil
	}
	if parent != nil && isAncestor(t, parent) {
		return &CycleError{Child: t, Parent: parent}
	}
	if t.parent != nil {
		t.parent.removeChild(t)
	}
	t.parent = parent
	if parent != nil {
		parent.children = append(parent.children, t)
		if t.h.debug {
			debugCheckTreeDepth(t.h.log, t)
			debugCheckChildCount(t.h.log, parent)
		}
	}
	return nil
}

// Copy returns a new transform in the same hierarchy with t's local pose and
// no parent or children. The clone shares no state with t.
func (t *Transform) Copy() *Transform {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	return &Transform{
		h:        t.h,
		position: t.position,
		rotation: t.rotation,
		scale:    t.scale,
	}
}

// Destroy detaches t from its parent and orphans its children. Children keep
// their local values and become roots; they are not destroyed.
func (t *Transform) Destroy() {
	t.h.mu.Lock()
	defer t.h.mu.Unlock()
	if t.destroyed {
		return
	}
	if t.parent != nil {
		t.parent.removeChild(t)
		t.parent = nil
	}
	for i, c := range t.children {
		c.parent = nil
		t.children[i] = nil
	}
	t.children = nil
	t.destroyed = true
	if t.h.debug {
		t.h.log.Debug("transform destroyed")
	}
}

// IsDestroyed reports whether Destroy has been called.
func (t *Transform) IsDestroyed() bool {
	t.h.mu.RLock()
	defer t.h.mu.RUnlock()
	return t.destroyed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Transform) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func depthOf(t *Transform) int {
	depth := 0
	for p := t.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// removeChild removes child from t.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (t *Transform) removeChild(child *Transform) {
	for i, c := range t.children {
		if c == child {
			copy(t.children[i:], t.children[i+1:])
			t.children[len(t.children)-1] = nil
			t.children = t.children[:len(t.children)-1]
			return
		}
	}
}

// poseMatrix builds Translate(pos) * Rotate(rot) * Scale(scale).
func poseMatrix(p Pose) [6]float64 {
	sin, cos := math.Sincos(p.Rotation)
	return [6]float64{
		cos * p.Scale.X,
		sin * p.Scale.X,
		-sin * p.Scale.Y,
		cos * p.Scale.Y,
		p.Position.X,
		p.Position.Y,
	}
}

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
