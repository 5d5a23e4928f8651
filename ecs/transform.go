package ecs

import "github.com/phanxgames/sapling"

// TransformType is the component type of TransformComponent.
var TransformType = RegisterComponentType("sapling.Transform")

// TransformComponent places an entity in a sapling transform hierarchy.
// Destroying the entity destroys the transform, which orphans its children.
type TransformComponent struct {
	*sapling.Transform
}

// NewTransformComponent returns a component holding a new root transform of
// h at position pos.
func NewTransformComponent(h *sapling.Hierarchy, pos sapling.Vec2) *TransformComponent {
	t := h.NewTransform()
	t.SetLocalPosition(pos)
	return &TransformComponent{Transform: t}
}

func (*TransformComponent) ComponentType() ComponentType { return TransformType }

// OnDestroy implements Destroyer.
func (c *TransformComponent) OnDestroy() {
	if c.Transform != nil {
		c.Transform.Destroy()
	}
}
