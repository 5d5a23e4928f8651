package ecs

import (
	"slices"

	"github.com/phanxgames/sapling"
)

// SpriteType is the component type of SpriteComponent.
var SpriteType = RegisterComponentType("sapling.Sprite")

// SpriteComponent draws a sprite at the entity's transform. Lower ZOrder
// draws first.
type SpriteComponent struct {
	sapling.Sprite
	ZOrder int
}

func (*SpriteComponent) ComponentType() ComponentType { return SpriteType }

type drawItem struct {
	id     EntityID
	z      int
	pose   sapling.Pose
	sprite sapling.Sprite
}

// RenderSystem draws every entity with both a TransformComponent and a
// SpriteComponent, ordered by ZOrder and then by id. Entities whose
// transform was destroyed are skipped. It returns the number of sprites
// drawn.
func RenderSystem(m *EntityManager, r sapling.Renderer) int {
	m.mu.RLock()
	ids := m.queryLocked([]ComponentType{TransformType, SpriteType})
	items := make([]drawItem, 0, len(ids))
	for _, id := range ids {
		e := m.entities[id]
		tc, ok := Get[*TransformComponent](e, TransformType)
		if !ok || tc == nil || tc.Transform == nil || tc.IsDestroyed() {
			continue
		}
		sc, ok := Get[*SpriteComponent](e, SpriteType)
		if !ok || sc == nil {
			continue
		}
		items = append(items, drawItem{id: id, z: sc.ZOrder, pose: tc.WorldPose(), sprite: sc.Sprite})
	}
	m.mu.RUnlock()

	// ids are ascending, so a stable sort on z leaves equal z in id order.
	slices.SortStableFunc(items, func(a, b drawItem) int {
		return a.z - b.z
	})
	for i := range items {
		items[i].sprite.Draw(r, items[i].pose)
	}
	return len(items)
}
