// Package ecs is sapling's entity-component store.
//
// An [EntityManager] owns every entity and keeps an inverted index from
// component type to the set of entity ids carrying that type. Attaching,
// detaching and destroying keep the index exact, so multi-component queries
// with [EntityManager.GetEntitiesWith] cost as much as the smallest
// candidate set rather than the total entity count.
//
// Component types are registered once per process:
//
//	var VelocityType = ecs.RegisterComponentType("game.Velocity")
//
//	type Velocity struct{ sapling.Vec2 }
//
//	func (*Velocity) ComponentType() ecs.ComponentType { return VelocityType }
//
// [TransformComponent] and [SpriteComponent] bridge entities to the sapling
// transform hierarchy and renderers, and [NewDonburiSink] forwards lifecycle
// events into a [Donburi] world.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
