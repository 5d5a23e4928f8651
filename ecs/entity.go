package ecs

import (
	"slices"
	"strconv"
)

// EntityID is an opaque entity handle. IDs start at 1 and are never reused
// within a manager; 0 is never a valid id.
type EntityID uint64

func (id EntityID) String() string {
	return "entity#" + strconv.FormatUint(uint64(id), 10)
}

// Entity is an id plus its components. Values handed out by an
// EntityManager are snapshots: later attach or detach calls do not change
// them, but the components themselves are shared.
type Entity struct {
	id         EntityID
	components map[ComponentType]Component
}

func newEntity(id EntityID) *Entity {
	return &Entity{id: id, components: make(map[ComponentType]Component)}
}

// ID returns the entity id.
func (e *Entity) ID() EntityID { return e.id }

// Component returns the component of type t.
func (e *Entity) Component(t ComponentType) (Component, bool) {
	c, ok := e.components[t]
	return c, ok
}

// Has reports whether a component of type t is attached.
func (e *Entity) Has(t ComponentType) bool {
	_, ok := e.components[t]
	return ok
}

// Types returns the attached component types in ascending order.
func (e *Entity) Types() []ComponentType {
	types := make([]ComponentType, 0, len(e.components))
	for t := range e.components {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// Len returns the number of attached components.
func (e *Entity) Len() int { return len(e.components) }

func (e *Entity) clone() *Entity {
	c := &Entity{id: e.id, components: make(map[ComponentType]Component, len(e.components))}
	for t, comp := range e.components {
		c.components[t] = comp
	}
	return c
}

// Get returns e's component of type t as a T. It reports false when the
// component is missing or has a different concrete type.
func Get[T Component](e *Entity, t ComponentType) (T, bool) {
	var zero T
	if e == nil {
		return zero, false
	}
	c, ok := e.components[t]
	if !ok {
		return zero, false
	}
	v, ok := c.(T)
	return v, ok
}
