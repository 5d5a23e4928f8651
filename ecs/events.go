package ecs

// EventKind classifies a LifecycleEvent.
type EventKind uint8

const (
	EntityCreated EventKind = iota + 1
	EntityDestroyed
	ComponentAdded
	ComponentRemoved
)

func (k EventKind) String() string {
	switch k {
	case EntityCreated:
		return "EntityCreated"
	case EntityDestroyed:
		return "EntityDestroyed"
	case ComponentAdded:
		return "ComponentAdded"
	case ComponentRemoved:
		return "ComponentRemoved"
	}
	return "EventKind(?)"
}

// LifecycleEvent describes one change to an EntityManager. Component is zero
// for entity events.
type LifecycleEvent struct {
	Kind      EventKind
	Entity    EntityID
	Component ComponentType
}

// EventSink receives lifecycle events. Emit is called after the manager has
// released its lock, so a sink may query the manager.
type EventSink interface {
	Emit(LifecycleEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(LifecycleEvent)

// Emit calls f(ev).
func (f EventSinkFunc) Emit(ev LifecycleEvent) { f(ev) }
