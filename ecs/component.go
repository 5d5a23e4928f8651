package ecs

import (
	"fmt"
	"sync"
)

// ComponentType identifies a kind of component. Values come from
// RegisterComponentType; the zero value is never a registered type.
type ComponentType uint32

// Component is data attached to an entity. At most one component of a given
// type is attached to an entity at a time.
type Component interface {
	ComponentType() ComponentType
}

// Destroyer is implemented by components that release resources when their
// entity is destroyed. OnDestroy runs after the entity has left the manager.
type Destroyer interface {
	OnDestroy()
}

var registry struct {
	mu     sync.Mutex
	names  []string // index i holds the name of ComponentType(i+1)
	byName map[string]ComponentType
}

// RegisterComponentType allocates a new component type. Names must be unique
// across the process; registering a name twice panics. Call it from a
// package-level var declaration.
func RegisterComponentType(name string) ComponentType {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if name == "" {
		panic("ecs: empty component type name")
	}
	if registry.byName == nil {
		registry.byName = make(map[string]ComponentType)
	}
	if _, ok := registry.byName[name]; ok {
		panic(fmt.Sprintf("ecs: component type %q registered twice", name))
	}
	registry.names = append(registry.names, name)
	t := ComponentType(len(registry.names))
	registry.byName[name] = t
	return t
}

// LookupComponentType returns the type registered under name.
func LookupComponentType(name string) (ComponentType, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	t, ok := registry.byName[name]
	return t, ok
}

// String returns the registered name.
func (t ComponentType) String() string {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if t == 0 || int(t) > len(registry.names) {
		return fmt.Sprintf("ComponentType(%d)", uint32(t))
	}
	return registry.names[t-1]
}
