package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"go.uber.org/zap"
)

// EntityManager owns all entities of a session and the component index.
//
// Invariant: for every entity e and component type T, T is attached to e if
// and only if e's id is in index[T]. Mutations take the write lock; queries
// take the read lock and may run concurrently.
type EntityManager struct {
	mu       sync.RWMutex
	entities map[EntityID]*Entity
	index    map[ComponentType]map[EntityID]struct{}
	nextID   EntityID
	version  uint64

	memo queryMemo

	log   *zap.Logger
	sink  EventSink
	debug bool
}

// Option configures an EntityManager.
type Option func(*EntityManager)

// WithLogger sets the manager's logger.
func WithLogger(log *zap.Logger) Option {
	return func(m *EntityManager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithEventSink forwards lifecycle events to sink.
func WithEventSink(sink EventSink) Option {
	return func(m *EntityManager) { m.sink = sink }
}

// WithDebug enables invariant checking after every mutation. A violation
// panics.
func WithDebug(enabled bool) Option {
	return func(m *EntityManager) { m.debug = enabled }
}

// NewEntityManager returns an empty manager.
func NewEntityManager(opts ...Option) *EntityManager {
	m := &EntityManager{
		entities: make(map[EntityID]*Entity),
		index:    make(map[ComponentType]map[EntityID]struct{}),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateEntity allocates the next id and inserts an entity with no
// components.
func (m *EntityManager) CreateEntity() EntityID {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.entities[id] = newEntity(id)
	m.version++
	m.checkInvariants()
	m.mu.Unlock()

	m.emit(LifecycleEvent{Kind: EntityCreated, Entity: id})
	return id
}

// DestroyEntity removes id from every index set, then drops the entity
// record, then calls OnDestroy on components implementing Destroyer. It
// returns false when id is unknown.
func (m *EntityManager) DestroyEntity(id EntityID) bool {
	m.mu.Lock()
	e, ok := m.entities[id]
	if !ok {
		m.mu.Unlock()
		m.log.Debug("destroy unknown entity", zap.Uint64("entity", uint64(id)))
		return false
	}
	types := e.Types()
	for _, t := range types {
		m.unindex(t, id)
	}
	delete(m.entities, id)
	m.version++
	m.checkInvariants()
	m.mu.Unlock()

	for _, t := range types {
		if d, ok := e.components[t].(Destroyer); ok {
			d.OnDestroy()
		}
	}
	m.log.Debug("entity destroyed",
		zap.Uint64("entity", uint64(id)),
		zap.Int("components", len(types)))
	m.emit(LifecycleEvent{Kind: EntityDestroyed, Entity: id})
	return true
}

// AddComponent attaches c to id, replacing any component of the same type.
// It returns ErrNilComponent for a nil component, including a typed nil
// pointer, and an *UnknownEntityError when id is not held by the manager.
func (m *EntityManager) AddComponent(id EntityID, c Component) error {
	if isNil(c) {
		return ErrNilComponent
	}
	t := c.ComponentType()

	m.mu.Lock()
	e, ok := m.entities[id]
	if !ok {
		m.mu.Unlock()
		return &UnknownEntityError{ID: id, Op: "add component"}
	}
	e.components[t] = c
	set := m.index[t]
	if set == nil {
		set = make(map[EntityID]struct{})
		m.index[t] = set
	}
	set[id] = struct{}{}
	m.version++
	m.checkInvariants()
	m.mu.Unlock()

	m.emit(LifecycleEvent{Kind: ComponentAdded, Entity: id, Component: t})
	return nil
}

// RemoveComponent detaches the component of type t. It returns false when
// the entity or the component is absent.
func (m *EntityManager) RemoveComponent(id EntityID, t ComponentType) bool {
	m.mu.Lock()
	e, ok := m.entities[id]
	if !ok || !e.Has(t) {
		m.mu.Unlock()
		return false
	}
	delete(e.components, t)
	m.unindex(t, id)
	m.version++
	m.checkInvariants()
	m.mu.Unlock()

	m.emit(LifecycleEvent{Kind: ComponentRemoved, Entity: id, Component: t})
	return true
}

// Component returns id's component of type t.
func (m *EntityManager) Component(id EntityID, t ComponentType) (Component, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entities[id]
	if !ok {
		return nil, false
	}
	return e.Component(t)
}

// HasComponent reports whether id carries a component of type t.
func (m *EntityManager) HasComponent(id EntityID, t ComponentType) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.index[t][id]
	return ok
}

// Entity returns a snapshot of the entity with the given id.
func (m *EntityManager) Entity(id EntityID) (*Entity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entities[id]
	if !ok {
		return nil, false
	}
	return e.clone(), true
}

// Len returns the number of live entities.
func (m *EntityManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}

// GetAllEntities returns a snapshot of every entity ordered by id. The
// manager may be mutated while the result is iterated.
func (m *EntityManager) GetAllEntities() []*Entity {
	m.mu.RLock()
	out := make([]*Entity, 0, len(m.entities))
	for _, e := range m.entities {
		out = append(out, e.clone())
	}
	m.mu.RUnlock()
	slices.SortFunc(out, func(a, b *Entity) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return out
}

// unindex removes id from index[t], pruning the set when it empties.
// Caller holds the write lock.
func (m *EntityManager) unindex(t ComponentType, id EntityID) {
	set, ok := m.index[t]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(m.index, t)
	}
}

// isNil reports whether c is nil or wraps a nil pointer, map, slice or func.
func isNil(c Component) bool {
	if c == nil {
		return true
	}
	switch v := reflect.ValueOf(c); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func (m *EntityManager) emit(ev LifecycleEvent) {
	if m.sink != nil {
		m.sink.Emit(ev)
	}
}

// checkInvariants panics if the component index disagrees with the entity
// records. It only runs in debug mode. Caller holds the lock.
func (m *EntityManager) checkInvariants() {
	if !m.debug {
		return
	}
	for id, e := range m.entities {
		for t := range e.components {
			if _, ok := m.index[t][id]; !ok {
				panic(fmt.Sprintf("ecs: %s has %s but is missing from its index", id, t))
			}
		}
	}
	for t, set := range m.index {
		if len(set) == 0 {
			panic(fmt.Sprintf("ecs: empty index set for %s", t))
		}
		for id := range set {
			e, ok := m.entities[id]
			if !ok {
				panic(fmt.Sprintf("ecs: index for %s holds dead %s", t, id))
			}
			if !e.Has(t) {
				panic(fmt.Sprintf("ecs: index for %s holds %s without the component", t, id))
			}
		}
	}
}
