package ecs

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	typeA = RegisterComponentType("ecs_test.A")
	typeB = RegisterComponentType("ecs_test.B")
	typeC = RegisterComponentType("ecs_test.C")
)

type compA struct{ v int }

func (*compA) ComponentType() ComponentType { return typeA }

type compB struct{ v int }

func (*compB) ComponentType() ComponentType { return typeB }

type compC struct{ destroyed int }

func (*compC) ComponentType() ComponentType { return typeC }
func (c *compC) OnDestroy()                 { c.destroyed++ }

// recordingSink collects emitted events.
type recordingSink struct{ events []LifecycleEvent }

func (s *recordingSink) Emit(ev LifecycleEvent) { s.events = append(s.events, ev) }

func newTestManager(opts ...Option) *EntityManager {
	return NewEntityManager(append([]Option{WithDebug(true)}, opts...)...)
}

func TestRegisterComponentType(t *testing.T) {
	assert.NotZero(t, typeA)
	assert.NotEqual(t, typeA, typeB)
	assert.Equal(t, "ecs_test.A", typeA.String())

	got, ok := LookupComponentType("ecs_test.B")
	assert.True(t, ok)
	assert.Equal(t, typeB, got)

	assert.Panics(t, func() { RegisterComponentType("ecs_test.A") })
	assert.Panics(t, func() { RegisterComponentType("") })
	assert.Equal(t, "ComponentType(0)", ComponentType(0).String())
}

func TestCreateEntityMonotonic(t *testing.T) {
	m := newTestManager()
	e1 := m.CreateEntity()
	e2 := m.CreateEntity()
	assert.Equal(t, EntityID(1), e1)
	assert.Equal(t, EntityID(2), e2)

	require.True(t, m.DestroyEntity(e2))
	e3 := m.CreateEntity()
	assert.Equal(t, EntityID(3), e3, "ids are never reused")
	assert.Equal(t, 2, m.Len())

	e, ok := m.Entity(e1)
	require.True(t, ok)
	assert.Equal(t, 0, e.Len())
	assert.Empty(t, m.GetEntitiesWith(typeA))
}

func TestAddComponentUnknownEntity(t *testing.T) {
	m := newTestManager()
	err := m.AddComponent(42, &compA{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEntity))

	var ue *UnknownEntityError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, EntityID(42), ue.ID)

	id := m.CreateEntity()
	assert.ErrorIs(t, m.AddComponent(id, nil), ErrNilComponent)
}

func TestAddComponentTypedNil(t *testing.T) {
	m := newTestManager()
	id := m.CreateEntity()

	assert.ErrorIs(t, m.AddComponent(id, (*compA)(nil)), ErrNilComponent)
	assert.ErrorIs(t, m.AddComponent(id, (*TransformComponent)(nil)), ErrNilComponent)
	assert.False(t, m.HasComponent(id, typeA))
	assert.Empty(t, m.GetEntitiesWith(TransformType))
}

func TestAddComponentLastWriteWins(t *testing.T) {
	m := newTestManager()
	id := m.CreateEntity()
	require.NoError(t, m.AddComponent(id, &compA{v: 1}))
	require.NoError(t, m.AddComponent(id, &compA{v: 2}))

	c, ok := m.Component(id, typeA)
	require.True(t, ok)
	assert.Equal(t, 2, c.(*compA).v)
	assert.Equal(t, []EntityID{id}, m.GetEntitiesWith(typeA))

	e, ok := m.Entity(id)
	require.True(t, ok)
	assert.Equal(t, 1, e.Len())
}

func TestRemoveComponent(t *testing.T) {
	m := newTestManager()
	id := m.CreateEntity()
	require.NoError(t, m.AddComponent(id, &compA{}))

	assert.False(t, m.RemoveComponent(id, typeB))
	assert.False(t, m.RemoveComponent(99, typeA))
	assert.True(t, m.RemoveComponent(id, typeA))
	assert.False(t, m.HasComponent(id, typeA))
	assert.False(t, m.RemoveComponent(id, typeA))

	_, indexed := m.index[typeA]
	assert.False(t, indexed, "empty index sets are pruned")
}

func TestComponentQueries(t *testing.T) {
	m := newTestManager()
	e1 := m.CreateEntity()
	e2 := m.CreateEntity()
	e3 := m.CreateEntity()
	require.NoError(t, m.AddComponent(e1, &compA{}))
	require.NoError(t, m.AddComponent(e1, &compB{}))
	require.NoError(t, m.AddComponent(e2, &compA{}))
	require.NoError(t, m.AddComponent(e3, &compB{}))

	assert.Equal(t, []EntityID{e1}, m.GetEntitiesWith(typeA, typeB))
	assert.Equal(t, []EntityID{e1}, m.GetEntitiesWith(typeB, typeA))
	assert.Equal(t, []EntityID{e1, e2}, m.GetEntitiesWith(typeA))
	assert.Equal(t, []EntityID{e1, e3}, m.GetEntitiesWith(typeB))

	require.True(t, m.RemoveComponent(e1, typeB))
	assert.Empty(t, m.GetEntitiesWith(typeA, typeB))
	assert.Equal(t, []EntityID{e3}, m.GetEntitiesWith(typeB))
}

func TestDestroyEntityClearsIndex(t *testing.T) {
	m := newTestManager()
	e1 := m.CreateEntity()
	e2 := m.CreateEntity()
	require.NoError(t, m.AddComponent(e1, &compA{}))
	require.NoError(t, m.AddComponent(e2, &compA{}))
	require.Equal(t, []EntityID{e1, e2}, m.GetEntitiesWith(typeA))

	assert.True(t, m.DestroyEntity(e1))
	assert.Equal(t, []EntityID{e2}, m.GetEntitiesWith(typeA))
	assert.False(t, m.HasComponent(e1, typeA))

	_, ok := m.Entity(e1)
	assert.False(t, ok)
	assert.False(t, m.DestroyEntity(e1), "second destroy reports unknown")
	assert.ErrorIs(t, m.AddComponent(e1, &compA{}), ErrUnknownEntity)
}

func TestDestroyEntityCallsDestroyer(t *testing.T) {
	m := newTestManager()
	id := m.CreateEntity()
	c := &compC{}
	require.NoError(t, m.AddComponent(id, c))

	require.True(t, m.DestroyEntity(id))
	assert.Equal(t, 1, c.destroyed)

	// Detaching is not destruction.
	id2 := m.CreateEntity()
	c2 := &compC{}
	require.NoError(t, m.AddComponent(id2, c2))
	require.True(t, m.RemoveComponent(id2, typeC))
	assert.Equal(t, 0, c2.destroyed)
}

func TestEntitySnapshot(t *testing.T) {
	m := newTestManager()
	id := m.CreateEntity()
	require.NoError(t, m.AddComponent(id, &compB{}))
	require.NoError(t, m.AddComponent(id, &compA{v: 7}))

	e, ok := m.Entity(id)
	require.True(t, ok)
	assert.Equal(t, []ComponentType{typeA, typeB}, e.Types())

	a, ok := Get[*compA](e, typeA)
	require.True(t, ok)
	assert.Equal(t, 7, a.v)
	_, ok = Get[*compB](e, typeA)
	assert.False(t, ok, "wrong concrete type")
	_, ok = Get[*compA](nil, typeA)
	assert.False(t, ok)

	require.True(t, m.RemoveComponent(id, typeB))
	assert.True(t, e.Has(typeB), "snapshot is not a live view")
}

func TestGetAllEntitiesSnapshot(t *testing.T) {
	m := newTestManager()
	for i := 0; i < 5; i++ {
		m.CreateEntity()
	}
	all := m.GetAllEntities()
	require.Len(t, all, 5)
	for i, e := range all {
		assert.Equal(t, EntityID(i+1), e.ID())
	}

	// Mutating while iterating the snapshot is safe.
	for _, e := range all {
		m.DestroyEntity(e.ID())
		m.CreateEntity()
	}
	assert.Len(t, all, 5)
	assert.Equal(t, 5, m.Len())
	assert.Equal(t, EntityID(6), m.GetAllEntities()[0].ID())
}

func TestLifecycleEvents(t *testing.T) {
	sink := &recordingSink{}
	m := newTestManager(WithEventSink(sink))

	id := m.CreateEntity()
	require.NoError(t, m.AddComponent(id, &compA{}))
	m.RemoveComponent(id, typeA)
	m.RemoveComponent(id, typeA)
	m.DestroyEntity(id)
	m.DestroyEntity(id)

	assert.Equal(t, []LifecycleEvent{
		{Kind: EntityCreated, Entity: id},
		{Kind: ComponentAdded, Entity: id, Component: typeA},
		{Kind: ComponentRemoved, Entity: id, Component: typeA},
		{Kind: EntityDestroyed, Entity: id},
	}, sink.events)
	assert.Equal(t, "ComponentAdded", ComponentAdded.String())
}

func TestEventSinkMayQueryManager(t *testing.T) {
	var m *EntityManager
	var seen []int
	m = newTestManager(WithEventSink(EventSinkFunc(func(ev LifecycleEvent) {
		seen = append(seen, m.Len())
	})))
	id := m.CreateEntity()
	m.DestroyEntity(id)
	assert.Equal(t, []int{1, 0}, seen)
}

func TestCheckInvariantsPanicsOnCorruption(t *testing.T) {
	m := newTestManager()
	id := m.CreateEntity()
	require.NoError(t, m.AddComponent(id, &compA{}))

	delete(m.index[typeA], id)
	assert.Panics(t, func() { m.CreateEntity() })
}

func TestRandomOperationsKeepIndexConsistent(t *testing.T) {
	m := newTestManager()
	rng := rand.New(rand.NewPCG(7, 11))
	types := []ComponentType{typeA, typeB, typeC}
	newComp := func(ct ComponentType) Component {
		switch ct {
		case typeA:
			return &compA{}
		case typeB:
			return &compB{}
		}
		return &compC{}
	}

	// model holds, per live entity, the types added more recently than removed.
	model := make(map[EntityID]map[ComponentType]bool)
	var live []EntityID
	pick := func() EntityID {
		if len(live) == 0 || rng.IntN(10) == 0 {
			return EntityID(rng.IntN(1000) + 1000) // unknown id
		}
		return live[rng.IntN(len(live))]
	}

	for i := 0; i < 3000; i++ {
		switch op := rng.IntN(10); {
		case op < 2:
			id := m.CreateEntity()
			model[id] = make(map[ComponentType]bool)
			live = append(live, id)
		case op < 3:
			id := pick()
			_, known := model[id]
			require.Equal(t, known, m.DestroyEntity(id))
			delete(model, id)
			live = slices.DeleteFunc(live, func(x EntityID) bool { return x == id })
		case op < 7:
			id := pick()
			ct := types[rng.IntN(len(types))]
			err := m.AddComponent(id, newComp(ct))
			if _, known := model[id]; known {
				require.NoError(t, err)
				model[id][ct] = true
			} else {
				require.ErrorIs(t, err, ErrUnknownEntity)
			}
		default:
			id := pick()
			ct := types[rng.IntN(len(types))]
			want := model[id][ct]
			require.Equal(t, want, m.RemoveComponent(id, ct))
			if want {
				delete(model[id], ct)
			}
		}

		for _, ct := range types {
			var want []EntityID
			for id, set := range model {
				if set[ct] {
					want = append(want, id)
				}
			}
			slices.Sort(want)
			got := m.GetEntitiesWith(ct)
			if len(want) == 0 {
				require.Empty(t, got, "step %d type %s", i, ct)
			} else {
				require.Equal(t, want, got, "step %d type %s", i, ct)
			}
		}
	}

	var wantAB []EntityID
	for id, set := range model {
		if set[typeA] && set[typeB] {
			wantAB = append(wantAB, id)
		}
	}
	slices.Sort(wantAB)
	assert.ElementsMatch(t, wantAB, m.GetEntitiesWith(typeA, typeB))
	assert.Equal(t, len(model), m.Len())
}
