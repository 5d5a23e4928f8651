package ecs

import (
	"context"
	"encoding/binary"
	"runtime"
	"slices"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// maxMemoEntries bounds the number of distinct query signatures remembered.
const maxMemoEntries = 64

// queryMemo caches query results per type-list signature. An entry is valid
// only while the manager version it was computed at is current.
type queryMemo struct {
	mu      sync.Mutex
	entries map[uint64]memoEntry
}

type memoEntry struct {
	types   []ComponentType
	version uint64
	ids     []EntityID
}

func (q *queryMemo) get(sig uint64, types []ComponentType, version uint64) ([]EntityID, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[sig]
	if !ok || e.version != version || !slices.Equal(e.types, types) {
		return nil, false
	}
	return e.ids, true
}

func (q *queryMemo) put(sig uint64, types []ComponentType, version uint64, ids []EntityID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.entries == nil {
		q.entries = make(map[uint64]memoEntry)
	}
	if _, ok := q.entries[sig]; !ok && len(q.entries) >= maxMemoEntries {
		clear(q.entries)
	}
	q.entries[sig] = memoEntry{types: types, version: version, ids: ids}
}

// querySignature hashes a normalized type list.
func querySignature(types []ComponentType) uint64 {
	var buf [4]byte
	d := xxhash.New()
	for _, t := range types {
		binary.LittleEndian.PutUint32(buf[:], uint32(t))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// normalizeTypes returns a sorted, de-duplicated copy of types. Queries are
// set intersections, so order and repetition do not matter.
func normalizeTypes(types []ComponentType) []ComponentType {
	key := slices.Clone(types)
	slices.Sort(key)
	return slices.Compact(key)
}

// GetEntitiesWith returns the ids of entities carrying every listed type, in
// ascending order. An empty type list returns nil; a type no entity carries
// yields an empty result. The returned slice belongs to the caller.
func (m *EntityManager) GetEntitiesWith(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.queryLocked(types))
}

// queryLocked returns the memoized intersection for types. The result is
// shared and must not be modified. Caller holds at least the read lock.
func (m *EntityManager) queryLocked(types []ComponentType) []EntityID {
	key := normalizeTypes(types)
	sig := querySignature(key)
	if ids, ok := m.memo.get(sig, key, m.version); ok {
		return ids
	}
	ids := m.intersect(key)
	m.memo.put(sig, key, m.version, ids)
	return ids
}

// intersect ANDs the index sets of types, walking the smallest set and
// probing the others.
func (m *EntityManager) intersect(types []ComponentType) []EntityID {
	sets := make([]map[EntityID]struct{}, 0, len(types))
	for _, t := range types {
		set, ok := m.index[t]
		if !ok {
			return []EntityID{}
		}
		sets = append(sets, set)
	}
	slices.SortFunc(sets, func(a, b map[EntityID]struct{}) int {
		return len(a) - len(b)
	})

	out := make([]EntityID, 0, len(sets[0]))
outer:
	for id := range sets[0] {
		for _, s := range sets[1:] {
			if _, ok := s[id]; !ok {
				continue outer
			}
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Each calls fn for every entity carrying all of types, in id order. With no
// types it visits every entity. fn receives snapshots taken before the first
// call, so it may create, destroy or modify entities.
func (m *EntityManager) Each(types []ComponentType, fn func(*Entity)) {
	var snap []*Entity
	if len(types) == 0 {
		snap = m.GetAllEntities()
	} else {
		m.mu.RLock()
		ids := m.queryLocked(types)
		snap = make([]*Entity, len(ids))
		for i, id := range ids {
			snap[i] = m.entities[id].clone()
		}
		m.mu.RUnlock()
	}
	for _, e := range snap {
		fn(e)
	}
}

// View reads the manager without taking its lock. It is handed to
// ForEachParallel callbacks, which already run under the read lock, and is
// only valid until the callback returns.
type View struct {
	m *EntityManager
}

// Component returns id's component of type t.
func (v View) Component(id EntityID, t ComponentType) (Component, bool) {
	e, ok := v.m.entities[id]
	if !ok {
		return nil, false
	}
	return e.Component(t)
}

// HasComponent reports whether id carries a component of type t.
func (v View) HasComponent(id EntityID, t ComponentType) bool {
	_, ok := v.m.index[t][id]
	return ok
}

// Entity returns the entity with the given id. It is not a snapshot and must
// not be kept past the callback.
func (v View) Entity(id EntityID) (*Entity, bool) {
	e, ok := v.m.entities[id]
	return e, ok
}

// Len returns the number of live entities.
func (v View) Len() int {
	return len(v.m.entities)
}

// ForEachParallel runs fn over every entity carrying all of types, split
// across at most workers goroutines (GOMAXPROCS when workers <= 0). The read
// lock is held until every call returns, so no attach, detach or destroy can
// interleave. fn must not call any method on m, reads included: a pending
// writer blocks a nested read lock. Read other entities through the View.
// The first error cancels the remaining work and is returned.
func (m *EntityManager) ForEachParallel(ctx context.Context, types []ComponentType, workers int, fn func(context.Context, View, *Entity) error) error {
	if len(types) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.queryLocked(types)
	if len(ids) == 0 {
		return ctx.Err()
	}
	chunk := (len(ids) + workers - 1) / workers
	view := View{m: m}

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(ids); start += chunk {
		part := ids[start:min(start+chunk, len(ids))]
		g.Go(func() error {
			for _, id := range part {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(ctx, view, m.entities[id]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
