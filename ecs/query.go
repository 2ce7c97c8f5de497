package ecs

import "iter"

// Query is a View whose results are materialised once per frame. Declare it
// as a System field; the Scheduler binds it on Register and executes it right
// before the owning system runs, so entities spawned directly on Storage by an
// earlier system in the same frame are visible.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	archetypes     []*Archetype
	archetypeCount int

	ids   []EntityId
	items []T
	ready bool
}

// NewQuery creates a Query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage and drops every cache.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.archetypeCount = -1
	q.ready = false
}

// Execute rebuilds the per-frame result set.
func (q *Query[T]) Execute() {
	if n := len(q.storage.archetypes); n != q.archetypeCount {
		q.archetypes = q.archetypes[:0]
		for _, a := range q.storage.archetypes {
			if q.view.matches(a) {
				q.archetypes = append(q.archetypes, a)
			}
		}
		q.archetypeCount = n
	}

	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for _, a := range q.archetypes {
		for id, item := range q.view.iterArchetype(a) {
			q.ids = append(q.ids, id)
			q.items = append(q.items, item)
		}
	}
	q.ready = true
}

// Len returns the number of results from the last Execute.
func (q *Query[T]) Len() int {
	return len(q.ids)
}

// Iter yields the results of the last Execute. It panics if Execute has never
// run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.ready {
		panic("ecs: Query.Iter called before Query.Execute")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.ids {
			if !yield(q.ids[i], q.items[i]) {
				return
			}
		}
	}
}

// Values yields only the items of the last Execute.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.ready {
		panic("ecs: Query.Values called before Query.Execute")
	}
	return func(yield func(T) bool) {
		for _, item := range q.items {
			if !yield(item) {
				return
			}
		}
	}
}
