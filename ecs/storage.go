package ecs

import (
	"iter"
	"reflect"
	"unsafe"
	"weak"
)

// Storage owns all entities and singletons of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
	// insertion order of singletons, for stable stats output
	singletonOrder []reflect.Type
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage backed by registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates an entity carrying the given components. Components may be
// passed by value or by pointer; the value is copied either way.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	types := sortedTypes(components)
	id := archetypeKey(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
	}
	return NewEntityId(id, archetype.spawn(components))
}

// Delete removes the entity. Deleting an unknown entity is a no-op.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes[id.ArchetypeId()]; ok {
		archetype.delete(id.Index())
	}
}

// Alive reports whether id refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || len(archetype.columns) == 0 {
		return false
	}
	return archetype.columns[0].Has(int(id.Index()))
}

// GetComponent returns a pointer to the entity's component of type t, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), t)
}

// HasComponent reports whether the entity's archetype carries t.
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.HasComponent(t)
}

// Archetypes iterates over all archetypes in unspecified order.
func (s *Storage) Archetypes() iter.Seq[*Archetype] {
	return func(yield func(*Archetype) bool) {
		for _, a := range s.archetypes {
			if !yield(a) {
				return
			}
		}
	}
}

// CreateEntityRef returns the ref for id, reusing a live one if it exists.
// It returns nil for an unknown archetype.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil {
		return nil
	}

	if wp, ok := archetype.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current ID behind ref.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting it.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Valid() {
		return false
	}
	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}
	ref.Id = 0
	ref.Archetype = nil
	return true
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous one. Existing Singleton accessors are re-pointed lazily.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	v := reflect.New(t)
	v.Elem().Set(reflect.ValueOf(value))

	if _, exists := s.singletons[t]; !exists {
		s.singletonOrder = append(s.singletonOrder, t)
	}
	s.singletons[t] = &singletonEntry{
		value:   v,
		dataPtr: v.UnsafePointer(),
	}
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ReadSingleton fills *target (a **T) with a pointer to the T singleton and
// reports whether it exists.
func (s *Storage) ReadSingleton(target any) bool {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton expects a pointer to a pointer")
	}
	t := rv.Elem().Type().Elem()
	entry := s.singletons[t]
	if entry == nil {
		return false
	}
	rv.Elem().Set(entry.value)
	return true
}

// ComponentReader is anything that can look up a component by entity.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T component, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	c, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}
