package ecs

import (
	"hash/fnv"
	"reflect"
	"slices"
	"strings"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype holds every entity that carries exactly the same set of
// component types, one column per type. Slot indices are stable for the
// lifetime of an entity.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

// ID returns the archetype's identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types, sorted by name.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// HasComponent reports whether the archetype carries t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return slices.Contains(a.types, t)
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// spawn appends components (already matched to a.types) and returns the slot.
func (a *Archetype) spawn(components []any) uint32 {
	slot := -1
	for _, comp := range components {
		idx := a.columnIndex(componentType(comp))
		if idx < 0 {
			continue
		}
		slot = a.columns[idx].Append(comp)
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the component of type t stored at slot,
// or nil.
func (a *Archetype) GetComponent(slot uint32, t reflect.Type) any {
	idx := a.columnIndex(t)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].Get(int(slot))
}

// delete frees the slot in every column and clears any outstanding ref.
func (a *Archetype) delete(slot uint32) {
	id := NewEntityId(a.id, slot)
	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}
	for _, c := range a.columns {
		c.Delete(int(slot))
	}
}

// Iter yields the IDs of all live entities.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for slot := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}

// archetypeKey returns the hash used as archetype ID for a sorted type set.
func archetypeKey(types []reflect.Type) uint32 {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.PkgPath() + "." + t.String()
	}
	h := fnv.New32a()
	h.Write([]byte(strings.Join(names, "|")))
	return h.Sum32()
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// sortedTypes extracts component types and sorts them by name. Pointers are
// unwrapped; maps, channels and funcs are rejected.
func sortedTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("ecs: components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}
