package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View matches entities against a struct shape. Every pointer field of T
// names a component; a field of type EntityId receives the entity's ID.
// Named pointer fields tagged `ecs:"optional"` may be nil; embedded pointer
// fields are always required.
//
//	ecs.NewView[struct {
//		ecs.EntityId
//		*Orbit
//		Spin *Spin `ecs:"optional"`
//	}](storage)
type View[T any] struct {
	storage   *Storage
	fields    []viewField
	idOffsets []uintptr
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// NewView builds a View for T. It panics if T is not a struct of component
// pointers and EntityId fields.
func NewView[T any](storage *Storage) *View[T] {
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.Type == entityIdType {
			v.idOffsets = append(v.idOffsets, f.Offset)
			continue
		}
		if f.Type.Kind() != reflect.Pointer {
			panic("ecs: View field " + f.Name + " must be a component pointer or EntityId")
		}

		optional := false
		if tag := f.Tag.Get("ecs"); tag != "" && !f.Anonymous {
			if tag != "optional" {
				panic("ecs: invalid tag value \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}
		v.fields = append(v.fields, viewField{
			typ:      f.Type.Elem(),
			offset:   f.Offset,
			optional: optional,
		})
	}
	return v
}

// Get returns the view of a single entity, or nil if it lacks a required
// component.
func (v *View[T]) Get(id EntityId) *T {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !v.matches(archetype) {
		return nil
	}
	var result T
	if !v.fill(unsafe.Pointer(&result), archetype, v.columnsFor(archetype), int(id.Index())) {
		return nil
	}
	return &result
}

// GetRef is Get through an EntityRef.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

// Iter yields every matching entity. Archetype order is unspecified; within
// an archetype entities come in slot order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if !v.matches(archetype) {
				continue
			}
			for id, item := range v.iterArchetype(archetype) {
				if !yield(id, item) {
					return
				}
			}
		}
	}
}

// Values is Iter without the IDs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

func (v *View[T]) columnsFor(archetype *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = archetype.columnIndex(f.typ)
	}
	return cols
}

func (v *View[T]) iterArchetype(archetype *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(archetype.columns) == 0 {
			return
		}
		cols := v.columnsFor(archetype)

		var result T
		ptr := unsafe.Pointer(&result)
		for slot := range archetype.columns[0].Iter() {
			if !v.fill(ptr, archetype, cols, slot) {
				continue
			}
			if !yield(NewEntityId(archetype.id, uint32(slot)), result) {
				return
			}
		}
	}
}

// fill writes component pointers and IDs for slot into the struct at ptr.
func (v *View[T]) fill(ptr unsafe.Pointer, archetype *Archetype, cols []int, slot int) bool {
	for i, f := range v.fields {
		field := unsafe.Add(ptr, f.offset)

		var component any
		if cols[i] >= 0 {
			component = archetype.columns[cols[i]].Get(slot)
		}
		if component == nil {
			if !f.optional {
				return false
			}
			*(*unsafe.Pointer)(field) = nil
			continue
		}
		*(*unsafe.Pointer)(field) = (*iface)(unsafe.Pointer(&component)).data
	}

	id := NewEntityId(archetype.id, uint32(slot))
	for _, off := range v.idOffsets {
		*(*EntityId)(unsafe.Add(ptr, off)) = id
	}
	return true
}

// iface mirrors the runtime layout of a non-empty interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
