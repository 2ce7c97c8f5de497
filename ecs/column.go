package ecs

import (
	"iter"
	"reflect"
)

// column is type-erased storage for one component type inside an archetype.
type column interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry knows how to build a column for every registered
// component type. Each Storage owns exactly one registry.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent makes T usable as a component. It must be called before
// any entity carrying a T is spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() column {
		return &blockColumn[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory := r.factories[t]
	if factory == nil {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return factory()
}

const blockSize = 64

// blockColumn stores components of type T in fixed-size blocks so pointers
// handed out by Get stay valid while the column grows. Deleted slots are
// zeroed and recycled LIFO.
type blockColumn[T any] struct {
	blocks []*[blockSize]T
	live   []*[blockSize]bool
	free   []int
	next   int
	count  int
}

func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if index/blockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([blockSize]T))
			c.live = append(c.live, new([blockSize]bool))
		}
	}

	block, slot := index/blockSize, index%blockSize
	c.blocks[block][slot] = value
	c.live[block][slot] = true
	c.count++
	return index
}

func (c *blockColumn[T]) Get(index int) any {
	if !c.Has(index) {
		return nil
	}
	return &c.blocks[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) Has(index int) bool {
	if index < 0 || index >= c.next {
		return false
	}
	return c.live[index/blockSize][index%blockSize]
}

func (c *blockColumn[T]) Delete(index int) {
	if !c.Has(index) {
		return
	}
	block, slot := index/blockSize, index%blockSize
	var zero T
	c.blocks[block][slot] = zero
	c.live[block][slot] = false
	c.free = append(c.free, index)
	c.count--
}

func (c *blockColumn[T]) Len() int {
	return c.count
}

func (c *blockColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < c.next; i++ {
			if c.live[i/blockSize][i%blockSize] && !yield(i) {
				return
			}
		}
	}
}
