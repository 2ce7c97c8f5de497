package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton gives typed access to a value that exists once per Storage and
// belongs to no entity, such as the clock or the camera pose.
//
// Declare it as a field of a System; the Scheduler binds it on Register.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns an accessor for the T singleton, creating it from
// initializer (or the zero value) if it does not exist yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	t := reflect.TypeFor[T]()
	if storage.getSingletonEntry(t) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.refresh()
}

// Get returns the singleton, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	s.refresh()
	return (*T)(s.ptr)
}

// Exists reports whether the singleton has been added to storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.dataPtr
	} else {
		s.ptr = nil
	}
}
