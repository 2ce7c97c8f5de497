package debugui

import (
	"fmt"
	"reflect"
	"sync"
)

type FieldInfo struct {
	Name  string
	Index int
}

// ReflectionCache remembers the exported fields of struct types.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				fields = append(fields, FieldInfo{Name: f.Name, Index: i})
			}
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

// FieldLine is one formatted field of an inspected value.
type FieldLine struct {
	Name  string
	Value string
}

// Describe formats the exported fields of v, following pointers. Nested
// structs are printed inline; non-struct values yield a single unnamed line.
func (rc *ReflectionCache) Describe(v any) []FieldLine {
	val := reflect.ValueOf(v)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return []FieldLine{{Value: "nil"}}
		}
		val = val.Elem()
	}
	if !val.IsValid() {
		return []FieldLine{{Value: "<invalid>"}}
	}
	if val.Kind() != reflect.Struct {
		return []FieldLine{{Value: formatValue(val)}}
	}

	fields := rc.GetFields(val.Type())
	lines := make([]FieldLine, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, FieldLine{Name: f.Name, Value: formatValue(val.Field(f.Index))})
	}
	return lines
}

func formatValue(val reflect.Value) string {
	switch val.Kind() {
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.4f", val.Float())
	case reflect.Pointer:
		if val.IsNil() {
			return "nil"
		}
		return formatValue(val.Elem())
	case reflect.Slice:
		return fmt.Sprintf("[%d items]", val.Len())
	}
	if val.CanInterface() {
		if s, ok := val.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%+v", val.Interface())
	}
	return val.String()
}

var globalReflectionCache = NewReflectionCache()
