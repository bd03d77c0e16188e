package debugui

import (
	"reflect"
	"sync"
	"time"
)

var durationType = reflect.TypeFor[time.Duration]()

// FieldInfo describes one exported field of a component type as the
// inspector presents it.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool
	Embedded  bool
	// ReadOnly fields are shown as text; the inspector has no editor for them.
	ReadOnly bool
}

// ReflectionCache memoizes the exported fields of component types. Component
// types never change at runtime, so entries are computed once per type.
type ReflectionCache struct {
	fields sync.Map // reflect.Type -> []FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{}
}

// GetFields returns the exported fields of t, or nil when t is not a struct.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.fields.Load(t); ok {
		return cached.([]FieldInfo)
	}
	actual, _ := rc.fields.LoadOrStore(t, inspectFields(t))
	return actual.([]FieldInfo)
}

func inspectFields(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		info := FieldInfo{
			Name:     field.Name,
			Type:     field.Type,
			Index:    i,
			Embedded: field.Anonymous,
		}
		if info.Type.Kind() == reflect.Pointer {
			info.IsPointer = true
			info.Type = info.Type.Elem()
		}
		info.IsStruct = info.Type.Kind() == reflect.Struct
		info.ReadOnly = !editable(info.Type)
		fields = append(fields, info)
	}
	return fields
}

// editable reports whether the inspector has an input widget for t.
func editable(t reflect.Type) bool {
	if t == durationType {
		return false
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String, reflect.Struct,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

var globalReflectionCache = NewReflectionCache()
