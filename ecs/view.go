package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iface represents the internal memory layout of an interface{}.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

var entityIdType = reflect.TypeFor[EntityId]()

// View joins several component kinds for lookups by entity.
// The type T must be a struct whose fields are pointers to component types.
// Embedded fields are always required; named fields can be marked optional
// with the `ecs:"optional"` struct tag and are left nil when absent.
// A field of type EntityId receives the id of the entity being visited.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	columns     []iComponentStorage

	hasIdField bool
	idOffset   uintptr
}

// NewView creates a new view for the given struct type
func NewView[T any](world *World) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		storage:     world.storage,
		types:       make([]reflect.Type, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			if v.hasIdField {
				panic("View struct may contain only one EntityId field")
			}
			v.hasIdField = true
			v.idOffset = field.Offset
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}

		v.types = append(v.types, fieldType.Elem())
		v.fieldOffset = append(v.fieldOffset, field.Offset)
		v.optional = append(v.optional, isOptional)
	}

	v.columns = make([]iComponentStorage, len(v.types))
	return v
}

// resolveColumns looks up columns that did not exist when the view was built.
// Columns are never removed once created, so found columns are cached.
func (v *View[T]) resolveColumns() {
	for i, column := range v.columns {
		if column == nil {
			v.columns[i] = v.storage.column(v.types[i])
		}
	}
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is unknown or is missing any required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.storage.Exists(id) {
		return false
	}
	v.resolveColumns()
	return v.populate(unsafe.Pointer(ptr), id)
}

func (v *View[T]) populate(structPtr unsafe.Pointer, id EntityId) bool {
	for i, column := range v.columns {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])

		var component any
		if column != nil {
			component = column.Get(id)
		}

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		// Extract the pointer stored in the interface without reflection
		componentPtr := (*iface)(unsafe.Pointer(&component)).data
		*(*unsafe.Pointer)(fieldPtr) = componentPtr
	}

	if v.hasIdField {
		*(*EntityId)(unsafe.Pointer(uintptr(structPtr) + v.idOffset)) = id
	}
	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Iter yields every entity holding the required components, in creation order.
// Entities destroyed this frame are still visited until the next sweep.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		v.resolveColumns()
		for i, column := range v.columns {
			if column == nil && !v.optional[i] {
				return
			}
		}

		var result T
		resultPtr := unsafe.Pointer(&result)

		for _, id := range v.storage.entities {
			if !v.populate(resultPtr, id) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity with the non-nil components held by data
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, componentType := range v.types {
		fieldPtr := unsafe.Pointer(uintptr(structPtr) + v.fieldOffset[i])
		componentPtr := *(*unsafe.Pointer)(fieldPtr)

		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}

		components = append(components, reflect.NewAt(componentType, componentPtr).Elem().Interface())
	}

	return v.storage.Spawn(components...)
}
