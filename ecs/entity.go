package ecs

import (
	"reflect"
	"strconv"
)

// EntityId identifies an entity for the lifetime of its World.
// Ids are allocated from 1 in increasing order and are never reused; 0 is never a valid id.
type EntityId uint64

// Valid reports whether the id could refer to an entity
func (e EntityId) Valid() bool {
	return e != 0
}

func (e EntityId) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// Entity is a handle pairing an EntityId with the World that owns it.
// Handles are cheap values; copying one does not copy the entity.
type Entity struct {
	id    EntityId
	world *World
}

// Id returns the entity's identifier
func (e Entity) Id() EntityId {
	return e.id
}

// World returns the owning world, or nil for the zero Entity
func (e Entity) World() *World {
	return e.world
}

// Valid reports whether the handle refers to a world at all.
// A valid handle may still point at a destroyed entity; use Alive for that.
func (e Entity) Valid() bool {
	return e.world != nil && e.id.Valid()
}

// Alive reports whether the entity exists and has not been destroyed
func (e Entity) Alive() bool {
	if !e.Valid() {
		return false
	}
	return e.world.IsAlive(e.id)
}

// Destroy marks the entity dead. Its components stay readable until the next World.Update.
func (e Entity) Destroy() {
	if !e.Valid() {
		return
	}
	e.world.DestroyEntity(e.id)
}

// AddComponent stores initial as the entity's component of kind T, replacing any
// previous T, and returns a pointer for further mutation.
// Returns nil if the entity has already been swept.
// T must be a value type; a pointer T panics.
func AddComponent[T any](e Entity, initial T) *T {
	if t := reflect.TypeFor[T](); t.Kind() == reflect.Pointer {
		panic("ecs: AddComponent called with pointer type " + t.String() + "; pass the value")
	}
	if !e.Valid() {
		return nil
	}
	ptr := e.world.storage.AddComponent(e.id, initial)
	if ptr == nil {
		return nil
	}
	return ptr.(*T)
}

// GetComponent returns the entity's component of kind T.
// The boolean is false when the entity has no T; that is never an error.
func GetComponent[T any](e Entity) (*T, bool) {
	if !e.Valid() {
		return nil, false
	}
	return LookupComponent[T](e.world.storage, e.id)
}

// HasComponent reports whether the entity currently holds a T
func HasComponent[T any](e Entity) bool {
	_, ok := GetComponent[T](e)
	return ok
}

// RemoveComponent drops the entity's T, reporting whether one was present
func RemoveComponent[T any](e Entity) bool {
	if !e.Valid() {
		return false
	}
	return e.world.storage.RemoveComponent(e.id, reflect.TypeFor[T]())
}
