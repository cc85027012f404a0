package ecs

import "reflect"

// iComponentStorage is a type-erased column holding every component of one kind,
// keyed by the owning entity.
type iComponentStorage interface {
	Type() reflect.Type
	Set(id EntityId, item any) any
	Get(id EntityId) any
	Has(id EntityId) bool
	Delete(id EntityId) bool
	Len() int
	Compact()
	Clear()
}
