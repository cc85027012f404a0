package ecs

import (
	"reflect"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry manages component kind registration for a World.
// Each World has its own registry, allowing multiple independent simulations
// to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
	order     []reflect.Type
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers T as a component kind.
// This must be called for each kind before it can be added to an entity.
// Registering the same kind twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.factories[t]; ok {
		return
	}
	r.factories[t] = func() iComponentStorage {
		return newGenericComponentStorage[T]()
	}
	r.order = append(r.order, t)
}

// Registered reports whether the kind has been registered
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// Types returns the registered kinds in registration order
func (r *ComponentRegistry) Types() []reflect.Type {
	out := make([]reflect.Type, len(r.order))
	copy(out, r.order)
	return out
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores the components of kind T in fixed-size blocks.
// Blocks are heap allocated individually so growing the column never moves a
// stored component; pointers handed out stay valid until the slot is deleted or
// the column is compacted.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	owners    []*[genericBlockSize]EntityId
	slots     *intmap.Map[EntityId, int]
	freeSlots []int
	nextIndex int
	count     int
}

func newGenericComponentStorage[T any]() *genericComponentStorage[T] {
	return &genericComponentStorage[T]{
		slots: intmap.New[EntityId, int](256),
	}
}

func (cs *genericComponentStorage[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

// Set stores item as the entity's component, overwriting an existing one in place.
// item may be a T or a *T. Returns a *T, or nil if item has the wrong type.
func (cs *genericComponentStorage[T]) Set(id EntityId, item any) any {
	var concreteItem T
	if ptr, ok := item.(*T); ok {
		if ptr != nil {
			concreteItem = *ptr
		}
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return nil
	}

	if index, ok := cs.slots.Get(id); ok {
		slot := &cs.blocks[index/genericBlockSize][index%genericBlockSize]
		*slot = concreteItem
		return slot
	}

	var index int
	if len(cs.freeSlots) > 0 {
		index = cs.freeSlots[len(cs.freeSlots)-1]
		cs.freeSlots = cs.freeSlots[:len(cs.freeSlots)-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, new([genericBlockSize]T))
			cs.owners = append(cs.owners, new([genericBlockSize]EntityId))
		}
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	cs.blocks[blockIdx][slotIdx] = concreteItem
	cs.owners[blockIdx][slotIdx] = id
	cs.slots.Put(id, index)
	cs.count++
	return &cs.blocks[blockIdx][slotIdx]
}

// Get returns a *T for the entity, or nil.
func (cs *genericComponentStorage[T]) Get(id EntityId) any {
	index, ok := cs.slots.Get(id)
	if !ok {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Has checks if the entity holds a component in this column.
func (cs *genericComponentStorage[T]) Has(id EntityId) bool {
	_, ok := cs.slots.Get(id)
	return ok
}

// Delete zeroes the entity's slot and queues it for reuse.
func (cs *genericComponentStorage[T]) Delete(id EntityId) bool {
	index, ok := cs.slots.Get(id)
	if !ok {
		return false
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	var zero T
	cs.blocks[blockIdx][slotIdx] = zero
	cs.owners[blockIdx][slotIdx] = 0
	cs.slots.Del(id)
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
	return true
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Compact packs live components into the lowest slots, preserving their order.
// Every pointer previously returned by Get or Set is invalidated.
func (cs *genericComponentStorage[T]) Compact() {
	if cs.count == 0 {
		cs.Clear()
		return
	}

	numNewBlocks := (cs.count + genericBlockSize - 1) / genericBlockSize
	newBlocks := make([]*[genericBlockSize]T, numNewBlocks)
	newOwners := make([]*[genericBlockSize]EntityId, numNewBlocks)
	for i := range newBlocks {
		newBlocks[i] = new([genericBlockSize]T)
		newOwners[i] = new([genericBlockSize]EntityId)
	}

	writePos := 0
	for readIdx := 0; readIdx < cs.nextIndex; readIdx++ {
		readBlockIdx := readIdx / genericBlockSize
		readSlotIdx := readIdx % genericBlockSize

		owner := cs.owners[readBlockIdx][readSlotIdx]
		if owner == 0 {
			continue
		}

		writeBlockIdx := writePos / genericBlockSize
		writeSlotIdx := writePos % genericBlockSize

		newBlocks[writeBlockIdx][writeSlotIdx] = cs.blocks[readBlockIdx][readSlotIdx]
		newOwners[writeBlockIdx][writeSlotIdx] = owner
		cs.slots.Put(owner, writePos)
		writePos++
	}

	cs.blocks = newBlocks
	cs.owners = newOwners
	cs.freeSlots = nil
	cs.nextIndex = writePos
}

// Clear drops every component in the column.
func (cs *genericComponentStorage[T]) Clear() {
	cs.blocks = nil
	cs.owners = nil
	cs.freeSlots = nil
	cs.nextIndex = 0
	cs.count = 0
	cs.slots.Clear()
}
