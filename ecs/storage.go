package ecs

import (
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns every entity, its components and the world singletons.
// Components live in one column per kind, so an entity can never hold two
// components of the same kind.
type Storage struct {
	registry *ComponentRegistry
	columns  map[reflect.Type]iComponentStorage

	// entities keeps creation order, including entities marked dead this frame
	entities  []EntityId
	alive     *intmap.Map[EntityId, bool]
	liveCount int
	deadCount int
	nextId    EntityId

	singletons     map[reflect.Type]*singletonEntry
	singletonOrder []reflect.Type
}

type singletonEntry struct {
	dataPtr unsafe.Pointer
	value   reflect.Value
}

// NewStorage creates a new storage backed by the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		columns:    make(map[reflect.Type]iComponentStorage),
		alive:      intmap.New[EntityId, bool](256),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was built with
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Create allocates a new entity id with no components
func (s *Storage) Create() EntityId {
	s.nextId++
	id := s.nextId
	s.entities = append(s.entities, id)
	s.alive.Put(id, true)
	s.liveCount++
	return id
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	id := s.Create()
	for _, comp := range components {
		s.AddComponent(id, comp)
	}
	return id
}

// Destroy marks the entity dead. It stays readable until the next Sweep.
// Returns false if the id is unknown or already dead.
func (s *Storage) Destroy(id EntityId) bool {
	alive, ok := s.alive.Get(id)
	if !ok || !alive {
		return false
	}
	s.alive.Put(id, false)
	s.liveCount--
	s.deadCount++
	return true
}

// IsAlive reports whether the entity exists and has not been destroyed
func (s *Storage) IsAlive(id EntityId) bool {
	alive, ok := s.alive.Get(id)
	return ok && alive
}

// Exists reports whether the entity is alive or destroyed but not yet swept
func (s *Storage) Exists(id EntityId) bool {
	_, ok := s.alive.Get(id)
	return ok
}

// Sweep removes every entity marked dead along with its components.
// Returns the removed ids in creation order.
func (s *Storage) Sweep() []EntityId {
	if s.deadCount == 0 {
		return nil
	}

	swept := make([]EntityId, 0, s.deadCount)
	kept := s.entities[:0]
	for _, id := range s.entities {
		if alive, _ := s.alive.Get(id); alive {
			kept = append(kept, id)
			continue
		}
		for _, column := range s.columns {
			column.Delete(id)
		}
		s.alive.Del(id)
		swept = append(swept, id)
	}
	clear(s.entities[len(kept):])
	s.entities = kept
	s.deadCount = 0
	return swept
}

// Entities returns entity ids in creation order, including entities destroyed
// since the last Sweep. The slice is owned by the storage and is only valid
// until the next Sweep or Create.
func (s *Storage) Entities() []EntityId {
	return s.entities
}

// Len returns the number of live entities
func (s *Storage) Len() int {
	return s.liveCount
}

// PendingDestroy returns the number of entities waiting for the next Sweep
func (s *Storage) PendingDestroy() int {
	return s.deadCount
}

// AddComponent stores component on the entity, replacing any existing component
// of the same kind. The component may be passed by value or by pointer; the
// stored copy is returned as a pointer. Returns nil if the entity is unknown.
// Panics if the component kind was never registered.
func (s *Storage) AddComponent(id EntityId, component any) any {
	if !s.Exists(id) {
		return nil
	}

	compType := componentType(component)
	column := s.ensureColumn(compType)
	return column.Set(id, component)
}

// RemoveComponent drops the entity's component of the given kind
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	column := s.columns[compType]
	if column == nil {
		return false
	}
	return column.Delete(id)
}

// GetComponent returns a pointer to the entity's component of the given kind,
// or nil when the entity has none
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	column := s.columns[compType]
	if column == nil {
		return nil
	}
	return column.Get(id)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	column := s.columns[compType]
	if column == nil {
		return false
	}
	return column.Has(id)
}

// ComponentTypes returns the kinds the entity currently holds, sorted by name
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	types := make([]reflect.Type, 0, 4)
	for t, column := range s.columns {
		if column.Has(id) {
			types = append(types, t)
		}
	}
	sort.Sort(byTypeName(types))
	return types
}

// Compact defragments every component column.
// Component pointers obtained before the call must not be used afterwards.
func (s *Storage) Compact() {
	for _, column := range s.columns {
		column.Compact()
	}
}

// Clear disposes every entity and singleton. Entity ids keep increasing afterwards.
func (s *Storage) Clear() {
	for _, column := range s.columns {
		column.Clear()
	}
	clear(s.entities)
	s.entities = s.entities[:0]
	s.alive.Clear()
	s.liveCount = 0
	s.deadCount = 0

	clear(s.singletons)
	s.singletonOrder = nil
}

func (s *Storage) column(compType reflect.Type) iComponentStorage {
	return s.columns[compType]
}

func (s *Storage) ensureColumn(compType reflect.Type) iComponentStorage {
	if column, ok := s.columns[compType]; ok {
		return column
	}
	factory := s.registry.getFactory(compType)
	if factory == nil {
		panic("component type " + compType.String() + " not registered")
	}
	column := factory()
	s.columns[compType] = column
	return column
}

// AddSingleton stores value as the world-wide instance of its type, replacing
// any previous instance in place so existing Singleton accessors stay valid.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(v)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = &singletonEntry{
		dataPtr: ptr.UnsafePointer(),
		value:   ptr,
	}
	s.singletonOrder = append(s.singletonOrder, t)
}

// ReadSingleton points *target at the stored singleton of that type.
// target must be a pointer to a pointer, e.g. `var cfg *Config; s.ReadSingleton(&cfg)`.
func (s *Storage) ReadSingleton(target any) bool {
	out := reflect.ValueOf(target)
	if out.Kind() != reflect.Ptr || out.IsNil() || out.Elem().Kind() != reflect.Ptr {
		return false
	}
	t := out.Elem().Type().Elem()
	entry := s.singletons[t]
	if entry == nil {
		return false
	}
	out.Elem().Set(reflect.NewAt(t, entry.dataPtr))
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// componentType returns the kind of a component passed by value or pointer
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("cannot use nil as a component")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives (int, string, etc.)
	// But not pointers, maps, channels, or functions (those aren't value types)
	if compType.Kind() == reflect.Ptr || compType.Kind() == reflect.Map ||
		compType.Kind() == reflect.Chan || compType.Kind() == reflect.Func {
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// ComponentReader is anything that can look up a component by entity and kind
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil when absent
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

// LookupComponent returns the entity's T and whether it was present
func LookupComponent[T any](reader ComponentReader, entityId EntityId) (*T, bool) {
	comp := ReadComponent[T](reader, entityId)
	return comp, comp != nil
}
