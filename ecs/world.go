package ecs

import (
	"math"
	"reflect"

	"go.uber.org/zap"
)

// World owns entity storage, singletons and the system pipeline.
// A World is not safe for concurrent use; drive it from a single goroutine.
type World struct {
	storage   *Storage
	scheduler *Scheduler
	logger    *zap.Logger
}

// Option configures a World
type Option func(*World)

// WithLogger sets the logger used for world diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorld creates an empty world whose components are described by registry
func NewWorld(registry *ComponentRegistry, opts ...Option) *World {
	w := &World{
		storage: NewStorage(registry),
		logger:  zap.NewNop(),
	}
	w.scheduler = NewScheduler(w)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Storage exposes the underlying entity storage
func (w *World) Storage() *Storage {
	return w.storage
}

// Scheduler exposes the system pipeline
func (w *World) Scheduler() *Scheduler {
	return w.scheduler
}

// Logger returns the world's logger
func (w *World) Logger() *zap.Logger {
	return w.logger
}

// CreateEntity allocates a new entity with no components
func (w *World) CreateEntity() Entity {
	return Entity{id: w.storage.Create(), world: w}
}

// Spawn creates an entity holding the given components
func (w *World) Spawn(components ...any) Entity {
	return Entity{id: w.storage.Spawn(components...), world: w}
}

// Entity returns a handle for id, or false when the id is unknown or already swept
func (w *World) Entity(id EntityId) (Entity, bool) {
	if !w.storage.Exists(id) {
		return Entity{}, false
	}
	return Entity{id: id, world: w}, true
}

// DestroyEntity marks the entity dead. It is removed at the start of the next Update.
// Unknown or already destroyed ids are ignored.
func (w *World) DestroyEntity(id EntityId) {
	w.storage.Destroy(id)
}

// IsAlive reports whether the entity exists and has not been destroyed
func (w *World) IsAlive(id EntityId) bool {
	return w.storage.IsAlive(id)
}

// Entities returns ids in creation order, including entities destroyed this frame
func (w *World) Entities() []EntityId {
	return w.storage.Entities()
}

// Len returns the number of live entities
func (w *World) Len() int {
	return w.storage.Len()
}

// GetComponent returns a pointer to the entity's component of the given kind, or nil
func (w *World) GetComponent(id EntityId, compType reflect.Type) any {
	return w.storage.GetComponent(id, compType)
}

// AddSystem registers a system in the stage it declares, or StageLate
func (w *World) AddSystem(system System) {
	w.scheduler.Register(system)
}

// AddSystemAt registers a system in an explicit stage
func (w *World) AddSystemAt(stage Stage, system System) {
	w.scheduler.RegisterAt(stage, system)
}

// Update advances the world by dt seconds: entities destroyed since the last
// update are swept, then every system runs in stage order, then the frame's
// commands are flushed. Non-finite or negative dt is treated as 0.
func (w *World) Update(dt float64) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		w.logger.Warn("invalid delta time, using 0", zap.Float64("dt", dt))
		dt = 0
	}

	if swept := w.storage.Sweep(); len(swept) > 0 {
		w.logger.Debug("swept entities", zap.Int("count", len(swept)))
	}

	w.scheduler.Once(dt)
}

// Frame returns the number of completed updates
func (w *World) Frame() uint64 {
	return w.scheduler.Frames()
}

// Clear disposes every entity and singleton and drops every system
func (w *World) Clear() {
	w.storage.Clear()
	w.scheduler.Reset()
}

// Compact defragments component columns. Previously obtained component
// pointers must not be used afterwards.
func (w *World) Compact() {
	w.storage.Compact()
}

// CollectStats summarises entity and component counts
func (w *World) CollectStats() *StorageStats {
	return w.storage.CollectStats()
}

// Stats returns per-system execution timings
func (w *World) Stats() *SchedulerStats {
	return w.scheduler.GetStats()
}

// AddSingleton stores value as the world-wide instance of its type
func (w *World) AddSingleton(value any) {
	w.storage.AddSingleton(value)
}

// ReadSingleton points *target at the stored singleton, e.g. `var g *Gravity; w.ReadSingleton(&g)`
func (w *World) ReadSingleton(target any) bool {
	return w.storage.ReadSingleton(target)
}
