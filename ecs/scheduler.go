package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Stage          Stage
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// worldBinder is implemented by Query and Singleton fields
type worldBinder interface {
	Init(world *World)
}

// queryExecutor is implemented by Query fields
type queryExecutor interface {
	Execute()
}

type scheduledSystem struct {
	system  System
	stage   Stage
	queries []queryExecutor
	stats   *systemStatsInternal
}

// Scheduler runs systems stage by stage. Ordering across stages is fixed
// regardless of the order in which systems were registered.
type Scheduler struct {
	world   *World
	systems []*scheduledSystem
	frames  uint64
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:   world,
		systems: make([]*scheduledSystem, 0),
	}
}

// Register adds a system in the stage it declares through Staged, or StageLate.
func (s *Scheduler) Register(system System) {
	stage := StageLate
	if staged, ok := system.(Staged); ok {
		stage = staged.Stage()
	}
	s.RegisterAt(stage, system)
}

// RegisterAt adds a system to an explicit stage and binds its Query and Singleton fields.
func (s *Scheduler) RegisterAt(stage Stage, system System) {
	if system == nil {
		return
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	entry := &scheduledSystem{
		system:  system,
		stage:   stage,
		queries: s.initializeFields(system),
		stats: &systemStatsInternal{
			name:        systemType.Name(),
			minDuration: time.Duration(1<<63 - 1),
		},
	}

	// Insert after the last system of the same or an earlier stage
	pos := len(s.systems)
	for i, existing := range s.systems {
		if existing.stage > stage {
			pos = i
			break
		}
	}
	s.systems = append(s.systems, nil)
	copy(s.systems[pos+1:], s.systems[pos:])
	s.systems[pos] = entry
}

// initializeFields binds exported Query and Singleton fields of a struct system
// to the world and returns the queries that must run before each execution.
func (s *Scheduler) initializeFields(system System) []queryExecutor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() != reflect.Ptr {
		return nil
	}
	systemValue = systemValue.Elem()

	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryExecutor
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)

		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(worldBinder)
		if !ok {
			continue
		}
		binder.Init(s.world)

		if query, ok := binder.(queryExecutor); ok {
			queries = append(queries, query)
		}
	}
	return queries
}

// Len returns the number of registered systems
func (s *Scheduler) Len() int {
	return len(s.systems)
}

// Systems returns the registered systems in execution order
func (s *Scheduler) Systems() []System {
	out := make([]System, len(s.systems))
	for i, entry := range s.systems {
		out[i] = entry.system
	}
	return out
}

// Reset drops every registered system and its statistics
func (s *Scheduler) Reset() {
	clear(s.systems)
	s.systems = s.systems[:0]
}

// Once executes all registered systems once with the given delta time,
// then flushes the frame's command buffer.
func (s *Scheduler) Once(dt float64) {
	s.frames++
	frame := newUpdateFrame(dt, s.frames, s.world)

	for _, entry := range s.systems {
		start := time.Now()
		for _, query := range entry.queries {
			query.Execute()
		}
		entry.system.Execute(frame)
		duration := time.Since(start)

		stats := entry.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush(s.world)
}

// Run updates the world repeatedly at the given interval until the context is cancelled.
// Each tick goes through World.Update, so dead entities are swept and dt is sanitised.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.world.Update(dt)
		}
	}
}

// Frames returns how many times Once has run
func (s *Scheduler) Frames() uint64 {
	return s.frames
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, entry := range s.systems {
		internal := entry.stats
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Stage:          entry.stage,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
