// Package engine drives a World through the default simulation pipeline:
// it owns the config, the frame clock, the event bus and the update loop.
package engine

import (
	"context"
	"encoding/binary"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
	"github.com/plus3/zyra/ecs/systems"
	"github.com/plus3/zyra/events"
	"go.uber.org/zap"
)

// Time is the frame clock, stored as a world singleton
type Time struct {
	// Delta is the dt of the most recent world update
	Delta float64
	// Elapsed is the simulated time since the last reset
	Elapsed float64
	Frame   uint64
}

// FrameHook runs on the loop goroutine after each world update
type FrameHook func(e *Engine)

// Task is work handed to the loop goroutine from elsewhere
type Task func(e *Engine)

// Engine owns a World and steps it
type Engine struct {
	cfg      Config
	logger   *zap.Logger
	registry *ecs.ComponentRegistry
	world    *ecs.World
	bus      *events.Bus
	pipeline *systems.Pipeline
	clock    *ecs.Singleton[Time]

	accumulator float64
	hooks       []FrameHook
	tasks       chan Task
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger shared by the engine, its world and its bus
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithComponents registers additional component kinds next to the built-in ones
func WithComponents(register func(*ecs.ComponentRegistry)) Option {
	return func(e *Engine) {
		if register != nil {
			register(e.registry)
		}
	}
}

// New validates cfg and builds a world with the default pipeline installed
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		logger:   zap.NewNop(),
		registry: components.NewRegistry(),
		tasks:    make(chan Task, 16),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.world = ecs.NewWorld(e.registry, ecs.WithLogger(e.logger))
	e.bus = events.NewBus(e.logger)
	e.install()

	e.logger.Debug("engine created",
		zap.Float64("gravity_x", cfg.Gravity.X),
		zap.Float64("gravity_y", cfg.Gravity.Y),
		zap.Float64("fixed_step", cfg.FixedStep),
		zap.Int("tick_rate", cfg.TickRate))
	return e, nil
}

func (e *Engine) install() {
	e.world.AddSingleton(components.Gravity{X: e.cfg.Gravity.X, Y: e.cfg.Gravity.Y})
	e.clock = ecs.NewSingleton(e.world, Time{})
	e.pipeline = systems.Install(e.world, e.bus)
}

func (e *Engine) Config() Config                   { return e.cfg }
func (e *Engine) Logger() *zap.Logger              { return e.logger }
func (e *Engine) Registry() *ecs.ComponentRegistry { return e.registry }
func (e *Engine) World() *ecs.World                { return e.world }
func (e *Engine) Bus() *events.Bus                 { return e.bus }
func (e *Engine) Pipeline() *systems.Pipeline      { return e.pipeline }

// Time returns a copy of the frame clock
func (e *Engine) Time() Time {
	if t := e.clock.Get(); t != nil {
		return *t
	}
	return Time{}
}

// SetGravity replaces the gravity singleton
func (e *Engine) SetGravity(x, y float64) {
	e.world.AddSingleton(components.Gravity{X: x, Y: y})
}

// OnFrame adds a hook run after every world update
func (e *Engine) OnFrame(hook FrameHook) {
	if hook != nil {
		e.hooks = append(e.hooks, hook)
	}
}

// Step advances the simulation by dt seconds and returns the number of world
// updates it ran. Non-finite or negative dt counts as 0; dt is clamped to
// max_delta. With a fixed step, dt feeds an accumulator drained in fixed
// updates, at most max_substeps per call; backlog beyond that is dropped.
func (e *Engine) Step(dt float64) int {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		e.logger.Warn("invalid step delta, using 0", zap.Float64("dt", dt))
		dt = 0
	}
	if dt > e.cfg.MaxDelta {
		dt = e.cfg.MaxDelta
	}

	if e.cfg.FixedStep <= 0 {
		e.update(dt)
		return 1
	}

	e.accumulator += dt
	steps := 0
	for e.accumulator >= e.cfg.FixedStep && steps < e.cfg.MaxSubsteps {
		e.update(e.cfg.FixedStep)
		e.accumulator -= e.cfg.FixedStep
		steps++
	}
	if e.accumulator >= e.cfg.FixedStep {
		e.logger.Debug("dropping step backlog",
			zap.Float64("backlog", e.accumulator),
			zap.Int("substeps", steps))
		e.accumulator = math.Mod(e.accumulator, e.cfg.FixedStep)
	}
	return steps
}

func (e *Engine) update(dt float64) {
	e.world.Update(dt)
	if t := e.clock.Get(); t != nil {
		t.Delta = dt
		t.Elapsed += dt
		t.Frame = e.world.Frame()
	}
	for _, hook := range e.hooks {
		hook(e)
	}
}

// Enqueue hands a task to the loop goroutine. It blocks only while the queue
// is full and gives up when ctx is done.
func (e *Engine) Enqueue(ctx context.Context, task Task) error {
	select {
	case e.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunTasks runs every queued task without blocking
func (e *Engine) RunTasks() int {
	n := 0
	for {
		select {
		case task := <-e.tasks:
			task(e)
			n++
		default:
			return n
		}
	}
}

// Run steps the engine at tick_rate using wall-clock deltas until ctx is done,
// running queued tasks between ticks.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.TickInterval())
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-e.tasks:
			task(e)
		case now := <-ticker.C:
			e.Step(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Reset clears every entity and rebuilds the singletons and default systems.
// Bus subscriptions and frame hooks survive.
func (e *Engine) Reset() {
	e.world.Clear()
	e.accumulator = 0
	e.install()
	e.logger.Debug("engine reset")
}

// Destroy clears the world and drops every bus subscription
func (e *Engine) Destroy() {
	e.world.Clear()
	e.bus.Clear()
	e.hooks = nil
}

// Digest hashes the transform and velocity of every live entity in id order.
// Equal digests mean equal state on the same build; it is not a portable checksum.
func (e *Engine) Digest() uint64 {
	d := xxhash.New()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	storage := e.world.Storage()
	for _, id := range e.world.Entities() {
		if !storage.IsAlive(id) {
			continue
		}
		put(uint64(id))
		if t := ecs.ReadComponent[components.Transform](storage, id); t != nil {
			put(math.Float64bits(t.X))
			put(math.Float64bits(t.Y))
		}
		if m := ecs.ReadComponent[components.Motion](storage, id); m != nil {
			put(math.Float64bits(m.VX))
			put(math.Float64bits(m.VY))
		}
	}
	return d.Sum64()
}
