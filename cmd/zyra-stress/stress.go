package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/plus3/zyra/ecs"
	"github.com/plus3/zyra/ecs/components"
	"github.com/plus3/zyra/engine"
	"github.com/plus3/zyra/internal/report"
)

type options struct {
	duration       time.Duration
	entities       int
	arena          float64
	seed           int64
	gcPauseMetrics bool
}

const wallThickness = 32

// populate walls the arena in and scatters bouncing bodies inside it
func populate(world *ecs.World, opts options) {
	rng := rand.New(rand.NewSource(opts.seed))
	size := opts.arena

	walls := [][4]float64{
		{-wallThickness, size, size + 2*wallThickness, wallThickness}, // floor
		{-wallThickness, -wallThickness, size + 2*wallThickness, wallThickness},
		{-wallThickness, 0, wallThickness, size},
		{size, 0, wallThickness, size},
	}
	for _, w := range walls {
		world.Spawn(
			components.Tag{Name: "wall"},
			components.NewTransform(w[0], w[1]),
			components.NewPhysicsBody(components.BodyStatic),
			components.NewColliderAABB(w[2], w[3]),
		)
	}

	for i := 0; i < opts.entities; i++ {
		side := 4 + rng.Float64()*12
		body := components.NewPhysicsBody(components.BodyDynamic)
		body.Bounciness = rng.Float64() * 0.8

		world.Spawn(
			components.NewTransform(rng.Float64()*(size-side), rng.Float64()*(size-side)),
			components.Motion{
				VX:       (rng.Float64() - 0.5) * 400,
				VY:       (rng.Float64() - 0.5) * 400,
				MaxSpeed: 1200,
				Friction: 50,
			},
			body,
			components.NewColliderAABB(side, side),
		)
	}
}

// stress steps the engine as fast as possible until ctx is done
func stress(ctx context.Context, opts options) (*report.Report, error) {
	cfg := engine.DefaultConfig()
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	defer eng.Destroy()

	populate(eng.World(), opts)

	rep := &report.Report{
		Title:          "Stress Test Report",
		GCPauseMetrics: opts.gcPauseMetrics,
	}
	rep.Set("Run Duration", opts.duration)
	rep.Set("Bodies", opts.entities)
	rep.Set("Arena", opts.arena)
	rep.Set("Seed", opts.seed)

	rep.Begin()
	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			eng.Step(deltaTime.Seconds())
			rep.StepTime.Add(time.Since(updateStart))
			rep.Steps++
		}
	}

	rep.TotalTime = time.Since(startTime)
	rep.Digest = eng.Digest()
	rep.HasDigest = true
	rep.End(eng.World())
	return rep, nil
}
