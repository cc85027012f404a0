package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/plus3/zyra/engine"
	"github.com/plus3/zyra/events"
	"github.com/plus3/zyra/inspect"
	"github.com/plus3/zyra/internal/logging"
	"github.com/plus3/zyra/internal/report"
	"github.com/plus3/zyra/scene"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func loadConfig(opts options) (engine.Config, error) {
	cfg := engine.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = engine.LoadConfig(opts.configPath); err != nil {
			return cfg, err
		}
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.inspect != "" {
		cfg.Inspector.Addr = opts.inspect
	}
	return cfg, cfg.Validate()
}

func run(ctx context.Context, opts options, out io.Writer) error {
	if opts.watch && opts.scenePath == "" {
		return errors.New("-watch needs -scene")
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	eng, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		return err
	}
	defer eng.Destroy()

	if opts.scenePath != "" {
		if err := loadScene(eng, opts.scenePath); err != nil {
			return err
		}
	}
	logContacts(eng.Bus(), logger)

	rep := &report.Report{Title: "Simulation Report"}
	rep.Set("Config", valueOr(opts.configPath, "defaults"))
	rep.Set("Scene", valueOr(opts.scenePath, "none"))
	if opts.realtime {
		rep.Set("Mode", "realtime")
	} else {
		rep.Set("Mode", "headless")
	}
	rep.Set("Frames", opts.frames)
	rep.Set("Gravity", fmt.Sprintf("(%g, %g)", cfg.Gravity.X, cfg.Gravity.Y))
	rep.Set("Fixed Step", cfg.FixedStep)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if cfg.Inspector.Addr != "" {
		server := inspect.NewServer(logger)
		every := uint64(max(cfg.Inspector.PublishEvery, 1))
		eng.OnFrame(func(e *engine.Engine) {
			frame := e.Time().Frame
			if frame%every != 0 {
				return
			}
			if err := server.Publish(inspect.Capture(e.World(), frame)); err != nil {
				logger.Warn("publish snapshot", zap.Error(err))
			}
		})
		g.Go(func() error {
			return server.ListenAndServe(ctx, cfg.Inspector.Addr)
		})
	}

	if opts.watch {
		watcher, err := scene.NewWatcher(logger, opts.scenePath)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return watchScene(ctx, watcher, eng, opts.scenePath, logger)
		})
	}

	rep.Begin()
	start := time.Now()
	g.Go(func() error {
		defer cancel()
		if opts.realtime {
			return runRealtime(ctx, eng, opts.frames, rep)
		}
		return runHeadless(ctx, eng, opts.frames, opts.dt, rep)
	})

	err = g.Wait()
	rep.TotalTime = time.Since(start)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	rep.Digest = eng.Digest()
	rep.HasDigest = true
	rep.End(eng.World())
	return rep.Generate(out)
}

func runHeadless(ctx context.Context, eng *engine.Engine, frames int, dt float64, rep *report.Report) error {
	for i := 0; i < frames; i++ {
		if ctx.Err() != nil {
			return nil
		}
		eng.RunTasks()

		stepStart := time.Now()
		eng.Step(dt)
		rep.StepTime.Add(time.Since(stepStart))
		rep.Steps++
	}
	return nil
}

// runRealtime steps at the configured tick rate; StepTime records the wall
// time between frames
func runRealtime(ctx context.Context, eng *engine.Engine, frames int, rep *report.Report) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	last := time.Now()
	eng.OnFrame(func(e *engine.Engine) {
		now := time.Now()
		rep.StepTime.Add(now.Sub(last))
		rep.Steps++
		last = now
		if frames > 0 && e.Time().Frame >= uint64(frames) {
			cancel()
		}
	})

	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func loadScene(eng *engine.Engine, path string) error {
	s, err := scene.Load(path)
	if err != nil {
		return err
	}
	spawned, err := s.Spawn(eng.World())
	if err != nil {
		return err
	}
	eng.Logger().Info("scene loaded",
		zap.String("scene", s.Name),
		zap.String("path", path),
		zap.Int("entities", len(spawned)))
	return nil
}

// watchScene hands reloads to the loop goroutine; a broken file keeps the
// current world running
func watchScene(ctx context.Context, watcher *scene.Watcher, eng *engine.Engine, path string, logger *zap.Logger) error {
	defer watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("scene watcher", zap.Error(err))
		case _, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			err := eng.Enqueue(ctx, func(e *engine.Engine) {
				s, err := scene.Load(path)
				if err != nil {
					logger.Error("scene reload failed", zap.Error(err))
					return
				}
				e.Reset()
				if _, err := s.Spawn(e.World()); err != nil {
					logger.Error("scene spawn failed", zap.Error(err))
					return
				}
				logger.Info("scene reloaded", zap.String("path", path))
			})
			if err != nil {
				return nil
			}
		}
	}
}

func logContacts(bus *events.Bus, logger *zap.Logger) {
	if !logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	for _, kind := range []events.Kind{events.ContactBegin, events.ContactEnd, events.Grounded, events.Airborne} {
		bus.Subscribe(kind, func(ev events.Event) {
			logger.Debug(string(ev.Kind),
				zap.Uint64("frame", ev.Frame),
				zap.Uint64("entity", uint64(ev.Entity)),
				zap.Uint64("other", uint64(ev.Other)))
		})
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
