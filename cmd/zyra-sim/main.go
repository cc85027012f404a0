// Command zyra-sim runs a scene headless or in real time and prints a run report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

type options struct {
	configPath string
	scenePath  string
	frames     int
	dt         float64
	realtime   bool
	watch      bool
	inspect    string
	logLevel   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Engine config YAML; defaults are used when empty.")
	flag.StringVar(&opts.scenePath, "scene", "", "Scene YAML to load.")
	flag.IntVar(&opts.frames, "frames", 600, "Number of frames to simulate; 0 runs until interrupted in realtime mode.")
	flag.Float64Var(&opts.dt, "dt", 1.0/60.0, "Step delta in seconds for headless runs.")
	flag.BoolVar(&opts.realtime, "realtime", false, "Step at the configured tick rate using wall-clock time.")
	flag.BoolVar(&opts.watch, "watch", false, "Reload the scene when its file changes.")
	flag.StringVar(&opts.inspect, "inspect", "", "Serve the inspector on this address, overriding the config.")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level, overriding the config.")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "zyra-sim: %v\n", err)
		os.Exit(1)
	}
}
