// Command zyra-stress fills an arena with bouncing bodies and reports how the
// simulation pipeline holds up.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"
)

func main() {
	var opts options
	flag.DurationVar(&opts.duration, "duration", 10*time.Second, "The total duration the test should run for.")
	flag.IntVar(&opts.entities, "entities", 2000, "The number of dynamic bodies to spawn.")
	flag.Float64Var(&opts.arena, "arena", 2048, "Width and height of the walled arena.")
	flag.Int64Var(&opts.seed, "seed", 1, "Random seed for body placement.")
	flag.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting stress test...")

	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	rep, err := stress(ctx, opts)
	if err != nil {
		log.Fatalf("stress test failed: %v", err)
	}

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := rep.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
