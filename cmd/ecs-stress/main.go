// Command ecs-stress churns a headless world for a fixed duration and prints
// a markdown report of frame times, entity churn and memory use.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"

	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/logging"
	"github.com/plus3/kite/systems"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The number of entities kept alive.")
	seed := flag.Uint64("seed", 1, "Seed for the entity generator.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a profile: cpu, mem, allocs, block, mutex or trace.")
	profilePath := flag.String("profile-path", ".", "Directory the profile is written to.")
	logLevel := flag.String("log-level", "", "Log level: trace, debug, info, warn or error.")
	flag.Parse()

	if *logLevel != "" {
		logging.SetLogger(logging.New(*logLevel, os.Stderr))
	}

	if *profileMode != "" {
		mode, err := profileOption(*profileMode)
		if err != nil {
			log.Fatalf("Invalid -profile: %v", err)
		}
		defer profile.Start(mode, profile.ProfilePath(*profilePath), profile.NoShutdownHook).Stop()
	}

	log.Println("Starting ECS stress test...")

	rng := rand.New(rand.NewPCG(*seed, *seed))

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	world := ecs.NewWorld(registry)
	scheduler := ecs.NewScheduler(world)

	lifetimes := &LifetimeSystem{}
	spawner := &SpawnerSystem{Target: *entityCount, rng: rng}
	for _, system := range []ecs.System{
		&MovementSystem{},
		&CombatSystem{rng: rng},
		lifetimes,
		&systems.EffectsSystem{},
		spawner,
	} {
		if err := scheduler.Register(system); err != nil {
			log.Fatalf("Failed to register system: %v", err)
		}
	}

	log.Printf("Populating world with %d entities...\n", *entityCount)
	for range *entityCount {
		spawnRandomEntity(world, rng)
	}
	log.Println("Population complete.")

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Components:     registry.Len(),
		Systems:        len(scheduler.Systems()),
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

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
			if err := scheduler.Once(deltaTime); err != nil {
				log.Fatalf("Frame failed: %v", err)
			}
			report.Frames.Record(time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Frames.Finalize()
	report.Destroyed = lifetimes.destroyed
	report.Spawned = spawner.spawned
	report.World = world.CollectStats()
	report.Scheduler = scheduler.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	scheduler.Close()
	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

func profileOption(mode string) (func(*profile.Profile), error) {
	switch mode {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	case "allocs":
		return profile.MemProfileAllocs, nil
	case "block":
		return profile.BlockProfile, nil
	case "mutex":
		return profile.MutexProfile, nil
	case "trace":
		return profile.TraceProfile, nil
	default:
		return nil, eris.Errorf("unknown profile mode %q", mode)
	}
}
