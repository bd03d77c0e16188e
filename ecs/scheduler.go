package ecs

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/plus3/kite/logging"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Priority       int
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

// systemEntry is a registered system with its cached priority
type systemEntry struct {
	system   System
	priority int
	stats    *systemStatsInternal
}

type pendingChange struct {
	system System
	remove bool
}

// Scheduler manages and executes systems in (priority, registration order).
type Scheduler struct {
	world   *World
	entries []*systemEntry
	pending []pendingChange
	running bool
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:   world,
		entries: make([]*systemEntry, 0),
	}
}

// World returns the world the scheduler drives.
func (s *Scheduler) World() *World {
	return s.world
}

// Register adds a system to the scheduler, initializes its Query and Singleton
// fields and calls Init if the system implements Initializer.
// A system registered while a frame is executing joins at the start of the next frame.
// Systems are identified by equality, so register pointers.
func (s *Scheduler) Register(system System) error {
	if s.running {
		s.pending = append(s.pending, pendingChange{system: system})
		return nil
	}
	return s.add(system)
}

// Unregister removes a system, calling End if it implements Finalizer.
// A system unregistered while a frame is executing still completes that frame.
func (s *Scheduler) Unregister(system System) bool {
	if s.indexOf(system) < 0 {
		return false
	}
	if s.running {
		s.pending = append(s.pending, pendingChange{system: system, remove: true})
		return true
	}
	s.remove(system)
	return true
}

func (s *Scheduler) add(system System) error {
	s.initializeQueries(system)

	if initializer, ok := system.(Initializer); ok {
		if err := initializer.Init(s.world); err != nil {
			return eris.Wrapf(err, "init system %s", systemName(system))
		}
	}

	entry := &systemEntry{
		system:   system,
		priority: system.Priority(),
		stats: &systemStatsInternal{
			name:        systemName(system),
			minDuration: time.Duration(1<<63 - 1),
		},
	}
	s.entries = append(s.entries, entry)

	// entries are kept in registration order among equal priorities
	slices.SortStableFunc(s.entries, func(a, b *systemEntry) int {
		return cmp.Compare(a.priority, b.priority)
	})

	logging.Logger().Debug("system registered",
		slog.String("system", entry.stats.name),
		slog.Int("priority", entry.priority),
		slog.Int("systems", len(s.entries)))
	return nil
}

func (s *Scheduler) remove(system System) {
	i := s.indexOf(system)
	if i < 0 {
		return
	}

	if finalizer, ok := system.(Finalizer); ok {
		finalizer.End(s.world)
	}
	s.entries = slices.Delete(s.entries, i, i+1)

	logging.Logger().Debug("system unregistered", slog.String("system", systemName(system)))
}

func (s *Scheduler) indexOf(system System) int {
	return slices.IndexFunc(s.entries, func(entry *systemEntry) bool {
		return entry.system == system
	})
}

func (s *Scheduler) applyPending() error {
	pending := s.pending
	s.pending = nil

	var errs []error
	for _, change := range pending {
		if change.remove {
			s.remove(change.system)
			continue
		}
		if err := s.add(change.system); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return eris.Wrap(errs[0], "apply pending systems")
	}
	return nil
}

func (s *Scheduler) initializeQueries(system System) {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	if systemValue.Kind() != reflect.Struct {
		return
	}

	systemType := systemValue.Type()

	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		fieldType := systemType.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() != reflect.Struct {
			continue
		}

		typeName := field.Type().Name()

		// Query and Singleton fields are initialized in place
		if strings.HasPrefix(typeName, "Query[") || strings.HasPrefix(typeName, "Singleton[") {
			initMethod := field.Addr().MethodByName("Init")
			if !initMethod.IsValid() {
				panic("Init method not found on field: " + fieldType.Name)
			}

			initMethod.Call([]reflect.Value{
				reflect.ValueOf(s.world),
			})
		}
	}
}

// Once executes one frame: pending system changes are applied, every system runs
// in order with a flush point after each turn, and the event channel is cleared.
func (s *Scheduler) Once(dt time.Duration) error {
	err := s.applyPending()

	s.world.advance(dt)
	s.running = true
	defer func() { s.running = false }()

	for _, entry := range s.entries {
		s.world.beginTurn()

		start := time.Now()
		entry.system.Update(s.world, dt)
		duration := time.Since(start)

		s.world.endTurn()

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

	s.world.Flush()
	s.world.events.Clear()
	return err
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			if err := s.Once(dt); err != nil {
				return err
			}
		}
	}
}

// Close unregisters every system in reverse order, calling End on finalizers.
func (s *Scheduler) Close() {
	s.pending = nil
	for i := len(s.entries) - 1; i >= 0; i-- {
		if finalizer, ok := s.entries[i].system.(Finalizer); ok {
			finalizer.End(s.world)
		}
	}
	s.entries = s.entries[:0]
}

// Systems returns the registered systems in execution order.
func (s *Scheduler) Systems() []System {
	systems := make([]System, len(s.entries))
	for i, entry := range s.entries {
		systems[i] = entry.system
	}
	return systems
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.entries),
		Frames:      s.world.frame.Number,
		Systems:     make([]SystemStats, len(s.entries)),
	}

	var totalExecs int64
	for i, entry := range s.entries {
		internal := entry.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Priority:       entry.priority,
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

func systemName(system System) string {
	if named, ok := system.(fmt.Stringer); ok {
		return named.String()
	}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}
