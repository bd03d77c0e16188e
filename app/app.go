// Package app assembles a World, a Scheduler, the asset cache and the
// built-in systems into an Application driven by a backend.
package app

import (
	"log/slog"
	"os"
	"time"

	"github.com/rotisserie/eris"

	"github.com/plus3/kite/assets"
	"github.com/plus3/kite/components"
	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/logging"
	"github.com/plus3/kite/render"
	"github.com/plus3/kite/systems"
)

// Application owns the world and runs its systems once per frame until an
// ApplicationWantClosing event or Stop.
type Application struct {
	cfg       Config
	driver    Driver
	registry  *ecs.ComponentRegistry
	world     *ecs.World
	scheduler *ecs.Scheduler
	assets    *assets.Cache
	render    *systems.RenderSystem
	onStart   []func(*Application) error

	running    bool
	fullscreen bool
	started    time.Time
}

// New creates an application on the given driver. The built-in components are
// registered; further component types can be registered on Registry before Run.
func New(driver Driver, opts ...Option) *Application {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	registry := ecs.NewComponentRegistry()
	components.Register(registry)
	world := ecs.NewWorld(registry)

	return &Application{
		cfg:       cfg,
		driver:    driver,
		registry:  registry,
		world:     world,
		scheduler: ecs.NewScheduler(world),
		assets:    assets.NewCache(cfg.Assets),
	}
}

func (a *Application) Config() Config                      { return a.cfg }
func (a *Application) Registry() *ecs.ComponentRegistry    { return a.registry }
func (a *Application) World() *ecs.World                   { return a.world }
func (a *Application) Scheduler() *ecs.Scheduler           { return a.scheduler }
func (a *Application) Assets() *assets.Cache               { return a.assets }
func (a *Application) Driver() Driver                      { return a.driver }
func (a *Application) Running() bool                       { return a.running }
func (a *Application) Fullscreen() bool                    { return a.fullscreen }
func (a *Application) Uptime() time.Duration               { return time.Since(a.started) }
func (a *Application) RenderSystem() *systems.RenderSystem { return a.render }

// OnStart adds a hook that runs after the backend and assets are ready and
// before the first frame. A hook error aborts Run.
func (a *Application) OnStart(fn func(*Application) error) {
	a.onStart = append(a.onStart, fn)
}

// Register adds systems to the scheduler.
func (a *Application) Register(list ...ecs.System) error {
	for _, system := range list {
		if err := a.scheduler.Register(system); err != nil {
			return err
		}
	}
	return nil
}

// Emit queues an event on the world's channel.
func (a *Application) Emit(event ecs.Event) {
	a.world.Emit(event)
}

// Stop ends the loop after the current frame.
func (a *Application) Stop() {
	a.running = false
}

// Run starts the backend, loads the configured assets, and runs frames until
// the application stops. Startup failures are returned before the first frame.
func (a *Application) Run() error {
	if a.cfg.LogLevel != "" {
		logging.SetLogger(logging.New(a.cfg.LogLevel, os.Stderr))
	}
	log := logging.Logger()

	if err := a.start(); err != nil {
		log.Error("application failed to start", slog.Any("error", err))
		_ = a.driver.Close()
		return err
	}
	defer a.shutdown()

	log.Info("application started",
		slog.String("title", a.cfg.Title),
		slog.Int("systems", len(a.scheduler.Systems())))

	a.running = true
	if err := a.driver.Loop(a.frame); err != nil {
		log.Error("application loop failed", slog.Any("error", err))
		return eris.Wrap(err, "run loop")
	}
	return nil
}

func (a *Application) start() error {
	a.started = time.Now()
	a.fullscreen = a.cfg.Fullscreen

	ecs.SetSingleton(a.world, ecs.Viewport{
		Width:  float32(a.cfg.LogicalWidth),
		Height: float32(a.cfg.LogicalHeight),
	})

	if err := a.driver.Start(a.cfg, a); err != nil {
		return eris.Wrap(err, "backend init")
	}

	for _, key := range a.cfg.Fonts {
		if _, err := assets.Get[*render.Font](a.assets, key); err != nil {
			return eris.Wrapf(err, "font load %s", key)
		}
	}
	for _, key := range a.cfg.SpriteSheets {
		if _, err := assets.Get[*render.SpriteSheet](a.assets, key); err != nil {
			return eris.Wrapf(err, "sprite sheet load %s", key)
		}
	}

	a.render = &systems.RenderSystem{Renderer: a.driver.Renderer(), Assets: a.assets}
	err := a.Register(
		&systems.InputSystem{ExitKey: a.cfg.ExitKey, FullscreenKey: a.cfg.FullscreenKey},
		&systems.EffectsSystem{},
		&systems.LayoutSystem{},
		a.render,
		&lifecycleSystem{app: a},
	)
	if err != nil {
		return eris.Wrap(err, "register systems")
	}

	for _, fn := range a.onStart {
		if err := fn(a); err != nil {
			return eris.Wrap(err, "start hook")
		}
	}
	return nil
}

func (a *Application) frame(dt time.Duration) (bool, error) {
	if !a.running {
		return false, nil
	}
	if err := a.scheduler.Once(dt); err != nil {
		return false, err
	}
	return a.running, nil
}

func (a *Application) shutdown() {
	a.running = false
	a.scheduler.Close()
	if err := a.driver.Close(); err != nil {
		logging.Logger().Error("backend close failed", slog.Any("error", err))
	}
	logging.Logger().Info("application stopped",
		slog.Uint64("frames", a.world.Frame().Number),
		slog.Duration("uptime", a.Uptime()))
}

// lifecycleSystem runs last in every frame and applies the requests the
// other systems made to the application.
type lifecycleSystem struct {
	app *Application
}

func (s *lifecycleSystem) Priority() int  { return ecs.PriorityLast }
func (s *lifecycleSystem) String() string { return "LifecycleSystem" }

func (s *lifecycleSystem) Update(w *ecs.World, _ time.Duration) {
	for range ecs.Drain[ecs.ToggleFullscreen](w.Events()) {
		s.app.fullscreen = !s.app.fullscreen
		s.app.driver.SetFullscreen(s.app.fullscreen)
		logging.Logger().Info("fullscreen toggled", slog.Bool("fullscreen", s.app.fullscreen))
	}

	for range ecs.Drain[ecs.ApplicationWantClosing](w.Events()) {
		if s.app.running {
			logging.Logger().Info("application closing", slog.Uint64("frame", w.Frame().Number))
		}
		s.app.running = false
	}
}
