package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/kite/app"
	"github.com/plus3/kite/assets"
	"github.com/plus3/kite/components"
	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/input"
	"github.com/plus3/kite/render"
)

func keyUpAt(frame int, key input.KeyModifier) func(int) []ecs.Event {
	return func(n int) []ecs.Event {
		if n == frame {
			return []ecs.Event{ecs.KeyDown{KeyModifier: key}, ecs.KeyUp{KeyModifier: key}}
		}
		return nil
	}
}

func spawnBox(a *app.Application) error {
	a.World().Spawn(
		components.Position{X: 10, Y: 10},
		components.SolidBox{To: components.Position{X: 5, Y: 5}},
		components.Red,
		components.Visible(0),
	)
	return nil
}

func TestRunStopsOnExitKey(t *testing.T) {
	driver := app.NewHeadlessDriver(100)
	driver.Input = keyUpAt(2, input.Key(input.KeyEscape, input.ModNone))

	a := app.New(driver)
	a.OnStart(spawnBox)
	require.NoError(t, a.Run())

	assert.Equal(t, uint64(3), a.World().Frame().Number)
	assert.Equal(t, 3, driver.Recorder().Frames(), "the closing frame still renders")
	assert.False(t, a.Running())

	drawables := driver.Recorder().Frame()
	require.Len(t, drawables, 1)
	assert.Equal(t, render.KindSolidBox, drawables[0].Kind)
	assert.Empty(t, a.Scheduler().Systems(), "systems are released on shutdown")
}

func TestRunStopsAfterDriverFrames(t *testing.T) {
	driver := app.NewHeadlessDriver(5)
	a := app.New(driver, app.WithExitKey(input.Key(input.KeyUnknown, input.ModNone)))
	require.NoError(t, a.Run())

	assert.Equal(t, uint64(5), a.World().Frame().Number)
	assert.Equal(t, 5, driver.Recorder().Frames())
}

func TestStopFromSystem(t *testing.T) {
	driver := app.NewHeadlessDriver(0)
	a := app.New(driver)

	frames := 0
	require.NoError(t, a.Register(ecs.NewSystemFunc("stopper", ecs.PriorityNormal, func(*ecs.World, time.Duration) {
		frames++
		if frames == 4 {
			a.Stop()
		}
	})))

	require.NoError(t, a.Run())
	assert.Equal(t, 4, frames)
}

func TestFullscreenToggle(t *testing.T) {
	driver := app.NewHeadlessDriver(3)
	driver.Input = keyUpAt(0, input.Key(input.KeyEnter, input.ModLeftAlt))

	a := app.New(driver)
	require.NoError(t, a.Run())

	assert.True(t, a.Fullscreen())
	assert.True(t, driver.Fullscreen())
}

func TestFullscreenKeyWithoutModifierIsIgnored(t *testing.T) {
	driver := app.NewHeadlessDriver(3)
	driver.Input = keyUpAt(0, input.Key(input.KeyEnter, input.ModNone))

	a := app.New(driver, app.WithFullscreen(true))
	require.NoError(t, a.Run())

	assert.True(t, a.Fullscreen())
	assert.True(t, driver.Fullscreen())
}

func TestViewportFollowsLogicalSize(t *testing.T) {
	driver := app.NewHeadlessDriver(1)
	a := app.New(driver, app.WithWindowSize(640, 400), app.WithLogicalSize(320, 200))
	require.NoError(t, a.Run())

	viewport := ecs.GetSingleton[ecs.Viewport](a.World())
	require.NotNil(t, viewport)
	assert.Equal(t, ecs.Viewport{Width: 320, Height: 200}, *viewport)
}

func TestEmbeddedFontPreload(t *testing.T) {
	driver := app.NewHeadlessDriver(1)
	a := app.New(driver, app.WithFonts(assets.FontRegular, assets.FontMono))
	require.NoError(t, a.Run())

	font, err := assets.Get[*render.Font](a.Assets(), assets.FontMono)
	require.NoError(t, err)
	assert.NotNil(t, font)
}

type failingDriver struct {
	*app.HeadlessDriver
	closed bool
}

func (d *failingDriver) Start(app.Config, app.Host) error {
	return errors.New("no display")
}

func (d *failingDriver) Close() error {
	d.closed = true
	return nil
}

func TestStartupErrors(t *testing.T) {
	t.Run("backend", func(t *testing.T) {
		driver := &failingDriver{HeadlessDriver: app.NewHeadlessDriver(1)}
		a := app.New(driver)

		err := a.Run()
		require.Error(t, err)
		assert.ErrorContains(t, err, "backend init")
		assert.ErrorContains(t, err, "no display")
		assert.True(t, driver.closed)
		assert.Equal(t, uint64(0), a.World().Frame().Number)
	})

	t.Run("font", func(t *testing.T) {
		driver := app.NewHeadlessDriver(1)
		a := app.New(driver, app.WithFonts("fonts/missing.ttf"))

		err := a.Run()
		require.Error(t, err)
		assert.ErrorIs(t, err, assets.ErrLoad)
		assert.ErrorContains(t, err, "font load")
		assert.Equal(t, 0, driver.Recorder().Frames())
	})

	t.Run("sprite sheet", func(t *testing.T) {
		driver := app.NewHeadlessDriver(1)
		a := app.New(driver, app.WithSpriteSheets("sheets/missing.json"))

		err := a.Run()
		require.Error(t, err)
		assert.ErrorIs(t, err, assets.ErrLoad)
		assert.ErrorContains(t, err, "sprite sheet load")
	})

	t.Run("start hook", func(t *testing.T) {
		driver := app.NewHeadlessDriver(1)
		a := app.New(driver)
		a.OnStart(func(*app.Application) error { return errors.New("boom") })

		err := a.Run()
		require.Error(t, err)
		assert.ErrorContains(t, err, "start hook")
		assert.Equal(t, 0, driver.Recorder().Frames())
	})
}

func TestConfigOptions(t *testing.T) {
	defaults := app.DefaultConfig()
	assert.Equal(t, time.Second/60, defaults.FrameInterval())
	assert.Equal(t, input.KeyEscape, defaults.ExitKey.Code)

	a := app.New(app.NewHeadlessDriver(1),
		app.WithTitle("demo"),
		app.WithTargetFPS(0),
		app.WithClearColor(components.Blue),
		app.WithLogLevel("debug"),
		app.WithFonts("a.ttf"),
		app.WithFonts("b.ttf"),
	)
	cfg := a.Config()
	assert.Equal(t, "demo", cfg.Title)
	assert.Equal(t, time.Duration(0), cfg.FrameInterval())
	assert.Equal(t, components.Blue, cfg.ClearColor)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"a.ttf", "b.ttf"}, cfg.Fonts)

	replaced := app.New(app.NewHeadlessDriver(1), app.WithConfig(app.Config{Title: "bare"}), app.WithTargetFPS(30))
	assert.Equal(t, "bare", replaced.Config().Title)
	assert.Equal(t, 30, replaced.Config().TargetFPS)
}
