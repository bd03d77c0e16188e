package app

import (
	"time"

	"github.com/plus3/kite/assets"
	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/render"
)

// FrameFunc runs one frame of the application. It reports false once the
// application wants to stop.
type FrameFunc func(dt time.Duration) (bool, error)

// Host is the side of an Application a Driver talks to.
type Host interface {
	// Emit queues an input or window event for the next frame. It must be
	// called from the goroutine that runs Loop.
	Emit(event ecs.Event)
	Assets() *assets.Cache
}

// Driver connects an Application to a window, an input source and a renderer.
type Driver interface {
	Start(cfg Config, host Host) error
	Renderer() render.Renderer
	SetFullscreen(fullscreen bool)
	// Loop calls frame until it returns false or an error.
	Loop(frame FrameFunc) error
	Close() error
}

// HeadlessDriver runs frames without a window. Drawables are kept by a
// render.Recorder and input is scripted per frame.
type HeadlessDriver struct {
	// Frames bounds the number of frames. Zero runs until the application stops.
	Frames int
	// Interval paces frames on a ticker. Zero runs them back to back with Step as dt.
	Interval time.Duration
	Step     time.Duration
	// Input returns the events delivered before frame n, counted from zero.
	Input func(n int) []ecs.Event

	recorder   *render.Recorder
	host       Host
	fullscreen bool
}

// NewHeadlessDriver creates a driver that runs at most frames frames with a
// fixed 1/60s step.
func NewHeadlessDriver(frames int) *HeadlessDriver {
	return &HeadlessDriver{
		Frames:   frames,
		Step:     time.Second / 60,
		recorder: render.NewRecorder(),
	}
}

func (d *HeadlessDriver) Start(cfg Config, host Host) error {
	if d.recorder == nil {
		d.recorder = render.NewRecorder()
	}
	d.host = host
	d.fullscreen = cfg.Fullscreen
	host.Emit(ecs.WindowResized{
		Width:  cfg.WindowWidth,
		Height: cfg.WindowHeight,
		Logical: ecs.Viewport{
			Width:  float32(cfg.LogicalWidth),
			Height: float32(cfg.LogicalHeight),
		},
	})
	return nil
}

func (d *HeadlessDriver) Renderer() render.Renderer {
	return d.recorder
}

// Recorder returns the renderer frames are submitted to.
func (d *HeadlessDriver) Recorder() *render.Recorder {
	return d.recorder
}

func (d *HeadlessDriver) SetFullscreen(fullscreen bool) {
	d.fullscreen = fullscreen
}

// Fullscreen reports the last fullscreen state requested by the application.
func (d *HeadlessDriver) Fullscreen() bool {
	return d.fullscreen
}

func (d *HeadlessDriver) Loop(frame FrameFunc) error {
	var ticks <-chan time.Time
	if d.Interval > 0 {
		ticker := time.NewTicker(d.Interval)
		defer ticker.Stop()
		ticks = ticker.C
	}

	last := time.Now()
	for n := 0; d.Frames == 0 || n < d.Frames; n++ {
		dt := d.Step
		if ticks != nil {
			now := <-ticks
			dt = now.Sub(last)
			last = now
		}

		if d.Input != nil {
			for _, event := range d.Input(n) {
				d.host.Emit(event)
			}
		}

		running, err := frame(dt)
		if err != nil {
			return err
		}
		if !running {
			return nil
		}
	}
	return nil
}

func (d *HeadlessDriver) Close() error {
	return nil
}
