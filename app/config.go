package app

import (
	"io/fs"
	"time"

	"github.com/plus3/kite/components"
	"github.com/plus3/kite/input"
)

// Config holds the settings an Application starts with.
type Config struct {
	Title string

	// WindowWidth and WindowHeight are the initial window size in pixels.
	WindowWidth  int
	WindowHeight int

	// LogicalWidth and LogicalHeight are the size of the coordinate space systems
	// work in. The backend letterboxes it inside the window.
	LogicalWidth  int
	LogicalHeight int

	ClearColor    components.Color
	ExitKey       input.KeyModifier
	FullscreenKey input.KeyModifier
	Fullscreen    bool
	TargetFPS     int

	// LogLevel is one of trace, debug, info, warn or error. Empty leaves the
	// process logger untouched.
	LogLevel string

	// Assets is the file system asset keys resolve against.
	Assets fs.FS

	// Fonts and SpriteSheets are loaded before the first frame.
	Fonts        []string
	SpriteSheets []string
}

// DefaultConfig returns the configuration used when no option overrides it.
func DefaultConfig() Config {
	return Config{
		Title:         "kite",
		WindowWidth:   1280,
		WindowHeight:  720,
		LogicalWidth:  1280,
		LogicalHeight: 720,
		ClearColor:    components.Black,
		ExitKey:       input.Key(input.KeyEscape, input.ModNone),
		FullscreenKey: input.Key(input.KeyEnter, input.ModAlt),
		TargetFPS:     60,
	}
}

// FrameInterval is the target duration of one frame, or zero when the frame
// rate is unbounded.
func (c Config) FrameInterval() time.Duration {
	if c.TargetFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TargetFPS)
}

// Option configures an Application during creation.
type Option func(*Config)

// WithConfig replaces the whole configuration. Options after it still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

// WithWindowSize sets the initial window size in pixels.
func WithWindowSize(width, height int) Option {
	return func(c *Config) {
		c.WindowWidth = width
		c.WindowHeight = height
	}
}

// WithLogicalSize sets the logical coordinate space.
func WithLogicalSize(width, height int) Option {
	return func(c *Config) {
		c.LogicalWidth = width
		c.LogicalHeight = height
	}
}

func WithClearColor(color components.Color) Option {
	return func(c *Config) {
		c.ClearColor = color
	}
}

// WithExitKey sets the binding that closes the application when released.
// input.KeyUnknown disables it.
func WithExitKey(key input.KeyModifier) Option {
	return func(c *Config) {
		c.ExitKey = key
	}
}

// WithFullscreenKey sets the binding that toggles fullscreen when released.
// input.KeyUnknown disables it.
func WithFullscreenKey(key input.KeyModifier) Option {
	return func(c *Config) {
		c.FullscreenKey = key
	}
}

func WithFullscreen(fullscreen bool) Option {
	return func(c *Config) {
		c.Fullscreen = fullscreen
	}
}

func WithTargetFPS(fps int) Option {
	return func(c *Config) {
		c.TargetFPS = fps
	}
}

func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.LogLevel = level
	}
}

func WithAssets(fsys fs.FS) Option {
	return func(c *Config) {
		c.Assets = fsys
	}
}

// WithFonts adds font keys to load before the first frame.
func WithFonts(keys ...string) Option {
	return func(c *Config) {
		c.Fonts = append(c.Fonts, keys...)
	}
}

// WithSpriteSheets adds sprite sheet keys to load before the first frame.
func WithSpriteSheets(keys ...string) Option {
	return func(c *Config) {
		c.SpriteSheets = append(c.SpriteSheets, keys...)
	}
}
