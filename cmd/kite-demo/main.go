// Command kite-demo opens a window showing anchored labels, shapes, a blinking
// effect and, optionally, a sprite loaded from disk.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/plus3/kite/app"
	"github.com/plus3/kite/assets"
	kiteebiten "github.com/plus3/kite/backend/ebiten"
	"github.com/plus3/kite/components"
	debugui_ebiten "github.com/plus3/kite/debugui/ebiten"
	"github.com/plus3/kite/ecs"
	"github.com/plus3/kite/input"
)

func main() {
	defaults := app.DefaultConfig()

	width := flag.Int("width", defaults.WindowWidth, "Window width in pixels.")
	height := flag.Int("height", defaults.WindowHeight, "Window height in pixels.")
	fullscreen := flag.Bool("fullscreen", false, "Start in fullscreen.")
	fps := flag.Int("fps", defaults.TargetFPS, "Target frames per second, 0 syncs with the display.")
	logLevel := flag.String("log-level", "info", "Log level: trace, debug, info, warn or error.")
	debug := flag.Bool("debug", false, "Enable the debug overlay, toggled with F1.")
	sprite := flag.String("sprite", "", "Image or sprite sheet to draw in the middle of the screen.")
	flag.Parse()

	opts := []app.Option{
		app.WithTitle("kite demo"),
		app.WithWindowSize(*width, *height),
		app.WithFullscreen(*fullscreen),
		app.WithTargetFPS(*fps),
		app.WithLogLevel(*logLevel),
		app.WithClearColor(components.DarkBlue),
	}
	if *sprite != "" {
		opts = append(opts, app.WithAssets(os.DirFS(filepath.Dir(*sprite))))
	}

	driver := kiteebiten.New()
	application := app.New(driver, opts...)
	ecs.RegisterComponent[clock](application.Registry())
	if *debug {
		debugui_ebiten.Attach(application, driver, input.Key(input.KeyF1, input.ModNone))
	}

	application.OnStart(func(a *app.Application) error {
		spawnScene(a.World())
		if *sprite != "" {
			if err := a.Assets().Preload(filepath.Base(*sprite)); err != nil {
				return err
			}
			spawnSprite(a.World(), filepath.Base(*sprite))
		}
		return a.Register(&clockSystem{})
	})

	if err := application.Run(); err != nil {
		log.Fatalf("kite-demo: %v", err)
	}
}

func spawnScene(w *ecs.World) {
	w.Spawn(
		components.Label{
			Text:      "kite",
			Font:      assets.FontBold,
			Size:      64,
			Alignment: components.Alignment{Horizontal: components.HorizontalCenter},
		},
		components.Anchor{Horizontal: components.HorizontalCenter, Vertical: components.Top},
		components.Position{Y: 40},
		components.White,
		components.Visible(10),
	)

	w.Spawn(
		components.Label{
			Text:      "press Esc to exit, Alt+Enter for fullscreen",
			Size:      20,
			Alignment: components.Alignment{Horizontal: components.HorizontalCenter, Vertical: components.Bottom},
		},
		components.Anchor{Horizontal: components.HorizontalCenter, Vertical: components.Bottom},
		components.Position{Y: -20},
		components.White,
		components.NewAlternateColor(components.White, components.Gray),
		components.Visible(10),
	)

	w.Spawn(
		components.Label{Font: assets.FontMono, Size: 16},
		clock{},
		components.Anchor{Horizontal: components.Left, Vertical: components.Top},
		components.Position{X: 10, Y: 10},
		components.LightGray,
		components.Visible(10),
	)

	w.Spawn(
		components.Position{X: 100, Y: 200},
		components.SolidBox{To: components.Position{X: 160, Y: 120}},
		components.Orange,
		components.Visible(0),
	)
	w.Spawn(
		components.Position{X: 300, Y: 200},
		components.Box{To: components.Position{X: 160, Y: 120}, Thickness: 3},
		components.Green,
		components.Visible(0),
	)
	w.Spawn(
		components.Position{X: 500, Y: 200},
		components.BorderBox{To: components.Position{X: 160, Y: 120}, Thickness: 4, Border: components.Gold},
		components.Purple,
		components.Visible(0),
	)
	w.Spawn(
		components.Position{X: 100, Y: 400},
		components.Line{To: components.Position{X: 560, Y: 80}, Thickness: 2},
		components.SkyBlue,
		components.Visible(1),
	)

	blink := components.NewAlternateColor(components.Red, components.Yellow)
	blink.Time = 400 * time.Millisecond
	w.Spawn(
		components.Position{X: -60, Y: -60},
		components.Anchor{Horizontal: components.Right, Vertical: components.Bottom},
		components.SolidBox{To: components.Position{X: 40, Y: 40}},
		components.Red,
		blink,
		components.Visible(2),
	)
}

func spawnSprite(w *ecs.World, file string) {
	w.Spawn(
		components.NewSprite(file, ""),
		components.Anchor{Horizontal: components.HorizontalCenter, Vertical: components.VerticalCenter},
		components.Position{},
		components.Visible(5),
	)
}

// clock tags the label that shows the frame counter.
type clock struct{}

type clockSystem struct {
	Labels ecs.Query[struct {
		*components.Label
		*clock
	}]
}

func (s *clockSystem) Priority() int { return ecs.PriorityNormal }

func (s *clockSystem) Update(w *ecs.World, dt time.Duration) {
	if dt <= 0 {
		return
	}
	frame := w.Frame()
	for row := range s.Labels.Values() {
		row.Text = fmt.Sprintf("frame %d  %5.1f fps  %d entities", frame.Number, 1/dt.Seconds(), w.Count())
	}
}
