package birch

import "github.com/hajimehoshi/ebiten/v2"

// App is a game driven by Run.
type App interface {
	// Update advances the game by dt seconds.
	Update(dt float32) error
	// Draw renders a frame. The backend targets the screen for the
	// duration of the call.
	Draw(backend *EbitenBackend)
}

// StatsReporter is implemented by apps that want their batch counters
// shown when RunConfig.ShowStats is set.
type StatsReporter interface {
	Stats() BatchStats
}

// RunConfig holds optional parameters for Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height set the window size and the logical screen size.
	// Zero values default to 640x480.
	Width, Height int
	// Resizable lets the user resize the window. The logical screen then
	// follows the window size.
	Resizable bool
	// ShowStats draws FPS, TPS and, for a StatsReporter, batch counters.
	ShowStats bool
}

// Run opens a window and runs app until it returns an error or the window
// is closed. It blocks and must be called from the main goroutine.
func Run(app App, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(&gameShell{app: app, cfg: cfg, backend: NewEbitenBackend(nil)})
}

// gameShell adapts an App to ebiten.Game.
type gameShell struct {
	app     App
	cfg     RunConfig
	backend *EbitenBackend
}

func (g *gameShell) Update() error {
	return g.app.Update(1 / float32(ebiten.TPS()))
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.backend.SetTarget(screen)
	g.app.Draw(g.backend)
	if g.cfg.ShowStats {
		var stats BatchStats
		if r, ok := g.app.(StatsReporter); ok {
			stats = r.Stats()
		}
		DrawStats(screen, stats)
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.cfg.Resizable {
		return outsideWidth, outsideHeight
	}
	return g.cfg.Width, g.cfg.Height
}
