package main

import (
	"context"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/orrery/ecs"
	"github.com/plus3/orrery/ecs/debugui"
	debugui_ebiten "github.com/plus3/orrery/ecs/debugui/ebiten"
	"github.com/plus3/orrery/internal/config"
	"github.com/plus3/orrery/sim"
	"github.com/spf13/cobra"
)

// Game implements ebiten.Game on top of a Simulation.
type Game struct {
	sim      *sim.Simulation
	renderer *Renderer
	start    time.Time
	verbose  bool

	imgui      *debugui_ebiten.ImguiBackend
	inputState *ecs.Singleton[debugui.ImguiInputState]

	lastReport time.Time
}

func runViewer(cmd *cobra.Command, args []string) error {
	s, cfg, err := newSimulation()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	startMetrics(ctx, s, cfg.Metrics.Addr)

	game := newGame(s, cfg)
	log.Printf("tracking %q; left/right arrows change target, escape quits", s.Label())
	if err := ebiten.RunGame(game); err != nil {
		return err
	}
	return nil
}

func newGame(s *sim.Simulation, cfg config.Config) *Game {
	g := &Game{
		sim:      s,
		renderer: NewRenderer(s.Storage(), cfg.Camera.Lens, cfg.Meteors.Radius, cfg.Simulation.Seed),
		start:    time.Now(),
		verbose:  cfg.Verbose,
	}

	if cfg.DebugUI {
		debugui.RegisterComponents(s.Storage().Registry())
		backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		g.imgui = &backend
		g.inputState = ecs.NewSingleton[debugui.ImguiInputState](s.Storage())
		spawnDebugWindows(s)
		s.AddSystem(&debugui.ImguiSystem{})
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.inputState == nil || !g.inputState.Get().WantCaptureKeyboard {
		if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
			g.sim.Push(sim.FocusAdvance)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
			g.sim.Push(sim.FocusRetreat)
		}
	}

	elapsed := time.Since(g.start).Seconds()
	if g.imgui != nil {
		g.imgui.Frame(func() { g.sim.TickAt(elapsed) })
	} else {
		g.sim.TickAt(elapsed)
	}

	if g.verbose && time.Since(g.lastReport) >= time.Second {
		g.lastReport = time.Now()
		clock, field := g.sim.Clock(), g.sim.Meteors()
		log.Printf("t=%.1fs frame=%d %s meteors=%d", clock.Elapsed, clock.Frame, g.sim.Label(), field.Active)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.imgui != nil {
		g.imgui.DrawOver(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
