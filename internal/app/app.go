//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"time"

	"mad-sand/internal/core"
	"mad-sand/internal/render"
	"mad-sand/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

var binaryPalette = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}

const maxBrushRadius = 32

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	brush   core.Painter
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	stepper *core.FixedStep
	palette []color.RGBA

	scale    int
	hudWidth int
	radius   int
	paused   bool
	tickOnce bool
	seed     int64
	ticks    uint64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	g := &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		stepper:  core.NewFixedStep(cfg.TPS),
		palette:  binaryPalette,
		scale:    max(cfg.Scale, 1),
		hudWidth: max(cfg.HUDWidth, 0),
		radius:   clampRadius(cfg.Radius),
		seed:     cfg.Seed,
	}
	if p, ok := sim.(core.Painter); ok {
		g.brush = p
	}
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.ticks = 0
	log.WithFields(log.Fields{"sim": g.sim.Name(), "seed": seed}).Info("reset")
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		log.WithField("paused", g.paused).Debug("toggle pause")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			g.hud.Select(-1)
		} else {
			g.hud.Select(1)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.stepper.SetTPS(g.stepper.TPS() + 10)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.stepper.SetTPS(max(g.stepper.TPS()-10, 1))
	}
	g.updateRadius()

	viewW, viewH := g.viewSize()
	overPanel := g.hud.Update(viewW)
	g.overlay.Update()
	g.updateBrush(viewW, viewH, overPanel)

	due := g.stepper.Due()
	switch {
	case g.tickOnce:
		g.step()
		g.tickOnce = false
	case !g.paused:
		for i := 0; i < due; i++ {
			g.step()
		}
	}
	g.hud.SetStatus(g.status())
	return nil
}

func (g *Game) step() {
	g.sim.Step()
	g.ticks++
}

func (g *Game) updateRadius() {
	delta := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		delta--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		delta++
	}
	if _, wy := ebiten.Wheel(); wy > 0 {
		delta++
	} else if wy < 0 {
		delta--
	}
	if delta != 0 {
		g.radius = clampRadius(g.radius + delta)
	}
}

// updateBrush moves the cursor ring and paints while the left button is held
// inside the simulation view.
func (g *Game) updateBrush(viewW, viewH int, overPanel bool) {
	mx, my := ebiten.CursorPosition()
	inside := !overPanel && mx >= 0 && my >= 0 && mx < viewW && my < viewH
	cx, cy := mx/g.scale, my/g.scale

	mat, ok := g.hud.Selected()
	tint := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if ok && int(mat.ID) < len(g.palette) {
		tint = g.palette[mat.ID]
	}
	g.overlay.SetBrush(cx, cy, g.radius, inside && g.brush != nil, tint)

	if !inside || g.brush == nil || !ok {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		log.WithFields(log.Fields{"material": mat.Name, "x": cx, "y": cy, "radius": g.radius}).Debug("paint")
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.brush.PaintMaterial(cx, cy, g.radius, mat.ID)
	}
}

func (g *Game) status() string {
	state := "running"
	if g.paused {
		state = "paused"
	}
	return fmt.Sprintf("%s  t=%d  r=%d  %dtps", state, g.ticks, g.radius, g.stepper.TPS())
}

func (g *Game) viewSize() (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	viewW, _ := g.viewSize()
	g.hud.Draw(screen, viewW, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.viewSize()
	return w + g.hudWidth, h
}

func clampRadius(r int) int {
	if r < 0 {
		return 0
	}
	if r > maxBrushRadius {
		return maxBrushRadius
	}
	return r
}
