//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"mad-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type activityProvider interface {
	ActivityMask() []float32
}

// Overlay draws the brush cursor and optional debugging visuals on top of the
// base simulation.
type Overlay struct {
	sim          core.Sim
	scale        int
	showActivity bool

	maskImg *ebiten.Image
	maskBuf []byte
	pixel   *ebiten.Image

	brushX, brushY int
	brushRadius    int
	brushVisible   bool
	brushColor     color.RGBA

	pulse      *gween.Tween
	pulseValue float32
	pulseUp    bool
}

const (
	pulseLow      = 0.35
	pulseHigh     = 0.95
	pulseDuration = 0.6
	frameSeconds  = 1.0 / 60
)

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, brushColor: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	o.pulseUp = true
	o.pulse = gween.New(pulseLow, pulseHigh, pulseDuration, ease.InOutSine)
	o.pulseValue = pulseLow
	return o
}

// SetBrush positions the brush cursor in cell coordinates.
func (o *Overlay) SetBrush(x, y, radius int, visible bool, tint color.RGBA) {
	o.brushX, o.brushY = x, y
	o.brushRadius = radius
	o.brushVisible = visible
	o.brushColor = tint
}

// Update advances the cursor pulse and handles overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showActivity = !o.showActivity
	}
	value, finished := o.pulse.Update(frameSeconds)
	o.pulseValue = value
	if finished {
		o.pulseUp = !o.pulseUp
		if o.pulseUp {
			o.pulse = gween.New(pulseLow, pulseHigh, pulseDuration, ease.InOutSine)
		} else {
			o.pulse = gween.New(pulseHigh, pulseLow, pulseDuration, ease.InOutSine)
		}
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.showActivity {
		if provider, ok := o.sim.(activityProvider); ok {
			o.drawMask(screen, provider.ActivityMask(), size, color.RGBA{R: 255, G: 90, B: 200, A: 0})
		}
	}
	if o.brushVisible {
		o.drawBrush(screen)
	}
}

// drawBrush outlines the cells the brush would paint. The outline alpha
// follows the pulse tween.
func (o *Overlay) drawBrush(screen *ebiten.Image) {
	scale := float64(o.scaleOrOne())
	tint := o.brushColor
	col := color.NRGBA{R: tint.R, G: tint.G, B: tint.B, A: uint8(math.Round(255 * clamp01(float64(o.pulseValue))))}

	cx := (float64(o.brushX) + 0.5) * scale
	cy := (float64(o.brushY) + 0.5) * scale
	radius := (float64(o.brushRadius) + 0.5) * scale
	segments := 12 + 4*o.brushRadius
	if segments > 96 {
		segments = 96
	}
	thickness := math.Max(1, scale*0.4)
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		a0 := float64(i) * step
		a1 := a0 + step
		o.drawLine(screen, cx+math.Cos(a0)*radius, cy+math.Sin(a0)*radius, cx+math.Cos(a1)*radius, cy+math.Sin(a1)*radius, thickness, col)
	}
	o.drawPoint(screen, cx, cy, math.Max(1, scale*0.5), col)
}

func (o *Overlay) scaleOrOne() int {
	if o.scale <= 0 {
		return 1
	}
	return o.scale
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.Color) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.Color) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, size core.Size, tint color.RGBA) {
	total := size.W * size.H
	if len(mask) != total || total == 0 {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
	}
	const maxAlpha = 150.0

	for i := 0; i < total; i++ {
		base := i * 4
		intensity := clamp01(float64(mask[i]))
		if intensity == 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}
		alpha := math.Round(maxAlpha * intensity)
		// WritePixels expects premultiplied alpha.
		o.maskBuf[base+0] = scaleColorComponent(tint.R, alpha/255)
		o.maskBuf[base+1] = scaleColorComponent(tint.G, alpha/255)
		o.maskBuf[base+2] = scaleColorComponent(tint.B, alpha/255)
		o.maskBuf[base+3] = uint8(alpha)
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	scale := float64(o.scaleOrOne())
	op.GeoM.Scale(scale, scale)
	screen.DrawImage(o.maskImg, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
