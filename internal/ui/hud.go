//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"mad-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

// HUD renders the material picker and parameter panel to the right of the
// simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	materials []materialButton
	selected  int

	controls     []hudControlState
	groups       []string
	group        int
	groupTop     int
	prevRect     image.Rectangle
	nextRect     image.Rectangle
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
	title        string
	status       string

	pixel *ebiten.Image
}

type materialButton struct {
	material core.Material
	swatch   color.RGBA
	rect     image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.title = buildTitle(sim)
	if painter, ok := sim.(core.Painter); ok {
		var palette []color.RGBA
		if provider, ok := sim.(paletteProvider); ok {
			palette = provider.Palette()
		}
		for _, m := range painter.Materials() {
			btn := materialButton{material: m, swatch: color.RGBA{R: 200, G: 200, B: 200, A: 255}}
			if int(m.ID) < len(palette) {
				btn.swatch = palette[m.ID]
			}
			h.materials = append(h.materials, btn)
		}
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
	}
	h.assignGroups()
	h.layout()
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	return h
}

// Selected returns the material currently chosen in the picker.
func (h *HUD) Selected() (core.Material, bool) {
	if h == nil || len(h.materials) == 0 {
		return core.Material{}, false
	}
	return h.materials[h.selected].material, true
}

// Select moves the picker selection by delta entries, wrapping around.
func (h *HUD) Select(delta int) {
	if h == nil || len(h.materials) == 0 {
		return
	}
	n := len(h.materials)
	h.selected = ((h.selected+delta)%n + n) % n
}

// SetStatus sets the one-line status shown under the title.
func (h *HUD) SetStatus(s string) {
	if h != nil {
		h.status = s
	}
}

// Update refreshes the cached parameter snapshot from the simulation and handles
// HUD interactions. It reports whether the cursor is over the panel.
func (h *HUD) Update(panelOffsetX int) bool {
	if h == nil {
		return false
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
	} else {
		h.snapshot = provider.Parameters()
	}
	h.refreshControlValues()
	return h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	size := h.sim.Size()
	height := size.H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dx() != h.width || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawMaterials()
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil {
		return "Controls"
	}
	name := sim.Name()
	if name == "" {
		return "Controls"
	}
	return fmt.Sprintf("%s%s Controls", strings.ToUpper(name[:1]), name[1:])
}

// assignGroups maps each control onto the snapshot group that lists its key.
func (h *HUD) assignGroups() {
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok || len(h.controls) == 0 {
		return
	}
	owner := map[string]string{}
	for _, g := range provider.Parameters().Groups {
		for _, p := range g.Params {
			owner[p.Key] = g.Name
		}
	}
	seen := map[string]bool{}
	for i := range h.controls {
		name := owner[h.controls[i].control.Key]
		h.controls[i].group = name
		if !seen[name] {
			seen[name] = true
			h.groups = append(h.groups, name)
		}
	}
}

func (h *HUD) visible(state *hudControlState) bool {
	if len(h.groups) == 0 {
		return true
	}
	return state.group == h.groups[h.group]
}

func (h *HUD) refreshControlValues() {
	if len(h.controls) == 0 {
		return
	}
	for i := range h.controls {
		state := &h.controls[i]
		param, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			state.value = "--"
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				state.hasValue = false
				state.value = "--"
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				state.hasValue = false
				state.value = "--"
				continue
			}
			state.floatValue = parsed
			state.value = h.formatFloat(state.control, parsed)
			state.hasValue = true
		default:
			state.hasValue = false
			state.value = "--"
		}
	}
}

func (h *HUD) handleInput() bool {
	if h.width <= 0 {
		return false
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return false
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	px := mx - h.panelOffsetX
	for i := range h.materials {
		if pointInRect(px, my, h.materials[i].rect) {
			h.selected = i
			return true
		}
	}
	if len(h.groups) > 1 {
		if pointInRect(px, my, h.prevRect) {
			h.group = (h.group + len(h.groups) - 1) % len(h.groups)
			return true
		}
		if pointInRect(px, my, h.nextRect) {
			h.group = (h.group + 1) % len(h.groups)
			return true
		}
	}
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue || !h.visible(state) {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return true
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return true
		}
	}
	return true
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	if state == nil || direction == 0 {
		return
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return
		}
		step := int(math.Round(state.control.Step))
		if step <= 0 {
			step = 1
		}
		target := int(math.Round(state.control.Clamp(float64(state.intValue + direction*step))))
		if target == state.intValue {
			return
		}
		if h.intSetter.SetIntParameter(state.control.Key, target) {
			state.intValue = target
			state.floatValue = float64(target)
			state.value = strconv.Itoa(target)
		}
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return
		}
		step := state.control.Step
		if step <= 0 {
			step = 0.05
		}
		target := state.control.Clamp(state.floatValue + float64(direction)*step)
		if math.Abs(target-state.floatValue) < 1e-9 {
			return
		}
		if h.floatSetter.SetFloatParameter(state.control.Key, target) {
			state.floatValue = target
			state.value = h.formatFloat(state.control, target)
		}
	}
}

func (h *HUD) drawMaterials() {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if h.status != "" {
		text.Draw(h.panel, h.status, face, panelPadding, panelPadding+headerBaseline+statusSpacing, color.RGBA{R: 150, G: 150, B: 160, A: 255})
	}
	for i, btn := range h.materials {
		r := btn.rect
		h.fillRect(r, color.RGBA{R: 28, G: 30, B: 36, A: 255})
		if i == h.selected {
			h.strokeRect(r, color.RGBA{R: 240, G: 240, B: 250, A: 255})
		}
		swatch := image.Rect(r.Min.X+3, r.Min.Y+3, r.Min.X+3+swatchSize, r.Max.Y-3)
		h.fillRect(swatch, btn.swatch)
		text.Draw(h.panel, btn.material.Name, face, swatch.Max.X+4, r.Max.Y-4, color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
	if len(h.materials) > 0 {
		m := h.materials[h.selected].material
		y := h.materials[len(h.materials)-1].rect.Max.Y + labelBaseline - 4
		text.Draw(h.panel, m.Description, face, panelPadding, y, color.RGBA{R: 160, G: 160, B: 170, A: 255})
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, h.groupTop+labelBaseline, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		return
	}
	if len(h.groups) > 0 {
		name := h.groups[h.group]
		bounds := text.BoundString(face, name)
		x := (h.width - bounds.Dx()) / 2
		text.Draw(h.panel, name, face, x, h.groupTop+labelBaseline, color.RGBA{R: 200, G: 200, B: 210, A: 255})
		h.drawButton(h.prevRect, "<", len(h.groups) > 1)
		h.drawButton(h.nextRect, ">", len(h.groups) > 1)
	}
	row := 0
	for i := range h.controls {
		state := &h.controls[i]
		if !h.visible(state) {
			continue
		}
		top := h.groupTop + (row+1)*lineHeight
		row++
		h.layoutControl(state, top)

		labelY := top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", state.hasValue && h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", state.hasValue && h.canAdjust(state, 1))
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if state == nil || direction == 0 {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return false
		}
		step := int(math.Round(state.control.Step))
		if step <= 0 {
			step = 1
		}
		target := float64(state.intValue + direction*step)
		return state.control.Clamp(target) == target
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return false
		}
		step := state.control.Step
		if step <= 0 {
			step = 0.05
		}
		target := state.floatValue + float64(direction)*step
		return math.Abs(state.control.Clamp(target)-state.floatValue) > 1e-9
	default:
		return false
	}
}

func (h *HUD) fillRect(rect image.Rectangle, col color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) strokeRect(rect image.Rectangle, col color.RGBA) {
	h.fillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), col)
	h.fillRect(image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), col)
	h.fillRect(image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), col)
	h.fillRect(image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), col)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

// layout places the material grid and the group selector. Control rows are
// placed per frame because only the active group is shown.
func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	top := panelPadding + headerBaseline + statusSpacing + 8
	colWidth := (h.width - 2*panelPadding) / materialColumns
	for i := range h.materials {
		col := i % materialColumns
		row := i / materialColumns
		x := panelPadding + col*colWidth
		y := top + row*materialHeight
		h.materials[i].rect = image.Rect(x, y, x+colWidth-2, y+materialHeight-2)
	}
	rows := (len(h.materials) + materialColumns - 1) / materialColumns
	h.groupTop = top + rows*materialHeight + infoSpacing

	buttonY := h.groupTop + (lineHeight-buttonSize)/2
	h.prevRect = image.Rect(panelPadding, buttonY, panelPadding+buttonSize, buttonY+buttonSize)
	h.nextRect = image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
}

func (h *HUD) layoutControl(state *hudControlState, top int) {
	buttonY := top + (lineHeight-buttonSize)/2
	state.plusRect = image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
	state.minusRect = image.Rect(state.plusRect.Min.X-buttonGap-buttonSize, buttonY, state.plusRect.Min.X-buttonGap, buttonY+buttonSize)
}

func (h *HUD) formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	var precision int
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	default:
		precision = 1
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	group   string
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding    = 12
	lineHeight      = 28
	buttonSize      = 20
	buttonGap       = 6
	headerBaseline  = 18
	labelBaseline   = 18
	statusSpacing   = 16
	infoSpacing     = 24
	materialColumns = 2
	materialHeight  = 20
	swatchSize      = 12
)
