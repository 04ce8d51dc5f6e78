//go:build !ebiten

package ui

import (
	"image/color"

	"mad-sand/internal/core"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim, int) *Overlay { return &Overlay{} }

// SetBrush is a no-op in headless builds.
func (o *Overlay) SetBrush(int, int, int, bool, color.RGBA) {}

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
