//go:build !ebiten

package ui

import "mad-sand/internal/core"

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(core.Sim, int) *HUD { return nil }

// Selected reports no selection in the headless build.
func (h *HUD) Selected() (core.Material, bool) { return core.Material{}, false }

// Select is a no-op in the headless build.
func (h *HUD) Select(int) {}

// SetStatus is a no-op in the headless build.
func (h *HUD) SetStatus(string) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) bool { return false }

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
