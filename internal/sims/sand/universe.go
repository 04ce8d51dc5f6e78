package sand

import (
	"errors"
	"fmt"

	"mad-sand/internal/core"
)

// ErrInvalidSize is returned when a universe is requested with non-positive
// dimensions.
var ErrInvalidSize = errors.New("sand: width and height must be positive")

// Cell is one grid slot: a species plus two auxiliary bytes whose meaning is
// defined per species.
type Cell struct {
	Species Species
	Ra      uint8
	Rb      uint8
}

// Out-of-bounds coordinates read as this cell.
var boundaryCell = Cell{Species: Wall}

// Universe owns the grid, the per-tick visit stamps and the random source.
type Universe struct {
	cfg Config

	w, h int

	cells   *core.Grid[Cell]
	stamps  *core.Grid[uint32]
	display []uint8

	// generation is bumped once per tick; a stamp equal to it means the cell
	// was already written during the current tick.
	generation uint32
	ticks      uint64

	rng    core.Source
	ownRNG bool
}

// New returns an empty universe with the provided dimensions using defaults.
func New(w, h int) (*Universe, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns an empty universe seeded from cfg.Seed.
func NewWithConfig(cfg Config) (*Universe, error) {
	u, err := NewWithSource(cfg, core.NewRNG(cfg.Seed))
	if err != nil {
		return nil, err
	}
	u.ownRNG = true
	return u, nil
}

// NewWithSource returns an empty universe drawing randomness from src.
func NewWithSource(cfg Config, src core.Source) (*Universe, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, cfg.Width, cfg.Height)
	}
	if src == nil {
		src = core.NewRNG(cfg.Seed)
	}
	cfg.Params.normalize()
	u := &Universe{
		cfg:     cfg,
		w:       cfg.Width,
		h:       cfg.Height,
		cells:   core.NewGrid[Cell](cfg.Width, cfg.Height),
		stamps:  core.NewGrid[uint32](cfg.Width, cfg.Height),
		display: make([]uint8, cfg.Width*cfg.Height),
		rng:     src,
	}
	return u, nil
}

// Name returns the simulation identifier.
func (u *Universe) Name() string { return "sand" }

// Size reports the grid dimensions.
func (u *Universe) Size() core.Size { return core.Size{W: u.w, H: u.h} }

// Width reports the number of columns.
func (u *Universe) Width() int { return u.w }

// Height reports the number of rows.
func (u *Universe) Height() int { return u.h }

// Ticks reports how many ticks have completed since construction or Reset.
func (u *Universe) Ticks() uint64 { return u.ticks }

// Config returns a copy of the active configuration.
func (u *Universe) Config() Config { return u.cfg }

// Cells exposes the display buffer: species in the low five bits, a shade
// derived from Ra in the high three.
func (u *Universe) Cells() []uint8 { return u.display }

// Cell returns a copy of the cell at (x, y), or a Wall cell when out of bounds.
func (u *Universe) Cell(x, y int) Cell {
	c, ok := u.cells.At(x, y)
	if !ok {
		return boundaryCell
	}
	return c
}

// SetCell writes a cell in place. Out-of-bounds coordinates and species
// outside the enumeration are ignored.
func (u *Universe) SetCell(x, y int, species Species, ra, rb uint8) {
	if !species.Valid() {
		return
	}
	u.put(x, y, Cell{Species: species, Ra: ra, Rb: rb})
}

// Neighbors returns the in-bounds coordinates adjacent to (x, y).
func (u *Universe) Neighbors(x, y int) []core.Point {
	return u.cells.Neighbors(make([]core.Point, 0, 8), x, y)
}

// Count returns how many cells currently hold s.
func (u *Universe) Count(s Species) int {
	n := 0
	for _, c := range u.cells.Cells() {
		if c.Species == s {
			n++
		}
	}
	return n
}

// Census tallies every species present on the grid.
func (u *Universe) Census() map[Species]int {
	out := make(map[Species]int)
	for _, c := range u.cells.Cells() {
		out[c.Species]++
	}
	return out
}

// ActivityMask reports 1 for every cell written during the latest tick and 0
// elsewhere. The overlay uses it to show where the grid is still moving.
func (u *Universe) ActivityMask() []float32 {
	stamps := u.stamps.Cells()
	mask := make([]float32, len(stamps))
	if u.generation == 0 {
		return mask
	}
	for i, g := range stamps {
		if g == u.generation {
			mask[i] = 1
		}
	}
	return mask
}

// Reset clears the grid, reseeds the owned RNG and builds the configured
// scene. A zero seed falls back to the configured one.
func (u *Universe) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = u.cfg.Seed
	}
	if u.ownRNG {
		u.rng = core.NewRNG(effective)
	}
	u.cells.Fill(Cell{})
	u.stamps.Fill(0)
	u.generation = 0
	u.ticks = 0
	for i := range u.display {
		u.display[i] = 0
	}
	if u.cfg.Scene == SceneDunes {
		u.buildDunes()
	}
}

// Step advances the simulation by one tick.
func (u *Universe) Step() { u.Tick() }

// Materials lists the paintable species for menus.
func (u *Universe) Materials() []core.Material {
	catalog := Catalog()
	out := make([]core.Material, len(catalog))
	for i, m := range catalog {
		out[i] = core.Material{ID: uint8(m.Species), Name: m.Name, Description: m.Description}
	}
	return out
}

// PaintMaterial paints by raw material id; unknown ids are ignored.
func (u *Universe) PaintMaterial(x, y, radius int, id uint8) {
	s := Species(id)
	if !s.Valid() {
		return
	}
	u.Paint(x, y, radius, s)
}

func (u *Universe) at(x, y int) Cell { return u.Cell(x, y) }

func (u *Universe) put(x, y int, c Cell) {
	if !u.cells.Set(x, y, c) {
		return
	}
	u.display[u.cells.Index(x, y)] = displayValue(c)
}

// commit writes c and marks the cell as handled for this tick.
func (u *Universe) commit(x, y int, c Cell) {
	if !u.cells.InBounds(x, y) {
		return
	}
	u.put(x, y, c)
	u.stamps.Set(x, y, u.generation)
}

func (u *Universe) stamped(x, y int) bool {
	v, ok := u.stamps.At(x, y)
	return ok && u.generation != 0 && v == u.generation
}

// swap exchanges two cells and stamps both.
func (u *Universe) swap(x1, y1, x2, y2 int) {
	a := u.at(x1, y1)
	b := u.at(x2, y2)
	u.commit(x1, y1, b)
	u.commit(x2, y2, a)
}

func init() {
	core.Register("sand", func(cfg map[string]string) (core.Sim, error) {
		c := FromMap(cfg)
		if _, ok := cfg["scene"]; !ok {
			c.Scene = SceneDunes
		}
		u, err := NewWithConfig(c)
		if err != nil {
			return nil, err
		}
		return u, nil
	})
}
