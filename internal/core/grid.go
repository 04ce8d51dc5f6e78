package core

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Moore lists the eight neighbour offsets, starting above and going clockwise.
var Moore = [8]Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// Grid stores a bounded 2D grid of values in row-major order.
type Grid[T any] struct {
	W, H int
	data []T
}

// NewGrid allocates a grid with the given dimensions. Non-positive dimensions
// produce an empty grid; callers validate sizes before allocating.
func NewGrid[T any](w, h int) *Grid[T] {
	if w <= 0 || h <= 0 {
		return &Grid[T]{}
	}
	return &Grid[T]{W: w, H: h, data: make([]T, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid[T]) Cells() []T { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid[T]) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// At returns the value at (x, y) and whether the coordinate was in bounds.
func (g *Grid[T]) At(x, y int) (T, bool) {
	if !g.InBounds(x, y) {
		var zero T
		return zero, false
	}
	return g.data[y*g.W+x], true
}

// Set writes v at (x, y). Out-of-bounds writes are dropped.
func (g *Grid[T]) Set(x, y int, v T) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.data[y*g.W+x] = v
	return true
}

// Neighbors appends the in-bounds Moore neighbours of (x, y) to dst.
func (g *Grid[T]) Neighbors(dst []Point, x, y int) []Point {
	for _, d := range Moore {
		nx, ny := x+d.X, y+d.Y
		if g.InBounds(nx, ny) {
			dst = append(dst, Point{X: nx, Y: ny})
		}
	}
	return dst
}

// Fill sets every cell to v.
func (g *Grid[T]) Fill(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}
