package tile

// Grid owns the tile array for the duration of one generation
type Grid struct {
	Width  int
	Height int
	Tiles  []Tile
}

// NewGrid creates a grid with coordinates pre-filled
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			t := &g.Tiles[y*width+x]
			t.X = x
			t.Y = y
		}
	}
	return g
}

// InBounds reports whether (x, y) is on the map
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// At returns the tile at (x, y). Out-of-bounds access returns nil.
func (g *Grid) At(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.Tiles[y*g.Width+x]
}

// CardinalOffsets in mask order: N, E, S, W
var CardinalOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// MooreOffsets are the 8 surrounding cells
var MooreOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighbors4 visits the in-bounds cardinal neighbors of (x, y) in N, E, S, W
// order
func (g *Grid) Neighbors4(x, y int, visit func(n *Tile)) {
	for _, d := range CardinalOffsets {
		if n := g.At(x+d[0], y+d[1]); n != nil {
			visit(n)
		}
	}
}

// Neighbors8 visits the in-bounds Moore neighbors of (x, y)
func (g *Grid) Neighbors8(x, y int, visit func(n *Tile)) {
	for _, d := range MooreOffsets {
		if n := g.At(x+d[0], y+d[1]); n != nil {
			visit(n)
		}
	}
}

// CountLand returns the number of land tiles
func (g *Grid) CountLand() int {
	count := 0
	for i := range g.Tiles {
		if g.Tiles[i].Terrain.IsLand() {
			count++
		}
	}
	return count
}

// LandPercent returns the realized land fraction in percent
func (g *Grid) LandPercent() float64 {
	if len(g.Tiles) == 0 {
		return 0
	}
	return float64(g.CountLand()) * 100 / float64(len(g.Tiles))
}

// Chebyshev returns the chessboard distance between two cells
func Chebyshev(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
