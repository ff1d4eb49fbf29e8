package island

import (
	"civmap-backend/internal/worldgen/tile"
)

// createIsland carves a connected shape of exactly size cells into the
// scratch buffer. Growth starts from a single seed at the grid center and
// repeatedly picks random cells inside the current bounding box, keeping
// any unplaced cell with at least one elevated neighbor. When the shape
// is within 10% of completion remaining holes with four or more elevated
// neighbors are filled as well.
func (gen *Generator) createIsland(size int) bool {
	w, h := gen.g.Width, gen.g.Height
	for i := range gen.shape {
		gen.shape[i] = false
	}
	gen.holesFilled = false

	cx, cy := w/2, h/2
	gen.shape[cy*w+cx] = true
	gen.shapeCount = 1
	gen.minX, gen.maxX = cx-1, cx+1
	gen.minY, gen.maxY = cy-1, cy+1
	gen.clampBounds()

	remaining := size - 1
	failsafe := size * 50
	for remaining > 0 && failsafe > 0 {
		failsafe--

		if !gen.holesFilled && remaining*10 < size {
			remaining -= gen.fillHoles(remaining)
			gen.holesFilled = true
			continue
		}

		x := gen.r.Range(gen.minX, gen.maxX+1)
		y := gen.r.Range(gen.minY, gen.maxY+1)
		if gen.shape[y*w+x] {
			continue
		}
		if gen.elevatedNeighbors(x, y) < 1 {
			continue
		}

		gen.shape[y*w+x] = true
		gen.shapeCount++
		remaining--
		gen.expandBounds(x, y)
	}

	return remaining <= 0
}

// elevatedNeighbors counts placed Moore-8 neighbors in the scratch shape
func (gen *Generator) elevatedNeighbors(x, y int) int {
	w, h := gen.g.Width, gen.g.Height
	count := 0
	for _, d := range tile.MooreOffsets {
		nx, ny := x+d[0], y+d[1]
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			continue
		}
		if gen.shape[ny*w+nx] {
			count++
		}
	}
	return count
}

// fillHoles sweeps the bounding box once, claiming unplaced cells
// enclosed by four or more elevated neighbors, at most limit of them.
// Returns the number filled.
func (gen *Generator) fillHoles(limit int) int {
	w := gen.g.Width
	filled := 0
	for y := gen.minY; y <= gen.maxY && filled < limit; y++ {
		for x := gen.minX; x <= gen.maxX && filled < limit; x++ {
			if gen.shape[y*w+x] {
				continue
			}
			if gen.elevatedNeighbors(x, y) >= 4 {
				gen.shape[y*w+x] = true
				gen.shapeCount++
				filled++
			}
		}
	}
	return filled
}

func (gen *Generator) expandBounds(x, y int) {
	if x-1 < gen.minX {
		gen.minX = x - 1
	}
	if x+1 > gen.maxX {
		gen.maxX = x + 1
	}
	if y-1 < gen.minY {
		gen.minY = y - 1
	}
	if y+1 > gen.maxY {
		gen.maxY = y + 1
	}
	gen.clampBounds()
}

// clampBounds keeps growth one cell clear of the map border
func (gen *Generator) clampBounds() {
	if gen.minX < 1 {
		gen.minX = 1
	}
	if gen.minY < 1 {
		gen.minY = 1
	}
	if gen.maxX > gen.g.Width-2 {
		gen.maxX = gen.g.Width - 2
	}
	if gen.maxY > gen.g.Height-2 {
		gen.maxY = gen.g.Height - 2
	}
}

// placeIsland shifts the carved shape to a random free stretch of ocean
// and commits it: shape cells become Grassland tagged with the running
// island index at the base island elevation. Returns false when no
// collision-free offset exists.
func (gen *Generator) placeIsland() bool {
	w := gen.g.Width

	loX, hiX := 1-gen.minX, gen.g.Width-2-gen.maxX
	loY, hiY := 1-gen.minY, gen.g.Height-2-gen.maxY
	if hiX < loX || hiY < loY {
		return false
	}

	const placementTries = 50
	for try := 0; try < placementTries; try++ {
		dx := gen.r.Range(loX, hiX+1)
		dy := gen.r.Range(loY, hiY+1)

		if !gen.fits(dx, dy) {
			continue
		}

		gen.isleMinX, gen.isleMaxX = gen.minX+dx, gen.maxX+dx
		gen.isleMinY, gen.isleMaxY = gen.minY+dy, gen.maxY+dy
		for y := gen.minY; y <= gen.maxY; y++ {
			for x := gen.minX; x <= gen.maxX; x++ {
				if !gen.shape[y*w+x] {
					continue
				}
				t := gen.g.At(x+dx, y+dy)
				t.Terrain = tile.TerrainGrassland
				t.ContinentID = gen.isleIndex
				t.Elevation = islandElevation
				gen.hm.Set(x+dx, y+dy, islandElevation)
			}
		}
		return true
	}
	return false
}

// fits reports whether the shifted shape lands on untouched deep ocean
// with one cell of clearance from other islands
func (gen *Generator) fits(dx, dy int) bool {
	w := gen.g.Width
	for y := gen.minY; y <= gen.maxY; y++ {
		for x := gen.minX; x <= gen.maxX; x++ {
			if !gen.shape[y*w+x] {
				continue
			}
			nt := gen.g.At(x+dx, y+dy)
			if nt == nil || nt.Terrain != tile.TerrainDeepOcean {
				return false
			}
			// Clearance keeps separate islands from touching
			touching := false
			gen.g.Neighbors8(x+dx, y+dy, func(n *tile.Tile) {
				if n.Terrain.IsLand() {
					touching = true
				}
			})
			if touching {
				return false
			}
		}
	}
	return true
}
