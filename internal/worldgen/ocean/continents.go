package ocean

import (
	"civmap-backend/internal/worldgen/geography"
	"civmap-backend/internal/worldgen/intmap"
	"civmap-backend/internal/worldgen/tile"
)

// LabelContinents assigns every 4-connected land component a positive id,
// counting up from 1 in scan order. Water tiles get 0. Returns the number
// of continents.
func LabelContinents(g *tile.Grid) int {
	for i := range g.Tiles {
		g.Tiles[i].ContinentID = 0
	}

	isLand := func(x, y int) bool { return g.At(x, y).Terrain.IsLand() }
	visited := make([]bool, len(g.Tiles))
	next := 1

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			component := intmap.FloodFill(g.Width, g.Height, x, y, isLand, visited)
			if component == nil {
				continue
			}
			for _, idx := range component {
				g.Tiles[idx].ContinentID = next
			}
			next++
		}
	}
	return next - 1
}

// RemoveTinyIslands converts land specks back to water. A component at or
// below the size threshold whose cardinal neighbors include four or more
// distinct ocean tiles becomes
// the majority water subtype of its surroundings. Continents must be
// relabelled afterwards.
func RemoveTinyIslands(g *tile.Grid, threshold int) int {
	isLand := func(x, y int) bool { return g.At(x, y).Terrain.IsLand() }
	visited := make([]bool, len(g.Tiles))
	removed := 0

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			component := intmap.FloodFill(g.Width, g.Height, x, y, isLand, visited)
			if component == nil || len(component) > threshold {
				continue
			}

			oceanNeighbors := map[int]bool{}
			for _, idx := range component {
				cx, cy := idx%g.Width, idx/g.Width
				g.Neighbors4(cx, cy, func(n *tile.Tile) {
					if n.Terrain.IsOcean() {
						oceanNeighbors[n.Y*g.Width+n.X] = true
					}
				})
			}
			if len(oceanNeighbors) < 4 {
				continue
			}

			for _, idx := range component {
				cx, cy := idx%g.Width, idx/g.Width
				t := &g.Tiles[idx]
				t.Terrain = majorityOceanNeighbor(g, cx, cy)
				t.ContinentID = 0
				t.RiverMask = 0
				t.Resource = ""
			}
			removed++
		}
	}
	return removed
}

// majorityOceanNeighbor picks the most common water subtype among the
// Moore-8 neighbors, falling back to plain ocean beside none
func majorityOceanNeighbor(g *tile.Grid, x, y int) tile.TerrainType {
	counts := map[tile.TerrainType]int{}
	g.Neighbors8(x, y, func(n *tile.Tile) {
		if n.Terrain.IsOcean() {
			counts[n.Terrain]++
		}
	})

	best := tile.TerrainOcean
	bestCount := 0
	for _, sub := range []tile.TerrainType{tile.TerrainCoast, tile.TerrainOcean, tile.TerrainDeepOcean} {
		if counts[sub] > bestCount {
			best = sub
			bestCount = counts[sub]
		}
	}
	return best
}

// CreateLakes turns enclosed water bodies smaller than the threshold into
// lakes. A lake inherits the continent id of the nearest land cell found
// by expanding square perimeters up to radius 5. Frozen bodies never
// become lakes.
func CreateLakes(g *tile.Grid, tm *geography.TemperatureMap, sizeThreshold int) int {
	isWater := func(x, y int) bool { return g.At(x, y).Terrain.IsOcean() }
	visited := make([]bool, len(g.Tiles))
	created := 0

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			body := intmap.FloodFill(g.Width, g.Height, x, y, isWater, visited)
			if body == nil || len(body) >= sizeThreshold {
				continue
			}

			frozen := false
			for _, idx := range body {
				if tm.HasType(idx%g.Width, idx/g.Width, tile.TempFrozen) {
					frozen = true
					break
				}
			}
			if frozen {
				continue
			}

			continentID := nearestLandContinent(g, body)
			if continentID == 0 {
				continue
			}
			for _, idx := range body {
				t := &g.Tiles[idx]
				t.Terrain = tile.TerrainLake
				t.ContinentID = continentID
			}
			created++
		}
	}
	return created
}

// nearestLandContinent searches square perimeters of growing radius, up
// to 5, around every cell of the body in body order for a labelled land
// tile; beyond that it takes the chessboard-nearest land from the first cell
func nearestLandContinent(g *tile.Grid, body []int) int {
	for radius := 1; radius <= 5; radius++ {
		for _, idx := range body {
			cx, cy := idx%g.Width, idx/g.Width
			if id := landOnPerimeter(g, cx, cy, radius); id != 0 {
				return id
			}
		}
	}
	// Fallback: nearest land anywhere by chessboard distance
	bestID, bestDist := 0, 1<<30
	cx, cy := body[0]%g.Width, body[0]/g.Width
	for i := range g.Tiles {
		t := &g.Tiles[i]
		if t.ContinentID == 0 || !t.Terrain.IsLand() {
			continue
		}
		d := tile.Chebyshev(cx, cy, t.X, t.Y)
		if d < bestDist {
			bestDist = d
			bestID = t.ContinentID
		}
	}
	return bestID
}

// landOnPerimeter scans the square ring at the given radius for land
func landOnPerimeter(g *tile.Grid, cx, cy, radius int) int {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx > -radius && dx < radius && dy > -radius && dy < radius {
				continue
			}
			t := g.At(cx+dx, cy+dy)
			if t != nil && t.Terrain.IsLand() && t.ContinentID > 0 {
				return t.ContinentID
			}
		}
	}
	return 0
}
