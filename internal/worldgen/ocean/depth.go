// Package ocean refines water subtypes, labels continents, removes tiny
// islands, and turns small enclosed water bodies into lakes.
package ocean

import (
	"civmap-backend/internal/worldgen/geography"
	"civmap-backend/internal/worldgen/rng"
	"civmap-backend/internal/worldgen/tile"
)

// Depth bands over the distance below the shore, rescaled to [0, 255].
// The bands overlap; overlaps resolve to the band whose midpoint is
// closest, shallower band on ties, so refinement consumes no randomness.
type depthBand struct {
	lo, hi  int
	terrain tile.TerrainType
}

var depthBands = []depthBand{
	{0, 80, tile.TerrainCoast},
	{60, 180, tile.TerrainOcean},
	{150, 255, tile.TerrainDeepOcean},
}

// RefineDepth maps each ocean tile's elevation to a water subtype
func RefineDepth(g *tile.Grid, hm *geography.HeightMap) {
	shore := hm.ShoreLevel
	if shore < 1 {
		shore = 1
	}
	for i := range g.Tiles {
		t := &g.Tiles[i]
		if !t.Terrain.IsOcean() {
			continue
		}

		depth := (shore - t.Elevation) * 255 / shore
		if depth < 0 {
			depth = 0
		}
		if depth > 255 {
			depth = 255
		}
		t.Terrain = classifyDepth(depth)
	}
}

func classifyDepth(depth int) tile.TerrainType {
	best := tile.TerrainType("")
	bestScore := 1 << 30
	for _, b := range depthBands {
		if depth < b.lo || depth > b.hi {
			continue
		}
		mid := (b.lo + b.hi) / 2
		score := depth - mid
		if score < 0 {
			score = -score
		}
		if score < bestScore {
			best = b.terrain
			bestScore = score
		}
	}
	if best == "" {
		best = tile.TerrainDeepOcean
	}
	return best
}

// SmoothSubtypes flips ocean tiles toward a dominant neighboring subtype.
// A tile switches with probability 0.6 when two or more neighbors carry
// one different water subtype and it outnumbers the tile's own kind.
func SmoothSubtypes(g *tile.Grid, r *rng.Stream) {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := g.At(x, y)
			if !t.Terrain.IsOcean() {
				continue
			}

			counts := map[tile.TerrainType]int{}
			g.Neighbors8(x, y, func(n *tile.Tile) {
				if n.Terrain.IsOcean() {
					counts[n.Terrain]++
				}
			})

			var dominant tile.TerrainType
			dominantCount := 0
			for _, sub := range []tile.TerrainType{tile.TerrainCoast, tile.TerrainOcean, tile.TerrainDeepOcean} {
				if sub == t.Terrain {
					continue
				}
				if counts[sub] > dominantCount {
					dominant = sub
					dominantCount = counts[sub]
				}
			}

			if dominantCount >= 2 && dominantCount > counts[t.Terrain] && r.Chance(60) {
				t.Terrain = dominant
			}
		}
	}
}

// ApplyCoastDistance demotes water far from any land: coast beyond
// distance 3 becomes ocean with probability 0.4, ocean beyond distance 6
// becomes deep ocean with probability 0.3.
func ApplyCoastDistance(g *tile.Grid, r *rng.Stream) {
	dist := landDistance(g)

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := g.At(x, y)
			d := dist[y*g.Width+x]
			switch {
			case t.Terrain == tile.TerrainCoast && d > 3:
				if r.Chance(40) {
					t.Terrain = tile.TerrainOcean
				}
			case t.Terrain == tile.TerrainOcean && d > 6:
				if r.Chance(30) {
					t.Terrain = tile.TerrainDeepOcean
				}
			}
		}
	}
}

// landDistance computes a 4-connected BFS distance from the nearest land
// tile. Land itself reads 0.
func landDistance(g *tile.Grid) []int {
	const far = 1 << 30
	dist := make([]int, len(g.Tiles))
	queue := make([]int, 0, len(g.Tiles))

	for i := range g.Tiles {
		if g.Tiles[i].Terrain.IsLand() {
			dist[i] = 0
			queue = append(queue, i)
		} else {
			dist[i] = far
		}
	}

	for head := 0; head < len(queue); head++ {
		idx := queue[head]
		x, y := idx%g.Width, idx/g.Width
		for _, d := range tile.CardinalOffsets {
			nx, ny := x+d[0], y+d[1]
			if !g.InBounds(nx, ny) {
				continue
			}
			nidx := ny*g.Width + nx
			if dist[nidx] > dist[idx]+1 {
				dist[nidx] = dist[idx] + 1
				queue = append(queue, nidx)
			}
		}
	}
	return dist
}
