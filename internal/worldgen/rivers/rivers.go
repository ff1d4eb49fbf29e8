// Package rivers grows downhill river networks, softens the terrain they
// cross, and resolves the final river masks.
package rivers

import (
	"math"

	"civmap-backend/internal/worldgen/rng"
	"civmap-backend/internal/worldgen/ruleset"
	"civmap-backend/internal/worldgen/tile"
)

const (
	maxPathLength = 30

	// Scoring for candidate next steps
	oceanScore        = 1000
	suitableBonus     = 50
	mountainousHard   = 80
	mountainousSource = 20

	// Local density gate: share of Moore-5 neighborhood already rivered
	// above which a start candidate is rejected
	densityRadius  = 5
	densityPercent = 25
)

// Generate places up to max(3, sqrt(w*h)/8) river networks. Source
// candidates need elevation above 150 on mountainous terrain; when too
// few qualify the finder falls back to bare elevation thresholds of 180,
// then 160.
func Generate(g *tile.Grid, rs *ruleset.Ruleset, r *rng.Stream) int {
	target := int(math.Sqrt(float64(g.Width*g.Height))) / 8
	if target < 3 {
		target = 3
	}

	starts := findStarts(g, rs, r, target)

	networks := 0
	for _, idx := range starts {
		if networks >= target {
			break
		}
		if tooDense(g, idx%g.Width, idx/g.Width) {
			continue
		}
		if growNetwork(g, rs, r, idx%g.Width, idx/g.Width) {
			networks++
		}
	}

	ResolveMasks(g)
	return networks
}

// findStarts collects shuffled source candidates across the three
// threshold passes
func findStarts(g *tile.Grid, rs *ruleset.Ruleset, r *rng.Stream, target int) []int {
	primary := func(t *tile.Tile) bool {
		return t.Terrain.IsLand() && t.Elevation > 150 &&
			rs.Properties(t.Terrain).Mountainous > mountainousSource
	}
	fallbacks := []func(t *tile.Tile) bool{
		func(t *tile.Tile) bool { return t.Terrain.IsLand() && t.Elevation > 180 },
		func(t *tile.Tile) bool { return t.Terrain.IsLand() && t.Elevation > 160 },
	}

	candidates := collect(g, primary)
	r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	for _, fb := range fallbacks {
		if len(candidates) >= target {
			break
		}
		extra := collect(g, fb)
		r.Shuffle(len(extra), func(i, j int) { extra[i], extra[j] = extra[j], extra[i] })
		candidates = append(candidates, extra...)
	}
	return candidates
}

func collect(g *tile.Grid, keep func(t *tile.Tile) bool) []int {
	var out []int
	for i := range g.Tiles {
		if keep(&g.Tiles[i]) {
			out = append(out, i)
		}
	}
	return out
}

// tooDense rejects a start when more than densityPercent of the tiles
// within the Moore neighborhood already carry rivers
func tooDense(g *tile.Grid, x, y int) bool {
	total, rivered := 0, 0
	for dy := -densityRadius; dy <= densityRadius; dy++ {
		for dx := -densityRadius; dx <= densityRadius; dx++ {
			t := g.At(x+dx, y+dy)
			if t == nil {
				continue
			}
			total++
			if t.RiverMask != 0 {
				rivered++
			}
		}
	}
	return rivered*100 > total*densityPercent
}

// growNetwork walks downhill from the source, marking tiles and softening
// terrain, until it meets the ocean or a dead end. Existing river tiles
// are never stepped onto.
// Returns false when the path never leaves its source tile.
func growNetwork(g *tile.Grid, rs *ruleset.Ruleset, r *rng.Stream, x, y int) bool {
	start := g.At(x, y)
	if start.RiverMask != 0 {
		return false
	}

	visited := map[int]bool{y*g.Width + x: true}
	path := []*tile.Tile{start}

	cx, cy := x, y
	for len(path) <= maxPathLength {
		next := pickStep(g, rs, r, cx, cy, visited)
		if next == nil {
			break
		}
		if next.Terrain.IsOcean() {
			break
		}
		path = append(path, next)
		visited[next.Y*g.Width+next.X] = true
		cx, cy = next.X, next.Y
	}

	if len(path) < 2 {
		return false
	}

	for _, t := range path {
		t.RiverMask = 1
		soften(t, r)
	}
	return true
}

type step struct {
	t     *tile.Tile
	score int
}

// pickStep scores the cardinal neighbors and picks uniformly among the
// top three. Ocean outranks everything; otherwise the score rewards
// descent and river-suitable terrain. Uphill into high mountains and
// existing rivers are forbidden.
func pickStep(g *tile.Grid, rs *ruleset.Ruleset, r *rng.Stream, x, y int, visited map[int]bool) *tile.Tile {
	current := g.At(x, y)

	var steps []step
	for _, d := range tile.CardinalOffsets {
		n := g.At(x+d[0], y+d[1])
		if n == nil || visited[n.Y*g.Width+n.X] {
			continue
		}
		if n.Terrain == tile.TerrainLake {
			continue
		}
		if n.Terrain.IsOcean() {
			steps = append(steps, step{n, oceanScore})
			continue
		}
		if n.RiverMask != 0 {
			continue
		}
		props := rs.Properties(n.Terrain)
		if n.Elevation > current.Elevation && props.Mountainous > mountainousHard {
			continue
		}

		score := 2 * (current.Elevation - n.Elevation)
		if riverSuitable(props) {
			score += suitableBonus
		}
		steps = append(steps, step{n, score})
	}
	if len(steps) == 0 {
		return nil
	}

	// Insertion sort by score, stable on ties: small fixed-size input
	for i := 1; i < len(steps); i++ {
		for j := i; j > 0 && steps[j].score > steps[j-1].score; j-- {
			steps[j], steps[j-1] = steps[j-1], steps[j]
		}
	}
	top := 3
	if len(steps) < top {
		top = len(steps)
	}
	return steps[r.Intn(top)].t
}

// riverSuitable marks terrain water likes to cross
func riverSuitable(props tile.Properties) bool {
	return props.Wet > 0 || props.Green > 0 || props.Foliage > 0
}

// soften erodes harsh terrain along the banks
func soften(t *tile.Tile, r *rng.Stream) {
	switch t.Terrain {
	case tile.TerrainDesert:
		if r.Chance(40) {
			t.Terrain = tile.TerrainPlains
		}
	case tile.TerrainMountains:
		if r.Chance(40) {
			t.Terrain = tile.TerrainHills
		}
	}
}

// ResolveMasks recomputes every river tile's mask as the OR of cardinal
// directions pointing at another river tile or at ocean water
func ResolveMasks(g *tile.Grid) {
	masks := []uint8{tile.RiverNorth, tile.RiverEast, tile.RiverSouth, tile.RiverWest}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := g.At(x, y)
			if t.RiverMask == 0 {
				continue
			}
			var mask uint8
			for i, d := range tile.CardinalOffsets {
				n := g.At(x+d[0], y+d[1])
				if n == nil {
					continue
				}
				if n.RiverMask != 0 || n.Terrain.IsOcean() {
					mask |= masks[i]
				}
			}
			t.RiverMask = mask
		}
	}
}

// Count returns the number of tiles carrying a river connection
func Count(g *tile.Grid) int {
	count := 0
	for i := range g.Tiles {
		if g.Tiles[i].RiverMask != 0 {
			count++
		}
	}
	return count
}
