// Package validate checks every output invariant of the generator and
// summarizes the map for callers and tests.
package validate

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"civmap-backend/internal/worldgen/intmap"
	"civmap-backend/internal/worldgen/startpos"
	"civmap-backend/internal/worldgen/tile"
)

// Details summarizes measurable map facts
type Details struct {
	LandPercent          float64 `json:"landPercent"`
	StartingPositions    int     `json:"startingPositions"`
	ContinentCount       int     `json:"continentCount"`
	LargestContinentSize int     `json:"largestContinentSize"`
	MedianContinentSize  float64 `json:"medianContinentSize"`
	RiverCount           int     `json:"riverCount"`
}

// Result carries the verdict plus findings
type Result struct {
	OK       bool     `json:"ok"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	Details  Details  `json:"details"`
}

// Check validates a generated map against the configured land target,
// player count, spacing expectation, and spawn distribution policy.
func Check(m *tile.MapData, landPercent, players, minSpacing int, mode startpos.Mode) Result {
	res := Result{}
	g := &tile.Grid{Width: m.Width, Height: m.Height, Tiles: m.Tiles}

	res.checkShape(m)
	res.checkTerrainDomain(m)
	res.checkContinents(g)
	res.checkRivers(g)
	res.checkLandPercent(g, landPercent)
	res.checkStartPositions(g, m, players, minSpacing)
	res.checkSpawnDistribution(g, m, players, mode)
	res.fillDetails(g, m)

	res.OK = len(res.Errors) == 0
	return res
}

func (res *Result) fail(format string, args ...any) {
	res.Errors = append(res.Errors, fmt.Sprintf(format, args...))
}

func (res *Result) warn(format string, args ...any) {
	res.Warnings = append(res.Warnings, fmt.Sprintf(format, args...))
}

// checkShape: the tile array is exactly width*height with coherent
// coordinates
func (res *Result) checkShape(m *tile.MapData) {
	if len(m.Tiles) != m.Width*m.Height {
		res.fail("tile count %d does not match %dx%d", len(m.Tiles), m.Width, m.Height)
		return
	}
	for i := range m.Tiles {
		t := &m.Tiles[i]
		if t.X != i%m.Width || t.Y != i/m.Width {
			res.fail("tile %d carries coordinates (%d,%d)", i, t.X, t.Y)
			return
		}
	}
}

var validTerrains = map[tile.TerrainType]bool{
	tile.TerrainDeepOcean: true, tile.TerrainOcean: true, tile.TerrainCoast: true,
	tile.TerrainLake: true, tile.TerrainPlains: true, tile.TerrainGrassland: true,
	tile.TerrainDesert: true, tile.TerrainTundra: true, tile.TerrainForest: true,
	tile.TerrainJungle: true, tile.TerrainHills: true, tile.TerrainMountains: true,
	tile.TerrainSwamp: true,
}

// checkTerrainDomain: exactly one known terrain per tile, elevation in
// [0, 255]
func (res *Result) checkTerrainDomain(m *tile.MapData) {
	for i := range m.Tiles {
		t := &m.Tiles[i]
		if !validTerrains[t.Terrain] {
			res.fail("tile (%d,%d) has unknown terrain %q", t.X, t.Y, t.Terrain)
			return
		}
		if t.Elevation < 0 || t.Elevation > 255 {
			res.fail("tile (%d,%d) elevation %d out of range", t.X, t.Y, t.Elevation)
			return
		}
	}
}

// checkContinents: ocean ids are 0, land ids positive, components
// uniform, labels contiguous from 1, lakes borrow a land id
func (res *Result) checkContinents(g *tile.Grid) {
	maxID := 0
	seen := map[int]bool{}
	for i := range g.Tiles {
		t := &g.Tiles[i]
		switch {
		case t.Terrain.IsOcean():
			if t.ContinentID != 0 {
				res.fail("ocean tile (%d,%d) carries continent %d", t.X, t.Y, t.ContinentID)
				return
			}
		case t.Terrain == tile.TerrainLake:
			if t.ContinentID <= 0 {
				res.fail("lake tile (%d,%d) has no adopted continent", t.X, t.Y)
				return
			}
		default:
			if t.ContinentID <= 0 {
				res.fail("land tile (%d,%d) has continent %d", t.X, t.Y, t.ContinentID)
				return
			}
			seen[t.ContinentID] = true
			if t.ContinentID > maxID {
				maxID = t.ContinentID
			}
		}
	}

	for id := 1; id <= maxID; id++ {
		if !seen[id] {
			res.fail("continent ids not contiguous: %d missing below %d", id, maxID)
			return
		}
	}

	// Each 4-connected land component carries a single id
	visited := make([]bool, len(g.Tiles))
	isLand := func(x, y int) bool { return g.At(x, y).Terrain.IsLand() }
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			component := intmap.FloodFill(g.Width, g.Height, x, y, isLand, visited)
			if component == nil {
				continue
			}
			id := g.Tiles[component[0]].ContinentID
			for _, idx := range component {
				if g.Tiles[idx].ContinentID != id {
					res.fail("continent %d split across component at index %d", id, idx)
					return
				}
			}
		}
	}
}

// checkRivers: masks only on land or coast, every set bit points at a
// river tile or ocean water
func (res *Result) checkRivers(g *tile.Grid) {
	masks := []uint8{tile.RiverNorth, tile.RiverEast, tile.RiverSouth, tile.RiverWest}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := g.At(x, y)
			if t.RiverMask == 0 {
				continue
			}
			if !t.Terrain.IsLand() && t.Terrain != tile.TerrainCoast {
				res.fail("river mask on %s at (%d,%d)", t.Terrain, x, y)
				return
			}
			for i, d := range tile.CardinalOffsets {
				if t.RiverMask&masks[i] == 0 {
					continue
				}
				n := g.At(x+d[0], y+d[1])
				if n == nil {
					res.fail("river bit points off-map at (%d,%d)", x, y)
					return
				}
				if n.RiverMask == 0 && !n.Terrain.IsOcean() {
					res.fail("river bit at (%d,%d) points at dry %s", x, y, n.Terrain)
					return
				}
			}
		}
	}
}

// checkLandPercent: realized land within +/-5 points of the target
func (res *Result) checkLandPercent(g *tile.Grid, target int) {
	realized := g.LandPercent()
	diff := realized - float64(target)
	if diff < -5 || diff > 5 {
		res.fail("land percent %.1f misses target %d by more than 5 points", realized, target)
	}
}

// checkStartPositions: one per player, on habitable ground, spread out
func (res *Result) checkStartPositions(g *tile.Grid, m *tile.MapData, players, minSpacing int) {
	if len(m.StartingPositions) != players {
		res.fail("%d starting positions for %d players", len(m.StartingPositions), players)
		return
	}
	for i, p := range m.StartingPositions {
		t := g.At(p.X, p.Y)
		if t == nil {
			res.fail("start position %d out of bounds at (%d,%d)", i, p.X, p.Y)
			return
		}
		if t.Terrain.IsOcean() || t.Terrain == tile.TerrainLake || t.Terrain == tile.TerrainMountains {
			res.fail("start position %d sits on %s", i, t.Terrain)
			return
		}
	}
	// Spacing is audited across every pair; placement only enforces it
	// within a continent, and may halve it, so shortfalls warn
	for i := 0; i < len(m.StartingPositions); i++ {
		for j := i + 1; j < len(m.StartingPositions); j++ {
			a, b := m.StartingPositions[i], m.StartingPositions[j]
			if d := tile.Chebyshev(a.X, a.Y, b.X, b.Y); d < minSpacing {
				res.warn("spawns %d and %d are %d apart (minimum %d)", i, j, d, minSpacing)
			}
		}
	}
}

// checkSpawnDistribution audits the continent half of the spawn
// invariant per mode. A cap breach is an error while the map offers at
// least two continents with habitable ground; with a single eligible
// continent placement degrades deliberately, so it only warns.
func (res *Result) checkSpawnDistribution(g *tile.Grid, m *tile.MapData, players int, mode startpos.Mode) {
	if len(m.StartingPositions) != players {
		return // counted elsewhere
	}

	perContinent := map[int]int{}
	for _, p := range m.StartingPositions {
		if t := g.At(p.X, p.Y); t != nil {
			perContinent[t.ContinentID]++
		}
	}

	eligible := map[int]bool{}
	for i := range g.Tiles {
		t := &g.Tiles[i]
		if !t.Terrain.IsLand() {
			continue
		}
		if _, ok := startpos.Habitability(g, t); ok {
			eligible[t.ContinentID] = true
		}
	}

	capBreach := func(limit int) {
		for id, n := range perContinent {
			if n <= limit {
				continue
			}
			if len(eligible) >= 2 {
				res.fail("continent %d carries %d spawns, cap is %d", id, n, limit)
			} else {
				res.warn("continent %d carries %d spawns over cap %d on a one-continent map", id, n, limit)
			}
			return
		}
	}

	switch mode {
	case startpos.SingleContinent:
		if len(perContinent) > 1 {
			res.fail("single-continent mode spread spawns over %d continents", len(perContinent))
		}
	case startpos.TwoOnThree:
		capBreach((2*players + 2) / 3)
	case startpos.Variable:
		capBreach((players + 1) / 2)
	case startpos.AllContinents:
		want := players
		if len(eligible) < want {
			want = len(eligible)
		}
		if len(perContinent) < want {
			res.fail("all-continents mode used %d continents, expected %d", len(perContinent), want)
			return
		}
		minN, maxN := players, 0
		for _, n := range perContinent {
			if n < minN {
				minN = n
			}
			if n > maxN {
				maxN = n
			}
		}
		if maxN-minN > 1 {
			res.fail("all-continents mode is uneven: counts range %d to %d", minN, maxN)
		}
	}
}

func (res *Result) fillDetails(g *tile.Grid, m *tile.MapData) {
	res.Details.LandPercent = g.LandPercent()
	res.Details.StartingPositions = len(m.StartingPositions)

	sizes := map[int]int{}
	for i := range g.Tiles {
		if g.Tiles[i].Terrain.IsLand() {
			sizes[g.Tiles[i].ContinentID]++
		}
		if g.Tiles[i].RiverMask != 0 {
			res.Details.RiverCount++
		}
	}
	res.Details.ContinentCount = len(sizes)

	if len(sizes) > 0 {
		data := make([]float64, 0, len(sizes))
		largest := 0
		for _, size := range sizes {
			data = append(data, float64(size))
			if size > largest {
				largest = size
			}
		}
		res.Details.LargestContinentSize = largest
		if median, err := stats.Median(data); err == nil {
			res.Details.MedianContinentSize = median
		}
	}
}
