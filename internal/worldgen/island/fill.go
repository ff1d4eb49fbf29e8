package island

import (
	"civmap-backend/internal/worldgen/tile"
)

// selector matches one terrain against the climate of a candidate cell.
// Its weight is the named ruleset affinity of the terrain, so placement
// odds follow the properties record rather than code.
type selector struct {
	terrain  tile.TerrainType
	prop     tile.PropertyName
	tempMask tile.TemperatureType
	wetMin   int
	wetMax   int
}

var (
	forestSelectors = []selector{
		{terrain: tile.TerrainJungle, prop: tile.PropFoliage, tempMask: tile.TempTropical, wetMin: 50, wetMax: 100},
		{terrain: tile.TerrainForest, prop: tile.PropFoliage, tempMask: tile.TempTemperate | tile.TempCold, wetMin: 35, wetMax: 100},
	}
	desertSelectors = []selector{
		{terrain: tile.TerrainDesert, prop: tile.PropDry, tempMask: tile.TTHot, wetMin: 0, wetMax: 45},
		{terrain: tile.TerrainTundra, prop: tile.PropCold, tempMask: tile.TTNHot, wetMin: 0, wetMax: 60},
	}
	mountainSelectors = []selector{
		{terrain: tile.TerrainMountains, prop: tile.PropMountainous, tempMask: tile.TTAll, wetMin: 0, wetMax: 100},
		{terrain: tile.TerrainHills, prop: tile.PropMountainous, tempMask: tile.TTAll, wetMin: 0, wetMax: 100},
	}
	swampSelectors = []selector{
		{terrain: tile.TerrainSwamp, prop: tile.PropWet, tempMask: tile.TTNFrozen, wetMin: 50, wetMax: 100},
	}
)

// selectorWeight resolves a selector's weight from the ruleset
func (gen *Generator) selectorWeight(s *selector) int {
	return gen.rs.Properties(s.terrain).Value(s.prop)
}

// fillIsland spends one bucket on the island just committed. The bucket
// resets per call: the spend is bucket/totalMass + 1 tiles and the
// remainder bucket mod totalMass carries to the next island. A candidate
// cell is accepted when the weight roll, the climate window, the coast
// rule, and the contiguity rule all pass.
func (gen *Generator) fillIsland(coast int, bucket *int, selectors []selector) {
	if *bucket <= 0 {
		return
	}

	spend := *bucket/gen.totalMass + 1
	*bucket %= gen.totalMass

	totalWeight := 0
	for idx := range selectors {
		totalWeight += gen.selectorWeight(&selectors[idx])
	}
	if totalWeight <= 0 {
		return
	}

	i := spend
	failsafe := spend * 50
	for i > 0 && failsafe > 0 {
		failsafe--

		x := gen.r.Range(gen.isleMinX, gen.isleMaxX+1)
		y := gen.r.Range(gen.isleMinY, gen.isleMaxY+1)
		t := gen.g.At(x, y)
		if t == nil || t.ContinentID != gen.isleIndex || t.Terrain != tile.TerrainGrassland {
			continue
		}

		sel := gen.matchSelector(x, y, selectors)
		if sel == nil {
			continue
		}
		if gen.r.Intn(totalWeight) > gen.selectorWeight(sel) {
			continue
		}
		if gen.nearCoast(x, y) && !gen.r.Chance(coast) {
			continue
		}
		if !(i*3 > spend*2 || gen.r.Chance(50) || gen.hasNeighborTerrain(x, y, sel.terrain)) {
			continue
		}

		t.Terrain = sel.terrain
		switch sel.terrain {
		case tile.TerrainMountains:
			t.Elevation = mountainElevation
			gen.hm.Set(x, y, mountainElevation)
		case tile.TerrainHills:
			t.Elevation = hillElevation
			gen.hm.Set(x, y, hillElevation)
		}
		i--
	}
}

// fillIslandRivers seeds river cells from the river account. Seeds prefer
// wet inland cells; the river stage later grows networks through them and
// resolves the final masks.
func (gen *Generator) fillIslandRivers(coast int, bucket *int) {
	if *bucket <= 0 {
		return
	}

	spend := *bucket/gen.totalMass + 1
	*bucket %= gen.totalMass

	i := spend
	failsafe := spend * 50
	for i > 0 && failsafe > 0 {
		failsafe--

		x := gen.r.Range(gen.isleMinX, gen.isleMaxX+1)
		y := gen.r.Range(gen.isleMinY, gen.isleMaxY+1)
		t := gen.g.At(x, y)
		if t == nil || t.ContinentID != gen.isleIndex || !t.Terrain.IsLand() || t.RiverMask != 0 {
			continue
		}
		if gen.wet[y*gen.g.Width+x] < 50 && !gen.r.Chance(25) {
			continue
		}
		if gen.nearCoast(x, y) && !gen.r.Chance(coast) {
			continue
		}

		t.RiverMask = 1
		i--
	}
}

// matchSelector returns the first selector whose climate window accepts
// the cell
func (gen *Generator) matchSelector(x, y int, selectors []selector) *selector {
	wetness := gen.wet[y*gen.g.Width+x]
	for idx := range selectors {
		s := &selectors[idx]
		if !gen.tm.HasType(x, y, s.tempMask) {
			continue
		}
		if wetness < s.wetMin || wetness > s.wetMax {
			continue
		}
		return s
	}
	return nil
}

// nearCoast reports whether any Moore-8 neighbor is ocean
func (gen *Generator) nearCoast(x, y int) bool {
	near := false
	gen.g.Neighbors8(x, y, func(n *tile.Tile) {
		if n.Terrain.IsOcean() {
			near = true
		}
	})
	return near
}

// hasNeighborTerrain reports whether a Moore-8 neighbor already carries
// the terrain, which keeps biome patches contiguous
func (gen *Generator) hasNeighborTerrain(x, y int, terrain tile.TerrainType) bool {
	found := false
	gen.g.Neighbors8(x, y, func(n *tile.Tile) {
		if n.Terrain == terrain {
			found = true
		}
	})
	return found
}
