// Package terrain turns elevation, climate, and wetness into base terrain
// for the continent-style generator modes. Island modes place terrain
// through the bucket generator instead.
package terrain

import (
	"civmap-backend/internal/worldgen/geography"
	"civmap-backend/internal/worldgen/rng"
	"civmap-backend/internal/worldgen/ruleset"
	"civmap-backend/internal/worldgen/tile"
)

// Wetness cuts used by the biome cascade
const (
	wetnessHigh = 60
	wetnessLow  = 30
)

// Classify assigns a base terrain to every tile of the grid. Water tiles
// are set to plain Ocean; the ocean pass refines their subtype later.
func Classify(g *tile.Grid, hm *geography.HeightMap, tm *geography.TemperatureMap, wet []int, rs *ruleset.Ruleset, r *rng.Stream) {
	hillsLevel := hm.MountainLevel - (hm.MountainLevel-hm.ShoreLevel)/3

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := g.At(x, y)
			t.Elevation = hm.Get(x, y)
			t.Temperature = tm.Class(x, y)

			switch {
			case t.Elevation <= hm.ShoreLevel:
				t.Terrain = tile.TerrainOcean
			case t.Elevation >= hm.MountainLevel:
				t.Terrain = tile.TerrainMountains
			case t.Elevation >= hillsLevel:
				t.Terrain = tile.TerrainHills
			default:
				t.Terrain = chooseBiome(tm.Class(x, y), wet[y*g.Width+x], rs, r)
			}
		}
	}
}

// chooseBiome runs the climate/wetness cascade for habitable elevations
func chooseBiome(temp tile.TemperatureType, wetness int, rs *ruleset.Ruleset, r *rng.Stream) tile.TerrainType {
	switch temp {
	case tile.TempTropical:
		if wetness >= wetnessHigh {
			return PickTerrain(rs, tile.PropFoliage, tile.PropTropical, tile.PropDry, r)
		}
		if wetness <= wetnessLow {
			return PickTerrain(rs, tile.PropDry, tile.PropTropical, tile.PropCold, r)
		}
		return PickTerrain(rs, tile.PropGreen, tile.PropTropical, tile.PropMountainous, r)

	case tile.TempTemperate:
		if wetness >= wetnessHigh+10 {
			return PickTerrain(rs, tile.PropWet, tile.PropTemperate, tile.PropFrozen, r)
		}
		if wetness >= wetnessHigh-15 {
			return PickTerrain(rs, tile.PropFoliage, tile.PropTemperate, tile.PropDry, r)
		}
		if wetness <= wetnessLow-5 {
			return PickTerrain(rs, tile.PropDry, tile.PropTemperate, tile.PropFrozen, r)
		}
		return PickTerrain(rs, tile.PropGreen, tile.PropTemperate, tile.PropMountainous, r)

	case tile.TempCold:
		if wetness >= wetnessHigh-5 {
			return PickTerrain(rs, tile.PropFoliage, tile.PropCold, tile.PropTropical, r)
		}
		return PickTerrain(rs, tile.PropCold, tile.PropDry, tile.PropMountainous, r)

	default: // frozen
		return PickTerrain(rs, tile.PropFrozen, tile.PropCold, tile.PropTropical, r)
	}
}

// PickTerrain draws a weighted terrain whose target affinity is positive.
// Terrains also matching prefer count double; terrains matching avoid are
// forbidden. Weights come from the ruleset properties, never from code.
func PickTerrain(rs *ruleset.Ruleset, target, prefer, avoid tile.PropertyName, r *rng.Stream) tile.TerrainType {
	type candidate struct {
		terrain tile.TerrainType
		weight  int
	}

	var candidates []candidate
	total := 0
	for _, terrain := range tile.LandTerrains {
		props := rs.Properties(terrain)
		weight := props.Value(target)
		if weight <= 0 {
			continue
		}
		if avoid != "" && props.Value(avoid) > 0 {
			continue
		}
		if prefer != "" && props.Value(prefer) > 0 {
			weight *= 2
		}
		candidates = append(candidates, candidate{terrain, weight})
		total += weight
	}
	if total == 0 {
		return tile.TerrainGrassland
	}

	roll := r.Intn(total)
	for _, c := range candidates {
		roll -= c.weight
		if roll < 0 {
			return c.terrain
		}
	}
	return candidates[len(candidates)-1].terrain
}
