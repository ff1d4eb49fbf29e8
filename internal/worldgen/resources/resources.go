// Package resources scatters biome-conditioned resources over the map,
// at most one per tile, honoring the ruleset's per-terrain density.
package resources

import (
	"civmap-backend/internal/worldgen/rng"
	"civmap-backend/internal/worldgen/ruleset"
	"civmap-backend/internal/worldgen/tile"
)

// Generate walks the grid in scan order and rolls each tile against its
// terrain's density; accepted tiles draw a weighted resource from the
// rules matching their terrain and climate.
func Generate(g *tile.Grid, rs *ruleset.Ruleset, r *rng.Stream) int {
	placed := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := g.At(x, y)
			density := rs.Density(t.Terrain)
			if density <= 0 {
				continue
			}
			if !r.Chance(density) {
				continue
			}

			rules := rs.ResourcesFor(t.Terrain, t.Temperature)
			if len(rules) == 0 {
				continue
			}

			total := 0
			for _, rule := range rules {
				total += rule.Weight
			}
			roll := r.Intn(total)
			for _, rule := range rules {
				roll -= rule.Weight
				if roll < 0 {
					t.Resource = rule.Name
					placed++
					break
				}
			}
		}
	}
	return placed
}
