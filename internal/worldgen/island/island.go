// Package island implements the bucket-driven island generator used by
// the Island and Fair modes. Islands are carved one at a time while five
// running accounts (river, mountain, desert, forest, swamp) spread biome
// debt across the whole archipelago: each account starts at a negative
// random offset, so early islands come out biome-poor and later ones
// compensate.
package island

import (
	"context"

	"github.com/rs/zerolog"

	apperrors "civmap-backend/internal/errors"
	"civmap-backend/internal/worldgen/geography"
	"civmap-backend/internal/worldgen/rng"
	"civmap-backend/internal/worldgen/ruleset"
	"civmap-backend/internal/worldgen/tile"
)

const (
	// islandElevation is the base height committed island cells receive
	islandElevation = 128

	// Elevations written for relief placed by the mountain bucket
	mountainElevation = 220
	hillElevation     = 190

	// minSpecificIslandSize bounds shrink-retries: an island may shrink
	// to this percentage of its requested mass before the attempt fails
	minSpecificIslandSize = 10
)

// Percentages drive the five bucket accounts
type Percentages struct {
	River    int
	Mountain int
	Desert   int
	Forest   int
	Swamp    int
}

// Generator holds the working state for one archipelago
type Generator struct {
	g   *tile.Grid
	hm  *geography.HeightMap
	tm  *geography.TemperatureMap
	wet []int
	rs  *ruleset.Ruleset
	r   *rng.Stream
	log zerolog.Logger

	pcts      Percentages
	totalMass int

	isleIndex   int
	lastPlaced  int
	balance     int
	placedTotal int

	riverBuck  int
	mountBuck  int
	desertBuck int
	forestBuck int
	swampBuck  int

	// scratch shape for the island being carved
	shape       []bool
	shapeCount  int
	minX, minY  int
	maxX, maxY  int
	holesFilled bool

	// committed bounds of the island being filled
	isleMinX, isleMinY int
	isleMaxX, isleMaxY int
}

// New prepares a generator over an ocean-initialized grid
func New(g *tile.Grid, hm *geography.HeightMap, tm *geography.TemperatureMap, wet []int, rs *ruleset.Ruleset, r *rng.Stream, pcts Percentages, landPercent int, log zerolog.Logger) *Generator {
	gen := &Generator{
		g:         g,
		hm:        hm,
		tm:        tm,
		wet:       wet,
		rs:        rs,
		r:         r,
		log:       log,
		pcts:      pcts,
		totalMass: g.Width * g.Height * landPercent / 100,
		isleIndex: 1,
		shape:     make([]bool, g.Width*g.Height),
	}
	gen.lastPlaced = gen.totalMass

	// Negative offsets delay each biome until its account fills up.
	// Consumed in a fixed order for determinism.
	gen.riverBuck = -r.Intn(gen.totalMass + 1)
	gen.mountBuck = -r.Intn(gen.totalMass + 1)
	gen.desertBuck = -r.Intn(gen.totalMass + 1)
	gen.forestBuck = -r.Intn(gen.totalMass + 1)
	gen.swampBuck = -r.Intn(gen.totalMass + 1)

	return gen
}

// Generate carves islands until the land target is approached. It checks
// for cancellation before every island attempt.
func (gen *Generator) Generate(ctx context.Context, players int) error {
	gen.initOcean()

	n := players
	if n < 3 {
		n = 3
	}
	big := gen.totalMass * 7 / 10 / n
	if big < 1 {
		big = 1
	}

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			return apperrors.ErrCancelled
		}
		gen.makeIsland(big)
	}

	// Top up with smaller islands until within 10% of the target
	for tries := 0; tries < 5*n; tries++ {
		if ctx.Err() != nil {
			return apperrors.ErrCancelled
		}
		remaining := gen.totalMass - gen.placedTotal
		if remaining*10 <= gen.totalMass {
			break
		}
		req := remaining / 2
		if req > big {
			req = big
		}
		if req < 5 {
			req = remaining
		}
		gen.makeIsland(req)
	}

	gen.log.Debug().
		Int("islands", gen.isleIndex-1).
		Int("placed", gen.placedTotal).
		Int("target", gen.totalMass).
		Msg("island placement finished")

	if gen.placedTotal*100 < gen.totalMass*70 {
		return apperrors.NewValidationFailed([]string{"insufficient land"})
	}
	return nil
}

// initOcean resets the grid to deep ocean with climate attached
func (gen *Generator) initOcean() {
	for y := 0; y < gen.g.Height; y++ {
		for x := 0; x < gen.g.Width; x++ {
			t := gen.g.At(x, y)
			t.Terrain = tile.TerrainDeepOcean
			t.Elevation = gen.hm.Get(x, y)
			if t.Elevation > gen.hm.ShoreLevel {
				// Fractal land leftovers read as seabed here
				t.Elevation = gen.hm.ShoreLevel
			}
			t.Temperature = gen.tm.Class(x, y)
			t.ContinentID = 0
			t.RiverMask = 0
		}
	}
}

// makeIsland carves, places, and fills one island. On shape or placement
// failure the mass shrinks one tile at a time down to the minimum
// specific size before the attempt is abandoned.
func (gen *Generator) makeIsland(requested int) bool {
	m := requested - gen.balance
	if m < 0 {
		m = 0
	}
	if limit := gen.lastPlaced + 1 + gen.lastPlaced/50; m > limit {
		m = limit
	}
	if limit := (gen.g.Height - 6) * (gen.g.Height - 6); m > limit {
		m = limit
	}
	if limit := (gen.g.Width - 2) * (gen.g.Width - 2); m > limit {
		m = limit
	}
	if m <= 0 {
		return false
	}

	minSize := requested * minSpecificIslandSize / 100
	if minSize < 1 {
		minSize = 1
	}

	size := m
	placed := false
	for size >= minSize {
		if gen.createIsland(size) && gen.placeIsland() {
			placed = true
			break
		}
		size--
	}
	if !placed {
		gen.log.Debug().Int("requested", requested).Msg("island shrunk to nothing")
		return false
	}

	gen.lastPlaced = size
	gen.placedTotal += size
	if size*10 > requested {
		gen.balance = size - requested
	} else {
		gen.balance = 0
	}

	// Feed the accounts and spend them on this island. The order is
	// fixed; every bucket keeps its remainder for the next island.
	gen.riverBuck += gen.pcts.River * size
	gen.mountBuck += gen.pcts.Mountain * size
	gen.desertBuck += gen.pcts.Desert * size
	gen.forestBuck += gen.pcts.Forest * size
	gen.swampBuck += gen.pcts.Swamp * size

	gen.fillIsland(60, &gen.forestBuck, forestSelectors)
	gen.fillIsland(40, &gen.desertBuck, desertSelectors)
	gen.fillIsland(20, &gen.mountBuck, mountainSelectors)
	gen.fillIsland(80, &gen.swampBuck, swampSelectors)
	gen.fillIslandRivers(50, &gen.riverBuck)

	gen.isleIndex++
	return true
}
