// Package startpos places fair, distance-spread starting positions on
// habitable land according to the configured continent policy.
package startpos

import (
	"math"
	"sort"

	"github.com/google/uuid"

	apperrors "civmap-backend/internal/errors"
	"civmap-backend/internal/worldgen/tile"
)

// Mode selects how players spread across continents
type Mode string

const (
	SingleContinent Mode = "singleContinent"
	TwoOnThree      Mode = "twoOnThree"
	AllContinents   Mode = "allContinents"
	Variable        Mode = "variable"
)

const placementAttempts = 4 // initial try plus three spacing halvings

// candidate is an eligible spawn tile with its habitability score
type candidate struct {
	x, y  int
	score int
}

// continent aggregates the placement view of one land component
type continent struct {
	id         int
	landTiles  int
	candidates []candidate
}

// Place computes one spawn per player. Placement is greedy in player
// order over the per-continent plan; when spacing cannot be satisfied the
// minimum distance halves and the whole placement restarts, up to three
// times.
func Place(g *tile.Grid, players []uuid.UUID, mode Mode) ([]tile.StartPosition, error) {
	continents := collectContinents(g)
	if len(continents) == 0 {
		return nil, apperrors.NewStartPositionsImpossible(0)
	}

	landTiles := g.CountLand()
	spacing := int(math.Sqrt(float64(landTiles) / float64(len(players))))
	if spacing < 3 {
		spacing = 3
	}

	plan, err := buildPlan(continents, len(players), mode)
	if err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= placementAttempts; attempt++ {
		positions, ok := tryPlace(plan, players, spacing)
		if ok {
			return positions, nil
		}
		spacing /= 2
		if spacing < 1 {
			spacing = 1
		}
	}
	return nil, apperrors.NewStartPositionsImpossible(placementAttempts)
}

// collectContinents scores the habitable tiles of every continent,
// ordered by land size descending (id ascending on ties)
func collectContinents(g *tile.Grid) []*continent {
	byID := map[int]*continent{}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			t := g.At(x, y)
			if !t.Terrain.IsLand() {
				continue
			}
			c := byID[t.ContinentID]
			if c == nil {
				c = &continent{id: t.ContinentID}
				byID[t.ContinentID] = c
			}
			c.landTiles++

			if score, ok := Habitability(g, t); ok {
				c.candidates = append(c.candidates, candidate{x, y, score})
			}
		}
	}

	out := make([]*continent, 0, len(byID))
	for _, c := range byID {
		if len(c.candidates) > 0 {
			// Best score first, scan order on ties
			sort.SliceStable(c.candidates, func(i, j int) bool {
				return c.candidates[i].score > c.candidates[j].score
			})
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].landTiles != out[j].landTiles {
			return out[i].landTiles > out[j].landTiles
		}
		return out[i].id < out[j].id
	})
	return out
}

// Habitability scores a tile for spawning. Oceans, lakes, mountains, and
// land surrounded by nothing but ocean are ineligible. The validator
// shares this definition when auditing spawn distribution.
func Habitability(g *tile.Grid, t *tile.Tile) (int, bool) {
	if t.Terrain.IsWater() || t.Terrain == tile.TerrainMountains {
		return 0, false
	}

	onlyOcean := true
	nearRiverOrCoast := t.RiverMask != 0
	g.Neighbors8(t.X, t.Y, func(n *tile.Tile) {
		if !n.Terrain.IsOcean() {
			onlyOcean = false
		}
		if n.RiverMask != 0 || n.Terrain == tile.TerrainCoast {
			nearRiverOrCoast = true
		}
	})
	if onlyOcean {
		return 0, false
	}

	score := 0
	switch t.Terrain {
	case tile.TerrainGrassland, tile.TerrainPlains:
		score = 2
	case tile.TerrainForest, tile.TerrainHills, tile.TerrainTundra:
		score = 1
	}
	if nearRiverOrCoast {
		score++
	}
	return score, true
}

// buildPlan maps each player slot to a continent per the mode policy
func buildPlan(continents []*continent, players int, mode Mode) ([]*continent, error) {
	switch mode {
	case SingleContinent:
		return repeat(continents[0], players), nil

	case TwoOnThree:
		perCap := (2*players + 2) / 3
		return fillSequential(continents, players, perCap)

	case AllContinents:
		plan := make([]*continent, 0, players)
		for i := 0; len(plan) < players; i++ {
			plan = append(plan, continents[i%len(continents)])
		}
		return plan, nil

	case Variable:
		perCap := (players + 1) / 2
		// Smallest continent count whose capacity fits everyone
		for k := 1; k <= len(continents); k++ {
			capacity := 0
			for _, c := range continents[:k] {
				capacity += minInt(perCap, len(c.candidates))
			}
			if capacity >= players {
				return roundRobin(continents[:k], players, perCap), nil
			}
		}
		return fillSequential(continents, players, perCap)
	}
	return nil, apperrors.NewInvalidConfig("unknown start position mode %q", mode)
}

func repeat(c *continent, n int) []*continent {
	plan := make([]*continent, n)
	for i := range plan {
		plan[i] = c
	}
	return plan
}

// fillSequential loads continents in size order up to the per-continent
// cap until every player has a slot
func fillSequential(continents []*continent, players, perCap int) ([]*continent, error) {
	plan := make([]*continent, 0, players)
	for _, c := range continents {
		for n := 0; n < perCap && len(plan) < players; n++ {
			plan = append(plan, c)
		}
		if len(plan) == players {
			return plan, nil
		}
	}
	// Capacity exhausted: overload the largest continents round-robin
	for len(plan) < players {
		plan = append(plan, continents[len(plan)%len(continents)])
	}
	return plan, nil
}

// roundRobin deals players across the chosen continents respecting the cap
func roundRobin(chosen []*continent, players, perCap int) []*continent {
	plan := make([]*continent, 0, players)
	counts := make([]int, len(chosen))
	for len(plan) < players {
		progressed := false
		for i, c := range chosen {
			if len(plan) == players {
				break
			}
			if counts[i] >= perCap {
				continue
			}
			counts[i]++
			plan = append(plan, c)
			progressed = true
		}
		if !progressed {
			// Caps exhausted: spill over in order
			plan = append(plan, chosen[len(plan)%len(chosen)])
		}
	}
	return plan
}

// tryPlace runs one greedy pass: every player takes the best remaining
// tile on their continent at least spacing away (chessboard) from all
// previously placed players of the same continent
func tryPlace(plan []*continent, players []uuid.UUID, spacing int) ([]tile.StartPosition, bool) {
	taken := map[int][]candidate{} // continent id -> placed spots
	used := map[[2]int]bool{}

	positions := make([]tile.StartPosition, 0, len(players))
	for i, player := range players {
		c := plan[i]

		var spot *candidate
		for idx := range c.candidates {
			cand := &c.candidates[idx]
			if used[[2]int{cand.x, cand.y}] {
				continue
			}
			farEnough := true
			for _, p := range taken[c.id] {
				if tile.Chebyshev(cand.x, cand.y, p.x, p.y) < spacing {
					farEnough = false
					break
				}
			}
			if farEnough {
				spot = cand
				break
			}
		}
		if spot == nil {
			return nil, false
		}

		taken[c.id] = append(taken[c.id], *spot)
		used[[2]int{spot.x, spot.y}] = true
		positions = append(positions, tile.StartPosition{X: spot.x, Y: spot.y, Player: player})
	}
	return positions, true
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
