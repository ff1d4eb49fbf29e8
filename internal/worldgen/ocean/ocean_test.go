package ocean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civmap-backend/internal/worldgen/geography"
	"civmap-backend/internal/worldgen/rng"
	"civmap-backend/internal/worldgen/tile"
)

// buildGrid fills a grid from a rune sketch: '#' land, '.' ocean
func buildGrid(rows []string) *tile.Grid {
	h := len(rows)
	w := len(rows[0])
	g := tile.NewGrid(w, h)
	for y, row := range rows {
		for x, c := range row {
			t := g.At(x, y)
			if c == '#' {
				t.Terrain = tile.TerrainGrassland
			} else {
				t.Terrain = tile.TerrainOcean
			}
		}
	}
	return g
}

func TestClassifyDepth(t *testing.T) {
	assert.Equal(t, tile.TerrainCoast, classifyDepth(0))
	assert.Equal(t, tile.TerrainCoast, classifyDepth(50))
	// 70 lies in both coast [0,80] and ocean [60,180]; coast midpoint 40
	// is 30 away, ocean midpoint 120 is 50 away
	assert.Equal(t, tile.TerrainCoast, classifyDepth(70))
	assert.Equal(t, tile.TerrainOcean, classifyDepth(120))
	// 170 lies in ocean [60,180] and deep [150,255]; ocean midpoint 120
	// is 50 away, deep midpoint 202 is 32 away
	assert.Equal(t, tile.TerrainDeepOcean, classifyDepth(170))
	assert.Equal(t, tile.TerrainDeepOcean, classifyDepth(255))
}

func TestRefineDepth(t *testing.T) {
	g := tile.NewGrid(4, 1)
	hm := geography.NewHeightMap(4, 1)
	hm.ShoreLevel = 100

	elevations := []int{95, 60, 10, 130}
	for x, e := range elevations {
		g.At(x, 0).Terrain = tile.TerrainOcean
		g.At(x, 0).Elevation = e
	}
	g.At(3, 0).Terrain = tile.TerrainGrassland

	RefineDepth(g, hm)

	// depth = (100-95)*255/100 = 12 -> coast
	assert.Equal(t, tile.TerrainCoast, g.At(0, 0).Terrain)
	// depth = 102 -> ocean
	assert.Equal(t, tile.TerrainOcean, g.At(1, 0).Terrain)
	// depth = 229 -> deep ocean
	assert.Equal(t, tile.TerrainDeepOcean, g.At(2, 0).Terrain)
	// land untouched
	assert.Equal(t, tile.TerrainGrassland, g.At(3, 0).Terrain)
}

func TestLabelContinents(t *testing.T) {
	g := buildGrid([]string{
		"##..#",
		"##..#",
		".....",
		"#....",
	})

	n := LabelContinents(g)
	assert.Equal(t, 3, n)

	// Scan order: top-left block is 1, right column 2, bottom-left 3
	assert.Equal(t, 1, g.At(0, 0).ContinentID)
	assert.Equal(t, 1, g.At(1, 1).ContinentID)
	assert.Equal(t, 2, g.At(4, 0).ContinentID)
	assert.Equal(t, 3, g.At(0, 3).ContinentID)
	assert.Equal(t, 0, g.At(2, 2).ContinentID)
}

func TestRemoveTinyIslands(t *testing.T) {
	g := buildGrid([]string{
		".......",
		".##....",
		".##..#.",
		".......",
		".#####.",
		".#####.",
	})
	LabelContinents(g)

	removed := RemoveTinyIslands(g, 5)
	assert.Equal(t, 2, removed, "the 4-block and the speck both go")

	assert.True(t, g.At(5, 2).Terrain.IsOcean())
	assert.True(t, g.At(1, 1).Terrain.IsOcean())
	// The 10-tile island stays
	assert.True(t, g.At(2, 4).Terrain.IsLand())
}

func TestCreateLakes(t *testing.T) {
	g := buildGrid([]string{
		"#####",
		"#.#.#",
		"#####",
		".....",
		".....",
		".....",
	})
	LabelContinents(g)

	hm := geography.NewHeightMap(5, 6)
	hm.ShoreLevel = 100
	tm := geography.NewTemperatureMap(hm, 100) // no tile frozen: no frozen veto

	created := CreateLakes(g, tm, 15)
	assert.Equal(t, 2, created)

	lake1 := g.At(1, 1)
	lake2 := g.At(3, 1)
	assert.Equal(t, tile.TerrainLake, lake1.Terrain)
	assert.Equal(t, tile.TerrainLake, lake2.Terrain)
	assert.Equal(t, g.At(0, 0).ContinentID, lake1.ContinentID,
		"lake joins the surrounding continent")

	// The big southern ocean stays open water
	assert.True(t, g.At(2, 3).Terrain.IsOcean())
}

func TestCreateLakes_SkipsLargeBodies(t *testing.T) {
	g := buildGrid([]string{
		"######",
		"#....#",
		"#....#",
		"#....#",
		"#....#",
		"######",
	})
	LabelContinents(g)

	hm := geography.NewHeightMap(6, 6)
	tm := geography.NewTemperatureMap(hm, 100)

	created := CreateLakes(g, tm, 15)
	assert.Zero(t, created, "a 16-cell body stays open water")
	assert.True(t, g.At(2, 2).Terrain.IsOcean())
}

func TestSmoothSubtypes_Deterministic(t *testing.T) {
	build := func() *tile.Grid {
		g := tile.NewGrid(8, 8)
		for i := range g.Tiles {
			if i%3 == 0 {
				g.Tiles[i].Terrain = tile.TerrainCoast
			} else {
				g.Tiles[i].Terrain = tile.TerrainOcean
			}
		}
		return g
	}

	a, b := build(), build()
	SmoothSubtypes(a, rng.NewFromString("smooth"))
	SmoothSubtypes(b, rng.NewFromString("smooth"))
	assert.Equal(t, a.Tiles, b.Tiles)
}

func TestApplyCoastDistance(t *testing.T) {
	// A single land tile in a wide coast field: far cells may demote
	g := tile.NewGrid(20, 20)
	for i := range g.Tiles {
		g.Tiles[i].Terrain = tile.TerrainCoast
	}
	g.At(10, 10).Terrain = tile.TerrainGrassland

	ApplyCoastDistance(g, rng.NewFromString("dist"))

	// Near the land nothing changes
	assert.Equal(t, tile.TerrainCoast, g.At(10, 11).Terrain)
	assert.Equal(t, tile.TerrainCoast, g.At(10, 13).Terrain)

	// Far away some demotions happen
	demoted := 0
	for i := range g.Tiles {
		if g.Tiles[i].Terrain == tile.TerrainOcean {
			demoted++
		}
	}
	assert.Positive(t, demoted)
}
