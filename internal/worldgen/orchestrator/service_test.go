package orchestrator

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "civmap-backend/internal/errors"
	"civmap-backend/internal/worldgen/startpos"
	"civmap-backend/internal/worldgen/tile"
)

func newService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	return s
}

func roster(n int) []uuid.UUID {
	players := make([]uuid.UUID, n)
	for i := range players {
		players[i] = uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("p%d", i)))
	}
	return players
}

func grid(m *tile.MapData) *tile.Grid {
	return &tile.Grid{Width: m.Width, Height: m.Height, Tiles: m.Tiles}
}

// Scenario 1: small random map with four players
func TestGenerate_SmallRandomMap(t *testing.T) {
	s := newService(t)
	cfg := DefaultConfig(40, 25)
	players := roster(4)

	m, err := s.Generate(context.Background(), []byte("1"), cfg, players)
	require.NoError(t, err)

	g := grid(m)
	lp := g.LandPercent()
	assert.GreaterOrEqual(t, lp, 25.0)
	assert.LessOrEqual(t, lp, 35.0)

	kinds := map[tile.TerrainType]bool{}
	rivered := 0
	for i := range m.Tiles {
		if m.Tiles[i].Terrain.IsLand() {
			kinds[m.Tiles[i].Terrain] = true
		}
		if m.Tiles[i].RiverMask != 0 {
			rivered++
		}
	}
	assert.GreaterOrEqual(t, len(kinds), 3, "terrain variety")
	assert.Positive(t, rivered, "at least one river")

	require.Len(t, m.StartingPositions, 4)
	for _, p := range m.StartingPositions {
		assert.True(t, g.At(p.X, p.Y).Terrain.IsLand())
	}
}

// Scenario 2: larger random map keeps a substantial continent
func TestGenerate_LargeRandomMap(t *testing.T) {
	s := newService(t)
	cfg := DefaultConfig(80, 50)

	m, err := s.Generate(context.Background(), []byte("2"), cfg, roster(6))
	require.NoError(t, err)

	g := grid(m)
	lp := g.LandPercent()
	assert.GreaterOrEqual(t, lp, 25.0)
	assert.LessOrEqual(t, lp, 35.0)

	sizes := map[int]int{}
	for i := range m.Tiles {
		if m.Tiles[i].Terrain.IsLand() {
			sizes[m.Tiles[i].ContinentID]++
		}
	}
	largest := 0
	for _, n := range sizes {
		if n > largest {
			largest = n
		}
	}
	assert.GreaterOrEqual(t, largest, 80, "a large map grows at least one substantial continent")
}

// Scenario 3: fractal map with a raised land target
func TestGenerate_FractalMap(t *testing.T) {
	s := newService(t)
	cfg := DefaultConfig(60, 40)
	cfg.Generator = ModeFractal
	cfg.LandPercent = 40

	m, err := s.Generate(context.Background(), []byte("fractal-A"), cfg, roster(4))
	require.NoError(t, err)

	g := grid(m)
	lp := g.LandPercent()
	assert.GreaterOrEqual(t, lp, 35.0)
	assert.LessOrEqual(t, lp, 45.0)

	continents := map[int]bool{}
	kinds := map[tile.TerrainType]bool{}
	rivered := 0
	for i := range m.Tiles {
		if m.Tiles[i].Terrain.IsLand() {
			continents[m.Tiles[i].ContinentID] = true
			kinds[m.Tiles[i].Terrain] = true
		}
		if m.Tiles[i].RiverMask != 0 {
			rivered++
		}
	}
	assert.GreaterOrEqual(t, len(continents), 2)
	assert.GreaterOrEqual(t, rivered, 3, "several river networks expected")
	assert.True(t, kinds[tile.TerrainMountains], "steepness must yield mountains in fractal mode")
}

// Scenario 4: island mode with the TwoOnThree spawn policy
func TestGenerate_IslandMap(t *testing.T) {
	s := newService(t)
	cfg := DefaultConfig(60, 40)
	cfg.Generator = ModeIsland
	cfg.StartPosMode = startpos.TwoOnThree

	m, err := s.Generate(context.Background(), []byte("island-A"), cfg, roster(6))
	require.NoError(t, err)

	g := grid(m)
	perContinent := map[int]int{}
	for _, p := range m.StartingPositions {
		perContinent[g.At(p.X, p.Y).ContinentID]++
	}
	for id, n := range perContinent {
		assert.LessOrEqual(t, n, 4, "continent %d exceeds the TwoOnThree cap", id)
	}

	sizes := map[int]int{}
	totalLand := 0
	for i := range m.Tiles {
		if m.Tiles[i].Terrain.IsLand() {
			sizes[m.Tiles[i].ContinentID]++
			totalLand++
		}
	}
	for id, n := range sizes {
		assert.LessOrEqual(t, n*100, totalLand*40,
			"continent %d holds more than 40%% of the land", id)
	}
}

// Scenario 5: identical inputs give byte-identical output
func TestGenerate_Deterministic(t *testing.T) {
	s := newService(t)
	cfg := DefaultConfig(40, 25)
	players := roster(4)

	a, err := s.Generate(context.Background(), []byte("repeat"), cfg, players)
	require.NoError(t, err)
	b, err := s.Generate(context.Background(), []byte("repeat"), cfg, players)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

// Scenario 6: too many players for the map area
func TestGenerate_TooManyPlayers(t *testing.T) {
	s := newService(t)
	cfg := DefaultConfig(40, 25)

	_, err := s.Generate(context.Background(), []byte("crowd"), cfg, roster(20))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidConfig))
}

func TestGenerate_InvalidConfigs(t *testing.T) {
	s := newService(t)
	players := roster(2)

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"narrow", func(c *Config) { c.Width = 7 }},
		{"tiny area", func(c *Config) { c.Width = 8; c.Height = 7 }},
		{"land too low", func(c *Config) { c.LandPercent = 10 }},
		{"land too high", func(c *Config) { c.LandPercent = 90 }},
		{"bad mode", func(c *Config) { c.Generator = "perlin" }},
		{"bad spawn mode", func(c *Config) { c.StartPosMode = "everywhere" }},
		{"steepness", func(c *Config) { c.Steepness = 101 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig(40, 25)
			tc.mutate(&cfg)
			_, err := s.Generate(context.Background(), []byte("x"), cfg, players)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidConfig), "got %v", err)
		})
	}

	_, err := s.Generate(context.Background(), []byte("x"), DefaultConfig(40, 25), nil)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidConfig))
}

func TestGenerate_Cancelled(t *testing.T) {
	s := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Generate(ctx, []byte("1"), DefaultConfig(40, 25), roster(2))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeCancelled))
}

func TestGenerate_FairMode(t *testing.T) {
	s := newService(t)
	cfg := DefaultConfig(60, 40)
	cfg.Generator = ModeFair

	m, err := s.Generate(context.Background(), []byte("fair-1"), cfg, roster(4))
	require.NoError(t, err)
	require.Len(t, m.StartingPositions, 4)

	g := grid(m)
	lp := g.LandPercent()
	assert.GreaterOrEqual(t, lp, 25.0)
	assert.LessOrEqual(t, lp, 35.0)
}

func TestGenerate_SeedRoundTrip(t *testing.T) {
	s := newService(t)
	m, err := s.Generate(context.Background(), []byte("keepsake"), DefaultConfig(40, 25), roster(2))
	require.NoError(t, err)
	assert.Equal(t, []byte("keepsake"), m.Seed)
}

func TestWithDefaults(t *testing.T) {
	cfg := Config{Width: 40, Height: 25}
	filled := cfg.withDefaults()

	assert.Equal(t, ModeRandom, filled.Generator)
	assert.Equal(t, 30, filled.LandPercent)
	assert.Equal(t, 30, filled.Steepness)
	assert.Equal(t, 50, filled.TemperatureParam)
	assert.Equal(t, startpos.Variable, filled.StartPosMode)
	assert.Equal(t, 15, filled.TerrainPercentages.Desert)
}

func TestAdjustedPercentages(t *testing.T) {
	cfg := DefaultConfig(40, 25)

	first := cfg.adjustedPercentages(0, 5)
	assert.Equal(t, cfg.TerrainPercentages, first)

	last := cfg.adjustedPercentages(4, 5)
	assert.Equal(t, cfg.TerrainPercentages.Forest*150/100, last.Forest)
	assert.Equal(t, cfg.TerrainPercentages.Swamp*150/100, last.Swamp)

	mid := cfg.adjustedPercentages(2, 5)
	assert.GreaterOrEqual(t, mid.Forest, first.Forest)
	assert.LessOrEqual(t, mid.Forest, last.Forest)
}

func TestMaxPlayers(t *testing.T) {
	cfg := DefaultConfig(40, 25) // 1000 tiles, 30% land -> 300/32 = 9
	assert.Equal(t, 9, cfg.maxPlayers())

	big := DefaultConfig(80, 50) // 4000 tiles -> 1200/32 = 37
	assert.Equal(t, 37, big.maxPlayers())
}
