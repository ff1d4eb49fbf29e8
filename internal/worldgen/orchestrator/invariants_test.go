package orchestrator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"civmap-backend/internal/worldgen/tile"
	"civmap-backend/internal/worldgen/validate"
)

// TestGenerate_InvariantsAcrossModes sweeps every mode through the full
// validator, exercising the output contract end to end.
func TestGenerate_InvariantsAcrossModes(t *testing.T) {
	s := newService(t)

	cases := []struct {
		name string
		seed string
		mode GeneratorMode
	}{
		{"random", "inv-random", ModeRandom},
		{"fractal", "inv-fractal", ModeFractal},
		{"island", "inv-island", ModeIsland},
		{"fair", "inv-fair", ModeFair},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig(50, 36)
			cfg.Generator = tc.mode
			players := roster(4)

			m, err := s.Generate(context.Background(), []byte(tc.seed), cfg, players)
			require.NoError(t, err)

			res := validate.Check(m, cfg.LandPercent, len(players), 3, cfg.StartPosMode)
			require.True(t, res.OK, "validator rejects %s output: %v", tc.name, res.Errors)

			// Ocean carries no continent, land always does, lakes adopt one
			for i := range m.Tiles {
				tl := &m.Tiles[i]
				switch {
				case tl.Terrain.IsOcean():
					require.Zero(t, tl.ContinentID)
				case tl.Terrain == tile.TerrainLake:
					require.Positive(t, tl.ContinentID)
				default:
					require.Positive(t, tl.ContinentID)
				}
			}

			// Final terrain properties travel with the tiles
			for i := range m.Tiles {
				if m.Tiles[i].Terrain == tile.TerrainMountains {
					require.Equal(t, 70, m.Tiles[i].Properties.Mountainous)
				}
			}
		})
	}
}
