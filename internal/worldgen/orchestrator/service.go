// Package orchestrator wires the generation stages into the single
// synchronous generate operation: seed and config in, MapData or a typed
// error out. Generation is single-threaded and owns all of its state;
// independent generations can run concurrently because nothing is shared.
package orchestrator

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	apperrors "civmap-backend/internal/errors"
	"civmap-backend/internal/logging"
	"civmap-backend/internal/metrics"
	"civmap-backend/internal/worldgen/geography"
	"civmap-backend/internal/worldgen/island"
	"civmap-backend/internal/worldgen/ocean"
	"civmap-backend/internal/worldgen/resources"
	"civmap-backend/internal/worldgen/rivers"
	"civmap-backend/internal/worldgen/rng"
	"civmap-backend/internal/worldgen/ruleset"
	"civmap-backend/internal/worldgen/startpos"
	"civmap-backend/internal/worldgen/terrain"
	"civmap-backend/internal/worldgen/tile"
	"civmap-backend/internal/worldgen/validate"
)

const (
	// fairAttempts bounds the Fair mode retry loop
	fairAttempts = 5

	// lakeSizeThreshold: smaller enclosed water bodies become lakes
	lakeSizeThreshold = 15

	// Tiny-island size cutoffs per mode family
	tinyIslandModes   = 5
	tinyRandomFractal = 3
)

// Service orchestrates procedural map generation
type Service struct {
	rs  *ruleset.Ruleset
	log zerolog.Logger
}

// Option configures the Service
type Option func(*Service)

// WithRuleset overrides the embedded terrain and resource tables
func WithRuleset(rs *ruleset.Ruleset) Option {
	return func(s *Service) {
		s.rs = rs
	}
}

// WithLogger sets the service logger
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.log = logger
	}
}

// NewService creates a generator service backed by the default ruleset
func NewService(opts ...Option) (*Service, error) {
	s := &Service{log: log.Logger}
	for _, opt := range opts {
		opt(s)
	}
	if s.rs == nil {
		rs, err := ruleset.Default()
		if err != nil {
			return nil, err
		}
		s.rs = rs
	}
	return s, nil
}

// Generate produces a complete map from a seed, a configuration, and an
// ordered player list. It either returns a MapData satisfying every
// output invariant or a typed error; never a partial map.
func (s *Service) Generate(ctx context.Context, seed []byte, cfg Config, players []uuid.UUID) (*tile.MapData, error) {
	start := time.Now()
	cfg = cfg.withDefaults()

	if err := cfg.validate(len(players)); err != nil {
		metrics.RecordGeneration(string(cfg.Generator), apperrors.CodeOf(err))
		return nil, err
	}

	ctx = logging.WithLogger(ctx, s.log)
	r := rng.New(seed)

	attempts := 1
	if cfg.Generator == ModeFair {
		attempts = fairAttempts
	}

	var m *tile.MapData
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			metrics.RecordFairRetry()
			s.log.Debug().Int("attempt", attempt+1).Msg("fair mode re-attempt")
		}

		attemptCfg := cfg
		attemptCfg.TerrainPercentages = cfg.adjustedPercentages(attempt, attempts)

		m, err = s.runPipeline(ctx, seed, attemptCfg, players, r)
		if err == nil || apperrors.HasCode(err, apperrors.CodeCancelled) {
			break
		}
	}

	elapsed := time.Since(start)
	metrics.RecordDuration(elapsed.Seconds())
	if err != nil {
		metrics.RecordGeneration(string(cfg.Generator), apperrors.CodeOf(err))
		return nil, err
	}

	g := &tile.Grid{Width: m.Width, Height: m.Height, Tiles: m.Tiles}
	metrics.RecordGeneration(string(cfg.Generator), "ok")
	metrics.RecordLandPercent(g.LandPercent())
	s.log.Info().
		Str("mode", string(cfg.Generator)).
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Int("players", len(players)).
		Float64("land_percent", g.LandPercent()).
		Dur("duration", elapsed).
		Msg("map generated")

	return m, nil
}

// runPipeline executes the stages once, in dependency order, checking for
// cancellation between stages
func (s *Service) runPipeline(ctx context.Context, seed []byte, cfg Config, players []uuid.UUID, r *rng.Stream) (*tile.MapData, error) {
	if ctx.Err() != nil {
		return nil, apperrors.ErrCancelled
	}

	// 1. Heights
	stageStart := time.Now()
	var hm *geography.HeightMap
	if cfg.Generator == ModeRandom {
		hm = geography.GenerateRandom(cfg.Width, cfg.Height, len(players), r)
	} else {
		hm = geography.GenerateFractal(cfg.Width, cfg.Height, cfg.LandPercent, r)
	}

	// 2. Calibration. Poles flatten first so the rank-based shore keeps
	// the land target honest afterwards.
	hm.FlattenPoles(cfg.Flatpoles)
	hm.CalibrateShore(cfg.LandPercent)
	hm.CalibrateMountain(cfg.Steepness)
	hm.Fuzz(r)
	hm.Normalize()
	logging.StageLogger(ctx, "heightmap").Debug().
		Dur("duration", time.Since(stageStart)).
		Int("shore_level", hm.ShoreLevel).
		Int("mountain_level", hm.MountainLevel).
		Msg("heights calibrated")

	if ctx.Err() != nil {
		return nil, apperrors.ErrCancelled
	}

	// 3. Climate
	stageStart = time.Now()
	tm := geography.NewTemperatureMap(hm, cfg.TemperatureParam)
	wet := geography.WetnessMap(hm, r)
	logging.StageLogger(ctx, "climate").Debug().
		Dur("duration", time.Since(stageStart)).
		Msg("temperature and wetness ready")

	if ctx.Err() != nil {
		return nil, apperrors.ErrCancelled
	}

	// 4. Terrain
	stageStart = time.Now()
	g := tile.NewGrid(cfg.Width, cfg.Height)
	tinyThreshold := tinyRandomFractal
	if cfg.Generator == ModeIsland || cfg.Generator == ModeFair {
		tinyThreshold = tinyIslandModes
		pcts := island.Percentages{
			River:    cfg.TerrainPercentages.River,
			Mountain: cfg.TerrainPercentages.Mountain,
			Desert:   cfg.TerrainPercentages.Desert,
			Forest:   cfg.TerrainPercentages.Forest,
			Swamp:    cfg.TerrainPercentages.Swamp,
		}
		gen := island.New(g, hm, tm, wet, s.rs, r, pcts, cfg.LandPercent,
			logging.StageLogger(ctx, "island"))
		if err := gen.Generate(ctx, len(players)); err != nil {
			return nil, err
		}
	} else {
		terrain.Classify(g, hm, tm, wet, s.rs, r)
	}
	logging.StageLogger(ctx, "terrain").Debug().
		Dur("duration", time.Since(stageStart)).
		Float64("land_percent", g.LandPercent()).
		Msg("terrain placed")

	if ctx.Err() != nil {
		return nil, apperrors.ErrCancelled
	}

	// 5. Oceans, continents, lakes
	stageStart = time.Now()
	ocean.RefineDepth(g, hm)
	ocean.SmoothSubtypes(g, r)
	ocean.ApplyCoastDistance(g, r)
	continents := ocean.LabelContinents(g)
	if removed := ocean.RemoveTinyIslands(g, tinyThreshold); removed > 0 {
		continents = ocean.LabelContinents(g)
	}
	lakes := ocean.CreateLakes(g, tm, lakeSizeThreshold)
	logging.StageLogger(ctx, "ocean").Debug().
		Dur("duration", time.Since(stageStart)).
		Int("continents", continents).
		Int("lakes", lakes).
		Msg("oceans and continents resolved")

	if ctx.Err() != nil {
		return nil, apperrors.ErrCancelled
	}

	// 6. Rivers and resources
	stageStart = time.Now()
	networks := rivers.Generate(g, s.rs, r)
	placed := resources.Generate(g, s.rs, r)
	logging.StageLogger(ctx, "rivers").Debug().
		Dur("duration", time.Since(stageStart)).
		Int("networks", networks).
		Int("resources", placed).
		Msg("rivers and resources placed")

	if ctx.Err() != nil {
		return nil, apperrors.ErrCancelled
	}

	// 7. Starting positions
	stageStart = time.Now()
	positions, err := startpos.Place(g, players, cfg.StartPosMode)
	if err != nil {
		return nil, err
	}
	logging.StageLogger(ctx, "startpos").Debug().
		Dur("duration", time.Since(stageStart)).
		Int("positions", len(positions)).
		Msg("starting positions placed")

	// 8. Finalize and validate
	for i := range g.Tiles {
		g.Tiles[i].Properties = s.rs.Properties(g.Tiles[i].Terrain)
	}

	m := &tile.MapData{
		Width:             cfg.Width,
		Height:            cfg.Height,
		Tiles:             g.Tiles,
		StartingPositions: positions,
		Seed:              append([]byte(nil), seed...),
	}

	res := validate.Check(m, cfg.LandPercent, len(players), minSpacing(g, len(players)), cfg.StartPosMode)
	if !res.OK {
		return nil, apperrors.NewValidationFailed(res.Errors)
	}
	return m, nil
}

// minSpacing mirrors the placement stage's spacing formula
func minSpacing(g *tile.Grid, players int) int {
	spacing := int(math.Sqrt(float64(g.CountLand()) / float64(players)))
	if spacing < 3 {
		spacing = 3
	}
	return spacing
}
