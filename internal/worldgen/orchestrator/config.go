package orchestrator

import (
	apperrors "civmap-backend/internal/errors"
	"civmap-backend/internal/worldgen/startpos"
)

// GeneratorMode selects the height and terrain pipeline
type GeneratorMode string

const (
	ModeRandom  GeneratorMode = "random"
	ModeFractal GeneratorMode = "fractal"
	ModeIsland  GeneratorMode = "island"
	ModeFair    GeneratorMode = "fair"
)

// TerrainPercentages drive the island generator's bucket accounts
type TerrainPercentages struct {
	River    int
	Mountain int
	Desert   int
	Forest   int
	Swamp    int
}

// Config is the immutable generation request
type Config struct {
	Width              int
	Height             int
	Generator          GeneratorMode
	LandPercent        int // target land share, 15-85
	Steepness          int // 0-100, higher means more mountains
	Flatpoles          int // 0-100, polar elevation damping
	TemperatureParam   int // 0-100, global warmth
	TerrainPercentages TerrainPercentages
	StartPosMode       startpos.Mode
}

// DefaultConfig returns the canonical settings for a map size
func DefaultConfig(width, height int) Config {
	return Config{
		Width:            width,
		Height:           height,
		Generator:        ModeRandom,
		LandPercent:      30,
		Steepness:        30,
		Flatpoles:        100,
		TemperatureParam: 50,
		TerrainPercentages: TerrainPercentages{
			River:    15,
			Mountain: 15,
			Desert:   15,
			Forest:   20,
			Swamp:    10,
		},
		StartPosMode: startpos.Variable,
	}
}

// withDefaults fills unset fields from the canonical settings. Flatpoles
// cannot be defaulted this way because 0 is meaningful; callers wanting
// flat poles ask for them explicitly through DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig(c.Width, c.Height)
	if c.Generator == "" {
		c.Generator = def.Generator
	}
	if c.LandPercent == 0 {
		c.LandPercent = def.LandPercent
	}
	if c.Steepness == 0 {
		c.Steepness = def.Steepness
	}
	if c.TemperatureParam == 0 {
		c.TemperatureParam = def.TemperatureParam
	}
	if c.TerrainPercentages == (TerrainPercentages{}) {
		c.TerrainPercentages = def.TerrainPercentages
	}
	if c.StartPosMode == "" {
		c.StartPosMode = def.StartPosMode
	}
	return c
}

// maxPlayers caps the roster by expected land area: one player for every
// 32 land tiles the target implies
func (c Config) maxPlayers() int {
	limit := c.Width * c.Height * c.LandPercent / 100 / 32
	if limit < 1 {
		limit = 1
	}
	return limit
}

// validate rejects configurations the pipeline cannot honor
func (c Config) validate(players int) error {
	if c.Width < 8 {
		return apperrors.NewInvalidConfig("width %d below minimum 8", c.Width)
	}
	if c.Height < 1 {
		return apperrors.NewInvalidConfig("height %d below minimum 1", c.Height)
	}
	if c.Width*c.Height < 64 {
		return apperrors.NewInvalidConfig("map area %d below minimum 64", c.Width*c.Height)
	}
	if c.LandPercent < 15 || c.LandPercent > 85 {
		return apperrors.NewInvalidConfig("landPercent %d outside [15, 85]", c.LandPercent)
	}
	if c.Steepness < 0 || c.Steepness > 100 {
		return apperrors.NewInvalidConfig("steepness %d outside [0, 100]", c.Steepness)
	}
	if c.Flatpoles < 0 || c.Flatpoles > 100 {
		return apperrors.NewInvalidConfig("flatpoles %d outside [0, 100]", c.Flatpoles)
	}
	if c.TemperatureParam < 0 || c.TemperatureParam > 100 {
		return apperrors.NewInvalidConfig("temperatureParam %d outside [0, 100]", c.TemperatureParam)
	}
	switch c.Generator {
	case ModeRandom, ModeFractal, ModeIsland, ModeFair:
	default:
		return apperrors.NewInvalidConfig("unknown generator mode %q", c.Generator)
	}
	switch c.StartPosMode {
	case startpos.SingleContinent, startpos.TwoOnThree, startpos.AllContinents, startpos.Variable:
	default:
		return apperrors.NewInvalidConfig("unknown start position mode %q", c.StartPosMode)
	}
	if players < 1 {
		return apperrors.NewInvalidConfig("at least one player required")
	}
	if limit := c.maxPlayers(); players > limit {
		return apperrors.NewInvalidConfig("%d players exceed map capacity %d", players, limit)
	}
	return nil
}

// adjustedPercentages scales the terrain percentages for a Fair retry:
// the factor ramps from 1.0 on the first attempt to 1.5 on the last
func (c Config) adjustedPercentages(attempt, maxAttempts int) TerrainPercentages {
	p := c.TerrainPercentages
	if maxAttempts <= 1 || attempt <= 0 {
		return p
	}
	num := 100 + 50*attempt/(maxAttempts-1)
	p.River = p.River * num / 100
	p.Mountain = p.Mountain * num / 100
	p.Desert = p.Desert * num / 100
	p.Forest = p.Forest * num / 100
	p.Swamp = p.Swamp * num / 100
	return p
}
