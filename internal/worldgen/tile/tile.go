package tile

import (
	"github.com/google/uuid"
)

// TerrainType classifies a tile. The set is closed; the ruleset assigns
// placement properties to each member.
type TerrainType string

const (
	TerrainDeepOcean TerrainType = "DeepOcean"
	TerrainOcean     TerrainType = "Ocean"
	TerrainCoast     TerrainType = "Coast"
	TerrainLake      TerrainType = "Lake"
	TerrainPlains    TerrainType = "Plains"
	TerrainGrassland TerrainType = "Grassland"
	TerrainDesert    TerrainType = "Desert"
	TerrainTundra    TerrainType = "Tundra"
	TerrainForest    TerrainType = "Forest"
	TerrainJungle    TerrainType = "Jungle"
	TerrainHills     TerrainType = "Hills"
	TerrainMountains TerrainType = "Mountains"
	TerrainSwamp     TerrainType = "Swamp"
)

// LandTerrains lists every terrain that counts as land, in a fixed order
// so weighted selection consumes randomness deterministically.
var LandTerrains = []TerrainType{
	TerrainPlains, TerrainGrassland, TerrainDesert, TerrainTundra,
	TerrainForest, TerrainJungle, TerrainHills, TerrainMountains, TerrainSwamp,
}

// IsOcean reports whether the terrain is salt water
func (t TerrainType) IsOcean() bool {
	return t == TerrainDeepOcean || t == TerrainOcean || t == TerrainCoast
}

// IsWater reports whether the terrain is any water body
func (t TerrainType) IsWater() bool {
	return t.IsOcean() || t == TerrainLake
}

// IsLand reports whether the terrain is dry land
func (t TerrainType) IsLand() bool {
	return t != "" && !t.IsWater()
}

// TemperatureType is a climate class bit. Classes compose into masks for
// the selectors used by terrain placement.
type TemperatureType uint8

const (
	TempFrozen    TemperatureType = 1
	TempCold      TemperatureType = 2
	TempTemperate TemperatureType = 4
	TempTropical  TemperatureType = 8

	TTHot     = TempTemperate | TempTropical
	TTNHot    = TempFrozen | TempCold
	TTNFrozen = TempCold | TempTemperate | TempTropical
	TTAll     = TempFrozen | TempCold | TempTemperate | TempTropical
)

// River mask bits: which cardinal neighbors a river tile connects to
const (
	RiverNorth uint8 = 1
	RiverEast  uint8 = 2
	RiverSouth uint8 = 4
	RiverWest  uint8 = 8
)

// Properties is the fixed-shape record of placement affinities carried by
// each terrain, every value in [0, 100]. Selection weights come from these,
// never from hard-coded tables.
type Properties struct {
	Mountainous int
	Dry         int
	Wet         int
	Foliage     int
	Cold        int
	Frozen      int
	Tropical    int
	Temperate   int
	Green       int
	Unused      int
}

// PropertyName selects one affinity out of a Properties record
type PropertyName string

const (
	PropMountainous PropertyName = "mountainous"
	PropDry         PropertyName = "dry"
	PropWet         PropertyName = "wet"
	PropFoliage     PropertyName = "foliage"
	PropCold        PropertyName = "cold"
	PropFrozen      PropertyName = "frozen"
	PropTropical    PropertyName = "tropical"
	PropTemperate   PropertyName = "temperate"
	PropGreen       PropertyName = "green"
	PropUnused      PropertyName = "unused"
)

// Value returns the named affinity
func (p Properties) Value(name PropertyName) int {
	switch name {
	case PropMountainous:
		return p.Mountainous
	case PropDry:
		return p.Dry
	case PropWet:
		return p.Wet
	case PropFoliage:
		return p.Foliage
	case PropCold:
		return p.Cold
	case PropFrozen:
		return p.Frozen
	case PropTropical:
		return p.Tropical
	case PropTemperate:
		return p.Temperate
	case PropGreen:
		return p.Green
	case PropUnused:
		return p.Unused
	}
	return 0
}

// Tile is one cell of the generated map
type Tile struct {
	X           int             `json:"x"`
	Y           int             `json:"y"`
	Terrain     TerrainType     `json:"terrain"`
	Elevation   int             `json:"elevation"` // [0, 255] after normalization
	Temperature TemperatureType `json:"temperature"`
	ContinentID int             `json:"continentId"` // 0 = ocean
	RiverMask   uint8           `json:"riverMask"`   // N=1 E=2 S=4 W=8
	Resource    string          `json:"resource,omitempty"`
	Properties  Properties      `json:"-"` // affinities of the final terrain
}

// StartPosition assigns a player to a spawn tile
type StartPosition struct {
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Player uuid.UUID `json:"player"`
}

// MapData is the generator's output artifact: pure data, suitable for
// serialization by the caller in any format.
type MapData struct {
	Width             int             `json:"width"`
	Height            int             `json:"height"`
	Tiles             []Tile          `json:"tiles"` // row-major
	StartingPositions []StartPosition `json:"startingPositions"`
	Seed              []byte          `json:"seed"`
}
