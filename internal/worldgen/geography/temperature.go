package geography

import (
	"civmap-backend/internal/worldgen/tile"
)

// Warmth thresholds for the default temperature parameter (50). The
// parameter shifts all three cuts: higher values warm the whole map.
const (
	tropicalCut  = 750
	temperateCut = 450
	coldCut      = 150
)

// TemperatureMap assigns one climate class per tile from colatitude,
// elevation, and the temperature parameter.
type TemperatureMap struct {
	Width   int
	Height  int
	classes []tile.TemperatureType
}

// NewTemperatureMap derives the climate classes from a normalized height
// map. High ground above the shore cools with altitude.
func NewTemperatureMap(hm *HeightMap, temperatureParam int) *TemperatureMap {
	tm := &TemperatureMap{
		Width:   hm.Width,
		Height:  hm.Height,
		classes: make([]tile.TemperatureType, hm.Width*hm.Height),
	}

	shift := 5 * (temperatureParam - 50)

	for y := 0; y < hm.Height; y++ {
		colat := hm.Colatitude(y)
		for x := 0; x < hm.Width; x++ {
			warmth := MaxColatitude - colat
			if elev := hm.Get(x, y); elev > hm.ShoreLevel {
				warmth -= 2 * (elev - hm.ShoreLevel)
			}

			var class tile.TemperatureType
			switch {
			case warmth >= tropicalCut-shift:
				class = tile.TempTropical
			case warmth >= temperateCut-shift:
				class = tile.TempTemperate
			case warmth >= coldCut-shift:
				class = tile.TempCold
			default:
				class = tile.TempFrozen
			}
			tm.classes[y*hm.Width+x] = class
		}
	}
	return tm
}

// Class returns the climate class at (x, y)
func (tm *TemperatureMap) Class(x, y int) tile.TemperatureType {
	if x < 0 || x >= tm.Width || y < 0 || y >= tm.Height {
		return 0
	}
	return tm.classes[y*tm.Width+x]
}

// HasType reports whether the class bit at (x, y) intersects the mask
func (tm *TemperatureMap) HasType(x, y int, mask tile.TemperatureType) bool {
	return tm.Class(x, y)&mask != 0
}
