package geography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civmap-backend/internal/worldgen/tile"
)

func flatMap(w, h int) *HeightMap {
	hm := NewHeightMap(w, h)
	for i := range hm.Vals {
		hm.Vals[i] = 100
	}
	hm.ShoreLevel = 120 // everything below water: no altitude cooling
	return hm
}

func TestNewTemperatureMap_Bands(t *testing.T) {
	hm := flatMap(10, 100)
	tm := NewTemperatureMap(hm, 50)

	// Equator is tropical, poles are frozen
	assert.Equal(t, tile.TempTropical, tm.Class(5, 50))
	assert.Equal(t, tile.TempFrozen, tm.Class(5, 0))
	assert.Equal(t, tile.TempFrozen, tm.Class(5, 99))

	// All four classes appear on a tall map
	seen := map[tile.TemperatureType]bool{}
	for y := 0; y < 100; y++ {
		seen[tm.Class(5, y)] = true
	}
	require.Len(t, seen, 4)

	// Classes are symmetric around the equator
	assert.Equal(t, tm.Class(5, 25), tm.Class(5, 75))
}

func TestNewTemperatureMap_ParamShifts(t *testing.T) {
	hm := flatMap(10, 100)
	cold := NewTemperatureMap(hm, 0)
	warm := NewTemperatureMap(hm, 100)

	colder := 0
	for y := 0; y < 100; y++ {
		if cold.Class(5, y) < warm.Class(5, y) {
			colder++
		}
	}
	assert.Positive(t, colder, "a lower parameter must cool some rows")

	// Warm worlds keep a wider tropical belt
	tropicalWarm, tropicalCold := 0, 0
	for y := 0; y < 100; y++ {
		if warm.Class(5, y) == tile.TempTropical {
			tropicalWarm++
		}
		if cold.Class(5, y) == tile.TempTropical {
			tropicalCold++
		}
	}
	assert.Greater(t, tropicalWarm, tropicalCold)
}

func TestNewTemperatureMap_AltitudeCools(t *testing.T) {
	hm := NewHeightMap(2, 100)
	hm.ShoreLevel = 50
	for y := 0; y < 100; y++ {
		hm.Set(0, y, 40)  // sea level
		hm.Set(1, y, 250) // high peak
	}
	tm := NewTemperatureMap(hm, 50)

	// At the equator the peak is colder than the lowland
	assert.Less(t, int(tm.Class(1, 50)), int(tm.Class(0, 50)))
}

func TestHasType(t *testing.T) {
	hm := flatMap(10, 100)
	tm := NewTemperatureMap(hm, 50)

	assert.True(t, tm.HasType(5, 50, tile.TTHot))
	assert.False(t, tm.HasType(5, 50, tile.TTNHot))
	assert.True(t, tm.HasType(5, 0, tile.TTNHot))
	assert.True(t, tm.HasType(5, 0, tile.TTAll))
	assert.False(t, tm.HasType(-1, 0, tile.TTAll))
}
