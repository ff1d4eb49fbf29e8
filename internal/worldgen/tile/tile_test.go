package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerrainType_Classes(t *testing.T) {
	assert.True(t, TerrainDeepOcean.IsOcean())
	assert.True(t, TerrainCoast.IsOcean())
	assert.False(t, TerrainLake.IsOcean())
	assert.True(t, TerrainLake.IsWater())
	assert.False(t, TerrainLake.IsLand())
	assert.True(t, TerrainGrassland.IsLand())
	assert.True(t, TerrainMountains.IsLand())
	assert.False(t, TerrainType("").IsLand())
}

func TestTemperatureMasks(t *testing.T) {
	assert.NotZero(t, TempTropical&TTHot)
	assert.NotZero(t, TempTemperate&TTHot)
	assert.Zero(t, TempFrozen&TTHot)
	assert.Zero(t, TempFrozen&TTNFrozen)
	assert.NotZero(t, TempCold&TTNHot)
	assert.Equal(t, TTAll, TTHot|TTNHot)
}

func TestProperties_Value(t *testing.T) {
	p := Properties{Mountainous: 70, Green: 20, Frozen: 5}
	assert.Equal(t, 70, p.Value(PropMountainous))
	assert.Equal(t, 20, p.Value(PropGreen))
	assert.Equal(t, 5, p.Value(PropFrozen))
	assert.Equal(t, 0, p.Value(PropWet))
	assert.Equal(t, 0, p.Value(PropertyName("bogus")))
}

func TestNewGrid(t *testing.T) {
	g := NewGrid(7, 5)
	assert.Len(t, g.Tiles, 35)
	assert.Equal(t, 3, g.At(3, 4).X)
	assert.Equal(t, 4, g.At(3, 4).Y)
	assert.Nil(t, g.At(-1, 0))
	assert.Nil(t, g.At(7, 0))
	assert.Nil(t, g.At(0, 5))
}

func TestGrid_Neighbors(t *testing.T) {
	g := NewGrid(3, 3)

	var order []int
	g.Neighbors4(1, 1, func(n *Tile) { order = append(order, n.Y*3+n.X) })
	// N, E, S, W
	assert.Equal(t, []int{1, 5, 7, 3}, order)

	count := 0
	g.Neighbors8(0, 0, func(n *Tile) { count++ })
	assert.Equal(t, 3, count)
}

func TestGrid_LandPercent(t *testing.T) {
	g := NewGrid(10, 10)
	for i := range g.Tiles {
		g.Tiles[i].Terrain = TerrainOcean
	}
	for i := 0; i < 30; i++ {
		g.Tiles[i].Terrain = TerrainGrassland
	}
	assert.Equal(t, 30, g.CountLand())
	assert.InDelta(t, 30.0, g.LandPercent(), 0.001)
}

func TestChebyshev(t *testing.T) {
	assert.Equal(t, 0, Chebyshev(2, 2, 2, 2))
	assert.Equal(t, 5, Chebyshev(0, 0, 5, 3))
	assert.Equal(t, 4, Chebyshev(3, 7, 1, 3))
}
