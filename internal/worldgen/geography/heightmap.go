package geography

import (
	"math"
	"sort"

	"civmap-backend/internal/worldgen/intmap"
	"civmap-backend/internal/worldgen/rng"
)

const (
	// HMapMaxLevel is the working elevation ceiling during construction
	HMapMaxLevel = 1000

	// MaxColatitude is the colatitude at the poles; 0 is the equator
	MaxColatitude = 1000

	// IceBaseLevel bounds the polar bands used by flattening and climate
	IceBaseLevel = 200

	// OutputMaxLevel is the elevation ceiling after normalization
	OutputMaxLevel = 255
)

// HeightMap holds working elevations plus the calibrated water and
// mountain thresholds, expressed on the same scale as the elevations.
type HeightMap struct {
	Width         int
	Height        int
	Vals          []int
	ShoreLevel    int
	MountainLevel int
}

// NewHeightMap creates a zeroed height map
func NewHeightMap(width, height int) *HeightMap {
	return &HeightMap{
		Width:  width,
		Height: height,
		Vals:   make([]int, width*height),
	}
}

// Get returns the elevation at (x, y); out of bounds reads as 0
func (hm *HeightMap) Get(x, y int) int {
	if x < 0 || x >= hm.Width || y < 0 || y >= hm.Height {
		return 0
	}
	return hm.Vals[y*hm.Width+x]
}

// Set writes the elevation at (x, y); out of bounds writes are dropped
func (hm *HeightMap) Set(x, y, val int) {
	if x >= 0 && x < hm.Width && y >= 0 && y < hm.Height {
		hm.Vals[y*hm.Width+x] = val
	}
}

// Colatitude returns the scaled distance of a row from the equator:
// 0 at the equator, MaxColatitude at the poles.
func (hm *HeightMap) Colatitude(y int) int {
	half := float64(hm.Height) / 2
	d := math.Abs(float64(y) - half)
	c := int(d / half * MaxColatitude)
	if c > MaxColatitude {
		c = MaxColatitude
	}
	return c
}

// GenerateRandom fills the map with smoothed uniform noise. The smoothing
// count shrinks as the player count grows so crowded maps stay rugged.
func GenerateRandom(width, height, players int, r *rng.Stream) *HeightMap {
	hm := NewHeightMap(width, height)

	smooth := 1 + int(math.Sqrt(float64(width*height)))/10 - players/4
	if smooth < 1 {
		smooth = 1
	}

	for i := range hm.Vals {
		hm.Vals[i] = r.Intn(HMapMaxLevel * smooth)
	}
	for i := 0; i < smooth; i++ {
		intmap.Smooth(hm.Vals, width, height, false)
	}
	intmap.Adjust(hm.Vals, width, height, 0, HMapMaxLevel)

	return hm
}

// CalibrateShore fixes ShoreLevel so that landPercent of the map sits
// above water, within quantization error: the shore is the height at rank
// |map|*landPercent/100 from the top.
func (hm *HeightMap) CalibrateShore(landPercent int) {
	sorted := make([]int, len(hm.Vals))
	copy(sorted, hm.Vals)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	rank := len(sorted) * landPercent / 100
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	hm.ShoreLevel = sorted[rank]
}

// CalibrateMountain fixes MountainLevel from the steepness parameter:
// higher steepness raises the share of peaks that qualify.
func (hm *HeightMap) CalibrateMountain(steepness int) {
	hm.MountainLevel = hm.ShoreLevel + (HMapMaxLevel-hm.ShoreLevel)*(100-steepness)/100
}

// FlattenPoles damps elevation near the poles. The damping factor ramps
// from (100-flatpoles)/100 at the pole to 1.0 at 2.5*IceBaseLevel away
// from it; within half an IceBaseLevel of the pole the factor is capped
// at 0.1 unless flatpoles asks for less flattening than that. Cells in
// the polar band within 3 of a map edge are zeroed.
func (hm *HeightMap) FlattenPoles(flatpoles int) {
	band := 5 * IceBaseLevel / 2
	flat := float64(100-flatpoles) / 100

	for y := 0; y < hm.Height; y++ {
		polar := MaxColatitude - hm.Colatitude(y)
		if polar > band {
			continue
		}
		factor := (float64(polar) + float64(band-polar)*flat) / float64(band)
		if polar <= IceBaseLevel/2 {
			limit := math.Max(0.1, flat)
			if factor > limit {
				factor = limit
			}
		}
		for x := 0; x < hm.Width; x++ {
			if x < 3 || x >= hm.Width-3 || y < 3 || y >= hm.Height-3 {
				hm.Vals[y*hm.Width+x] = 0
				continue
			}
			hm.Vals[y*hm.Width+x] = int(float64(hm.Vals[y*hm.Width+x]) * factor)
		}
	}
}

// Fuzz adds +/-4 uniform noise to every cell
func (hm *HeightMap) Fuzz(r *rng.Stream) {
	for i := range hm.Vals {
		hm.Vals[i] += r.Intn(9) - 4
	}
}

// Normalize rescales elevations to [0, OutputMaxLevel] with the same
// affine map applied to the shore and mountain thresholds.
func (hm *HeightMap) Normalize() {
	minVal, maxVal := hm.Vals[0], hm.Vals[0]
	for _, v := range hm.Vals {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	span := maxVal - minVal
	if span == 0 {
		span = 1
	}

	rescale := func(v int) int {
		n := (v - minVal) * OutputMaxLevel / span
		if n < 0 {
			n = 0
		}
		if n > OutputMaxLevel {
			n = OutputMaxLevel
		}
		return n
	}

	for i, v := range hm.Vals {
		hm.Vals[i] = rescale(v)
	}
	hm.ShoreLevel = rescale(hm.ShoreLevel)
	hm.MountainLevel = rescale(hm.MountainLevel)
}
