package geography

import (
	"github.com/aquilax/go-perlin"

	"civmap-backend/internal/worldgen/intmap"
	"civmap-backend/internal/worldgen/rng"
)

// Perlin parameters for the moisture variation octave
const (
	wetnessAlpha = 2.
	wetnessBeta  = 2.
	wetnessN     = 3
	wetnessScale = 0.1
)

// WetnessMap derives a smoothed moisture field in [0, 100] from height
// deviations and colatitude, with a perlin octave supplying local
// variation. The octave is truncated to integers before smoothing so the
// result stays bit-identical across platforms.
func WetnessMap(hm *HeightMap, r *rng.Stream) []int {
	noise := perlin.NewPerlin(wetnessAlpha, wetnessBeta, wetnessN, r.Int63())

	wet := make([]int, len(hm.Vals))
	for y := 0; y < hm.Height; y++ {
		colat := hm.Colatitude(y)
		for x := 0; x < hm.Width; x++ {
			w := 500

			// High ground dries out
			if elev := hm.Get(x, y); elev > hm.ShoreLevel {
				w -= 2 * (elev - hm.ShoreLevel)
			}

			// The equatorial belt is wetter
			w += (MaxColatitude - colat) / 5

			// Local variation
			w += int(noise.Noise2D(float64(x)*wetnessScale, float64(y)*wetnessScale) * 200)

			wet[y*hm.Width+x] = w
		}
	}

	intmap.Smooth(wet, hm.Width, hm.Height, false)
	intmap.Adjust(wet, hm.Width, hm.Height, 0, 100)
	return wet
}
