package geography

import (
	"civmap-backend/internal/worldgen/intmap"
	"civmap-backend/internal/worldgen/rng"
)

// GenerateFractal builds elevation by recursive subdivision of a 6x6 grid
// of seed heights. Edge seeds are biased downward so map borders drift to
// ocean; the bias grows as landPercent shrinks. The finished surface is
// equalized onto [0, HMapMaxLevel] so calibration anchors on the same
// construction scale as the random generator.
func GenerateFractal(width, height, landPercent int, r *rng.Stream) *HeightMap {
	hm := NewHeightMap(width, height)
	g := &fractalGen{
		hm:  hm,
		r:   r,
		set: make([]bool, width*height),
	}

	const div = 5 // 5x5 blocks, 6x6 corner points
	step := width + height
	avoidEdge := (100-landPercent)*step/100 + step/3

	xs := make([]int, div+1)
	ys := make([]int, div+1)
	for i := 0; i <= div; i++ {
		xs[i] = i * (width - 1) / div
		ys[i] = i * (height - 1) / div
	}

	for j := 0; j <= div; j++ {
		for i := 0; i <= div; i++ {
			val := r.Range(-step, step+1)
			if i == 0 || i == div || j == 0 || j == div {
				val -= avoidEdge
			}
			g.place(xs[i], ys[j], val)
		}
	}

	for j := 0; j < div; j++ {
		for i := 0; i < div; i++ {
			g.subdivide(step, xs[i], ys[j], xs[i+1], ys[j+1])
		}
	}

	// Unset cells sit between grid lines on tiny maps; fill from the
	// nearest assigned cell to the left
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !g.set[y*width+x] {
				hm.Set(x, y, hm.Get(x-1, y))
			}
		}
	}

	intmap.Adjust(hm.Vals, width, height, 0, HMapMaxLevel)

	return hm
}

type fractalGen struct {
	hm  *HeightMap
	r   *rng.Stream
	set []bool
}

// place assigns a height once; repeated writes to the same cell keep the
// first value so subdivision seams stay consistent
func (g *fractalGen) place(x, y, val int) {
	if x < 0 || x >= g.hm.Width || y < 0 || y >= g.hm.Height {
		return
	}
	idx := y*g.hm.Width + x
	if g.set[idx] {
		return
	}
	g.set[idx] = true
	g.hm.Vals[idx] = val
}

// subdivide performs diamond-square midpoint displacement over one block:
// each midpoint is the corner average plus uniform noise in
// [-step/2, step/2], recursing with step scaled by 2/3.
func (g *fractalGen) subdivide(step, x0, y0, x1, y1 int) {
	if x1-x0 <= 1 && y1-y0 <= 1 {
		return
	}
	xm := (x0 + x1) / 2
	ym := (y0 + y1) / 2

	v00 := g.hm.Get(x0, y0)
	v10 := g.hm.Get(x1, y0)
	v01 := g.hm.Get(x0, y1)
	v11 := g.hm.Get(x1, y1)

	noise := func() int { return g.r.Range(-step/2, step/2+1) }

	g.place(xm, y0, (v00+v10)/2+noise())
	g.place(xm, y1, (v01+v11)/2+noise())
	g.place(x0, ym, (v00+v01)/2+noise())
	g.place(x1, ym, (v10+v11)/2+noise())
	g.place(xm, ym, (v00+v10+v01+v11)/4+noise())

	next := 2 * step / 3
	g.subdivide(next, x0, y0, xm, ym)
	g.subdivide(next, xm, y0, x1, ym)
	g.subdivide(next, x0, ym, xm, y1)
	g.subdivide(next, xm, ym, x1, y1)
}
