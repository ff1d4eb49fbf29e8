package intmap

// Separable smoothing kernel applied once per axis
var kernel = [5]float64{0.13, 0.19, 0.37, 0.19, 0.13}

// Smooth applies a two-pass separable convolution (X then Y) with a fixed
// 5-tap kernel. When a tap falls outside the map the normalization depends
// on zeroesAtEdges: false divides by the sum of the taps actually present,
// true divides by 1 so value bleeds away near edges. Results are truncated
// to integers on write.
func Smooth(m []int, w, h int, zeroesAtEdges bool) {
	tmp := make([]int, len(m))

	// X pass
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0.0
			weight := 0.0
			for k := -2; k <= 2; k++ {
				nx := x + k
				if nx < 0 || nx >= w {
					continue
				}
				sum += kernel[k+2] * float64(m[y*w+nx])
				weight += kernel[k+2]
			}
			if zeroesAtEdges {
				weight = 1
			}
			tmp[y*w+x] = int(sum / weight)
		}
	}

	// Y pass
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum := 0.0
			weight := 0.0
			for k := -2; k <= 2; k++ {
				ny := y + k
				if ny < 0 || ny >= h {
					continue
				}
				sum += kernel[k+2] * float64(tmp[ny*w+x])
				weight += kernel[k+2]
			}
			if zeroesAtEdges {
				weight = 1
			}
			m[y*w+x] = int(sum / weight)
		}
	}
}

// Adjust histogram-equalizes every cell into [lo, hi]
func Adjust(m []int, w, h, lo, hi int) {
	AdjustFiltered(m, w, h, lo, hi, nil)
}

// AdjustFiltered histogram-equalizes the filtered cells of the map into
// [lo, hi]; cells rejected by the filter are left untouched. A nil filter
// accepts every cell. When all filtered cells share one value they are all
// set to lo.
func AdjustFiltered(m []int, w, h, lo, hi int, filter func(x, y int) bool) {
	minVal, maxVal := 0, 0
	first := true
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if filter != nil && !filter(x, y) {
				continue
			}
			v := m[y*w+x]
			if first {
				minVal, maxVal = v, v
				first = false
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if first {
		return // nothing selected
	}
	if minVal == maxVal {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if filter == nil || filter(x, y) {
					m[y*w+x] = lo
				}
			}
		}
		return
	}

	size := 1 + maxVal - minVal
	freq := make([]int, size)
	total := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if filter != nil && !filter(x, y) {
				continue
			}
			freq[m[y*w+x]-minVal]++
			total++
		}
	}

	// Cumulative distribution: count of cells at or below each value
	count := 0
	for i := 0; i < size; i++ {
		count += freq[i]
		freq[i] = count
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if filter != nil && !filter(x, y) {
				continue
			}
			m[y*w+x] = lo + freq[m[y*w+x]-minVal]*(hi-lo)/total
		}
	}
}

// FloodFill collects the 4-connected component containing (sx, sy) among
// cells accepted by include, using an explicit LIFO stack. Cells already
// marked in visited are skipped; filled cells are marked. Returns the
// indices (y*w+x) of the component, or nil when the seed is not included.
func FloodFill(w, h, sx, sy int, include func(x, y int) bool, visited []bool) []int {
	if sx < 0 || sx >= w || sy < 0 || sy >= h {
		return nil
	}
	start := sy*w + sx
	if visited[start] || !include(sx, sy) {
		return nil
	}

	var component []int
	stack := []int{start}
	visited[start] = true

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, idx)

		x, y := idx%w, idx/w
		for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			nidx := ny*w + nx
			if visited[nidx] || !include(nx, ny) {
				continue
			}
			visited[nidx] = true
			stack = append(stack, nidx)
		}
	}
	return component
}
