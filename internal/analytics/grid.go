package analytics

import (
	"math"

	"github.com/paulmach/orb"
)

const defaultCellSizeDeg = 0.25

// pointGrid buckets sample points into fixed-size lng/lat cells so that a
// boundary only tests the points inside the cells its bound overlaps.
type pointGrid struct {
	samples  []sample
	cells    map[cellKey][]int
	cellSize float64
	origin   orb.Point
	// occupied cell range
	minCell cellKey
	maxCell cellKey
}

type cellKey struct {
	x int
	y int
}

func newPointGrid(samples []sample, cellSize float64) *pointGrid {
	if cellSize <= 0 {
		cellSize = defaultCellSizeDeg
	}

	grid := &pointGrid{
		samples:  samples,
		cells:    make(map[cellKey][]int),
		cellSize: cellSize,
	}

	if len(samples) == 0 {
		return grid
	}

	bound := samples[0].point.Bound()
	for _, s := range samples[1:] {
		bound = bound.Extend(s.point)
	}
	grid.origin = bound.Min

	for idx, s := range samples {
		key := grid.key(s.point)
		grid.cells[key] = append(grid.cells[key], idx)
		if idx == 0 {
			grid.minCell, grid.maxCell = key, key

			continue
		}
		grid.minCell.x = min(grid.minCell.x, key.x)
		grid.minCell.y = min(grid.minCell.y, key.y)
		grid.maxCell.x = max(grid.maxCell.x, key.x)
		grid.maxCell.y = max(grid.maxCell.y, key.y)
	}

	return grid
}

func (g *pointGrid) key(point orb.Point) cellKey {
	return cellKey{
		x: int(math.Floor((point[0] - g.origin[0]) / g.cellSize)),
		y: int(math.Floor((point[1] - g.origin[1]) / g.cellSize)),
	}
}

// within calls visit for every sample whose point lies in bound.
func (g *pointGrid) within(bound orb.Bound, visit func(s *sample)) {
	if len(g.samples) == 0 {
		return
	}

	minKey := g.key(bound.Min)
	maxKey := g.key(bound.Max)
	minKey.x = max(minKey.x, g.minCell.x)
	minKey.y = max(minKey.y, g.minCell.y)
	maxKey.x = min(maxKey.x, g.maxCell.x)
	maxKey.y = min(maxKey.y, g.maxCell.y)
	if minKey.x > maxKey.x || minKey.y > maxKey.y {
		return
	}

	// Sparse grids are cheaper to scan sample by sample.
	span := float64(maxKey.x-minKey.x+1) * float64(maxKey.y-minKey.y+1)
	if span > float64(len(g.samples)) {
		for idx := range g.samples {
			s := &g.samples[idx]
			if bound.Contains(s.point) {
				visit(s)
			}
		}

		return
	}

	for x := minKey.x; x <= maxKey.x; x++ {
		for y := minKey.y; y <= maxKey.y; y++ {
			for _, idx := range g.cells[cellKey{x: x, y: y}] {
				s := &g.samples[idx]
				if bound.Contains(s.point) {
					visit(s)
				}
			}
		}
	}
}
