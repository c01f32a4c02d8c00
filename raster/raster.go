// Package raster holds fixed size time x pitch grids.
package raster

import (
	"github.com/jsphweid/scoreroll/util"
	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// Grid is a Rows x Cols matrix stored row-major. Rows are raster steps and
// columns are pitches.
type Grid[T Number] struct {
	Rows  int
	Cols  int
	Cells []T
}

func New[T Number](rows, cols int) *Grid[T] {
	return &Grid[T]{Rows: rows, Cols: cols, Cells: make([]T, rows*cols)}
}

func (g *Grid[T]) At(row, col int) T {
	return g.Cells[row*g.Cols+col]
}

func (g *Grid[T]) Set(row, col int, v T) {
	g.Cells[row*g.Cols+col] = v
}

func (g *Grid[T]) Row(row int) []T {
	return g.Cells[row*g.Cols : (row+1)*g.Cols]
}

// Fill sets v on column col for rows [start, end). Rows outside the grid and
// columns out of range are ignored.
func (g *Grid[T]) Fill(start, end, col int, v T) {
	if col < 0 || col >= g.Cols {
		return
	}
	start = util.Max(start, 0)
	end = util.Min(end, g.Rows)
	for r := start; r < end; r++ {
		g.Cells[r*g.Cols+col] = v
	}
}

// Column copies one column out of the grid.
func (g *Grid[T]) Column(col int) []T {
	res := make([]T, g.Rows)
	for r := range res {
		res[r] = g.At(r, col)
	}
	return res
}

// Crop returns a copy of rows [from, from+n), clipped to the grid.
func (g *Grid[T]) Crop(from, n int) *Grid[T] {
	from = util.Clamp(from, 0, g.Rows)
	to := util.Clamp(from+n, from, g.Rows)
	res := New[T](to-from, g.Cols)
	copy(res.Cells, g.Cells[from*g.Cols:to*g.Cols])
	return res
}

func (g *Grid[T]) Count() int {
	var n int
	for _, v := range g.Cells {
		if v != 0 {
			n++
		}
	}
	return n
}

// Velocities scales every row of a binary grid by the level of its step and
// maps the result to MIDI velocities.
func Velocities(g *Grid[uint8], levels []float64) *Grid[uint8] {
	res := New[uint8](g.Rows, g.Cols)
	for r := 0; r < g.Rows; r++ {
		var level float64
		if r < len(levels) {
			level = levels[r]
		}
		vel := uint8(util.Clamp(int(level*128), 0, 127))
		row := g.Row(r)
		out := res.Row(r)
		for c, v := range row {
			if v != 0 {
				out[c] = vel
			}
		}
	}
	return res
}

// Rows splits a row-major slice into one slice per row.
func Rows[T Number](cells []T, cols int) [][]T {
	if cols <= 0 {
		return nil
	}
	res := make([][]T, 0, len(cells)/cols)
	for i := 0; i+cols <= len(cells); i += cols {
		res = append(res, cells[i:i+cols])
	}
	return res
}

// MaxSlices keeps the element-wise maximum of dst and src.
func MaxSlices[T Number](dst, src []T) {
	for i := range dst {
		if i < len(src) && src[i] > dst[i] {
			dst[i] = src[i]
		}
	}
}
