package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillClips(t *testing.T) {
	g := New[uint8](4, 3)
	g.Fill(-1, 2, 1, 1)
	g.Fill(3, 9, 2, 1)
	g.Fill(0, 4, 3, 1)
	g.Fill(0, 4, -1, 1)

	assert.Equal(t, []uint8{
		0, 1, 0,
		0, 1, 0,
		0, 0, 0,
		0, 0, 1,
	}, g.Cells)
	assert.Equal(t, 3, g.Count())
	assert.Equal(t, []uint8{1, 1, 0, 0}, g.Column(1))
}

func TestVelocities(t *testing.T) {
	g := New[uint8](3, 2)
	g.Fill(0, 3, 0, 1)
	v := Velocities(g, []float64{0.5, 1, 0.984})

	assert.Equal(t, []uint8{64, 0, 127, 0, 125, 0}, v.Cells)
}

func TestMaxSlicesIsOrderIndependent(t *testing.T) {
	a := []uint8{1, 50, 0}
	b := []uint8{9, 2, 0}

	ab := make([]uint8, 3)
	MaxSlices(ab, a)
	MaxSlices(ab, b)
	ba := make([]uint8, 3)
	MaxSlices(ba, b)
	MaxSlices(ba, a)

	assert.Equal(t, []uint8{9, 50, 0}, ab)
	assert.Equal(t, ab, ba)

	// a shorter source leaves the tail alone
	short := []uint8{4, 4, 4}
	MaxSlices(short, []uint8{7})
	assert.Equal(t, []uint8{7, 4, 4}, short)
}

func TestCrop(t *testing.T) {
	g := New[int](5, 1)
	for i := range g.Cells {
		g.Cells[i] = i
	}
	assert.Equal(t, []int{2, 3}, g.Crop(2, 2).Cells)
	assert.Equal(t, []int{3, 4}, g.Crop(3, 10).Cells)
	assert.Equal(t, 0, g.Crop(9, 2).Rows)
}

func TestRows(t *testing.T) {
	assert.Equal(t, [][]uint8{{1, 2}, {3, 4}}, Rows([]uint8{1, 2, 3, 4}, 2))
}
