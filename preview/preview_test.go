package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/scoreroll/model"
	"github.com/stretchr/testify/assert"
)

func result() *model.Result {
	inst := model.Instrument{
		Name: "flute", Parts: []string{"P1"}, Steps: 8, Pitches: 128,
		Pianoroll:    make([]uint8, 8*128),
		Articulation: make([]uint8, 8*128),
		Dynamics:     []float64{0.5, 0.5, 0.6, 0.7, 0.75, 0.75, 0.75, 0.75},
		Markers:      make([]model.Marker, 8),
	}
	for step := 0; step < 7; step++ {
		inst.Pianoroll[step*128+60] = 96
		inst.Articulation[step*128+60] = 1
	}
	inst.Markers[1] = model.CrescStart
	inst.Markers[4] = model.CrescStop
	return &model.Result{Instruments: []model.Instrument{inst, inst}}
}

func TestRenderSize(t *testing.T) {
	opts := DefaultOptions()
	img, err := Render(result(), opts)
	assert.NoError(t, err)

	w, h := size(result(), opts)
	assert.Equal(t, w, img.Bounds().Dx())
	assert.Equal(t, h, img.Bounds().Dy())
	assert.Equal(t, int(margin*2+8*opts.CellW), w)
}

func TestRenderDrawsNotes(t *testing.T) {
	opts := DefaultOptions()
	img, err := Render(result(), opts)
	assert.NoError(t, err)

	background := img.At(1, 1)
	x := int(margin + opts.CellW)
	y := int(margin + float64(opts.High-1-60)*opts.CellH + 1)
	assert.NotEqual(t, background, img.At(x, y))
}

func TestRenderRejectsEmpty(t *testing.T) {
	_, err := Render(&model.Result{}, DefaultOptions())
	assert.Error(t, err)

	opts := DefaultOptions()
	opts.High = opts.Low
	_, err = Render(result(), opts)
	assert.Error(t, err)
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	assert.NoError(t, SavePNG(path, result(), DefaultOptions()))
	info, err := os.Stat(path)
	assert.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
