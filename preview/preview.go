// Package preview draws converted scores as PNG images: one band of
// pianoroll per instrument with its dynamics curve underneath.
package preview

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jsphweid/scoreroll/model"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
)

type Color struct {
	R, G, B float64
}

var colors = []Color{
	{0.22, 0.59, 0.86},
	{0.90, 0.49, 0.13},
	{0.18, 0.80, 0.44},
	{0.61, 0.35, 0.71},
	{0.91, 0.30, 0.24},
	{0.95, 0.77, 0.06},
}

type Options struct {
	// size of one raster cell in pixels
	CellW, CellH float64
	// height of the dynamics curve under each band
	CurveH float64
	// only pitches in [Low, High) are drawn
	Low, High int
}

func DefaultOptions() Options {
	return Options{CellW: 4, CellH: 3, CurveH: 40, Low: 21, High: 109}
}

const (
	margin = 40.0
	gap    = 12.0
)

func getColor(i int) Color {
	return colors[i%len(colors)]
}

func setRGBColor(dc *gg.Context, c Color, alpha float64) {
	dc.SetRGBA(c.R, c.G, c.B, alpha)
}

func bandHeight(opts Options) float64 {
	return float64(opts.High-opts.Low)*opts.CellH + opts.CurveH + gap
}

func size(res *model.Result, opts Options) (int, int) {
	steps := 0
	for _, inst := range res.Instruments {
		if inst.Steps > steps {
			steps = inst.Steps
		}
	}
	w := margin*2 + float64(steps)*opts.CellW
	h := margin*2 + float64(len(res.Instruments))*bandHeight(opts)
	return int(w), int(h)
}

func prepareScreen(dc *gg.Context) {
	dc.SetRGB(0.17, 0.17, 0.17)
	dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
	dc.Fill()
}

func drawPianoroll(dc *gg.Context, inst model.Instrument, c Color, top float64, opts Options) {
	for step := 0; step < inst.Steps; step++ {
		for pitch := opts.Low; pitch < opts.High && pitch < inst.Pitches; pitch++ {
			v := inst.Pianoroll[step*inst.Pitches+pitch]
			if v == 0 {
				continue
			}
			x := margin + float64(step)*opts.CellW
			y := top + float64(opts.High-1-pitch)*opts.CellH
			dc.DrawRectangle(x, y, opts.CellW, opts.CellH)
			setRGBColor(dc, c, 0.25+0.75*float64(v)/127)
			dc.Fill()

			if len(inst.Articulation) == len(inst.Pianoroll) && inst.Articulation[step*inst.Pitches+pitch] != 0 {
				dc.DrawLine(x, y+opts.CellH/2, x+opts.CellW, y+opts.CellH/2)
				dc.SetRGBA(1, 1, 1, 0.6)
				dc.SetLineWidth(0.5)
				dc.Stroke()
			}
		}
	}
}

func drawDynamics(dc *gg.Context, inst model.Instrument, c Color, top float64, opts Options) {
	bottom := top + opts.CurveH
	dc.SetRGBA(1, 1, 1, 0.1)
	dc.DrawLine(margin, bottom, margin+float64(inst.Steps)*opts.CellW, bottom)
	dc.Stroke()

	for step, level := range inst.Dynamics {
		x := margin + (float64(step)+0.5)*opts.CellW
		y := bottom - level*opts.CurveH
		if step == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	setRGBColor(dc, c, 1)
	dc.SetLineWidth(1.5)
	dc.Stroke()

	for step, m := range inst.Markers {
		if m == model.NoMarker || m == model.DynamicMarker {
			continue
		}
		x := margin + (float64(step)+0.5)*opts.CellW
		dc.SetRGBA(1, 1, 1, 0.4)
		dc.SetLineWidth(0.5)
		dc.DrawLine(x, top, x, bottom)
		dc.Stroke()
	}
}

// Render draws every instrument of res.
func Render(res *model.Result, opts Options) (image.Image, error) {
	if len(res.Instruments) == 0 {
		return nil, errors.New("nothing to draw")
	}
	if opts.High <= opts.Low {
		return nil, errors.Errorf("empty pitch range [%d, %d)", opts.Low, opts.High)
	}
	w, h := size(res, opts)
	dc := gg.NewContext(w, h)
	prepareScreen(dc)

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 11}))

	for i, inst := range res.Instruments {
		c := getColor(i)
		top := margin + float64(i)*bandHeight(opts)
		rollH := float64(opts.High-opts.Low) * opts.CellH

		dc.SetRGBA(1, 1, 1, 0.8)
		dc.DrawString(fmt.Sprintf("%v (%v)", inst.Name, len(inst.Parts)), margin, top-4)
		drawPianoroll(dc, inst, c, top, opts)
		drawDynamics(dc, inst, c, top+rollH, opts)
	}
	return dc.Image(), nil
}

func SavePNG(path string, res *model.Result, opts Options) error {
	img, err := Render(res, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(path, img)
}
