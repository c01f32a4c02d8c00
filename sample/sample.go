package sample

import (
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/raster"
	"github.com/jsphweid/scoreroll/util"
)

// Window crops an instrument to steps rows starting at offset. A
// non-positive steps keeps everything after offset.
func Window(inst model.Instrument, offset, steps int) model.Instrument {
	offset = util.Clamp(offset, 0, inst.Steps)
	if steps <= 0 {
		steps = inst.Steps - offset
	}

	pianoroll := &raster.Grid[uint8]{Rows: inst.Steps, Cols: inst.Pitches, Cells: inst.Pianoroll}
	articulation := &raster.Grid[uint8]{Rows: inst.Steps, Cols: inst.Pitches, Cells: inst.Articulation}
	dynamics := &raster.Grid[float64]{Rows: inst.Steps, Cols: 1, Cells: inst.Dynamics}

	res := inst
	res.Pianoroll = pianoroll.Crop(offset, steps).Cells
	res.Articulation = articulation.Crop(offset, steps).Cells
	d := dynamics.Crop(offset, steps)
	res.Dynamics = d.Cells
	res.Steps = d.Rows
	if len(inst.Markers) == inst.Steps {
		markers := &raster.Grid[model.Marker]{Rows: inst.Steps, Cols: 1, Cells: inst.Markers}
		res.Markers = markers.Crop(offset, steps).Cells
	}
	return res
}

// Response shapes a result for JSON, cropping every instrument.
func Response(res *model.Result, offset, steps int) model.RasterizeResponse {
	out := model.RasterizeResponse{
		Source:      res.Source,
		TotalLength: res.TotalLength,
		Resolution:  res.Resolution,
		Offset:      util.Max(offset, 0),
		Shortest:    res.Shortest,
		Instruments: []model.InstrumentResponse{},
		Diagnostics: []string{},
	}
	for _, inst := range res.Instruments {
		w := Window(inst, offset, steps)
		out.Instruments = append(out.Instruments, model.InstrumentResponse{
			Name:         w.Name,
			Parts:        w.Parts,
			Pianoroll:    raster.Rows(w.Pianoroll, w.Pitches),
			Articulation: raster.Rows(w.Articulation, w.Pitches),
			Dynamics:     w.Dynamics,
		})
	}
	for _, d := range res.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, d.String())
	}
	return out
}
