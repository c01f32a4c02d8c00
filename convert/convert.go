// Package convert chains the three passes over a score and merges the parts
// into instruments.
package convert

import (
	"io"
	"path/filepath"

	"github.com/jsphweid/scoreroll/config"
	"github.com/jsphweid/scoreroll/length"
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/raster"
	"github.com/jsphweid/scoreroll/rasterize"
	"github.com/jsphweid/scoreroll/score"
	"github.com/jsphweid/scoreroll/stats"
	"github.com/pkg/errors"
)

// Score converts an event stream. Only structural errors are returned,
// everything else ends up in the result's diagnostics.
func Score(events []model.Event, cfg *config.Config) (*model.Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	total, err := length.Scan(events)
	if err != nil {
		return nil, errors.Wrap(err, "could not measure score")
	}
	shortest, err := stats.Collect(events, stats.Options{Resolution: cfg.Resolution})
	if err != nil {
		return nil, errors.Wrap(err, "could not collect note statistics")
	}
	parts, err := rasterize.Run(events, total, rasterize.Options{
		Resolution:   cfg.Resolution,
		Pitches:      cfg.Pitches,
		DiscardGrace: cfg.DiscardGrace,
		Shortest:     shortest,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not rasterize score")
	}

	return &model.Result{
		TotalLength: int(total),
		Resolution:  cfg.Resolution,
		Instruments: Merge(parts, cfg),
		Shortest:    shortest,
		Diagnostics: parts.Diagnostics,
	}, nil
}

func Read(r io.Reader, source string, cfg *config.Config) (*model.Result, error) {
	events, err := score.Read(r)
	if err != nil {
		return nil, err
	}
	res, err := Score(events, cfg)
	if err != nil {
		return nil, err
	}
	res.Source = source
	return res, nil
}

func File(path string, cfg *config.Config) (*model.Result, error) {
	events, err := score.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := Score(events, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", filepath.Base(path))
	}
	res.Source = path
	return res, nil
}

// Merge groups parts by instrument name. Each part's pianoroll is scaled by
// its own dynamics into velocities before parts of the same instrument are
// combined with an element-wise maximum. Instruments keep the order in which
// their first part appears.
func Merge(parts *rasterize.Result, cfg *config.Config) []model.Instrument {
	var order []string
	byName := map[string]*model.Instrument{}
	for _, p := range parts.Parts {
		name := cfg.InstrumentName(p.Name)
		velocities := raster.Velocities(p.Pianoroll, p.Envelope.Levels)

		inst, ok := byName[name]
		if !ok {
			inst = &model.Instrument{
				Name:         name,
				Steps:        p.Pianoroll.Rows,
				Pitches:      p.Pianoroll.Cols,
				Pianoroll:    velocities.Cells,
				Articulation: append([]uint8(nil), p.Articulation.Cells...),
				Dynamics:     append([]float64(nil), p.Envelope.Levels...),
				Markers:      append([]model.Marker(nil), p.Envelope.Markers...),
			}
			byName[name] = inst
			order = append(order, name)
		} else {
			raster.MaxSlices(inst.Pianoroll, velocities.Cells)
			raster.MaxSlices(inst.Articulation, p.Articulation.Cells)
			raster.MaxSlices(inst.Dynamics, p.Envelope.Levels)
			for i, m := range p.Envelope.Markers {
				if inst.Markers[i] == model.NoMarker {
					inst.Markers[i] = m
				}
			}
		}
		inst.Parts = append(inst.Parts, p.ID)
	}

	res := make([]model.Instrument, 0, len(order))
	for _, name := range order {
		res = append(res, *byName[name])
	}
	return res
}
