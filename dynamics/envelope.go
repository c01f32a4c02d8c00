package dynamics

import (
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/util"
)

// DefaultLevel is used until a part gives its first dynamic.
const DefaultLevel = 0.5

// Levels of the dynamic markings, drawn from
// http://www.wikiwand.com/en/Dynamics_%28music%29
var Levels = map[string]float64{
	"ppp": 0.125,
	"pp":  0.258,
	"p":   0.383,
	"mp":  0.5,
	"mf":  0.625,
	"f":   0.75,
	"ff":  0.875,
	"fff": 0.984,
}

// Envelope is the loudness of a part at every raster step.
type Envelope struct {
	Levels  []float64
	Markers []model.Marker
}

func NewEnvelope(steps int) *Envelope {
	e := &Envelope{
		Levels:  make([]float64, steps),
		Markers: make([]model.Marker, steps),
	}
	for i := range e.Levels {
		e.Levels[i] = DefaultLevel
	}
	return e
}

func (e *Envelope) Len() int {
	return len(e.Levels)
}

// Level samples the envelope, clamping step into range.
func (e *Envelope) Level(step int) float64 {
	if len(e.Levels) == 0 {
		return DefaultLevel
	}
	return e.Levels[util.Clamp(step, 0, len(e.Levels)-1)]
}

func (e *Envelope) Set(step int, v float64) {
	if step >= 0 && step < len(e.Levels) {
		e.Levels[step] = v
	}
}

// Hold sets every step from step onward.
func (e *Envelope) Hold(step int, v float64) {
	for i := util.Max(step, 0); i < len(e.Levels); i++ {
		e.Levels[i] = v
	}
}

func (e *Envelope) Stamp(step int, m model.Marker) {
	if step >= 0 && step < len(e.Markers) {
		e.Markers[step] = m
	}
}

// Ramp interpolates linearly over [start, stop), reaching to on the last
// step. Steps outside the envelope are dropped.
func (e *Envelope) Ramp(start, stop int, from, to float64) {
	n := stop - start
	for i := 0; i < n; i++ {
		v := from
		if n > 1 {
			v = from + (to-from)*float64(i)/float64(n-1)
		}
		e.Set(start+i, v)
	}
}

// Apply writes a dynamic marking at step and reports whether name was one.
// Plain markings hold from step onward, accents only touch their own step.
func (e *Envelope) Apply(step int, name string) bool {
	if v, ok := Levels[name]; ok {
		e.Hold(step, v)
		e.Stamp(step, model.DynamicMarker)
		return true
	}
	switch name {
	case "sf", "sfz", "sffz", "fz":
		e.Set(step, Levels["fff"])
		e.Stamp(step, model.DynamicMarker)
	case "fp", "ffp":
		loud := Levels["f"]
		if name == "ffp" {
			loud = Levels["ff"]
		}
		e.Set(step, loud)
		e.Hold(step+1, Levels["p"])
		e.Stamp(step, model.DynamicMarker)
		e.Stamp(step+1, model.DynamicMarker)
	default:
		return false
	}
	return true
}
