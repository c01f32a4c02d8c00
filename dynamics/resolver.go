package dynamics

import (
	"regexp"

	"github.com/jsphweid/scoreroll/constants"
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/util"
)

type Direction int

const (
	Diminuendo Direction = -1
	Crescendo  Direction = 1
)

var (
	crescWords = regexp.MustCompile(`(?i)^\s*cres`)
	dimWords   = regexp.MustCompile(`(?i)^\s*(decres|dim)`)
)

// WordsDirection recognises written crescendo and diminuendo instructions.
func WordsDirection(text string) (Direction, bool) {
	switch {
	case crescWords.MatchString(text):
		return Crescendo, true
	case dimWords.MatchString(text):
		return Diminuendo, true
	}
	return 0, false
}

type phase uint8

const (
	idle phase = iota
	ramping
)

type ramp struct {
	dir        Direction
	start      int
	startLevel float64
	// opened by words: the stop is only known once something ends it
	text     bool
	waiting  bool
	waitFrom int
	stop     int
	dash     bool
	lastDash int
}

// Resolver turns hairpins and written crescendi into ramps on an Envelope.
// A ramp is opened by a wedge or by words and is resolved by the next
// dynamic marking, by a new wedge, or after RampHorizon quarter notes
// without news.
type Resolver struct {
	env     *Envelope
	horizon int
	phase   phase
	r       ramp
}

func NewResolver(env *Envelope, resolution int) *Resolver {
	return &Resolver{env: env, horizon: constants.RampHorizon * resolution}
}

func (r *Resolver) Ramping() bool {
	return r.phase == ramping
}

// Waiting reports whether the open ramp only needs a target level.
func (r *Resolver) Waiting() bool {
	return r.phase == ramping && r.r.waiting
}

// Mark applies a dynamic marking and resolves a waiting ramp against it.
func (r *Resolver) Mark(step int, name string) bool {
	if !r.env.Apply(step, name) {
		return false
	}
	if r.Waiting() {
		if r.r.text {
			r.r.stop = step
		}
		r.close(r.r.stop, r.target(r.env.Level(step)))
	}
	return true
}

// Tick resolves a waiting ramp that has been waiting too long.
func (r *Resolver) Tick(step int) {
	if !r.Waiting() || r.r.dash || step <= r.r.waitFrom+r.horizon {
		return
	}
	if r.r.text {
		r.r.stop = r.r.waitFrom + r.horizon
	}
	stop, to := r.r.stop, r.fallback()
	r.close(stop, to)
	r.env.Hold(stop, to)
}

// OpenWedge starts a hairpin, first closing any ramp still open.
func (r *Resolver) OpenWedge(step int, dir Direction) {
	if r.phase == ramping {
		prev := r.r.dir
		if !r.r.waiting {
			r.r.startLevel = r.env.Level(r.r.start)
		}
		to := r.target(r.env.Level(step))
		r.close(step, to)
		if prev != dir {
			r.env.Hold(step, to)
		}
	}
	r.phase = ramping
	r.r = ramp{dir: dir, start: step, lastDash: -1}
}

// StopWedge pins the end of the open hairpin. Its target level is left to
// the next dynamic marking.
func (r *Resolver) StopWedge(step int) {
	if r.phase != ramping {
		return
	}
	r.r.stop = step
	r.r.startLevel = r.env.Level(r.r.start)
	r.r.text = false
	r.r.waiting = true
	r.r.waitFrom = step
}

// OpenWords starts a written crescendo or diminuendo at step.
func (r *Resolver) OpenWords(step int, dir Direction) {
	r.phase = ramping
	r.r = ramp{
		dir:        dir,
		start:      step,
		startLevel: r.env.Level(step),
		text:       true,
		waiting:    true,
		waitFrom:   step,
		lastDash:   -1,
	}
}

// Dashes handles the dashed extension line of a written ramp. While dashes
// run the ramp cannot time out; their stop pins the end of the ramp.
func (r *Resolver) Dashes(step int, kind string) {
	if r.phase != ramping || !r.r.text || step == r.r.lastDash {
		return
	}
	r.r.lastDash = step
	switch kind {
	case "start":
		r.r.dash = true
	case "stop":
		r.r.dash = false
		r.r.stop = step
		r.r.waitFrom = step
		r.r.text = false
	}
}

// target keeps level when it moves in the ramp's direction.
func (r *Resolver) target(level float64) float64 {
	if r.r.dir == Crescendo && level <= r.r.startLevel {
		return r.fallback()
	}
	if r.r.dir == Diminuendo && level >= r.r.startLevel {
		return r.fallback()
	}
	return level
}

func (r *Resolver) fallback() float64 {
	if r.r.dir == Crescendo {
		return util.Min(r.r.startLevel+constants.RampStep, 1)
	}
	return util.Max(r.r.startLevel-constants.RampStep, 0)
}

func (r *Resolver) close(stop int, to float64) {
	r.env.Ramp(r.r.start, stop, r.r.startLevel, to)
	if r.r.dir == Crescendo {
		r.env.Stamp(r.r.start, model.CrescStart)
		r.env.Stamp(stop, model.CrescStop)
	} else {
		r.env.Stamp(r.r.start, model.DimStart)
		r.env.Stamp(stop, model.DimStop)
	}
	r.phase = idle
	r.r = ramp{}
}
