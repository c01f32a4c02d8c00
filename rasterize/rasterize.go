// Package rasterize is the final pass over a score. It replays the event
// stream and writes, for every part, a pianoroll, an articulation mask and a
// dynamics envelope.
package rasterize

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/jsphweid/scoreroll/articulation"
	"github.com/jsphweid/scoreroll/constants"
	"github.com/jsphweid/scoreroll/cursor"
	"github.com/jsphweid/scoreroll/dynamics"
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/raster"
	"github.com/pkg/errors"
)

type Options struct {
	// Resolution is the number of raster steps per quarter note.
	Resolution   int
	Pitches      int
	DiscardGrace bool
	// Shortest is the table built by stats.Collect.
	Shortest model.ShortestNotes
	// Jitter returns numbers in [0, 1) and decides when trills start.
	// Defaults to math/rand.
	Jitter func() float64
}

func (o Options) withDefaults() Options {
	if o.Resolution <= 0 {
		o.Resolution = constants.DefaultResolution
	}
	if o.Pitches <= 0 {
		o.Pitches = constants.NumberOfPitches
	}
	if o.Jitter == nil {
		o.Jitter = rand.Float64
	}
	return o
}

// Part is one rasterized <part>.
type Part struct {
	ID           string
	Name         string
	Pianoroll    *raster.Grid[uint8]
	Articulation *raster.Grid[uint8]
	Envelope     *dynamics.Envelope
}

type Result struct {
	Steps       int
	Parts       []*Part
	Diagnostics []model.Diagnostic
}

type voiceState struct {
	tying   bool
	sluring bool
}

// noteState collects what is known about the note being read.
type noteState struct {
	pitch         model.PitchValue
	hasPitch      bool
	voice         string
	tie           string
	slur          string
	staccato      bool
	staccatissimo bool
	trill         bool
	trillAlter    *int
	actual        int
	normal        int
}

type interpreter struct {
	opts  Options
	steps int
	c     *cursor.Cursor

	names     map[string]string
	scorePart string
	measure   string
	keysign   int

	part     *Part
	resolver *dynamics.Resolver
	voices   map[string]*voiceState
	note     noteState

	prevStaccato      bool
	prevStaccatissimo bool
	slurNote          int
	hasSlurNote       bool
	stopSlur          bool
	tremolo           *articulation.Tremolo

	res *Result
}

// Run rasterizes events. totalLength is the score length in quarter notes as
// returned by length.Scan; rasters have floor(totalLength) * Resolution rows.
func Run(events []model.Event, totalLength float64, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	steps := int(totalLength) * opts.Resolution
	in := &interpreter{
		opts:  opts,
		steps: steps,
		c:     cursor.New(),
		names: map[string]string{},
		res:   &Result{Steps: steps},
	}
	for _, ev := range events {
		if err := in.handle(ev); err != nil {
			return nil, errors.Wrapf(err, "part %v, measure %v", in.partID(), in.measure)
		}
	}
	return in.res, nil
}

func (in *interpreter) partID() string {
	if in.part == nil {
		return ""
	}
	return in.part.ID
}

func (in *interpreter) diagnose(format string, args ...any) {
	in.res.Diagnostics = append(in.res.Diagnostics, model.Diagnostic{
		Part:    in.partID(),
		Measure: in.measure,
		Message: fmt.Sprintf(format, args...),
	})
}

func (in *interpreter) now() (int, error) {
	return in.c.Now(in.opts.Resolution)
}

// tick lets a waiting ramp time out.
func (in *interpreter) tick() {
	if in.resolver == nil || !in.resolver.Waiting() {
		return
	}
	if step, err := in.now(); err == nil {
		in.resolver.Tick(step)
	}
}

func (in *interpreter) handle(ev model.Event) error {
	if ev.Kind != model.Dynamic {
		in.tick()
	}
	switch ev.Kind {
	case model.ScorePart:
		in.scorePart = ev.Text
		in.names[ev.Text] = ev.Text
	case model.PartName:
		in.names[in.scorePart] = ev.Text
	case model.PartStart:
		in.startPart(ev.Text)
		return in.c.Apply(ev)
	case model.PartEnd:
		if in.part != nil {
			in.res.Parts = append(in.res.Parts, in.part)
		}
		in.part = nil
		in.resolver = nil
	case model.MeasureStart:
		in.measure = ev.Text
	case model.NoteStart:
		in.note = noteState{}
		return in.c.Apply(ev)
	case model.NoteEnd:
		return in.closeNote()
	case model.Pitch:
		in.note.pitch = ev.Pitch
		in.note.hasPitch = true
	case model.Voice:
		in.note.voice = ev.Text
	case model.Tie:
		in.note.tie = ev.Type
	case model.Slur:
		in.note.slur = ev.Type
	case model.Staccato:
		in.note.staccato = true
	case model.Staccatissimo:
		in.note.staccatissimo = true
	case model.Trill:
		in.note.trill = true
	case model.AccidentalMark:
		in.accidentalMark(ev.Text)
	case model.Tremolo:
		return in.openTremolo(ev)
	case model.TimeModification:
		in.note.actual = ev.Actual
		in.note.normal = ev.Normal
	case model.Fifths:
		v, err := strconv.Atoi(ev.Text)
		if err != nil {
			in.diagnose("unknown key signature %q", ev.Text)
			v = 0
		}
		in.keysign = v
	case model.Wedge, model.Words, model.Dashes, model.Dynamic:
		if in.part == nil {
			return nil
		}
		return in.direction(ev)
	default:
		return in.c.Apply(ev)
	}
	return nil
}

func (in *interpreter) startPart(id string) {
	name, ok := in.names[id]
	if !ok {
		name = id
	}
	env := dynamics.NewEnvelope(in.steps)
	in.part = &Part{
		ID:           id,
		Name:         name,
		Pianoroll:    raster.New[uint8](in.steps, in.opts.Pitches),
		Articulation: raster.New[uint8](in.steps, in.opts.Pitches),
		Envelope:     env,
	}
	in.resolver = dynamics.NewResolver(env, in.opts.Resolution)
	in.voices = map[string]*voiceState{}
	in.hasSlurNote = false
	in.stopSlur = false
	in.tremolo = nil
	in.prevStaccato = false
	in.prevStaccatissimo = false
}

func (in *interpreter) direction(ev model.Event) error {
	step, err := in.now()
	if err != nil {
		return err
	}
	switch ev.Kind {
	case model.Dynamic:
		in.resolver.Mark(step, ev.Text)
		in.tick()
	case model.Wedge:
		switch ev.Type {
		case "crescendo":
			in.resolver.OpenWedge(step, dynamics.Crescendo)
		case "diminuendo":
			in.resolver.OpenWedge(step, dynamics.Diminuendo)
		case "stop":
			// a hairpin ending on a note lasts until the end of that note
			if in.c.DurationSet() {
				d, err := in.c.Step(in.c.Duration, in.opts.Resolution)
				if err != nil {
					return err
				}
				step += d
			}
			in.resolver.StopWedge(step)
		}
	case model.Words:
		if dir, ok := dynamics.WordsDirection(ev.Text); ok {
			in.resolver.OpenWords(step, dir)
		}
	case model.Dashes:
		in.resolver.Dashes(step, ev.Type)
	}
	return nil
}
