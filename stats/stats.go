// Package stats replays a score to estimate, per tempo section, how short
// its shortest notes are. Trills are timed from these estimates.
package stats

import (
	"strings"
	"unicode"

	"github.com/jsphweid/scoreroll/bucket"
	"github.com/jsphweid/scoreroll/cursor"
	"github.com/jsphweid/scoreroll/model"
	"github.com/pkg/errors"
)

type Options struct {
	Resolution int
}

// tempoWindow decides when a words direction may start a new section. The
// window opens at the first measures, implicit measures and barlines and
// stays open for one more measure.
type tempoWindow struct {
	open  bool
	count int
	armed bool
}

func (w *tempoWindow) measure(number string, implicit bool) {
	switch {
	case number == "0" || number == "1" || implicit:
		w.open = true
		w.count = 1
	case w.count <= 0:
		w.open = false
	default:
		w.count--
	}
}

func (w *tempoWindow) barline() {
	w.open = true
	w.count = 1
}

func hasUpper(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

type collector struct {
	opts     Options
	c        *cursor.Cursor
	window   tempoWindow
	sections *bucket.Sections
	pitchSet bool
}

// Collect returns the shortest-note table of a score.
func Collect(events []model.Event, opts Options) (model.ShortestNotes, error) {
	s := collector{
		opts:     opts,
		c:        cursor.New(),
		sections: bucket.New(),
	}
	var measure string
	for _, ev := range events {
		if ev.Kind == model.MeasureStart {
			measure = ev.Text
		}
		if err := s.handle(ev); err != nil {
			return nil, errors.Wrapf(err, "measure %v", measure)
		}
	}
	return s.sections.Shortest(), nil
}

func (s *collector) handle(ev model.Event) error {
	switch ev.Kind {
	case model.MeasureStart:
		s.window.measure(ev.Text, ev.Flag)
	case model.Barline:
		s.window.barline()
	case model.DirectionStart:
		s.window.armed = ev.Placement == "above" && s.window.open
	case model.DirectionEnd:
		s.window.armed = false
	case model.Words:
		if s.window.armed && hasUpper(ev.Text) {
			step, err := s.c.Now(s.opts.Resolution)
			if err != nil {
				return err
			}
			s.sections.Open(step)
			s.window.armed = false
		}
	case model.NoteStart:
		s.pitchSet = false
		return s.c.Apply(ev)
	case model.Pitch:
		s.pitchSet = ev.Pitch.Step != ""
	case model.NoteEnd:
		n, err := s.c.Close()
		if err != nil {
			return err
		}
		// grace notes are left out on purpose, they only carry the duration
		// of the note before them
		if n.Rest || n.Hidden || n.Grace || !s.pitchSet {
			return nil
		}
		step, err := s.c.Step(n.Time, s.opts.Resolution)
		if err != nil {
			return err
		}
		s.sections.Add(step, n.Duration)
	default:
		return s.c.Apply(ev)
	}
	return nil
}
