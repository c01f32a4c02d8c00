// Package cursor tracks the position inside a part in native score units.
// Every pass over a score drives the same Cursor so that all of them agree
// on where each note starts and how long the score is.
package cursor

import (
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/util"
	"github.com/pkg/errors"
)

var (
	ErrMissingDuration        = errors.New("a duration tag is missing")
	ErrBackupWithoutDuration  = errors.New("duration not set for a backup")
	ErrForwardWithoutDuration = errors.New("duration not set for a forward")
	ErrChordAfterDuration     = errors.New("a chord tag should be placed before the duration tag of the current note")
	ErrNoDivisions            = errors.New("divisions are not defined")
)

// Note is the timing of a closed note, in native units.
type Note struct {
	Time        int
	Duration    int
	DurationSet bool
	Rest        bool
	Grace       bool
	Hidden      bool
	Chord       bool
}

type Cursor struct {
	Time      int
	Duration  int
	Division  int
	Beats     int
	BeatType  int
	BarLength int

	durationSet bool
	rest        bool
	grace       bool
	hidden      bool
	chord       bool
}

func New() *Cursor {
	c := &Cursor{Beats: -1, BeatType: -1, BarLength: -1}
	c.Reset()
	return c
}

// Reset starts a new part. Time signature survives across parts.
func (c *Cursor) Reset() {
	c.Time = 0
	c.Division = -1
	c.clearNote()
}

func (c *Cursor) clearNote() {
	c.durationSet = false
	c.rest = false
	c.grace = false
	c.hidden = false
	c.chord = false
}

func (c *Cursor) DurationSet() bool {
	return c.durationSet
}

// Apply updates the cursor for the structural events and ignores the rest.
// NoteEnd is not handled here, see Close.
func (c *Cursor) Apply(ev model.Event) error {
	switch ev.Kind {
	case model.PartStart:
		c.Reset()
	case model.NoteStart:
		c.clearNote()
		c.hidden = ev.Flag
	case model.Rest:
		c.rest = true
	case model.Grace:
		c.grace = true
	case model.Chord:
		if c.durationSet {
			return ErrChordAfterDuration
		}
		c.Time -= c.Duration
		c.chord = true
	case model.Divisions:
		c.Division = ev.Value
		c.updateBarLength()
	case model.Beats:
		c.Beats = ev.Value
	case model.BeatType:
		c.BeatType = ev.Value
		c.updateBarLength()
	case model.Duration:
		c.Duration = ev.Value
		c.durationSet = true
		// a lot of publishers use a whole rest to mean "rest for the whole bar"
		if c.rest && c.BarLength > 0 && c.Duration > c.BarLength {
			c.Duration = c.BarLength
		}
	case model.Backup:
		if !c.durationSet {
			return ErrBackupWithoutDuration
		}
		c.Time -= c.Duration
		c.durationSet = false
	case model.Forward:
		if !c.durationSet {
			return ErrForwardWithoutDuration
		}
		c.Time += c.Duration
		c.durationSet = false
	}
	return nil
}

func (c *Cursor) updateBarLength() {
	if c.Division > 0 && c.Beats > 0 && c.BeatType > 0 {
		c.BarLength = c.Division * c.Beats * 4 / c.BeatType
	}
}

// Close ends the current note: it validates the duration, returns the note's
// timing and advances time unless the note is a grace note or not printed.
func (c *Cursor) Close() (Note, error) {
	n := Note{
		Time:        c.Time,
		Duration:    c.Duration,
		DurationSet: c.durationSet,
		Rest:        c.rest,
		Grace:       c.grace,
		Hidden:      c.hidden,
		Chord:       c.chord,
	}
	if !c.durationSet && !c.grace {
		return n, ErrMissingDuration
	}
	if !c.grace && !c.hidden {
		c.Time += c.Duration
	}
	c.clearNote()
	return n, nil
}

// Step converts a native time to a raster step at the given resolution.
// Time zero is step zero even before divisions are known.
func (c *Cursor) Step(native, resolution int) (int, error) {
	if native == 0 {
		return 0, nil
	}
	if c.Division <= 0 {
		return 0, ErrNoDivisions
	}
	return util.FloorDiv(native*resolution, c.Division), nil
}

// Now is the current time as a raster step.
func (c *Cursor) Now(resolution int) (int, error) {
	return c.Step(c.Time, resolution)
}

// Quarters is the current time in quarter notes.
func (c *Cursor) Quarters() (float64, error) {
	if c.Division <= 0 {
		return 0, ErrNoDivisions
	}
	return float64(c.Time) / float64(c.Division), nil
}
