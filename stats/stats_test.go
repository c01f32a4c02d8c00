package stats

import (
	"testing"

	"github.com/jsphweid/scoreroll/cursor"
	"github.com/jsphweid/scoreroll/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func notes(n, duration int) []model.Event {
	var res []model.Event
	for i := 0; i < n; i++ {
		res = append(res,
			model.Event{Kind: model.NoteStart},
			model.Event{Kind: model.Pitch, Pitch: model.PitchValue{Step: "E", Octave: 4}},
			model.Event{Kind: model.Duration, Value: duration},
			model.Event{Kind: model.NoteEnd},
		)
	}
	return res
}

func words(placement, text string) []model.Event {
	return []model.Event{
		{Kind: model.DirectionStart, Placement: placement},
		{Kind: model.Words, Text: text},
		{Kind: model.DirectionEnd},
	}
}

func header() []model.Event {
	return []model.Event{
		{Kind: model.PartStart, Text: "P1"},
		{Kind: model.MeasureStart, Text: "1"},
		{Kind: model.Divisions, Value: 4},
	}
}

func TestSingleSection(t *testing.T) {
	events := header()
	events = append(events, notes(20, 4)...)
	events = append(events, notes(20, 2)...)

	table, err := Collect(events, Options{Resolution: 8})
	assert.Nil(t, err)
	assert.Equal(t, model.ShortestNotes{0: 2}, table)
}

func TestUpperCaseWordAboveOpensSection(t *testing.T) {
	events := header()
	events = append(events, notes(20, 4)...)
	// 20 quarter notes later, a barline reopens the window
	events = append(events, model.Event{Kind: model.Barline})
	events = append(events, model.Event{Kind: model.MeasureStart, Text: "6"})
	events = append(events, words("above", "Allegro")...)
	events = append(events, notes(20, 1)...)

	table, err := Collect(events, Options{Resolution: 8})
	assert.Nil(t, err)
	assert.Equal(t, model.ShortestNotes{0: 4, 160: 1}, table)
}

func TestLowerCaseOrBelowWordsDoNotOpenSections(t *testing.T) {
	events := header()
	events = append(events, notes(20, 4)...)
	events = append(events, model.Event{Kind: model.Barline})
	events = append(events, words("above", "dolce")...)
	events = append(events, words("below", "Solo")...)
	events = append(events, notes(20, 1)...)

	table, err := Collect(events, Options{Resolution: 8})
	assert.Nil(t, err)
	assert.Equal(t, model.ShortestNotes{0: 1}, table)
}

func TestWindowClosesAfterTwoOrdinaryMeasures(t *testing.T) {
	events := header()
	events = append(events, notes(20, 4)...)
	events = append(events,
		model.Event{Kind: model.MeasureStart, Text: "2"},
		model.Event{Kind: model.MeasureStart, Text: "3"},
	)
	events = append(events, words("above", "Presto")...)
	events = append(events, notes(20, 1)...)

	table, err := Collect(events, Options{Resolution: 8})
	assert.Nil(t, err)
	assert.Equal(t, model.ShortestNotes{0: 1}, table)
}

func TestRestsAndGraceNotesAreNotCounted(t *testing.T) {
	events := header()
	events = append(events, notes(20, 8)...)
	for i := 0; i < 5; i++ {
		events = append(events,
			model.Event{Kind: model.NoteStart},
			model.Event{Kind: model.Rest},
			model.Event{Kind: model.Duration, Value: 1},
			model.Event{Kind: model.NoteEnd},
			model.Event{Kind: model.NoteStart},
			model.Event{Kind: model.Grace},
			model.Event{Kind: model.Pitch, Pitch: model.PitchValue{Step: "D", Octave: 5}},
			model.Event{Kind: model.NoteEnd},
		)
	}

	table, err := Collect(events, Options{Resolution: 8})
	assert.Nil(t, err)
	assert.Equal(t, model.ShortestNotes{0: 8}, table)
}

func TestCursorErrorsAreFatal(t *testing.T) {
	events := header()
	events = append(events, model.Event{Kind: model.Forward})
	_, err := Collect(events, Options{Resolution: 8})
	assert.True(t, errors.Is(err, cursor.ErrForwardWithoutDuration))
}

func TestTempoWordBeforeDivisions(t *testing.T) {
	events := []model.Event{
		{Kind: model.PartStart, Text: "P1"},
		{Kind: model.MeasureStart, Text: "1"},
	}
	events = append(events, words("above", "Allegro")...)
	events = append(events, model.Event{Kind: model.Divisions, Value: 4})
	events = append(events, notes(20, 2)...)

	table, err := Collect(events, Options{Resolution: 8})
	assert.Nil(t, err)
	assert.Equal(t, model.ShortestNotes{0: 2}, table)
}

func TestSecondPartFilesFromItsOwnStart(t *testing.T) {
	events := header()
	events = append(events, notes(19, 4)...)
	events = append(events, model.Event{Kind: model.Barline})
	events = append(events, words("above", "Allegro")...)
	events = append(events, notes(20, 1)...)
	events = append(events,
		model.Event{Kind: model.PartEnd},
		model.Event{Kind: model.PartStart, Text: "P2"},
		model.Event{Kind: model.MeasureStart, Text: "1"},
		model.Event{Kind: model.Divisions, Value: 4},
	)
	events = append(events, notes(1, 4)...)

	table, err := Collect(events, Options{Resolution: 8})
	assert.Nil(t, err)
	// 19 notes of P1 plus the first note of P2 start before step 152
	assert.Equal(t, model.ShortestNotes{0: 4, 152: 1}, table)
}
