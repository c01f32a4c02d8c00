package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/scoreroll/model"
	"gitlab.com/gomidi/midi/v2"
)

func CreateChordKey(notes []uint8) string {
	sort.Slice(notes, func(i, j int) bool {
		return notes[i] < notes[j]
	})
	var res string
	for i, note := range notes {
		res += fmt.Sprintf("%v", note)
		if i < len(notes)-1 {
			res += "-"
		}
	}
	return res
}

// Names spells notes the way MIDI tools do, e.g. "C5".
func Names(notes []uint8) []string {
	res := make([]string, len(notes))
	for i, n := range notes {
		res[i] = midi.Note(n).String()
	}
	return res
}

func Describe(c model.Sonority) string {
	return fmt.Sprintf("step %v: %v (velocity %v)", c.Step, strings.Join(Names(c.Notes), " "), c.Velocity)
}

func row(cells []uint8, pitches, step int) []uint8 {
	if step < 0 || pitches <= 0 || (step+1)*pitches > len(cells) {
		return nil
	}
	return cells[step*pitches : (step+1)*pitches]
}

func getChord(cells []uint8, pitches, step int) model.Sonority {
	c := model.Sonority{Step: step}
	for note, v := range row(cells, pitches, step) {
		if v == 0 {
			continue
		}
		c.Notes = append(c.Notes, uint8(note))
		if v > c.Velocity {
			c.Velocity = v
		}
	}
	return c
}

// AtStep is what sounds at step in the instrument's pianoroll.
func AtStep(inst model.Instrument, step int) model.Sonority {
	return getChord(inst.Pianoroll, inst.Pitches, step)
}

// GetChords lists the chords of a pianoroll, one each time the set of
// sounding notes changes. Silence is skipped.
func GetChords(inst model.Instrument) []model.Sonority {
	var chords []model.Sonority
	var prev string
	for step := 0; step < inst.Steps; step++ {
		c := AtStep(inst, step)
		key := CreateChordKey(c.Notes)
		if key == prev {
			continue
		}
		prev = key
		if len(c.Notes) > 0 {
			chords = append(chords, c)
		}
	}
	return chords
}
