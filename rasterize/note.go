package rasterize

import (
	"math"
	"strconv"
	"strings"

	"github.com/jsphweid/scoreroll/articulation"
	"github.com/jsphweid/scoreroll/bucket"
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/util"
)

var semitones = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}

var nextStep = map[string]string{
	"C": "D", "D": "E", "E": "F", "F": "G", "G": "A", "A": "B", "B": "C",
}

// order in which key signatures add sharps; flats use it backwards
const sharpOrder = "FCGDAEB"

var accidentals = map[string]int{
	"natural":      0,
	"sharp":        1,
	"double-sharp": 2,
	"flat":         -1,
	"flat-flat":    -2,
}

func (in *interpreter) accidentalMark(text string) {
	if !in.note.trill {
		return
	}
	alter, ok := accidentals[text]
	if !ok {
		in.diagnose("unknown accidental mark %q", text)
		return
	}
	in.note.trillAlter = &alter
}

// alter parses the raw <alter> content. Microtonal alterations are truncated.
func (in *interpreter) alter(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	in.diagnose("unknown alter %q", raw)
	return 0
}

func (in *interpreter) midiPitch() (int, bool) {
	p := in.note.pitch
	semitone, ok := semitones[p.Step]
	if !ok {
		in.diagnose("unknown pitch step %q", p.Step)
		return 0, false
	}
	return semitone + p.Octave*12 + in.alter(p.Alter), true
}

// upperNeighbour is the next note of the scale above the current pitch in
// the current key, unless an accidental mark says otherwise.
func (in *interpreter) upperNeighbour() int {
	p := in.note.pitch
	step := nextStep[p.Step]
	octave := p.Octave
	if p.Step == "B" {
		octave++
	}
	alter := 0
	if in.keysign >= 0 {
		if strings.Contains(sharpOrder[:util.Min(in.keysign, len(sharpOrder))], step) {
			alter = 1
		}
	} else if strings.Contains(sharpOrder[len(sharpOrder)-util.Min(-in.keysign, len(sharpOrder)):], step) {
		alter = -1
	}
	if in.note.trillAlter != nil {
		alter = *in.note.trillAlter
	}
	return semitones[step] + octave*12 + alter
}

// trill times the alternation from the shortest notes around start.
func (in *interpreter) trill(start int) *articulation.Trill {
	res := in.opts.Resolution
	length := res / 4
	if shortest, ok := bucket.Lookup(in.opts.Shortest, start); ok {
		length = int(shortest / 2 * float64(res) / float64(in.c.Division))
	}
	length = util.Max(length, 1)

	delay := 0
	if in.opts.Jitter() <= 0.5 {
		delay = int(in.opts.Jitter() * float64(length) * 0.7)
	}
	return &articulation.Trill{
		Upper:  in.upperNeighbour(),
		Length: length,
		Delay:  delay,
	}
}

func (in *interpreter) openTremolo(ev model.Event) error {
	now, err := in.now()
	if err != nil {
		return err
	}
	length := float64(in.opts.Resolution) / math.Pow(2, float64(ev.Value))
	switch ev.Type {
	case "start":
		pitch := 0
		if in.note.hasPitch {
			pitch, _ = in.midiPitch()
		}
		in.tremolo = &articulation.Tremolo{
			Double:     true,
			StartPitch: pitch,
			StartTime:  now,
			Length:     length,
		}
	case "stop":
		if in.tremolo == nil {
			in.tremolo = &articulation.Tremolo{StartTime: now}
		}
		in.tremolo.End = true
		in.tremolo.Length = length
	default:
		in.tremolo = &articulation.Tremolo{
			End:       true,
			StartTime: now,
			Length:    length,
		}
	}
	return nil
}

func (in *interpreter) closeNote() error {
	n, err := in.c.Close()
	if err != nil {
		return err
	}
	note := in.note

	staccato, staccatissimo := note.staccato, note.staccatissimo
	if n.Chord {
		staccato, staccatissimo = in.prevStaccato, in.prevStaccatissimo
	}
	defer func() {
		in.prevStaccato, in.prevStaccatissimo = staccato, staccatissimo
	}()

	if n.Rest || n.Hidden || (n.Grace && in.opts.DiscardGrace) {
		return nil
	}
	if !note.hasPitch {
		in.diagnose("a pitch tag is missing")
		return nil
	}
	pitch, ok := in.midiPitch()
	if !ok {
		return nil
	}
	if pitch < 0 || pitch >= in.opts.Pitches {
		in.diagnose("pitch %d is out of range", pitch)
		return nil
	}

	start, err := in.c.Step(n.Time, in.opts.Resolution)
	if err != nil {
		return err
	}
	end := start
	if n.Grace {
		// grace notes anticipate the beat by one step
		start = util.Max(start-1, 0)
	} else if end, err = in.c.Step(n.Time+n.Duration, in.opts.Resolution); err != nil {
		return err
	}

	tie, slur := in.articulate(note, pitch)
	d := articulation.Descriptor{
		Pitch:         pitch,
		Start:         start,
		End:           end,
		Tie:           tie,
		Slur:          slur,
		SlurPitch:     in.slurNote,
		HasSlurPitch:  in.hasSlurNote,
		Staccato:      staccato,
		Staccatissimo: staccatissimo,
		Grace:         n.Grace,
	}
	if note.trill {
		d.Trill = in.trill(start)
	}
	if in.tremolo != nil {
		tr := *in.tremolo
		if tr.End && note.actual > 0 && note.normal > 0 && note.actual != 2*note.normal {
			tr.Length = tr.Length * float64(note.normal) / float64(note.actual)
		}
		d.Tremolo = &tr
		if tr.End {
			in.tremolo = nil
		}
	}

	plan := articulation.Resolve(d)
	for _, s := range plan.Pianoroll {
		in.part.Pianoroll.Fill(s.Start, s.End, s.Pitch, 1)
	}
	for _, s := range plan.Articulation {
		in.part.Articulation.Fill(s.Start, s.End, s.Pitch, 1)
	}
	return nil
}

// articulate updates the tie and slur bookkeeping of the note's voice and
// returns whether the voice is tying and sluring.
func (in *interpreter) articulate(note noteState, pitch int) (bool, bool) {
	voice := note.voice
	if voice == "" {
		voice = "1"
	}
	vs, ok := in.voices[voice]
	if !ok {
		vs = &voiceState{}
		in.voices[voice] = vs
	}

	switch note.tie {
	case "start":
		vs.tying = true
	case "stop":
		vs.tying = false
	}

	// the last note of a slur still sounds at the latched pitch
	if in.stopSlur {
		in.hasSlurNote = false
		in.stopSlur = false
	}
	switch note.slur {
	case "start":
		vs.sluring = true
		if !in.hasSlurNote {
			in.slurNote = pitch
			in.hasSlurNote = true
		}
	case "stop":
		vs.sluring = false
	}
	if !vs.tying && !vs.sluring {
		in.stopSlur = true
	}
	return vs.tying, vs.sluring
}
