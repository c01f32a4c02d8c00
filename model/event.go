package model

type EventKind uint8

const (
	ScorePart EventKind = iota
	PartName
	PartStart
	PartEnd
	MeasureStart
	Barline
	NoteStart
	NoteEnd
	Rest
	Chord
	Grace
	Pitch
	Duration
	Voice
	Backup
	Forward
	Tie
	Slur
	Staccato
	Staccatissimo
	Trill
	AccidentalMark
	Tremolo
	TimeModification
	DirectionStart
	DirectionEnd
	Wedge
	Words
	Dashes
	Dynamic
	Divisions
	Beats
	BeatType
	Fifths
)

var eventKindNames = [...]string{
	"score-part", "part-name", "part", "/part", "measure", "barline",
	"note", "/note", "rest", "chord", "grace", "pitch", "duration", "voice",
	"backup", "forward", "tie", "slur", "staccato", "staccatissimo",
	"trill-mark", "accidental-mark", "tremolo", "time-modification",
	"direction", "/direction", "wedge", "words", "dashes", "dynamics",
	"divisions", "beats", "beat-type", "fifths",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// PitchValue is the content of a <pitch> element. Alter is kept raw so the
// interpreter can report malformed accidentals instead of the reader failing.
type PitchValue struct {
	Step   string
	Octave int
	Alter  string
}

// Event is one item of the score event stream. Which fields are meaningful
// depends on Kind:
//
//	ScorePart, PartStart     Text = part id
//	PartName, Words          Text = element content
//	MeasureStart             Text = measure number, Flag = implicit
//	NoteStart                Flag = print-object="no"
//	Pitch                    Pitch
//	Duration, Divisions,
//	Beats, BeatType          Value
//	Voice, AccidentalMark,
//	Fifths, Dynamic          Text
//	Tie, Slur, Wedge, Dashes Type
//	Tremolo                  Type, Value = number of beams
//	TimeModification         Actual, Normal
//	DirectionStart           Placement
type Event struct {
	Kind      EventKind
	Type      string
	Text      string
	Value     int
	Placement string
	Flag      bool
	Pitch     PitchValue
	Actual    int
	Normal    int
}
