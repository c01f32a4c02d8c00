// Package score turns a MusicXML partwise score into the flat event stream
// consumed by the rasterizer passes.
package score

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/scoreroll/model"
	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

type reader struct {
	events []model.Event
	stack  []string
	text   strings.Builder

	pitch   model.PitchValue
	hasStep bool
	hasOct  bool
	tremolo model.Event
	timeMod model.Event
}

// Read decodes a whole score. The document type declaration is not resolved.
func Read(r io.Reader) ([]model.Event, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Strict = false

	rd := &reader{}
	for {
		token, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "could not decode score")
		}
		switch t := token.(type) {
		case xml.StartElement:
			rd.start(t)
			rd.stack = append(rd.stack, t.Name.Local)
			rd.text.Reset()
		case xml.EndElement:
			if len(rd.stack) == 0 {
				continue
			}
			rd.stack = rd.stack[:len(rd.stack)-1]
			rd.end(t.Name.Local, strings.TrimSpace(rd.text.String()))
			rd.text.Reset()
		case xml.CharData:
			rd.text.Write(t)
		}
	}
	if len(rd.events) == 0 {
		return nil, errors.New("no score elements found")
	}
	return rd.events, nil
}

func ReadFile(path string) ([]model.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	events, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return events, nil
}

func (rd *reader) emit(ev model.Event) {
	rd.events = append(rd.events, ev)
}

func (rd *reader) parent() string {
	if len(rd.stack) == 0 {
		return ""
	}
	return rd.stack[len(rd.stack)-1]
}

func attr(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (rd *reader) start(el xml.StartElement) {
	name := el.Name.Local
	if rd.parent() == "dynamics" {
		rd.emit(model.Event{Kind: model.Dynamic, Text: name})
		return
	}
	switch name {
	case "score-part":
		rd.emit(model.Event{Kind: model.ScorePart, Text: attr(el, "id")})
	case "part":
		rd.emit(model.Event{Kind: model.PartStart, Text: attr(el, "id")})
	case "measure":
		rd.emit(model.Event{
			Kind: model.MeasureStart,
			Text: attr(el, "number"),
			Flag: attr(el, "implicit") == "yes",
		})
	case "barline":
		rd.emit(model.Event{Kind: model.Barline})
	case "note":
		rd.emit(model.Event{Kind: model.NoteStart, Flag: attr(el, "print-object") == "no"})
	case "rest":
		rd.emit(model.Event{Kind: model.Rest})
	case "chord":
		rd.emit(model.Event{Kind: model.Chord})
	case "grace":
		rd.emit(model.Event{Kind: model.Grace})
	case "pitch":
		rd.pitch = model.PitchValue{}
		rd.hasStep, rd.hasOct = false, false
	case "tie":
		rd.emit(model.Event{Kind: model.Tie, Type: attr(el, "type")})
	case "slur":
		rd.emit(model.Event{Kind: model.Slur, Type: attr(el, "type")})
	case "staccato":
		rd.emit(model.Event{Kind: model.Staccato})
	case "staccatissimo":
		rd.emit(model.Event{Kind: model.Staccatissimo})
	case "trill-mark":
		rd.emit(model.Event{Kind: model.Trill})
	case "tremolo":
		typ := attr(el, "type")
		if typ == "" {
			typ = "single"
		}
		rd.tremolo = model.Event{Kind: model.Tremolo, Type: typ}
	case "time-modification":
		rd.timeMod = model.Event{Kind: model.TimeModification}
	case "direction":
		rd.emit(model.Event{Kind: model.DirectionStart, Placement: attr(el, "placement")})
	case "wedge":
		rd.emit(model.Event{Kind: model.Wedge, Type: attr(el, "type")})
	case "dashes":
		rd.emit(model.Event{Kind: model.Dashes, Type: attr(el, "type")})
	}
}

func (rd *reader) end(name, text string) {
	switch name {
	case "part-name":
		if rd.parent() == "score-part" {
			rd.emit(model.Event{Kind: model.PartName, Text: text})
		}
	case "part":
		rd.emit(model.Event{Kind: model.PartEnd})
	case "note":
		rd.emit(model.Event{Kind: model.NoteEnd})
	case "step":
		if rd.parent() == "pitch" {
			rd.pitch.Step = text
			rd.hasStep = true
		}
	case "octave":
		if rd.parent() == "pitch" {
			if v, err := strconv.Atoi(text); err == nil {
				rd.pitch.Octave = v
				rd.hasOct = true
			}
		}
	case "alter":
		if rd.parent() == "pitch" {
			rd.pitch.Alter = text
		}
	case "pitch":
		if rd.hasStep && rd.hasOct {
			rd.emit(model.Event{Kind: model.Pitch, Pitch: rd.pitch})
		}
	case "duration":
		rd.emitInt(model.Duration, text)
	case "voice":
		rd.emit(model.Event{Kind: model.Voice, Text: text})
	case "backup":
		rd.emit(model.Event{Kind: model.Backup})
	case "forward":
		rd.emit(model.Event{Kind: model.Forward})
	case "accidental-mark":
		rd.emit(model.Event{Kind: model.AccidentalMark, Text: text})
	case "tremolo":
		rd.tremolo.Value, _ = strconv.Atoi(text)
		rd.emit(rd.tremolo)
	case "actual-notes":
		rd.timeMod.Actual, _ = strconv.Atoi(text)
	case "normal-notes":
		rd.timeMod.Normal, _ = strconv.Atoi(text)
	case "time-modification":
		rd.emit(rd.timeMod)
	case "direction":
		rd.emit(model.Event{Kind: model.DirectionEnd})
	case "words":
		rd.emit(model.Event{Kind: model.Words, Text: text})
	case "divisions":
		rd.emitInt(model.Divisions, text)
	case "beats":
		rd.emitInt(model.Beats, text)
	case "beat-type":
		rd.emitInt(model.BeatType, text)
	case "fifths":
		rd.emit(model.Event{Kind: model.Fifths, Text: text})
	}
}

// emitInt drops values that are not integers, the consumers then see the
// element as missing.
func (rd *reader) emitInt(kind model.EventKind, text string) {
	v, err := strconv.Atoi(text)
	if err != nil {
		if f, ferr := strconv.ParseFloat(text, 64); ferr == nil {
			v = int(f)
		} else {
			return
		}
	}
	rd.emit(model.Event{Kind: kind, Value: v})
}
