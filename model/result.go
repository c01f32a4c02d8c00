package model

import "fmt"

// ShortestNotes maps a tempo section start (in raster steps) to the mean
// duration of the shortest notes of that section, in native score units.
type ShortestNotes = map[int]float64

type Diagnostic struct {
	Part    string
	Measure string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("part %v, measure %v: %v", d.Part, d.Measure, d.Message)
}

type Marker uint8

const (
	NoMarker Marker = iota
	DynamicMarker
	CrescStart
	CrescStop
	DimStart
	DimStop
)

func (m Marker) String() string {
	switch m {
	case DynamicMarker:
		return "N"
	case CrescStart:
		return "Cresc_start"
	case CrescStop:
		return "Cresc_stop"
	case DimStart:
		return "Dim_start"
	case DimStop:
		return "Dim_stop"
	}
	return ""
}

// Instrument holds the merged output of every part that maps to one
// instrument name. Pianoroll and Articulation are Steps x Pitches row-major.
type Instrument struct {
	Name         string
	Parts        []string
	Steps        int
	Pitches      int
	Pianoroll    []uint8
	Articulation []uint8
	Dynamics     []float64
	Markers      []Marker
}

type Result struct {
	Source      string
	TotalLength int
	Resolution  int
	Instruments []Instrument
	Shortest    ShortestNotes
	Diagnostics []Diagnostic
}

// Overview is what the batch command stores about each converted score.
type Overview struct {
	Source      string
	Filename    string
	TotalLength int
	Instruments []string
	NumWarnings int
}

type ScoreNum = uint32
type ScoreNumToPath = map[ScoreNum]string
