package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("SCOREROLL_OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetMediaDir() string {
	path := os.Getenv("SCOREROLL_MEDIA_PATH")
	if path != "" {
		return path
	}

	panic("SCOREROLL_MEDIA_PATH environment variable is not set!")
}

// steps per quarter note
const DefaultResolution = 8

const NumberOfPitches = 128

// quarter notes a text crescendo waits for a dynamic before resolving on its own
const RampHorizon = 4

// change of level applied when a ramp has no usable target dynamic
const RampStep = 0.25

// sections with fewer notes than this get no shortest-note estimate
const MinSectionNotes = 20

const OverviewFilename = "allScores.dat"
