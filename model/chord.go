package model

type Notes = []uint8

// Sonority is the set of pitches sounding at one raster step.
type Sonority struct {
	Step  int
	Notes Notes

	// NOTE: highest velocity among Notes, 0 when reading an articulation mask
	Velocity uint8
}
