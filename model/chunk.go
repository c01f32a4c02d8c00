package model

// Pair is a byte range relative to the start of a chunk's data section.
type Pair struct {
	Start uint32
	End   uint32
}

// ChunkEntry locates one instrument inside a chunk file.
type ChunkEntry struct {
	Parts        []string
	Steps        int
	Pitches      int
	Pianoroll    Pair
	Articulation Pair
	Dynamics     Pair
}

type ChunkIndex = map[string]ChunkEntry
