package model

type RasterizeResponse struct {
	Source      string               `json:"source"`
	TotalLength int                  `json:"total_length"`
	Resolution  int                  `json:"resolution"`
	Offset      int                  `json:"offset"`
	Instruments []InstrumentResponse `json:"instruments"`
	Shortest    map[int]float64      `json:"shortest_notes"`
	Diagnostics []string             `json:"diagnostics"`
}

type InstrumentResponse struct {
	Name         string    `json:"name"`
	Parts        []string  `json:"parts"`
	Pianoroll    [][]uint8 `json:"pianoroll"`
	Articulation [][]uint8 `json:"articulation"`
	Dynamics     []float64 `json:"dynamics"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
