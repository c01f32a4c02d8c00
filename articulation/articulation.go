// Package articulation decides which raster cells a note occupies.
//
// A note is described once, with all of its articulation and ornaments, and
// Resolve turns that description into spans for the pianoroll and for the
// articulation mask. The rules are applied in a fixed order and the first
// one that matches wins:
//
//	pianoroll                      articulation
//	trill                          single tremolo (closing)
//	tremolo (closing)              base rule
//	tremolo (opening)  nothing
//	base rule
//
// The base rule, also in order: a plain note releases one step early; a
// latched slur pitch sounds instead of the note (releasing early on the last
// note of the slur); staccato keeps the first half, staccatissimo the first
// quarter; tied and slurred notes hold until their end.
package articulation

// Span is the half-open step interval [Start, End) of one pitch.
type Span struct {
	Pitch int
	Start int
	End   int
}

type Tremolo struct {
	Double bool
	// End is set on the note that completes the tremolo: the single note
	// itself or the second note of a double tremolo.
	End        bool
	StartPitch int
	StartTime  int
	// Length of one repetition in steps, possibly fractional.
	Length float64
}

type Trill struct {
	Upper  int
	Length int
	Delay  int
}

type Descriptor struct {
	Pitch int
	Start int
	End   int

	Tie  bool
	Slur bool
	// SlurPitch is the pitch latched by the slur in progress.
	SlurPitch    int
	HasSlurPitch bool

	Staccato      bool
	Staccatissimo bool
	Grace         bool

	Tremolo *Tremolo
	Trill   *Trill
}

type Plan struct {
	Pianoroll    []Span
	Articulation []Span
}

// Resolve is a pure function of the descriptor.
func Resolve(d Descriptor) Plan {
	var p Plan

	// ornaments stop where the articulation stops
	end := release(d, d.End)
	base, hasBase := baseSpan(d)
	if tr := d.Tremolo; tr != nil && !tr.Double {
		if tr.End {
			p.Articulation = single(tr, d.Pitch, end)
		}
	} else if hasBase {
		p.Articulation = []Span{base}
		end = base.End
	}

	switch {
	case d.Trill != nil:
		p.Pianoroll = trill(d.Trill, d.Pitch, d.Start, end)
	case d.Tremolo != nil:
		if d.Tremolo.End {
			if d.Tremolo.Double {
				p.Pianoroll = double(d.Tremolo, d.Pitch, end)
			} else {
				p.Pianoroll = single(d.Tremolo, d.Pitch, end)
			}
		}
	case hasBase:
		p.Pianoroll = []Span{base}
	}
	return p
}

// release is where a note that is not held lets go. Grace notes last a single
// step and are never shortened.
func release(d Descriptor, end int) int {
	if d.Grace {
		return end
	}
	return end - 1
}

func baseSpan(d Descriptor) (Span, bool) {
	s, e := d.Start, d.End
	switch {
	case !d.Tie && !d.HasSlurPitch && !d.Staccato && !d.Staccatissimo:
		return Span{d.Pitch, s, release(d, e)}, true
	case d.HasSlurPitch && !d.Tie && !d.Slur:
		return Span{d.SlurPitch, s, release(d, e)}, true
	case d.HasSlurPitch:
		return Span{d.SlurPitch, s, e}, true
	case d.Staccato:
		return Span{d.Pitch, s, s + (e-s)/2}, true
	case d.Staccatissimo:
		return Span{d.Pitch, s, s + (e-s)/4}, true
	case d.Tie:
		return Span{d.Pitch, s, e}, true
	case d.Slur:
		return Span{d.Pitch, s, e}, true
	}
	return Span{}, false
}

// steps lists start, start+step, ... below stop, truncated to whole steps.
// The last interval may be shorter than the others.
func steps(start, stop int, step float64) []int {
	if step < 1 {
		step = 1
	}
	var res []int
	for i := 0; ; i++ {
		v := float64(start) + float64(i)*step
		if v >= float64(stop) {
			break
		}
		res = append(res, int(v))
	}
	return res
}

// single repeats pitch every Length steps, releasing each repetition a step
// early.
func single(tr *Tremolo, pitch, end int) []Span {
	var res []Span
	starts := steps(tr.StartTime, end, tr.Length)
	for i, s := range starts {
		e := s + int(tr.Length)
		if i < len(starts)-1 {
			e = starts[i+1]
		}
		res = append(res, Span{pitch, s, e - 1})
	}
	return res
}

// double alternates between the first note of the tremolo and pitch.
func double(tr *Tremolo, pitch, end int) []Span {
	var res []Span
	marks := steps(tr.StartTime, end, tr.Length)
	if len(marks) > 0 {
		marks = marks[1:]
	}
	e := tr.StartTime
	for i := 0; i < len(marks); i += 2 {
		s := tr.StartTime
		if i > 0 {
			s = marks[i-1]
		}
		m := marks[i]
		if i < len(marks)-1 {
			e = marks[i+1]
		} else {
			e = 2*m - s
		}
		if e > end {
			e = end
		}
		res = append(res, Span{tr.StartPitch, s, m}, Span{pitch, m, e})
	}
	return append(res, Span{pitch, e, end})
}

// trill alternates between pitch and its upper neighbour, starting late by
// Delay steps, and returns to pitch for whatever is left.
func trill(tr *Trill, pitch, start, end int) []Span {
	var res []Span
	marks := steps(start+tr.Delay, end, float64(tr.Length))
	if len(marks) > 0 {
		marks = marks[1:]
	}
	e := start
	for i := 0; i < len(marks)-1; i += 2 {
		s := start
		if i > 0 {
			s = marks[i-1]
		}
		m := marks[i]
		e = marks[i+1]
		res = append(res, Span{pitch, s, m}, Span{tr.Upper, m, e})
	}
	return append(res, Span{pitch, e, end})
}
