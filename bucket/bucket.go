// Package bucket groups note durations by tempo section.
package bucket

import (
	"sort"

	"github.com/jsphweid/scoreroll/constants"
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/util"
)

// Sections maps the raster step a tempo section starts at to the native
// durations of the notes starting inside it.
type Sections struct {
	buckets map[int][]int
}

func New() *Sections {
	return &Sections{buckets: map[int][]int{0: {}}}
}

// Open starts a section at step. Reopening an existing section keeps what it
// already holds.
func (s *Sections) Open(step int) {
	if _, ok := s.buckets[step]; !ok {
		s.buckets[step] = []int{}
	}
}

// Add files duration under the latest section starting at or before step.
func (s *Sections) Add(step, duration int) {
	key := 0
	for k := range s.buckets {
		if k <= step && k > key {
			key = k
		}
	}
	s.buckets[key] = append(s.buckets[key], duration)
}

// Shortest averages the smallest twentieth of every section that holds at
// least constants.MinSectionNotes durations.
func (s *Sections) Shortest() model.ShortestNotes {
	res := make(model.ShortestNotes)
	for _, step := range util.GetKeys(s.buckets) {
		durations := s.buckets[step]
		if len(durations) < constants.MinSectionNotes {
			continue
		}
		sorted := append([]int(nil), durations...)
		sort.Ints(sorted)
		n := len(sorted) / constants.MinSectionNotes
		res[step] = float64(util.Sum(sorted[:n])) / float64(n)
	}
	return res
}

// Lookup returns the entry of the latest section starting at or before step.
func Lookup(table model.ShortestNotes, step int) (float64, bool) {
	best, found := 0, false
	for k := range table {
		if k <= step && (!found || k > best) {
			best, found = k, true
		}
	}
	if !found {
		return 0, false
	}
	return table[best], true
}
