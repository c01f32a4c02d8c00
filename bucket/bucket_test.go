package bucket

import (
	"testing"

	"github.com/jsphweid/scoreroll/model"
	"github.com/stretchr/testify/assert"
)

func TestShortestUsesSmallestTwentieth(t *testing.T) {
	s := New()
	for i := 0; i < 38; i++ {
		s.Add(i, 12)
	}
	s.Add(40, 3)
	s.Add(41, 5)

	s.Open(64)
	for i := 0; i < 19; i++ {
		s.Add(64+i, 1)
	}

	table := s.Shortest()

	assert := assert.New(t)
	assert.Equal(model.ShortestNotes{0: 4}, table)
}

func TestSmallSectionsAreOmitted(t *testing.T) {
	s := New()
	for i := 0; i < 19; i++ {
		s.Add(0, 6)
	}
	assert.Empty(t, s.Shortest())

	s.Add(0, 6)
	assert.Equal(t, model.ShortestNotes{0: 6}, s.Shortest())
}

func TestReopenKeepsDurations(t *testing.T) {
	s := New()
	s.Open(8)
	for i := 0; i < 10; i++ {
		s.Add(8, 2)
	}
	s.Open(16)
	s.Open(8)
	for i := 0; i < 10; i++ {
		s.Add(9, 2)
	}
	assert.Equal(t, model.ShortestNotes{8: 2}, s.Shortest())
}

func TestAddFilesByStartStep(t *testing.T) {
	s := New()
	s.Open(32)
	// opening a later section does not capture notes that start before it
	for i := 0; i < 20; i++ {
		s.Add(i, 3)
	}
	for i := 0; i < 20; i++ {
		s.Add(32+i, 1)
	}
	s.Add(-2, 3)
	assert.Equal(t, model.ShortestNotes{0: 3, 32: 1}, s.Shortest())
}

func TestLookupFindsNearestEarlierSection(t *testing.T) {
	table := model.ShortestNotes{0: 6, 32: 3, 96: 12}

	cases := []struct {
		step  int
		want  float64
		found bool
	}{
		{0, 6, true},
		{31, 6, true},
		{32, 3, true},
		{95, 3, true},
		{400, 12, true},
	}
	for _, tc := range cases {
		got, ok := Lookup(table, tc.step)
		assert.Equal(t, tc.found, ok)
		assert.Equal(t, tc.want, got, "step %v", tc.step)
	}

	_, ok := Lookup(model.ShortestNotes{10: 1}, 5)
	assert.False(t, ok)
}
