package file

import (
	"testing"

	"github.com/jsphweid/scoreroll/model"
	"github.com/stretchr/testify/assert"
)

func TestCreateFileNumMapIsStable(t *testing.T) {
	m := CreateFileNumMap([]string{"b.xml", "a.musicxml", "c.xml"})
	assert.Equal(t, model.ScoreNumToPath{0: "a.musicxml", 1: "b.xml", 2: "c.xml"}, m)
}
