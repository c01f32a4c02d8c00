package convert

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jsphweid/scoreroll/config"
	"github.com/jsphweid/scoreroll/model"
	"github.com/stretchr/testify/assert"
)

const fixture = "testdata/two_measures.xml"

func column(inst model.Instrument, pitch int) []uint8 {
	res := make([]uint8, inst.Steps)
	for r := range res {
		res[r] = inst.Pianoroll[r*inst.Pitches+pitch]
	}
	return res
}

func TestTwoMeasureScoreShape(t *testing.T) {
	res, err := File(fixture, config.Default())
	assert.NoError(t, err)

	assert.Equal(t, fixture, res.Source)
	assert.Equal(t, 2, res.TotalLength)
	assert.Equal(t, 8, res.Resolution)
	assert.Len(t, res.Instruments, 2)
	for _, inst := range res.Instruments {
		assert.Equal(t, 16, inst.Steps)
		assert.Equal(t, 128, inst.Pitches)
		assert.Len(t, inst.Pianoroll, 16*128)
		assert.Len(t, inst.Articulation, 16*128)
		assert.Len(t, inst.Dynamics, 16)
	}
	assert.Equal(t, "Violin I", res.Instruments[0].Name)
	assert.Empty(t, res.Diagnostics)
	assert.Empty(t, res.Shortest)
}

func TestVelocitiesFollowDynamics(t *testing.T) {
	res, err := File(fixture, config.Default())
	assert.NoError(t, err)

	first, second := res.Instruments[0], res.Instruments[1]
	assert.Equal(t, []uint8{96, 96, 96, 96, 96, 96, 96, 0, 0, 0, 0, 0, 0, 0, 0, 0}, column(first, 60))
	assert.Equal(t, []uint8{0, 0, 0, 0, 0, 0, 0, 0, 96, 96, 96, 96, 0, 0, 0, 0}, column(first, 62))
	assert.Equal(t, []uint8{49, 49, 49, 49, 49, 49, 49, 0, 0, 0, 0, 0, 0, 0, 0, 0}, column(second, 60))

	// articulation stays binary
	assert.Equal(t, uint8(1), first.Articulation[60])
}

func TestPartsMergeIntoInstrument(t *testing.T) {
	cfg, err := config.Parse([]byte(`instruments: [{name: violin, patterns: ["^violin"]}]`))
	assert.NoError(t, err)
	res, err := File(fixture, cfg)
	assert.NoError(t, err)

	assert.Len(t, res.Instruments, 1)
	inst := res.Instruments[0]
	assert.Equal(t, "violin", inst.Name)
	assert.Equal(t, []string{"P1", "P2"}, inst.Parts)
	assert.Equal(t, uint8(96), column(inst, 60)[0])
	assert.InDelta(t, 0.75, inst.Dynamics[15], 1e-9)
	assert.Equal(t, model.DynamicMarker, inst.Markers[0])
}

func TestResolutionFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Resolution = 4
	res, err := File(fixture, cfg)
	assert.NoError(t, err)
	assert.Equal(t, 8, res.Instruments[0].Steps)
}

func TestStructuralErrorHasContext(t *testing.T) {
	doc := `<score-partwise><part id="P1"><measure number="3">
		<attributes><divisions>1</divisions></attributes>
		<backup></backup>
	</measure></part></score-partwise>`
	_, err := Read(strings.NewReader(doc), "broken", nil)
	assert.ErrorContains(t, err, "measure 3")
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(fixture)
	assert.NoError(t, err)
	bad := filepath.Join(dir, "bad.xml")
	assert.NoError(t, os.WriteFile(bad, []byte("<score-partwise><part id=\"P1\"><note/></part></score-partwise>"), 0644))

	paths := model.ScoreNumToPath{2: bad}
	for i := 0; i < 2; i++ {
		p := filepath.Join(dir, string(rune('a'+i))+".xml")
		assert.NoError(t, os.WriteFile(p, data, 0644))
		paths[model.ScoreNum(i)] = p
	}

	outcomes := map[model.ScoreNum]Outcome{}
	Batch(paths, config.Default(), 2, func(o Outcome) {
		outcomes[o.Num] = o
	})

	assert.Len(t, outcomes, 3)
	assert.NoError(t, outcomes[0].Err)
	assert.NoError(t, outcomes[1].Err)
	assert.Equal(t, 2, outcomes[1].Result.TotalLength)
	assert.Error(t, outcomes[2].Err)
	assert.Nil(t, outcomes[2].Result)
}

func TestDirectionsBeforeDivisions(t *testing.T) {
	doc := `<score-partwise>
	<part-list><score-part id="P1"><part-name>Flute</part-name></score-part></part-list>
	<part id="P1"><measure number="1">
		<direction placement="above">
			<direction-type><words>Allegro</words></direction-type>
			<direction-type><dynamics><p/></dynamics></direction-type>
		</direction>
		<attributes><divisions>1</divisions><time><beats>4</beats><beat-type>4</beat-type></time></attributes>
		<note><pitch><step>C</step><octave>5</octave></pitch><duration>1</duration><voice>1</voice></note>
	</measure></part></score-partwise>`
	res, err := Read(strings.NewReader(doc), "flute", nil)
	assert.NoError(t, err)

	assert.Len(t, res.Instruments, 1)
	assert.Equal(t, []uint8{49, 49, 49, 49, 49, 49, 49, 0}, column(res.Instruments[0], 60))
}

func TestBatchProgressEndsWithFinalCount(t *testing.T) {
	var mu sync.Mutex
	var lines []uint64
	saved := printProgress
	printProgress = func(n uint64, total int) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, n)
	}
	defer func() { printProgress = saved }()

	dir := t.TempDir()
	paths := model.ScoreNumToPath{}
	for i := 0; i < 5; i++ {
		paths[model.ScoreNum(i)] = filepath.Join(dir, string(rune('a'+i))+".xml")
	}
	Batch(paths, config.Default(), 2, func(o Outcome) {})

	// outlive the debounce interval
	time.Sleep(500 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, lines)
	assert.Equal(t, uint64(5), lines[len(lines)-1])
}
