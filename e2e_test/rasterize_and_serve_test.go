//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/scoreroll/chord"
	"github.com/jsphweid/scoreroll/chunk"
	"github.com/jsphweid/scoreroll/cmd"
	"github.com/jsphweid/scoreroll/config"
	"github.com/jsphweid/scoreroll/model"
	"github.com/stretchr/testify/assert"
)

const fixture = "../convert/testdata/two_measures.xml"

func readFixture() []byte {
	data, err := os.ReadFile(fixture)
	if err != nil {
		panic(err.Error())
	}
	return data
}

func post(t *testing.T, target string, body []byte) (*http.Response, []byte) {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	cmd.HandleRasterize(w, req)

	resp := w.Result()
	respBody, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	return resp, respBody
}

func TestRasterizeE2E(t *testing.T) {
	resp, body := post(t, "/rasterize?source=two_measures", readFixture())

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var res model.RasterizeResponse
	err := json.Unmarshal(body, &res)
	if err != nil {
		panic(err.Error())
	}

	assert.Equal("two_measures", res.Source)
	assert.Equal(2, res.TotalLength)
	assert.Equal(8, res.Resolution)
	assert.Len(res.Instruments, 2)
	assert.Equal("Violin I", res.Instruments[0].Name)
	assert.Len(res.Instruments[0].Pianoroll, 16)
	assert.Equal(uint8(96), res.Instruments[0].Pianoroll[0][60])
	assert.Equal(uint8(0), res.Instruments[0].Pianoroll[7][60])
	assert.Equal(uint8(49), res.Instruments[1].Pianoroll[0][60])
}

func TestRasterizeWindowE2E(t *testing.T) {
	resp, body := post(t, "/rasterize?offset=8&steps=4", readFixture())
	assert.Equal(t, 200, resp.StatusCode)

	var res model.RasterizeResponse
	assert.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, 8, res.Offset)
	assert.Len(t, res.Instruments[0].Pianoroll, 4)
	assert.Equal(t, uint8(96), res.Instruments[0].Pianoroll[0][62])
	assert.Len(t, res.Instruments[0].Dynamics, 4)
}

func TestRasterizeErrorsE2E(t *testing.T) {
	resp, body := post(t, "/rasterize", []byte("<html></html>"))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var res model.ErrorResponse
	assert.NoError(t, json.Unmarshal(body, &res))
	assert.NotEmpty(t, res.Error)

	resp, _ = post(t, "/rasterize?steps=many", readFixture())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRasterizeDirectoryE2E(t *testing.T) {
	media, out := t.TempDir(), t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(media, "two_measures.xml"), readFixture(), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(media, "notes.txt"), []byte("skip me"), 0644))
	t.Setenv("SCOREROLL_MEDIA_PATH", media)
	t.Setenv("SCOREROLL_OUT_PATH", out)

	overviews := cmd.Rasterize(0, config.Default(), 2)
	assert.Len(t, overviews, 1)

	overview := overviews[0]
	assert.Equal(t, []string{"Violin I", "Violin II"}, overview.Instruments)
	_, err := os.Stat(filepath.Join(out, "allScores.dat"))
	assert.NoError(t, err)

	inst, err := chunk.ReadInstrument(filepath.Join(out, overview.Filename), "Violin I")
	assert.NoError(t, err)
	chords := chord.GetChords(inst)
	assert.NotEmpty(t, chords)
	assert.Equal(t, []uint8{60}, chords[0].Notes)
}
