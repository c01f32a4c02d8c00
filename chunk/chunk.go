// Package chunk stores converted scores. A chunk file is laid out as
//
//	uint32 LE  size of the index
//	gob        model.ChunkIndex, instrument name -> byte ranges
//	data       pianoroll, articulation and dynamics of every instrument
//
// Ranges in the index are relative to the start of the data section.
package chunk

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/util"
	"github.com/pkg/errors"
)

func makeIndex(res *model.Result) (model.ChunkIndex, []byte, error) {
	index := make(model.ChunkIndex)
	dataBuf := new(bytes.Buffer)

	pair := func(write func() error) (model.Pair, error) {
		var p model.Pair
		p.Start = uint32(dataBuf.Len())
		if err := write(); err != nil {
			return p, err
		}
		p.End = uint32(dataBuf.Len())
		return p, nil
	}

	for _, inst := range res.Instruments {
		inst := inst
		var e model.ChunkEntry
		var err error
		e.Parts = inst.Parts
		e.Steps = inst.Steps
		e.Pitches = inst.Pitches
		if e.Pianoroll, err = pair(func() error {
			_, err := dataBuf.Write(inst.Pianoroll)
			return err
		}); err != nil {
			return nil, nil, err
		}
		if e.Articulation, err = pair(func() error {
			_, err := dataBuf.Write(inst.Articulation)
			return err
		}); err != nil {
			return nil, nil, err
		}
		if e.Dynamics, err = pair(func() error {
			return binary.Write(dataBuf, binary.LittleEndian, inst.Dynamics)
		}); err != nil {
			return nil, nil, err
		}
		index[inst.Name] = e
	}
	return index, dataBuf.Bytes(), nil
}

// Encode writes the chunk form of res to w.
func Encode(w io.Writer, res *model.Result) error {
	index, data, err := makeIndex(res)
	if err != nil {
		return errors.Wrap(err, "could not lay out chunk data")
	}

	indexBuf := new(bytes.Buffer)
	if err := gob.NewEncoder(indexBuf).Encode(index); err != nil {
		return errors.Wrap(err, "could not encode chunk index")
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(indexBuf.Len())); err != nil {
		return err
	}
	if _, err := w.Write(indexBuf.Bytes()); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Write saves res into dir under a fresh name and returns its overview.
func Write(dir string, res *model.Result) (model.Overview, error) {
	o := model.Overview{
		Source:      res.Source,
		Filename:    uuid.New().String() + ".dat",
		TotalLength: res.TotalLength,
		NumWarnings: len(res.Diagnostics),
	}
	for _, inst := range res.Instruments {
		o.Instruments = append(o.Instruments, inst.Name)
	}

	buf := new(bytes.Buffer)
	if err := Encode(buf, res); err != nil {
		return o, err
	}
	if err := os.WriteFile(filepath.Join(dir, o.Filename), buf.Bytes(), 0777); err != nil {
		return o, errors.Wrap(err, "write failed for chunk file")
	}
	return o, nil
}

// ReadIndex returns the index of a chunk file and the offset of its data
// section.
func ReadIndex(path string) (model.ChunkIndex, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return readIndex(f)
}

func readIndex(r io.Reader) (model.ChunkIndex, int64, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, 0, errors.Wrap(err, "could not read index size")
	}
	indexBytes := make([]byte, size)
	if _, err := io.ReadFull(r, indexBytes); err != nil {
		return nil, 0, errors.Wrap(err, "could not read index")
	}
	var index model.ChunkIndex
	if err := gob.NewDecoder(bytes.NewReader(indexBytes)).Decode(&index); err != nil {
		return nil, 0, errors.Wrap(err, "could not decode index")
	}
	return index, int64(size) + 4, nil
}

func readRange(f *os.File, offset int64, p model.Pair) ([]byte, error) {
	buf := make([]byte, p.End-p.Start)
	_, err := f.ReadAt(buf, offset+int64(p.Start))
	return buf, err
}

// ReadInstrument loads one instrument without reading the others.
func ReadInstrument(path, name string) (model.Instrument, error) {
	var inst model.Instrument
	f, err := os.Open(path)
	if err != nil {
		return inst, err
	}
	defer f.Close()

	index, offset, err := readIndex(f)
	if err != nil {
		return inst, err
	}
	e, ok := index[name]
	if !ok {
		return inst, errors.Errorf("no instrument %q in %v, have %v", name, filepath.Base(path), util.GetKeys(index))
	}

	inst.Name = name
	inst.Parts = e.Parts
	inst.Steps = e.Steps
	inst.Pitches = e.Pitches
	if inst.Pianoroll, err = readRange(f, offset, e.Pianoroll); err != nil {
		return inst, err
	}
	if inst.Articulation, err = readRange(f, offset, e.Articulation); err != nil {
		return inst, err
	}
	raw, err := readRange(f, offset, e.Dynamics)
	if err != nil {
		return inst, err
	}
	inst.Dynamics = make([]float64, len(raw)/8)
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, inst.Dynamics); err != nil {
		return inst, err
	}
	return inst, nil
}
