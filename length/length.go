package length

import (
	"github.com/jsphweid/scoreroll/cursor"
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/util"
	"github.com/pkg/errors"
)

// Scan returns the length of the longest part in quarter notes.
func Scan(events []model.Event) (float64, error) {
	c := cursor.New()
	var total float64
	var measure string

	observe := func() error {
		if c.Time == 0 {
			return nil
		}
		q, err := c.Quarters()
		if err != nil {
			return err
		}
		total = util.Max(total, q)
		return nil
	}

	for _, ev := range events {
		var err error
		switch ev.Kind {
		case model.MeasureStart:
			measure = ev.Text
		case model.NoteEnd:
			if _, err = c.Close(); err == nil {
				err = observe()
			}
		case model.Forward, model.Backup:
			if err = c.Apply(ev); err == nil {
				err = observe()
			}
		default:
			err = c.Apply(ev)
		}
		if err != nil {
			return 0, errors.Wrapf(err, "measure %v", measure)
		}
	}
	return total, nil
}
