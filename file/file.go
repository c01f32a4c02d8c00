package file

import (
	"sort"

	"github.com/jsphweid/scoreroll/model"
)

// CreateFileNumMap numbers score paths in lexical order so that runs over
// the same directory agree on the numbering.
func CreateFileNumMap(paths []string) model.ScoreNumToPath {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)
	res := make(model.ScoreNumToPath)
	for i, v := range sorted {
		res[model.ScoreNum(i)] = v
	}
	return res
}
