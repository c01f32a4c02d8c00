package convert

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/scoreroll/config"
	"github.com/jsphweid/scoreroll/model"
)

// printProgress is swapped out in tests.
var printProgress = func(n uint64, total int) {
	fmt.Printf("Processed %v of %v scores\n", n, total)
}

type Outcome struct {
	Num    model.ScoreNum
	Path   string
	Result *model.Result
	Err    error
}

// Batch converts every score of paths with at most workers conversions
// running at once. sink sees one outcome at a time, in completion order.
func Batch(paths model.ScoreNumToPath, cfg *config.Config, workers int, sink func(Outcome)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var finished atomic.Uint64
	total := len(paths)
	progress := debounce.New(250 * time.Millisecond)

	for num, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(num model.ScoreNum, path string) {
			defer wg.Done()
			res, err := File(path, cfg)
			<-sem

			mu.Lock()
			sink(Outcome{Num: num, Path: path, Result: res, Err: err})
			mu.Unlock()

			n := finished.Add(1)
			progress(func() {
				printProgress(n, total)
			})
		}(num, path)
	}
	wg.Wait()
	// drop a pending line so it cannot land after the final one
	progress(func() {})
	printProgress(finished.Load(), total)
}
