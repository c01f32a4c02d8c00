package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/jsphweid/scoreroll/chunk"
	"github.com/jsphweid/scoreroll/constants"
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Creates a report",
	Long:  `Summarises the chunks and the overview in the output directory`,
	Run: func(cmd *cobra.Command, args []string) {
		report()
	},
}

var chunkFilename = regexp.MustCompile("^[0-9a-fA-F]{8}-([0-9a-fA-F]{4}-){3}[0-9a-fA-F]{12}.dat$")

type chunksReport struct {
	avgIndexPercent float32
	numFiles        int64
	numInstruments  int64
	totalBytes      int64
	dataBytes       int64
}

type scoresReport struct {
	numScores    int
	totalLength  int
	warnings     []int
	instruments  map[string]int
	longestScore string
}

func analyzeChunks(dir string) chunksReport {
	var report chunksReport
	files, err := os.ReadDir(dir)
	if err != nil {
		panic("Could not read dir because: " + err.Error())
	}

	for _, file := range files {
		filename := file.Name()
		if !chunkFilename.MatchString(filename) {
			continue
		}
		path := filepath.Join(dir, filename)
		index, dataOffset, err := chunk.ReadIndex(path)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", filename, err)
			continue
		}
		info, err := file.Info()
		if err != nil {
			panic("Could not get file stats")
		}
		report.numFiles += 1
		report.numInstruments += int64(len(index))
		report.totalBytes += info.Size()
		report.dataBytes += info.Size() - dataOffset
	}
	if report.totalBytes > 0 {
		report.avgIndexPercent = float32(report.totalBytes-report.dataBytes) / float32(report.totalBytes)
	}
	return report
}

func analyzeScores(dir string) scoresReport {
	report := scoresReport{instruments: map[string]int{}}
	path := filepath.Join(dir, constants.OverviewFilename)
	overviews := util.ReadBinaryOrPanic[map[model.ScoreNum]model.Overview](path)

	longest := -1
	for _, num := range util.GetKeys(overviews) {
		o := overviews[num]
		report.numScores += 1
		report.totalLength += o.TotalLength
		report.warnings = append(report.warnings, o.NumWarnings)
		for _, name := range o.Instruments {
			report.instruments[name] += 1
		}
		if o.TotalLength > longest {
			longest = o.TotalLength
			report.longestScore = o.Source
		}
	}
	return report
}

func report() {
	dir := constants.GetOutDir()
	chunksReport := analyzeChunks(dir)
	scoresReport := analyzeScores(dir)

	fmt.Printf("chunksReport.numFiles: %v\n", chunksReport.numFiles)
	fmt.Printf("chunksReport.numInstruments: %v\n", chunksReport.numInstruments)
	fmt.Printf("chunksReport.avgIndexPercent: %v\n", chunksReport.avgIndexPercent)
	fmt.Printf("chunksReport.totalBytes: %v\n", chunksReport.totalBytes)
	fmt.Printf("chunksReport.dataBytes: %v\n", chunksReport.dataBytes)

	fmt.Printf("scoresReport.numScores: %v\n", scoresReport.numScores)
	fmt.Printf("scoresReport.totalLength (quarter notes): %v\n", scoresReport.totalLength)
	fmt.Printf("scoresReport.longestScore: %v\n", scoresReport.longestScore)
	withWarnings := util.FilterZeros(scoresReport.warnings)
	fmt.Printf("scores with warnings: %v, warnings: %v\n", len(withWarnings), util.Sum(withWarnings))

	names := util.GetKeys(scoresReport.instruments)
	sort.SliceStable(names, func(i, j int) bool {
		return scoresReport.instruments[names[i]] > scoresReport.instruments[names[j]]
	})
	for _, name := range names {
		fmt.Printf("  %v: %v\n", name, scoresReport.instruments[name])
	}
}
