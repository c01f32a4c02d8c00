package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jsphweid/scoreroll/chunk"
	"github.com/jsphweid/scoreroll/config"
	"github.com/jsphweid/scoreroll/constants"
	"github.com/jsphweid/scoreroll/convert"
	"github.com/jsphweid/scoreroll/file"
	"github.com/jsphweid/scoreroll/model"
	"github.com/jsphweid/scoreroll/util"
	"github.com/spf13/cobra"
)

var workers int

func init() {
	rasterizeCmd.Flags().IntVar(&workers, "workers", 0, "scores converted at once (default: number of CPUs)")
	rootCmd.AddCommand(rasterizeCmd)
}

var rasterizeCmd = &cobra.Command{
	Use:   "rasterize [max number of scores]",
	Short: "Rasterizes every score in the media directory",
	Long: `Rasterizes every MusicXML score found under $SCOREROLL_MEDIA_PATH and
writes one chunk per score, plus an overview, to $SCOREROLL_OUT_PATH.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			cobra.CheckErr(err)
			maxNum = arg1
		}

		Rasterize(maxNum, loadConfig(cmd), workers)
	},
}

// Rasterize converts up to maxNum scores (all of them when 0) and returns
// the overviews it wrote.
func Rasterize(maxNum int, cfg *config.Config, workers int) map[model.ScoreNum]model.Overview {
	util.RecreateOutputDir()
	outDir := constants.GetOutDir()
	paths := util.GatherAllScorePaths(constants.GetMediaDir(), maxNum)
	fileNumMap := file.CreateFileNumMap(paths)

	overviews := make(map[model.ScoreNum]model.Overview)
	convert.Batch(fileNumMap, cfg, workers, func(o convert.Outcome) {
		if o.Err != nil {
			fmt.Printf("Skipping %v because: %v\n", o.Path, o.Err)
			return
		}
		overview, err := chunk.Write(outDir, o.Result)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", o.Path, err)
			return
		}
		if overview.NumWarnings > 0 {
			fmt.Printf("%v: %v warnings\n", o.Path, overview.NumWarnings)
		}
		overviews[o.Num] = overview
	})

	util.CreateBinary(filepath.Join(outDir, constants.OverviewFilename), overviews)
	return overviews
}
