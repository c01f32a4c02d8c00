package cmd

import (
	"fmt"

	"github.com/jsphweid/scoreroll/convert"
	"github.com/jsphweid/scoreroll/preview"
	"github.com/spf13/cobra"
)

var previewOpts = preview.DefaultOptions()

func init() {
	flags := previewCmd.Flags()
	flags.Float64Var(&previewOpts.CellW, "cell-width", previewOpts.CellW, "pixels per step")
	flags.Float64Var(&previewOpts.CellH, "cell-height", previewOpts.CellH, "pixels per pitch")
	flags.IntVar(&previewOpts.Low, "low", previewOpts.Low, "lowest pitch drawn")
	flags.IntVar(&previewOpts.High, "high", previewOpts.High, "pitch above the highest one drawn")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <score> <png>",
	Short: "Draws a score as a PNG",
	Long:  `Converts a single score and draws each instrument's pianoroll with its dynamics curve`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := convert.File(args[0], loadConfig(cmd))
		cobra.CheckErr(err)
		for _, d := range res.Diagnostics {
			fmt.Println(d)
		}
		cobra.CheckErr(preview.SavePNG(args[1], res, previewOpts))
		fmt.Printf("Wrote %v (%v instruments, %v quarter notes)\n", args[1], len(res.Instruments), res.TotalLength)
	},
}
