package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/scoreroll/chord"
	"github.com/jsphweid/scoreroll/chunk"
	"github.com/jsphweid/scoreroll/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <chunk> [instrument] [step]",
	Short: "Inspects a chunk",
	Long: `Prints the index of a chunk. With an instrument, prints the chords of
its pianoroll; with a step as well, only the chord sounding at that step.`,
	Args: cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		step := -1
		if len(args) == 3 {
			s, err := strconv.Atoi(args[2])
			cobra.CheckErr(err)
			step = s
		}
		switch len(args) {
		case 1:
			inspect(args[0])
		default:
			inspectInstrument(args[0], args[1], step)
		}
	},
}

func inspect(path string) {
	index, dataOffset, err := chunk.ReadIndex(path)
	cobra.CheckErr(err)
	fmt.Printf("data starts at byte %v\n", dataOffset)
	for _, key := range util.GetKeys(index) {
		val := index[key]
		fmt.Printf("key: %v\n", key)
		fmt.Printf("val: %+v\n", val)
	}
}

func inspectInstrument(path, name string, step int) {
	inst, err := chunk.ReadInstrument(path, name)
	cobra.CheckErr(err)
	if step >= 0 {
		fmt.Println(chord.Describe(chord.AtStep(inst, step)))
		if step < len(inst.Dynamics) {
			fmt.Printf("dynamics: %.3f\n", inst.Dynamics[step])
		}
		return
	}
	for _, c := range chord.GetChords(inst) {
		fmt.Println(chord.Describe(c))
	}
}
