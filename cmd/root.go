package cmd

import (
	"github.com/jsphweid/scoreroll/config"
	"github.com/jsphweid/scoreroll/constants"
	"github.com/spf13/cobra"
)

var (
	configPath   string
	resolution   int
	pitches      int
	discardGrace bool
)

var rootCmd = &cobra.Command{
	Use:   "scoreroll",
	Short: "MusicXML to pianoroll converter",
	Long: `Converts MusicXML scores into pianorolls, articulation masks and
dynamics envelopes at a fixed number of steps per quarter note.`,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.IntVar(&resolution, "resolution", constants.DefaultResolution, "raster steps per quarter note")
	flags.IntVar(&pitches, "pitches", constants.NumberOfPitches, "number of pitches in a raster row")
	flags.BoolVar(&discardGrace, "discard-grace", false, "leave grace notes out of the rasters")
}

// loadConfig reads --config and lets explicit flags override it.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Default()
	if configPath != "" {
		c, err := config.Load(configPath)
		cobra.CheckErr(err)
		cfg = c
	}
	flags := cmd.Flags()
	if flags.Changed("resolution") {
		cfg.Resolution = resolution
	}
	if flags.Changed("pitches") {
		cfg.Pitches = pitches
	}
	if flags.Changed("discard-grace") {
		cfg.DiscardGrace = discardGrace
	}
	return cfg
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
