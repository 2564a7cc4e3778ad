package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sawah/pkg/logging"
	"sawah/pkg/ripeness"
)

var rootCmd = &cobra.Command{
	Use:   "sawahctl",
	Short: "Classify sawah plots by harvest readiness.",
	Long: `sawahctl reads the GeoJSON layers of the sawah map and reports, per plot,
the seed, planting age and Tuai (harvest) category parsed from its description.`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, _ := cmd.Flags().GetString("loglevel")
		return logging.SetLevel(level)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("windows", "", "seed window table (.csv, .xlsx, .yaml)")
	rootCmd.PersistentFlags().String("amber", "", "override the APPROACHING color")
	rootCmd.PersistentFlags().String("tz", "Asia/Kuala_Lumpur", "time zone used to decide the calendar day")
}

// evaluatorFromFlags builds the evaluator shared by subcommands.
func evaluatorFromFlags(cmd *cobra.Command) (*ripeness.Evaluator, error) {
	path, _ := cmd.Flags().GetString("windows")
	amber, _ := cmd.Flags().GetString("amber")
	tz, _ := cmd.Flags().GetString("tz")

	windows := ripeness.DefaultWindows()
	if path != "" {
		w, err := ripeness.LoadWindows(path)
		if err != nil {
			return nil, err
		}
		windows = w
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("tz %q: %w", tz, err)
	}
	return ripeness.NewEvaluator(
		ripeness.WithWindows(windows),
		ripeness.WithPalette(ripeness.DefaultPalette.WithAmber(amber)),
		ripeness.WithLocation(loc),
	), nil
}
