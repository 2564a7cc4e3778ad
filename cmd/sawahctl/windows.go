package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"sawah/pkg/ripeness"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "Print the effective seed ripeness windows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		eval, err := evaluatorFromFlags(cmd)
		if err != nil {
			return err
		}
		w := eval.Windows()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SEED\tDAYS")
		for _, s := range w.Seeds() {
			fmt.Fprintf(tw, "%s\t%d\n", s, w[s])
		}
		fmt.Fprintf(tw, "(other)\t%d\n", ripeness.DefaultWindow)
		return tw.Flush()
	},
}

func init() { rootCmd.AddCommand(windowsCmd) }
