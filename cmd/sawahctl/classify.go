package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"sawah/entities"
	"sawah/pkg/geojson"
	"sawah/pkg/logging"
	"sawah/pkg/ripeness"
)

var classifyCmd = &cobra.Command{
	Use:   "classify FILE...",
	Short: "Print the Tuai category of every plot in the given GeoJSON files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eval, err := evaluatorFromFlags(cmd)
		if err != nil {
			return err
		}
		group, _ := cmd.Flags().GetString("group")
		nowStr, _ := cmd.Flags().GetString("now")
		now, err := parseNow(nowStr, eval.Location())
		if err != nil {
			return err
		}

		rows, err := classifyFiles(cmd.Context(), eval, group, args, now)
		if err != nil {
			return err
		}
		return writeRows(cmd.OutOrStdout(), rows)
	},
}

func init() {
	classifyCmd.Flags().String("group", "blok", "layer group the files belong to (sawahring numbers bloks)")
	classifyCmd.Flags().String("now", "", "evaluate as of this day (YYYY-MM-DD), default today")
	rootCmd.AddCommand(classifyCmd)
}

// parseNow reads --now as midnight of that day in loc, so the calendar day
// survives the evaluator's zone conversion.
func parseNow(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if s == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now: %w", err)
	}
	return t, nil
}

type row struct {
	Plot       entities.Plot
	Assessment ripeness.Assessment
}

// classifyFiles decodes files concurrently and returns rows in argument order.
func classifyFiles(ctx context.Context, eval *ripeness.Evaluator, group string, paths []string, now time.Time) ([]row, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	perFile := make([][]entities.Plot, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			plots, err := geojson.Decode(group, filepath.Base(path), b)
			if err != nil {
				return err
			}
			logging.Log.Debugf("[classify] %s: %d plots", path, len(plots))
			perFile[i] = plots
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []row
	for _, plots := range perFile {
		for _, p := range plots {
			_, a := eval.Assess(p.DescriptionText, now)
			out = append(out, row{Plot: p, Assessment: a})
		}
	}
	return out, nil
}

func writeRows(w io.Writer, rows []row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSEED\tPLANTED\tAGE\tCATEGORY\tCOLOR")
	for _, r := range rows {
		a := r.Assessment
		planted, age := "-", "-"
		if a.PlantingDate != nil {
			planted = a.PlantingDate.String()
		}
		if a.ElapsedDays != nil {
			age = strconv.Itoa(*a.ElapsedDays)
		}
		seed := a.SeedCode
		if seed == "" {
			seed = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Plot.PlotID, r.Plot.Name, seed, planted, age, a.Category, a.Color)
	}
	return tw.Flush()
}
