package cmd

import (
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/dendrascience/tabslice/table"
	"github.com/spf13/cobra"
)

// NewSeedCmd creates and returns the seed subcommand for the tabslice CLI.
// It writes an hourly demo table with one row per hour and location.
func NewSeedCmd(opts *globalOptions) *cobra.Command {
	var (
		key       string
		hours     int
		locations int
		start     string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write an hourly demo table to the store",
		Long: `Write a demo table for trying out slicing.

Rows are indexed by hour_beginning and location, one row for every hour and
every location, with a single column of random values. By default the hours
run up to the most recent full hour.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var from time.Time
			if start != "" {
				t, err := time.Parse(time.RFC3339, start)
				if err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
				from = t.UTC()
			}
			if hours <= 0 || locations <= 0 {
				return fmt.Errorf("--hours and --locations must be positive")
			}

			f, err := seedFrame(hours, locations, from, time.Now())
			if err != nil {
				return err
			}
			n, err := opts.openNode(key)
			if err != nil {
				return err
			}
			if verbose {
				log.Printf("Writing %d rows to %s", f.Len(), n.Path())
			}
			if err := n.Put(cmd.Context(), f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d hours x %d locations\n", n.Key(), hours, locations)
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Store key to write (default from config)")
	cmd.Flags().IntVar(&hours, "hours", 8760, "Number of hourly timestamps")
	cmd.Flags().IntVar(&locations, "locations", 10, "Number of locations")
	cmd.Flags().StringVar(&start, "start", "", "First hour as RFC 3339 (default: hours before the last full hour)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

// seedFrame builds the demo table. A zero start places the last hour one
// hour before now, truncated to the hour.
func seedFrame(hours, locations int, start, now time.Time) (*table.Frame, error) {
	if start.IsZero() {
		end := now.UTC().Truncate(time.Hour).Add(-time.Hour)
		start = end.Add(-time.Duration(hours-1) * time.Hour)
	}
	hourLabels := make([]table.Label, hours)
	for i := range hourLabels {
		hourLabels[i] = start.Add(time.Duration(i) * time.Hour)
	}
	locationLabels := make([]table.Label, locations)
	for i := range locationLabels {
		locationLabels[i] = fmt.Sprintf("location%d", i)
	}

	rows, err := table.NewProductAxis([]string{"hour_beginning", "location"}, hourLabels, locationLabels)
	if err != nil {
		return nil, err
	}
	cells := make([][]float64, rows.Len())
	for i := range cells {
		cells[i] = []float64{rand.Float64()}
	}
	return table.NewFrame(rows, table.NewSingleAxis("", "value"), cells)
}
