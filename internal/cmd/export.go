package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// NewExportCmd creates and returns the export subcommand for the tabslice CLI.
func NewExportCmd(opts *globalOptions) *cobra.Command {
	var (
		key    string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored table as CSV",
		Long: `Export a stored table as CSV.

The first columns hold the row labels, one per level. Each remaining column
holds one data column, headed by its labels joined with "/".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			n, err := opts.openNode(key)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return n.ExportCSV(cmd.Context(), cmd.OutOrStdout())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer func() {
				err = errors.Join(err, f.Close())
			}()
			if err := n.ExportCSV(cmd.Context(), f); err != nil {
				return err
			}
			log.Printf("Exported %s to %s", n.Key(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Store key to export (default from config)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}
