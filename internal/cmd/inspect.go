package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// NewInspectCmd creates and returns the inspect subcommand for the tabslice CLI.
// It reports file, memory and parquet details of one stored table.
func NewInspectCmd(opts *globalOptions) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show size, metadata and schema of a stored table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := opts.openNode(key)
			if err != nil {
				return err
			}
			info, err := n.Info()
			if err != nil {
				return err
			}
			block, err := n.BlockSize()
			if err != nil {
				return err
			}
			mem, err := n.MemSize(cmd.Context())
			if err != nil {
				return err
			}
			schema, err := n.Schema()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "Key:\t%s\n", info.Key)
			fmt.Fprintf(tw, "Path:\t%s\n", info.Path)
			fmt.Fprintf(tw, "Last modified:\t%s\n", info.Modified.Format(time.RFC3339))
			fmt.Fprintf(tw, "Block size:\t%s (%d bytes)\n", block, info.Size)
			fmt.Fprintf(tw, "Memory size:\t%s\n", mem)
			fmt.Fprintf(tw, "Rows:\t%d\n", info.NumRows)
			fmt.Fprintf(tw, "Row groups:\t%d\n", info.NumRowGroups)
			fmt.Fprintf(tw, "Parquet columns:\t%d\n", info.NumColumns)
			fmt.Fprintf(tw, "Row levels:\t%s\n", joinLevels(info.RowLevels))
			fmt.Fprintf(tw, "Column levels:\t%s\n", joinLevels(info.ColumnLevels))
			fmt.Fprintf(tw, "Created by:\t%s\n", info.CreatedBy)
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, "Schema:")
			for _, field := range schema.Fields() {
				fmt.Fprintf(w, "  %s: %s\n", field.Name, field.Type)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Store key to inspect (default from config)")

	return cmd
}

func joinLevels(levels []string) string {
	out := make([]string, len(levels))
	for i, l := range levels {
		if l == "" {
			l = "-"
		}
		out[i] = l
	}
	return strings.Join(out, ", ")
}
