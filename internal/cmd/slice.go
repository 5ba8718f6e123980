package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

// NewSliceCmd creates and returns the slice subcommand for the tabslice CLI.
func NewSliceCmd(opts *globalOptions) *cobra.Command {
	var (
		key   string
		rows  []string
		cols  []string
		out   string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "slice",
		Short: "Slice a stored table by named levels",
		Long: `Slice a stored table by named index levels and print the result.

Each --rows or --cols flag takes level=value[,value...]. Levels that are not
named stay unconstrained. Values are parsed to the level's label type, with
RFC 3339 for timestamps. Repeating a level adds to its values.

Examples:
  tabslice slice --rows location=location1,location5
  tabslice slice --rows location=location3 --rows hour_beginning=2024-06-30T23:00:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := opts.openNode(key)
			if err != nil {
				return err
			}
			f, err := n.Get(cmd.Context())
			if err != nil {
				return err
			}

			rowSel, err := parseSelector(rows, f.Index())
			if err != nil {
				return fmt.Errorf("invalid --rows: %w", err)
			}
			colSel, err := parseSelector(cols, f.Columns())
			if err != nil {
				return fmt.Errorf("invalid --cols: %w", err)
			}
			result, err := f.Slice(rowSel, colSel)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("limit") {
				limit = opts.settings().PreviewRows
			}
			if err := renderFrame(cmd.OutOrStdout(), result, limit); err != nil {
				return err
			}

			if out != "" {
				dst, err := opts.openNode(out)
				if err != nil {
					return err
				}
				if err := dst.Put(cmd.Context(), result); err != nil {
					return err
				}
				log.Printf("Saved slice to %s", dst.Path())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "Store key to read (default from config)")
	cmd.Flags().StringArrayVar(&rows, "rows", nil, "Row selector level=value[,value...] (repeatable)")
	cmd.Flags().StringArrayVar(&cols, "cols", nil, "Column selector level=value[,value...] (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Store key to save the result under")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Rows to print, 0 for all (default from config)")

	return cmd
}
