package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dendrascience/tabslice/table"
)

// renderFrame prints up to limit rows of f as aligned columns followed by
// the frame's shape. limit <= 0 prints every row.
func renderFrame(w io.Writer, f *table.Frame, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows, cols := f.Index(), f.Columns()

	header := rows.Levels()
	for i, h := range header {
		if h == "" {
			header[i] = "-"
		}
	}
	for c := 0; c < cols.Len(); c++ {
		labels := make([]string, 0, cols.NumLevels())
		for _, l := range cols.Tuple(c) {
			labels = append(labels, table.FormatLabel(l))
		}
		header = append(header, strings.Join(labels, "/"))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	n := rows.Len()
	if limit > 0 && limit < n {
		n = limit
	}
	cells := make([]string, 0, len(header))
	for r := 0; r < n; r++ {
		cells = cells[:0]
		for _, l := range rows.Tuple(r) {
			cells = append(cells, table.FormatLabel(l))
		}
		for _, v := range f.Row(r) {
			cells = append(cells, strconv.FormatFloat(v, 'f', 6, 64))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if n < rows.Len() {
		fmt.Fprintf(w, "... %d more rows\n", rows.Len()-n)
	}
	r, c := f.Shape()
	_, err := fmt.Fprintf(w, "[%d rows x %d columns]\n", r, c)
	return err
}
