package formats

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// TableFormat aligns columns with tabs. An empty result prints only the
// header row so the columns stay visible.
var TableFormat = &OutputFormat{
	Name: "table",
	Render: func(w io.Writer, r Result) error {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		if len(r.Table.Headers) > 0 {
			if _, err := fmt.Fprintln(tw, strings.ToUpper(strings.Join(r.Table.Headers, "\t"))); err != nil {
				return err
			}
		}
		for _, row := range r.Table.Rows {
			if _, err := fmt.Fprintln(tw, strings.Join(sanitizeCells(row), "\t")); err != nil {
				return err
			}
		}
		return tw.Flush()
	},
}

// CSV writes the table view as comma separated values
var CSV = &OutputFormat{
	Name: "csv",
	Render: func(w io.Writer, r Result) error {
		cw := csv.NewWriter(w)
		if len(r.Table.Headers) > 0 {
			if err := cw.Write(r.Table.Headers); err != nil {
				return err
			}
		}
		if err := cw.WriteAll(r.Table.Rows); err != nil {
			return err
		}
		return cw.Error()
	},
}

// sanitizeCells keeps tabs and newlines inside a cell from breaking the
// column layout
func sanitizeCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.NewReplacer("\t", " ", "\n", " ", "\r", "").Replace(cell)
	}
	return out
}
