package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sohipren/dashboard/dashstore/columnar"
	"github.com/sohipren/dashboard/formats"
	"github.com/sohipren/dashboard/types"
)

func (cli *CLI) createComparisonCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "comparison",
		Aliases: []string{"c"},
		Short:   "Record and review paired comparisons",
	}
	cmd.AddCommand(
		cli.createComparisonAddCommand(),
		cli.createComparisonListCommand(),
		cli.createComparisonSchemaCommand(),
	)
	return cmd
}

func (cli *CLI) createComparisonAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Append a comparison row",
		Example: `  dashstore comparison add --item1 "Motor A" --item2 "Motor B" --difference 450`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.store()
			if err != nil {
				return err
			}

			item1, _ := cmd.Flags().GetString("item1")
			item2, _ := cmd.Flags().GetString("item2")
			difference, _ := cmd.Flags().GetString("difference")

			rec, err := m.AddComparison(item1, item2, numericArg(difference))
			if err != nil {
				return WrapError("add comparison", err, "--difference must be a number")
			}
			return cli.render(comparisonResult(types.ComparisonTable{
				Columns: types.ComparisonColumns,
				Rows:    []types.ComparisonRecord{rec},
			}))
		},
	}
	cmd.Flags().String("item1", "", "First item of the comparison")
	cmd.Flags().String("item2", "", "Second item of the comparison")
	cmd.Flags().String("difference", "", "Numeric difference between the items (required)")
	return cmd
}

func (cli *CLI) createComparisonListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show the comparison history",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.store()
			if err != nil {
				return err
			}
			table, err := m.ComparisonHistory()
			if err != nil {
				return WrapError("list comparisons", err, CommonSuggestions.CheckDataDir)
			}
			return cli.render(comparisonResult(table))
		},
	}
}

func (cli *CLI) createComparisonSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the columnar schema of the comparison history",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.store()
			if err != nil {
				return err
			}
			table, err := m.ComparisonHistory()
			if err != nil {
				return WrapError("read comparison schema", err, CommonSuggestions.CheckDataDir)
			}

			rec := columnar.FromComparisons(table, nil)
			defer rec.Release()

			type column struct {
				Name     string `json:"name" yaml:"name"`
				Type     string `json:"type" yaml:"type"`
				Nullable bool   `json:"nullable" yaml:"nullable"`
				Rows     int64  `json:"rows" yaml:"rows"`
			}
			var cols []column
			out := formats.Table{Headers: []string{"name", "type", "nullable", "rows"}}
			for i, f := range rec.Schema().Fields() {
				c := column{Name: f.Name, Type: f.Type.String(), Nullable: f.Nullable, Rows: int64(rec.Column(i).Len())}
				cols = append(cols, c)
				out.Rows = append(out.Rows, []string{c.Name, c.Type, strconv.FormatBool(c.Nullable), strconv.FormatInt(c.Rows, 10)})
			}
			return cli.render(formats.Result{Value: cols, Table: out})
		},
	}
}

func comparisonResult(table types.ComparisonTable) formats.Result {
	out := formats.Table{}
	for _, col := range table.Columns {
		out.Headers = append(out.Headers, col.Name)
	}
	for _, r := range table.Rows {
		out.Rows = append(out.Rows, []string{
			r.Timestamp.Format(types.TableTimestampLayout), r.Item1, r.Item2, formatCost(r.Difference),
		})
	}
	return formats.Result{Value: table.Rows, Table: out}
}

func formatCost(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func itoa(n int) string { return strconv.Itoa(n) }
