package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/sohipren/dashboard/dashstore"
	"github.com/sohipren/dashboard/formats"
	"github.com/sohipren/dashboard/types"
)

func (cli *CLI) createMaintenanceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "maintenance",
		Aliases: []string{"m"},
		Short:   "Record and review maintenance events",
	}
	cmd.AddCommand(
		cli.createMaintenanceAddCommand(),
		cli.createMaintenanceListCommand(),
		cli.createMaintenanceSummaryCommand(),
	)
	return cmd
}

func (cli *CLI) createMaintenanceAddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a maintenance event",
		Example: `  dashstore maintenance add --part Motor --type Preventiva \
    --description "Troca de óleo" --cost 150`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.store()
			if err != nil {
				return err
			}

			// Only flags the user passed are submitted, so a missing one is
			// reported by name.
			fields := make(map[string]interface{})
			for _, name := range []string{"part", "type", "description"} {
				if cmd.Flags().Changed(name) {
					v, _ := cmd.Flags().GetString(name)
					fields[formKey(name)] = v
				}
			}
			if cmd.Flags().Changed("cost") {
				v, _ := cmd.Flags().GetString("cost")
				fields[formKey("cost")] = numericArg(v)
			}

			rec, err := m.Maintenance().AddRecordFields(fields)
			if err != nil {
				return WrapError("add maintenance record", err,
					"Accepted types: Preventiva, Corretiva, Preditiva", CommonSuggestions.RunHelp)
			}
			cli.logger.Info("maintenance record added", "id", rec.ID, "part", rec.Part)
			return cli.render(maintenanceResult([]types.MaintenanceRecord{rec}))
		},
	}
	cmd.Flags().String("part", "", "Part the work was done on (required)")
	cmd.Flags().String("type", "", "Maintenance type: Preventiva, Corretiva or Preditiva (required)")
	cmd.Flags().String("description", "", "What was done (required)")
	cmd.Flags().String("cost", "", "Cost of the work (required)")
	return cmd
}

func formKey(flag string) string {
	if flag == "type" {
		return "maintenance_type"
	}
	return flag
}

func (cli *CLI) createMaintenanceListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show every maintenance event in the order it was recorded",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.store()
			if err != nil {
				return err
			}
			records, err := m.MaintenanceHistory()
			if err != nil {
				return WrapError("list maintenance records", err, CommonSuggestions.CheckDataDir)
			}

			if part, _ := cmd.Flags().GetString("part"); part != "" {
				filtered := make([]types.MaintenanceRecord, 0, len(records))
				for _, r := range records {
					if r.Part == part {
						filtered = append(filtered, r)
					}
				}
				records = filtered
			}
			return cli.render(maintenanceResult(records))
		},
	}
	cmd.Flags().String("part", "", "Only show events for this part")
	return cmd
}

func (cli *CLI) createMaintenanceSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show cost metrics of the maintenance log",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.store()
			if err != nil {
				return err
			}
			records, err := m.MaintenanceHistory()
			if err != nil {
				return WrapError("summarize maintenance records", err, CommonSuggestions.CheckDataDir)
			}
			if !dashstore.IsChronological(records) {
				cli.logger.Warn("maintenance log is not in chronological order", "path", m.Paths().Maintenance)
			}
			return cli.render(summaryResult(records))
		},
	}
}

func maintenanceResult(records []types.MaintenanceRecord) formats.Result {
	table := formats.Table{Headers: []string{"id", "timestamp", "part", "type", "description", "cost"}}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			r.ID, r.Timestamp, r.Part, string(r.MaintenanceType), r.Description, formatCost(r.Cost),
		})
	}
	return formats.Result{Value: records, Table: table}
}

type maintenanceSummary struct {
	dashstore.MaintenanceSummary `yaml:",inline"`
	CostByPart                   map[string]float64 `json:"cost_by_part" yaml:"cost_by_part"`
	CountByType                  map[string]int     `json:"count_by_type" yaml:"count_by_type"`
}

func summaryResult(records []types.MaintenanceRecord) formats.Result {
	summary := maintenanceSummary{
		MaintenanceSummary: dashstore.Summarize(records),
		CostByPart:         dashstore.CostByPart(records),
		CountByType:        make(map[string]int),
	}
	for t, n := range dashstore.FrequencyByType(records) {
		summary.CountByType[string(t)] = n
	}

	table := formats.Table{
		Headers: []string{"metric", "value"},
		Rows: [][]string{
			{"count", itoa(summary.Count)},
			{"total", formatCost(summary.Total)},
			{"mean", formatCost(summary.Mean)},
			{"median", formatCost(summary.Median)},
			{"min", formatCost(summary.Min)},
			{"max", formatCost(summary.Max)},
			{"range", formatCost(summary.Range)},
		},
	}

	means := dashstore.MeanCostByType(records)
	for _, t := range types.MaintenanceTypes {
		if n, ok := summary.CountByType[string(t)]; ok {
			table.Rows = append(table.Rows,
				[]string{"count " + string(t), itoa(n)},
				[]string{"mean " + string(t), formatCost(means[t])})
		}
	}

	parts := make([]string, 0, len(summary.CostByPart))
	for p := range summary.CostByPart {
		parts = append(parts, p)
	}
	sort.Strings(parts)
	for _, p := range parts {
		table.Rows = append(table.Rows, []string{"cost " + p, formatCost(summary.CostByPart[p])})
	}

	return formats.Result{Value: summary, Table: table}
}
