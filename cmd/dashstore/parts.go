package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/sohipren/dashboard/formats"
	"github.com/sohipren/dashboard/types"
)

func (cli *CLI) createPartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "part",
		Aliases: []string{"p"},
		Short:   "Track the status of parts",
	}
	cmd.AddCommand(cli.createPartSetCommand(), cli.createPartGetCommand())
	return cmd
}

func (cli *CLI) createPartSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set PART_ID STATUS",
		Short: "Replace the status of a part",
		Example: `  dashstore part set MOTOR-01 "Em Uso"
  dashstore part set FREIO-02 "Necessita Manutenção"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.store()
			if err != nil {
				return err
			}
			entry, err := m.SetStatus(args[0], args[1])
			if err != nil {
				return WrapError("set part status", err, CommonSuggestions.RetryLater)
			}
			if !types.IsKnownStatus(entry.Status) {
				cli.logger.Warn("status outside the known vocabulary", "part", args[0], "status", entry.Status)
			}
			return cli.render(partResult(types.PartStatusMap{args[0]: entry}))
		},
	}
}

func (cli *CLI) createPartGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [PART_ID]",
		Short: "Show the status of one part, or of every part",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.store()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				all, err := m.Statuses()
				if err != nil {
					return WrapError("list part statuses", err, CommonSuggestions.CheckDataDir)
				}
				return cli.render(partResult(all))
			}

			entry, found, err := m.Status(args[0])
			if err != nil {
				return WrapError("get part status", err, CommonSuggestions.CheckDataDir)
			}
			if !found {
				return NewNotFoundError("get part status", "part", args[0], CommonSuggestions.ListParts)
			}
			return cli.render(partResult(types.PartStatusMap{args[0]: entry}))
		},
	}
}

func partResult(all types.PartStatusMap) formats.Result {
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	table := formats.Table{Headers: []string{"part", "status", "last updated"}}
	for _, id := range ids {
		table.Rows = append(table.Rows, []string{id, all[id].Status, all[id].LastUpdated})
	}
	return formats.Result{Value: all, Table: table}
}
