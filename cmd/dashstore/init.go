package main

import (
	"github.com/spf13/cobra"

	"github.com/sohipren/dashboard/formats"
)

func (cli *CLI) createInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create any missing data file",
		Long: `Creates the data directory and every data file that does not exist yet.
Existing files are never modified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.store()
			if err != nil {
				return err
			}

			paths := m.Paths()
			table := formats.Table{
				Headers: []string{"store", "path"},
				Rows: [][]string{
					{"maintenance", paths.Maintenance},
					{"comparison", paths.Comparison},
					{"part status", paths.PartStatus},
				},
			}
			value := map[string]string{
				"maintenance": paths.Maintenance,
				"comparison":  paths.Comparison,
				"part_status": paths.PartStatus,
			}
			return cli.render(formats.Result{Value: value, Table: table})
		},
	}
}
