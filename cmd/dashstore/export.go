package main

import (
	"github.com/spf13/cobra"

	"github.com/sohipren/dashboard/dashstore/export"
	"github.com/sohipren/dashboard/formats"
)

func (cli *CLI) createExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every data file and a manifest into a zip archive",
		Example: `  dashstore export
  dashstore export --output ./backups`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := cli.store()
			if err != nil {
				return err
			}

			outputDir, _ := cmd.Flags().GetString("output")
			archive, err := export.Export(m, outputDir)
			if err != nil {
				return WrapError("export data", err, CommonSuggestions.CheckPerms)
			}
			cli.logger.Info("export written", "archive", archive)

			return cli.render(formats.Result{
				Value: map[string]string{"archive": archive},
				Table: formats.Table{Headers: []string{"archive"}, Rows: [][]string{{archive}}},
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Directory for the archive (default: a new temporary directory)")
	return cmd
}
