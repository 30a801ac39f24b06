package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sohipren/dashboard/dashstore"
	"github.com/sohipren/dashboard/dashstore/store"
	"github.com/sohipren/dashboard/formats"
)

// CLI holds the command tree and the state shared by its commands
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper
	out       io.Writer
	errOut    io.Writer

	logger  *slog.Logger
	logFile io.Closer
	manager *dashstore.Manager
}

// NewCLI creates the command tree writing results to out and diagnostics to errOut
func NewCLI(out, errOut io.Writer) *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		out:       out,
		errOut:    errOut,
	}
	cli.setupViperConfig()
	cli.rootCmd = cli.createRootCommand()
	cli.addGlobalFlags()
	cli.addCommands()
	return cli
}

// Execute runs the command selected by os.Args
func (cli *CLI) Execute() error {
	defer cli.close()
	return cli.rootCmd.Execute()
}

// setupViperConfig configures Viper for config files and environment variables
func (cli *CLI) setupViperConfig() {
	if configFile := os.Getenv("DASHSTORE_CONFIG"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
	} else {
		cli.viperInst.SetConfigName("dashstore")
		cli.viperInst.SetConfigType("yaml")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.dashstore")
		cli.viperInst.AddConfigPath("/etc/dashstore")
	}

	// DASHSTORE_DATA_DIR, DASHSTORE_LOG_LEVEL, ...
	cli.viperInst.AutomaticEnv()
	cli.viperInst.SetEnvPrefix("DASHSTORE")
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	defaults := dashstore.DefaultConfig()
	cli.viperInst.SetDefault("data-dir", defaults.DataDir)
	cli.viperInst.SetDefault("maintenance-file", defaults.MaintenanceFile)
	cli.viperInst.SetDefault("comparison-file", defaults.ComparisonFile)
	cli.viperInst.SetDefault("part-status-file", defaults.PartStatusFile)
	cli.viperInst.SetDefault("format", "table")
	cli.viperInst.SetDefault("log-level", "warn")
}

func (cli *CLI) createRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashstore",
		Short: "Manage the maintenance, comparison and part status data of the dashboard",
		Long: `dashstore reads and appends to the local data files behind the dashboard:

  maintenance.json        maintenance events (append-only)
  comparison_history.csv  paired comparisons (append-only)
  parts_status.json       latest status of every part

Settings come from flags, DASHSTORE_* environment variables, a .env file or
a dashstore.yaml config file (set DASHSTORE_CONFIG to pick one explicitly).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.viperInst.BindPFlags(cmd.Flags()); err != nil {
				return NewConfigError("bind flags", err, CommonSuggestions.CheckFlags)
			}
			if err := cli.viperInst.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return NewConfigError("read config file", err, CommonSuggestions.CheckConfig)
				}
			}

			logger, logFile, err := initLogging(
				cli.viperInst.GetString("log-level"),
				cli.viperInst.GetBool("verbose"),
				cli.errOut)
			if err != nil {
				return NewConfigError("initialize logging", err, CommonSuggestions.CheckPerms)
			}
			cli.logger = logger
			cli.logFile = logFile

			if _, err := formats.Get(cli.viperInst.GetString("format")); err != nil {
				return NewConfigError("select output format", err, CommonSuggestions.CheckFlags)
			}
			return nil
		},
	}
}

// addGlobalFlags adds persistent flags available to all commands
func (cli *CLI) addGlobalFlags() {
	defaults := dashstore.DefaultConfig()
	flags := cli.rootCmd.PersistentFlags()
	flags.String("data-dir", defaults.DataDir, "Directory holding the data files")
	flags.String("maintenance-file", defaults.MaintenanceFile, "Maintenance log file name")
	flags.String("comparison-file", defaults.ComparisonFile, "Comparison table file name")
	flags.String("part-status-file", defaults.PartStatusFile, "Part status file name")
	flags.String("format", "table", fmt.Sprintf("Output format %v", formats.List()))
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.BoolP("verbose", "v", false, "Mirror log output to stderr")
}

func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.createInitCommand(),
		cli.createMaintenanceCommand(),
		cli.createComparisonCommand(),
		cli.createPartCommand(),
		cli.createExportCommand(),
	)
}

// config assembles the store layout from flags, environment and config file
func (cli *CLI) config() dashstore.Config {
	return dashstore.Config{
		DataDir:         cli.viperInst.GetString("data-dir"),
		MaintenanceFile: cli.viperInst.GetString("maintenance-file"),
		ComparisonFile:  cli.viperInst.GetString("comparison-file"),
		PartStatusFile:  cli.viperInst.GetString("part-status-file"),
	}
}

// store opens the data directory on first use
func (cli *CLI) store() (*dashstore.Manager, error) {
	if cli.manager != nil {
		return cli.manager, nil
	}

	cfg := cli.config()
	var opts []store.Option
	if cli.logger != nil {
		opts = append(opts, store.WithLogger(cli.logger))
	}

	m, err := dashstore.New(cfg, opts...)
	if err != nil {
		return nil, NewStoreError("open data directory", err,
			CommonSuggestions.CheckDataDir, CommonSuggestions.CheckPerms)
	}
	cli.manager = m
	return m, nil
}

// render writes r in the selected output format
func (cli *CLI) render(r formats.Result) error {
	format, err := formats.Get(cli.viperInst.GetString("format"))
	if err != nil {
		return NewConfigError("render output", err, CommonSuggestions.CheckFlags)
	}
	return format.Render(cli.out, r)
}

func (cli *CLI) close() {
	if cli.logFile != nil {
		_ = cli.logFile.Close()
		cli.logFile = nil
	}
}

// numericArg parses s as a float. Text that is not a number is passed on
// unchanged so the store reports it as a validation error naming the field.
func numericArg(s string) interface{} {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return f
	}
	return s
}
