package main

import (
	"github.com/jeneeldumasia/mp/internal/config"
	"github.com/jeneeldumasia/mp/pkg/logger"
	"github.com/spf13/cobra"
)

// envFile is the dotenv file read before the environment
var envFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mp",
		Short: "Point-of-sale billing for a single-counter food shop",
		Long: `mp runs the till: a live bill with discount and GST, recorded sales,
daily and weekly reports, and thermal receipt printing.

Without a subcommand it starts the HTTP server.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with configuration")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newReportCmd(),
		newExportCmd(),
		newVersionCmd(),
	)
	return root
}

func loadConfig() *config.Config {
	return config.Load(envFile)
}

// newLogger builds the process logger. Commands other than serve keep
// stdout for their own output.
func newLogger(cfg *config.Config, forServer bool) *logger.Logger {
	out := cfg.Log.Output
	if !forServer && (out == "" || out == "stdout") {
		out = "stderr"
	}
	return logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: out,
	})
}
