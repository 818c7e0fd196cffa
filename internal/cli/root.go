// Package cli implements the quizctl command line.
package cli

import (
	"image-judge/internal/config"
	"image-judge/internal/logger"

	"github.com/spf13/cobra"
)

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds the quizctl command tree.
func NewRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "quizctl",
		Short:         "Operate the AI-or-real image judgment quiz",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(config.LoggerConfig{Level: logLevel, Env: "development"})
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewPoolCmd())
	cmd.AddCommand(NewResultsCmd())
	cmd.AddCommand(NewPlayCmd())
	return cmd
}

// loadConfig is swapped in tests.
var loadConfig = config.LoadConfig
