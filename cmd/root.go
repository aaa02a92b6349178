// Package cmd defines and implements the CLI commands for the
// zyteroute executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paxaxel223/zyteroute/internal/config"
	"github.com/paxaxel223/zyteroute/internal/logging"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zyteroute",
		Short: "Routes crawler fetches through the Zyte API.",
		Long: `zyteroute fetches URLs either directly or through the Zyte API
rendering/extraction service, deriving the API parameters for each request
from its headers, method, body, and per-request overrides.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is env-only)")
	cmd.AddCommand(newFetchCmd())

	return cmd
}

// loadConfigAndLogger builds the runtime pieces every subcommand needs.
func loadConfigAndLogger() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
