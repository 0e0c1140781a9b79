package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fadedpez/cardvault/internal/config"
	"github.com/fadedpez/cardvault/internal/logging"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "cardvault",
		Short:         "Conceals and reveals the cards of on-chain poker games",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newMappingCommand(),
		newEvaluateCommand(),
	)
	return root
}

// loadConfig reads the environment and applies the configured log level
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.Default.SetLevel(level)
	return cfg, nil
}
