package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/leadrouter/internal/interfaces/cli/migrate"
	"github.com/orris-inc/leadrouter/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "leadrouter",
		Short: "Lead Router - transactional sales-lead assignment service",
		Long:  `Lead Router routes inbound sales leads to callers with state-scoped round-robin fairness, global fallback, and per-caller daily caps.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
