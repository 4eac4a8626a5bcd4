package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gohub-app/gohub/internal/interfaces/cli/approvals"
	"github.com/gohub-app/gohub/internal/interfaces/cli/migrate"
	"github.com/gohub-app/gohub/internal/interfaces/cli/server"
	"github.com/gohub-app/gohub/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "gohub",
		Short:   "gohub - device-bound authentication service",
		Long:    `gohub registers approved students and keeps each account signed in on at most one device.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		approvals.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
