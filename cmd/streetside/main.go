package main

import (
	"os"

	"github.com/spf13/cobra"

	"streetside/internal/interfaces/cli/migrate"
	"streetside/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "streetside",
		Short: "Streetside - vendor status and live session service",
		Long:  `Streetside powers local vendor discovery: vendor approval lifecycle, live "I'm here now" sessions, and the real-time discovery feed.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
