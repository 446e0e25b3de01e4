package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/helpdesk/internal/interfaces/cli/migrate"
	"github.com/orris-inc/helpdesk/internal/interfaces/cli/server"
)

// @title Helpdesk API
// @version 1.0
// @description IT support ticketing: employees open tickets, admins assign technicians, everyone comments.
// @BasePath /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	rootCmd := &cobra.Command{
		Use:   "helpdesk",
		Short: "Helpdesk - IT support ticketing API",
		Long:  `Helpdesk serves the ticketing HTTP API and manages its database schema.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
