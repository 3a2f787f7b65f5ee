package commands

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "finance-tracker",
		Short: "Personal finance tracker API",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	serveCmd := newServeCommand()
	// Running the binary without a subcommand serves.
	rootCmd.RunE = serveCmd.RunE
	rootCmd.Flags().AddFlag(serveCmd.Flags().Lookup("migrate"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCommand())

	return rootCmd
}

// loadConfig reads an optional .env file, then the layered configuration,
// and returns a logger at the configured level.
func loadConfig() (*config.Config, *logrus.Logger, error) {
	_ = godotenv.Load()

	cfg, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logging.SetupLogging(level), nil
}
