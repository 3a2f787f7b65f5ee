package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/finance-tracker/internal/storage"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			return migrate(cfg.PostgresDSN(), logger)
		},
	}
}

func migrate(dsn string, logger *logrus.Logger) error {
	result, err := storage.RunMigrations(dsn)
	if err != nil {
		logger.WithError(err).Error("storage.RunMigrations")
		return err
	}

	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  result.PreVersion,
		"postMigrationVersion": result.PostVersion,
	}).Info("Migration status")
	return nil
}
