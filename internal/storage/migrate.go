package storage

import (
	"database/sql"
	"embed"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationResult reports the schema version before and after a run.
type MigrationResult struct {
	PreVersion  uint
	PostVersion uint
}

// RunMigrations applies every pending migration. It opens its own connection
// because closing the migrate instance closes the underlying database.
func RunMigrations(dsn string) (*MigrationResult, error) {
	migrateDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "sql.Open")
	}
	defer migrateDB.Close()

	driver, err := postgres.WithInstance(migrateDB, &postgres.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "postgres.WithInstance")
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, errors.Wrap(err, "iofs.New")
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, errors.Wrap(err, "migrate.NewWithInstance")
	}
	defer m.Close()

	result := &MigrationResult{}
	result.PreVersion, _, err = m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, errors.Wrap(err, "m.Version.preMigrationVersion")
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, errors.Wrap(err, "m.Up")
	}

	result.PostVersion, _, err = m.Version()
	if err != nil {
		return nil, errors.Wrap(err, "m.Version.postMigrationVersion")
	}
	return result, nil
}
