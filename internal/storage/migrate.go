package storage

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending migration to the database at dbPath
// on a dedicated connection and returns the schema version before and after.
func RunMigrations(dbPath string) (uint, uint, error) {
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, 0, fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return 0, 0, fmt.Errorf("create sqlite driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, 0, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return 0, 0, fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	preVersion, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		preVersion = 0
	} else if err != nil {
		return 0, 0, fmt.Errorf("read schema version: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return preVersion, preVersion, fmt.Errorf("run migrations: %w", err)
	}

	postVersion, _, err := m.Version()
	if err != nil {
		return preVersion, preVersion, fmt.Errorf("read schema version: %w", err)
	}

	if postVersion != preVersion {
		logrus.WithFields(logrus.Fields{
			"preMigrationVersion":  preVersion,
			"postMigrationVersion": postVersion,
		}).Info("Storage.RunMigrations.applied")
	}
	return preVersion, postVersion, nil
}
