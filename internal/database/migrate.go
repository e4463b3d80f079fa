package database

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"assetvault/internal/logger"
)

const defaultMigrationsPath = "migrations"

func (c *Config) migrationsPath() string {
	if c.MigrationsPath == "" {
		return defaultMigrationsPath
	}
	return c.MigrationsPath
}

// MigrationsSource returns the golang-migrate source URL of the SQL migrations.
func (c *Config) MigrationsSource() string {
	return "file://" + c.migrationsPath()
}

// NewMigrator opens a golang-migrate instance for the PostgreSQL schema.
// SQLite schemas are auto-migrated by Manager.Migrate instead.
func NewMigrator(c *Config) (*migrate.Migrate, error) {
	if c.Driver != DriverPostgres {
		return nil, fmt.Errorf("SQL migrations target PostgreSQL; driver is %q", c.Driver)
	}
	m, err := migrate.New(c.MigrationsSource(), c.MigrateURL())
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// CloseMigrator releases the source and database handles of m, logging failures.
func CloseMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Get().Warnw("migrate source close error", "error", srcErr)
	}
	if dbErr != nil {
		logger.Get().Warnw("migrate database close error", "error", dbErr)
	}
}
