package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

// Migrator applies SQL migrations from a directory against Postgres.
type Migrator struct {
	m   *migrate.Migrate
	log *zap.Logger
}

// New wraps an existing connection. The connection stays owned by the
// caller and is not closed by Close.
func New(db *sql.DB, migrationsPath string, log *zap.Logger) (*Migrator, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}
	return &Migrator{m: m, log: log}, nil
}

// NewFromURL opens its own connection from a database URL.
func NewFromURL(databaseURL, migrationsPath string, log *zap.Logger) (*Migrator, error) {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("migrate instance: %w", err)
	}
	return &Migrator{m: m, log: log}, nil
}

// Up applies every pending migration.
func (g *Migrator) Up() error {
	if err := g.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			g.log.Info("schema already current")
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}
	g.logVersion("migrations applied")
	return nil
}

// Down rolls back every applied migration.
func (g *Migrator) Down() error {
	if err := g.m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			g.log.Info("nothing to roll back")
			return nil
		}
		return fmt.Errorf("migrate down: %w", err)
	}
	g.log.Info("all migrations rolled back")
	return nil
}

// Steps applies n migrations forward, or rolls back -n when negative.
func (g *Migrator) Steps(n int) error {
	if err := g.m.Steps(n); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			g.log.Info("schema already current")
			return nil
		}
		return fmt.Errorf("migrate steps(%d): %w", n, err)
	}
	g.logVersion("migration steps applied")
	return nil
}

// GoTo migrates up or down until the schema sits at version.
func (g *Migrator) GoTo(version uint) error {
	if err := g.m.Migrate(version); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			g.log.Info("already at requested version", zap.Uint("version", version))
			return nil
		}
		return fmt.Errorf("migrate to %d: %w", version, err)
	}
	g.log.Info("migrated", zap.Uint("version", version))
	return nil
}

// Version reports the current schema version. A fresh database reports
// version 0 and no error.
func (g *Migrator) Version() (uint, bool, error) {
	version, dirty, err := g.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read version: %w", err)
	}
	return version, dirty, nil
}

// Force overwrites the recorded version without running any SQL. Only
// for repairing a dirty schema after a failed migration.
func (g *Migrator) Force(version int) error {
	g.log.Warn("forcing schema version", zap.Int("version", version))
	if err := g.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database.
func (g *Migrator) Drop() error {
	g.log.Warn("dropping all database objects")
	if err := g.m.Drop(); err != nil {
		return fmt.Errorf("drop: %w", err)
	}
	return nil
}

func (g *Migrator) Close() error {
	srcErr, dbErr := g.m.Close()
	if srcErr != nil {
		return fmt.Errorf("close source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("close database: %w", dbErr)
	}
	return nil
}

func (g *Migrator) logVersion(msg string) {
	version, dirty, err := g.m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		g.log.Warn(msg, zap.Error(err))
		return
	}
	g.log.Info(msg, zap.Uint("version", version), zap.Bool("dirty", dirty))
}
