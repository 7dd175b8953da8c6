package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jbweber/homelab/territoire/internal/datastore"
)

// Migration represents a database migration with up and down functions.
// Both run inside the transaction that records the version.
type Migration struct {
	Version int64
	Name    string
	Up      func(tx *sql.Tx, dialect datastore.Dialect) error
	Down    func(tx *sql.Tx, dialect datastore.Dialect) error
}

// Migrator handles database migrations
type Migrator struct {
	ds         *datastore.Datastore
	migrations []Migration
}

// NewMigrator creates a new migrator instance
func NewMigrator(ds *datastore.Datastore) *Migrator {
	return &Migrator{
		ds:         ds,
		migrations: []Migration{},
	}
}

// AddMigration adds a migration to the migrator
func (m *Migrator) AddMigration(migration Migration) {
	m.migrations = append(m.migrations, migration)
	sort.Slice(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

// RunMigrations runs all pending migrations and returns how many were applied.
func (m *Migrator) RunMigrations(ctx context.Context) (int, error) {
	if err := m.createMigrationsTable(ctx); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}

	applied := 0
	for _, migration := range m.migrations {
		if migration.Version <= currentVersion {
			continue
		}
		if err := m.runMigration(ctx, migration); err != nil {
			return applied, fmt.Errorf("failed to run migration %d (%s): %w", migration.Version, migration.Name, err)
		}
		applied++
	}

	return applied, nil
}

// RollbackLast reverts the most recently applied migration. It returns
// the reverted version, or 0 when nothing was applied.
func (m *Migrator) RollbackLast(ctx context.Context) (int64, error) {
	if err := m.createMigrationsTable(ctx); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	currentVersion, err := m.getCurrentVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}
	if currentVersion == 0 {
		return 0, nil
	}

	for _, migration := range m.migrations {
		if migration.Version != currentVersion {
			continue
		}
		if migration.Down == nil {
			return 0, fmt.Errorf("migration %d (%s) has no down step", migration.Version, migration.Name)
		}
		err := m.inTx(ctx, func(tx *sql.Tx) error {
			if err := migration.Down(tx, m.ds.Dialect); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, m.ds.Rebind("DELETE FROM schema_migrations WHERE version = ?"), migration.Version)
			return err
		})
		if err != nil {
			return 0, fmt.Errorf("failed to roll back migration %d (%s): %w", migration.Version, migration.Name, err)
		}
		return migration.Version, nil
	}

	return 0, fmt.Errorf("applied migration %d is not registered", currentVersion)
}

// createMigrationsTable creates the migrations tracking table
func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	_, err := m.ds.DB.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

// getCurrentVersion returns the current migration version
func (m *Migrator) getCurrentVersion(ctx context.Context) (int64, error) {
	var version int64
	err := m.ds.DB.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// runMigration executes a single migration
func (m *Migrator) runMigration(ctx context.Context, migration Migration) error {
	return m.inTx(ctx, func(tx *sql.Tx) error {
		if err := migration.Up(tx, m.ds.Dialect); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			m.ds.Rebind("INSERT INTO schema_migrations (version, name) VALUES (?, ?)"),
			migration.Version, migration.Name)
		return err
	})
}

func (m *Migrator) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := m.ds.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("failed to rollback migration transaction: %w", rbErr))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// GetCurrentVersion returns the current migration version (public method)
func (m *Migrator) GetCurrentVersion(ctx context.Context) (int64, error) {
	return m.getCurrentVersion(ctx)
}

// GetMigrations returns all registered migrations
func (m *Migrator) GetMigrations() []Migration {
	return m.migrations
}

// All returns every migration the service knows about.
func All() []Migration {
	all := GetInitialMigrations()
	all = append(all, GetPerformanceMigrations()...)
	return append(all, GetCaseFoldMigrations()...)
}

// Run applies all pending migrations to ds.
func Run(ctx context.Context, ds *datastore.Datastore) (int, error) {
	migrator := NewMigrator(ds)
	for _, migration := range All() {
		migrator.AddMigration(migration)
	}
	return migrator.RunMigrations(ctx)
}
