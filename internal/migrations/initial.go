package migrations

import (
	"database/sql"

	"github.com/jbweber/homelab/territoire/internal/datastore"
)

// idColumn returns the auto-increment primary key definition for the dialect.
func idColumn(dialect datastore.Dialect) string {
	if dialect == datastore.Postgres {
		return "id BIGSERIAL PRIMARY KEY"
	}
	return "id INTEGER PRIMARY KEY AUTOINCREMENT"
}

// refColumn returns the integer type used by foreign keys for the dialect.
func refColumn(dialect datastore.Dialect) string {
	if dialect == datastore.Postgres {
		return "BIGINT"
	}
	return "INTEGER"
}

// GetInitialMigrations returns all initial migrations
func GetInitialMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_departement_ville_tables",
			Up: func(tx *sql.Tx, dialect datastore.Dialect) error {
				statements := []string{
					`CREATE TABLE departement (
						` + idColumn(dialect) + `,
						code VARCHAR(3) NOT NULL UNIQUE,
						nom VARCHAR(100),
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					)`,
					`CREATE TABLE ville (
						` + idColumn(dialect) + `,
						nom VARCHAR(100) NOT NULL,
						nb_habitants INTEGER NOT NULL CHECK (nb_habitants BETWEEN 1 AND 50000000),
						id_dept ` + refColumn(dialect) + ` NOT NULL REFERENCES departement(id),
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					)`,
					// Ville names are unique across all départements, ignoring case.
					`CREATE UNIQUE INDEX ux_ville_nom_lower ON ville (LOWER(nom))`,
				}

				for _, stmt := range statements {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(tx *sql.Tx, dialect datastore.Dialect) error {
				for _, stmt := range []string{
					"DROP INDEX IF EXISTS ux_ville_nom_lower",
					"DROP TABLE IF EXISTS ville",
					"DROP TABLE IF EXISTS departement",
				} {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
