package migrations

import (
	"database/sql"

	"github.com/jbweber/homelab/territoire/internal/datastore"
)

// GetPerformanceMigrations returns performance optimization migrations
func GetPerformanceMigrations() []Migration {
	return []Migration{
		{
			Version: 10,
			Name:    "add_performance_indices",
			Up: func(tx *sql.Tx, _ datastore.Dialect) error {
				indices := []string{
					"CREATE INDEX IF NOT EXISTS idx_ville_id_dept ON ville(id_dept)",
					"CREATE INDEX IF NOT EXISTS idx_ville_nb_habitants ON ville(nb_habitants)",
					"CREATE INDEX IF NOT EXISTS idx_departement_nom ON departement(nom)",
				}

				for _, indexSQL := range indices {
					if _, err := tx.Exec(indexSQL); err != nil {
						return err
					}
				}

				return nil
			},
			Down: func(tx *sql.Tx, _ datastore.Dialect) error {
				indices := []string{
					"DROP INDEX IF EXISTS idx_ville_id_dept",
					"DROP INDEX IF EXISTS idx_ville_nb_habitants",
					"DROP INDEX IF EXISTS idx_departement_nom",
				}

				for _, dropSQL := range indices {
					if _, err := tx.Exec(dropSQL); err != nil {
						return err
					}
				}

				return nil
			},
		},
	}
}
