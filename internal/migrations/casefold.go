package migrations

import (
	"database/sql"

	"github.com/jbweber/homelab/territoire/internal/datastore"
)

// GetCaseFoldMigrations returns the migrations moving name uniqueness onto
// casefold(), which folds accented capitals that LOWER leaves alone on
// SQLite. SQLite gets casefold from the datastore package; Postgres gets an
// SQL function following the database's LC_CTYPE.
func GetCaseFoldMigrations() []Migration {
	return []Migration{
		{
			Version: 11,
			Name:    "casefold_ville_names",
			Up: func(tx *sql.Tx, dialect datastore.Dialect) error {
				var statements []string
				if dialect == datastore.Postgres {
					statements = append(statements,
						`CREATE OR REPLACE FUNCTION casefold(text) RETURNS text
							LANGUAGE sql IMMUTABLE STRICT PARALLEL SAFE
							AS $$ SELECT lower($1) $$`)
				}
				statements = append(statements,
					"DROP INDEX IF EXISTS ux_ville_nom_lower",
					"CREATE UNIQUE INDEX ux_ville_nom_casefold ON ville (casefold(nom))",
				)

				for _, stmt := range statements {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
			Down: func(tx *sql.Tx, dialect datastore.Dialect) error {
				statements := []string{
					"DROP INDEX IF EXISTS ux_ville_nom_casefold",
					"CREATE UNIQUE INDEX ux_ville_nom_lower ON ville (LOWER(nom))",
				}
				if dialect == datastore.Postgres {
					statements = append(statements, "DROP FUNCTION IF EXISTS casefold(text)")
				}

				for _, stmt := range statements {
					if _, err := tx.Exec(stmt); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}
