package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/homelab/territoire/internal/datastore"
)

func openTestDatastore(t *testing.T, name string) *datastore.Datastore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	ds, err := datastore.Open(datastore.SQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if closeErr := ds.Close(); closeErr != nil {
			t.Logf("Warning: failed to close test database: %v", closeErr)
		}
	})
	return ds
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestMigrator_RunMigrations(t *testing.T) {
	ds := openTestDatastore(t, "TestMigrator_RunMigrations")
	ctx := context.Background()

	applied, err := Run(ctx, ds)
	require.NoError(t, err)
	assert.Equal(t, 3, applied)

	migrator := NewMigrator(ds)
	version, err := migrator.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(11), version)

	assert.True(t, tableExists(t, ds.DB, "departement"))
	assert.True(t, tableExists(t, ds.DB, "ville"))
	assert.True(t, tableExists(t, ds.DB, "schema_migrations"))

	var count int
	err = ds.DB.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = 1 AND name = 'create_departement_ville_tables'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// A second run is a no-op.
	applied, err = Run(ctx, ds)
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestMigrator_SchemaConstraints(t *testing.T) {
	ds := openTestDatastore(t, "TestMigrator_SchemaConstraints")
	_, err := Run(context.Background(), ds)
	require.NoError(t, err)

	_, err = ds.DB.Exec("INSERT INTO departement (code, nom) VALUES ('34', 'Hérault')")
	require.NoError(t, err)

	_, err = ds.DB.Exec("INSERT INTO departement (code) VALUES ('34')")
	assert.True(t, datastore.IsUniqueViolation(err), "duplicate code: %v", err)

	_, err = ds.DB.Exec("INSERT INTO ville (nom, nb_habitants, id_dept) VALUES ('Sète', 44000, 1)")
	require.NoError(t, err)

	_, err = ds.DB.Exec("INSERT INTO ville (nom, nb_habitants, id_dept) VALUES ('SÈTE', 10, 1)")
	assert.True(t, datastore.IsUniqueViolation(err), "accented case-insensitive duplicate: %v", err)

	_, err = ds.DB.Exec("INSERT INTO ville (nom, nb_habitants, id_dept) VALUES ('sète', 10, 1)")
	assert.True(t, datastore.IsUniqueViolation(err), "case-insensitive duplicate: %v", err)

	_, err = ds.DB.Exec("INSERT INTO ville (nom, nb_habitants, id_dept) VALUES ('Sete', 10, 1)")
	require.NoError(t, err)

	_, err = ds.DB.Exec("INSERT INTO ville (nom, nb_habitants, id_dept) VALUES ('Agde', 0, 1)")
	assert.True(t, datastore.IsCheckViolation(err), "population check: %v", err)

	_, err = ds.DB.Exec("INSERT INTO ville (nom, nb_habitants, id_dept) VALUES ('Agde', 29000, 999)")
	assert.True(t, datastore.IsForeignKeyViolation(err), "unknown departement: %v", err)
}

func TestMigrator_RollbackLast(t *testing.T) {
	ds := openTestDatastore(t, "TestMigrator_RollbackLast")
	ctx := context.Background()

	migrator := NewMigrator(ds)
	for _, migration := range All() {
		migrator.AddMigration(migration)
	}
	_, err := migrator.RunMigrations(ctx)
	require.NoError(t, err)

	reverted, err := migrator.RollbackLast(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(11), reverted)

	// back on the LOWER index, which only folds ASCII on SQLite
	_, err = ds.DB.Exec("INSERT INTO departement (code) VALUES ('34')")
	require.NoError(t, err)
	_, err = ds.DB.Exec("INSERT INTO ville (nom, nb_habitants, id_dept) VALUES ('Évreux', 10, 1)")
	require.NoError(t, err)
	_, err = ds.DB.Exec("INSERT INTO ville (nom, nb_habitants, id_dept) VALUES ('ÉVREUX', 10, 1)")
	require.NoError(t, err)
	_, err = ds.DB.Exec("DELETE FROM ville")
	require.NoError(t, err)

	reverted, err = migrator.RollbackLast(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10), reverted)

	reverted, err = migrator.RollbackLast(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reverted)
	assert.False(t, tableExists(t, ds.DB, "ville"))

	reverted, err = migrator.RollbackLast(ctx)
	require.NoError(t, err)
	assert.Zero(t, reverted)
}

func TestMigrator_AddMigration(t *testing.T) {
	ds := openTestDatastore(t, "TestMigrator_AddMigration")
	migrator := NewMigrator(ds)

	// Add migrations out of order
	migrator.AddMigration(Migration{Version: 3, Name: "third"})
	migrator.AddMigration(Migration{Version: 1, Name: "first"})
	migrator.AddMigration(Migration{Version: 2, Name: "second"})

	migrations := migrator.GetMigrations()
	assert.Equal(t, int64(1), migrations[0].Version)
	assert.Equal(t, int64(2), migrations[1].Version)
	assert.Equal(t, int64(3), migrations[2].Version)
}

func TestMigrator_FailedMigrationIsNotRecorded(t *testing.T) {
	ds := openTestDatastore(t, "TestMigrator_FailedMigrationIsNotRecorded")
	ctx := context.Background()

	migrator := NewMigrator(ds)
	migrator.AddMigration(Migration{
		Version: 1,
		Name:    "broken",
		Up: func(tx *sql.Tx, _ datastore.Dialect) error {
			_, err := tx.Exec("CREATE TABLE nope (")
			return err
		},
	})

	_, err := migrator.RunMigrations(ctx)
	require.Error(t, err)

	version, err := migrator.GetCurrentVersion(ctx)
	require.NoError(t, err)
	assert.Zero(t, version)
}
