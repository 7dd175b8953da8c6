package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jbweber/homelab/territoire/internal/datastore"
	"github.com/jbweber/homelab/territoire/internal/migrations"
)

// SetupTestDB opens an empty in-memory datastore without running migrations.
func SetupTestDB(t *testing.T, testName string) (*datastore.Datastore, func()) {
	t.Helper()

	ds, err := datastore.Open(datastore.SQLite, NewTestDSN(testName))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	cleanup := func() {
		if err := ds.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	}
	return ds, cleanup
}

// SetupTestDBWithMigrations opens an in-memory datastore with the full schema.
func SetupTestDBWithMigrations(t *testing.T, testName string) (*datastore.Datastore, func()) {
	t.Helper()

	ds, cleanup := SetupTestDB(t, testName)
	if _, err := migrations.Run(context.Background(), ds); err != nil {
		cleanup()
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return ds, cleanup
}

// SetupTestDatastore is SetupTestDBWithMigrations with cleanup registered on t.
func SetupTestDatastore(t *testing.T, testName string) *datastore.Datastore {
	t.Helper()
	ds, cleanup := SetupTestDBWithMigrations(t, testName)
	t.Cleanup(cleanup)
	return ds
}

// SeedDepartement inserts a département row and returns its id. An empty
// nom is stored as NULL.
func SeedDepartement(t *testing.T, ds *datastore.Datastore, code, nom string) int64 {
	t.Helper()

	var n sql.NullString
	if nom != "" {
		n = sql.NullString{String: nom, Valid: true}
	}

	var id int64
	err := ds.DB.QueryRow(ds.Rebind("INSERT INTO departement (code, nom) VALUES (?, ?) RETURNING id"), code, n).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed departement %s: %v", code, err)
	}
	return id
}

// SeedVille inserts a ville row owned by departementID and returns its id.
func SeedVille(t *testing.T, ds *datastore.Datastore, departementID int64, nom string, nbHabitants int) int64 {
	t.Helper()

	var id int64
	err := ds.DB.QueryRow(ds.Rebind("INSERT INTO ville (nom, nb_habitants, id_dept) VALUES (?, ?, ?) RETURNING id"),
		nom, nbHabitants, departementID).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed ville %s: %v", nom, err)
	}
	return id
}
