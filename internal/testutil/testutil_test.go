package testutil

import (
	"testing"
)

func TestSetupTestDB(t *testing.T) {
	ds, cleanup := SetupTestDB(t, "TestSetupTestDB")
	defer cleanup()

	if ds == nil || ds.DB == nil {
		t.Fatal("Expected non-nil database")
	}

	var result string
	if err := ds.DB.QueryRow("SELECT 'test'").Scan(&result); err != nil {
		t.Errorf("Test query failed: %v", err)
	}
	if result != "test" {
		t.Errorf("Expected 'test', got '%s'", result)
	}
}

func TestSetupTestDBWithMigrations(t *testing.T) {
	ds, cleanup := SetupTestDBWithMigrations(t, "TestSetupTestDBWithMigrations")
	defer cleanup()

	for _, table := range []string{"schema_migrations", "departement", "ville"} {
		var count int
		err := ds.DB.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		if err != nil {
			t.Errorf("Error checking for table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}

func TestSeedHelpers(t *testing.T) {
	ds := SetupTestDatastore(t, "TestSeedHelpers")

	deptID := SeedDepartement(t, ds, "34", "Hérault")
	SeedDepartement(t, ds, "99", "")
	villeID := SeedVille(t, ds, deptID, "Montpellier", 285121)

	if deptID == 0 || villeID == 0 {
		t.Fatalf("Expected generated ids, got departement=%d ville=%d", deptID, villeID)
	}

	var nullNames int
	if err := ds.DB.QueryRow("SELECT COUNT(*) FROM departement WHERE nom IS NULL").Scan(&nullNames); err != nil {
		t.Fatal(err)
	}
	if nullNames != 1 {
		t.Errorf("Expected 1 departement without name, got %d", nullNames)
	}
}

func TestNewTestDSN(t *testing.T) {
	if got := NewTestDSN("x"); got != "file:x?mode=memory&cache=shared" {
		t.Errorf("Unexpected DSN %s", got)
	}
}
