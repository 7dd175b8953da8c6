package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDSN returns a unique in-memory SQLite DSN for each test.
// This ensures tests do not share state and remain independent.
func testDSN(testID string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", testID)
}

func openTest(t *testing.T, name string) *Datastore {
	t.Helper()
	ds, err := Open(SQLite, testDSN(name))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })

	_, err = ds.DB.Exec(`CREATE TABLE parent (id INTEGER PRIMARY KEY, code TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	_, err = ds.DB.Exec(`CREATE TABLE child (id INTEGER PRIMARY KEY, parent_id INTEGER NOT NULL REFERENCES parent(id), n INTEGER CHECK (n > 0))`)
	require.NoError(t, err)
	return ds
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("")
	require.NoError(t, err)
	assert.Equal(t, SQLite, d)

	d, err = ParseDialect("PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	pg := &Datastore{Dialect: Postgres}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b > $2", pg.Rebind("SELECT * FROM t WHERE a = ? AND b > ?"))

	lite := &Datastore{Dialect: SQLite}
	assert.Equal(t, "SELECT ? , ?", lite.Rebind("SELECT ? , ?"))
}

func TestWithSQLitePragmas(t *testing.T) {
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)", withSQLitePragmas("file:x?mode=memory"))
	assert.Equal(t, "test.db?_pragma=foreign_keys(1)", withSQLitePragmas("test.db"))
	assert.Equal(t, "test.db?_pragma=foreign_keys(0)", withSQLitePragmas("test.db?_pragma=foreign_keys(0)"))
}

func TestInTx_CommitsOnSuccess(t *testing.T) {
	ds := openTest(t, "TestInTx_CommitsOnSuccess")
	ctx := context.Background()

	err := ds.InTx(ctx, func(ctx context.Context) error {
		_, ok := TxFrom(ctx)
		assert.True(t, ok)
		_, err := ds.Conn(ctx).ExecContext(ctx, "INSERT INTO parent (code) VALUES (?)", "34")
		return err
	})
	require.NoError(t, err)

	var count int
	require.NoError(t, ds.DB.QueryRow("SELECT COUNT(*) FROM parent").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInTx_RollsBackOnError(t *testing.T) {
	ds := openTest(t, "TestInTx_RollsBackOnError")
	ctx := context.Background()
	boom := errors.New("boom")

	err := ds.InTx(ctx, func(ctx context.Context) error {
		if _, err := ds.Conn(ctx).ExecContext(ctx, "INSERT INTO parent (code) VALUES (?)", "34"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, ds.DB.QueryRow("SELECT COUNT(*) FROM parent").Scan(&count))
	assert.Zero(t, count)
}

func TestInTx_ReusesOuterTransaction(t *testing.T) {
	ds := openTest(t, "TestInTx_ReusesOuterTransaction")
	ctx := context.Background()

	err := ds.InTx(ctx, func(outer context.Context) error {
		outerTx, _ := TxFrom(outer)
		return ds.InTx(outer, func(inner context.Context) error {
			innerTx, _ := TxFrom(inner)
			assert.Same(t, outerTx, innerTx)
			return nil
		})
	})
	require.NoError(t, err)
}

func TestConstraintDetection_SQLite(t *testing.T) {
	ds := openTest(t, "TestConstraintDetection_SQLite")

	_, err := ds.DB.Exec("INSERT INTO parent (id, code) VALUES (1, '34')")
	require.NoError(t, err)

	_, err = ds.DB.Exec("INSERT INTO parent (code) VALUES ('34')")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))

	_, err = ds.DB.Exec("INSERT INTO child (parent_id, n) VALUES (42, 1)")
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))

	_, err = ds.DB.Exec("INSERT INTO child (parent_id, n) VALUES (1, 0)")
	require.Error(t, err)
	assert.True(t, IsCheckViolation(err))
}

func TestConstraintDetection_Postgres(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.True(t, IsCheckViolation(&pq.Error{Code: "23514"}))
	assert.False(t, IsUniqueViolation(errors.New("other")))
}

func TestCaseFold_SQLiteFunction(t *testing.T) {
	ds := openTest(t, "TestCaseFold_SQLiteFunction")

	var lower, folded string
	require.NoError(t, ds.DB.QueryRow("SELECT LOWER('ÉVREUX'), casefold('ÉVREUX')").Scan(&lower, &folded))
	assert.Equal(t, "Évreux", lower)
	assert.Equal(t, "évreux", folded)
	assert.Equal(t, "île-de-france", CaseFold("ÎLE-DE-FRANCE"))

	var null sql.NullString
	require.NoError(t, ds.DB.QueryRow("SELECT casefold(NULL)").Scan(&null))
	assert.False(t, null.Valid)

	_, err := ds.DB.Exec(`CREATE UNIQUE INDEX ux_parent_code_casefold ON parent (casefold(code))`)
	require.NoError(t, err)
	_, err = ds.DB.Exec("INSERT INTO parent (code) VALUES ('Sète')")
	require.NoError(t, err)
	_, err = ds.DB.Exec("INSERT INTO parent (code) VALUES ('SÈTE')")
	assert.True(t, IsUniqueViolation(err))
}

func TestOpen_UnreachablePostgres(t *testing.T) {
	_, err := Open(Postgres, "postgres://territoire@127.0.0.1:1/territoire?sslmode=disable&connect_timeout=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to reach postgres database")
}

func TestInTx_CommitFailureAfterExternalCommit(t *testing.T) {
	ds := openTest(t, "TestInTx_CommitFailureAfterExternalCommit")
	ctx := context.Background()

	err := ds.InTx(ctx, func(ctx context.Context) error {
		tx, _ := TxFrom(ctx)
		return tx.Commit()
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrTxDone)
	assert.Contains(t, err.Error(), "failed to commit transaction")
}
