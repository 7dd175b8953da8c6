package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jbweber/homelab/territoire/internal/datastore"
)

// sqlRepository holds what every concrete repository needs to talk to the
// datastore: the dialect-aware handle and the shared statement cache.
type sqlRepository struct {
	ds    *datastore.Datastore
	cache *PreparedStatementCache
}

func newSQLRepository(ds *datastore.Datastore, cache *PreparedStatementCache) sqlRepository {
	return sqlRepository{ds: ds, cache: cache}
}

// query runs a read. Inside a transaction it uses the transaction, otherwise
// a cached prepared statement on the pool.
func (r sqlRepository) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	q = r.ds.Rebind(q)
	if tx, ok := datastore.TxFrom(ctx); ok {
		return tx.QueryContext(ctx, q, args...)
	}
	if r.cache != nil {
		stmt, err := r.cache.Get(ctx, q)
		if err != nil {
			return nil, err
		}
		return stmt.QueryContext(ctx, args...)
	}
	return r.ds.DB.QueryContext(ctx, q, args...)
}

// queryDirect runs a read without statement caching, for SQL whose text
// varies with its arguments.
func (r sqlRepository) queryDirect(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	return r.ds.Conn(ctx).QueryContext(ctx, r.ds.Rebind(q), args...)
}

func (r sqlRepository) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	q = r.ds.Rebind(q)
	if _, ok := datastore.TxFrom(ctx); !ok && r.cache != nil {
		if stmt, err := r.cache.Get(ctx, q); err == nil {
			return stmt.QueryRowContext(ctx, args...)
		}
	}
	return r.ds.Conn(ctx).QueryRowContext(ctx, q, args...)
}

func (r sqlRepository) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return r.ds.Conn(ctx).ExecContext(ctx, r.ds.Rebind(q), args...)
}

// insert runs an INSERT and returns the generated id. Both dialects
// support RETURNING.
func (r sqlRepository) insert(ctx context.Context, q string, args ...any) (int64, error) {
	var id int64
	err := r.ds.Conn(ctx).QueryRowContext(ctx, r.ds.Rebind(q+" RETURNING id"), args...).Scan(&id)
	return id, err
}

// count runs a single-value integer query.
func (r sqlRepository) count(ctx context.Context, q string, args ...any) (int64, error) {
	var n int64
	if err := r.queryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// closeRows closes rows and reports a close failure through err unless an
// earlier error is already being returned.
func closeRows(rows *sql.Rows, err *error) {
	if cerr := rows.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close rows: %w", cerr)
	}
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// likeEscaper escapes LIKE wildcards so user input matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-folded %term% pattern, to be matched
// against casefold(column).
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(datastore.CaseFold(term)) + "%"
}

// prefixPattern builds a case-folded term% pattern.
func prefixPattern(term string) string {
	return likeEscaper.Replace(datastore.CaseFold(term)) + "%"
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func affectedOrNotFound(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
