package datastore

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// CaseFold is the case folding applied to names before they are compared.
// SQL queries use the casefold() function, which applies the same folding
// on both dialects; SQLite's own LOWER only folds ASCII letters.
func CaseFold(s string) string {
	return strings.ToLower(s)
}

func init() {
	sqlite.MustRegisterDeterministicScalarFunction("casefold", 1, casefoldSQLite)
}

func casefoldSQLite(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return CaseFold(v), nil
	case []byte:
		return CaseFold(string(v)), nil
	}
	return args[0], nil
}
