package database

import (
	"database/sql/driver"
	"strings"

	"modernc.org/sqlite"
)

// SQLite's built-in lower() folds ASCII only.  Replacing it makes
// LOWER(name) fold the same way as strings.ToLower, and as MySQL's
// LOWER on utf8mb4 columns, so name searches agree across drivers.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("lower", 1, unicodeLower)
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		// NULL and numbers pass through like the built-in.
		return v, nil
	}
}
