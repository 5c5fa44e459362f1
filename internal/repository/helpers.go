package repository

import (
	"database/sql"
	"fmt"
	"strconv"
)

// nullableString converts an optional string to a value suitable for storage.
// Returns nil (SQL NULL) for the empty string.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nullableIDToValue converts a *int64 reference to a value suitable for
// storage. Returns nil (SQL NULL) if the pointer is nil.
func nullableIDToValue(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullInt64Ptr converts a sql.NullInt64 into a *int64, nil when NULL.
func nullInt64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

// asInt64 converts a generated key returned by the driver into an int64.
// SQLite reports int64; PostgreSQL may report int32 for narrower columns.
func asInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	default:
		return 0, fmt.Errorf("unexpected generated key type %T", v)
	}
}
