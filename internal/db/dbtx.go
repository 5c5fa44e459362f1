package db

import (
	"github.com/jmoiron/sqlx"
)

// DBTX is the common interface satisfied by both *sqlx.DB and *sqlx.Tx.
// The executor depends on this interface instead of the concrete *sqlx.DB,
// so the same statements run inside or outside a transaction.
type DBTX interface {
	sqlx.ExtContext
}

// Compile-time verification that *sqlx.DB and *sqlx.Tx satisfy DBTX.
var (
	_ DBTX = (*sqlx.DB)(nil)
	_ DBTX = (*sqlx.Tx)(nil)
)
