package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the Employees, Projects and Tasks tables for the driver the
// database was opened with. Every statement is idempotent, so Migrate can run
// on every start. All statements share one transaction.
//
// The report schema (Staff, Departments) is owned elsewhere and is never
// created here.
func Migrate(ctx context.Context, database *sqlx.DB) error {
	stmts, err := migrationsFor(database.DriverName())
	if err != nil {
		return err
	}
	return NewSQLUnitOfWork(database).WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		for i, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d: %w", i, err)
			}
		}
		return nil
	})
}

func migrationsFor(driver string) ([]string, error) {
	switch driver {
	case DriverSQLite:
		return sqliteMigrations, nil
	case DriverPostgres:
		return postgresMigrations, nil
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}
}

// AUTOINCREMENT keeps identifiers append-only: a deleted id is never reissued.
var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS Employees (
		Id         INTEGER PRIMARY KEY AUTOINCREMENT,
		FirstName  TEXT NOT NULL,
		LastName   TEXT NOT NULL,
		Email      TEXT NOT NULL,
		Role       TEXT NOT NULL,
		Department TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS Projects (
		Id          INTEGER PRIMARY KEY AUTOINCREMENT,
		ProjectName TEXT NOT NULL,
		Description TEXT,
		StartDate   TEXT NOT NULL,
		EndDate     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS Tasks (
		Id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		Title              TEXT NOT NULL,
		Description        TEXT,
		Priority           TEXT NOT NULL,
		Status             TEXT NOT NULL,
		DueDate            TEXT NOT NULL,
		AssignedEmployeeId INTEGER REFERENCES Employees(Id) ON DELETE SET NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_assigned_employee ON Tasks(AssignedEmployeeId)`,
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS Employees (
		Id         BIGSERIAL PRIMARY KEY,
		FirstName  TEXT NOT NULL,
		LastName   TEXT NOT NULL,
		Email      TEXT NOT NULL,
		Role       TEXT NOT NULL,
		Department TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS Projects (
		Id          BIGSERIAL PRIMARY KEY,
		ProjectName TEXT NOT NULL,
		Description TEXT,
		StartDate   TEXT NOT NULL,
		EndDate     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS Tasks (
		Id                 BIGSERIAL PRIMARY KEY,
		Title              TEXT NOT NULL,
		Description        TEXT,
		Priority           TEXT NOT NULL,
		Status             TEXT NOT NULL,
		DueDate            TEXT NOT NULL,
		AssignedEmployeeId BIGINT REFERENCES Employees(Id) ON DELETE SET NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_assigned_employee ON Tasks(AssignedEmployeeId)`,
}
