package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/loxhness/HospitalManagement/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	if err := db.Migrate(context.Background(), database); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return database
}

// NewTestExecutor creates an Executor backed by a fresh migrated test database.
func NewTestExecutor(t *testing.T) *db.Executor {
	t.Helper()
	return db.NewExecutor(NewTestDB(t))
}

// reportSchema mirrors the externally owned staff/department schema the
// reports read from. Migrate never creates it.
var reportSchema = []string{
	`CREATE TABLE Departments (
		DepartmentId INTEGER PRIMARY KEY,
		Name         TEXT NOT NULL
	)`,
	`CREATE TABLE Staff (
		StaffId      INTEGER PRIMARY KEY,
		FirstName    TEXT NOT NULL,
		LastName     TEXT NOT NULL,
		DepartmentId INTEGER REFERENCES Departments(DepartmentId)
	)`,
	`CREATE TABLE Tasks (
		TaskId       INTEGER PRIMARY KEY,
		AssignedToId INTEGER REFERENCES Staff(StaffId),
		Status       TEXT NOT NULL
	)`,
}

// NewReportTestDB creates an unmigrated in-memory SQLite database holding the
// staff/department report schema and no rows.
func NewReportTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("failed to create report database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	for _, stmt := range reportSchema {
		if _, err := database.Exec(stmt); err != nil {
			t.Fatalf("failed to create report schema: %v", err)
		}
	}
	return database
}

// SeedDepartment inserts a row into the report Departments table.
func SeedDepartment(t *testing.T, database *sqlx.DB, id int64, name string) {
	t.Helper()
	mustExec(t, database, `INSERT INTO Departments (DepartmentId, Name) VALUES (?, ?)`, id, name)
}

// SeedStaff inserts a row into the report Staff table. A nil departmentID
// leaves the staff member without a department.
func SeedStaff(t *testing.T, database *sqlx.DB, id int64, first, last string, departmentID *int64) {
	t.Helper()
	var dept any
	if departmentID != nil {
		dept = *departmentID
	}
	mustExec(t, database, `INSERT INTO Staff (StaffId, FirstName, LastName, DepartmentId) VALUES (?, ?, ?, ?)`,
		id, first, last, dept)
}

// SeedReportTask inserts a row into the report Tasks table.
func SeedReportTask(t *testing.T, database *sqlx.DB, id, assignedTo int64, status string) {
	t.Helper()
	mustExec(t, database, `INSERT INTO Tasks (TaskId, AssignedToId, Status) VALUES (?, ?, ?)`,
		id, assignedTo, status)
}

func mustExec(t *testing.T, database *sqlx.DB, query string, args ...any) {
	t.Helper()
	if _, err := database.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}
