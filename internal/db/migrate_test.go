package db

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := Open(context.Background(), DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, Migrate(context.Background(), database))
	return database
}

func TestMigrate_Idempotent(t *testing.T) {
	database := openTestDB(t)

	// Second run over existing tables.
	require.NoError(t, Migrate(context.Background(), database))

	require.NoError(t, Migrate(context.Background(), database))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	database := openTestDB(t)

	for _, table := range []string{"Employees", "Projects", "Tasks"} {
		var name string
		err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_DoesNotCreateReportSchema(t *testing.T) {
	database := openTestDB(t)

	for _, table := range []string{"Staff", "Departments"} {
		var n int
		err := database.QueryRow(`SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&n)
		require.NoError(t, err)
		assert.Zero(t, n, "table %s belongs to the report schema", table)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	database := openTestDB(t)

	var name string
	err := database.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`,
		"idx_tasks_assigned_employee").Scan(&name)
	require.NoError(t, err)
}

func TestMigrate_UnknownDriver(t *testing.T) {
	_, err := migrationsFor("mysql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}

func TestForeignKeys_Enforced(t *testing.T) {
	database := openTestDB(t)

	_, err := database.Exec(`INSERT INTO Tasks (Title, Priority, Status, DueDate, AssignedEmployeeId)
		VALUES ('Orphan', 'Low', 'Pending', '2024-01-01', 999)`)
	assert.Error(t, err, "dangling employee reference should be rejected by the store")
}

func TestForeignKeys_DeleteEmployeeClearsAssignment(t *testing.T) {
	database := openTestDB(t)

	res, err := database.Exec(`INSERT INTO Employees (FirstName, LastName, Email, Role) VALUES ('Ada', 'Lovelace', 'ada@x.com', 'Nurse')`)
	require.NoError(t, err)
	empID, err := res.LastInsertId()
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO Tasks (Title, Priority, Status, DueDate, AssignedEmployeeId)
		VALUES ('Triage', 'High', 'Pending', '2024-01-01', ?)`, empID)
	require.NoError(t, err)

	_, err = database.Exec(`DELETE FROM Employees WHERE Id = ?`, empID)
	require.NoError(t, err)

	var assigned *int64
	require.NoError(t, database.QueryRow(`SELECT AssignedEmployeeId FROM Tasks`).Scan(&assigned))
	assert.Nil(t, assigned)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "whatever")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestIsMemoryDSN(t *testing.T) {
	assert.True(t, isMemoryDSN(":memory:"))
	assert.True(t, isMemoryDSN("file:test?mode=memory&cache=shared"))
	assert.False(t, isMemoryDSN("data/hospital.db"))
}
