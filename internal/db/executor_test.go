package db_test

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/loxhness/HospitalManagement/internal/db"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	events []db.QueryEvent
}

func (r *recordingObserver) ObserveQuery(_ context.Context, e db.QueryEvent) {
	r.events = append(r.events, e)
}

func newExecTestDB(t *testing.T, observers ...db.QueryObserver) *db.Executor {
	t.Helper()
	database, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.Exec(`CREATE TABLE wards (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, beds INTEGER)`)
	require.NoError(t, err)
	return db.NewExecutor(database, observers...)
}

func TestExecutor_QueryReturnsColumnsInOrder(t *testing.T) {
	exec := newExecTestDB(t)
	ctx := context.Background()

	_, err := exec.Exec(ctx, `INSERT INTO wards (name, beds) VALUES (:name, :beds)`, db.Params{"name": "ICU", "beds": 12})
	require.NoError(t, err)
	_, err = exec.Exec(ctx, `INSERT INTO wards (name, beds) VALUES (:name, :beds)`, db.Params{"name": "Maternity", "beds": nil})
	require.NoError(t, err)

	table, err := exec.Query(ctx, `SELECT name, beds, id FROM wards ORDER BY id`, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "beds", "id"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "ICU", table.Rows[0]["name"])
	assert.EqualValues(t, 12, table.Rows[0]["beds"])
	assert.Nil(t, table.Rows[1]["beds"])
}

func TestExecutor_QueryEmptyTableHasNoRows(t *testing.T) {
	exec := newExecTestDB(t)

	table, err := exec.Query(context.Background(), `SELECT id, name FROM wards`, nil)
	require.NoError(t, err)
	assert.NotNil(t, table.Rows)
	assert.Empty(t, table.Rows)
}

func TestExecutor_ScalarAndNoRows(t *testing.T) {
	exec := newExecTestDB(t)
	ctx := context.Background()

	id, err := exec.Scalar(ctx, `INSERT INTO wards (name) VALUES (:name) RETURNING id`, db.Params{"name": "ER"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, id)

	_, err = exec.Scalar(ctx, `SELECT name FROM wards WHERE id = :id`, db.Params{"id": 42})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestExecutor_ExecReportsAffectedRows(t *testing.T) {
	exec := newExecTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := exec.Exec(ctx, `INSERT INTO wards (name) VALUES (:name)`, db.Params{"name": name})
		require.NoError(t, err)
	}

	n, err := exec.Exec(ctx, `UPDATE wards SET beds = :beds`, db.Params{"beds": 4})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = exec.Exec(ctx, `DELETE FROM wards WHERE id = :id`, db.Params{"id": 999})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExecutor_ParametersAreNotInterpolated(t *testing.T) {
	exec := newExecTestDB(t)
	ctx := context.Background()

	hostile := "x'); DROP TABLE wards; --"
	_, err := exec.Exec(ctx, `INSERT INTO wards (name) VALUES (:name)`, db.Params{"name": hostile})
	require.NoError(t, err)

	v, err := exec.Scalar(ctx, `SELECT name FROM wards WHERE name = :name`, db.Params{"name": hostile})
	require.NoError(t, err)
	assert.Equal(t, hostile, v)
}

func TestExecutor_MissingParameterIsAnError(t *testing.T) {
	exec := newExecTestDB(t)

	_, err := exec.Exec(context.Background(), `INSERT INTO wards (name) VALUES (:name)`, db.Params{"other": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "binding parameters")
}

func TestExecutor_SelectAndGet(t *testing.T) {
	exec := newExecTestDB(t)
	ctx := context.Background()

	_, err := exec.Exec(ctx, `INSERT INTO wards (name, beds) VALUES (:name, :beds)`, db.Params{"name": "Surgery", "beds": 8})
	require.NoError(t, err)

	type ward struct {
		ID   int64         `db:"id"`
		Name string        `db:"name"`
		Beds sql.NullInt64 `db:"beds"`
	}

	var all []ward
	require.NoError(t, exec.Select(ctx, &all, `SELECT id, name, beds FROM wards`, nil))
	require.Len(t, all, 1)
	assert.Equal(t, "Surgery", all[0].Name)

	var one ward
	require.NoError(t, exec.Get(ctx, &one, `SELECT id, name, beds FROM wards WHERE id = :id`, db.Params{"id": all[0].ID}))
	assert.Equal(t, int64(8), one.Beds.Int64)

	err = exec.Get(ctx, &one, `SELECT id, name, beds FROM wards WHERE id = :id`, db.Params{"id": 77})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestExecutor_ObserverSeesEveryStatement(t *testing.T) {
	rec := &recordingObserver{}
	exec := newExecTestDB(t, rec)
	ctx := context.Background()

	_, err := exec.Exec(ctx, `INSERT INTO wards (name) VALUES (:name)`, db.Params{"name": "ER"})
	require.NoError(t, err)
	_, err = exec.Query(ctx, `SELECT * FROM missing_table`, nil)
	require.Error(t, err)

	require.Len(t, rec.events, 2)
	assert.Equal(t, "insert", rec.events[0].Statement)
	assert.EqualValues(t, 1, rec.events[0].Rows)
	assert.NoError(t, rec.events[0].Err)
	assert.Equal(t, "select", rec.events[1].Statement)
	assert.Error(t, rec.events[1].Err)
}

func TestLogQueryObserver_WritesErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	exec := newExecTestDB(t, db.NewLogQueryObserver(logger))

	_, _ = exec.Query(context.Background(), `SELECT * FROM missing_table`, nil)
	_, err := exec.Exec(context.Background(), `INSERT INTO wards (name) VALUES (:name)`, db.Params{"name": "ok"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "db_query")
	assert.Contains(t, out, "statement=select")
	assert.NotContains(t, out, "statement=insert", "successful statements log at debug level")
}

func TestMetricsQueryObserver_RecordsHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	exec := newExecTestDB(t, db.MultiQueryObserver(nil, db.NewMetricsQueryObserver(reg)))

	_, err := exec.Exec(context.Background(), `INSERT INTO wards (name) VALUES (:name)`, db.Params{"name": "ER"})
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, mf := range families {
		if mf.GetName() == "hospital_db_query_duration_seconds" {
			found = true
			require.Len(t, mf.GetMetric(), 1)
			assert.EqualValues(t, 1, mf.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
	assert.True(t, found)
}
