package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Params maps named placeholders (":Name" in the statement) to their values.
type Params map[string]any

// Row is one result row keyed by column name.
type Row map[string]any

// Table is a generic row set that keeps the column order of the statement.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Executor runs single parameterized statements against a DBTX. Every call
// borrows a connection from the driver pool for the duration of the statement
// only. Errors from the driver are returned as-is; nothing is retried.
type Executor struct {
	db       DBTX
	observer QueryObserver
}

// NewExecutor creates an Executor. The first non-nil observer receives an
// event for every statement; use MultiQueryObserver to fan out.
func NewExecutor(conn DBTX, observers ...QueryObserver) *Executor {
	return &Executor{db: conn, observer: queryObserverOrNoop(observers)}
}

// Query runs a statement and returns every row as a column→value map.
func (e *Executor) Query(ctx context.Context, query string, params Params) (*Table, error) {
	start := time.Now()
	table, err := e.query(ctx, query, params)
	var n int64
	if table != nil {
		n = int64(len(table.Rows))
	}
	e.observe(ctx, query, start, n, err)
	return table, err
}

func (e *Executor) query(ctx context.Context, query string, params Params) (*Table, error) {
	bound, args, err := e.bind(query, params)
	if err != nil {
		return nil, err
	}
	rows, err := e.db.QueryxContext(ctx, bound, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	table := &Table{Columns: cols, Rows: []Row{}}
	for rows.Next() {
		row := make(map[string]any, len(cols))
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		table.Rows = append(table.Rows, Row(row))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// Scalar runs a statement and returns the first column of the first row.
// It returns sql.ErrNoRows when the statement yields no row.
func (e *Executor) Scalar(ctx context.Context, query string, params Params) (any, error) {
	start := time.Now()
	var v any
	bound, args, err := e.bind(query, params)
	if err == nil {
		err = e.db.QueryRowxContext(ctx, bound, args...).Scan(&v)
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	e.observe(ctx, query, start, 1, err)
	return v, err
}

// Exec runs a statement and returns the number of affected rows.
func (e *Executor) Exec(ctx context.Context, query string, params Params) (int64, error) {
	start := time.Now()
	n, err := e.exec(ctx, query, params)
	e.observe(ctx, query, start, n, err)
	return n, err
}

func (e *Executor) exec(ctx context.Context, query string, params Params) (int64, error) {
	bound, args, err := e.bind(query, params)
	if err != nil {
		return 0, err
	}
	res, err := e.db.ExecContext(ctx, bound, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Select scans all rows into dest, a pointer to a slice of structs tagged
// with `db:"column"`.
func (e *Executor) Select(ctx context.Context, dest any, query string, params Params) error {
	start := time.Now()
	bound, args, err := e.bind(query, params)
	if err == nil {
		err = sqlx.SelectContext(ctx, e.db, dest, bound, args...)
	}
	e.observe(ctx, query, start, -1, err)
	return err
}

// Get scans exactly one row into dest. It returns sql.ErrNoRows when the
// statement yields no row.
func (e *Executor) Get(ctx context.Context, dest any, query string, params Params) error {
	start := time.Now()
	bound, args, err := e.bind(query, params)
	if err == nil {
		err = sqlx.GetContext(ctx, e.db, dest, bound, args...)
	}
	e.observe(ctx, query, start, 1, err)
	return err
}

// bind rewrites ":Name" placeholders into the driver's bindvar style.
func (e *Executor) bind(query string, params Params) (string, []any, error) {
	if len(params) == 0 {
		return e.db.Rebind(query), nil, nil
	}
	bound, args, err := e.db.BindNamed(query, map[string]any(params))
	if err != nil {
		return "", nil, fmt.Errorf("binding parameters: %w", err)
	}
	return bound, args, nil
}

func (e *Executor) observe(ctx context.Context, query string, start time.Time, rows int64, err error) {
	e.observer.ObserveQuery(ctx, QueryEvent{
		Statement: statementKind(query),
		Duration:  time.Since(start),
		Rows:      rows,
		Err:       err,
		StartedAt: start,
	})
}

// statementKind returns the leading SQL keyword, lowercased, for use as a
// low-cardinality label.
func statementKind(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
