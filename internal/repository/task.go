package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/loxhness/HospitalManagement/internal/db"
	"github.com/loxhness/HospitalManagement/internal/domain"
)

type taskQuery struct {
	withEmployee bool
}

// TaskQueryOption adjusts how tasks are loaded.
type TaskQueryOption func(*taskQuery)

// WithEmployee loads each task's assigned employee through a left join.
// Tasks without an assignment, or whose employee no longer exists, come back
// with AssignedEmployee nil.
func WithEmployee() TaskQueryOption {
	return func(q *taskQuery) {
		q.withEmployee = true
	}
}

func buildTaskQuery(opts []TaskQueryOption) taskQuery {
	var q taskQuery
	for _, opt := range opts {
		opt(&q)
	}
	return q
}

const (
	taskSelect         = `SELECT ` + taskColumns + ` FROM Tasks t`
	taskEmployeeSelect = `SELECT ` + taskEmployeeColumns + `
		FROM Tasks t LEFT JOIN Employees e ON t.AssignedEmployeeId = e.Id`
)

// SQLTaskRepo implements TaskRepo on top of a db.Executor.
type SQLTaskRepo struct {
	exec *db.Executor
}

func NewSQLTaskRepo(exec *db.Executor) *SQLTaskRepo {
	return &SQLTaskRepo{exec: exec}
}

func (r *SQLTaskRepo) List(ctx context.Context, opts ...TaskQueryOption) ([]*domain.TaskItem, error) {
	q := buildTaskQuery(opts)
	if q.withEmployee {
		var rows []taskEmployeeRow
		if err := r.exec.Select(ctx, &rows, taskEmployeeSelect+` ORDER BY t.Id`, nil); err != nil {
			return nil, fmt.Errorf("listing tasks with employees: %w", err)
		}
		return mapTasks(rows)
	}

	var rows []taskRow
	if err := r.exec.Select(ctx, &rows, taskSelect+` ORDER BY t.Id`, nil); err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return mapTasks(rows)
}

func (r *SQLTaskRepo) Find(ctx context.Context, id int64, opts ...TaskQueryOption) (*domain.TaskItem, error) {
	q := buildTaskQuery(opts)
	params := db.Params{"Id": id}

	var (
		task *domain.TaskItem
		err  error
	)
	if q.withEmployee {
		var row taskEmployeeRow
		if err = r.exec.Get(ctx, &row, taskEmployeeSelect+` WHERE t.Id = :Id`, params); err == nil {
			task, err = row.toDomain()
		}
	} else {
		var row taskRow
		if err = r.exec.Get(ctx, &row, taskSelect+` WHERE t.Id = :Id`, params); err == nil {
			task, err = row.toDomain()
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return task, nil
}

// Add inserts t and sets t.ID to the generated identifier. The assigned
// employee, when set, must exist.
func (r *SQLTaskRepo) Add(ctx context.Context, t *domain.TaskItem) error {
	if t.ID != 0 {
		return fmt.Errorf("adding task %d: %w", t.ID, ErrIDAssigned)
	}
	v, err := r.exec.Scalar(ctx,
		`INSERT INTO Tasks (Title, Description, Priority, Status, DueDate, AssignedEmployeeId)
		 VALUES (:Title, :Description, :Priority, :Status, :DueDate, :AssignedEmployeeId)
		 RETURNING Id`, taskParams(t))
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	id, err := asInt64(v)
	if err != nil {
		return fmt.Errorf("reading task id: %w", err)
	}
	t.ID = id
	return nil
}

func (r *SQLTaskRepo) Update(ctx context.Context, t *domain.TaskItem) (int64, error) {
	n, err := r.exec.Exec(ctx,
		`UPDATE Tasks SET Title = :Title, Description = :Description, Priority = :Priority,
		 Status = :Status, DueDate = :DueDate, AssignedEmployeeId = :AssignedEmployeeId
		 WHERE Id = :Id`, taskParams(t))
	if err != nil {
		return 0, fmt.Errorf("updating task %d: %w", t.ID, err)
	}
	return n, nil
}

func (r *SQLTaskRepo) Remove(ctx context.Context, id int64) error {
	if _, err := r.exec.Exec(ctx, `DELETE FROM Tasks WHERE Id = :Id`, db.Params{"Id": id}); err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}

type taskMapper interface {
	toDomain() (*domain.TaskItem, error)
}

func mapTasks[R taskMapper](rows []R) ([]*domain.TaskItem, error) {
	out := make([]*domain.TaskItem, 0, len(rows))
	for _, row := range rows {
		t, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
