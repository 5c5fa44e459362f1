package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/loxhness/HospitalManagement/internal/db"
	"github.com/loxhness/HospitalManagement/internal/domain"
)

// SQLEmployeeRepo implements EmployeeRepo on top of a db.Executor.
type SQLEmployeeRepo struct {
	exec *db.Executor
}

func NewSQLEmployeeRepo(exec *db.Executor) *SQLEmployeeRepo {
	return &SQLEmployeeRepo{exec: exec}
}

func (r *SQLEmployeeRepo) List(ctx context.Context) ([]*domain.Employee, error) {
	var rows []employeeRow
	if err := r.exec.Select(ctx, &rows,
		`SELECT `+employeeColumns+` FROM Employees ORDER BY Id`, nil); err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	out := make([]*domain.Employee, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SQLEmployeeRepo) Find(ctx context.Context, id int64) (*domain.Employee, error) {
	var row employeeRow
	err := r.exec.Get(ctx, &row,
		`SELECT `+employeeColumns+` FROM Employees WHERE Id = :Id`, db.Params{"Id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("employee %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting employee %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// Add inserts e and sets e.ID to the generated identifier.
func (r *SQLEmployeeRepo) Add(ctx context.Context, e *domain.Employee) error {
	if e.ID != 0 {
		return fmt.Errorf("adding employee %d: %w", e.ID, ErrIDAssigned)
	}
	v, err := r.exec.Scalar(ctx,
		`INSERT INTO Employees (FirstName, LastName, Email, Role, Department)
		 VALUES (:FirstName, :LastName, :Email, :Role, :Department)
		 RETURNING Id`, employeeParams(e))
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}
	id, err := asInt64(v)
	if err != nil {
		return fmt.Errorf("reading employee id: %w", err)
	}
	e.ID = id
	return nil
}

// Update overwrites every field of the row with e.ID and returns the number of
// rows affected, 0 when no such employee exists.
func (r *SQLEmployeeRepo) Update(ctx context.Context, e *domain.Employee) (int64, error) {
	n, err := r.exec.Exec(ctx,
		`UPDATE Employees SET FirstName = :FirstName, LastName = :LastName, Email = :Email,
		 Role = :Role, Department = :Department
		 WHERE Id = :Id`, employeeParams(e))
	if err != nil {
		return 0, fmt.Errorf("updating employee %d: %w", e.ID, err)
	}
	return n, nil
}

// Remove deletes the employee. Removing a missing id is not an error. Tasks
// assigned to the employee keep existing with their assignment cleared.
func (r *SQLEmployeeRepo) Remove(ctx context.Context, id int64) error {
	if _, err := r.exec.Exec(ctx, `DELETE FROM Employees WHERE Id = :Id`, db.Params{"Id": id}); err != nil {
		return fmt.Errorf("deleting employee %d: %w", id, err)
	}
	return nil
}
