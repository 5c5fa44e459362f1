package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/loxhness/HospitalManagement/internal/db"
	"github.com/loxhness/HospitalManagement/internal/domain"
)

// SQLProjectRepo implements ProjectRepo on top of a db.Executor.
type SQLProjectRepo struct {
	exec *db.Executor
}

func NewSQLProjectRepo(exec *db.Executor) *SQLProjectRepo {
	return &SQLProjectRepo{exec: exec}
}

func (r *SQLProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	var rows []projectRow
	if err := r.exec.Select(ctx, &rows,
		`SELECT `+projectColumns+` FROM Projects ORDER BY Id`, nil); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	out := make([]*domain.Project, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *SQLProjectRepo) Find(ctx context.Context, id int64) (*domain.Project, error) {
	var row projectRow
	err := r.exec.Get(ctx, &row,
		`SELECT `+projectColumns+` FROM Projects WHERE Id = :Id`, db.Params{"Id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %d: %w", id, err)
	}
	return row.toDomain()
}

// Add inserts p and sets p.ID to the generated identifier.
func (r *SQLProjectRepo) Add(ctx context.Context, p *domain.Project) error {
	if p.ID != 0 {
		return fmt.Errorf("adding project %d: %w", p.ID, ErrIDAssigned)
	}
	v, err := r.exec.Scalar(ctx,
		`INSERT INTO Projects (ProjectName, Description, StartDate, EndDate)
		 VALUES (:ProjectName, :Description, :StartDate, :EndDate)
		 RETURNING Id`, projectParams(p))
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	id, err := asInt64(v)
	if err != nil {
		return fmt.Errorf("reading project id: %w", err)
	}
	p.ID = id
	return nil
}

func (r *SQLProjectRepo) Update(ctx context.Context, p *domain.Project) (int64, error) {
	n, err := r.exec.Exec(ctx,
		`UPDATE Projects SET ProjectName = :ProjectName, Description = :Description,
		 StartDate = :StartDate, EndDate = :EndDate
		 WHERE Id = :Id`, projectParams(p))
	if err != nil {
		return 0, fmt.Errorf("updating project %d: %w", p.ID, err)
	}
	return n, nil
}

func (r *SQLProjectRepo) Remove(ctx context.Context, id int64) error {
	if _, err := r.exec.Exec(ctx, `DELETE FROM Projects WHERE Id = :Id`, db.Params{"Id": id}); err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	return nil
}
