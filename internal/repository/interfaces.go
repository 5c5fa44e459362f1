package repository

import (
	"context"

	"github.com/loxhness/HospitalManagement/internal/db"
	"github.com/loxhness/HospitalManagement/internal/domain"
)

// EmployeeRepo gives typed access to the Employees table.
type EmployeeRepo interface {
	List(ctx context.Context) ([]*domain.Employee, error)
	Find(ctx context.Context, id int64) (*domain.Employee, error)
	Add(ctx context.Context, e *domain.Employee) error
	Update(ctx context.Context, e *domain.Employee) (int64, error)
	Remove(ctx context.Context, id int64) error
}

// ProjectRepo gives typed access to the Projects table.
type ProjectRepo interface {
	List(ctx context.Context) ([]*domain.Project, error)
	Find(ctx context.Context, id int64) (*domain.Project, error)
	Add(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, p *domain.Project) (int64, error)
	Remove(ctx context.Context, id int64) error
}

// TaskRepo gives typed access to the Tasks table. List and Find accept
// WithEmployee to load the assigned employee in the same statement.
type TaskRepo interface {
	List(ctx context.Context, opts ...TaskQueryOption) ([]*domain.TaskItem, error)
	Find(ctx context.Context, id int64, opts ...TaskQueryOption) (*domain.TaskItem, error)
	Add(ctx context.Context, t *domain.TaskItem) error
	Update(ctx context.Context, t *domain.TaskItem) (int64, error)
	Remove(ctx context.Context, id int64) error
}

// ReportRepo runs the fixed aggregate reports.
type ReportRepo interface {
	StaffWorkload(ctx context.Context) (*db.Table, error)
	DepartmentPerformance(ctx context.Context) (*db.Table, error)
}
