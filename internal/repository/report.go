package repository

import (
	"context"
	"fmt"

	"github.com/loxhness/HospitalManagement/internal/db"
)

// The report statements read the staff/department schema (Staff, Departments
// and a Tasks table keyed by TaskId/AssignedToId). That schema is owned
// outside this application, so the executor handed to SQLReportRepo usually
// points at a different database than the entity repositories.
const (
	staffWorkloadQuery = `SELECT s.StaffId, s.FirstName || ' ' || s.LastName AS StaffName, d.Name AS Department,
		COUNT(t.TaskId) AS TotalTasks,
		SUM(CASE WHEN t.Status = 'Completed' THEN 1 ELSE 0 END) AS CompletedTasks
		FROM Staff s
		LEFT JOIN Departments d ON s.DepartmentId = d.DepartmentId
		LEFT JOIN Tasks t ON t.AssignedToId = s.StaffId
		GROUP BY s.StaffId, s.FirstName, s.LastName, d.Name`

	departmentPerformanceQuery = `SELECT d.DepartmentId, d.Name,
		COUNT(DISTINCT s.StaffId) AS StaffCount,
		COUNT(t.TaskId) AS TotalTasks,
		SUM(CASE WHEN t.Status = 'Completed' THEN 1 ELSE 0 END) AS CompletedTasks
		FROM Departments d
		LEFT JOIN Staff s ON d.DepartmentId = s.DepartmentId
		LEFT JOIN Tasks t ON t.AssignedToId = s.StaffId
		GROUP BY d.DepartmentId, d.Name`
)

// SQLReportRepo implements ReportRepo.
type SQLReportRepo struct {
	exec *db.Executor
}

func NewSQLReportRepo(exec *db.Executor) *SQLReportRepo {
	return &SQLReportRepo{exec: exec}
}

// StaffWorkload returns one row per staff member with their task totals.
func (r *SQLReportRepo) StaffWorkload(ctx context.Context) (*db.Table, error) {
	t, err := r.exec.Query(ctx, staffWorkloadQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("running staff workload report: %w", err)
	}
	return t, nil
}

// DepartmentPerformance returns one row per department with staff and task
// totals.
func (r *SQLReportRepo) DepartmentPerformance(ctx context.Context) (*db.Table, error) {
	t, err := r.exec.Query(ctx, departmentPerformanceQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("running department performance report: %w", err)
	}
	return t, nil
}
