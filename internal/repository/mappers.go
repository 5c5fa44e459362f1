package repository

import (
	"database/sql"
	"fmt"

	"github.com/loxhness/HospitalManagement/internal/db"
	"github.com/loxhness/HospitalManagement/internal/domain"
)

// Column lists alias every column to lowercase snake case so the row structs
// below scan identically on SQLite and PostgreSQL.
const (
	employeeColumns = `Id AS id, FirstName AS first_name, LastName AS last_name,
		Email AS email, Role AS role, Department AS department`

	projectColumns = `Id AS id, ProjectName AS name, Description AS description,
		StartDate AS start_date, EndDate AS end_date`

	taskColumns = `t.Id AS id, t.Title AS title, t.Description AS description,
		t.Priority AS priority, t.Status AS status, t.DueDate AS due_date,
		t.AssignedEmployeeId AS assigned_employee_id`

	taskEmployeeColumns = taskColumns + `,
		e.Id AS employee_id, e.FirstName AS employee_first_name, e.LastName AS employee_last_name,
		e.Email AS employee_email, e.Role AS employee_role, e.Department AS employee_department`
)

type employeeRow struct {
	ID         int64          `db:"id"`
	FirstName  string         `db:"first_name"`
	LastName   string         `db:"last_name"`
	Email      string         `db:"email"`
	Role       string         `db:"role"`
	Department sql.NullString `db:"department"`
}

func (r employeeRow) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:         r.ID,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Email:      r.Email,
		Role:       r.Role,
		Department: r.Department.String,
	}
}

func employeeParams(e *domain.Employee) db.Params {
	return db.Params{
		"Id":         e.ID,
		"FirstName":  e.FirstName,
		"LastName":   e.LastName,
		"Email":      e.Email,
		"Role":       e.Role,
		"Department": nullableString(e.Department),
	}
}

type projectRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	StartDate   string         `db:"start_date"`
	EndDate     string         `db:"end_date"`
}

func (r projectRow) toDomain() (*domain.Project, error) {
	p := &domain.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description.String,
	}
	var err error
	if p.StartDate, err = domain.ParseDate(r.StartDate); err != nil {
		return nil, fmt.Errorf("parsing StartDate of project %d: %w", r.ID, err)
	}
	if p.EndDate, err = domain.ParseDate(r.EndDate); err != nil {
		return nil, fmt.Errorf("parsing EndDate of project %d: %w", r.ID, err)
	}
	return p, nil
}

func projectParams(p *domain.Project) db.Params {
	return db.Params{
		"Id":          p.ID,
		"ProjectName": p.Name,
		"Description": nullableString(p.Description),
		"StartDate":   p.StartDate.String(),
		"EndDate":     p.EndDate.String(),
	}
}

type taskRow struct {
	ID                 int64          `db:"id"`
	Title              string         `db:"title"`
	Description        sql.NullString `db:"description"`
	Priority           string         `db:"priority"`
	Status             string         `db:"status"`
	DueDate            string         `db:"due_date"`
	AssignedEmployeeID sql.NullInt64  `db:"assigned_employee_id"`
}

func (r taskRow) toDomain() (*domain.TaskItem, error) {
	due, err := domain.ParseDate(r.DueDate)
	if err != nil {
		return nil, fmt.Errorf("parsing DueDate of task %d: %w", r.ID, err)
	}
	return &domain.TaskItem{
		ID:                 r.ID,
		Title:              r.Title,
		Description:        r.Description.String,
		Priority:           r.Priority,
		Status:             r.Status,
		DueDate:            due,
		AssignedEmployeeID: nullInt64Ptr(r.AssignedEmployeeID),
	}, nil
}

// taskEmployeeRow is a task joined with its (optional) assigned employee.
type taskEmployeeRow struct {
	taskRow
	EmployeeID         sql.NullInt64  `db:"employee_id"`
	EmployeeFirstName  sql.NullString `db:"employee_first_name"`
	EmployeeLastName   sql.NullString `db:"employee_last_name"`
	EmployeeEmail      sql.NullString `db:"employee_email"`
	EmployeeRole       sql.NullString `db:"employee_role"`
	EmployeeDepartment sql.NullString `db:"employee_department"`
}

func (r taskEmployeeRow) toDomain() (*domain.TaskItem, error) {
	t, err := r.taskRow.toDomain()
	if err != nil {
		return nil, err
	}
	// A NULL employee id means either no assignment or a dangling reference;
	// in both cases the nested employee stays absent.
	if r.EmployeeID.Valid {
		t.AssignedEmployee = &domain.Employee{
			ID:         r.EmployeeID.Int64,
			FirstName:  r.EmployeeFirstName.String,
			LastName:   r.EmployeeLastName.String,
			Email:      r.EmployeeEmail.String,
			Role:       r.EmployeeRole.String,
			Department: r.EmployeeDepartment.String,
		}
	}
	return t, nil
}

func taskParams(t *domain.TaskItem) db.Params {
	return db.Params{
		"Id":                 t.ID,
		"Title":              t.Title,
		"Description":        nullableString(t.Description),
		"Priority":           t.Priority,
		"Status":             t.Status,
		"DueDate":            t.DueDate.String(),
		"AssignedEmployeeId": nullableIDToValue(t.AssignedEmployeeID),
	}
}
