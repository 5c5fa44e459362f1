package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/loxhness/HospitalManagement/internal/domain"
)

var testEmailCounter atomic.Int64

// Employee options
type EmployeeOption func(*domain.Employee)

func WithEmail(email string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Email = email
	}
}

func WithRole(role string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Role = role
	}
}

func WithDepartment(dept string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Department = dept
	}
}

func defaultEmail(first, last string) string {
	n := testEmailCounter.Add(1)
	return fmt.Sprintf("%s.%s.%d@hospital.test", strings.ToLower(first), strings.ToLower(last), n)
}

// NewTestEmployee returns an unsaved employee (ID 0).
func NewTestEmployee(first, last string, opts ...EmployeeOption) *domain.Employee {
	e := &domain.Employee{
		FirstName: first,
		LastName:  last,
		Email:     defaultEmail(first, last),
		Role:      "Nurse",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Project options
type ProjectOption func(*domain.Project)

func WithDescription(d string) ProjectOption {
	return func(p *domain.Project) {
		p.Description = d
	}
}

func WithDates(start, end domain.Date) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = end
	}
}

// NewTestProject returns an unsaved project running for one month from
// 2024-01-01.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		Name:      name,
		StartDate: domain.NewDate(2024, time.January, 1),
		EndDate:   domain.NewDate(2024, time.February, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options
type TaskOption func(*domain.TaskItem)

func WithPriority(p string) TaskOption {
	return func(t *domain.TaskItem) {
		t.Priority = p
	}
}

func WithStatus(s string) TaskOption {
	return func(t *domain.TaskItem) {
		t.Status = s
	}
}

func WithDueDate(d domain.Date) TaskOption {
	return func(t *domain.TaskItem) {
		t.DueDate = d
	}
}

func WithTaskDescription(d string) TaskOption {
	return func(t *domain.TaskItem) {
		t.Description = d
	}
}

func WithAssignee(employeeID int64) TaskOption {
	return func(t *domain.TaskItem) {
		t.AssignedEmployeeID = &employeeID
	}
}

// NewTestTask returns an unsaved, unassigned pending task.
func NewTestTask(title string, opts ...TaskOption) *domain.TaskItem {
	t := &domain.TaskItem{
		Title:    title,
		Priority: domain.PriorityMedium,
		Status:   domain.StatusPending,
		DueDate:  domain.NewDate(2024, time.March, 15),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
