package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/loxhness/HospitalManagement/internal/domain"
)

// EmployeeForm is the create/edit payload for an employee.
type EmployeeForm struct {
	ID         int64  `json:"id" form:"id"`
	FirstName  string `json:"firstName" form:"firstName" validate:"required,max=100"`
	LastName   string `json:"lastName" form:"lastName" validate:"required,max=100"`
	Email      string `json:"email" form:"email" validate:"required,email,max=254"`
	Role       string `json:"role" form:"role" validate:"required,max=100"`
	Department string `json:"department" form:"department" validate:"max=100"`
}

func (f EmployeeForm) normalized() EmployeeForm {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Role = strings.TrimSpace(f.Role)
	f.Department = strings.TrimSpace(f.Department)
	return f
}

func (f EmployeeForm) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:         f.ID,
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		Email:      f.Email,
		Role:       f.Role,
		Department: f.Department,
	}
}

func employeeFormFrom(e *domain.Employee) EmployeeForm {
	return EmployeeForm{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Role:       e.Role,
		Department: e.Department,
	}
}

// ProjectForm is the create/edit payload for a project.
type ProjectForm struct {
	ID          int64       `json:"id" form:"id"`
	Name        string      `json:"name" form:"name" validate:"required,max=200"`
	Description string      `json:"description" form:"description" validate:"max=2000"`
	StartDate   domain.Date `json:"startDate" form:"startDate" validate:"required"`
	EndDate     domain.Date `json:"endDate" form:"endDate" validate:"required"`
}

func (f ProjectForm) normalized() ProjectForm {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)
	return f
}

func (f ProjectForm) toDomain() *domain.Project {
	return &domain.Project{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
	}
}

func projectFormFrom(p *domain.Project) ProjectForm {
	return ProjectForm{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
	}
}

// TaskForm is the create/edit payload for a task. An assignedEmployeeId of
// 0 or an absent one both mean unassigned.
type TaskForm struct {
	ID                 int64       `json:"id" form:"id"`
	Title              string      `json:"title" form:"title" validate:"required,max=200"`
	Description        string      `json:"description" form:"description" validate:"max=2000"`
	Priority           string      `json:"priority" form:"priority" validate:"required,max=50"`
	Status             string      `json:"status" form:"status" validate:"required,max=50"`
	DueDate            domain.Date `json:"dueDate" form:"dueDate" validate:"required"`
	AssignedEmployeeID *int64      `json:"assignedEmployeeId" form:"assignedEmployeeId" validate:"omitempty,gt=0"`
}

func (f TaskForm) normalized() TaskForm {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Priority = strings.TrimSpace(f.Priority)
	f.Status = strings.TrimSpace(f.Status)
	if f.AssignedEmployeeID != nil && *f.AssignedEmployeeID == 0 {
		f.AssignedEmployeeID = nil
	}
	return f
}

func (f TaskForm) toDomain() *domain.TaskItem {
	return &domain.TaskItem{
		ID:                 f.ID,
		Title:              f.Title,
		Description:        f.Description,
		Priority:           f.Priority,
		Status:             f.Status,
		DueDate:            f.DueDate,
		AssignedEmployeeID: f.AssignedEmployeeID,
	}
}

func taskFormFrom(t *domain.TaskItem) TaskForm {
	return TaskForm{
		ID:                 t.ID,
		Title:              t.Title,
		Description:        t.Description,
		Priority:           t.Priority,
		Status:             t.Status,
		DueDate:            t.DueDate,
		AssignedEmployeeID: t.AssignedEmployeeID,
	}
}

// fieldErrors maps a payload field (by its JSON name) to a message.
type fieldErrors map[string]string

// formView is the body of every form endpoint: the record being edited, any
// validation errors, the anti-forgery token and the lookups the form needs.
type formView[T any] struct {
	Record    T            `json:"record"`
	Errors    fieldErrors  `json:"errors,omitempty"`
	CSRFToken string       `json:"csrfToken"`
	Lookups   *taskLookups `json:"lookups,omitempty"`
}

type taskLookups struct {
	Employees  []employeeOption `json:"employees"`
	Priorities []string         `json:"priorities"`
	Statuses   []string         `json:"statuses"`
}

// employeeOption is one entry of the assignee picker.
type employeeOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func employeeOptions(employees []*domain.Employee) []employeeOption {
	out := make([]employeeOption, 0, len(employees))
	for _, e := range employees {
		out = append(out, employeeOption{ID: e.ID, Name: e.FullName()})
	}
	return out
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// A zero date counts as missing for "required".
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(domain.Date); ok && !d.IsZero() {
			return d.Time
		}
		return nil
	}, domain.Date{})
	return v
}

// bindForm decodes the body (JSON or form-encoded, chosen by Content-Type)
// into dst and validates a trimmed copy of it. dst keeps the input exactly as
// submitted so it can be redisplayed; the trimmed copy is what gets stored.
func bindForm[T any, P interface {
	*T
	normalized() T
}](h *Handler, c *gin.Context, dst P) (T, fieldErrors) {
	if err := shouldBind(c, dst); err != nil {
		return *dst, fieldErrors{"form": err.Error()}
	}
	clean := dst.normalized()
	if err := h.validate.Struct(clean); err != nil {
		return clean, toFieldErrors(err)
	}
	return clean, nil
}

// bodyID decodes only the id of the submitted record, independent of any
// other field. ok is false when the body cannot be decoded at all.
func bodyID(c *gin.Context) (id int64, ok bool) {
	var f struct {
		ID int64 `json:"id" form:"id"`
	}
	if err := shouldBind(c, &f); err != nil {
		return 0, false
	}
	return f.ID, true
}

// shouldBind is c.ShouldBind, except that JSON bodies are cached on the
// context so they can be decoded more than once.
func shouldBind(c *gin.Context, dst any) error {
	b := binding.Default(c.Request.Method, c.ContentType())
	if bb, ok := b.(binding.BindingBody); ok {
		return c.ShouldBindBodyWith(dst, bb)
	}
	return c.ShouldBindWith(dst, b)
}

func toFieldErrors(err error) fieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fieldErrors{"form": err.Error()}
	}
	out := make(fieldErrors, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return "is invalid"
	}
}
