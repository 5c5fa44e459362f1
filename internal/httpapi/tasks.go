package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loxhness/HospitalManagement/internal/domain"
	"github.com/loxhness/HospitalManagement/internal/repository"
)

func (h *Handler) registerTasks(g *gin.RouterGroup) {
	g.GET("", h.listTasks)
	g.GET("/new", h.newTask)
	g.POST("", h.createTask)
	g.GET("/:id", h.showTask)
	g.GET("/:id/edit", h.editTask)
	g.POST("/:id/edit", h.updateTask)
	g.GET("/:id/delete", h.confirmDeleteTask)
	g.POST("/:id/delete", h.deleteTask)
}

func (h *Handler) listTasks(c *gin.Context) {
	tasks, err := h.repos.Tasks.List(c.Request.Context(), repository.WithEmployee())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) showTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	t, err := h.repos.Tasks.Find(c.Request.Context(), id, repository.WithEmployee())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) newTask(c *gin.Context) {
	lookups, err := h.taskLookups(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formView[TaskForm]{
		Record:    TaskForm{Priority: domain.PriorityMedium, Status: domain.StatusPending},
		CSRFToken: h.issueCSRFToken(c),
		Lookups:   lookups,
	})
}

func (h *Handler) createTask(c *gin.Context) {
	var form TaskForm
	clean, errs := bindForm(h, c, &form)
	if errs == nil {
		var err error
		if errs, err = h.checkAssignee(c, clean); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if errs != nil {
		h.taskFormInvalid(c, form, errs)
		return
	}
	t := clean.toDomain()
	t.ID = 0
	if err := h.repos.Tasks.Add(c.Request.Context(), t); err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/tasks/%d", t.ID))
	c.JSON(http.StatusCreated, t)
}

func (h *Handler) editTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	t, err := h.repos.Tasks.Find(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	lookups, err := h.taskLookups(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formView[TaskForm]{
		Record:    taskFormFrom(t),
		CSRFToken: h.issueCSRFToken(c),
		Lookups:   lookups,
	})
}

func (h *Handler) updateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	if bid, decoded := bodyID(c); decoded && bid != id {
		notFound(c)
		return
	}
	var form TaskForm
	clean, errs := bindForm(h, c, &form)
	if errs == nil {
		var err error
		if errs, err = h.checkAssignee(c, clean); err != nil {
			h.respondError(c, err)
			return
		}
	}
	if errs != nil {
		form.ID = id
		h.taskFormInvalid(c, form, errs)
		return
	}
	n, err := h.repos.Tasks.Update(c.Request.Context(), clean.toDomain())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if n == 0 {
		notFound(c)
		return
	}
	redirectToList(c, "/tasks")
}

func (h *Handler) confirmDeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	t, err := h.repos.Tasks.Find(c.Request.Context(), id, repository.WithEmployee())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": t, "csrfToken": h.issueCSRFToken(c)})
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	if err := h.repos.Tasks.Remove(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	redirectToList(c, "/tasks")
}

// checkAssignee reports a field error when the task names an employee that
// does not exist, instead of letting the foreign key fail the insert. Any
// other lookup failure is returned as an error.
func (h *Handler) checkAssignee(c *gin.Context, form TaskForm) (fieldErrors, error) {
	t := form.toDomain()
	if !t.IsAssigned() {
		return nil, nil
	}
	_, err := h.repos.Employees.Find(c.Request.Context(), *t.AssignedEmployeeID)
	switch {
	case err == nil:
		return nil, nil
	case errors.Is(err, repository.ErrNotFound):
		return fieldErrors{"assignedEmployeeId": "unknown employee"}, nil
	default:
		return nil, fmt.Errorf("checking assignee of task: %w", err)
	}
}

func (h *Handler) taskLookups(c *gin.Context) (*taskLookups, error) {
	employees, err := h.repos.Employees.List(c.Request.Context())
	if err != nil {
		return nil, fmt.Errorf("loading employees for task form: %w", err)
	}
	return &taskLookups{
		Employees:  employeeOptions(employees),
		Priorities: domain.Priorities(),
		Statuses:   domain.Statuses(),
	}, nil
}

func (h *Handler) taskFormInvalid(c *gin.Context, form TaskForm, errs fieldErrors) {
	lookups, err := h.taskLookups(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, formView[TaskForm]{
		Record:    form,
		Errors:    errs,
		CSRFToken: h.issueCSRFToken(c),
		Lookups:   lookups,
	})
}
