package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) registerEmployees(g *gin.RouterGroup) {
	g.GET("", h.listEmployees)
	g.GET("/new", h.newEmployee)
	g.POST("", h.createEmployee)
	g.GET("/:id", h.showEmployee)
	g.GET("/:id/edit", h.editEmployee)
	g.POST("/:id/edit", h.updateEmployee)
	g.GET("/:id/delete", h.confirmDeleteEmployee)
	g.POST("/:id/delete", h.deleteEmployee)
}

func (h *Handler) listEmployees(c *gin.Context) {
	employees, err := h.repos.Employees.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (h *Handler) showEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	e, err := h.repos.Employees.Find(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) newEmployee(c *gin.Context) {
	c.JSON(http.StatusOK, formView[EmployeeForm]{CSRFToken: h.issueCSRFToken(c)})
}

func (h *Handler) createEmployee(c *gin.Context) {
	var form EmployeeForm
	clean, errs := bindForm(h, c, &form)
	if errs != nil {
		h.employeeFormInvalid(c, form, errs)
		return
	}
	e := clean.toDomain()
	e.ID = 0
	if err := h.repos.Employees.Add(c.Request.Context(), e); err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/employees/%d", e.ID))
	c.JSON(http.StatusCreated, e)
}

func (h *Handler) editEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	e, err := h.repos.Employees.Find(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formView[EmployeeForm]{
		Record:    employeeFormFrom(e),
		CSRFToken: h.issueCSRFToken(c),
	})
}

func (h *Handler) updateEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	if bid, decoded := bodyID(c); decoded && bid != id {
		notFound(c)
		return
	}
	var form EmployeeForm
	clean, errs := bindForm(h, c, &form)
	if errs != nil {
		form.ID = id
		h.employeeFormInvalid(c, form, errs)
		return
	}
	n, err := h.repos.Employees.Update(c.Request.Context(), clean.toDomain())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if n == 0 {
		notFound(c)
		return
	}
	redirectToList(c, "/employees")
}

func (h *Handler) confirmDeleteEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	e, err := h.repos.Employees.Find(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": e, "csrfToken": h.issueCSRFToken(c)})
}

func (h *Handler) deleteEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	if err := h.repos.Employees.Remove(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	redirectToList(c, "/employees")
}

func (h *Handler) employeeFormInvalid(c *gin.Context, form EmployeeForm, errs fieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, formView[EmployeeForm]{
		Record:    form,
		Errors:    errs,
		CSRFToken: h.issueCSRFToken(c),
	})
}
