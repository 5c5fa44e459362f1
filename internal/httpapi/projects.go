package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) registerProjects(g *gin.RouterGroup) {
	g.GET("", h.listProjects)
	g.GET("/new", h.newProject)
	g.POST("", h.createProject)
	g.GET("/:id", h.showProject)
	g.GET("/:id/edit", h.editProject)
	g.POST("/:id/edit", h.updateProject)
	g.GET("/:id/delete", h.confirmDeleteProject)
	g.POST("/:id/delete", h.deleteProject)
}

func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.repos.Projects.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) showProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	p, err := h.repos.Projects.Find(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) newProject(c *gin.Context) {
	c.JSON(http.StatusOK, formView[ProjectForm]{CSRFToken: h.issueCSRFToken(c)})
}

func (h *Handler) createProject(c *gin.Context) {
	var form ProjectForm
	clean, errs := bindForm(h, c, &form)
	if errs != nil {
		h.projectFormInvalid(c, form, errs)
		return
	}
	p := clean.toDomain()
	p.ID = 0
	if err := h.repos.Projects.Add(c.Request.Context(), p); err != nil {
		h.respondError(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/projects/%d", p.ID))
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) editProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	p, err := h.repos.Projects.Find(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, formView[ProjectForm]{
		Record:    projectFormFrom(p),
		CSRFToken: h.issueCSRFToken(c),
	})
}

func (h *Handler) updateProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	if bid, decoded := bodyID(c); decoded && bid != id {
		notFound(c)
		return
	}
	var form ProjectForm
	clean, errs := bindForm(h, c, &form)
	if errs != nil {
		form.ID = id
		h.projectFormInvalid(c, form, errs)
		return
	}
	n, err := h.repos.Projects.Update(c.Request.Context(), clean.toDomain())
	if err != nil {
		h.respondError(c, err)
		return
	}
	if n == 0 {
		notFound(c)
		return
	}
	redirectToList(c, "/projects")
}

func (h *Handler) confirmDeleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	p, err := h.repos.Projects.Find(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"record": p, "csrfToken": h.issueCSRFToken(c)})
}

func (h *Handler) deleteProject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		notFound(c)
		return
	}
	if err := h.repos.Projects.Remove(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	redirectToList(c, "/projects")
}

func (h *Handler) projectFormInvalid(c *gin.Context, form ProjectForm, errs fieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, formView[ProjectForm]{
		Record:    form,
		Errors:    errs,
		CSRFToken: h.issueCSRFToken(c),
	})
}
