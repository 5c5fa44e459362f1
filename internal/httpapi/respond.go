package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/loxhness/HospitalManagement/internal/repository"
)

// parseID reads the :id path parameter. A missing, malformed or
// non-positive id is treated the same as an unknown one.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

// respondError maps err to a status code. Anything that is not a known
// sentinel is logged and reported as a 500 without details.
func (h *Handler) respondError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		notFound(c)
		return
	}
	h.logger.ErrorContext(c.Request.Context(), "request failed",
		"request_id", requestIDFrom(c),
		"method", c.Request.Method,
		"route", c.FullPath(),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// redirectToList finishes a successful edit or delete the post/redirect/get
// way.
func redirectToList(c *gin.Context, list string) {
	c.Redirect(http.StatusSeeOther, list)
}
