package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/loxhness/HospitalManagement/internal/db"
)

type reportLink struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Href  string `json:"href"`
}

var reportIndex = []reportLink{
	{Name: "staff-workload", Title: "Staff Workload", Href: "/reports/staff-workload"},
	{Name: "department-performance", Title: "Department Performance", Href: "/reports/department-performance"},
}

func (h *Handler) registerReports(g *gin.RouterGroup) {
	g.GET("", h.listReports)
	g.GET("/staff-workload", h.runReport(h.repos.Reports.StaffWorkload))
	g.GET("/department-performance", h.runReport(h.repos.Reports.DepartmentPerformance))
}

func (h *Handler) listReports(c *gin.Context) {
	c.JSON(http.StatusOK, reportIndex)
}

func (h *Handler) runReport(run func(ctx context.Context) (*db.Table, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		table, err := run(c.Request.Context())
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, table)
	}
}
