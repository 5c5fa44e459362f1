package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loxhness/HospitalManagement/internal/repository"
)

// Repos groups the storage ports the handlers depend on.
type Repos struct {
	Employees repository.EmployeeRepo
	Projects  repository.ProjectRepo
	Tasks     repository.TaskRepo
	Reports   repository.ReportRepo
}

// Options configures the router's ambient behavior.
type Options struct {
	Logger *slog.Logger

	// Registry receives the HTTP metrics and is served on /metrics. A fresh
	// registry is created when nil.
	Registry *prometheus.Registry

	// CORSOrigins enables CORS for the listed origins. Empty disables CORS.
	CORSOrigins []string

	CSRFCookie string
	CSRFSecure bool

	// Ready backs /healthz. Nil means always healthy.
	Ready func(ctx context.Context) error
}

// Handler serves the hospital HTTP API.
type Handler struct {
	repos      Repos
	logger     *slog.Logger
	validate   *validator.Validate
	csrfCookie string
	csrfSecure bool
	ready      func(ctx context.Context) error
}

// NewRouter builds the gin engine with middleware and every route registered.
func NewRouter(repos Repos, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.CSRFCookie == "" {
		opts.CSRFCookie = "hospital_csrf"
	}

	h := &Handler{
		repos:      repos,
		logger:     opts.Logger,
		validate:   newValidator(),
		csrfCookie: opts.CSRFCookie,
		csrfSecure: opts.CSRFSecure,
		ready:      opts.Ready,
	}
	metrics := newHTTPMetrics(opts.Registry)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(
		requestID(),
		accessLog(opts.Logger),
		metrics.middleware(),
		gin.CustomRecovery(h.recovered),
		securityHeaders(),
	)
	if len(opts.CORSOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = opts.CORSOrigins
		cfg.AllowCredentials = true
		cfg.AddAllowHeaders(csrfHeader, requestIDHeader)
		cfg.AddExposeHeaders(requestIDHeader, "Location")
		r.Use(cors.New(cfg))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	r.GET("/healthz", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))

	app := r.Group("/", csrfProtect(opts.CSRFCookie))
	h.registerEmployees(app.Group("/employees"))
	h.registerProjects(app.Group("/projects"))
	h.registerTasks(app.Group("/tasks"))
	h.registerReports(app.Group("/reports"))

	return r
}

func (h *Handler) health(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(c.Request.Context()); err != nil {
			h.logger.WarnContext(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) recovered(c *gin.Context, p any) {
	h.logger.ErrorContext(c.Request.Context(), "panic serving request",
		"request_id", requestIDFrom(c),
		"route", c.FullPath(),
		"panic", p,
	)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
