package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/loxhness/HospitalManagement/internal/db"
	"github.com/loxhness/HospitalManagement/internal/httpapi"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.storage(ctx); err != nil {
				return err
			}
			if err := app.reports(ctx); err != nil {
				return err
			}
			if app.Config.AutoMigrate && app.DB != nil {
				if err := db.Migrate(ctx, app.DB); err != nil {
					return fmt.Errorf("migrating database: %w", err)
				}
			}

			if app.Config.LogLevel != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}
			srv := app.newServer(addr)
			app.Logger.Info("listening", "addr", addr, "driver", app.Config.DBDriver)
			return runServer(ctx, srv, app.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Config.Addr, "listen address")
	return cmd
}

func (a *App) newServer(addr string) *http.Server {
	var ready func(ctx context.Context) error
	if a.DB != nil {
		ready = a.DB.PingContext
	}
	router := httpapi.NewRouter(httpapi.Repos{
		Employees: a.Employees,
		Projects:  a.Projects,
		Tasks:     a.Tasks,
		Reports:   a.Reports,
	}, httpapi.Options{
		Logger:      a.Logger,
		Registry:    a.Registry,
		CORSOrigins: a.Config.CORSOrigins,
		CSRFCookie:  a.Config.CSRFCookie,
		CSRFSecure:  a.Config.CSRFSecure,
		Ready:       ready,
	})
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(a.Logger.Handler(), slog.LevelError),
	}
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}
