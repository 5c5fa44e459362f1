package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/loxhness/HospitalManagement/internal/config"
	"github.com/loxhness/HospitalManagement/internal/db"
	"github.com/loxhness/HospitalManagement/internal/logging"
	"github.com/loxhness/HospitalManagement/internal/repository"
)

// App holds configuration and the storage ports used by CLI commands. Ports
// left nil are wired from Config the first time a command needs them, which
// lets tests inject in-memory repositories.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Version  string

	DB        *sqlx.DB
	Employees repository.EmployeeRepo
	Projects  repository.ProjectRepo
	Tasks     repository.TaskRepo
	Reports   repository.ReportRepo

	observer db.QueryObserver
	closers  []io.Closer
}

// NewRootCmd creates the top-level "hospital" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "hospital",
		Short:         "Hospital staff, project and task management service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.Normalize(); err != nil {
				return err
			}
			if app.Logger == nil {
				logger, err := logging.New(os.Stderr, app.Config.LogLevel, app.Config.LogFormat)
				if err != nil {
					return err
				}
				app.Logger = logger
			}
			return nil
		},
	}
	app.Config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newServeCmd(app),
		newMigrateCmd(app),
		newReportCmd(app),
		newVersionCmd(app),
	)
	return root
}

// Close releases every database handle the App opened itself.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) queryObserver() db.QueryObserver {
	if a.observer == nil {
		if a.Registry == nil {
			a.Registry = prometheus.NewRegistry()
		}
		a.observer = db.MultiQueryObserver(
			db.NewLogQueryObserver(a.Logger),
			db.NewMetricsQueryObserver(a.Registry),
		)
	}
	return a.observer
}

func (a *App) open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	database, err := db.Open(ctx, a.Config.DBDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	a.closers = append(a.closers, database)
	return database, nil
}

// storage opens the main database and wires the entity repositories.
func (a *App) storage(ctx context.Context) error {
	if a.DB == nil && (a.Employees == nil || a.Projects == nil || a.Tasks == nil) {
		database, err := a.open(ctx, a.Config.DBDSN)
		if err != nil {
			return err
		}
		a.DB = database
	}
	if a.DB == nil {
		return nil
	}
	exec := db.NewExecutor(a.DB, a.queryObserver())
	if a.Employees == nil {
		a.Employees = repository.NewSQLEmployeeRepo(exec)
	}
	if a.Projects == nil {
		a.Projects = repository.NewSQLProjectRepo(exec)
	}
	if a.Tasks == nil {
		a.Tasks = repository.NewSQLTaskRepo(exec)
	}
	return nil
}

// reports wires the report repository, reusing the main database when no
// separate reports DSN is configured.
func (a *App) reports(ctx context.Context) error {
	if a.Reports != nil {
		return nil
	}
	var conn *sqlx.DB
	if a.Config.ReportsDSN == "" || a.Config.ReportsDSN == a.Config.DBDSN {
		if err := a.storage(ctx); err != nil {
			return err
		}
		conn = a.DB
	}
	if conn == nil {
		database, err := a.open(ctx, a.Config.EffectiveReportsDSN())
		if err != nil {
			return err
		}
		conn = database
	}
	a.Reports = repository.NewSQLReportRepo(db.NewExecutor(conn, a.queryObserver()))
	return nil
}
