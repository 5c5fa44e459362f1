package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loxhness/HospitalManagement/internal/cli/formatter"
	"github.com/loxhness/HospitalManagement/internal/db"
)

type reportSpec struct {
	title string
	run   func(app *App, ctx context.Context) (*db.Table, error)
}

var reportsByName = map[string]reportSpec{
	"staff-workload": {
		title: "Staff Workload",
		run: func(app *App, ctx context.Context) (*db.Table, error) {
			return app.Reports.StaffWorkload(ctx)
		},
	},
	"department-performance": {
		title: "Department Performance",
		run: func(app *App, ctx context.Context) (*db.Table, error) {
			return app.Reports.DepartmentPerformance(ctx)
		},
	},
}

func newReportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:       "report <staff-workload|department-performance>",
		Short:     "Run an aggregate staff report",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"staff-workload", "department-performance"},
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, ok := reportsByName[args[0]]
			if !ok {
				return fmt.Errorf("unknown report %q", args[0])
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q (use table or json)", format)
			}
			if err := app.reports(cmd.Context()); err != nil {
				return err
			}

			table, err := spec.run(app, cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(table)
			}
			fmt.Fprint(out, formatter.FormatReport(spec.title, table))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table or json)")
	return cmd
}
