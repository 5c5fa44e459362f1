package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loxhness/HospitalManagement/internal/db"
)

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the Employees, Projects and Tasks tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.storage(cmd.Context()); err != nil {
				return err
			}
			if app.DB == nil {
				return errors.New("no database configured")
			}
			if err := db.Migrate(cmd.Context(), app.DB); err != nil {
				return fmt.Errorf("migrating database: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s)\n", app.Config.DBDriver)
			return nil
		},
	}
}
