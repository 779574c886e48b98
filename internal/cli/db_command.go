package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"task-planner/internal/repository/sqlite/migrations"
)

// DBCommand inspects and manages schema migrations
type DBCommand struct {
	app *App
}

// NewDBCommand creates a new db command handler
func NewDBCommand(app *App) *DBCommand {
	return &DBCommand{app: app}
}

// Status prints every known migration and whether it is applied
func (c *DBCommand) Status(ctx context.Context) error {
	statuses, err := migrations.GetStatus(ctx, c.app.repo.DB())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tSTATE\tAPPLIED AT")
	for _, s := range statuses {
		state, appliedAt := "pending", "-"
		switch {
		case s.Dirty:
			state = "dirty"
		case s.Applied:
			state = "applied"
		}
		if s.AppliedAt != nil {
			appliedAt = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Version, s.Name, state, appliedAt)
	}
	return w.Flush()
}

// Migrate applies pending migrations
func (c *DBCommand) Migrate(ctx context.Context) error {
	if err := migrations.RunMigrations(ctx, c.app.repo.DB()); err != nil {
		return err
	}
	c.app.printf("Database is up to date\n")
	return nil
}

// Rollback reverts the latest applied migration
func (c *DBCommand) Rollback(ctx context.Context) error {
	version, err := migrations.Rollback(ctx, c.app.repo.DB())
	if err != nil {
		return err
	}
	if version == 0 {
		c.app.printf("Nothing to roll back\n")
		return nil
	}
	c.app.printf("Rolled back migration %d\n", version)
	return nil
}

func (r *RootCommand) dbCommand() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the database schema",
		Long: `Manage the database schema.

Migrations are applied automatically whenever the database is opened, so "db rollback"
is only useful right before replacing the binary with an older one.`,
	}

	run := func(action func(*DBCommand, context.Context) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(ctx context.Context, app *App) error {
				return action(NewDBCommand(app), ctx)
			})
		}
	}

	dbCmd.AddCommand(
		&cobra.Command{Use: "status", Short: "Show migration status", Args: cobra.NoArgs, RunE: run((*DBCommand).Status)},
		&cobra.Command{Use: "migrate", Short: "Apply pending migrations", Args: cobra.NoArgs, RunE: run((*DBCommand).Migrate)},
		&cobra.Command{Use: "rollback", Short: "Revert the latest migration", Args: cobra.NoArgs, RunE: run((*DBCommand).Rollback)},
	)

	return dbCmd
}
