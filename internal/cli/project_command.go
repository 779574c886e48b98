package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
	"task-planner/internal/services"
)

// ProjectCommand handles projects and their members on behalf of one user
type ProjectCommand struct {
	app            *App
	projectService services.ProjectService
	errorHandler   *ErrorHandler
	callerID       string
}

// NewProjectCommand creates a project command acting as callerID
func NewProjectCommand(app *App, callerID string) *ProjectCommand {
	return &ProjectCommand{
		app:            app,
		projectService: app.services.ProjectService,
		errorHandler:   NewErrorHandler(),
		callerID:       callerID,
	}
}

// Create makes a project owned by the caller
func (c *ProjectCommand) Create(ctx context.Context, name, description string) error {
	project, err := c.projectService.CreateProject(ctx, c.callerID, name, description)
	if err != nil {
		return c.errorHandler.Handle("create project", err)
	}

	c.app.printf("Created project: %s (%s)\n", project.Name, project.ID)
	return nil
}

// List prints the projects the caller belongs to
func (c *ProjectCommand) List(ctx context.Context) error {
	projects, err := c.projectService.ListProjects(ctx, c.callerID)
	if err != nil {
		return c.errorHandler.Handle("list projects", err)
	}

	if len(projects) == 0 {
		c.app.printf("No projects found\n")
		return nil
	}

	w := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tOWNER")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.OwnerID)
	}
	return w.Flush()
}

// AddMember grants userID a role on projectID
func (c *ProjectCommand) AddMember(ctx context.Context, projectID, userID, role string) error {
	member, err := c.projectService.AddMember(ctx, c.callerID, projectID, userID, domain.Role(role))
	if err != nil {
		return c.errorHandler.Handle("add member", err)
	}

	c.app.printf("Added %s to %s as %s\n", member.UserID, member.ProjectID, member.Role)
	return nil
}

// ListMembers prints the members of projectID
func (c *ProjectCommand) ListMembers(ctx context.Context, projectID string) error {
	members, err := c.projectService.ListMembers(ctx, c.callerID, projectID)
	if err != nil {
		return c.errorHandler.Handle("list members", err)
	}

	w := tabwriter.NewWriter(c.app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tROLE")
	for _, m := range members {
		fmt.Fprintf(w, "%s\t%s\n", m.UserID, m.Role)
	}
	return w.Flush()
}

// requireCaller rejects commands run without --as
func requireCaller(callerID string) error {
	if callerID == "" {
		return errors.NewValidationError("--as <user-id> is required", nil)
	}
	return nil
}

func (r *RootCommand) projectCommand() *cobra.Command {
	var callerID, description string

	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	projectCmd.PersistentFlags().StringVar(&callerID, "as", "", "User id to act as")

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project owned by the --as user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCaller(callerID); err != nil {
				return err
			}
			return r.withApp(func(ctx context.Context, app *App) error {
				return NewProjectCommand(app, callerID).Create(ctx, args[0], description)
			})
		},
	}
	createCmd.Flags().StringVar(&description, "description", "", "Project description")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List projects the --as user belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCaller(callerID); err != nil {
				return err
			}
			return r.withApp(func(ctx context.Context, app *App) error {
				return NewProjectCommand(app, callerID).List(ctx)
			})
		},
	}

	projectCmd.AddCommand(createCmd, listCmd)
	return projectCmd
}

func (r *RootCommand) memberCommand() *cobra.Command {
	var callerID, role string

	memberCmd := &cobra.Command{
		Use:   "member",
		Short: "Manage project members",
	}
	memberCmd.PersistentFlags().StringVar(&callerID, "as", "", "User id to act as")

	addCmd := &cobra.Command{
		Use:   "add <project-id> <user-id>",
		Short: "Add a user to a project",
		Long: `Add a user to a project. Only the project owner may add members.

Roles:
  editor - may create tasks, confirm subtasks and change status (default)
  viewer - may read and request proposals`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCaller(callerID); err != nil {
				return err
			}
			return r.withApp(func(ctx context.Context, app *App) error {
				return NewProjectCommand(app, callerID).AddMember(ctx, args[0], args[1], role)
			})
		},
	}
	addCmd.Flags().StringVar(&role, "role", string(domain.RoleEditor), "Member role: editor or viewer")

	listCmd := &cobra.Command{
		Use:   "list <project-id>",
		Short: "List the members of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCaller(callerID); err != nil {
				return err
			}
			return r.withApp(func(ctx context.Context, app *App) error {
				return NewProjectCommand(app, callerID).ListMembers(ctx, args[0])
			})
		},
	}

	memberCmd.AddCommand(addCmd, listCmd)
	return memberCmd
}
