package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"task-planner/internal/domain"
	"task-planner/internal/services"
)

// TaskOptions holds the flags of "task create"
type TaskOptions struct {
	Type        string
	ParentID    string
	Description string
	Start       string
	End         string
}

// TaskCommand handles the task hierarchy on behalf of one user
type TaskCommand struct {
	app          *App
	taskService  services.TaskService
	errorHandler *ErrorHandler
	callerID     string
}

// NewTaskCommand creates a task command acting as callerID
func NewTaskCommand(app *App, callerID string) *TaskCommand {
	return &TaskCommand{
		app:          app,
		taskService:  app.services.TaskService,
		errorHandler: NewErrorHandler(),
		callerID:     callerID,
	}
}

// Create adds a goal, task or subtask to projectID
func (c *TaskCommand) Create(ctx context.Context, projectID, title string, opts TaskOptions) error {
	task := domain.NewTask(projectID, title, domain.HierarchyType(opts.Type))
	task.Description = opts.Description
	task.StartDate = opts.Start
	task.EndDate = opts.End
	if opts.ParentID != "" {
		parentID := opts.ParentID
		task.ParentTaskID = &parentID
	}

	created, err := c.taskService.CreateTask(ctx, c.callerID, task)
	if err != nil {
		return c.errorHandler.Handle("create task", err)
	}

	c.app.printf("Created %s: %s (%s)\n", created.HierarchyType, created.Title, created.ID)
	return nil
}

// Subtasks prints the stored subtasks of a parent task
func (c *TaskCommand) Subtasks(ctx context.Context, projectID, parentTaskID string) error {
	records, err := c.taskService.ListSubtasks(ctx, c.callerID, projectID, parentTaskID)
	if err != nil {
		return c.errorHandler.Handle("list subtasks", err)
	}

	if len(records) == 0 {
		c.app.printf("No subtasks found\n")
		return nil
	}
	return printRecords(c.app, records)
}

// Status moves a task to a new status
func (c *TaskCommand) Status(ctx context.Context, projectID, taskID, status string) error {
	if err := c.taskService.UpdateStatus(ctx, c.callerID, projectID, taskID, status); err != nil {
		return c.errorHandler.Handle("update status", err)
	}

	c.app.printf("Task %s is now %s\n", taskID, status)
	return nil
}

func printRecords(app *App, records []domain.SubtaskRecord) error {
	w := tabwriter.NewWriter(app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tEND\tSTATUS\tTITLE")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.StartTime, r.EndTime, r.Status, r.Title)
	}
	return w.Flush()
}

func (r *RootCommand) taskCommand() *cobra.Command {
	var callerID string
	var opts TaskOptions

	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage goals, tasks and subtasks",
	}
	taskCmd.PersistentFlags().StringVar(&callerID, "as", "", "User id to act as")

	createCmd := &cobra.Command{
		Use:   "create <project-id> <title>",
		Short: "Create a goal, task or subtask",
		Long: `Create a goal, task or subtask in a project.

A goal may hold tasks and a task may hold subtasks. Dates use YYYY-MM-DD.

Examples:
  planner task create <project> "Ship v1" --type goal --as <user>
  planner task create <project> "Write docs" --parent <goal> --start 2024-01-01 --end 2024-01-31 --as <user>`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCaller(callerID); err != nil {
				return err
			}
			return r.withApp(func(ctx context.Context, app *App) error {
				return NewTaskCommand(app, callerID).Create(ctx, args[0], args[1], opts)
			})
		},
	}
	flags := createCmd.Flags()
	flags.StringVar(&opts.Type, "type", string(domain.HierarchyTask), "Hierarchy type: goal, task or subtask")
	flags.StringVar(&opts.ParentID, "parent", "", "Parent task id")
	flags.StringVar(&opts.Description, "description", "", "Task description")
	flags.StringVar(&opts.Start, "start", "", "Start date (YYYY-MM-DD)")
	flags.StringVar(&opts.End, "end", "", "End date (YYYY-MM-DD)")

	subtasksCmd := &cobra.Command{
		Use:   "subtasks <project-id> <task-id>",
		Short: "List the stored subtasks of a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCaller(callerID); err != nil {
				return err
			}
			return r.withApp(func(ctx context.Context, app *App) error {
				return NewTaskCommand(app, callerID).Subtasks(ctx, args[0], args[1])
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status <project-id> <task-id> <status>",
		Short: "Change the status of a task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCaller(callerID); err != nil {
				return err
			}
			return r.withApp(func(ctx context.Context, app *App) error {
				return NewTaskCommand(app, callerID).Status(ctx, args[0], args[1], args[2])
			})
		},
	}

	taskCmd.AddCommand(createCmd, subtasksCmd, statusCmd)
	return taskCmd
}
