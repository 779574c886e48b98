package cli

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"task-planner/internal/errors"
	"task-planner/internal/services"
)

// Output formats accepted by the output command
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// OutputCommand exports the stored subtasks of a task
type OutputCommand struct {
	app          *App
	taskService  services.TaskService
	errorHandler *ErrorHandler
	callerID     string
	format       string
}

// NewOutputCommand creates a new output command handler
func NewOutputCommand(app *App, callerID, format string) *OutputCommand {
	return &OutputCommand{
		app:          app,
		taskService:  app.services.TaskService,
		errorHandler: NewErrorHandler(),
		callerID:     callerID,
		format:       strings.ToLower(strings.TrimSpace(format)),
	}
}

// Execute writes the subtasks of args[1] in project args[0]
func (c *OutputCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewValidationError("usage: planner output <project-id> <task-id> --format csv|json", nil)
	}
	if c.format != FormatCSV && c.format != FormatJSON {
		return errors.NewValidationError(fmt.Sprintf("unsupported format: %s", c.format), nil)
	}

	records, err := c.taskService.ListSubtasks(ctx, c.callerID, args[0], args[1])
	if err != nil {
		return c.errorHandler.Handle("export subtasks", err)
	}

	if c.format == FormatJSON {
		enc := json.NewEncoder(c.app.out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	writer := csv.NewWriter(c.app.out)

	header := []string{"ID", "Title", "Description", "Start", "End", "Status"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{r.ID, r.Title, r.Description, r.StartTime, r.EndTime, r.Status}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (r *RootCommand) outputCommand() *cobra.Command {
	var callerID, format string

	cmd := &cobra.Command{
		Use:   "output <project-id> <task-id>",
		Short: "Export the subtasks of a task",
		Long: `Export the stored subtasks of a task.

Supported formats:
  csv  - Comma-separated values with a header row (default)
  json - The same records the API returns

Example:
  planner output <project> <task> --format csv --as <user> > subtasks.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCaller(callerID); err != nil {
				return err
			}
			return r.withApp(func(ctx context.Context, app *App) error {
				return NewOutputCommand(app, callerID, format).Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVar(&callerID, "as", "", "User id to act as")
	cmd.Flags().StringVar(&format, "format", FormatCSV, "Output format: csv or json")

	return cmd
}
