package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
	"task-planner/internal/services"
	"task-planner/internal/validation"
)

// RegenerateOptions holds the flags of "regenerate"
type RegenerateOptions struct {
	CallerID string
	Confirm  bool
}

// RegenerateCommand proposes subtasks from a request document and optionally confirms them
type RegenerateCommand struct {
	app          *App
	regeneration services.RegenerationService
	tasks        services.TaskService
	validator    *validation.RequestValidator
	errorHandler *ErrorHandler
	in           io.Reader
	opts         RegenerateOptions
}

// NewRegenerateCommand creates a regenerate command reading "-" from in
func NewRegenerateCommand(app *App, in io.Reader, opts RegenerateOptions) *RegenerateCommand {
	return &RegenerateCommand{
		app:          app,
		regeneration: app.services.RegenerationService,
		tasks:        app.services.TaskService,
		validator:    validation.NewRequestValidator(validation.NewValidatorWithConfig(app.config)),
		errorHandler: NewErrorHandler(),
		in:           in,
		opts:         opts,
	}
}

// Execute reads the request from args[0] (a path, or - for stdin) and prints the proposal as JSON
func (c *RegenerateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("usage: planner regenerate <request.json|-> --as <user-id>", nil)
	}

	body, err := c.read(args[0])
	if err != nil {
		return err
	}

	req, err := c.validator.ValidateRegenerationRequest(body)
	if err != nil {
		return c.errorHandler.Handle("read request", err)
	}

	result, err := c.regeneration.RegenerateRequest(ctx, c.opts.CallerID, req)
	if err != nil {
		return c.errorHandler.Handle("regenerate subtasks", err)
	}

	if err := c.printJSON(result); err != nil {
		return err
	}

	if !c.opts.Confirm {
		return nil
	}
	return c.confirm(ctx, req, result.Subtasks)
}

// confirm persists the proposal through a Breakdown so the stored list is replaced atomically
func (c *RegenerateCommand) confirm(ctx context.Context, req domain.RegenerationRequest, proposal []domain.SubtaskRecord) error {
	current, err := c.tasks.ListSubtasks(ctx, c.opts.CallerID, req.ProjectID, req.ParentTaskID)
	if err != nil {
		return c.errorHandler.Handle("load subtasks", err)
	}

	breakdown := domain.NewBreakdown(req.ParentTaskID, req.ProjectID, current)
	breakdown.Propose(proposal)
	if err := breakdown.Confirm(ctx, c.tasks.Upserter(c.opts.CallerID)); err != nil {
		return c.errorHandler.Handle("confirm subtasks", err)
	}

	log.WithFields(log.Fields{
		"parent_task_id": req.ParentTaskID,
		"previous":       len(current),
		"confirmed":      len(breakdown.Current()),
	}).Debug("breakdown confirmed")
	c.app.printf("Confirmed %d subtasks\n", len(breakdown.Current()))
	return nil
}

func (c *RegenerateCommand) read(source string) ([]byte, error) {
	if source == "-" {
		body, err := io.ReadAll(c.in)
		if err != nil {
			return nil, fmt.Errorf("failed to read request from stdin: %w", err)
		}
		return body, nil
	}

	body, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}
	return body, nil
}

func (c *RegenerateCommand) printJSON(v interface{}) error {
	enc := json.NewEncoder(c.app.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *RootCommand) regenerateCommand() *cobra.Command {
	var opts RegenerateOptions

	cmd := &cobra.Command{
		Use:   "regenerate <request.json|->",
		Short: "Propose subtasks for a task",
		Long: `Propose a new subtask list for a parent task from a regeneration request.

The request is the same JSON document the API accepts at /api/generate-subtasks.
Locked subtasks in existingSubtasks are kept unchanged. The proposal is printed as
JSON and only written to the database with --confirm.

Examples:
  planner regenerate request.json --as <user>
  cat request.json | planner regenerate - --as <user> --confirm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireCaller(opts.CallerID); err != nil {
				return err
			}
			return r.withApp(func(ctx context.Context, app *App) error {
				return NewRegenerateCommand(app, cmd.InOrStdin(), opts).Execute(ctx, args)
			})
		},
	}
	cmd.Flags().StringVar(&opts.CallerID, "as", "", "User id to act as")
	cmd.Flags().BoolVar(&opts.Confirm, "confirm", false, "Persist the proposal")

	return cmd
}
