package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"task-planner/internal/errors"
	"task-planner/internal/services"
)

// UserCommand creates users and issues their API tokens
type UserCommand struct {
	app          *App
	authService  services.AuthService
	errorHandler *ErrorHandler
}

// NewUserCommand creates a new user command handler
func NewUserCommand(app *App) *UserCommand {
	return &UserCommand{
		app:          app,
		authService:  app.services.AuthService,
		errorHandler: NewErrorHandler(),
	}
}

// Add creates a user for email and prints a fresh token
func (c *UserCommand) Add(ctx context.Context, args []string) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return errors.NewValidationError("usage: planner user add <email>", nil)
	}

	user, err := c.authService.CreateUser(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("add user", err)
	}

	return c.printToken(ctx, user.ID, user.Email)
}

// Token issues another token for an existing user
func (c *UserCommand) Token(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("usage: planner user token <user-id>", nil)
	}
	return c.printToken(ctx, args[0], "")
}

func (c *UserCommand) printToken(ctx context.Context, userID, email string) error {
	issued, err := c.authService.IssueToken(ctx, userID)
	if err != nil {
		return c.errorHandler.Handle("issue token", err)
	}

	c.app.printf("User:    %s\n", issued.UserID)
	if email != "" {
		c.app.printf("Email:   %s\n", email)
	}
	c.app.printf("Token:   %s\n", issued.Token)
	c.app.printf("Expires: %s\n", issued.ExpiresAt.UTC().Format(time.RFC3339))
	return nil
}

func (r *RootCommand) userCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users and API tokens",
	}

	userCmd.AddCommand(
		&cobra.Command{
			Use:   "add <email>",
			Short: "Create a user and print an API token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.withApp(func(ctx context.Context, app *App) error {
					return NewUserCommand(app).Add(ctx, args)
				})
			},
		},
		&cobra.Command{
			Use:   "token <user-id>",
			Short: "Issue another API token for a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return r.withApp(func(ctx context.Context, app *App) error {
					return NewUserCommand(app).Token(ctx, args)
				})
			},
		},
	)

	return userCmd
}
