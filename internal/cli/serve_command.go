package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"task-planner/internal/api"
	"task-planner/internal/auth"
)

// ServeCommand runs the HTTP API until interrupted
type ServeCommand struct {
	app    *App
	server *api.Server
}

// NewServeCommand wires the API server over the app's services
func NewServeCommand(app *App) *ServeCommand {
	provider := auth.NewTokenProvider(app.services.AuthService, app.config.Auth.CookieName)
	return &ServeCommand{
		app:    app,
		server: api.New(app.services, provider, app.config),
	}
}

// Execute serves until ctx is cancelled
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	log.WithFields(log.Fields{
		"addr":     c.app.config.Server.Addr,
		"provider": c.app.config.Generation.Provider,
		"db":       c.app.config.GetDatabasePath(),
	}).Info("starting planner API")
	c.app.printf("Listening on %s\n", c.app.config.Server.Addr)

	return c.server.Run(ctx)
}

func (r *RootCommand) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the planner HTTP API on --addr until interrupted.

Clients authenticate with a bearer token from "planner user add", sent either as
"Authorization: Bearer <token>" or in the session cookie.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.newApp(r.config, r.out)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return NewServeCommand(app).Execute(ctx, args)
		},
	}
}
