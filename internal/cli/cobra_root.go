package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"task-planner/internal/config"
	"task-planner/internal/logging"
)

// AppFactory builds an App once configuration is known
type AppFactory func(cfg *config.Config, out io.Writer) (*App, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	config     *config.Config
	configFile string
	newApp     AppFactory
	out        io.Writer
	logCloser  io.Closer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(out io.Writer) *RootCommand {
	return NewRootCommandWithFactory(out, NewApp)
}

// NewRootCommandWithFactory lets tests supply their own App
func NewRootCommandWithFactory(out io.Writer, factory AppFactory) *RootCommand {
	if out == nil {
		out = os.Stdout
	}
	root := &RootCommand{
		newApp: factory,
		out:    out,
	}

	root.cmd = &cobra.Command{
		Use:   "planner",
		Short: "Plan projects and let a model break tasks into subtasks",
		Long: `Planner keeps projects, goals, tasks and subtasks in a local SQLite database
and serves an HTTP API that proposes subtask breakdowns with a text-generation model.
Locked subtasks are always carried through a regeneration unchanged.

EXAMPLES:
  planner user add ada@example.com                       # Create a user and print an API token
  planner project create "Launch" --as <user-id>         # Create a project owned by a user
  planner serve --addr :8080                             # Serve the HTTP API
  planner regenerate request.json --as <user-id>         # Propose subtasks from a request file
  planner config show                                    # Print the effective configuration

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults
  The config file is YAML, read from --config or PLANNER_CONFIG.

  PLANNER_DB_DIR, PLANNER_DB_FILENAME             Database location (default: ~/.planner/planner.db)
  PLANNER_SERVER_ADDR                             Listen address (default: :8080)
  PLANNER_GENERATION_PROVIDER                     openai or static (default: openai)
  PLANNER_GENERATION_API_KEY or GROQ_API_KEY      Provider API key
  PLANNER_GENERATION_MODEL                        Model name
  PLANNER_GENERATION_TIMEOUT                      Per-call timeout (default: 60s)
  PLANNER_ENV                                     local, dev or prod logging (default: local)
  PLANNER_DEBUG                                   Force debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.loadConfig()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if root.logCloser != nil {
				return root.logCloser.Close()
			}
			return nil
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteArgs runs the root command with explicit arguments
func (r *RootCommand) ExecuteArgs(args []string) error {
	r.cmd.SetArgs(args)
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.StringVar(&r.configFile, "config", "", "YAML config file (overrides PLANNER_CONFIG)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides PLANNER_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides PLANNER_DB_FILENAME)")

	// Server configuration
	flags.String("addr", "", "Listen address (overrides PLANNER_SERVER_ADDR)")

	// Generation configuration
	flags.String("provider", "", "Generation provider: openai or static (overrides PLANNER_GENERATION_PROVIDER)")
	flags.String("model", "", "Model name (overrides PLANNER_GENERATION_MODEL)")
	flags.Duration("generation-timeout", 0, "Per-call generation timeout (overrides PLANNER_GENERATION_TIMEOUT)")

	// Logging configuration
	flags.String("env", "", "Logging environment: local, dev or prod (overrides PLANNER_ENV)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Timeout for one CLI command (overrides PLANNER_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides PLANNER_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.serveCommand(),
		r.userCommand(),
		r.projectCommand(),
		r.memberCommand(),
		r.taskCommand(),
		r.regenerateCommand(),
		r.outputCommand(),
		r.configCommand(),
		r.dbCommand(),
	)
}

// loadConfig resolves configuration from file, environment and flags, then sets up logging
func (r *RootCommand) loadConfig() error {
	cfg, err := config.NewLoader().LoadWithOverrides(r.configFile, r.overridesFromFlags())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	r.config = cfg

	closer, err := logging.Setup(cfg.Logging)
	if err != nil {
		return err
	}
	r.logCloser = closer
	return nil
}

// overridesFromFlags collects only the flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	durationFlag := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	overrides.DBDir = stringFlag("db-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.Addr = stringFlag("addr")
	overrides.Provider = stringFlag("provider")
	overrides.Model = stringFlag("model")
	overrides.GenerationTimeout = durationFlag("generation-timeout")
	overrides.Env = stringFlag("env")
	overrides.Timeout = durationFlag("app-timeout")
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}

// withApp opens an App for one command run and closes it afterwards
func (r *RootCommand) withApp(run func(ctx context.Context, app *App) error) error {
	app, err := r.newApp(r.config, r.out)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
	defer cancel()

	return run(ctx, app)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}
