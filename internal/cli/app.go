package cli

import (
	"fmt"
	"io"
	"os"

	"task-planner/internal/config"
	"task-planner/internal/generation"
	"task-planner/internal/repository/sqlite"
	"task-planner/internal/services"
)

// App holds what a command needs once configuration is loaded
type App struct {
	config   *config.Config
	repo     *sqlite.SQLiteRepository
	services *services.ServiceContainer
	provider generation.Provider
	out      io.Writer
}

// NewApp opens the configured database and builds the configured provider
func NewApp(cfg *config.Config, out io.Writer) (*App, error) {
	provider, err := generation.New(cfg.Generation)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation provider: %w", err)
	}

	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, err
	}

	return NewAppWithRepository(cfg, repo, provider, out), nil
}

// NewAppWithRepository wires an App over an existing repository and provider
func NewAppWithRepository(cfg *config.Config, repo *sqlite.SQLiteRepository, provider generation.Provider, out io.Writer) *App {
	if out == nil {
		out = os.Stdout
	}
	return &App{
		config:   cfg,
		repo:     repo,
		services: services.NewServiceContainer(repo, provider, cfg),
		provider: provider,
		out:      out,
	}
}

// Close releases the database
func (a *App) Close() error {
	return a.repo.Close()
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}
