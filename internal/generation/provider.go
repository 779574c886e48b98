package generation

import (
	"context"
	"fmt"

	"task-planner/internal/config"
)

// Options tune a single completion call
type Options struct {
	// JSONMode asks the model for a single JSON object
	JSONMode bool
}

// Provider turns a system instruction and a user prompt into raw model text.
// Implementations return *errors.AppError values of type Generation.
type Provider interface {
	Complete(ctx context.Context, system, user string, opts Options) (string, error)
}

// ProviderFunc adapts a function to the Provider interface
type ProviderFunc func(ctx context.Context, system, user string, opts Options) (string, error)

// Complete calls f
func (f ProviderFunc) Complete(ctx context.Context, system, user string, opts Options) (string, error) {
	return f(ctx, system, user, opts)
}

// New builds the provider selected by cfg.Provider
func New(cfg config.GenerationConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	case config.ProviderStatic:
		if cfg.StaticFile != "" {
			return NewStaticProviderFromFile(cfg.StaticFile)
		}
		return NewStaticProvider(DefaultStaticResponse), nil
	default:
		return nil, fmt.Errorf("unknown generation provider: %q", cfg.Provider)
	}
}
