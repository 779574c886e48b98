package generation

import (
	"context"
	"fmt"
	"os"

	"task-planner/internal/errors"
)

// DefaultStaticResponse is returned by a static provider with no configured file
const DefaultStaticResponse = `{"subtasks": []}`

// StaticProvider returns a canned completion. Used for offline runs and tests.
type StaticProvider struct {
	response string
}

// NewStaticProvider creates a provider that always answers with response
func NewStaticProvider(response string) *StaticProvider {
	return &StaticProvider{response: response}
}

// NewStaticProviderFromFile reads the canned completion from path
func NewStaticProviderFromFile(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read static response %s: %w", path, err)
	}
	return NewStaticProvider(string(data)), nil
}

// Complete returns the canned response unless ctx is already done
func (p *StaticProvider) Complete(ctx context.Context, system, user string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.NewGenerationError("request cancelled", err)
	}
	if p.response == "" {
		return "", errors.NewGenerationError("AI response content was empty", nil)
	}
	return p.response, nil
}
