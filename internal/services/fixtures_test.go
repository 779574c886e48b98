package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"task-planner/internal/config"
	"task-planner/internal/domain"
	"task-planner/internal/generation"
	"task-planner/internal/repository/sqlite"
)

const (
	// 2024-01-01 and 2024-01-31 at 00:00 UTC
	janFirst       int64 = 1704067200000
	janThirtyFirst int64 = 1706659200000
	day            int64 = 24 * 60 * 60 * 1000
)

// fixture is a seeded store: one project with a member of every role and one parent task
type fixture struct {
	repo      *sqlite.SQLiteRepository
	ownerID   string
	editorID  string
	viewerID  string
	outsider  string
	projectID string
	parentID  string
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	f := &fixture{
		repo:      repo,
		ownerID:   domain.NewID(),
		editorID:  domain.NewID(),
		viewerID:  domain.NewID(),
		outsider:  domain.NewID(),
		projectID: domain.NewID(),
		parentID:  domain.NewID(),
	}

	for id, email := range map[string]string{
		f.ownerID:  "owner@example.com",
		f.editorID: "editor@example.com",
		f.viewerID: "viewer@example.com",
		f.outsider: "outsider@example.com",
	} {
		require.NoError(t, repo.CreateUser(ctx, &sqlite.User{ID: id, Email: email}))
	}

	require.NoError(t, repo.CreateProject(ctx, &sqlite.Project{ID: f.projectID, Name: "Launch", OwnerID: f.ownerID}))
	require.NoError(t, repo.AddMember(ctx, &sqlite.ProjectMember{ProjectID: f.projectID, UserID: f.editorID, Role: "editor"}))
	require.NoError(t, repo.AddMember(ctx, &sqlite.ProjectMember{ProjectID: f.projectID, UserID: f.viewerID, Role: "viewer"}))

	require.NoError(t, repo.CreateTask(ctx, &sqlite.Task{
		ID:            f.parentID,
		ProjectID:     f.projectID,
		Title:         "Ship the beta",
		StartDate:     "2024-01-01",
		EndDate:       "2024-01-31",
		Status:        domain.StatusTodo,
		HierarchyType: string(domain.HierarchyTask),
		CreatedBy:     f.ownerID,
	}))

	return f
}

// stubProvider answers with a fixed reply and counts calls
type stubProvider struct {
	reply   string
	err     error
	delay   time.Duration
	calls   int
	lastMsg string
}

func (s *stubProvider) Complete(ctx context.Context, system, user string, opts generation.Options) (string, error) {
	s.calls++
	s.lastMsg = user
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.reply, s.err
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Generation.Timeout = time.Second
	return cfg
}

func strPtr(s string) *string { return &s }
