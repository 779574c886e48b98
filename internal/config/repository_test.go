package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"task-planner/internal/repository/sqlite"
)

func TestCreateRepository(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "nested", "data")

	cfg := NewConfig()
	cfg.Database.Dir = tmpDir

	repo, err := CreateRepository(cfg)
	if err != nil {
		t.Fatalf("CreateRepository() error = %v", err)
	}
	defer repo.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "planner.db")); err != nil {
		t.Errorf("expected database file to exist: %v", err)
	}

	err = repo.CreateUser(context.Background(), &sqlite.User{ID: "u1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	projects, err := repo.ListProjectsForUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListProjectsForUser() error = %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("expected no projects, got %d", len(projects))
	}
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	if err != nil {
		t.Fatalf("CreateTestRepository() error = %v", err)
	}
	defer repo.Close()

	err = repo.CreateUser(context.Background(), &sqlite.User{ID: "u1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
}
