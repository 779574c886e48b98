package services

import (
	"context"
	"time"

	"task-planner/internal/domain"
)

// RegenerationMessage accompanies every successful regeneration
const RegenerationMessage = "Subtasks regenerated with locked subtasks preserved!"

// RegenerationResult is a proposal: persistence-ready records that have not been written
type RegenerationResult struct {
	Message  string                 `json:"message"`
	Subtasks []domain.SubtaskRecord `json:"subtasks"`
}

// IssuedToken is a freshly minted bearer token. The plain value is only available here.
type IssuedToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegenerationService proposes subtask lists for a parent task
type RegenerationService interface {
	// Regenerate validates a raw request body and runs the full pipeline
	Regenerate(ctx context.Context, callerID string, body []byte) (*RegenerationResult, error)
	// RegenerateRequest runs the pipeline for an already validated request
	RegenerateRequest(ctx context.Context, callerID string, req domain.RegenerationRequest) (*RegenerationResult, error)
}

// ProjectService handles projects and their membership
type ProjectService interface {
	CreateProject(ctx context.Context, callerID, name, description string) (*domain.Project, error)
	ListProjects(ctx context.Context, callerID string) ([]domain.Project, error)
	AddMember(ctx context.Context, callerID, projectID, userID string, role domain.Role) (*domain.Membership, error)
	ListMembers(ctx context.Context, callerID, projectID string) ([]domain.Membership, error)
}

// TaskService handles the task hierarchy and confirmation of proposals
type TaskService interface {
	CreateTask(ctx context.Context, callerID string, task domain.Task) (*domain.Task, error)
	ListSubtasks(ctx context.Context, callerID, projectID, parentTaskID string) ([]domain.SubtaskRecord, error)
	UpdateStatus(ctx context.Context, callerID, projectID, taskID, status string) error
	ConfirmSubtasks(ctx context.Context, callerID, projectID, parentTaskID string, records []domain.SubtaskRecord) error

	// Upserter binds the caller so a domain.Breakdown can confirm through this service
	Upserter(callerID string) domain.SubtaskUpserter
}

// AuthService issues and checks bearer tokens
type AuthService interface {
	CreateUser(ctx context.Context, email string) (*domain.User, error)
	IssueToken(ctx context.Context, userID string) (*IssuedToken, error)
	Authenticate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	RegenerationService RegenerationService
	ProjectService      ProjectService
	TaskService         TaskService
	AuthService         AuthService
}
