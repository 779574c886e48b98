package sqlite

import "time"

// User represents a row of the users table
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// APIToken represents a stored bearer token; only its hash is kept
type APIToken struct {
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Project represents a project
type Project struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
}

// ProjectMember represents a row of project_members
type ProjectMember struct {
	ProjectID string
	UserID    string
	Role      string
	CreatedAt time.Time
}

// Task represents a goal, task or subtask
// StartDate and EndDate hold YYYY-MM-DD text
type Task struct {
	ID            string
	ProjectID     string
	ParentTaskID  *string // Using pointer to allow NULL values
	Title         string
	Description   string
	StartDate     string
	EndDate       string
	Status        string
	HierarchyType string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
