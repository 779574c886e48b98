package domain

import (
	"strings"
	"time"
)

// Role is a member's role within a project.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// DefaultRole is assigned when a member is added without an explicit role.
const DefaultRole = RoleEditor

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	switch r {
	case RoleOwner, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// CanManageMembers reports whether the role may add members to the project.
func (r Role) CanManageMembers() bool {
	return r == RoleOwner
}

// CanWrite reports whether the role may create or change tasks.
func (r Role) CanWrite() bool {
	return r == RoleOwner || r == RoleEditor
}

// Project groups tasks and members.
type Project struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	CreatedAt   time.Time
}

// NewProject creates a new Project owned by ownerID.
func NewProject(name, description, ownerID string) Project {
	return Project{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}
}

// Membership links a user to a project with a role.
type Membership struct {
	ProjectID string
	UserID    string
	Role      Role
	CreatedAt time.Time
}

// User is an authenticated principal.
type User struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
