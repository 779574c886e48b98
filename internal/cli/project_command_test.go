package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/domain"
	"task-planner/internal/generation"
)

func TestProjectCommand_Create(t *testing.T) {
	// Arrange
	f := setupTestApp(t, generation.DefaultStaticResponse)
	ctx := context.Background()

	// Act
	err := NewProjectCommand(f.app, f.ownerID).Create(ctx, "  Roadmap  ", "Next quarter")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "Created project: Roadmap (")

	projects, err := f.app.services.ProjectService.ListProjects(ctx, f.ownerID)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestProjectCommand_List(t *testing.T) {
	tests := []struct {
		name     string
		caller   func(t *testing.T, f *cliFixture) string
		contains []string
	}{
		{
			name:     "should list projects for a member",
			caller:   func(t *testing.T, f *cliFixture) string { return f.viewerID },
			contains: []string{"ID", "NAME", "Launch"},
		},
		{
			name: "should say so when the user has no projects",
			caller: func(t *testing.T, f *cliFixture) string {
				user, err := f.app.services.AuthService.CreateUser(context.Background(), "loner@example.com")
				require.NoError(t, err)
				return user.ID
			},
			contains: []string{"No projects found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := setupTestApp(t, generation.DefaultStaticResponse)

			// Act
			err := NewProjectCommand(f.app, tt.caller(t, f)).List(context.Background())

			// Assert
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, f.out.String(), s)
			}
		})
	}
}

func TestProjectCommand_AddMember(t *testing.T) {
	tests := []struct {
		name    string
		asOwner bool
		role    string
		wantErr string
	}{
		{
			name:    "should let the owner add an editor",
			asOwner: true,
			role:    string(domain.RoleEditor),
		},
		{
			name:    "should refuse a viewer adding members",
			asOwner: false,
			role:    string(domain.RoleEditor),
			wantErr: "failed to add member",
		},
		{
			name:    "should refuse an unknown role",
			asOwner: true,
			role:    "admin",
			wantErr: "failed to add member",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := setupTestApp(t, generation.DefaultStaticResponse)
			ctx := context.Background()
			user, err := f.app.services.AuthService.CreateUser(ctx, "new@example.com")
			require.NoError(t, err)
			caller := f.viewerID
			if tt.asOwner {
				caller = f.ownerID
			}

			// Act
			err = NewProjectCommand(f.app, caller).AddMember(ctx, f.projectID, user.ID, tt.role)

			// Assert
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, f.out.String(), "as editor")
		})
	}
}

func TestProjectCommand_ListMembers(t *testing.T) {
	// Arrange
	f := setupTestApp(t, generation.DefaultStaticResponse)

	// Act
	err := NewProjectCommand(f.app, f.viewerID).ListMembers(context.Background(), f.projectID)

	// Assert
	require.NoError(t, err)
	out := f.out.String()
	assert.Contains(t, out, f.ownerID)
	assert.Contains(t, out, "owner")
	assert.Contains(t, out, f.viewerID)
	assert.Contains(t, out, "viewer")
}

func TestProjectCommand_ListMembersRequiresMembership(t *testing.T) {
	// Arrange
	f := setupTestApp(t, generation.DefaultStaticResponse)
	stranger, err := f.app.services.AuthService.CreateUser(context.Background(), "stranger@example.com")
	require.NoError(t, err)

	// Act
	err = NewProjectCommand(f.app, stranger.ID).ListMembers(context.Background(), f.projectID)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a member")
}
