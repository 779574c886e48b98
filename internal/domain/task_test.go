package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name          string
		projectID     string
		title         string
		hierarchyType HierarchyType
		expected      Task
	}{
		{
			name:          "creates goal with todo status",
			projectID:     "p1",
			title:         "Ship v1",
			hierarchyType: HierarchyGoal,
			expected:      Task{ProjectID: "p1", Title: "Ship v1", Status: StatusTodo, HierarchyType: HierarchyGoal},
		},
		{
			name:          "creates subtask",
			projectID:     "p1",
			title:         "Write tests",
			hierarchyType: HierarchySubtask,
			expected:      Task{ProjectID: "p1", Title: "Write tests", Status: StatusTodo, HierarchyType: HierarchySubtask},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewTask(tt.projectID, tt.title, tt.hierarchyType)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTask_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected bool
	}{
		{
			name:     "valid task with title and project",
			task:     Task{Title: "Valid Task", ProjectID: "p1"},
			expected: true,
		},
		{
			name:     "invalid task with empty title",
			task:     Task{Title: "", ProjectID: "p1"},
			expected: false,
		},
		{
			name:     "invalid task without project",
			task:     Task{Title: "Valid Task"},
			expected: false,
		},
		{
			name:     "valid task with same start and end",
			task:     Task{Title: "T", ProjectID: "p1", StartDate: "2024-01-01", EndDate: "2024-01-01"},
			expected: true,
		},
		{
			name:     "invalid task ending before it starts",
			task:     Task{Title: "T", ProjectID: "p1", StartDate: "2024-01-02", EndDate: "2024-01-01"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.task.IsValid()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestTask_IsRoot(t *testing.T) {
	parent := "parent"
	assert.True(t, Task{Title: "goal"}.IsRoot())
	assert.False(t, Task{Title: "sub", ParentTaskID: &parent}.IsRoot())
}

func TestTask_String(t *testing.T) {
	assert.Equal(t, "My Task", Task{Title: "My Task"}.String())
	assert.Equal(t, "", Task{}.String())
}

func TestHierarchyType_IsValid(t *testing.T) {
	assert.True(t, HierarchyGoal.IsValid())
	assert.True(t, HierarchyTask.IsValid())
	assert.True(t, HierarchySubtask.IsValid())
	assert.False(t, HierarchyType("epic").IsValid())
	assert.False(t, HierarchyType("").IsValid())
}

func TestRole(t *testing.T) {
	tests := []struct {
		role          Role
		valid         bool
		manageMembers bool
		write         bool
	}{
		{RoleOwner, true, true, true},
		{RoleEditor, true, false, true},
		{RoleViewer, true, false, false},
		{Role("admin"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.role.IsValid())
			assert.Equal(t, tt.manageMembers, tt.role.CanManageMembers())
			assert.Equal(t, tt.write, tt.role.CanWrite())
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}
