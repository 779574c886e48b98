package domain

import "time"

// HierarchyType distinguishes the three levels of the task tree.
type HierarchyType string

const (
	HierarchyGoal    HierarchyType = "goal"
	HierarchyTask    HierarchyType = "task"
	HierarchySubtask HierarchyType = "subtask"
)

// IsValid reports whether h is one of the known hierarchy levels.
func (h HierarchyType) IsValid() bool {
	switch h {
	case HierarchyGoal, HierarchyTask, HierarchySubtask:
		return true
	}
	return false
}

// StatusTodo is the status stamped on freshly generated subtasks.
const StatusTodo = "todo"

// Task represents a goal, task or subtask in the domain model.
// This is a pure domain model without database-specific concerns.
// Dates use the persisted calendar form YYYY-MM-DD (UTC).
type Task struct {
	ID            string
	ProjectID     string
	ParentTaskID  *string
	Title         string
	Description   string
	StartDate     string
	EndDate       string
	Status        string
	HierarchyType HierarchyType
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTask creates a new Task with the given title under a project.
func NewTask(projectID, title string, hierarchyType HierarchyType) Task {
	return Task{
		ProjectID:     projectID,
		Title:         title,
		Status:        StatusTodo,
		HierarchyType: hierarchyType,
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	if t.Title == "" || t.ProjectID == "" {
		return false
	}
	if t.StartDate != "" && t.EndDate != "" && t.StartDate > t.EndDate {
		return false
	}
	return true
}

// IsRoot reports whether the task has no parent.
func (t Task) IsRoot() bool {
	return t.ParentTaskID == nil
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
