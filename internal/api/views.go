package api

import (
	"time"

	"task-planner/internal/domain"
)

type projectView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func newProjectView(p domain.Project) projectView {
	return projectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
	}
}

type memberView struct {
	ProjectID string      `json:"project_id"`
	UserID    string      `json:"user_id"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func newMemberView(m domain.Membership) memberView {
	return memberView{
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}

type taskView struct {
	ID            string               `json:"id"`
	ProjectID     string               `json:"project_id"`
	ParentTaskID  *string              `json:"parent_task_id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	Status        string               `json:"status"`
	HierarchyType domain.HierarchyType `json:"hierarchy_type"`
	CreatedBy     string               `json:"created_by"`
	CreatedAt     time.Time            `json:"created_at"`
}

func newTaskView(t domain.Task) taskView {
	return taskView{
		ID:            t.ID,
		ProjectID:     t.ProjectID,
		ParentTaskID:  t.ParentTaskID,
		Title:         t.Title,
		Description:   t.Description,
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		Status:        t.Status,
		HierarchyType: t.HierarchyType,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
	}
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type addMemberRequest struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

type createTaskRequest struct {
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	StartDate     string               `json:"start_date"`
	EndDate       string               `json:"end_date"`
	Status        string               `json:"status"`
	HierarchyType domain.HierarchyType `json:"hierarchy_type"`
	ParentTaskID  *string              `json:"parent_task_id"`
}

type confirmRequest struct {
	Subtasks []domain.SubtaskRecord `json:"subtasks"`
}

type statusRequest struct {
	Status string `json:"status"`
}
