package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
	"task-planner/internal/repository/sqlite"
	"task-planner/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	access        *access
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository, validator *validation.Validator) TaskService {
	return &taskServiceImpl{
		repo:          repo,
		access:        newAccess(repo),
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(validator),
	}
}

// hierarchyRank orders levels so a child always sits below its parent
var hierarchyRank = map[domain.HierarchyType]int{
	domain.HierarchyGoal:    0,
	domain.HierarchyTask:    1,
	domain.HierarchySubtask: 2,
}

// CreateTask creates a goal, task or subtask inside a project
func (t *taskServiceImpl) CreateTask(ctx context.Context, callerID string, task domain.Task) (*domain.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if task.Status == "" {
		task.Status = domain.StatusTodo
	}
	if task.ParentTaskID != nil && *task.ParentTaskID == "" {
		task.ParentTaskID = nil
	}
	if err := t.taskValidator.ValidateTaskForCreation(task); err != nil {
		return nil, invalid(err)
	}

	if _, err := t.access.requireWriter(ctx, callerID, task.ProjectID, "create task"); err != nil {
		return nil, err
	}

	if task.ParentTaskID != nil {
		parent, err := t.repo.FindTask(ctx, *task.ParentTaskID, task.ProjectID)
		if err != nil {
			return nil, err
		}
		if hierarchyRank[domain.HierarchyType(parent.HierarchyType)] >= hierarchyRank[task.HierarchyType] {
			return nil, errors.NewValidationError(
				"a "+string(task.HierarchyType)+" cannot be nested under a "+parent.HierarchyType, nil)
		}
	}

	task.ID = domain.NewID()
	task.CreatedBy = callerID

	dbTask := t.mapper.Task.ToDatabase(task)
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	created := t.mapper.Task.FromDatabase(dbTask)
	return &created, nil
}

// ListSubtasks lists the direct children of a task, ordered by start date
func (t *taskServiceImpl) ListSubtasks(ctx context.Context, callerID, projectID, parentTaskID string) ([]domain.SubtaskRecord, error) {
	if _, err := t.access.requireMember(ctx, callerID, projectID); err != nil {
		return nil, err
	}
	if _, err := t.repo.FindTask(ctx, parentTaskID, projectID); err != nil {
		return nil, err
	}

	dbTasks, err := t.repo.ListSubtasks(ctx, parentTaskID, projectID)
	if err != nil {
		return nil, err
	}
	return t.mapper.SubtaskRecord.FromDatabaseSlice(dbTasks), nil
}

// UpdateStatus changes a task's status token
func (t *taskServiceImpl) UpdateStatus(ctx context.Context, callerID, projectID, taskID, status string) error {
	status = strings.TrimSpace(status)
	if err := t.taskValidator.ValidateStatus(status); err != nil {
		return invalid(err)
	}

	if _, err := t.access.requireWriter(ctx, callerID, projectID, "update task status"); err != nil {
		return err
	}

	return t.repo.UpdateTaskStatus(ctx, taskID, projectID, status)
}

// ConfirmSubtasks upserts a proposal under its parent in one transaction
func (t *taskServiceImpl) ConfirmSubtasks(ctx context.Context, callerID, projectID, parentTaskID string, records []domain.SubtaskRecord) error {
	const op = "services.ConfirmSubtasks"

	if _, err := t.access.requireWriter(ctx, callerID, projectID, "confirm subtasks"); err != nil {
		return err
	}
	if _, err := t.access.requireTask(ctx, parentTaskID, projectID); err != nil {
		return err
	}
	if err := t.taskValidator.ValidateSubtaskRecords(parentTaskID, projectID, records); err != nil {
		return invalid(err)
	}

	dbTasks := make([]*sqlite.Task, 0, len(records))
	for _, record := range records {
		record.ID = domain.ResolveID(record.ID)
		if record.Status == "" {
			record.Status = domain.StatusTodo
		}
		dbTask := t.mapper.SubtaskRecord.ToDatabase(record, callerID)
		dbTasks = append(dbTasks, &dbTask)
	}

	if err := t.repo.UpsertTasks(ctx, dbTasks); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"operation":      op,
		"project_id":     projectID,
		"parent_task_id": parentTaskID,
		"count":          len(dbTasks),
	}).Info("subtasks confirmed")
	return nil
}

// Upserter binds callerID so a Breakdown can confirm through the service checks
func (t *taskServiceImpl) Upserter(callerID string) domain.SubtaskUpserter {
	return &callerUpserter{service: t, callerID: callerID}
}

type callerUpserter struct {
	service  *taskServiceImpl
	callerID string
}

func (u *callerUpserter) UpsertSubtasks(ctx context.Context, parentTaskID, projectID string, records []domain.SubtaskRecord) error {
	return u.service.ConfirmSubtasks(ctx, u.callerID, projectID, parentTaskID, records)
}
