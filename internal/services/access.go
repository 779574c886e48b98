package services

import (
	"context"
	"fmt"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
	"task-planner/internal/repository/sqlite"
	"task-planner/internal/validation"
)

// access answers membership and task-scope questions against the store
type access struct {
	repo   sqlite.Repository
	mapper *domain.Mapper
}

func newAccess(repo sqlite.Repository) *access {
	return &access{repo: repo, mapper: domain.NewMapper()}
}

// requireMember returns the caller's membership. No row means the caller is not
// a member (403); any other store failure surfaces as a store error (500).
func (a *access) requireMember(ctx context.Context, callerID, projectID string) (*domain.Membership, error) {
	if callerID == "" {
		return nil, errors.NewAuthError("authentication required")
	}

	member, err := a.repo.FindMembership(ctx, projectID, callerID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewNotMemberError(projectID)
		}
		return nil, asStoreError("verify project membership", err)
	}

	membership := a.mapper.Membership.FromDatabase(*member)
	return &membership, nil
}

// requireWriter is requireMember plus a role that may change tasks
func (a *access) requireWriter(ctx context.Context, callerID, projectID, operation string) (*domain.Membership, error) {
	membership, err := a.requireMember(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}
	if !membership.Role.CanWrite() {
		return nil, errors.NewForbiddenError(operation, fmt.Sprintf("project %s", projectID)).
			WithContext("role", string(membership.Role))
	}
	return membership, nil
}

// requireTask loads a task that must exist inside the project
func (a *access) requireTask(ctx context.Context, taskID, projectID string) (*sqlite.Task, error) {
	task, err := a.repo.FindTask(ctx, taskID, projectID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewIntegrityError("parent task not found in this project", err).
				WithContext("task_id", taskID).
				WithContext("project_id", projectID)
		}
		return nil, asStoreError("find parent task", err)
	}
	return task, nil
}

// asStoreError keeps typed application errors and wraps anything else
func asStoreError(operation string, err error) error {
	if errors.IsAppError(err) {
		return err
	}
	return errors.NewStoreError(operation, err)
}

// invalid lifts validator output into a typed validation error that keeps the field details
func invalid(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return ve.AsAppError()
	}
	return errors.NewValidationError("invalid input", err)
}
