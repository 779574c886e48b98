package services

import (
	"context"
	stderrors "errors"
	"time"

	log "github.com/sirupsen/logrus"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
	"task-planner/internal/generation"
	"task-planner/internal/prompts"
	"task-planner/internal/repository/sqlite"
	"task-planner/internal/validation"
)

// regenerationServiceImpl implements the RegenerationService interface
type regenerationServiceImpl struct {
	access           *access
	provider         generation.Provider
	timeout          time.Duration
	requestValidator *validation.RequestValidator
	subtaskValidator *validation.SubtaskValidator
}

// NewRegenerationService creates a new RegenerationService instance.
// timeout bounds each provider call; zero means no extra bound.
func NewRegenerationService(repo sqlite.Repository, provider generation.Provider, validator *validation.Validator, timeout time.Duration) RegenerationService {
	return &regenerationServiceImpl{
		access:           newAccess(repo),
		provider:         provider,
		timeout:          timeout,
		requestValidator: validation.NewRequestValidator(validator),
		subtaskValidator: validation.NewSubtaskValidator(validator),
	}
}

// Regenerate validates the raw body before anything else touches the store or the model
func (s *regenerationServiceImpl) Regenerate(ctx context.Context, callerID string, body []byte) (*RegenerationResult, error) {
	req, err := s.requestValidator.ValidateRegenerationRequest(body)
	if err != nil {
		return nil, invalid(err)
	}
	return s.RegenerateRequest(ctx, callerID, req)
}

// RegenerateRequest authorizes the caller, asks the model and normalizes its answer
func (s *regenerationServiceImpl) RegenerateRequest(ctx context.Context, callerID string, req domain.RegenerationRequest) (*RegenerationResult, error) {
	const op = "services.RegenerateRequest"
	logger := log.WithFields(log.Fields{
		"operation":      op,
		"project_id":     req.ProjectID,
		"parent_task_id": req.ParentTaskID,
	})

	if _, err := s.access.requireMember(ctx, callerID, req.ProjectID); err != nil {
		return nil, err
	}
	if _, err := s.access.requireTask(ctx, req.ParentTaskID, req.ProjectID); err != nil {
		return nil, err
	}

	locked := req.LockedSubtasks()
	content, err := s.complete(ctx, prompts.BuildSubtaskPrompt(req))
	if err != nil {
		return nil, err
	}

	raws, err := parseSubtaskArray(content)
	if err != nil {
		logger.WithError(err).Warn("model output could not be parsed")
		return nil, err
	}

	results := s.subtaskValidator.CheckAll("subtasks", raws)
	valid := validation.Valid(results)
	if dropped := len(raws) - len(valid); dropped > 0 {
		logger.WithFields(log.Fields{
			"dropped":     dropped,
			"first_error": validation.FirstInvalid(results).Error(),
		}).Warn("dropped invalid subtasks from model output")
	}
	if len(raws) > 0 && len(valid) == 0 {
		return nil, errors.NewUnprocessableError("AI generated subtasks but none were in the correct format.")
	}

	reconciled := reconcileLocked(req.ParentStartTime, req.ParentEndTime, locked, valid)
	records := toRecords(reconciled, req.ParentTaskID, req.ProjectID)

	logger.WithFields(log.Fields{
		"locked":   len(locked),
		"returned": len(records),
	}).Info("subtasks regenerated")

	return &RegenerationResult{
		Message:  RegenerationMessage,
		Subtasks: records,
	}, nil
}

// complete calls the provider under the configured deadline
func (s *regenerationServiceImpl) complete(ctx context.Context, userPrompt string) (string, error) {
	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	content, err := s.provider.Complete(callCtx, prompts.SystemInstruction, userPrompt, generation.Options{JSONMode: true})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", errors.NewTimeoutError("generate subtasks", s.timeout.String())
		}
		if errors.IsAppError(err) {
			return "", err
		}
		return "", errors.NewGenerationError("provider call failed", err)
	}

	if content == "" {
		return "", errors.NewGenerationError("AI response content was empty", nil)
	}
	return content, nil
}
