package validation

import (
	"fmt"

	"task-planner/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator(v *Validator) *TaskValidator {
	if v == nil {
		v = NewValidator()
	}
	return &TaskValidator{
		validator: v,
	}
}

// ValidateTitle validates a task title for creation or update
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()
	tv.checkTitle(validationError, "title", title)

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTaskForCreation validates a task built from user input.
// Subtasks must name a parent; goals must not.
func (tv *TaskValidator) ValidateTaskForCreation(task domain.Task) error {
	validationError := NewValidationError()

	tv.checkTitle(validationError, "title", task.Title)

	if limit := tv.validator.MaxDescriptionLength(); !tv.validator.IsValidStringLength(task.Description, 0, limit) {
		validationError.AddInvalidLengthError("description", task.Description, 0, limit)
	}

	if !tv.validator.IsNonEmptyString(task.ProjectID) {
		validationError.AddRequiredError("project_id")
	}

	if !task.HierarchyType.IsValid() {
		validationError.AddInvalidValueError("hierarchy_type", task.HierarchyType, "must be one of goal, task, subtask")
	}

	switch {
	case task.HierarchyType == domain.HierarchyGoal && task.ParentTaskID != nil:
		validationError.AddInvalidValueError("parent_task_id", *task.ParentTaskID, "goals cannot have a parent")
	case task.HierarchyType == domain.HierarchySubtask && (task.ParentTaskID == nil || *task.ParentTaskID == ""):
		validationError.AddRequiredError("parent_task_id")
	}

	if !tv.validator.IsValidDate(task.StartDate) {
		validationError.AddInvalidFormatError("start_date", task.StartDate, "YYYY-MM-DD")
	}
	if !tv.validator.IsValidDate(task.EndDate) {
		validationError.AddInvalidFormatError("end_date", task.EndDate, "YYYY-MM-DD")
	}
	if !tv.validator.IsValidDateRange(task.StartDate, task.EndDate) {
		validationError.AddInvalidRangeError("start_date", task.StartDate, "must not be after end_date")
	}

	if task.Status != "" && !tv.validator.IsValidStatus(task.Status) {
		validationError.AddInvalidFormatError("status", task.Status, "a lower-case token such as in_progress")
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateStatus validates a status token
func (tv *TaskValidator) ValidateStatus(status string) error {
	if !tv.validator.IsValidStatus(status) {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("status", status, "a lower-case token such as in_progress")
		return validationError
	}
	return nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id string) error {
	if !tv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidFormatError("task_id", id, "UUID")
		return validationError
	}
	return nil
}

// ValidateSubtaskRecords checks records submitted for confirmation against
// the parent and project they are being confirmed under.
func (tv *TaskValidator) ValidateSubtaskRecords(parentTaskID, projectID string, records []domain.SubtaskRecord) error {
	validationError := NewValidationError()

	for i, record := range records {
		field := func(name string) string { return recordField(i, name) }

		if record.ID != "" && !tv.validator.IsValidID(record.ID) {
			validationError.AddInvalidFormatError(field("id"), record.ID, "UUID")
		}
		tv.checkTitle(validationError, field("title"), record.Title)
		if !tv.validator.IsValidDate(record.StartTime) || record.StartTime == "" {
			validationError.AddInvalidFormatError(field("start_time"), record.StartTime, "YYYY-MM-DD")
		}
		if !tv.validator.IsValidDate(record.EndTime) || record.EndTime == "" {
			validationError.AddInvalidFormatError(field("end_time"), record.EndTime, "YYYY-MM-DD")
		}
		if !tv.validator.IsValidDateRange(record.StartTime, record.EndTime) {
			validationError.AddInvalidRangeError(field("start_time"), record.StartTime, "must not be after end_time")
		}
		if record.ParentTaskID != parentTaskID {
			validationError.AddInvalidValueError(field("parent_task_id"), record.ParentTaskID, "does not match the parent task")
		}
		if record.ProjectID != projectID {
			validationError.AddInvalidValueError(field("project_id"), record.ProjectID, "does not match the project")
		}

		if validationError.HasErrors() {
			return validationError
		}
	}

	return nil
}

// GetValidTitle returns a cleaned title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}

func (tv *TaskValidator) checkTitle(validationError *ValidationError, field, title string) {
	trimmed := tv.validator.TrimAndValidateString(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError(field)
		return
	}
	if limit := tv.validator.MaxTitleLength(); !tv.validator.IsValidStringLength(trimmed, 1, limit) {
		validationError.AddInvalidLengthError(field, trimmed, 1, limit)
	}
}

func recordField(i int, name string) string {
	return fmt.Sprintf("subtasks[%d].%s", i, name)
}
