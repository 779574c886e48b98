package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"task-planner/internal/domain"
)

// RequestValidator validates subtask regeneration request bodies
type RequestValidator struct {
	validator *Validator
	subtasks  *SubtaskValidator
}

// NewRequestValidator creates a new request validator
func NewRequestValidator(v *Validator) *RequestValidator {
	if v == nil {
		v = NewValidator()
	}
	return &RequestValidator{
		validator: v,
		subtasks:  NewSubtaskValidator(v),
	}
}

// regenerationBody mirrors the JSON body with every field left raw so that
// type errors can be reported per field.
type regenerationBody struct {
	ParentTaskID     json.RawMessage `json:"parentTaskId"`
	ProjectID        json.RawMessage `json:"projectId"`
	TaskTitle        json.RawMessage `json:"taskTitle"`
	ParentStartTime  json.RawMessage `json:"parentStartTime"`
	ParentEndTime    json.RawMessage `json:"parentEndTime"`
	ExistingSubtasks json.RawMessage `json:"existingSubtasks"`
	Prompt           json.RawMessage `json:"prompt"`
}

// ValidateRegenerationRequest parses and validates a regeneration request body.
// The first invalid element of existingSubtasks rejects the whole request.
func (rv *RequestValidator) ValidateRegenerationRequest(body []byte) (domain.RegenerationRequest, error) {
	var req domain.RegenerationRequest
	validationError := NewValidationError()

	var raw regenerationBody
	if err := json.Unmarshal(body, &raw); err != nil || isNull(bytes.TrimSpace(body)) {
		validationError.AddInvalidFormatError("body", nil, "a JSON object")
		return req, validationError
	}

	req.ParentTaskID = rv.requiredString(validationError, "parentTaskId", raw.ParentTaskID)
	req.ProjectID = rv.requiredString(validationError, "projectId", raw.ProjectID)
	req.TaskTitle = rv.requiredString(validationError, "taskTitle", raw.TaskTitle)
	if limit := rv.validator.MaxTitleLength(); req.TaskTitle != "" && !rv.validator.IsValidStringLength(req.TaskTitle, 1, limit) {
		validationError.AddInvalidLengthError("taskTitle", req.TaskTitle, 0, limit)
	}

	start, startOK := rv.requiredMillis(validationError, "parentStartTime", raw.ParentStartTime)
	end, endOK := rv.requiredMillis(validationError, "parentEndTime", raw.ParentEndTime)
	if startOK && endOK && start > end {
		validationError.AddInvalidRangeError("parentStartTime", start, "must not be after parentEndTime")
	}
	req.ParentStartTime = start
	req.ParentEndTime = end

	if len(raw.Prompt) > 0 && !isNull(raw.Prompt) {
		var prompt string
		if err := json.Unmarshal(raw.Prompt, &prompt); err != nil {
			validationError.AddInvalidTypeError("prompt", string(raw.Prompt), "a string")
		} else if limit := rv.validator.MaxPromptLength(); len([]rune(prompt)) > limit {
			validationError.AddInvalidLengthError("prompt", prompt, 0, limit)
		} else {
			req.Prompt = prompt
		}
	}

	if subtasks, ok := rv.existingSubtasks(validationError, raw.ExistingSubtasks); ok {
		req.ExistingSubtasks = subtasks
	}

	if validationError.HasErrors() {
		return domain.RegenerationRequest{}, validationError
	}

	return req, nil
}

func (rv *RequestValidator) existingSubtasks(validationError *ValidationError, raw json.RawMessage) ([]domain.Subtask, bool) {
	const field = "existingSubtasks"

	if len(raw) == 0 || isNull(raw) {
		validationError.AddRequiredError(field)
		return nil, false
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		validationError.AddInvalidTypeError(field, string(raw), "an array")
		return nil, false
	}

	if limit := rv.validator.MaxExistingSubtasks(); len(elements) > limit {
		validationError.AddInvalidValueError(field, len(elements), fmt.Sprintf("at most %d subtasks are allowed", limit))
		return nil, false
	}

	results := rv.subtasks.CheckAll(field, elements)
	if fe := FirstInvalid(results); fe != nil {
		validationError.AddFieldError(*fe)
		return nil, false
	}

	return Valid(results), true
}

func (rv *RequestValidator) requiredString(validationError *ValidationError, field string, raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		validationError.AddRequiredError(field)
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		validationError.AddInvalidTypeError(field, string(raw), "a string")
		return ""
	}

	s = rv.validator.TrimAndValidateString(s)
	if !rv.validator.IsNonEmptyString(s) {
		validationError.AddRequiredError(field)
		return ""
	}
	return s
}

func (rv *RequestValidator) requiredMillis(validationError *ValidationError, field string, raw json.RawMessage) (int64, bool) {
	if len(raw) == 0 || isNull(raw) {
		validationError.AddRequiredError(field)
		return 0, false
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil || raw[0] == '"' {
		validationError.AddInvalidTypeError(field, string(raw), "a number (Unix ms)")
		return 0, false
	}

	ms, err := numberToMillis(n)
	if err != nil {
		validationError.AddInvalidValueError(field, n.String(), "must be a whole number of milliseconds")
		return 0, false
	}
	return ms, true
}

func isNull(raw []byte) bool {
	return string(raw) == "null"
}
