package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"task-planner/internal/domain"
)

// SubtaskResult is the outcome of checking one raw subtask element.
// Exactly one of Subtask (when Err is nil) or Err is meaningful.
type SubtaskResult struct {
	Subtask domain.Subtask
	Err     *FieldError
}

// OK reports whether the element passed the shape check
func (r SubtaskResult) OK() bool {
	return r.Err == nil
}

// SubtaskValidator checks the subtask wire shape:
// { id?: string, title: string, description: string, start_time: number, end_time: number, locked: boolean }
type SubtaskValidator struct {
	validator *Validator
}

// NewSubtaskValidator creates a new subtask validator
func NewSubtaskValidator(v *Validator) *SubtaskValidator {
	if v == nil {
		v = NewValidator()
	}
	return &SubtaskValidator{validator: v}
}

// Check validates a single raw element. path prefixes field names in errors,
// e.g. "existingSubtasks[2]".
func (sv *SubtaskValidator) Check(path string, raw json.RawMessage) SubtaskResult {
	fields, fe := decodeObject(path, raw)
	if fe != nil {
		return SubtaskResult{Err: fe}
	}

	var s domain.Subtask

	if v, ok := fields["id"]; ok && v != nil {
		id, isString := v.(string)
		if !isString {
			return failed(path+".id", ErrorTypeInvalidType, "must be a string", v)
		}
		s.ID = id
	}

	title, fe := requireString(path+".title", fields, "title")
	if fe != nil {
		return SubtaskResult{Err: fe}
	}
	if !sv.validator.IsNonEmptyString(title) {
		return failed(path+".title", ErrorTypeRequired, "must not be empty", title)
	}
	if limit := sv.validator.MaxTitleLength(); !sv.validator.IsValidStringLength(title, 1, limit) {
		return failed(path+".title", ErrorTypeInvalidLength, fmt.Sprintf("must be at most %d characters long", limit), title)
	}
	s.Title = title

	description, fe := requireString(path+".description", fields, "description")
	if fe != nil {
		return SubtaskResult{Err: fe}
	}
	if limit := sv.validator.MaxDescriptionLength(); !sv.validator.IsValidStringLength(description, 0, limit) {
		return failed(path+".description", ErrorTypeInvalidLength, fmt.Sprintf("must be at most %d characters long", limit), description)
	}
	s.Description = description

	start, fe := requireMillis(path+".start_time", fields, "start_time")
	if fe != nil {
		return SubtaskResult{Err: fe}
	}
	end, fe := requireMillis(path+".end_time", fields, "end_time")
	if fe != nil {
		return SubtaskResult{Err: fe}
	}
	if start > end {
		return failed(path+".start_time", ErrorTypeInvalidRange, "start_time must not be after end_time", start)
	}
	s.StartTime = start
	s.EndTime = end

	lv, ok := fields["locked"]
	if !ok || lv == nil {
		return failed(path+".locked", ErrorTypeRequired, "is required", nil)
	}
	locked, isBool := lv.(bool)
	if !isBool {
		return failed(path+".locked", ErrorTypeInvalidType, "must be a boolean", lv)
	}
	s.Locked = locked

	return SubtaskResult{Subtask: s}
}

// CheckAll validates every element of an array, naming each by its index under path
func (sv *SubtaskValidator) CheckAll(path string, raws []json.RawMessage) []SubtaskResult {
	results := make([]SubtaskResult, len(raws))
	for i, raw := range raws {
		results[i] = sv.Check(fmt.Sprintf("%s[%d]", path, i), raw)
	}
	return results
}

// Valid returns the subtasks that passed, preserving order
func Valid(results []SubtaskResult) []domain.Subtask {
	subtasks := make([]domain.Subtask, 0, len(results))
	for _, r := range results {
		if r.OK() {
			subtasks = append(subtasks, r.Subtask)
		}
	}
	return subtasks
}

// FirstInvalid returns the first failing result's error, or nil
func FirstInvalid(results []SubtaskResult) *FieldError {
	for _, r := range results {
		if !r.OK() {
			return r.Err
		}
	}
	return nil
}

func failed(field string, errorType ValidationErrorType, reason string, value interface{}) SubtaskResult {
	return SubtaskResult{Err: newFieldError(field, errorType, reason, value)}
}

func newFieldError(field string, errorType ValidationErrorType, reason string, value interface{}) *FieldError {
	return &FieldError{
		Field:   field,
		Type:    errorType,
		Message: fmt.Sprintf("%s %s", field, reason),
		Value:   value,
	}
}

// decodeObject decodes raw as a JSON object keeping numbers as json.Number
func decodeObject(path string, raw json.RawMessage) (map[string]interface{}, *FieldError) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, newFieldError(path, ErrorTypeInvalidType, "must be an object", string(raw))
	}
	return fields, nil
}

func requireString(field string, fields map[string]interface{}, key string) (string, *FieldError) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", newFieldError(field, ErrorTypeRequired, "is required", nil)
	}
	s, isString := v.(string)
	if !isString {
		return "", newFieldError(field, ErrorTypeInvalidType, "must be a string", v)
	}
	return s, nil
}

func requireMillis(field string, fields map[string]interface{}, key string) (int64, *FieldError) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, newFieldError(field, ErrorTypeRequired, "is required", nil)
	}
	n, isNumber := v.(json.Number)
	if !isNumber {
		return 0, newFieldError(field, ErrorTypeInvalidType, "must be a number (Unix ms)", v)
	}
	ms, err := numberToMillis(n)
	if err != nil {
		return 0, newFieldError(field, ErrorTypeInvalidValue, "must be a whole number of milliseconds", n.String())
	}
	return ms, nil
}

// numberToMillis accepts integers and integral floats such as 1.7e12
func numberToMillis(n json.Number) (int64, error) {
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f >= 1<<63 || f < math.MinInt64 {
		return 0, fmt.Errorf("not an integral value: %s", n)
	}
	return int64(f), nil
}
