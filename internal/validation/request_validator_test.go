package validation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/config"
)

const validBody = `{
	"parentTaskId": "p1",
	"projectId": "proj1",
	"taskTitle": "Launch",
	"parentStartTime": 1700000000000,
	"parentEndTime": 1700600000000,
	"existingSubtasks": [
		{"id":"s1","title":"Plan","description":"Scope it","start_time":1700000000000,"end_time":1700086400000,"locked":true},
		{"title":"Build","description":"","start_time":1700086400000,"end_time":1700172800000,"locked":false}
	],
	"prompt": "keep it short"
}`

func TestRequestValidator_Valid(t *testing.T) {
	rv := NewRequestValidator(nil)

	req, err := rv.ValidateRegenerationRequest([]byte(validBody))

	require.NoError(t, err)
	assert.Equal(t, "p1", req.ParentTaskID)
	assert.Equal(t, "proj1", req.ProjectID)
	assert.Equal(t, "Launch", req.TaskTitle)
	assert.Equal(t, int64(1700000000000), req.ParentStartTime)
	assert.Equal(t, int64(1700600000000), req.ParentEndTime)
	assert.Equal(t, "keep it short", req.Prompt)
	require.Len(t, req.ExistingSubtasks, 2)
	assert.True(t, req.ExistingSubtasks[0].Locked)
	assert.Equal(t, "s1", req.ExistingSubtasks[0].ID)
	assert.Len(t, req.LockedSubtasks(), 1)
}

func TestRequestValidator_OptionalPrompt(t *testing.T) {
	rv := NewRequestValidator(nil)
	body := `{"parentTaskId":"p","projectId":"x","taskTitle":"t","parentStartTime":0,"parentEndTime":10,"existingSubtasks":[],"prompt":null}`

	req, err := rv.ValidateRegenerationRequest([]byte(body))

	require.NoError(t, err)
	assert.Empty(t, req.Prompt)
	assert.Empty(t, req.ExistingSubtasks)
	assert.Equal(t, int64(0), req.ParentStartTime, "zero is a valid epoch")
}

func TestRequestValidator_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantType  ValidationErrorType
	}{
		{"not json", `{`, "body", ErrorTypeInvalidFormat},
		{"json null", `null`, "body", ErrorTypeInvalidFormat},
		{"json array", `[]`, "body", ErrorTypeInvalidFormat},
		{"missing parentTaskId", replace(`"parentTaskId": "p1",`, ``), "parentTaskId", ErrorTypeRequired},
		{"blank projectId", replace(`"projectId": "proj1"`, `"projectId": "  "`), "projectId", ErrorTypeRequired},
		{"numeric taskTitle", replace(`"taskTitle": "Launch"`, `"taskTitle": 12`), "taskTitle", ErrorTypeInvalidType},
		{"string start time", replace(`"parentStartTime": 1700000000000`, `"parentStartTime": "1700000000000"`), "parentStartTime", ErrorTypeInvalidType},
		{"missing end time", replace(`"parentEndTime": 1700600000000,`, ``), "parentEndTime", ErrorTypeRequired},
		{"inverted parent window", replace(`"parentEndTime": 1700600000000`, `"parentEndTime": 1600000000000`), "parentStartTime", ErrorTypeInvalidRange},
		{"existingSubtasks object", `{"parentTaskId":"p","projectId":"x","taskTitle":"t","parentStartTime":1,"parentEndTime":2,"existingSubtasks":{}}`, "existingSubtasks", ErrorTypeInvalidType},
		{"existingSubtasks missing", `{"parentTaskId":"p","projectId":"x","taskTitle":"t","parentStartTime":1,"parentEndTime":2}`, "existingSubtasks", ErrorTypeRequired},
		{"bad element names its index", replace(`"title":"Build"`, `"title":7`), "existingSubtasks[1].title", ErrorTypeInvalidType},
		{"prompt not a string", replace(`"prompt": "keep it short"`, `"prompt": ["a"]`), "prompt", ErrorTypeInvalidType},
	}

	rv := NewRequestValidator(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rv.ValidateRegenerationRequest([]byte(tt.body))

			require.Error(t, err)
			fields := FieldErrors(err)
			require.NotEmpty(t, fields)
			found := false
			for _, fe := range fields {
				if fe.Field == tt.wantField && fe.Type == tt.wantType {
					found = true
				}
			}
			assert.True(t, found, "expected %s/%s in %v", tt.wantField, tt.wantType, fields)
		})
	}
}

func TestRequestValidator_FirstInvalidElementOnly(t *testing.T) {
	rv := NewRequestValidator(nil)
	body := `{"parentTaskId":"p","projectId":"x","taskTitle":"t","parentStartTime":1,"parentEndTime":2,"existingSubtasks":[
		{"title":"ok","description":"","start_time":1,"end_time":2,"locked":true},
		{"title":"bad","description":3,"start_time":1,"end_time":2,"locked":true},
		{"locked":"also bad"}
	]}`

	_, err := rv.ValidateRegenerationRequest([]byte(body))

	fields := FieldErrors(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "existingSubtasks[1].description", fields[0].Field)
}

func TestRequestValidator_ConfiguredLimits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.MaxExistingSubtasks = 1
	cfg.Validation.MaxPromptLength = 5
	cfg.Validation.MaxTitleLength = 3
	rv := NewRequestValidator(NewValidatorWithConfig(cfg))

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"too many subtasks", validBody, "existingSubtasks"},
		{"prompt too long", fmt.Sprintf(`{"parentTaskId":"p","projectId":"x","taskTitle":"t","parentStartTime":1,"parentEndTime":2,"existingSubtasks":[],"prompt":%q}`, strings.Repeat("p", 6)), "prompt"},
		{"title too long", `{"parentTaskId":"p","projectId":"x","taskTitle":"long","parentStartTime":1,"parentEndTime":2,"existingSubtasks":[]}`, "taskTitle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rv.ValidateRegenerationRequest([]byte(tt.body))

			fields := FieldErrors(err)
			require.NotEmpty(t, fields)
			assert.True(t, hasField(fields, tt.wantField), "expected %s in %v", tt.wantField, fields)
		})
	}
}

func hasField(fields []FieldError, name string) bool {
	for _, fe := range fields {
		if fe.Field == name {
			return true
		}
	}
	return false
}

func replace(old, with string) string {
	return strings.Replace(validBody, old, with, 1)
}
