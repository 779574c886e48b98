package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/domain"
)

func TestSubtaskValidator_Check(t *testing.T) {
	sv := NewSubtaskValidator(nil)

	tests := []struct {
		name      string
		raw       string
		wantField string
		wantType  ValidationErrorType
		want      domain.Subtask
	}{
		{
			name: "valid locked with id",
			raw:  `{"id":"abc","title":"Design","description":"Sketch","start_time":1700000000000,"end_time":1700006400000,"locked":true}`,
			want: domain.Subtask{ID: "abc", Title: "Design", Description: "Sketch", StartTime: 1700000000000, EndTime: 1700006400000, Locked: true},
		},
		{
			name: "id is optional",
			raw:  `{"title":"Build","description":"","start_time":1,"end_time":2,"locked":false}`,
			want: domain.Subtask{Title: "Build", StartTime: 1, EndTime: 2},
		},
		{
			name: "null id means absent",
			raw:  `{"id":null,"title":"Build","description":"d","start_time":1,"end_time":2,"locked":false}`,
			want: domain.Subtask{Title: "Build", Description: "d", StartTime: 1, EndTime: 2},
		},
		{
			name: "integral exponent number accepted",
			raw:  `{"title":"Build","description":"d","start_time":1.7e12,"end_time":1.7e12,"locked":false}`,
			want: domain.Subtask{Title: "Build", Description: "d", StartTime: 1700000000000, EndTime: 1700000000000},
		},
		{"not an object", `[1,2]`, "s", ErrorTypeInvalidType, domain.Subtask{}},
		{"null element", `null`, "s", ErrorTypeInvalidType, domain.Subtask{}},
		{"numeric id", `{"id":7,"title":"t","description":"d","start_time":1,"end_time":2,"locked":false}`, "s.id", ErrorTypeInvalidType, domain.Subtask{}},
		{"missing title", `{"description":"d","start_time":1,"end_time":2,"locked":false}`, "s.title", ErrorTypeRequired, domain.Subtask{}},
		{"blank title", `{"title":"  ","description":"d","start_time":1,"end_time":2,"locked":false}`, "s.title", ErrorTypeRequired, domain.Subtask{}},
		{"title not a string", `{"title":5,"description":"d","start_time":1,"end_time":2,"locked":false}`, "s.title", ErrorTypeInvalidType, domain.Subtask{}},
		{"missing description", `{"title":"t","start_time":1,"end_time":2,"locked":false}`, "s.description", ErrorTypeRequired, domain.Subtask{}},
		{"start_time as string", `{"title":"t","description":"d","start_time":"1","end_time":2,"locked":false}`, "s.start_time", ErrorTypeInvalidType, domain.Subtask{}},
		{"fractional end_time", `{"title":"t","description":"d","start_time":1,"end_time":2.5,"locked":false}`, "s.end_time", ErrorTypeInvalidValue, domain.Subtask{}},
		{"start_time just past int64", `{"title":"t","description":"d","start_time":9223372036854775808,"end_time":9223372036854775808,"locked":false}`, "s.start_time", ErrorTypeInvalidValue, domain.Subtask{}},
		{"end_time far past int64", `{"title":"t","description":"d","start_time":1,"end_time":9.3e18,"locked":false}`, "s.end_time", ErrorTypeInvalidValue, domain.Subtask{}},
		{"start after end", `{"title":"t","description":"d","start_time":3,"end_time":2,"locked":false}`, "s.start_time", ErrorTypeInvalidRange, domain.Subtask{}},
		{"missing locked", `{"title":"t","description":"d","start_time":1,"end_time":2}`, "s.locked", ErrorTypeRequired, domain.Subtask{}},
		{"locked as string", `{"title":"t","description":"d","start_time":1,"end_time":2,"locked":"yes"}`, "s.locked", ErrorTypeInvalidType, domain.Subtask{}},
		{"unrelated object", `{"foo":"bar"}`, "s.title", ErrorTypeRequired, domain.Subtask{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sv.Check("s", json.RawMessage(tt.raw))

			if tt.wantField == "" {
				require.True(t, result.OK(), "unexpected error: %v", result.Err)
				assert.Equal(t, tt.want, result.Subtask)
				return
			}

			require.False(t, result.OK())
			assert.Equal(t, tt.wantField, result.Err.Field)
			assert.Equal(t, tt.wantType, result.Err.Type)
			assert.True(t, strings.HasPrefix(result.Err.Message, tt.wantField), "message %q should name the field", result.Err.Message)
		})
	}
}

func TestSubtaskValidator_TitleLengthFromConfig(t *testing.T) {
	sv := NewSubtaskValidator(NewValidator())

	long := strings.Repeat("x", 256)
	result := sv.Check("s", json.RawMessage(`{"title":"`+long+`","description":"","start_time":1,"end_time":1,"locked":false}`))

	require.False(t, result.OK())
	assert.Equal(t, ErrorTypeInvalidLength, result.Err.Type)
}

func TestSubtaskValidator_CheckAll(t *testing.T) {
	sv := NewSubtaskValidator(nil)
	raws := []json.RawMessage{
		json.RawMessage(`{"title":"a","description":"","start_time":1,"end_time":2,"locked":true}`),
		json.RawMessage(`{"foo":"bar"}`),
		json.RawMessage(`{"title":"c","description":"","start_time":2,"end_time":3,"locked":false}`),
		json.RawMessage(`"nope"`),
	}

	results := sv.CheckAll("subtasks", raws)

	require.Len(t, results, 4)
	assert.True(t, results[0].OK())
	assert.Equal(t, "subtasks[1].title", results[1].Err.Field)
	assert.True(t, results[2].OK())
	assert.Equal(t, "subtasks[3]", results[3].Err.Field)

	valid := Valid(results)
	require.Len(t, valid, 2)
	assert.Equal(t, "a", valid[0].Title)
	assert.Equal(t, "c", valid[1].Title)

	first := FirstInvalid(results)
	require.NotNil(t, first)
	assert.Equal(t, "subtasks[1].title", first.Field)

	assert.Nil(t, FirstInvalid(results[:1]))
}
