package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"task-planner/internal/domain"
)

func request() domain.RegenerationRequest {
	return domain.RegenerationRequest{
		ParentTaskID:    "parent",
		ProjectID:       "project",
		TaskTitle:       "Launch website",
		ParentStartTime: 1700000000000,
		ParentEndTime:   1700600000000,
		ExistingSubtasks: []domain.Subtask{
			{ID: "locked-1", Title: "Write copy", Description: "Landing page text", StartTime: 1700000000000, EndTime: 1700086400000, Locked: true},
			{ID: "loose-1", Title: "Pick fonts", Description: "Unlocked work", StartTime: 1700086400000, EndTime: 1700172800000},
		},
	}
}

func TestBuildSubtaskPrompt(t *testing.T) {
	prompt := BuildSubtaskPrompt(request())

	assert.Contains(t, prompt, `Task Title: "Launch website"`)
	assert.Contains(t, prompt, "Parent Start Time (Unix ms): 1700000000000")
	assert.Contains(t, prompt, "Parent End Time (Unix ms): 1700600000000")
	assert.Contains(t, prompt, "timeframe (1700000000000 to 1700600000000)")
	for i := 1; i <= 5; i++ {
		assert.Contains(t, prompt, "\n"+string(rune('0'+i))+". ")
	}
	assert.Contains(t, prompt, `"new-subtask-1"`)
	assert.Contains(t, prompt, `"subtasks"`)
	assert.NotContains(t, prompt, "additional preference")
}

func TestBuildSubtaskPrompt_OnlyLockedSubtasksShown(t *testing.T) {
	prompt := BuildSubtaskPrompt(request())

	assert.Contains(t, prompt, `"id": "locked-1"`)
	assert.Contains(t, prompt, `"title": "Write copy"`)
	assert.Contains(t, prompt, `"locked": true`)
	assert.NotContains(t, prompt, "Pick fonts")
}

func TestBuildSubtaskPrompt_NoLocked(t *testing.T) {
	req := request()
	req.ExistingSubtasks = nil

	prompt := BuildSubtaskPrompt(req)

	assert.Contains(t, prompt, "Existing Locked Subtasks (if any):\n[]\n")
}

func TestBuildSubtaskPrompt_UserPreference(t *testing.T) {
	req := request()
	req.Prompt = "  Focus on QA  "

	prompt := BuildSubtaskPrompt(req)

	assert.Contains(t, prompt, `User's additional preference (lower priority than the constraints above): "Focus on QA"`)
	assert.Less(t, strings.Index(prompt, "Constraints:"), strings.Index(prompt, "additional preference"))
}

func TestBuildSubtaskPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, BuildSubtaskPrompt(request()), BuildSubtaskPrompt(request()))
}
