package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"task-planner/internal/domain"
)

// SystemInstruction frames the assistant role for subtask generation
const SystemInstruction = "You are an expert project manager and assistant, capable of breaking down large tasks into smaller, manageable subtasks with accurate timelines."

const outputExample = `{
  "subtasks": [
    {
      "id": "existing-locked-subtask-id-1",
      "title": "Existing Locked Task",
      "description": "This task was preserved.",
      "start_time": 1709251200000,
      "end_time": 1709424000000,
      "locked": true
    },
    {
      "id": "new-subtask-1",
      "title": "First New Subtask",
      "description": "Description for the first new task.",
      "start_time": 1709424000000,
      "end_time": 1709596800000,
      "locked": false
    }
  ]
}`

// BuildSubtaskPrompt renders the user prompt for a regeneration request.
// Only locked subtasks are shown to the model.
func BuildSubtaskPrompt(req domain.RegenerationRequest) string {
	var b strings.Builder

	b.WriteString("You are a helpful project assistant.\n")
	b.WriteString("Given a task and its timeframe (Unix timestamps in milliseconds), and a list of existing locked subtasks,\n")
	b.WriteString("generate new subtasks to fill the remaining time.\n\n")

	b.WriteString("Constraints:\n")
	b.WriteString("1. DO NOT change or remove any existing \"locked\" subtasks. Include them as-is in your final output.\n")
	b.WriteString("2. Each subtask, whether locked or new, must have a 'title' (string), 'description' (string), " +
		"'start_time' (Unix timestamp in milliseconds), 'end_time' (Unix timestamp in milliseconds) and 'locked' (boolean). " +
		"New subtasks get unique temporary ids (\"new-subtask-1\", \"new-subtask-2\", ...) and a concise but informative description.\n")
	fmt.Fprintf(&b, "3. The start_time and end_time of every subtask must fall within the parent task's timeframe (%d to %d).\n",
		req.ParentStartTime, req.ParentEndTime)
	b.WriteString("4. If the locked subtasks already cover the entire parent timeframe, do not generate new subtasks; return only the locked subtasks.\n")
	b.WriteString("5. Avoid significant gaps between subtasks; aim for continuity.\n\n")

	b.WriteString("Here is the high-level task and its timeframe:\n")
	fmt.Fprintf(&b, "Task Title: %q\n", req.TaskTitle)
	fmt.Fprintf(&b, "Parent Start Time (Unix ms): %d\n", req.ParentStartTime)
	fmt.Fprintf(&b, "Parent End Time (Unix ms): %d\n\n", req.ParentEndTime)

	b.WriteString("Existing Locked Subtasks (if any):\n")
	b.WriteString(lockedJSON(req.LockedSubtasks()))
	b.WriteString("\n\n")

	if prompt := strings.TrimSpace(req.Prompt); prompt != "" {
		fmt.Fprintf(&b, "User's additional preference (lower priority than the constraints above): %q\n\n", prompt)
	}

	b.WriteString("Provide your response as a JSON object with a single key \"subtasks\" which contains an array of subtask objects. Example:\n")
	b.WriteString(outputExample)
	b.WriteString("\n")

	return b.String()
}

func lockedJSON(locked []domain.Subtask) string {
	if len(locked) == 0 {
		return "[]"
	}
	data, err := json.MarshalIndent(locked, "", "  ")
	if err != nil {
		// Subtask holds only strings, ints and bools
		return "[]"
	}
	return string(data)
}
