package services

import (
	"encoding/json"
	"sort"
	"strings"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
)

// stripCodeFences removes a surrounding markdown fence (with optional language tag)
func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		// Remove opening fence
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		} else {
			cleaned = strings.TrimPrefix(cleaned, "```")
		}
		// Remove closing fence
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

// parseSubtaskArray extracts the raw subtask elements from model output.
// Both a bare array and an object with a "subtasks" array are accepted.
func parseSubtaskArray(content string) ([]json.RawMessage, error) {
	cleaned := stripCodeFences(content)

	var top json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil {
		return nil, errors.NewParseError("AI response is not valid JSON", err)
	}

	switch cleaned[0] {
	case '[':
		var elements []json.RawMessage
		if err := json.Unmarshal(top, &elements); err != nil {
			return nil, errors.NewParseError("AI response array could not be decoded", err)
		}
		return elements, nil
	case '{':
		var wrapped struct {
			Subtasks json.RawMessage `json:"subtasks"`
		}
		if err := json.Unmarshal(top, &wrapped); err == nil && len(wrapped.Subtasks) > 0 && wrapped.Subtasks[0] == '[' {
			var elements []json.RawMessage
			if err := json.Unmarshal(wrapped.Subtasks, &elements); err != nil {
				return nil, errors.NewParseError("AI response array could not be decoded", err)
			}
			return elements, nil
		}
	}

	return nil, errors.NewParseError("AI response was not a valid JSON array or wrapped array", nil)
}

// lockedCoverWindow reports whether the union of locked windows spans [start, end]
func lockedCoverWindow(start, end int64, locked []domain.Subtask) bool {
	if len(locked) == 0 {
		return false
	}

	windows := make([]domain.Subtask, len(locked))
	copy(windows, locked)
	sort.Slice(windows, func(i, j int) bool { return windows[i].StartTime < windows[j].StartTime })

	cursor := start
	for _, w := range windows {
		if w.StartTime > cursor {
			return false
		}
		if w.EndTime > cursor {
			cursor = w.EndTime
		}
		if cursor >= end {
			return true
		}
	}
	return cursor >= end
}

// reconcileLocked enforces the locked-subtask guarantees on model output:
// locked entries come back verbatim, dropped ones are re-appended, and
// everything else is clamped into the parent window.
func reconcileLocked(parentStart, parentEnd int64, locked, generated []domain.Subtask) []domain.Subtask {
	if lockedCoverWindow(parentStart, parentEnd, locked) {
		out := make([]domain.Subtask, len(locked))
		copy(out, locked)
		return out
	}

	seen := make([]bool, len(locked))
	out := make([]domain.Subtask, 0, len(generated)+len(locked))

	for _, item := range generated {
		if i := matchLocked(item, locked); i >= 0 {
			if !seen[i] {
				seen[i] = true
				out = append(out, locked[i])
			}
			continue
		}

		item.Locked = false
		item.StartTime = clamp(item.StartTime, parentStart, parentEnd)
		item.EndTime = clamp(item.EndTime, parentStart, parentEnd)
		out = append(out, item)
	}

	for i, l := range locked {
		if !seen[i] {
			out = append(out, l)
		}
	}

	return out
}

// matchLocked finds the locked input an output item stands for: by id first,
// then by identical content whatever id the model put on the echo.
func matchLocked(item domain.Subtask, locked []domain.Subtask) int {
	if item.ID != "" {
		for i, l := range locked {
			if l.ID != "" && item.ID == l.ID {
				return i
			}
		}
	}
	for i, l := range locked {
		if item.Title == l.Title && item.Description == l.Description &&
			item.StartTime == l.StartTime && item.EndTime == l.EndTime {
			return i
		}
	}
	return -1
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// toRecords resolves ids and converts subtasks to persistence-ready records
func toRecords(subtasks []domain.Subtask, parentTaskID, projectID string) []domain.SubtaskRecord {
	records := make([]domain.SubtaskRecord, 0, len(subtasks))
	for _, s := range subtasks {
		s.ID = domain.ResolveID(s.ID)
		records = append(records, s.ToRecord(parentTaskID, projectID))
	}
	return records
}
