package domain

import (
	"context"
	"fmt"

	"task-planner/internal/errors"
)

// BreakdownState is the position of a Breakdown in its proposal lifecycle.
type BreakdownState int

const (
	BreakdownLoaded BreakdownState = iota
	BreakdownProposed
	BreakdownConfirmed
)

// String returns the string representation of the state
func (s BreakdownState) String() string {
	switch s {
	case BreakdownLoaded:
		return "loaded"
	case BreakdownProposed:
		return "proposed"
	case BreakdownConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// SubtaskUpserter persists confirmed subtask records.
type SubtaskUpserter interface {
	UpsertSubtasks(ctx context.Context, parentTaskID, projectID string, records []SubtaskRecord) error
}

// Breakdown holds one parent task's subtask list on the caller's side.
// Proposals live only here until Confirm persists them.
type Breakdown struct {
	ParentTaskID string
	ProjectID    string

	state    BreakdownState
	current  []SubtaskRecord
	proposal []SubtaskRecord
}

// NewBreakdown creates a Breakdown in the Loaded state with the persisted subtasks.
func NewBreakdown(parentTaskID, projectID string, loaded []SubtaskRecord) *Breakdown {
	return &Breakdown{
		ParentTaskID: parentTaskID,
		ProjectID:    projectID,
		state:        BreakdownLoaded,
		current:      loaded,
	}
}

// State returns the current lifecycle state.
func (b *Breakdown) State() BreakdownState {
	return b.state
}

// Current returns the subtasks last loaded or confirmed.
func (b *Breakdown) Current() []SubtaskRecord {
	return b.current
}

// Proposal returns the pending proposal, if any.
func (b *Breakdown) Proposal() []SubtaskRecord {
	return b.proposal
}

// Propose replaces any previous proposal with records.
func (b *Breakdown) Propose(records []SubtaskRecord) {
	b.proposal = records
	b.state = BreakdownProposed
}

// Discard drops the pending proposal and returns to Loaded.
func (b *Breakdown) Discard() {
	b.proposal = nil
	b.state = BreakdownLoaded
}

// Confirm upserts the pending proposal and moves to Confirmed.
// On failure the proposal is kept so the caller may retry.
func (b *Breakdown) Confirm(ctx context.Context, store SubtaskUpserter) error {
	if b.state != BreakdownProposed {
		return errors.NewValidationError(
			fmt.Sprintf("cannot confirm a breakdown in state %s", b.state), nil)
	}
	if err := store.UpsertSubtasks(ctx, b.ParentTaskID, b.ProjectID, b.proposal); err != nil {
		return err
	}
	b.current = b.proposal
	b.proposal = nil
	b.state = BreakdownConfirmed
	return nil
}

// Reload replaces the current subtasks with freshly loaded ones and returns to Loaded.
func (b *Breakdown) Reload(records []SubtaskRecord) {
	b.current = records
	b.proposal = nil
	b.state = BreakdownLoaded
}
