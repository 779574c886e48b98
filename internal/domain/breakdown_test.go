package domain

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/errors"
)

type recordingUpserter struct {
	calls   int
	records []SubtaskRecord
	err     error
}

func (u *recordingUpserter) UpsertSubtasks(ctx context.Context, parentTaskID, projectID string, records []SubtaskRecord) error {
	u.calls++
	u.records = records
	return u.err
}

func TestBreakdown_Lifecycle(t *testing.T) {
	loaded := []SubtaskRecord{{ID: "a", Title: "existing"}}
	b := NewBreakdown("parent", "project", loaded)
	assert.Equal(t, BreakdownLoaded, b.State())
	assert.Equal(t, loaded, b.Current())

	first := []SubtaskRecord{{ID: "b", Title: "first"}}
	second := []SubtaskRecord{{ID: "c", Title: "second"}}
	b.Propose(first)
	b.Propose(second)
	assert.Equal(t, BreakdownProposed, b.State())
	assert.Equal(t, second, b.Proposal(), "a new proposal replaces the previous one")

	store := &recordingUpserter{}
	require.NoError(t, b.Confirm(context.Background(), store))
	assert.Equal(t, BreakdownConfirmed, b.State())
	assert.Equal(t, second, store.records)
	assert.Equal(t, second, b.Current())
	assert.Nil(t, b.Proposal())

	b.Reload(second)
	assert.Equal(t, BreakdownLoaded, b.State())
}

func TestBreakdown_ConfirmRequiresProposal(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *Breakdown)
	}{
		{"from loaded", func(b *Breakdown) {}},
		{"after discard", func(b *Breakdown) {
			b.Propose([]SubtaskRecord{{ID: "x"}})
			b.Discard()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBreakdown("parent", "project", nil)
			tt.setup(b)
			store := &recordingUpserter{}

			err := b.Confirm(context.Background(), store)

			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
			assert.Equal(t, 0, store.calls)
		})
	}
}

func TestBreakdown_ConfirmFailureKeepsProposal(t *testing.T) {
	b := NewBreakdown("parent", "project", nil)
	proposal := []SubtaskRecord{{ID: "x"}}
	b.Propose(proposal)

	err := b.Confirm(context.Background(), &recordingUpserter{err: stderrors.New("disk full")})

	require.Error(t, err)
	assert.Equal(t, BreakdownProposed, b.State())
	assert.Equal(t, proposal, b.Proposal())
}

func TestBreakdownState_String(t *testing.T) {
	assert.Equal(t, "loaded", BreakdownLoaded.String())
	assert.Equal(t, "proposed", BreakdownProposed.String())
	assert.Equal(t, "confirmed", BreakdownConfirmed.String())
	assert.Equal(t, "unknown", BreakdownState(42).String())
}

func TestRegenerationRequest_LockedSubtasks(t *testing.T) {
	req := RegenerationRequest{ExistingSubtasks: []Subtask{
		{ID: "1", Locked: true},
		{ID: "2"},
		{ID: "3", Locked: true},
	}}

	locked := req.LockedSubtasks()

	require.Len(t, locked, 2)
	assert.Equal(t, "1", locked[0].ID)
	assert.Equal(t, "3", locked[1].ID)
}

func TestSubtask_ToRecord(t *testing.T) {
	s := Subtask{ID: "id", Title: "T", Description: "D", StartTime: 1700000000000, EndTime: 1700006400000, Locked: true}

	record := s.ToRecord("parent", "project")

	assert.Equal(t, SubtaskRecord{
		ID:           "id",
		Title:        "T",
		Description:  "D",
		StartTime:    "2023-11-14",
		EndTime:      "2023-11-15",
		ParentTaskID: "parent",
		ProjectID:    "project",
		Status:       StatusTodo,
	}, record)
}
