package domain

// Subtask is the wire form exchanged with the generation service.
// Times are epoch milliseconds; Locked only exists on requests.
type Subtask struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   int64  `json:"start_time"`
	EndTime     int64  `json:"end_time"`
	Locked      bool   `json:"locked"`
}

// SubtaskRecord is a persistence-ready subtask produced by regeneration.
type SubtaskRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	ParentTaskID string `json:"parent_task_id"`
	ProjectID    string `json:"project_id"`
	Status       string `json:"status"`
}

// RegenerationRequest carries everything needed to propose a new subtask list.
type RegenerationRequest struct {
	ParentTaskID     string
	ProjectID        string
	TaskTitle        string
	ParentStartTime  int64
	ParentEndTime    int64
	ExistingSubtasks []Subtask
	Prompt           string
}

// LockedSubtasks returns the locked entries of ExistingSubtasks in request order.
func (r RegenerationRequest) LockedSubtasks() []Subtask {
	locked := make([]Subtask, 0, len(r.ExistingSubtasks))
	for _, s := range r.ExistingSubtasks {
		if s.Locked {
			locked = append(locked, s)
		}
	}
	return locked
}

// ToRecord converts a wire subtask into a record stamped with the parent context.
// The caller is responsible for resolving the id first.
func (s Subtask) ToRecord(parentTaskID, projectID string) SubtaskRecord {
	return SubtaskRecord{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		StartTime:    MillisToDate(s.StartTime),
		EndTime:      MillisToDate(s.EndTime),
		ParentTaskID: parentTaskID,
		ProjectID:    projectID,
		Status:       StatusTodo,
	}
}
