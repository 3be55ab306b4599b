// Package domain contains core business entities and interfaces.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is the root aggregate of the tracker. It exclusively owns its
// subtasks and exploration notes; ownership only changes through the
// explicit move/copy operations on the database layer.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created     time.Time          `json:"created_at"`
	Updated     time.Time          `json:"updated_at"`
	Completed   time.Time          `json:"completed_at"` // zero = not completed
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Conclusion  string             `json:"conclusion"` // solution summary from exploring mode
	Status      Status             `json:"status"`
	Mode        Mode               `json:"mode"`
	Knowledge   Knowledge          `json:"knowledge"`
	SubTasks    []*SubTask         `json:"subtasks"`
	Notes       []*ExplorationNote `json:"exploration_notes"`
	Tags        []string           `json:"tags"`
	Order       int                `json:"order"` // manual display position, normalized to 0..N-1
	Priority    int                `json:"priority"`
}

// SubTask is a planning-mode work item, owned by exactly one Task.
// Fields are ordered to minimize memory padding.
type SubTask struct {
	Created     time.Time `json:"created_at"`
	Completed   time.Time `json:"completed_at"` // zero = not completed
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Notes       string    `json:"notes"`
	Status      Status    `json:"status"`
	Order       int       `json:"order"`
}

// ExplorationNote is a freeform timestamped note captured while exploring.
// List position is its order; there is no explicit order field.
// Fields are ordered to minimize memory padding.
type ExplorationNote struct {
	Created      time.Time `json:"created_at"`
	Updated      time.Time `json:"updated_at"`
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Insight      string    `json:"insight"`
	Breakthrough bool      `json:"is_breakthrough"`
}

// NoteSearchResult is an ephemeral projection of a note match, carrying
// enough of the parent task for display without a second lookup.
// Fields are ordered to minimize memory padding.
type NoteSearchResult struct {
	Note      *ExplorationNote
	TaskID    string
	TaskTitle string
	TaskMode  Mode
	IsHistory bool
}

// NewID returns a fresh entity identifier.
func NewID() string {
	return uuid.NewString()
}

// AddSubTask appends a new subtask at the end of the list and touches the
// task's updated time.
func (t *Task) AddSubTask(title, description string, now time.Time) *SubTask {
	st := &SubTask{
		ID:          NewID(),
		Title:       title,
		Description: description,
		Status:      StatusPending,
		Order:       len(t.SubTasks),
		Created:     now,
	}
	t.SubTasks = append(t.SubTasks, st)
	t.Updated = now
	return st
}

// AddNote appends a new exploration note and touches the task's updated time.
func (t *Task) AddNote(content, insight string, breakthrough bool, now time.Time) *ExplorationNote {
	note := &ExplorationNote{
		ID:           NewID(),
		Content:      content,
		Insight:      insight,
		Breakthrough: breakthrough,
		Created:      now,
		Updated:      now,
	}
	t.Notes = append(t.Notes, note)
	t.Updated = now
	return note
}

// FindSubTask returns the subtask with the given ID, or nil.
func (t *Task) FindSubTask(id string) *SubTask {
	for _, st := range t.SubTasks {
		if st.ID == id {
			return st
		}
	}
	return nil
}

// FindNote returns the note with the given ID, or nil.
func (t *Task) FindNote(id string) *ExplorationNote {
	for _, n := range t.Notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Progress reports completion in [0,1]. A task without subtasks is either
// fully done or not started at all.
func (t *Task) Progress() float64 {
	if len(t.SubTasks) == 0 {
		if t.Status == StatusCompleted {
			return 1.0
		}
		return 0.0
	}
	completed := 0
	for _, st := range t.SubTasks {
		if st.Status == StatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(t.SubTasks))
}

// CompleteSubTask marks the subtask with the given ID as completed.
// If that completes every subtask, the task itself is promoted to COMPLETED.
// Returns false if the ID is not found.
func (t *Task) CompleteSubTask(id string, now time.Time) bool {
	st := t.FindSubTask(id)
	if st == nil {
		return false
	}
	st.Status = StatusCompleted
	st.Completed = now
	t.Updated = now
	if t.allSubTasksCompleted() {
		t.Status = StatusCompleted
		t.Completed = now
	}
	return true
}

func (t *Task) allSubTasksCompleted() bool {
	for _, st := range t.SubTasks {
		if st.Status != StatusCompleted {
			return false
		}
	}
	return true
}

// SwitchToExploring moves the task into exploring mode. Subtasks and notes
// are both retained; a task can accumulate both across mode switches.
func (t *Task) SwitchToExploring(now time.Time) {
	t.Mode = ModeExploring
	t.Status = StatusExploring
	t.Knowledge = KnowledgeKnownWhatUnknownHow
	t.Updated = now
}

// SwitchToPlanning moves the task back into planning mode, typically after
// a solution was found. Conclusion and notes survive the switch.
func (t *Task) SwitchToPlanning(now time.Time) {
	t.Mode = ModePlanning
	t.Status = StatusInProgress
	t.Knowledge = KnowledgeKnownWhatKnownHow
	t.Updated = now
}

// IsCompleted returns true if the subtask has been completed.
func (st *SubTask) IsCompleted() bool {
	return st.Status == StatusCompleted
}
