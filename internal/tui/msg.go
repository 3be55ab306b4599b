package tui

import "github.com/labtrack/labtrack/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when tasks are (re)loaded from the database.
type MsgTasksLoaded struct {
	Tasks []*domain.Task
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskDeleted is sent when a task is deleted.
type MsgTaskDeleted struct {
	TaskID string
}

func (MsgTaskDeleted) sealed() {}

// MsgTaskChanged is sent after any in-place task mutation (subtask toggle,
// mode switch, reorder) so views refresh.
type MsgTaskChanged struct {
	TaskID string
}

func (MsgTaskChanged) sealed() {}

// MsgError is sent when a database operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
