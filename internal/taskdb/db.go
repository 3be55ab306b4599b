// Package taskdb implements the database layer of the tracker: the sole
// mutation surface over the loaded task collection. Every mutating method
// ends with a full rewrite of the backing document; lookups that miss
// signal not-found via nil or false returns, never errors. Save failures
// propagate to the caller while the in-memory state keeps the mutation
// (no rollback; acceptable for a single-user local tool).
package taskdb

import (
	"fmt"

	"github.com/labtrack/labtrack/internal/domain"
)

// DB holds the in-memory task collection backed by a document store.
type DB struct {
	store domain.DocumentStore
	clock domain.Clock
	log   domain.Logger
	tasks []*domain.Task
}

// Open loads the task collection from the store.
func Open(store domain.DocumentStore, clock domain.Clock, logger domain.Logger) (*DB, error) {
	tasks, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return &DB{
		store: store,
		clock: clock,
		log:   logger,
		tasks: tasks,
	}, nil
}

// persist rewrites the whole document. Called at the end of every mutation.
func (db *DB) persist() error {
	if err := db.store.Save(db.tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

func (db *DB) debugf(category, format string, args ...any) {
	if db.log != nil {
		db.log.Debug(category, fmt.Sprintf(format, args...))
	}
}

// CreateTask creates a new task at the end of the list. The title is not
// validated here; that is the caller's responsibility. The initial status
// follows the mode: EXPLORING tasks start exploring, everything else starts
// pending.
func (db *DB) CreateTask(title, description string, mode domain.Mode, knowledge domain.Knowledge, priority int) (*domain.Task, error) {
	now := db.clock.Now()
	status := domain.StatusPending
	if mode == domain.ModeExploring {
		status = domain.StatusExploring
	}
	task := &domain.Task{
		ID:          domain.NewID(),
		Title:       title,
		Description: description,
		Order:       len(db.tasks),
		Status:      status,
		Mode:        mode,
		Knowledge:   knowledge,
		Priority:    priority,
		Created:     now,
		Updated:     now,
	}
	db.tasks = append(db.tasks, task)
	db.debugf("task", "created %s: %q", task.ID, title)
	return task, db.persist()
}

// GetTask returns the task with the given ID, or nil.
// The returned pointer is shared with internal storage: field mutations by
// the caller are visible until the next load, which is how the UI-driven
// flow is meant to work (mutate via this layer only).
func (db *DB) GetTask(id string) *domain.Task {
	for _, t := range db.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// AllTasks returns all tasks in manual order. The slice is a defensive
// copy; the task pointers are shared.
func (db *DB) AllTasks() []*domain.Task {
	out := make([]*domain.Task, len(db.tasks))
	copy(out, db.tasks)
	return out
}

// TasksByStatus returns tasks with the given status.
func (db *DB) TasksByStatus(status domain.Status) []*domain.Task {
	var out []*domain.Task
	for _, t := range db.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// TasksByMode returns tasks in the given mode.
func (db *DB) TasksByMode(mode domain.Mode) []*domain.Task {
	var out []*domain.Task
	for _, t := range db.tasks {
		if t.Mode == mode {
			out = append(out, t)
		}
	}
	return out
}

// UpdateTask applies a partial update and touches the updated timestamp.
// Returns nil (and no error) for an unknown ID.
func (db *DB) UpdateTask(id string, patch domain.TaskPatch) (*domain.Task, error) {
	task := db.GetTask(id)
	if task == nil {
		return nil, nil
	}
	patch.Apply(task)
	task.Updated = db.clock.Now()
	db.debugf("task", "updated %s", id)
	return task, db.persist()
}

// DeleteTask removes a task by ID. Subtasks and notes are owned by the
// task object and are discarded with it.
func (db *DB) DeleteTask(id string) (bool, error) {
	for i, t := range db.tasks {
		if t.ID == id {
			db.tasks = append(db.tasks[:i], db.tasks[i+1:]...)
			db.debugf("task", "deleted %s", id)
			return true, db.persist()
		}
	}
	return false, nil
}

// MoveTask moves a task one position up (-1) or down (+1) in the manual
// order. Out-of-bounds moves are a no-op returning false. After a
// successful swap every task's order field is re-assigned to match its
// list position.
func (db *DB) MoveTask(id string, direction int) (bool, error) {
	currentIndex := -1
	for i, t := range db.tasks {
		if t.ID == id {
			currentIndex = i
			break
		}
	}
	if currentIndex < 0 {
		return false, nil
	}
	newIndex := currentIndex + direction
	if newIndex < 0 || newIndex >= len(db.tasks) {
		return false, nil
	}
	db.tasks[currentIndex], db.tasks[newIndex] = db.tasks[newIndex], db.tasks[currentIndex]
	for i, t := range db.tasks {
		t.Order = i
	}
	return true, db.persist()
}

// SwitchMode switches a task between planning and exploring mode.
// Returns nil for an unknown ID.
func (db *DB) SwitchMode(id string, toExploring bool) (*domain.Task, error) {
	task := db.GetTask(id)
	if task == nil {
		return nil, nil
	}
	now := db.clock.Now()
	if toExploring {
		task.SwitchToExploring(now)
	} else {
		task.SwitchToPlanning(now)
	}
	db.debugf("task", "switched %s to %s", id, task.Mode)
	return task, db.persist()
}

// SetConclusion records the solution summary of an exploring task.
func (db *DB) SetConclusion(id, conclusion string) (*domain.Task, error) {
	task := db.GetTask(id)
	if task == nil {
		return nil, nil
	}
	task.Conclusion = conclusion
	task.Updated = db.clock.Now()
	return task, db.persist()
}

// ClearConclusion removes a task's conclusion.
func (db *DB) ClearConclusion(id string) (*domain.Task, error) {
	task := db.GetTask(id)
	if task == nil {
		return nil, nil
	}
	task.Conclusion = ""
	task.Updated = db.clock.Now()
	return task, db.persist()
}
