package taskdb

import (
	"sort"
	"time"

	"github.com/labtrack/labtrack/internal/domain"
)

// AddSubTask appends a subtask to the task's plan. Adding work to a
// completed task reopens it: the task drops back to IN_PROGRESS and its
// completion time is cleared.
func (db *DB) AddSubTask(taskID, title, description string) (*domain.SubTask, error) {
	task := db.GetTask(taskID)
	if task == nil {
		return nil, nil
	}
	st := task.AddSubTask(title, description, db.clock.Now())
	if task.Status == domain.StatusCompleted {
		task.Status = domain.StatusInProgress
		task.Completed = time.Time{}
	}
	db.debugf("subtask", "added %s to task %s", st.ID, taskID)
	return st, db.persist()
}

// UpdateSubTask applies a partial update to a subtask. If the update
// leaves an incomplete subtask inside a COMPLETED task, the task is
// reopened. Returns nil for an unknown task or subtask ID.
func (db *DB) UpdateSubTask(taskID, subTaskID string, patch domain.SubTaskPatch) (*domain.SubTask, error) {
	task := db.GetTask(taskID)
	if task == nil {
		return nil, nil
	}
	st := task.FindSubTask(subTaskID)
	if st == nil {
		return nil, nil
	}
	patch.Apply(st)
	task.Updated = db.clock.Now()
	if task.Status == domain.StatusCompleted {
		for _, s := range task.SubTasks {
			if s.Status != domain.StatusCompleted {
				task.Status = domain.StatusInProgress
				task.Completed = time.Time{}
				break
			}
		}
	}
	return st, db.persist()
}

// DeleteSubTask removes a subtask and renumbers the remaining ones to a
// contiguous 0..N-1 order.
func (db *DB) DeleteSubTask(taskID, subTaskID string) (bool, error) {
	task := db.GetTask(taskID)
	if task == nil {
		return false, nil
	}
	for i, st := range task.SubTasks {
		if st.ID == subTaskID {
			task.SubTasks = append(task.SubTasks[:i], task.SubTasks[i+1:]...)
			for j, remaining := range task.SubTasks {
				remaining.Order = j
			}
			task.Updated = db.clock.Now()
			return true, db.persist()
		}
	}
	return false, nil
}

// MoveSubTask moves a subtask one position up (-1) or down (+1) within the
// plan order. The move operates on the order fields, not on slice
// positions: subtasks are viewed sorted by order, swapped, then renumbered
// 0..N-1. Out-of-bounds moves return false without touching anything.
func (db *DB) MoveSubTask(taskID, subTaskID string, direction int) (bool, error) {
	task := db.GetTask(taskID)
	if task == nil {
		return false, nil
	}
	ordered := make([]*domain.SubTask, len(task.SubTasks))
	copy(ordered, task.SubTasks)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	currentIndex := -1
	for i, st := range ordered {
		if st.ID == subTaskID {
			currentIndex = i
			break
		}
	}
	if currentIndex < 0 {
		return false, nil
	}
	newIndex := currentIndex + direction
	if newIndex < 0 || newIndex >= len(ordered) {
		return false, nil
	}
	ordered[currentIndex], ordered[newIndex] = ordered[newIndex], ordered[currentIndex]
	for i, st := range ordered {
		st.Order = i
	}
	task.Updated = db.clock.Now()
	return true, db.persist()
}

// CompleteSubTask marks a subtask completed. Completing the last open
// subtask promotes the task itself to COMPLETED.
func (db *DB) CompleteSubTask(taskID, subTaskID string) (bool, error) {
	task := db.GetTask(taskID)
	if task == nil {
		return false, nil
	}
	if !task.CompleteSubTask(subTaskID, db.clock.Now()) {
		return false, nil
	}
	return true, db.persist()
}
