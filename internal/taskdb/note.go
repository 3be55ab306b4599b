package taskdb

import (
	"sort"

	"github.com/labtrack/labtrack/internal/domain"
)

// AddNote appends an exploration note to a task.
func (db *DB) AddNote(taskID, content, insight string, breakthrough bool) (*domain.ExplorationNote, error) {
	task := db.GetTask(taskID)
	if task == nil {
		return nil, nil
	}
	note := task.AddNote(content, insight, breakthrough, db.clock.Now())
	db.debugf("note", "added %s to task %s", note.ID, taskID)
	return note, db.persist()
}

// UpdateNote applies a partial update to a note. The note's updated
// timestamp is touched even for an empty patch, matching the edit flow
// where saving without changes still counts as a revision.
func (db *DB) UpdateNote(taskID, noteID string, patch domain.NotePatch) (*domain.ExplorationNote, error) {
	task := db.GetTask(taskID)
	if task == nil {
		return nil, nil
	}
	note := task.FindNote(noteID)
	if note == nil {
		return nil, nil
	}
	patch.Apply(note)
	now := db.clock.Now()
	note.Updated = now
	task.Updated = now
	return note, db.persist()
}

// DeleteNote removes a note from a task.
func (db *DB) DeleteNote(taskID, noteID string) (bool, error) {
	task := db.GetTask(taskID)
	if task == nil {
		return false, nil
	}
	for i, note := range task.Notes {
		if note.ID == noteID {
			task.Notes = append(task.Notes[:i], task.Notes[i+1:]...)
			task.Updated = db.clock.Now()
			return true, db.persist()
		}
	}
	return false, nil
}

// MoveNoteOrder moves a note one position up (-1) or down (+1) within its
// task. Note order is plain list position; there is no order field to
// renumber. Out-of-bounds moves return false.
func (db *DB) MoveNoteOrder(taskID, noteID string, direction int) (bool, error) {
	task := db.GetTask(taskID)
	if task == nil {
		return false, nil
	}
	currentIndex := -1
	for i, note := range task.Notes {
		if note.ID == noteID {
			currentIndex = i
			break
		}
	}
	if currentIndex < 0 {
		return false, nil
	}
	newIndex := currentIndex + direction
	if newIndex < 0 || newIndex >= len(task.Notes) {
		return false, nil
	}
	task.Notes[currentIndex], task.Notes[newIndex] = task.Notes[newIndex], task.Notes[currentIndex]
	task.Updated = db.clock.Now()
	return true, db.persist()
}

// MoveNote transfers a note from one task to another. The note keeps its
// identity and timestamps and lands at the end of the target's list.
func (db *DB) MoveNote(sourceTaskID, targetTaskID, noteID string) (bool, error) {
	source := db.GetTask(sourceTaskID)
	target := db.GetTask(targetTaskID)
	if source == nil || target == nil {
		return false, nil
	}

	var moved *domain.ExplorationNote
	for i, note := range source.Notes {
		if note.ID == noteID {
			moved = note
			source.Notes = append(source.Notes[:i], source.Notes[i+1:]...)
			break
		}
	}
	if moved == nil {
		return false, nil
	}
	target.Notes = append(target.Notes, moved)

	now := db.clock.Now()
	source.Updated = now
	target.Updated = now
	db.debugf("note", "moved %s from %s to %s", noteID, sourceTaskID, targetTaskID)
	return true, db.persist()
}

// CopyNote duplicates a note into another task. The copy gets a fresh ID
// and fresh timestamps; only the content fields carry over.
func (db *DB) CopyNote(sourceTaskID, targetTaskID, noteID string) (*domain.ExplorationNote, error) {
	source := db.GetTask(sourceTaskID)
	target := db.GetTask(targetTaskID)
	if source == nil || target == nil {
		return nil, nil
	}
	original := source.FindNote(noteID)
	if original == nil {
		return nil, nil
	}
	copied := target.AddNote(original.Content, original.Insight, original.Breakthrough, db.clock.Now())
	return copied, db.persist()
}

// BatchDeleteNotes removes every listed note from a task in one write.
// Returns false when the task is unknown, the ID list is empty, or none
// of the IDs matched.
func (db *DB) BatchDeleteNotes(taskID string, noteIDs []string) (bool, error) {
	task := db.GetTask(taskID)
	if task == nil || len(noteIDs) == 0 {
		return false, nil
	}
	doomed := make(map[string]bool, len(noteIDs))
	for _, id := range noteIDs {
		doomed[id] = true
	}
	kept := task.Notes[:0]
	for _, note := range task.Notes {
		if !doomed[note.ID] {
			kept = append(kept, note)
		}
	}
	if len(kept) == len(task.Notes) {
		return false, nil
	}
	task.Notes = kept
	task.Updated = db.clock.Now()
	return true, db.persist()
}

// BatchMoveNotes transfers every listed note from one task to another in
// one write, preserving their relative order. Returns false when either
// task is unknown, the ID list is empty, or none of the IDs matched.
func (db *DB) BatchMoveNotes(sourceTaskID, targetTaskID string, noteIDs []string) (bool, error) {
	source := db.GetTask(sourceTaskID)
	target := db.GetTask(targetTaskID)
	if source == nil || target == nil || len(noteIDs) == 0 {
		return false, nil
	}
	wanted := make(map[string]bool, len(noteIDs))
	for _, id := range noteIDs {
		wanted[id] = true
	}
	var moved []*domain.ExplorationNote
	kept := source.Notes[:0]
	for _, note := range source.Notes {
		if wanted[note.ID] {
			moved = append(moved, note)
		} else {
			kept = append(kept, note)
		}
	}
	if len(moved) == 0 {
		return false, nil
	}
	source.Notes = kept
	target.Notes = append(target.Notes, moved...)

	now := db.clock.Now()
	source.Updated = now
	target.Updated = now
	return true, db.persist()
}

// MergeNotes combines the notes of several source tasks into a target.
// Notes are appended in created-at order and keep their identity; IDs the
// target already holds are skipped, which makes repeated merges of the
// same sources a no-op. When newTitle is non-empty a fresh exploring task
// is created as the target instead of using targetTaskID.
// Source tasks are left untouched. Returns the target task, or nil when
// the inputs do not resolve.
func (db *DB) MergeNotes(sourceTaskIDs []string, targetTaskID, newTitle string) (*domain.Task, error) {
	if len(sourceTaskIDs) == 0 {
		return nil, nil
	}
	sources := make([]*domain.Task, 0, len(sourceTaskIDs))
	for _, id := range sourceTaskIDs {
		task := db.GetTask(id)
		if task == nil {
			return nil, nil
		}
		sources = append(sources, task)
	}

	var target *domain.Task
	if newTitle != "" {
		created, err := db.CreateTask(newTitle, "", domain.ModeExploring, domain.KnowledgeKnownWhatUnknownHow, 0)
		if err != nil {
			return nil, err
		}
		target = created
	} else {
		target = db.GetTask(targetTaskID)
		if target == nil {
			return nil, nil
		}
	}

	var pool []*domain.ExplorationNote
	for _, task := range sources {
		pool = append(pool, task.Notes...)
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Created.Before(pool[j].Created) })

	existing := make(map[string]bool, len(target.Notes))
	for _, note := range target.Notes {
		existing[note.ID] = true
	}
	for _, note := range pool {
		if existing[note.ID] {
			continue
		}
		// Copy the value so source and target never share a pointer.
		merged := *note
		target.Notes = append(target.Notes, &merged)
		existing[note.ID] = true
	}

	target.Updated = db.clock.Now()
	db.debugf("note", "merged notes from %d tasks into %s", len(sources), target.ID)
	return target, db.persist()
}
