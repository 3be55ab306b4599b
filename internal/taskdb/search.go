package taskdb

import (
	"strings"

	"github.com/labtrack/labtrack/internal/domain"
)

// SearchTasks returns tasks whose title, description, or any tag contains
// the keyword, case-insensitively. An empty keyword matches every task,
// so a cleared search box shows the full list.
func (db *DB) SearchTasks(keyword string) []*domain.Task {
	needle := strings.ToLower(keyword)
	var out []*domain.Task
	for _, task := range db.tasks {
		if matchTask(task, needle) {
			out = append(out, task)
		}
	}
	return out
}

func matchTask(task *domain.Task, needle string) bool {
	if strings.Contains(strings.ToLower(task.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(task.Description), needle) {
		return true
	}
	for _, tag := range task.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// SearchNotes scans every task's notes for the keyword in content or
// insight, case-insensitively. Unlike task search, a blank keyword
// returns nothing: there is no useful "all notes everywhere" view.
func (db *DB) SearchNotes(keyword string) []domain.NoteSearchResult {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return nil
	}
	var out []domain.NoteSearchResult
	for _, task := range db.tasks {
		out = appendNoteMatches(out, task, needle)
	}
	return out
}

// SearchNotesInTask is SearchNotes restricted to a single task. An
// unknown task ID or blank keyword returns nothing.
func (db *DB) SearchNotesInTask(taskID, keyword string) []domain.NoteSearchResult {
	task := db.GetTask(taskID)
	if task == nil {
		return nil
	}
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return nil
	}
	return appendNoteMatches(nil, task, needle)
}

func appendNoteMatches(out []domain.NoteSearchResult, task *domain.Task, needle string) []domain.NoteSearchResult {
	for _, note := range task.Notes {
		if matchNote(note, needle) {
			out = append(out, domain.NoteSearchResult{
				Note:      note,
				TaskID:    task.ID,
				TaskTitle: task.Title,
				TaskMode:  task.Mode,
			})
		}
	}
	return out
}

func matchNote(note *domain.ExplorationNote, needle string) bool {
	return strings.Contains(strings.ToLower(note.Content), needle) ||
		strings.Contains(strings.ToLower(note.Insight), needle)
}
