package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrSubTaskNotFound  = errors.New("subtask not found")
	ErrNoteNotFound     = errors.New("note not found")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	ErrEmptyFile        = errors.New("file is empty")
	ErrNoTasksInFile    = errors.New("no tasks found in file")
)
