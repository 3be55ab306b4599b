// Package cli provides the command-line interface for labtrack.
package cli

import (
	"fmt"
	"strings"

	"github.com/labtrack/labtrack/internal/app"
	"github.com/labtrack/labtrack/internal/domain"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupTask = "task"
	groupNote = "note"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for labtrack.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "labtrack",
		Short: "Personal research task tracker",
		Long: `labtrack tracks research tasks in two modes.

Planning mode breaks a task into ordered subtasks and walks them to
completion. Exploring mode is for problems where the path is unknown:
you capture timestamped notes, flag breakthroughs, and record a
conclusion once the answer is found.

Running labtrack without a subcommand opens the interactive TUI.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
		&cobra.Group{ID: groupNote, Title: "Note Commands:"},
	)

	root.AddCommand(
		newTaskCommand(c),
		newSubCommand(c),
		newNoteCommand(c),
		newSearchCommand(c),
		newModeCommand(c),
		newConcludeCommand(c),
		newExportCommand(c),
		newImportCommand(c),
	)

	return root
}

// resolveTask finds a task by full ID or unique ID prefix.
func resolveTask(c *app.Container, ref string) (*domain.Task, error) {
	if ref == "" {
		return nil, fmt.Errorf("task ID required")
	}
	if task := c.DB.GetTask(ref); task != nil {
		return task, nil
	}
	var matches []*domain.Task
	for _, task := range c.DB.AllTasks() {
		if strings.HasPrefix(task.ID, ref) {
			matches = append(matches, task)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("task %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("task ID %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveSubTask finds a subtask within a task by full ID, unique ID
// prefix, or 1-based position in plan order.
func resolveSubTask(task *domain.Task, ref string) (*domain.SubTask, error) {
	if st := task.FindSubTask(ref); st != nil {
		return st, nil
	}
	if pos, ok := parsePosition(ref, len(task.SubTasks)); ok {
		for _, st := range task.SubTasks {
			if st.Order == pos {
				return st, nil
			}
		}
	}
	var matches []*domain.SubTask
	for _, st := range task.SubTasks {
		if strings.HasPrefix(st.ID, ref) {
			matches = append(matches, st)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("subtask %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("subtask ID %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// resolveNote finds a note within a task by full ID, unique ID prefix, or
// 1-based list position.
func resolveNote(task *domain.Task, ref string) (*domain.ExplorationNote, error) {
	if note := task.FindNote(ref); note != nil {
		return note, nil
	}
	if pos, ok := parsePosition(ref, len(task.Notes)); ok {
		return task.Notes[pos], nil
	}
	var matches []*domain.ExplorationNote
	for _, note := range task.Notes {
		if strings.HasPrefix(note.ID, ref) {
			matches = append(matches, note)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("note %q not found", ref)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("note ID %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// parsePosition interprets ref as a 1-based position and returns the
// 0-based index.
func parsePosition(ref string, n int) (int, bool) {
	pos := 0
	for _, r := range ref {
		if r < '0' || r > '9' {
			return 0, false
		}
		pos = pos*10 + int(r-'0')
	}
	if ref == "" || pos < 1 || pos > n {
		return 0, false
	}
	return pos - 1, true
}

// shortID returns the display form of an entity ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// parseDirection converts an up/down word to the internal direction value.
func parseDirection(word string) (int, error) {
	switch word {
	case "up":
		return -1, nil
	case "down":
		return 1, nil
	default:
		return 0, fmt.Errorf("direction must be \"up\" or \"down\", got %q", word)
	}
}
