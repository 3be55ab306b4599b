package domain

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TaskDraft represents a task to be created from file input.
//
// Format (YAML, a list of drafts):
//
//	- title: Protein folding survey
//	  description: Read the 2025 review papers.
//	  mode: EXPLORING
//	  priority: 2
//	  tags: [reading, protein]
//	  subtasks:
//	    - title: Collect papers
//	    - title: Summarize methods
//	      description: One paragraph each.
type TaskDraft struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Mode        string         `yaml:"mode"`
	Knowledge   string         `yaml:"knowledge"`
	Tags        []string       `yaml:"tags"`
	SubTasks    []SubTaskDraft `yaml:"subtasks"`
	Priority    int            `yaml:"priority"`
}

// SubTaskDraft represents a subtask within a TaskDraft.
type SubTaskDraft struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// ParseTaskDrafts parses a YAML file containing one or more task drafts.
func ParseTaskDrafts(content []byte) ([]TaskDraft, error) {
	if len(content) == 0 {
		return nil, ErrEmptyFile
	}

	var drafts []TaskDraft
	if err := yaml.Unmarshal(content, &drafts); err != nil {
		return nil, fmt.Errorf("parse task drafts: %w", err)
	}
	if len(drafts) == 0 {
		return nil, ErrNoTasksInFile
	}

	for i, d := range drafts {
		if d.Title == "" {
			return nil, fmt.Errorf("task %d: %w", i+1, ErrEmptyTitle)
		}
		for j, st := range d.SubTasks {
			if st.Title == "" {
				return nil, fmt.Errorf("task %d, subtask %d: %w", i+1, j+1, ErrEmptyTitle)
			}
		}
	}

	return drafts, nil
}
