package domain

import "time"

// TaskPatch describes a partial update to a task. Nil fields are left
// unchanged; Tags is only applied when TagsSet is true so that an explicit
// empty list can clear the tags.
// Fields are ordered to minimize memory padding.
type TaskPatch struct {
	Title       *string
	Description *string
	Conclusion  *string
	Status      *Status
	Mode        *Mode
	Knowledge   *Knowledge
	Priority    *int
	Tags        []string
	TagsSet     bool
}

// IsZero returns true if the patch changes nothing.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Conclusion == nil &&
		p.Status == nil && p.Mode == nil && p.Knowledge == nil &&
		p.Priority == nil && !p.TagsSet
}

// Apply writes the provided fields onto the task. The caller is responsible
// for touching the updated timestamp and persisting.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Conclusion != nil {
		t.Conclusion = *p.Conclusion
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Mode != nil {
		t.Mode = *p.Mode
	}
	if p.Knowledge != nil {
		t.Knowledge = *p.Knowledge
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.TagsSet {
		t.Tags = append([]string(nil), p.Tags...)
	}
}

// SubTaskPatch describes a partial update to a subtask. Completed sets the
// completion time when non-nil; ClearCompleted resets it to zero (used when
// a completed subtask is toggled back to pending).
// Fields are ordered to minimize memory padding.
type SubTaskPatch struct {
	Title          *string
	Description    *string
	Notes          *string
	Status         *Status
	Completed      *time.Time
	ClearCompleted bool
}

// IsZero returns true if the patch changes nothing.
func (p SubTaskPatch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Notes == nil &&
		p.Status == nil && p.Completed == nil && !p.ClearCompleted
}

// Apply writes the provided fields onto the subtask.
func (p SubTaskPatch) Apply(st *SubTask) {
	if p.Title != nil {
		st.Title = *p.Title
	}
	if p.Description != nil {
		st.Description = *p.Description
	}
	if p.Notes != nil {
		st.Notes = *p.Notes
	}
	if p.Status != nil {
		st.Status = *p.Status
	}
	if p.Completed != nil {
		st.Completed = *p.Completed
	}
	if p.ClearCompleted {
		st.Completed = time.Time{}
	}
}

// NotePatch describes a partial update to an exploration note.
type NotePatch struct {
	Content      *string
	Insight      *string
	Breakthrough *bool
}

// IsZero returns true if the patch changes nothing.
func (p NotePatch) IsZero() bool {
	return p.Content == nil && p.Insight == nil && p.Breakthrough == nil
}

// Apply writes the provided fields onto the note.
func (p NotePatch) Apply(n *ExplorationNote) {
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Insight != nil {
		n.Insight = *p.Insight
	}
	if p.Breakthrough != nil {
		n.Breakthrough = *p.Breakthrough
	}
}
