package domain

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestTask() *Task {
	return &Task{
		ID:        NewID(),
		Title:     "Protein folding",
		Status:    StatusPending,
		Mode:      ModePlanning,
		Knowledge: KnowledgeKnownWhatKnownHow,
		Created:   testNow,
		Updated:   testNow,
	}
}

func TestTask_AddSubTask(t *testing.T) {
	task := newTestTask()

	st1 := task.AddSubTask("Collect papers", "", testNow)
	st2 := task.AddSubTask("Summarize", "One paragraph each", testNow.Add(time.Minute))

	if st1.Order != 0 || st2.Order != 1 {
		t.Errorf("orders = %d, %d, want 0, 1", st1.Order, st2.Order)
	}
	if st1.ID == st2.ID {
		t.Error("subtask IDs are not unique")
	}
	if st2.Description != "One paragraph each" {
		t.Errorf("Description = %q", st2.Description)
	}
	if st1.Status != StatusPending {
		t.Errorf("Status = %v, want PENDING", st1.Status)
	}
	if !task.Updated.Equal(testNow.Add(time.Minute)) {
		t.Errorf("Updated = %v, want touch on add", task.Updated)
	}
}

func TestTask_AddNote(t *testing.T) {
	task := newTestTask()

	note := task.AddNote("tried method A", "dead end", false, testNow)

	if note.Content != "tried method A" || note.Insight != "dead end" {
		t.Errorf("note = %+v", note)
	}
	if note.Breakthrough {
		t.Error("Breakthrough = true, want false")
	}
	if !note.Created.Equal(testNow) || !note.Updated.Equal(testNow) {
		t.Errorf("timestamps = %v / %v, want %v", note.Created, note.Updated, testNow)
	}
	if len(task.Notes) != 1 {
		t.Fatalf("len(Notes) = %d, want 1", len(task.Notes))
	}
}

func TestTask_Progress(t *testing.T) {
	task := newTestTask()

	// No subtasks: progress follows status.
	if got := task.Progress(); got != 0.0 {
		t.Errorf("Progress() = %v, want 0.0", got)
	}
	task.Status = StatusCompleted
	if got := task.Progress(); got != 1.0 {
		t.Errorf("Progress() = %v, want 1.0 for completed task", got)
	}

	task.Status = StatusInProgress
	task.AddSubTask("a", "", testNow)
	task.AddSubTask("b", "", testNow)
	task.AddSubTask("c", "", testNow)
	task.SubTasks[0].Status = StatusCompleted

	if got := task.Progress(); got < 0.33 || got > 0.34 {
		t.Errorf("Progress() = %v, want 1/3", got)
	}
}

func TestTask_CompleteSubTask(t *testing.T) {
	task := newTestTask()
	a := task.AddSubTask("a", "", testNow)
	b := task.AddSubTask("b", "", testNow)

	if !task.CompleteSubTask(a.ID, testNow) {
		t.Fatal("CompleteSubTask(a) = false")
	}
	if a.Status != StatusCompleted || a.Completed.IsZero() {
		t.Errorf("subtask a not completed: %+v", a)
	}
	if task.Status == StatusCompleted {
		t.Error("task completed with one subtask remaining")
	}

	// Completing the last incomplete subtask promotes the task.
	done := testNow.Add(time.Hour)
	if !task.CompleteSubTask(b.ID, done) {
		t.Fatal("CompleteSubTask(b) = false")
	}
	if task.Status != StatusCompleted {
		t.Errorf("Status = %v, want COMPLETED", task.Status)
	}
	if !task.Completed.Equal(done) {
		t.Errorf("Completed = %v, want %v", task.Completed, done)
	}
}

func TestTask_CompleteSubTask_NotFound(t *testing.T) {
	task := newTestTask()
	task.AddSubTask("a", "", testNow)

	if task.CompleteSubTask("no-such-id", testNow) {
		t.Error("CompleteSubTask(unknown) = true, want false")
	}
}

func TestTask_ModeSwitches(t *testing.T) {
	task := newTestTask()
	task.AddSubTask("step 1", "", testNow)
	task.AddNote("attempt", "", false, testNow)
	task.Conclusion = "use method B"

	task.SwitchToExploring(testNow)
	if task.Mode != ModeExploring || task.Status != StatusExploring {
		t.Errorf("after SwitchToExploring: mode=%v status=%v", task.Mode, task.Status)
	}
	if task.Knowledge != KnowledgeKnownWhatUnknownHow {
		t.Errorf("Knowledge = %v", task.Knowledge)
	}

	task.SwitchToPlanning(testNow)
	if task.Mode != ModePlanning || task.Status != StatusInProgress {
		t.Errorf("after SwitchToPlanning: mode=%v status=%v", task.Mode, task.Status)
	}
	if task.Knowledge != KnowledgeKnownWhatKnownHow {
		t.Errorf("Knowledge = %v", task.Knowledge)
	}

	// Both child collections and the conclusion survive switches.
	if len(task.SubTasks) != 1 || len(task.Notes) != 1 {
		t.Errorf("children lost: %d subtasks, %d notes", len(task.SubTasks), len(task.Notes))
	}
	if task.Conclusion != "use method B" {
		t.Errorf("Conclusion = %q, want retained", task.Conclusion)
	}
}
