package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/labtrack/labtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubCommands_Lifecycle(t *testing.T) {
	c, _ := newTestContainer(t)
	task, err := c.DB.CreateTask("Plan", "", domain.ModePlanning, domain.KnowledgeKnownWhatKnownHow, 0)
	require.NoError(t, err)

	out, err := runCommand(t, c, "sub", "add", task.ID, "Prepare the library")
	require.NoError(t, err)
	assert.Contains(t, out, "Added subtask 1")

	_, err = runCommand(t, c, "sub", "add", task.ID, "Run the sequencer")
	require.NoError(t, err)

	// Complete by 1-based position.
	out, err = runCommand(t, c, "sub", "done", task.ID, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed subtask")
	assert.NotContains(t, out, "task "+shortID(task.ID)+" completed")

	out, err = runCommand(t, c, "sub", "done", task.ID, "2")
	require.NoError(t, err)
	assert.Contains(t, out, "completed")
	assert.Equal(t, domain.StatusCompleted, c.DB.GetTask(task.ID).Status)

	out, err = runCommand(t, c, "sub", "undo", task.ID, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Reopened")
	assert.Equal(t, domain.StatusInProgress, c.DB.GetTask(task.ID).Status)

	_, err = runCommand(t, c, "sub", "move", task.ID, "2", "up")
	require.NoError(t, err)
	assert.Equal(t, 0, c.DB.GetTask(task.ID).SubTasks[1].Order)

	out, err = runCommand(t, c, "sub", "rm", task.ID, "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted subtask")
	assert.Len(t, c.DB.GetTask(task.ID).SubTasks, 1)
}

func TestNoteCommands_AddEditRemove(t *testing.T) {
	c, _ := newTestContainer(t)
	task, err := c.DB.CreateTask("Explore", "", domain.ModeExploring, domain.KnowledgeKnownWhatUnknownHow, 0)
	require.NoError(t, err)

	out, err := runCommand(t, c, "note", "add", task.ID, "observed drift", "--insight", "temperature?", "--breakthrough")
	require.NoError(t, err)
	assert.Contains(t, out, "Added note")

	note := c.DB.GetTask(task.ID).Notes[0]
	assert.Equal(t, "observed drift", note.Content)
	assert.True(t, note.Breakthrough)

	_, err = runCommand(t, c, "note", "edit", task.ID, "1", "--content", "revised", "--breakthrough=false")
	require.NoError(t, err)
	note = c.DB.GetTask(task.ID).Notes[0]
	assert.Equal(t, "revised", note.Content)
	assert.False(t, note.Breakthrough)

	_, err = runCommand(t, c, "note", "rm", task.ID, "1")
	require.NoError(t, err)
	assert.Empty(t, c.DB.GetTask(task.ID).Notes)
}

func TestNoteMoveCommand_Reorder(t *testing.T) {
	c, _ := newTestContainer(t)
	task, err := c.DB.CreateTask("Explore", "", domain.ModeExploring, domain.KnowledgeKnownWhatUnknownHow, 0)
	require.NoError(t, err)
	_, err = c.DB.AddNote(task.ID, "first", "", false)
	require.NoError(t, err)
	_, err = c.DB.AddNote(task.ID, "second", "", false)
	require.NoError(t, err)

	_, err = runCommand(t, c, "note", "mv", task.ID, "2", "up")
	require.NoError(t, err)
	assert.Equal(t, "second", c.DB.GetTask(task.ID).Notes[0].Content)
}

func TestNoteMoveCommand_CrossTask(t *testing.T) {
	c, _ := newTestContainer(t)
	source, err := c.DB.CreateTask("Source", "", domain.ModeExploring, domain.KnowledgeKnownWhatUnknownHow, 0)
	require.NoError(t, err)
	target, err := c.DB.CreateTask("Target", "", domain.ModeExploring, domain.KnowledgeKnownWhatUnknownHow, 0)
	require.NoError(t, err)
	_, err = c.DB.AddNote(source.ID, "travels", "", false)
	require.NoError(t, err)
	_, err = c.DB.AddNote(source.ID, "also travels", "", false)
	require.NoError(t, err)

	out, err := runCommand(t, c, "note", "mv", source.ID, "1", "2", "--to", target.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Moved 2 note(s)")
	assert.Empty(t, c.DB.GetTask(source.ID).Notes)
	assert.Len(t, c.DB.GetTask(target.ID).Notes, 2)
}

func TestNoteCopyCommand(t *testing.T) {
	c, _ := newTestContainer(t)
	source, err := c.DB.CreateTask("Source", "", domain.ModeExploring, domain.KnowledgeKnownWhatUnknownHow, 0)
	require.NoError(t, err)
	target, err := c.DB.CreateTask("Target", "", domain.ModeExploring, domain.KnowledgeKnownWhatUnknownHow, 0)
	require.NoError(t, err)
	_, err = c.DB.AddNote(source.ID, "keep both", "", false)
	require.NoError(t, err)

	out, err := runCommand(t, c, "note", "cp", source.ID, "1", "--to", target.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Copied note")
	assert.Len(t, c.DB.GetTask(source.ID).Notes, 1)
	assert.Len(t, c.DB.GetTask(target.ID).Notes, 1)

	_, err = runCommand(t, c, "note", "cp", source.ID, "1")
	require.Error(t, err)
}

func TestNoteMergeCommand(t *testing.T) {
	c, _ := newTestContainer(t)
	first, err := c.DB.CreateTask("First", "", domain.ModeExploring, domain.KnowledgeKnownWhatUnknownHow, 0)
	require.NoError(t, err)
	second, err := c.DB.CreateTask("Second", "", domain.ModeExploring, domain.KnowledgeKnownWhatUnknownHow, 0)
	require.NoError(t, err)
	_, err = c.DB.AddNote(first.ID, "a", "", false)
	require.NoError(t, err)
	_, err = c.DB.AddNote(second.ID, "b", "", false)
	require.NoError(t, err)

	out, err := runCommand(t, c, "note", "merge", first.ID, second.ID, "--new-task", "Combined")
	require.NoError(t, err)
	assert.Contains(t, out, "Merged notes from 2 task(s)")

	tasks := c.DB.AllTasks()
	require.Len(t, tasks, 3)
	merged := tasks[2]
	assert.Equal(t, "Combined", merged.Title)
	assert.Len(t, merged.Notes, 2)

	// Exactly one of --into / --new-task.
	_, err = runCommand(t, c, "note", "merge", first.ID)
	require.Error(t, err)
	_, err = runCommand(t, c, "note", "merge", first.ID, "--into", second.ID, "--new-task", "x")
	require.Error(t, err)
}

func TestModeAndConcludeCommands(t *testing.T) {
	c, _ := newTestContainer(t)
	task, err := c.DB.CreateTask("Switchable", "", domain.ModePlanning, domain.KnowledgeKnownWhatKnownHow, 0)
	require.NoError(t, err)

	out, err := runCommand(t, c, "mode", "explore", task.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "now exploring")
	assert.Equal(t, domain.ModeExploring, c.DB.GetTask(task.ID).Mode)

	// Concluding while still digging keeps the task exploring.
	out, err = runCommand(t, c, "conclude", task.ID, "maybe the buffer", "--stay")
	require.NoError(t, err)
	assert.NotContains(t, out, "back in planning")
	assert.Equal(t, domain.ModeExploring, c.DB.GetTask(task.ID).Mode)

	// A final conclusion switches the task back to planning.
	out, err = runCommand(t, c, "conclude", task.ID, "it was the buffer")
	require.NoError(t, err)
	assert.Contains(t, out, "back in planning")
	assert.Equal(t, domain.ModePlanning, c.DB.GetTask(task.ID).Mode)
	// Conclusion survives the switch.
	assert.Equal(t, "it was the buffer", c.DB.GetTask(task.ID).Conclusion)

	_, err = runCommand(t, c, "conclude", task.ID, "--clear")
	require.NoError(t, err)
	assert.Empty(t, c.DB.GetTask(task.ID).Conclusion)

	_, err = runCommand(t, c, "conclude", task.ID)
	require.Error(t, err)
}

func TestSearchCommand(t *testing.T) {
	c, _ := newTestContainer(t)
	task, err := c.DB.CreateTask("Protein folding", "", domain.ModeExploring, domain.KnowledgeKnownWhatUnknownHow, 0)
	require.NoError(t, err)
	_, err = c.DB.CreateTask("Crystal growth", "", domain.ModePlanning, domain.KnowledgeKnownWhatKnownHow, 0)
	require.NoError(t, err)
	_, err = c.DB.AddNote(task.ID, "gradient collapse observed", "", false)
	require.NoError(t, err)

	out, err := runCommand(t, c, "search", "protein")
	require.NoError(t, err)
	assert.Contains(t, out, "Protein folding")
	assert.NotContains(t, out, "Crystal growth")

	// Empty keyword lists every task.
	out, err = runCommand(t, c, "search")
	require.NoError(t, err)
	assert.Contains(t, out, "Crystal growth")

	out, err = runCommand(t, c, "search", "--notes", "gradient")
	require.NoError(t, err)
	assert.Contains(t, out, "gradient collapse observed")

	// Note search with no keyword finds nothing.
	out, err = runCommand(t, c, "search", "--notes")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching notes")
}

func TestExportCommand_RoundTrip(t *testing.T) {
	c, _ := newTestContainer(t)
	task, err := c.DB.CreateTask("Exported", "body", domain.ModePlanning, domain.KnowledgeKnownWhatKnownHow, 1)
	require.NoError(t, err)
	_, err = c.DB.AddSubTask(task.ID, "Step", "")
	require.NoError(t, err)

	out, err := runCommand(t, c, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "title: Exported")
	assert.Contains(t, out, "title: Step")

	// The export parses back as drafts.
	drafts, err := domain.ParseTaskDrafts([]byte(out))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Exported", drafts[0].Title)
	assert.Equal(t, 1, drafts[0].Priority)
	require.Len(t, drafts[0].SubTasks, 1)
}

func TestExportCommand_JSONFormat(t *testing.T) {
	c, _ := newTestContainer(t)
	task, err := c.DB.CreateTask("Dumped", "", domain.ModeExploring, domain.KnowledgeKnownWhatUnknownHow, 0)
	require.NoError(t, err)
	_, err = c.DB.AddNote(task.ID, "left out of drafts", "", false)
	require.NoError(t, err)

	out, err := runCommand(t, c, "export", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Dumped"`)
	// Unlike the draft format, the JSON dump carries notes.
	assert.Contains(t, out, "left out of drafts")

	_, err = runCommand(t, c, "export", "--format", "xml")
	require.Error(t, err)
}

func TestImportCommand(t *testing.T) {
	c, store := newTestContainer(t)

	path := filepath.Join(t.TempDir(), "drafts.yaml")
	data := []byte(`- title: Imported task
  mode: exploring
  subtasks:
    - title: First step
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	out, err := runCommand(t, c, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Created")

	require.Len(t, store.Tasks, 1)
	assert.Equal(t, "Imported task", store.Tasks[0].Title)
	assert.Equal(t, domain.ModeExploring, store.Tasks[0].Mode)
	require.Len(t, store.Tasks[0].SubTasks, 1)

	_, err = runCommand(t, c, "import", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
