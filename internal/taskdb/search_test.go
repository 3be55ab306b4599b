package taskdb

import (
	"testing"

	"github.com/labtrack/labtrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSearchData(t *testing.T, db *DB) (protein, crystal *domain.Task) {
	t.Helper()
	protein = mustCreate(t, db, "Protein folding", domain.ModeExploring)
	crystal = mustCreate(t, db, "Crystal growth", domain.ModePlanning)
	_, err := db.UpdateTask(crystal.ID, domain.TaskPatch{
		Description: strPtr("grow large PROTEIN crystals"),
		Tags:        []string{"wet-lab"},
		TagsSet:     true,
	})
	require.NoError(t, err)
	return protein, crystal
}

func TestDB_SearchTasks_EmptyKeywordMatchesAll(t *testing.T) {
	db, _, _ := newTestDB(t)
	seedSearchData(t, db)

	assert.Len(t, db.SearchTasks(""), 2)
}

func TestDB_SearchTasks_MatchesTitleDescriptionTags(t *testing.T) {
	db, _, _ := newTestDB(t)
	protein, crystal := seedSearchData(t, db)

	// Case-insensitive, and description counts.
	results := db.SearchTasks("protein")
	require.Len(t, results, 2)
	assert.Equal(t, protein.ID, results[0].ID)
	assert.Equal(t, crystal.ID, results[1].ID)

	results = db.SearchTasks("wet-lab")
	require.Len(t, results, 1)
	assert.Equal(t, crystal.ID, results[0].ID)

	assert.Empty(t, db.SearchTasks("unrelated"))
}

func TestDB_SearchNotes_EmptyKeywordReturnsNothing(t *testing.T) {
	db, _, _ := newTestDB(t)
	task := mustCreate(t, db, "Exploration", domain.ModeExploring)
	_, err := db.AddNote(task.ID, "something", "", false)
	require.NoError(t, err)

	assert.Empty(t, db.SearchNotes(""))
	assert.Empty(t, db.SearchNotes("   "))
	assert.Empty(t, db.SearchNotesInTask(task.ID, ""))
}

func TestDB_SearchNotes_Global(t *testing.T) {
	db, _, _ := newTestDB(t)
	first := mustCreate(t, db, "First", domain.ModeExploring)
	second := mustCreate(t, db, "Second", domain.ModeExploring)
	db.AddNote(first.ID, "observed gradient collapse", "", false)
	db.AddNote(second.ID, "no collapse here", "stable gradient", false)
	db.AddNote(second.ID, "unrelated", "", false)

	results := db.SearchNotes("GRADIENT")
	require.Len(t, results, 2)
	assert.Equal(t, first.ID, results[0].TaskID)
	assert.Equal(t, "First", results[0].TaskTitle)
	assert.Equal(t, domain.ModeExploring, results[0].TaskMode)
	assert.Equal(t, second.ID, results[1].TaskID)
}

func TestDB_SearchNotesInTask(t *testing.T) {
	db, _, _ := newTestDB(t)
	first := mustCreate(t, db, "First", domain.ModeExploring)
	second := mustCreate(t, db, "Second", domain.ModeExploring)
	db.AddNote(first.ID, "match inside", "", false)
	db.AddNote(second.ID, "match elsewhere", "", false)

	results := db.SearchNotesInTask(first.ID, "match")
	require.Len(t, results, 1)
	assert.Equal(t, first.ID, results[0].TaskID)

	assert.Empty(t, db.SearchNotesInTask("missing", "match"))
}
