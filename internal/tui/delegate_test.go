package tui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/labtrack/labtrack/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEscapeNewlines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no newlines", input: "simple text", want: "simple text"},
		{name: "single LF", input: "line1\nline2", want: "line1 line2"},
		{name: "CRLF", input: "line1\r\nline2", want: "line1 line2"},
		{name: "single CR", input: "line1\rline2", want: "line1 line2"},
		{name: "empty string", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeNewlines(tt.input))
		})
	}
}

func TestTaskItem_FilterValue(t *testing.T) {
	item := taskItem{task: &domain.Task{
		Title: "Protein folding",
		Tags:  []string{"bio", "reading"},
	}}
	got := item.FilterValue()
	assert.Contains(t, got, "Protein folding")
	assert.Contains(t, got, "bio")
	assert.Contains(t, got, "reading")
}

func TestStatusIcon(t *testing.T) {
	for _, status := range domain.AllStatuses() {
		assert.NotEqual(t, " ", StatusIcon(status), "status %s has no icon", status)
	}
	assert.Equal(t, " ", StatusIcon(domain.Status("BOGUS")))
}

func TestPriorityMark(t *testing.T) {
	assert.Equal(t, "  ", PriorityMark(0))
	assert.Equal(t, "! ", PriorityMark(1))
	assert.Equal(t, "!!", PriorityMark(2))
	assert.Equal(t, "!!", PriorityMark(5))
}

func TestTaskDelegate_Render(t *testing.T) {
	task := &domain.Task{
		ID:     "abc12345",
		Title:  "Render me",
		Status: domain.StatusInProgress,
		Mode:   domain.ModePlanning,
		Tags:   []string{"demo"},
	}
	delegate := newTaskDelegate(DefaultStyles())
	m := list.New([]list.Item{taskItem{task: task}}, delegate, 80, 20)

	var buf bytes.Buffer
	delegate.Render(&buf, m, 0, taskItem{task: task})

	out := buf.String()
	assert.Contains(t, out, "Render me")
	assert.Contains(t, out, "[demo]")
}

func TestTaskDelegate_RenderExploringShowsNoteCount(t *testing.T) {
	task := &domain.Task{
		ID:     "def12345",
		Title:  "Exploring task",
		Status: domain.StatusExploring,
		Mode:   domain.ModeExploring,
		Notes: []*domain.ExplorationNote{
			{ID: "n1", Content: "one"},
			{ID: "n2", Content: "two"},
		},
	}
	delegate := newTaskDelegate(DefaultStyles())
	m := list.New([]list.Item{taskItem{task: task}}, delegate, 80, 20)

	var buf bytes.Buffer
	delegate.Render(&buf, m, 0, taskItem{task: task})
	assert.Contains(t, buf.String(), "2n")
}
