package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/labtrack/labtrack/internal/domain"
	"github.com/mattn/go-runewidth"
)

type taskItem struct {
	task *domain.Task
}

func (t taskItem) FilterValue() string {
	return t.task.Title + " " + strings.Join(t.task.Tags, " ")
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

type taskDelegate struct {
	styles Styles
}

func newTaskDelegate(styles Styles) taskDelegate {
	return taskDelegate{styles: styles}
}

func (d taskDelegate) Height() int {
	return 2
}

func (d taskDelegate) Spacing() int {
	return 1
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	selected := index == m.Index()

	indicatorChar := " "
	if selected {
		indicatorChar = ">"
	}

	statusIcon := d.styles.StatusStyle(task.Status).Render(StatusIcon(task.Status))
	priority := PriorityMark(task.Priority)
	progress := fmt.Sprintf("%3.0f%%", task.Progress()*100)
	if task.Mode == domain.ModeExploring {
		progress = fmt.Sprintf("%3dn", len(task.Notes))
	}

	var tagsStr string
	for _, tag := range task.Tags {
		tagsStr += "[" + tag + "] "
	}

	prefixWidth := 14 + runewidth.StringWidth(tagsStr)
	listWidth := m.Width()
	maxTitleLen := listWidth - prefixWidth - 2
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	title := runewidth.Truncate(escapeNewlines(task.Title), maxTitleLen, "…")

	titleStyle := d.styles.TaskTitle
	descStyle := d.styles.TaskDesc
	if selected {
		titleStyle = d.styles.TaskTitleSelected
		descStyle = d.styles.TaskDescSelected
	}

	line1 := fmt.Sprintf("%s %s %s %s %s%s",
		d.styles.CursorSelected.Render(indicatorChar),
		statusIcon,
		priority,
		progress,
		descStyle.Render(tagsStr),
		titleStyle.Render(title),
	)

	desc := task.Description
	if task.Mode == domain.ModeExploring && task.Conclusion != "" {
		desc = "=> " + task.Conclusion
	}
	maxDescLen := listWidth - 4
	if maxDescLen < 10 {
		maxDescLen = 10
	}
	desc = runewidth.Truncate(escapeNewlines(desc), maxDescLen, "…")
	line2 := "   " + descStyle.Render(desc)

	fmt.Fprintf(w, "%s\n%s", line1, line2)
}
