// Package tui implements the interactive terminal interface for labtrack.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/labtrack/labtrack/internal/app"
	"github.com/labtrack/labtrack/internal/domain"
)

type viewState int

const (
	stateList viewState = iota
	stateDetail
	stateConfirmDelete
)

// Model is the root bubbletea model.
type Model struct {
	c      *app.Container
	err    error
	detail *domain.Task
	keys   KeyMap
	styles Styles
	list   list.Model
	state  viewState
	cursor int // selected subtask/note row in detail view

	showCompleted bool
	width         int
	height        int
}

// New creates the root model.
func New(c *app.Container) Model {
	styles := DefaultStyles()

	l := list.New(nil, newTaskDelegate(styles), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	showCompleted := true
	if c.Config != nil && c.Config.UI.ShowCompleted != nil {
		showCompleted = *c.Config.UI.ShowCompleted
	}

	return Model{
		c:             c,
		keys:          DefaultKeyMap(),
		styles:        styles,
		list:          l,
		showCompleted: showCompleted,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadTasks
}

func (m Model) loadTasks() tea.Msg {
	return MsgTasksLoaded{Tasks: m.c.DB.AllTasks()}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-2, msg.Height-4)
		return m, nil

	case MsgTasksLoaded:
		items := make([]list.Item, 0, len(msg.Tasks))
		for _, task := range msg.Tasks {
			if !m.showCompleted && task.Status == domain.StatusCompleted {
				continue
			}
			items = append(items, taskItem{task: task})
		}
		return m, m.list.SetItems(items)

	case MsgTaskDeleted:
		m.state = stateList
		m.detail = nil
		return m, m.loadTasks

	case MsgTaskChanged:
		if m.detail != nil {
			m.detail = m.c.DB.GetTask(m.detail.ID)
			if m.detail == nil {
				m.state = stateList
			}
		}
		return m, m.loadTasks

	case MsgError:
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter input is active, keys belong to the list.
	if m.state == stateList && m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch m.state {
	case stateConfirmDelete:
		return m.handleConfirmKey(msg)
	case stateDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Enter):
		if task := m.selectedTask(); task != nil {
			m.detail = task
			m.cursor = 0
			m.state = stateDetail
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.selectedTask() != nil {
			m.state = stateConfirmDelete
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveUp):
		return m, m.moveTaskCmd(-1)

	case key.Matches(msg, m.keys.MoveDown):
		return m, m.moveTaskCmd(1)

	case key.Matches(msg, m.keys.SwitchMode):
		return m, m.switchModeCmd()

	case key.Matches(msg, m.keys.ToggleShowAll):
		m.showCompleted = !m.showCompleted
		return m, m.loadTasks
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	task := m.detail
	if task == nil {
		m.state = stateList
		return m, nil
	}
	rows := m.detailRowCount()

	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Quit):
		m.state = stateList
		m.detail = nil
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < rows-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleDone):
		if task.Mode == domain.ModePlanning {
			return m, m.toggleSubTaskCmd()
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveUp):
		return m, m.moveDetailRowCmd(-1)

	case key.Matches(msg, m.keys.MoveDown):
		return m, m.moveDetailRowCmd(1)

	case key.Matches(msg, m.keys.SwitchMode):
		taskID := task.ID
		return m, func() tea.Msg {
			if _, err := m.c.DB.SwitchMode(taskID, task.Mode == domain.ModePlanning); err != nil {
				return MsgError{Err: err}
			}
			return MsgTaskChanged{TaskID: taskID}
		}
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Confirm) {
		task := m.selectedTask()
		m.state = stateList
		if task == nil {
			return m, nil
		}
		taskID := task.ID
		return m, func() tea.Msg {
			if _, err := m.c.DB.DeleteTask(taskID); err != nil {
				return MsgError{Err: err}
			}
			return MsgTaskDeleted{TaskID: taskID}
		}
	}
	m.state = stateList
	return m, nil
}

func (m Model) selectedTask() *domain.Task {
	if item, ok := m.list.SelectedItem().(taskItem); ok {
		return item.task
	}
	return nil
}

func (m Model) detailRowCount() int {
	if m.detail == nil {
		return 0
	}
	if m.detail.Mode == domain.ModePlanning {
		return len(m.detail.SubTasks)
	}
	return len(m.detail.Notes)
}

func (m Model) moveTaskCmd(direction int) tea.Cmd {
	task := m.selectedTask()
	if task == nil {
		return nil
	}
	taskID := task.ID
	return func() tea.Msg {
		if _, err := m.c.DB.MoveTask(taskID, direction); err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{TaskID: taskID}
	}
}

func (m Model) switchModeCmd() tea.Cmd {
	task := m.selectedTask()
	if task == nil {
		return nil
	}
	taskID := task.ID
	toExploring := task.Mode == domain.ModePlanning
	return func() tea.Msg {
		if _, err := m.c.DB.SwitchMode(taskID, toExploring); err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{TaskID: taskID}
	}
}

func (m Model) toggleSubTaskCmd() tea.Cmd {
	task := m.detail
	ordered := orderedSubTasks(task)
	if m.cursor >= len(ordered) {
		return nil
	}
	st := ordered[m.cursor]
	taskID, subTaskID := task.ID, st.ID
	completed := st.IsCompleted()
	return func() tea.Msg {
		var err error
		if completed {
			status := domain.StatusPending
			_, err = m.c.DB.UpdateSubTask(taskID, subTaskID, domain.SubTaskPatch{
				Status:         &status,
				ClearCompleted: true,
			})
		} else {
			_, err = m.c.DB.CompleteSubTask(taskID, subTaskID)
		}
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{TaskID: taskID}
	}
}

func (m Model) moveDetailRowCmd(direction int) tea.Cmd {
	task := m.detail
	if task == nil {
		return nil
	}
	taskID := task.ID
	if task.Mode == domain.ModePlanning {
		ordered := orderedSubTasks(task)
		if m.cursor >= len(ordered) {
			return nil
		}
		subTaskID := ordered[m.cursor].ID
		return func() tea.Msg {
			if _, err := m.c.DB.MoveSubTask(taskID, subTaskID, direction); err != nil {
				return MsgError{Err: err}
			}
			return MsgTaskChanged{TaskID: taskID}
		}
	}
	if m.cursor >= len(task.Notes) {
		return nil
	}
	noteID := task.Notes[m.cursor].ID
	return func() tea.Msg {
		if _, err := m.c.DB.MoveNoteOrder(taskID, noteID, direction); err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskChanged{TaskID: taskID}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	header := m.styles.HeaderText.Render("labtrack")
	if m.state == stateDetail && m.detail != nil {
		header += m.styles.DetailMuted.Render("  " + m.detail.Mode.Display())
	}
	b.WriteString(m.styles.Header.Render(header))
	b.WriteString("\n")

	switch m.state {
	case stateDetail:
		b.WriteString(m.detailView())
	case stateConfirmDelete:
		b.WriteString(m.list.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render("Delete selected task? (y/esc)"))
	default:
		b.WriteString(m.list.View())
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
	} else {
		b.WriteString(m.styles.Help.Render(m.helpLine()))
	}
	return m.styles.App.Render(b.String())
}

func (m Model) helpLine() string {
	if m.state == stateDetail {
		return "↑/↓ move  space toggle  J/K reorder  m mode  esc back"
	}
	return "↑/↓ move  enter detail  / filter  m mode  a all  x delete  q quit"
}

func (m Model) detailView() string {
	task := m.detail
	if task == nil {
		return ""
	}
	var b strings.Builder

	b.WriteString(m.styles.DetailTitle.Render(task.Title))
	b.WriteString("\n")
	status := m.styles.StatusStyle(task.Status).Render(task.Status.Display())
	b.WriteString(fmt.Sprintf("%s  %s\n", status, m.styles.DetailMuted.Render(task.Knowledge.Display())))
	if task.Description != "" {
		b.WriteString(m.styles.TaskDesc.Render(escapeNewlines(task.Description)))
		b.WriteString("\n")
	}
	if task.Conclusion != "" {
		b.WriteString(m.styles.Conclusion.Render("Conclusion: " + escapeNewlines(task.Conclusion)))
		b.WriteString("\n")
	}

	if task.Mode == domain.ModePlanning {
		b.WriteString(m.styles.DetailSection.Render(fmt.Sprintf("Subtasks (%.0f%%)", task.Progress()*100)))
		b.WriteString("\n")
		for i, st := range orderedSubTasks(task) {
			mark := "[ ]"
			if st.IsCompleted() {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %s", mark, st.Title)
			b.WriteString(m.detailRow(i, line))
		}
	} else {
		b.WriteString(m.styles.DetailSection.Render(fmt.Sprintf("Notes (%d)", len(task.Notes))))
		b.WriteString("\n")
		for i, note := range task.Notes {
			prefix := note.Created.Format("01-02 15:04")
			content := escapeNewlines(note.Content)
			if note.Breakthrough {
				content = m.styles.Breakthrough.Render("! " + content)
			}
			line := fmt.Sprintf("%s  %s", m.styles.DetailMuted.Render(prefix), content)
			b.WriteString(m.detailRow(i, line))
			if note.Insight != "" {
				b.WriteString("      " + m.styles.TaskDesc.Render(escapeNewlines(note.Insight)) + "\n")
			}
		}
	}
	return b.String()
}

func (m Model) detailRow(index int, line string) string {
	cursor := "  "
	if index == m.cursor {
		cursor = m.styles.CursorSelected.Render("> ")
	}
	return cursor + line + "\n"
}

func orderedSubTasks(task *domain.Task) []*domain.SubTask {
	out := make([]*domain.SubTask, len(task.SubTasks))
	copy(out, task.SubTasks)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
