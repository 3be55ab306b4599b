package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/labtrack/labtrack/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color
	DescSelected  lipgloss.Color

	// Status colors
	Pending    lipgloss.Color
	InProgress lipgloss.Color
	Exploring  lipgloss.Color
	Completed  lipgloss.Color
	Paused     lipgloss.Color

	// Note colors
	Breakthrough lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	DescNormal:    lipgloss.Color("#636E72"), // Gray
	DescSelected:  lipgloss.Color("#B2BEC3"), // Light gray

	Pending:    lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Exploring:  lipgloss.Color("#A29BFE"), // Lavender
	Completed:  lipgloss.Color("#00B894"), // Green
	Paused:     lipgloss.Color("#636E72"), // Gray

	Breakthrough: lipgloss.Color("#FDCB6E"), // Yellow
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style

	// Task list
	TaskTitle         lipgloss.Style
	TaskTitleSelected lipgloss.Style
	TaskDesc          lipgloss.Style
	TaskDescSelected  lipgloss.Style
	CursorSelected    lipgloss.Style

	// Status badges
	StatusPending    lipgloss.Style
	StatusInProgress lipgloss.Style
	StatusExploring  lipgloss.Style
	StatusCompleted  lipgloss.Style
	StatusPaused     lipgloss.Style

	// Detail view
	DetailTitle   lipgloss.Style
	DetailSection lipgloss.Style
	DetailMuted   lipgloss.Style
	Breakthrough  lipgloss.Style
	Conclusion    lipgloss.Style

	// Footer
	Help  lipgloss.Style
	Error lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(0, 1),

		Header:     lipgloss.NewStyle().Padding(0, 1).MarginBottom(1),
		HeaderText: lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),

		TaskTitle:         lipgloss.NewStyle().Foreground(Colors.TitleNormal),
		TaskTitleSelected: lipgloss.NewStyle().Foreground(Colors.TitleSelected).Bold(true),
		TaskDesc:          lipgloss.NewStyle().Foreground(Colors.DescNormal),
		TaskDescSelected:  lipgloss.NewStyle().Foreground(Colors.DescSelected),
		CursorSelected:    lipgloss.NewStyle().Foreground(Colors.Primary).Bold(true),

		StatusPending:    lipgloss.NewStyle().Foreground(Colors.Pending),
		StatusInProgress: lipgloss.NewStyle().Foreground(Colors.InProgress),
		StatusExploring:  lipgloss.NewStyle().Foreground(Colors.Exploring),
		StatusCompleted:  lipgloss.NewStyle().Foreground(Colors.Completed),
		StatusPaused:     lipgloss.NewStyle().Foreground(Colors.Paused),

		DetailTitle:   lipgloss.NewStyle().Bold(true).Foreground(Colors.TitleSelected),
		DetailSection: lipgloss.NewStyle().Bold(true).Foreground(Colors.Secondary).MarginTop(1),
		DetailMuted:   lipgloss.NewStyle().Foreground(Colors.Muted),
		Breakthrough:  lipgloss.NewStyle().Foreground(Colors.Breakthrough).Bold(true),
		Conclusion:    lipgloss.NewStyle().Foreground(Colors.Success),

		Help:  lipgloss.NewStyle().Foreground(Colors.Muted).Padding(0, 1),
		Error: lipgloss.NewStyle().Foreground(Colors.Error).Padding(0, 1),
	}
}

// StatusIcon returns the one-character icon for a status.
func StatusIcon(status domain.Status) string {
	switch status {
	case domain.StatusPending:
		return "○"
	case domain.StatusInProgress:
		return "◐"
	case domain.StatusExploring:
		return "?"
	case domain.StatusCompleted:
		return "●"
	case domain.StatusPaused:
		return "‖"
	default:
		return " "
	}
}

// StatusStyle returns the badge style for a status.
func (s Styles) StatusStyle(status domain.Status) lipgloss.Style {
	switch status {
	case domain.StatusPending:
		return s.StatusPending
	case domain.StatusInProgress:
		return s.StatusInProgress
	case domain.StatusExploring:
		return s.StatusExploring
	case domain.StatusCompleted:
		return s.StatusCompleted
	case domain.StatusPaused:
		return s.StatusPaused
	default:
		return s.TaskDesc
	}
}

// PriorityMark returns the display marker for a priority level.
func PriorityMark(priority int) string {
	switch {
	case priority >= 2:
		return "!!"
	case priority == 1:
		return "! "
	default:
		return "  "
	}
}
