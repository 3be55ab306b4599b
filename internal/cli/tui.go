package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/labtrack/labtrack/internal/app"
	"github.com/labtrack/labtrack/internal/tui"
)

// launchTUI starts the interactive interface on the container's database.
func launchTUI(c *app.Container) error {
	p := tea.NewProgram(tui.New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
