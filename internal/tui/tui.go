package tui

import (
	"rentdesk/internal/api"
	"rentdesk/internal/mutate"

	tea "github.com/charmbracelet/bubbletea"
)

// Deps is everything the console needs from the outside world.
type Deps struct {
	Client   *api.CachedClient
	Coord    *mutate.Coordinator
	PageSize int
}

func Run(d Deps) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(d)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
