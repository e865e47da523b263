package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/hasami"
)

// Run - plays a local game from the starting position until the user quits.
func Run() error {
	p := tea.NewProgram(NewModel(hasami.NewGame()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
