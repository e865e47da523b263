package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/hasami"
)

var (
	blackStyle = lipgloss.NewStyle().Bold(true)
	redStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	emptyStyle = lipgloss.NewStyle().Faint(true)
)

// RenderBoard - the 9x9 grid with rows a..i top to bottom and columns 1..9 left to right.
func RenderBoard(game *hasami.Game) string {
	var b strings.Builder

	b.WriteString("   1 2 3 4 5 6 7 8 9\n")

	for row := 0; row < hasami.Size; row++ {
		b.WriteByte(byte('a' + row))
		b.WriteString(" ")

		for col := 0; col < hasami.Size; col++ {
			b.WriteString(" ")
			b.WriteString(cell(game.OccupantAt(hasami.Square{Row: row, Col: col})))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func cell(color hasami.Color) string {
	switch color {
	case hasami.Black:
		return blackStyle.Render("b")
	case hasami.Red:
		return redStyle.Render("r")
	default:
		return emptyStyle.Render(".")
	}
}
