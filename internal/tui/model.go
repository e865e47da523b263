package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/hasami"
)

const maxLogLines = 200

var ErrMoveSyntax = errors.New(`expected a move like "i5 e5" or "i5e5"`)

// Model - hot-seat session: both players share one terminal and take turns typing moves.
type Model struct {
	game *hasami.Game

	input    textinput.Model
	logLines []string

	width int
}

func NewModel(game *hasami.Game) Model {
	ti := textinput.New()
	ti.Placeholder = "i5 e5"
	ti.Prompt = "> "
	ti.CharLimit = 16
	ti.Width = 30
	ti.Focus()

	return Model{
		game:     game,
		input:    ti,
		logLines: []string{"Black moves first. Enter a move, q to quit."},
	}
}

func (that Model) Game() *hasami.Game { return that.game }

func (that Model) Init() tea.Cmd { return textinput.Blink }

func (that Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		that.width = msg.Width
		that.input.Width = min(60, max(20, that.width-4))
		return that, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return that, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(that.input.Value())
			that.input.SetValue("")

			if line == "q" || line == "quit" {
				return that, tea.Quit
			}

			if line != "" {
				that.submit(line)
			}

			return that, nil
		}
	}

	var cmd tea.Cmd
	that.input, cmd = that.input.Update(msg)

	return that, cmd
}

func (that *Model) submit(line string) {
	that.appendLog("> " + line)

	if that.game.IsFinished() {
		that.appendLog("game over: " + that.game.Status().String())
		return
	}

	from, to, err := ParseMove(line)
	if err != nil {
		that.appendLog(err.Error())
		return
	}

	mover := that.game.ActivePlayer()

	result, err := that.game.MakeMove(from, to)
	if err != nil {
		that.appendLog(fmt.Sprintf("rejected: %v", err))
		return
	}

	entry := fmt.Sprintf("%s %s-%s", mover, result.From, result.To)
	if captured := result.CapturedSquares(); len(captured) > 0 {
		entry += " captures " + strings.Join(captured, " ")
	}
	that.appendLog(entry)

	if that.game.IsFinished() {
		that.appendLog("game over: " + that.game.Status().String())
	}
}

// ParseMove - splits "a1 b1" or "a1b1" into two square tokens.
func ParseMove(line string) (string, string, error) {
	fields := strings.Fields(strings.ToLower(line))

	switch {
	case len(fields) == 2:
		return fields[0], fields[1], nil
	case len(fields) == 1 && len(fields[0]) == 4:
		return fields[0][:2], fields[0][2:], nil
	default:
		return "", "", ErrMoveSyntax
	}
}

func (that *Model) appendLog(s string) {
	that.logLines = append(that.logLines, s)
	if len(that.logLines) > maxLogLines {
		that.logLines = that.logLines[len(that.logLines)-maxLogLines:]
	}
}

func (that Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	status := fmt.Sprintf("to move: %s | captured black: %d red: %d | %s",
		that.game.ActivePlayer(),
		that.game.CapturedCount(hasami.Black),
		that.game.CapturedCount(hasami.Red),
		that.game.Status(),
	)

	header := titleStyle.Render("Hasami Shogi") + "\n" + status

	board := boxStyle.Render(RenderBoard(that.game))

	const logHeight = 8
	logStart := max(0, len(that.logLines)-logHeight)
	logBox := boxStyle.Width(max(30, that.width-2)).Height(logHeight).
		Render(strings.Join(that.logLines[logStart:], "\n"))

	inputLine := that.input.View()
	if that.game.IsFinished() {
		inputLine = titleStyle.Render("game over: "+that.game.Status().String()) + "  (q to quit)\n" + inputLine
	}

	return header + "\n" + board + "\n" + logBox + "\n" + boxStyle.Render(inputLine) + "\n"
}
