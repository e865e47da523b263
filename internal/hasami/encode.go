package hasami

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidPosition = errors.New("invalid position")

const (
	blackMark = 'b'
	redMark   = 'r'
)

// InitialPosition is the encoded starting position.
const InitialPosition = "rrrrrrrrr/9/9/9/9/9/9/9/bbbbbbbbb b 0 0"

// Encode - FEN-like snapshot: nine rows from a to i joined by "/", pieces as b/r,
// digits for runs of empty cells, then the side to move and the captured counts of black and red.
func (that *Game) Encode() string {
	var sb strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(that.encodeRow(row))
	}

	sb.WriteByte(' ')
	sb.WriteByte(colorMark(that.active))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(that.board.CapturedCount(Black)))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(that.board.CapturedCount(Red)))

	return sb.String()
}

func (that *Game) encodeRow(row int) string {
	var sb strings.Builder

	empty := 0
	for col := 0; col < Size; col++ {
		color := that.board.OccupantAt(Square{Row: row, Col: col})
		if color == None {
			empty++
			continue
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
			empty = 0
		}
		sb.WriteByte(colorMark(color))
	}
	if empty > 0 {
		sb.WriteByte(byte('0' + empty))
	}

	return sb.String()
}

// Rows renders every row as nine characters: 'b', 'r' or '.'.
func (that *Game) Rows() []string {
	rows := make([]string, Size)
	for row := 0; row < Size; row++ {
		line := make([]byte, Size)
		for col := 0; col < Size; col++ {
			switch color := that.board.OccupantAt(Square{Row: row, Col: col}); color {
			case None:
				line[col] = '.'
			default:
				line[col] = colorMark(color)
			}
		}
		rows[row] = string(line)
	}

	return rows
}

// DecodeGame - rebuilds a game from Encode output. Status is derived from the captured counts.
func DecodeGame(position string) (*Game, error) {
	fields := strings.Fields(position)
	if len(fields) != 4 {
		return nil, fmt.Errorf("%w: expected 4 fields, got %d", ErrInvalidPosition, len(fields))
	}

	board, err := decodeBoard(fields[0])
	if err != nil {
		return nil, err
	}

	var active Color
	switch fields[1] {
	case string(blackMark):
		active = Black
	case string(redMark):
		active = Red
	default:
		return nil, fmt.Errorf("%w: unknown side to move %q", ErrInvalidPosition, fields[1])
	}

	for i, color := range [...]Color{Black, Red} {
		count, err := strconv.Atoi(fields[2+i])
		if err != nil || count < 0 || count > Size {
			return nil, fmt.Errorf("%w: bad captured count %q", ErrInvalidPosition, fields[2+i])
		}
		if count+len(board.Pieces(color)) > Size {
			return nil, fmt.Errorf("%w: too many %s pieces", ErrInvalidPosition, color)
		}
		board.captured[color] = count
	}

	game := &Game{board: board, active: active}
	game.updateStatus()

	return game, nil
}

func decodeBoard(placement string) (*Board, error) {
	rows := strings.Split(placement, "/")
	if len(rows) != Size {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidPosition, Size, len(rows))
	}

	board := NewEmptyBoard()
	for row, line := range rows {
		col := 0
		for _, ch := range line {
			if col >= Size {
				return nil, fmt.Errorf("%w: row %c is too long", ErrInvalidPosition, 'a'+row)
			}

			switch {
			case ch >= '1' && ch <= '9':
				col += int(ch - '0')
				continue
			case ch == '.':
				col++
				continue
			case ch == blackMark:
				board.Place(Black, Square{Row: row, Col: col})
			case ch == redMark:
				board.Place(Red, Square{Row: row, Col: col})
			default:
				return nil, fmt.Errorf("%w: unexpected %q in row %c", ErrInvalidPosition, ch, 'a'+row)
			}
			col++
		}

		if col != Size {
			return nil, fmt.Errorf("%w: row %c has %d cells", ErrInvalidPosition, 'a'+row, col)
		}
	}

	return board, nil
}

func colorMark(color Color) byte {
	if color == Red {
		return redMark
	}

	return blackMark
}

type gameJSON struct {
	Position      string   `json:"position"`
	Rows          []string `json:"rows,omitempty"`
	ActivePlayer  Color    `json:"active_player"`
	Status        Status   `json:"status"`
	CapturedBlack int      `json:"captured_black"`
	CapturedRed   int      `json:"captured_red"`
}

func (that *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(gameJSON{
		Position:      that.Encode(),
		Rows:          that.Rows(),
		ActivePlayer:  that.active,
		Status:        that.status,
		CapturedBlack: that.board.CapturedCount(Black),
		CapturedRed:   that.board.CapturedCount(Red),
	})
}

// UnmarshalJSON restores the game from its position field; the other fields are derived.
func (that *Game) UnmarshalJSON(data []byte) error {
	var raw struct {
		Position string `json:"position"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal game: %w", err)
	}

	decoded, err := DecodeGame(raw.Position)
	if err != nil {
		return err
	}

	*that = *decoded

	return nil
}
