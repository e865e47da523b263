package hasami

import (
	"errors"
	"fmt"
)

// Size is the number of rows and columns on the board.
const Size = 9

var ErrMalformedSquare = errors.New("malformed square")

// Square addresses a cell: Row 0..8 is 'a'..'i', Col 0..8 is '1'..'9'.
type Square struct {
	Row int
	Col int
}

// ParseSquare - parses "a1".."i9". A well-formed token outside the board (like "j1" or "a0")
// parses into an out-of-bounds square so the validator can reject it as such.
func ParseSquare(token string) (Square, error) {
	if len(token) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrMalformedSquare, token)
	}

	letter, digit := token[0], token[1]
	if letter < 'a' || letter > 'z' || digit < '0' || digit > '9' {
		return Square{}, fmt.Errorf("%w: %q", ErrMalformedSquare, token)
	}

	return Square{Row: int(letter - 'a'), Col: int(digit-'0') - 1}, nil
}

// MustParseSquare is ParseSquare for literals that are known to be valid.
func MustParseSquare(token string) Square {
	sq, err := ParseSquare(token)
	if err != nil {
		panic(err)
	}

	return sq
}

func (that Square) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Square) String() string {
	if !that.InBounds() {
		return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
	}

	return string([]byte{byte('a' + that.Row), byte('1' + that.Col)})
}

func (that Square) MarshalText() ([]byte, error) {
	if !that.InBounds() {
		return nil, fmt.Errorf("%w: %s", ErrMalformedSquare, that)
	}

	return []byte(that.String()), nil
}

func (that *Square) UnmarshalText(text []byte) error {
	sq, err := ParseSquare(string(text))
	if err != nil {
		return err
	}

	*that = sq

	return nil
}

func (that Square) step(dir direction) Square {
	return Square{Row: that.Row + dir.dRow, Col: that.Col + dir.dCol}
}

type direction struct {
	dRow int
	dCol int
}

var (
	left  = direction{dRow: 0, dCol: -1}
	right = direction{dRow: 0, dCol: 1}
	up    = direction{dRow: -1, dCol: 0}
	down  = direction{dRow: 1, dCol: 0}
)
