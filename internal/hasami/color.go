package hasami

import (
	"encoding/json"
	"fmt"
)

type Color uint8

const (
	None Color = iota
	Black
	Red
)

const (
	colorNone  = "NONE"
	colorBlack = "BLACK"
	colorRed   = "RED"
)

func (that Color) Opponent() Color {
	switch that {
	case Black:
		return Red
	case Red:
		return Black
	default:
		return None
	}
}

func (that Color) String() string {
	switch that {
	case Black:
		return colorBlack
	case Red:
		return colorRed
	default:
		return colorNone
	}
}

// ParseColor - accepts "BLACK", "RED" and "NONE" (or an empty string).
func ParseColor(value string) (Color, error) {
	switch value {
	case colorBlack:
		return Black, nil
	case colorRed:
		return Red, nil
	case colorNone, "":
		return None, nil
	default:
		return None, fmt.Errorf("unknown color %q", value)
	}
}

func (that Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.String())
}

func (that *Color) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to unmarshal color: %w", err)
	}

	color, err := ParseColor(value)
	if err != nil {
		return err
	}

	*that = color

	return nil
}

type Status uint8

const (
	StatusUnfinished Status = iota
	StatusRedWon
	StatusBlackWon
)

func (that Status) String() string {
	switch that {
	case StatusRedWon:
		return "RED_WON"
	case StatusBlackWon:
		return "BLACK_WON"
	default:
		return "UNFINISHED"
	}
}

// Winner - returns the winning color, None while the game is unfinished.
func (that Status) Winner() Color {
	switch that {
	case StatusRedWon:
		return Red
	case StatusBlackWon:
		return Black
	default:
		return None
	}
}

func (that Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.String())
}
