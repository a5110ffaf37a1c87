package investigation

import (
	"github.com/myrjola/detectivequest/internal/mansion"
	"unicode"
)

type Command int

const (
	Invalid Command = iota
	Left
	Right
	Stop
)

func (c Command) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	case Stop:
		return "stop"
	case Invalid:
	}
	return "invalid"
}

// ParseCommand reads the first non-whitespace character of line, ignoring case: e moves left, d moves right and s
// stops. Everything else, including a blank line, is Invalid.
func ParseCommand(line string) Command {
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		switch unicode.ToLower(r) {
		case 'e':
			return Left
		case 'd':
			return Right
		case 's':
			return Stop
		}
		return Invalid
	}
	return Invalid
}

func (c Command) direction() (mansion.Direction, bool) {
	switch c {
	case Left:
		return mansion.Left, true
	case Right:
		return mansion.Right, true
	case Invalid, Stop:
	}
	return mansion.Left, false
}
