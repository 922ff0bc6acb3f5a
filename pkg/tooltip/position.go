package tooltip

import (
	"errors"
	"fmt"
	"strings"
)

// Position is the side of the trigger the label is anchored to.
// The zero value is PositionTop.
type Position uint8

const (
	PositionTop Position = iota
	PositionBottom
	PositionLeft
	PositionRight
)

// ErrInvalidPosition is returned by ParsePosition for unknown names.
var ErrInvalidPosition = errors.New("invalid tooltip position")

var positionNames = [...]string{
	PositionTop:    "top",
	PositionBottom: "bottom",
	PositionLeft:   "left",
	PositionRight:  "right",
}

// Positions lists every anchor position.
func Positions() []Position {
	return []Position{PositionTop, PositionBottom, PositionLeft, PositionRight}
}

// String returns the lowercase name of the position.
func (p Position) String() string {
	if int(p) < len(positionNames) {
		return positionNames[p]
	}
	return fmt.Sprintf("Position(%d)", uint8(p))
}

// Valid reports whether p is one of the four anchor positions.
func (p Position) Valid() bool {
	return int(p) < len(positionNames)
}

// ClassName is the CSS class that applies the position's anchor rule.
func (p Position) ClassName() string {
	return "tooltip-" + p.String()
}

// ParsePosition converts a name such as "left" into a Position.
// The empty string yields the default, PositionTop.
func ParsePosition(s string) (Position, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return PositionTop, nil
	}
	for i, n := range positionNames {
		if n == name {
			return Position(i), nil
		}
	}
	return PositionTop, fmt.Errorf("%w: %q (want top, bottom, left or right)", ErrInvalidPosition, s)
}

// MarshalText implements encoding.TextMarshaler.
func (p Position) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPosition, uint8(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(b []byte) error {
	v, err := ParsePosition(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
