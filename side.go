package treediff

import "strings"

// Side identifies one of the two trees being compared.
type Side int

const (
	// Left is the first tree passed to Match.
	Left Side = iota
	// Right is the second tree passed to Match.
	Right
)

// Sides lists both sides in the order Match visits them.
var Sides = [2]Side{Left, Right}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseSide converts "left" or "right" (any case) into a Side.
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(s) {
	case "left", "l":
		return Left, true
	case "right", "r":
		return Right, true
	}
	return 0, false
}

// Direction is the direction of the last navigation step.
type Direction int

const (
	// Next moves towards later nodes in display order.
	Next Direction = iota
	// Previous moves towards earlier nodes in display order.
	Previous
)

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}
