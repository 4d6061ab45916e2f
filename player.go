package bgrules

import "strconv"

// Player identifies one side of a match.
type Player int8

const (
	PlayerNone Player = 0
	PlayerA    Player = 1 // Moves from point 0 towards point 23.
	PlayerB    Player = 2 // Moves from point 23 towards point 0.
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return PlayerNone
	}
}

// Valid reports whether p is PlayerA or PlayerB.
func (p Player) Valid() bool {
	return p == PlayerA || p == PlayerB
}

func (p Player) index() int {
	return int(p) - 1
}

// direction is the sign of point movement for p.
func (p Player) direction() int {
	if p == PlayerB {
		return -1
	}
	return 1
}

// HomeRange returns the first and last point of the player's home board,
// in the order the player travels through them.
func (p Player) HomeRange() (from int, to int) {
	if p == PlayerB {
		return 5, 0
	}
	return 18, 23
}

// InHome reports whether point lies within the player's home board.
func (p Player) InHome(point int) bool {
	if p == PlayerB {
		return point >= 0 && point <= 5
	}
	return point >= 18 && point <= 23
}

// EntryPoint returns the point a checker entering from the bar lands on
// when moved with die.
func (p Player) EntryPoint(die int) int {
	if p == PlayerB {
		return 24 - die
	}
	return die - 1
}

// Distance returns the number of pips a checker on point needs to bear off.
func (p Player) Distance(point int) int {
	if p == PlayerB {
		return point + 1
	}
	return 24 - point
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "A"
	case PlayerB:
		return "B"
	case PlayerNone:
		return "-"
	default:
		return "player(" + strconv.Itoa(int(p)) + ")"
	}
}
