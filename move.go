package bgrules

import (
	"fmt"
	"strings"
)

// MoveKind is the closed set of move descriptor kinds.
type MoveKind int8

const (
	MovePoint            MoveKind = iota + 1 // One die, point to point.
	MoveBarEntry                             // One die, bar to point.
	MoveSum                                  // Two different dice combined by one checker.
	MoveMultiStep                            // Two to four steps of a double.
	MoveBearOff                              // One die, point to off.
	MoveSumBearOff                           // Two different dice combined to bear off.
	MoveMultiStepBearOff                     // Steps of a double ending off the board.
)

var moveKindNames = map[MoveKind]string{
	MovePoint:            "point",
	MoveBarEntry:         "bar-entry",
	MoveSum:              "sum",
	MoveMultiStep:        "multi-step",
	MoveBearOff:          "bear-off",
	MoveSumBearOff:       "sum-bear-off",
	MoveMultiStepBearOff: "multi-step-bear-off",
}

func (k MoveKind) String() string {
	if name, ok := moveKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", k)
}

// BearsOff reports whether moves of this kind end off the board.
func (k MoveKind) BearsOff() bool {
	return k == MoveBearOff || k == MoveSumBearOff || k == MoveMultiStepBearOff
}

// Move describes one legal action of a single checker. Moves are
// comparable: a requested move is legal only when it equals a generated one.
type Move struct {
	Kind  MoveKind
	From  Location
	To    Location
	Steps int8    // Number of dice consumed.
	Dice  [4]int8 // Indices into Dice.Values, in the order they are spent.
}

func newMove(kind MoveKind, from Location, to Location, dice ...int) Move {
	m := Move{
		Kind:  kind,
		From:  from,
		To:    to,
		Steps: int8(len(dice)),
	}
	for i, d := range dice {
		m.Dice[i] = int8(d)
	}
	return m
}

// PointMove moves a checker from one point to another with a single die.
func PointMove(from int, to int, die int) Move {
	return newMove(MovePoint, Location(from), Location(to), die)
}

// BarEntryMove enters a checker from the bar with a single die.
func BarEntryMove(to int, die int) Move {
	return newMove(MoveBarEntry, LocationBar, Location(to), die)
}

// SumMove moves a checker with two different dice, spending first then
// second. from may be LocationBar.
func SumMove(from Location, to int, first int, second int) Move {
	return newMove(MoveSum, from, Location(to), first, second)
}

// MultiStepMove moves a checker several steps of a double.
func MultiStepMove(from int, to int, dice ...int) Move {
	return newMove(MoveMultiStep, Location(from), Location(to), dice...)
}

// BearOffMove bears off a checker with a single die.
func BearOffMove(from int, die int) Move {
	return newMove(MoveBearOff, Location(from), LocationOff, die)
}

// SumBearOffMove bears off a checker with two different dice.
func SumBearOffMove(from int, first int, second int) Move {
	return newMove(MoveSumBearOff, Location(from), LocationOff, first, second)
}

// MultiStepBearOffMove bears off a checker with several steps of a double.
func MultiStepBearOffMove(from int, dice ...int) Move {
	return newMove(MoveMultiStepBearOff, Location(from), LocationOff, dice...)
}

// DiceIndices returns the indices of the dice the move consumes.
func (m Move) DiceIndices() []int {
	indices := make([]int, m.Steps)
	for i := range indices {
		indices[i] = int(m.Dice[i])
	}
	return indices
}

func (m Move) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s %s/%s [", m.Kind, m.From, m.To)
	for i := int8(0); i < m.Steps; i++ {
		if i > 0 {
			s.WriteByte(' ')
		}
		fmt.Fprintf(&s, "%d", m.Dice[i])
	}
	s.WriteByte(']')
	return s.String()
}

// FormatMoves formats moves separated by spaces.
func FormatMoves(moves []Move) string {
	var s strings.Builder
	for i, m := range moves {
		if i > 0 {
			s.WriteByte(' ')
		}
		fmt.Fprintf(&s, "%s/%s", m.From, m.To)
	}
	return s.String()
}

// step returns where a checker of p lands when moved die pips from from.
// Steps past the last point land off the board.
func step(p Player, from Location, die int) Location {
	if from == LocationBar {
		return Location(p.EntryPoint(die))
	}
	to := int(from) + p.direction()*die
	if to < 0 || to >= NumPoints {
		return LocationOff
	}
	return Location(to)
}
