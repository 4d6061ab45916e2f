package bgrules

import (
	"crypto/rand"
	"log"
	"math/big"
	mathrand "math/rand"
	"strconv"
	"strings"
)

// Dice holds the current roll, the moves it allows and which of those
// moves have been consumed.
type Dice struct {
	Rolled [2]int
	Values [4]int  // Moves allowed. Doubles fill all four entries.
	Used   [4]bool // Indices into Values already consumed this turn.
}

// NewDice expands a roll into the moves it allows.
func NewDice(roll1 int, roll2 int) Dice {
	d := Dice{
		Rolled: [2]int{roll1, roll2},
		Values: [4]int{roll1, roll2},
	}
	if roll1 == roll2 {
		d.Values[2], d.Values[3] = roll1, roll1
	}
	return d
}

// HasRoll reports whether the dice hold a roll.
func (d Dice) HasRoll() bool {
	return d.Values[0] != 0
}

// Doubles reports whether the roll is a double.
func (d Dice) Doubles() bool {
	return d.HasRoll() && d.Rolled[0] == d.Rolled[1]
}

// Len returns the number of moves the roll allows.
func (d Dice) Len() int {
	switch {
	case !d.HasRoll():
		return 0
	case d.Values[2] != 0:
		return 4
	default:
		return 2
	}
}

// Allowed returns the moves allowed by the roll.
func (d Dice) Allowed() []int {
	return append([]int(nil), d.Values[:d.Len()]...)
}

// Unused returns the indices of the moves not yet consumed.
func (d Dice) Unused() []int {
	var unused []int
	for i := 0; i < d.Len(); i++ {
		if !d.Used[i] {
			unused = append(unused, i)
		}
	}
	return unused
}

// UsedIndices returns the indices of the moves already consumed.
func (d Dice) UsedIndices() []int {
	var used []int
	for i := 0; i < d.Len(); i++ {
		if d.Used[i] {
			used = append(used, i)
		}
	}
	return used
}

// UsedCount returns the number of moves consumed.
func (d Dice) UsedCount() int {
	var n int
	for i := 0; i < d.Len(); i++ {
		if d.Used[i] {
			n++
		}
	}
	return n
}

// AllUsed reports whether every move allowed by the roll was consumed.
func (d Dice) AllUsed() bool {
	return d.HasRoll() && d.UsedCount() == d.Len()
}

// distinctUnused returns the lowest unused index of each distinct value.
func (d Dice) distinctUnused() []int {
	var indices []int
VALUES:
	for _, i := range d.Unused() {
		for _, j := range indices {
			if d.Values[j] == d.Values[i] {
				continue VALUES
			}
		}
		indices = append(indices, i)
	}
	return indices
}

func (d Dice) String() string {
	if !d.HasRoll() {
		return "-"
	}
	var s strings.Builder
	for i := 0; i < d.Len(); i++ {
		if i > 0 {
			s.WriteByte(' ')
		}
		if d.Used[i] {
			s.WriteByte('(')
		}
		s.WriteString(strconv.Itoa(d.Values[i]))
		if d.Used[i] {
			s.WriteByte(')')
		}
	}
	return s.String()
}

// Roller produces die values from 1 to 6.
type Roller interface {
	Roll() int
}

// CryptoRoller rolls using crypto/rand.
type CryptoRoller struct{}

func (CryptoRoller) Roll() int {
	return RandInt(6) + 1
}

// RandInt returns a uniformly random number in [0, max).
func RandInt(max int64) int {
	i, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		log.Panicf("failed to generate random number: %s", err)
	}
	return int(i.Int64())
}

// SeededRoller rolls using a seeded pseudo-random source. It is not safe
// for concurrent use.
type SeededRoller struct {
	r *mathrand.Rand
}

func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{
		r: mathrand.New(mathrand.NewSource(seed)),
	}
}

func (s *SeededRoller) Roll() int {
	return s.r.Intn(6) + 1
}

// SequenceRoller rolls a fixed sequence of values, starting over once it
// is exhausted. It replays recorded games.
type SequenceRoller struct {
	values []int
	i      int
}

func NewSequenceRoller(values ...int) *SequenceRoller {
	return &SequenceRoller{
		values: values,
	}
}

func (s *SequenceRoller) Roll() int {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}
