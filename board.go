package bgrules

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	NumPoints         = 24
	CheckersPerPlayer = 15
	numCheckers       = CheckersPerPlayer * 2
)

// Location is a board point 0-23, LocationBar or LocationOff.
type Location int8

const (
	LocationBar Location = 24
	LocationOff Location = 25
)

// Point returns the board point of l and whether l is a board point.
func (l Location) Point() (int, bool) {
	if l < 0 || l >= NumPoints {
		return 0, false
	}
	return int(l), true
}

func (l Location) String() string {
	switch l {
	case LocationBar:
		return "bar"
	case LocationOff:
		return "off"
	}
	return strconv.Itoa(int(l))
}

// Checker is a single piece. IDs are stable for the duration of a game.
type Checker struct {
	ID       int
	Owner    Player
	Location Location
}

// Stack is the derived occupancy of a point.
type Stack struct {
	Owner Player
	Count int
}

// Board holds every checker of both players. The order of Checkers is the
// stacking order: the last checker listed on a point is on top.
type Board struct {
	Checkers []Checker
	Bar      [2][]int // Checker IDs in the order they were hit.
	BorneOff [2]int
}

var openingLayout = []struct {
	point int
	count int
	owner Player
}{
	{0, 2, PlayerA}, {11, 5, PlayerA}, {16, 3, PlayerA}, {18, 5, PlayerA},
	{23, 2, PlayerB}, {12, 5, PlayerB}, {7, 3, PlayerB}, {5, 5, PlayerB},
}

// NewBoard returns a board with the standard opening layout.
func NewBoard() *Board {
	b := &Board{
		Checkers: make([]Checker, 0, numCheckers),
	}
	id := 1
	for _, l := range openingLayout {
		for i := 0; i < l.count; i++ {
			b.Checkers = append(b.Checkers, Checker{ID: id, Owner: l.owner, Location: Location(l.point)})
			id++
		}
	}
	return b
}

// NewBoardFromCounts builds a board from per-point counts. Positive values
// are PlayerA checkers, negative values PlayerB checkers. Checkers not
// placed on a point or the bar are considered borne off.
func NewBoardFromCounts(points [NumPoints]int, barA int, barB int) *Board {
	b := &Board{
		Checkers: make([]Checker, 0, numCheckers),
	}
	var placed [2]int
	id := 1
	add := func(owner Player, loc Location) {
		b.Checkers = append(b.Checkers, Checker{ID: id, Owner: owner, Location: loc})
		if loc == LocationBar {
			b.Bar[owner.index()] = append(b.Bar[owner.index()], id)
		}
		placed[owner.index()]++
		id++
	}
	for point, v := range points {
		owner := PlayerA
		if v < 0 {
			owner, v = PlayerB, -v
		}
		for i := 0; i < v; i++ {
			add(owner, Location(point))
		}
	}
	for i := 0; i < barA; i++ {
		add(PlayerA, LocationBar)
	}
	for i := 0; i < barB; i++ {
		add(PlayerB, LocationBar)
	}
	for _, owner := range []Player{PlayerA, PlayerB} {
		for placed[owner.index()] < CheckersPerPlayer {
			add(owner, LocationOff)
			b.BorneOff[owner.index()]++
		}
	}
	return b
}

// Clone returns a deep copy of b.
func (b *Board) Clone() *Board {
	c := &Board{
		Checkers: make([]Checker, len(b.Checkers)),
		BorneOff: b.BorneOff,
	}
	copy(c.Checkers, b.Checkers)
	for i := range b.Bar {
		if len(b.Bar[i]) != 0 {
			c.Bar[i] = append([]int(nil), b.Bar[i]...)
		}
	}
	return c
}

// Points returns the occupancy of every point.
func (b *Board) Points() [NumPoints]Stack {
	var points [NumPoints]Stack
	for _, c := range b.Checkers {
		point, ok := c.Location.Point()
		if !ok {
			continue
		}
		points[point].Owner = c.Owner
		points[point].Count++
	}
	return points
}

// Point returns the occupancy of a single point.
func (b *Board) Point(point int) Stack {
	var s Stack
	for _, c := range b.Checkers {
		if c.Location == Location(point) {
			s.Owner = c.Owner
			s.Count++
		}
	}
	return s
}

// OnBar returns the number of the player's checkers on the bar.
func (b *Board) OnBar(p Player) int {
	if !p.Valid() {
		return 0
	}
	return len(b.Bar[p.index()])
}

// NextFromBar returns the ID of the player's checker that must enter next.
func (b *Board) NextFromBar(p Player) (int, bool) {
	n := b.OnBar(p)
	if n == 0 {
		return 0, false
	}
	return b.Bar[p.index()][n-1], true
}

// Off returns the number of the player's checkers borne off.
func (b *Board) Off(p Player) int {
	if !p.Valid() {
		return 0
	}
	return b.BorneOff[p.index()]
}

// TopChecker returns the ID of the player's checker on top of point.
func (b *Board) TopChecker(p Player, point int) (int, bool) {
	for i := len(b.Checkers) - 1; i >= 0; i-- {
		c := b.Checkers[i]
		if c.Owner == p && c.Location == Location(point) {
			return c.ID, true
		}
	}
	return 0, false
}

// Checker returns the checker with the given ID.
func (b *Board) Checker(id int) (Checker, bool) {
	i := b.indexOf(id)
	if i == -1 {
		return Checker{}, false
	}
	return b.Checkers[i], true
}

func (b *Board) indexOf(id int) int {
	for i := range b.Checkers {
		if b.Checkers[i].ID == id {
			return i
		}
	}
	return -1
}

// CanBearOff reports whether every one of the player's remaining checkers
// is within their home board.
func (b *Board) CanBearOff(p Player) bool {
	if b.OnBar(p) != 0 {
		return false
	}
	for _, c := range b.Checkers {
		if c.Owner != p || c.Location == LocationOff {
			continue
		}
		point, ok := c.Location.Point()
		if !ok || !p.InHome(point) {
			return false
		}
	}
	return true
}

// farthest returns the greatest distance-to-off among the player's checkers
// on the board.
func (b *Board) farthest(p Player) int {
	var farthest int
	for _, c := range b.Checkers {
		if c.Owner != p {
			continue
		}
		point, ok := c.Location.Point()
		if !ok {
			continue
		}
		if d := p.Distance(point); d > farthest {
			farthest = d
		}
	}
	return farthest
}

// Verify checks the board invariants and returns an *InvariantError when
// any of them is violated.
func (b *Board) Verify() error {
	if len(b.Checkers) != numCheckers {
		return invariantf("board holds %d checkers, expected %d", len(b.Checkers), numCheckers)
	}
	seen := make(map[int]bool, numCheckers)
	var onBoard, onBar, off [2]int
	var owners [NumPoints]Player
	for _, c := range b.Checkers {
		if !c.Owner.Valid() {
			return invariantf("checker %d has no owner", c.ID)
		}
		if seen[c.ID] {
			return invariantf("checker %d appears twice", c.ID)
		}
		seen[c.ID] = true

		i := c.Owner.index()
		switch c.Location {
		case LocationBar:
			onBar[i]++
		case LocationOff:
			off[i]++
		default:
			point, ok := c.Location.Point()
			if !ok {
				return invariantf("checker %d is at invalid location %d", c.ID, c.Location)
			}
			if owners[point] != PlayerNone && owners[point] != c.Owner {
				return invariantf("point %d holds checkers of both players", point)
			}
			owners[point] = c.Owner
			onBoard[i]++
		}
	}
	for _, p := range []Player{PlayerA, PlayerB} {
		i := p.index()
		if total := onBoard[i] + onBar[i] + off[i]; total != CheckersPerPlayer {
			return invariantf("player %s has %d checkers, expected %d", p, total, CheckersPerPlayer)
		}
		if onBar[i] != len(b.Bar[i]) {
			return invariantf("player %s has %d checkers on the bar but %d in bar order", p, onBar[i], len(b.Bar[i]))
		}
		if off[i] != b.BorneOff[i] {
			return invariantf("player %s has %d checkers off but borne off count is %d", p, off[i], b.BorneOff[i])
		}
		for _, id := range b.Bar[i] {
			c, ok := b.Checker(id)
			if !ok || c.Owner != p || c.Location != LocationBar {
				return invariantf("bar order of player %s lists checker %d which is not on the bar", p, id)
			}
		}
	}
	return nil
}

func (b *Board) String() string {
	var s strings.Builder
	points := b.Points()
	for _, p := range []Player{PlayerA, PlayerB} {
		if p == PlayerB {
			s.WriteString(" | ")
		}
		s.WriteString(p.String())
		s.WriteByte(':')
		for point, stack := range points {
			if stack.Owner == p {
				fmt.Fprintf(&s, " %dx%d", point, stack.Count)
			}
		}
		fmt.Fprintf(&s, " bar%d off%d", b.OnBar(p), b.Off(p))
	}
	return s.String()
}
