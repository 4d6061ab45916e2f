package bgrules

// generator evaluates legality for one player against a fixed board and
// roll. Occupancy is computed once; a player's own movement never changes
// whether a point ahead of it is blocked.
type generator struct {
	board  *Board
	points [NumPoints]Stack
	dice   Dice
	player Player
}

func newGenerator(b *Board, d Dice, p Player) *generator {
	return &generator{
		board:  b,
		points: b.Points(),
		dice:   d,
		player: p,
	}
}

// open reports whether the player may land on point.
func (g *generator) open(point int) bool {
	s := g.points[point]
	return s.Owner == g.player || s.Owner == PlayerNone || s.Count < 2
}

// blot reports whether point holds a single opposing checker.
func (g *generator) blot(point int) bool {
	s := g.points[point]
	return s.Owner == g.player.Opponent() && s.Count == 1
}

// LegalMoves returns the legal moves of the player's checker at from, which
// is a point holding one of the player's checkers or LocationBar.
func LegalMoves(b *Board, d Dice, p Player, from Location) []Move {
	if !p.Valid() || !d.HasRoll() || d.AllUsed() {
		return nil
	}
	g := newGenerator(b, d, p)
	if b.OnBar(p) != 0 {
		if from != LocationBar {
			return nil
		}
		return dedupe(g.barMoves())
	}
	point, ok := from.Point()
	if !ok || g.points[point].Owner != p {
		return nil
	}
	return dedupe(g.pointMoves(point))
}

// AllLegalMoves returns the legal moves of every checker of the player.
func AllLegalMoves(b *Board, d Dice, p Player) []Move {
	if b.OnBar(p) != 0 {
		return LegalMoves(b, d, p, LocationBar)
	}
	var moves []Move
	for _, from := range occupied(b, p) {
		moves = append(moves, LegalMoves(b, d, p, from)...)
	}
	return moves
}

// HasLegalMove reports whether any checker of the player may move.
func HasLegalMove(b *Board, d Dice, p Player) bool {
	if b.OnBar(p) != 0 {
		return len(LegalMoves(b, d, p, LocationBar)) != 0
	}
	for _, from := range occupied(b, p) {
		if len(LegalMoves(b, d, p, from)) != 0 {
			return true
		}
	}
	return false
}

// Origins returns the locations holding a checker that may move.
func Origins(b *Board, d Dice, p Player) []Location {
	if b.OnBar(p) != 0 {
		if len(LegalMoves(b, d, p, LocationBar)) == 0 {
			return nil
		}
		return []Location{LocationBar}
	}
	var origins []Location
	for _, from := range occupied(b, p) {
		if len(LegalMoves(b, d, p, from)) != 0 {
			origins = append(origins, from)
		}
	}
	return origins
}

func occupied(b *Board, p Player) []Location {
	var locations []Location
	for point, s := range b.Points() {
		if s.Owner == p {
			locations = append(locations, Location(point))
		}
	}
	return locations
}

func (g *generator) barMoves() []Move {
	var moves []Move
	for _, i := range g.dice.distinctUnused() {
		to := g.player.EntryPoint(g.dice.Values[i])
		if g.open(to) {
			moves = append(moves, BarEntryMove(to, i))
		}
	}

	// A compound entry is only offered for a lone checker on the bar.
	if g.board.OnBar(g.player) == 1 && g.freshPair() {
		order, to, ok := g.combine(LocationBar, func(to Location) bool {
			point, ok := to.Point()
			return ok && g.open(point)
		})
		if ok {
			moves = append(moves, SumMove(LocationBar, int(to), order[0], order[1]))
		}
	}
	return moves
}

func (g *generator) pointMoves(point int) []Move {
	from := Location(point)
	var moves []Move
	for _, i := range g.dice.distinctUnused() {
		to, ok := step(g.player, from, g.dice.Values[i]).Point()
		if ok && g.open(to) {
			moves = append(moves, PointMove(point, to, i))
		}
	}

	if g.freshPair() {
		order, to, ok := g.combine(from, func(to Location) bool {
			point, ok := to.Point()
			return ok && g.open(point)
		})
		if ok {
			moves = append(moves, SumMove(from, int(to), order[0], order[1]))
		}
	}

	if g.dice.Doubles() {
		moves = append(moves, g.multiStepMoves(point)...)
	}

	if g.board.CanBearOff(g.player) && g.player.InHome(point) {
		moves = append(moves, g.bearOffMoves(point)...)
	}
	return moves
}

// freshPair reports whether two different dice are both still unused.
func (g *generator) freshPair() bool {
	return !g.dice.Doubles() && g.dice.Len() == 2 && g.dice.UsedCount() == 0
}

// combine tries both orderings of a fresh pair of dice from from. The
// intermediate landing must be an open point and the final landing must
// satisfy final. An ordering which hits on its intermediate landing is
// preferred over one which does not.
func (g *generator) combine(from Location, final func(to Location) bool) ([2]int, Location, bool) {
	var (
		found   bool
		best    [2]int
		bestTo  Location
		orders  = [2][2]int{{0, 1}, {1, 0}}
		values  = g.dice.Values
		hitting bool
	)
	for _, order := range orders {
		mid := step(g.player, from, values[order[0]])
		midPoint, ok := mid.Point()
		if !ok || !g.open(midPoint) {
			continue
		}
		to := step(g.player, mid, values[order[1]])
		if !final(to) {
			continue
		}
		hits := g.blot(midPoint)
		if !found || (hits && !hitting) {
			found, best, bestTo, hitting = true, order, to, hits
		}
	}
	return best, bestTo, found
}

// multiStepMoves walks a double's die from point, exposing every stop of
// two or more steps reachable through open points.
func (g *generator) multiStepMoves(point int) []Move {
	unused := g.dice.Unused()
	if len(unused) < 2 {
		return nil
	}
	die := g.dice.Values[unused[0]]
	var moves []Move
	pos := Location(point)
	for k := 1; k <= len(unused); k++ {
		next, ok := step(g.player, pos, die).Point()
		if !ok || !g.open(next) {
			break
		}
		pos = Location(next)
		if k >= 2 {
			moves = append(moves, MultiStepMove(point, next, unused[:k]...))
		}
	}
	return moves
}

func (g *generator) bearOffMoves(point int) []Move {
	var moves []Move
	available := g.unusedValues()
	for _, i := range g.dice.distinctUnused() {
		if bearOffAllowed(g.board, g.player, point, g.dice.Values[i], available) {
			moves = append(moves, BearOffMove(point, i))
		}
	}

	if g.freshPair() && g.player.Distance(point) == g.dice.Values[0]+g.dice.Values[1] {
		order, _, ok := g.combine(Location(point), func(to Location) bool {
			return to == LocationOff
		})
		if ok {
			moves = append(moves, SumBearOffMove(point, order[0], order[1]))
		}
	}

	if g.dice.Doubles() {
		moves = append(moves, g.multiStepBearOffMoves(point)...)
	}
	return moves
}

// multiStepBearOffMoves walks a double's die from point through open
// points and bears off with the final step when that step is itself a
// legal bear-off from where the checker stands.
func (g *generator) multiStepBearOffMoves(point int) []Move {
	unused := g.dice.Unused()
	if len(unused) < 2 {
		return nil
	}
	die := g.dice.Values[unused[0]]
	var moves []Move
	pos := point
	for k := 2; k <= len(unused); k++ {
		next, ok := step(g.player, Location(pos), die).Point()
		if !ok || !g.open(next) {
			break
		}
		pos = next

		remaining := make([]int, len(unused)-(k-1))
		for i := range remaining {
			remaining[i] = die
		}
		walked := g.board.Clone()
		if id, ok := walked.TopChecker(g.player, point); ok {
			walked.Checkers[walked.indexOf(id)].Location = Location(pos)
		}
		if bearOffAllowed(walked, g.player, pos, die, remaining) {
			moves = append(moves, MultiStepBearOffMove(point, unused[:k]...))
		}
	}
	return moves
}

func (g *generator) unusedValues() []int {
	var values []int
	for _, i := range g.dice.Unused() {
		values = append(values, g.dice.Values[i])
	}
	return values
}

// bearOffAllowed reports whether the player's checker on point may bear off
// using a die of value die, given the values of every die still available.
// The board must already satisfy CanBearOff.
func bearOffAllowed(b *Board, p Player, point int, die int, available []int) bool {
	distance := p.Distance(point)
	switch {
	case die == distance:
		return true
	case die < distance:
		return false
	}
	farthest := b.farthest(p)
	if distance == farthest {
		return true
	}

	// An overage die may be spent on a nearer checker only once no checker
	// elsewhere can bear off with any available die.
	for q, s := range b.Points() {
		if s.Owner != p || q == point {
			continue
		}
		d := p.Distance(q)
		for _, v := range available {
			if v == d || (v > d && d == farthest) {
				return false
			}
		}
	}
	return true
}

func dedupe(moves []Move) []Move {
	if len(moves) < 2 {
		return moves
	}
	out := moves[:0]
MOVES:
	for _, m := range moves {
		for _, existing := range out {
			if existing == m {
				continue MOVES
			}
		}
		out = append(out, m)
	}
	return out
}
