package bgrules

// Apply plays m for player p and returns the resulting board and dice
// along with the events the move produced. The board passed in is never
// modified. Apply does not check m against the legal moves; callers
// validate with LegalMoves first. A move which cannot be carried out at all
// returns an *InvariantError.
func Apply(b *Board, d Dice, p Player, m Move) (*Board, Dice, []Event, error) {
	if !p.Valid() {
		return nil, d, nil, invariantf("move by invalid player %d", p)
	}
	if m.Steps < 1 || m.Steps > 4 {
		return nil, d, nil, invariantf("move %s consumes %d dice", m, m.Steps)
	}

	var (
		id int
		ok bool
	)
	if m.From == LocationBar {
		id, ok = b.NextFromBar(p)
	} else if point, onBoard := m.From.Point(); onBoard {
		id, ok = b.TopChecker(p, point)
	}
	if !ok {
		return nil, d, nil, invariantf("player %s has no checker at %s", p, m.From)
	}

	next := b.Clone()
	moved := &EventMoved{
		EventHeader: EventHeader{Type: EventTypeMoved, Player: p},
		Move:        m,
		Checker:     id,
		Dice:        m.DiceIndices(),
	}
	events := []Event{moved}

	if m.From == LocationBar {
		next.removeFromBar(p, id)
	}
	pos := m.From
	for i := int8(0); i < m.Steps; i++ {
		die := int(m.Dice[i])
		if die < 0 || die >= d.Len() || d.Used[die] {
			return nil, d, nil, invariantf("move %s spends unavailable die %d (%s)", m, die, d)
		}
		d.Used[die] = true

		pos = step(p, pos, d.Values[die])
		point, onBoard := pos.Point()
		if !onBoard {
			if i != m.Steps-1 {
				return nil, d, nil, invariantf("move %s leaves the board before its last step", m)
			}
			break
		}
		if hit := next.land(p, id, point); hit != nil {
			events = append(events, hit)
		}
	}
	if pos != m.To {
		return nil, d, nil, invariantf("move %s ends at %s", m, pos)
	}

	if pos == LocationOff {
		next.relocate(id, LocationOff)
		next.BorneOff[p.index()]++
		events = append(events, &EventBorneOff{
			EventHeader: EventHeader{Type: EventTypeBorneOff, Player: p},
			Checker:     id,
			BorneOff:    next.BorneOff[p.index()],
		})
		if next.BorneOff[p.index()] == CheckersPerPlayer {
			events = append(events, &EventWin{
				EventHeader: EventHeader{Type: EventTypeWin, Player: p},
				Result: Result{
					Winner: p,
					Reason: WinBearOff,
					Kind:   winKind(next, p),
				},
			})
		}
	}

	if err := next.Verify(); err != nil {
		return nil, d, nil, err
	}
	return next, d, events, nil
}

// land places checker id of p on point, hitting a lone opposing checker.
func (b *Board) land(p Player, id int, point int) *EventHit {
	var hit *EventHit
	s := b.Point(point)
	if s.Owner == p.Opponent() && s.Count == 1 {
		opponent := p.Opponent()
		victim, _ := b.TopChecker(opponent, point)
		b.relocate(victim, LocationBar)
		b.Bar[opponent.index()] = append(b.Bar[opponent.index()], victim)
		hit = &EventHit{
			EventHeader: EventHeader{Type: EventTypeHit, Player: opponent},
			Checker:     victim,
			Point:       point,
		}
	}
	b.relocate(id, Location(point))
	return hit
}

// relocate moves checker id to loc, placing it on top of any stack there.
func (b *Board) relocate(id int, loc Location) {
	i := b.indexOf(id)
	if i == -1 {
		return
	}
	c := b.Checkers[i]
	c.Location = loc
	b.Checkers = append(b.Checkers[:i], b.Checkers[i+1:]...)
	b.Checkers = append(b.Checkers, c)
}

func (b *Board) removeFromBar(p Player, id int) {
	bar := b.Bar[p.index()]
	for i := len(bar) - 1; i >= 0; i-- {
		if bar[i] == id {
			b.Bar[p.index()] = append(bar[:i:i], bar[i+1:]...)
			return
		}
	}
}

// winKind grades a win by the loser's progress.
func winKind(b *Board, winner Player) WinKind {
	loser := winner.Opponent()
	if b.Off(loser) != 0 {
		return WinSingle
	}
	if b.OnBar(loser) != 0 {
		return WinBackgammon
	}
	for _, c := range b.Checkers {
		if c.Owner != loser {
			continue
		}
		if point, ok := c.Location.Point(); ok && winner.InHome(point) {
			return WinBackgammon
		}
	}
	return WinGammon
}
