package bgrules

// GameState is a detached snapshot of a game.
type GameState struct {
	Board      *Board
	Dice       Dice
	Turn       Player
	Phase      Phase
	Cube       Cube
	FirstRolls [2]int
	TurnID     int
	MovesMade  int
	Moves      []Move
	Result     *Result
	Available  []Move // Legal moves of the current player.
	MayUndo    bool
}

// Awaiting returns the player whose action the game waits for.
func (s *GameState) Awaiting() Player {
	switch {
	case s.Phase == PhaseGameOver:
		return PlayerNone
	case s.Phase == PhaseFirstRoll:
		if s.FirstRolls[0] == 0 {
			return PlayerA
		}
		return PlayerB
	case s.Cube.Pending():
		return s.Cube.Offer.Opponent()
	}
	return s.Turn
}

// MayRoll reports whether p may roll now.
func (s *GameState) MayRoll(p Player) bool {
	return s.Phase == PhaseAwaitingRoll && s.Turn == p && !s.Cube.Pending()
}

// MayDouble reports whether p may offer a double now.
func (s *GameState) MayDouble(p Player) bool {
	return s.MayRoll(p) && s.Cube.Holds(p)
}

// PipCount returns the pip count of p.
func (s *GameState) PipCount(p Player) int {
	return PipCount(s.Board, p)
}
