package bgrules

import (
	"math/rand"
)

// Advisor decides for an automated seat. Its choices are submitted as
// ordinary commands and validated like any other.
type Advisor interface {
	// ChooseMove picks one of state.Available.
	ChooseMove(state *GameState) (Move, error)
	ShouldDouble(state *GameState) bool
	ShouldAccept(state *GameState) bool
}

// NextCommand returns the command advisor a issues for the player the game
// is waiting on. It returns false once the game is over.
func NextCommand(s *GameState, a Advisor) (Command, bool, error) {
	p := s.Awaiting()
	if p == PlayerNone {
		return Command{}, false, nil
	}
	cmd := Command{Player: p}
	switch {
	case s.Phase == PhaseFirstRoll:
		cmd.Type = CommandRollFirst
	case s.Cube.Pending():
		cmd.Type = CommandDecline
		if a.ShouldAccept(s) {
			cmd.Type = CommandAccept
		}
	case s.Phase == PhaseAwaitingRoll:
		cmd.Type = CommandRoll
		if s.MayDouble(p) && a.ShouldDouble(s) {
			cmd.Type = CommandDouble
		}
	case s.Phase == PhaseRolled:
		m, err := a.ChooseMove(s)
		if err != nil {
			return Command{}, false, err
		}
		cmd.Type, cmd.Move = CommandMove, m
	default:
		cmd.Type = CommandEndTurn
	}
	return cmd, true, nil
}

// RandomAdvisor plays a uniformly random legal move. It doubles when its
// race lead is large and accepts unless it trails badly. It is not safe
// for concurrent use.
type RandomAdvisor struct {
	r *rand.Rand

	DoubleLead   int // Pip lead at which to offer a double.
	DeclineTrail int // Pip deficit at which to decline a double.
}

func NewRandomAdvisor(seed int64) *RandomAdvisor {
	return &RandomAdvisor{
		r:            rand.New(rand.NewSource(seed)),
		DoubleLead:   20,
		DeclineTrail: 30,
	}
}

func (a *RandomAdvisor) ChooseMove(s *GameState) (Move, error) {
	if len(s.Available) == 0 {
		return Move{}, ErrIllegalMove
	}
	return s.Available[a.r.Intn(len(s.Available))], nil
}

func (a *RandomAdvisor) ShouldDouble(s *GameState) bool {
	return lead(s, s.Turn) >= a.DoubleLead
}

func (a *RandomAdvisor) ShouldAccept(s *GameState) bool {
	return -lead(s, s.Cube.Offer.Opponent()) < a.DeclineTrail
}

// lead returns how many pips p is ahead of the opponent.
func lead(s *GameState, p Player) int {
	return s.PipCount(p.Opponent()) - s.PipCount(p)
}
