package bgrules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedAdvisor struct {
	double bool
	accept bool
}

func (a fixedAdvisor) ChooseMove(s *GameState) (Move, error) {
	if len(s.Available) == 0 {
		return Move{}, ErrIllegalMove
	}
	return s.Available[0], nil
}

func (a fixedAdvisor) ShouldDouble(*GameState) bool { return a.double }

func (a fixedAdvisor) ShouldAccept(*GameState) bool { return a.accept }

func TestNextCommand(t *testing.T) {
	next := func(g *Game, a Advisor) Command {
		t.Helper()
		cmd, ok, err := NextCommand(g.State(), a)
		require.NoError(t, err)
		require.True(t, ok)
		return cmd
	}

	g := NewGame(NewSequenceRoller(6, 5))
	assert.Equal(t, Command{Type: CommandRollFirst, Player: PlayerA}, next(g, fixedAdvisor{}))
	_, err := g.RollFirst(PlayerA)
	require.NoError(t, err)
	assert.Equal(t, Command{Type: CommandRollFirst, Player: PlayerB}, next(g, fixedAdvisor{}))
	_, err = g.RollFirst(PlayerB)
	require.NoError(t, err)

	cmd := next(g, fixedAdvisor{})
	assert.Equal(t, CommandMove, cmd.Type)
	assert.Equal(t, PlayerA, cmd.Player)
	assert.Equal(t, g.AllLegalMoves()[0], cmd.Move)

	g = loadedGame(t, NewBoard(), PlayerB, NewCube())
	assert.Equal(t, Command{Type: CommandRoll, Player: PlayerB}, next(g, fixedAdvisor{}))
	assert.Equal(t, Command{Type: CommandDouble, Player: PlayerB}, next(g, fixedAdvisor{double: true}))

	_, err = g.OfferDouble(PlayerB)
	require.NoError(t, err)
	assert.Equal(t, Command{Type: CommandDecline, Player: PlayerA}, next(g, fixedAdvisor{}))
	assert.Equal(t, Command{Type: CommandAccept, Player: PlayerA}, next(g, fixedAdvisor{accept: true}))

	_, err = g.RespondDouble(PlayerA, true)
	require.NoError(t, err)
	assert.Equal(t, Command{Type: CommandRoll, Player: PlayerB}, next(g, fixedAdvisor{double: true}))
}

func TestNextCommandEndTurn(t *testing.T) {
	var points [NumPoints]int
	points[20] = 14
	points[0] = -2
	points[1] = -2
	points[10] = -11
	g := loadedGame(t, NewBoardFromCounts(points, 1, 0), PlayerA, NewCube(), 1, 2)
	_, err := g.Roll(PlayerA)
	require.NoError(t, err)

	cmd, ok, err := NextCommand(g.State(), fixedAdvisor{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Command{Type: CommandEndTurn, Player: PlayerA}, cmd)

	_, err = g.Resign(PlayerA)
	require.NoError(t, err)
	_, ok, err = NextCommand(g.State(), fixedAdvisor{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRandomAdvisor(t *testing.T) {
	a := NewRandomAdvisor(1)

	s := NewGame(nil).State()
	s.Phase = PhaseAwaitingRoll
	s.Turn = PlayerA
	assert.False(t, a.ShouldDouble(s))

	var points [NumPoints]int
	points[23] = 15
	points[22] = -15
	s.Board = NewBoardFromCounts(points, 0, 0)
	assert.True(t, a.ShouldDouble(s))

	s.Cube.Offer = PlayerA
	assert.False(t, a.ShouldAccept(s))
	s.Cube.Offer = PlayerB
	assert.True(t, a.ShouldAccept(s))

	_, err := a.ChooseMove(s)
	assert.ErrorIs(t, err, ErrIllegalMove)
}

func TestRandomAdvisorPlaysGame(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := NewGame(NewSeededRoller(seed))
		advisors := [2]Advisor{NewRandomAdvisor(seed), NewRandomAdvisor(seed + 100)}
		g.SetAutomated(PlayerA, true)
		g.SetAutomated(PlayerB, true)

		for i := 0; ; i++ {
			require.Less(t, i, 20000, "seed %d did not finish", seed)
			s := g.State()
			p := s.Awaiting()
			if p == PlayerNone {
				break
			}
			cmd, ok, err := NextCommand(s, advisors[p.index()])
			require.NoError(t, err)
			require.True(t, ok)
			_, err = g.Execute(cmd)
			require.NoError(t, err, "seed %d: %s by %d", seed, cmd.Type, cmd.Player)
			require.NoError(t, g.Board.Verify())
		}

		require.NotNil(t, g.Result)
		assert.Positive(t, g.Result.Points)
		if g.Result.Reason == WinBearOff {
			assert.Equal(t, CheckersPerPlayer, g.Board.Off(g.Result.Winner))
		}
	}
}
