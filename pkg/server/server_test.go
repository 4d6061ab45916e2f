package server

import (
	"context"
	"io"
	"testing"
	"time"

	"codeberg.org/tslocum/bgrules"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type firstMoveAdvisor struct {
	accept bool
}

func (a firstMoveAdvisor) ChooseMove(s *bgrules.GameState) (bgrules.Move, error) {
	if len(s.Available) == 0 {
		return bgrules.Move{}, bgrules.ErrIllegalMove
	}
	return s.Available[0], nil
}

func (a firstMoveAdvisor) ShouldDouble(*bgrules.GameState) bool { return false }

func (a firstMoveAdvisor) ShouldAccept(*bgrules.GameState) bool { return a.accept }

func newTestServer(t *testing.T) (*server, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	s := NewServer(Options{}, clock, log.New(io.Discard))
	t.Cleanup(s.Close)
	return s, clock
}

func submit(t *testing.T, s *server, id int, cmd bgrules.Command) *Response {
	t.Helper()
	resp, err := s.Submit(context.Background(), id, cmd)
	require.NoError(t, err)
	require.NoError(t, resp.Err, "%s by %d", cmd.Type, cmd.Player)
	return resp
}

// startMatch creates a match in which player A opens with 6-5.
func startMatch(t *testing.T, s *server, opts MatchOptions) int {
	t.Helper()
	opts.Roller = bgrules.NewSequenceRoller(6, 5, 3, 1)
	id := s.NewMatch(opts)
	submit(t, s, id, bgrules.Command{Type: bgrules.CommandRollFirst, Player: bgrules.PlayerA})
	if opts.Advisors[1] == nil {
		submit(t, s, id, bgrules.Command{Type: bgrules.CommandRollFirst, Player: bgrules.PlayerB})
	}
	return id
}

// playOpening plays 6-5 for player A and ends the turn.
func playOpening(t *testing.T, s *server, id int) *Response {
	t.Helper()
	for _, m := range []bgrules.Move{bgrules.PointMove(0, 6, 0), bgrules.PointMove(11, 16, 1)} {
		submit(t, s, id, bgrules.Command{Type: bgrules.CommandMove, Player: bgrules.PlayerA, Move: m})
	}
	return submit(t, s, id, bgrules.Command{Type: bgrules.CommandEndTurn, Player: bgrules.PlayerA})
}

func waitForResult(t *testing.T, s *server, id int) *bgrules.Result {
	t.Helper()
	var result *bgrules.Result
	require.Eventually(t, func() bool {
		state, err := s.State(context.Background(), id)
		if err != nil || state.Phase != bgrules.PhaseGameOver {
			return false
		}
		result = state.Result
		return true
	}, 5*time.Second, 10*time.Millisecond)
	return result
}

func TestMatchLanguage(t *testing.T) {
	s, _ := newTestServer(t)
	tests := map[string]string{
		"":      "en",
		"en-GB": "en",
		"de":    "de",
		"de-AT": "de",
		"es-MX": "es",
		"fr":    "en",
		"!!":    "en",
	}
	for identifier, want := range tests {
		assert.Equal(t, want, s.matchLanguage(identifier), "identifier %q", identifier)
	}
}

func TestRejectedCommandNotice(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	roll := bgrules.Command{Type: bgrules.CommandRoll, Player: bgrules.PlayerA}

	id := s.NewMatch(MatchOptions{Language: "de-DE"})
	resp, err := s.Submit(ctx, id, roll)
	require.NoError(t, err)
	assert.ErrorIs(t, resp.Err, bgrules.ErrFirstRollPending)
	assert.Equal(t, "Der Startspieler steht noch nicht fest.", resp.Notice)
	assert.Equal(t, bgrules.PhaseFirstRoll, resp.State.Phase)

	id = s.NewMatch(MatchOptions{})
	resp, err = s.Submit(ctx, id, roll)
	require.NoError(t, err)
	assert.Equal(t, "The starting player has not been decided yet.", resp.Notice)
}

func TestTurnTimeout(t *testing.T) {
	s, clock := newTestServer(t)
	ctx := context.Background()
	id := startMatch(t, s, MatchOptions{})

	clock.Advance(45 * time.Second).MustWait(ctx)

	result := waitForResult(t, s, id)
	require.NotNil(t, result)
	assert.Equal(t, bgrules.PlayerB, result.Winner)
	assert.Equal(t, bgrules.WinTimeout, result.Reason)
}

func TestTurnTimeoutRestartsEachTurn(t *testing.T) {
	s, clock := newTestServer(t)
	ctx := context.Background()
	id := startMatch(t, s, MatchOptions{})

	clock.Advance(30 * time.Second).MustWait(ctx)
	resp := playOpening(t, s, id)
	require.Equal(t, bgrules.PlayerB, resp.State.Turn)

	clock.Advance(30 * time.Second).MustWait(ctx)
	state, err := s.State(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, bgrules.PhaseAwaitingRoll, state.Phase)

	clock.Advance(15 * time.Second).MustWait(ctx)
	result := waitForResult(t, s, id)
	require.NotNil(t, result)
	assert.Equal(t, bgrules.PlayerA, result.Winner)
	assert.Equal(t, bgrules.WinTimeout, result.Reason)
}

func TestDoubleTimeout(t *testing.T) {
	s, clock := newTestServer(t)
	ctx := context.Background()
	id := startMatch(t, s, MatchOptions{})
	playOpening(t, s, id)

	resp := submit(t, s, id, bgrules.Command{Type: bgrules.CommandDouble, Player: bgrules.PlayerB})
	require.True(t, resp.State.Cube.Pending())

	clock.Advance(12 * time.Second).MustWait(ctx)

	result := waitForResult(t, s, id)
	require.NotNil(t, result)
	assert.Equal(t, bgrules.PlayerB, result.Winner)
	assert.Equal(t, bgrules.WinDoubleDeclined, result.Reason)
	assert.Equal(t, 1, result.Points)
}

func TestAutomatedSeat(t *testing.T) {
	s, _ := newTestServer(t)
	id := startMatch(t, s, MatchOptions{
		Advisors: [2]bgrules.Advisor{nil, firstMoveAdvisor{accept: true}},
	})

	state, err := s.State(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, bgrules.PhaseRolled, state.Phase)
	require.Equal(t, bgrules.PlayerA, state.Turn)

	resp := playOpening(t, s, id)
	assert.Equal(t, bgrules.PlayerA, resp.State.Turn)
	assert.Equal(t, bgrules.PhaseAwaitingRoll, resp.State.Phase)
	assert.Equal(t, 3, resp.State.TurnID)

	var rolled bool
	for _, ev := range resp.Events {
		if r, ok := ev.(*bgrules.EventRolled); ok && r.Player == bgrules.PlayerB {
			rolled = true
			assert.Equal(t, [2]int{3, 1}, r.Dice)
		}
	}
	assert.True(t, rolled)

	resp = submit(t, s, id, bgrules.Command{Type: bgrules.CommandDouble, Player: bgrules.PlayerA})
	require.Len(t, resp.Events, 2)
	assert.IsType(t, &bgrules.EventDoubleAccepted{}, resp.Events[1])
	assert.Equal(t, 2, resp.State.Cube.Stake)
	assert.True(t, resp.State.Cube.Holds(bgrules.PlayerB))
	assert.Equal(t, bgrules.PlayerA, resp.State.Awaiting())
}

func TestAutomatedMatch(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	id := s.NewMatch(MatchOptions{
		Advisors: [2]bgrules.Advisor{bgrules.NewRandomAdvisor(1), bgrules.NewRandomAdvisor(2)},
		Roller:   bgrules.NewSeededRoller(3),
	})

	var state *bgrules.GameState
	for i := 0; i < 100; i++ {
		resp, err := s.Advance(ctx, id)
		require.NoError(t, err)
		state = resp.State
		if state.Phase == bgrules.PhaseGameOver {
			break
		}
	}
	require.Equal(t, bgrules.PhaseGameOver, state.Phase)
	require.NotNil(t, state.Result)
	assert.Positive(t, state.Result.Points)

	resp, err := s.Rematch(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Events)
	assert.Equal(t, bgrules.EventTypeFirstRoll, resp.Events[0].Header().Type)
}

func TestUnknownMatch(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()

	_, err := s.Submit(ctx, 99, bgrules.Command{Type: bgrules.CommandRoll, Player: bgrules.PlayerA})
	assert.ErrorIs(t, err, ErrUnknownMatch)
	_, err = s.State(ctx, 99)
	assert.ErrorIs(t, err, ErrUnknownMatch)

	id := startMatch(t, s, MatchOptions{})
	require.NoError(t, s.RemoveMatch(ctx, id))
	_, err = s.State(ctx, id)
	assert.ErrorIs(t, err, ErrUnknownMatch)
	assert.ErrorIs(t, s.RemoveMatch(ctx, id), ErrUnknownMatch)
}

func TestClose(t *testing.T) {
	s, _ := newTestServer(t)
	id := s.NewMatch(MatchOptions{})
	s.Close()

	_, err := s.Submit(context.Background(), id, bgrules.Command{Type: bgrules.CommandRollFirst, Player: bgrules.PlayerA})
	assert.ErrorIs(t, err, ErrClosed)
}
