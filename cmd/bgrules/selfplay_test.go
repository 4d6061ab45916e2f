package main

import (
	"context"
	"io"
	"testing"

	"codeberg.org/tslocum/bgrules"
	"codeberg.org/tslocum/bgrules/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfPlay(t *testing.T) {
	stats, err := selfPlay(context.Background(), 5, 1, log.New(io.Discard))
	require.NoError(t, err)

	assert.Equal(t, 5, stats.games)
	assert.Equal(t, 5, stats.wins[0]+stats.wins[1])
	assert.Positive(t, stats.actions)
	var reasons int
	for _, n := range stats.reasons {
		reasons += n
	}
	assert.Equal(t, 5, reasons)

	again, err := selfPlay(context.Background(), 5, 1, log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, stats, again)
}

func TestSelfPlayCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := selfPlay(ctx, 5, 1, log.New(io.Discard))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAudit(t *testing.T) {
	g := bgrules.NewGame(bgrules.NewSequenceRoller(6, 5))
	require.NoError(t, audit(g.State()))

	s := g.State()
	s.Available = []bgrules.Move{bgrules.PointMove(0, 6, 0)}
	assert.Error(t, audit(s))

	s = g.State()
	s.Board.Checkers = s.Board.Checkers[1:]
	assert.ErrorIs(t, audit(s), bgrules.ErrInvariant)
}

type scriptedHost struct {
	advances, rematches int
	overAfter           int
}

func (h *scriptedHost) respond() *server.Response {
	phase := bgrules.PhaseRolled
	if h.advances+h.rematches >= h.overAfter {
		phase = bgrules.PhaseGameOver
	}
	return &server.Response{State: &bgrules.GameState{Phase: phase}}
}

func (h *scriptedHost) Advance(context.Context, int) (*server.Response, error) {
	h.advances++
	return h.respond(), nil
}

func (h *scriptedHost) Rematch(context.Context, int) (*server.Response, error) {
	h.rematches++
	return h.respond(), nil
}

func TestPlayMatchGame(t *testing.T) {
	h := &scriptedHost{overAfter: 3}
	state, err := playMatchGame(context.Background(), h, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, bgrules.PhaseGameOver, state.Phase)
	assert.Equal(t, 3, h.advances)
	assert.Zero(t, h.rematches)

	h = &scriptedHost{overAfter: 2}
	_, err = playMatchGame(context.Background(), h, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, h.rematches)
	assert.Equal(t, 1, h.advances)
}
