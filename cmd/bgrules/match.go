package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/tslocum/bgrules"
	"codeberg.org/tslocum/bgrules/pkg/server"
	"github.com/charmbracelet/log"
)

type MatchCmd struct {
	Games    int           `short:"n" default:"1" help:"Games to play in the match"`
	Seed     *int64        `help:"Roll with a seeded generator instead of crypto/rand"`
	Language string        `help:"Language of rejection notices (BCP 47)"`
	Timeout  time.Duration `default:"1m" help:"Time limit for each game"`
}

func (c *MatchCmd) Run(logger *log.Logger) error {
	opts, err := server.LoadOptions()
	if err != nil {
		return err
	}
	if logger.GetLevel() == log.DebugLevel {
		opts.Verbose = true
	}
	s := server.NewServer(opts, nil, logger)
	defer s.Close()

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	id := s.NewMatch(server.MatchOptions{
		Language: c.Language,
		Advisors: [2]bgrules.Advisor{
			bgrules.NewRandomAdvisor(seed),
			bgrules.NewRandomAdvisor(seed + 1),
		},
		Roller: bgrules.NewSeededRoller(seed),
	})

	var points [2]int
	for game := 1; game <= c.Games; game++ {
		ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
		state, err := playMatchGame(ctx, s, id, game)
		cancel()
		if err != nil {
			return fmt.Errorf("game %d: %w", game, err)
		}
		res := state.Result
		points[res.Winner-1] += res.Points
		fmt.Printf("Game %d: %s wins by %s for %d points (A %d, B %d)\n", game, res.Winner, res.Reason, res.Points, points[0], points[1])
	}
	return nil
}

type matchHost interface {
	Advance(ctx context.Context, id int) (*server.Response, error)
	Rematch(ctx context.Context, id int) (*server.Response, error)
}

// playMatchGame lets both automated seats play a game to completion.
func playMatchGame(ctx context.Context, s matchHost, id int, game int) (*bgrules.GameState, error) {
	advance := s.Advance
	if game > 1 {
		advance = s.Rematch
	}
	for {
		resp, err := advance(ctx, id)
		if err != nil {
			return nil, err
		} else if resp.Err != nil {
			return nil, resp.Err
		}
		if resp.State.Phase == bgrules.PhaseGameOver {
			return resp.State, nil
		}
		advance = s.Advance
	}
}
