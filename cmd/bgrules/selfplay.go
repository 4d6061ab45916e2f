package main

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"codeberg.org/tslocum/bgrules"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxGameActions aborts a game which fails to finish.
const maxGameActions = 20000

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))
)

type SelfPlayCmd struct {
	Games   int    `short:"n" default:"1000" help:"Games to play"`
	Workers int    `short:"w" default:"0" help:"Parallel workers (0 uses every CPU)"`
	Seed    *int64 `help:"Random seed for reproducible results"`
}

type selfPlayStats struct {
	games    int
	actions  int
	hits     int
	doubles  int
	wins     [2]int
	points   [2]int
	reasons  map[bgrules.WinReason]int
	kinds    map[bgrules.WinKind]int
	maxStake int
}

func newSelfPlayStats() selfPlayStats {
	return selfPlayStats{
		reasons: make(map[bgrules.WinReason]int),
		kinds:   make(map[bgrules.WinKind]int),
	}
}

func (s *selfPlayStats) add(o selfPlayStats) {
	s.games += o.games
	s.actions += o.actions
	s.hits += o.hits
	s.doubles += o.doubles
	for i := range s.wins {
		s.wins[i] += o.wins[i]
		s.points[i] += o.points[i]
	}
	for k, v := range o.reasons {
		s.reasons[k] += v
	}
	for k, v := range o.kinds {
		s.kinds[k] += v
	}
	s.maxStake = max(s.maxStake, o.maxStake)
}

func (c *SelfPlayCmd) Run(logger *log.Logger) error {
	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = max(1, min(workers, c.Games))
	perWorker := c.Games / workers
	remainder := c.Games % workers

	logger = logger.WithPrefix("selfplay")
	logger.Info("Starting self-play", "games", c.Games, "workers", workers, "seed", seed)
	start := time.Now()

	g, ctx := errgroup.WithContext(context.Background())
	results := make(chan selfPlayStats, workers)
	for w := 0; w < workers; w++ {
		games := perWorker
		if w < remainder {
			games++
		}
		workerSeed := rng.Int63()
		workerLogger := logger.With("worker", w)

		g.Go(func() error {
			stats, err := selfPlay(ctx, games, workerSeed, workerLogger)
			if err != nil {
				return err
			}
			select {
			case results <- stats:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		g.Wait()
	}()

	total := newSelfPlayStats()
	for stats := range results {
		total.add(stats)
	}
	if err := g.Wait(); err != nil {
		return err
	}

	printSelfPlay(total, time.Since(start))
	return nil
}

// selfPlay plays games between random advisors, auditing every position.
func selfPlay(ctx context.Context, games int, seed int64, logger *log.Logger) (selfPlayStats, error) {
	r := rand.New(rand.NewSource(seed))
	stats := newSelfPlayStats()
	for i := 0; i < games; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		gameSeed := r.Int63()
		game := bgrules.NewGame(bgrules.NewSeededRoller(gameSeed))
		advisors := [2]bgrules.Advisor{
			bgrules.NewRandomAdvisor(r.Int63()),
			bgrules.NewRandomAdvisor(r.Int63()),
		}
		if err := playGame(game, advisors, &stats); err != nil {
			return stats, fmt.Errorf("game with seed %d: %w", gameSeed, err)
		}
		logger.Debug("Game over", "seed", gameSeed, "winner", game.Result.Winner, "reason", game.Result.Reason, "points", game.Result.Points)
	}
	return stats, nil
}

func playGame(game *bgrules.Game, advisors [2]bgrules.Advisor, stats *selfPlayStats) error {
	for actions := 0; ; actions++ {
		if actions == maxGameActions {
			return fmt.Errorf("game did not finish after %d actions", actions)
		}

		state := game.State()
		if err := audit(state); err != nil {
			return err
		}
		p := state.Awaiting()
		if p == bgrules.PlayerNone {
			break
		}

		cmd, _, err := bgrules.NextCommand(state, advisors[p-1])
		if err != nil {
			return err
		}
		events, err := game.Execute(cmd)
		if err != nil {
			return fmt.Errorf("%s by %s rejected: %w", cmd.Type, cmd.Player, err)
		}
		stats.actions++

		for _, ev := range events {
			switch ev := ev.(type) {
			case *bgrules.EventHit:
				stats.hits++
			case *bgrules.EventDoubleAccepted:
				stats.doubles++
				stats.maxStake = max(stats.maxStake, ev.Stake)
			}
		}
	}

	res := game.Result
	stats.games++
	stats.wins[res.Winner-1]++
	stats.points[res.Winner-1] += res.Points
	stats.reasons[res.Reason]++
	if res.Reason == bgrules.WinBearOff {
		stats.kinds[res.Kind]++
	}
	return nil
}

// audit checks a position for consistency: the board is intact, moves are
// offered exactly while the dice are being played, and every offered move
// can be carried out.
func audit(s *bgrules.GameState) error {
	if err := s.Board.Verify(); err != nil {
		return err
	}
	if (s.Phase == bgrules.PhaseRolled) != (len(s.Available) != 0) {
		return fmt.Errorf("phase %s offers %d moves", s.Phase, len(s.Available))
	}
	for _, m := range s.Available {
		if _, _, _, err := bgrules.Apply(s.Board, s.Dice, s.Turn, m); err != nil {
			return fmt.Errorf("legal move %s cannot be played: %w", m, err)
		}
	}
	for _, p := range []bgrules.Player{bgrules.PlayerA, bgrules.PlayerB} {
		if pips := s.PipCount(p); pips < 0 || (pips == 0) != (s.Board.Off(p) == bgrules.CheckersPerPlayer) {
			return fmt.Errorf("player %s has pip count %d with %d checkers off", p, pips, s.Board.Off(p))
		}
	}
	return nil
}

func printSelfPlay(s selfPlayStats, elapsed time.Duration) {
	p := message.NewPrinter(language.English)
	percent := func(n int) float64 {
		if s.games == 0 {
			return 0
		}
		return float64(n) / float64(s.games) * 100
	}

	fmt.Println(headerStyle.Render(p.Sprintf("Played %d games (%d actions) in %s", s.games, s.actions, elapsed.Round(time.Millisecond))))
	fmt.Println(okStyle.Render("Every position passed the audit."))
	for i, player := range []bgrules.Player{bgrules.PlayerA, bgrules.PlayerB} {
		fmt.Println(labelStyle.Render(p.Sprintf("Player %s:", player)), p.Sprintf("%d wins (%.1f%%), %d points", s.wins[i], percent(s.wins[i]), s.points[i]))
	}
	for _, reason := range []bgrules.WinReason{bgrules.WinBearOff, bgrules.WinDoubleDeclined, bgrules.WinResign, bgrules.WinTimeout} {
		fmt.Println(labelStyle.Render(p.Sprintf("%s:", reason)), p.Sprintf("%d (%.1f%%)", s.reasons[reason], percent(s.reasons[reason])))
	}
	fmt.Println(labelStyle.Render("Bear-off wins:"), p.Sprintf("%d single, %d gammon, %d backgammon", s.kinds[bgrules.WinSingle], s.kinds[bgrules.WinGammon], s.kinds[bgrules.WinBackgammon]))
	fmt.Println(labelStyle.Render("Cube:"), p.Sprintf("%d accepted doubles, highest stake %d", s.doubles, max(1, s.maxStake)))
	fmt.Println(labelStyle.Render("Hits:"), p.Sprintf("%d", s.hits))
}
