package server

import (
	"time"

	"codeberg.org/tslocum/bgrules"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

// MatchOptions configures a new match.
type MatchOptions struct {
	// Language is a BCP 47 tag used to localize rejection notices. The
	// server's language is used when empty.
	Language string

	// Advisors play the seats they are set for: index 0 is player A. Seats
	// without an advisor are played by submitted commands.
	Advisors [2]bgrules.Advisor

	// Roller rolls the dice. Dice are rolled with crypto/rand when nil.
	Roller bgrules.Roller
}

type serverMatch struct {
	id       int
	created  time.Time
	language string
	advisors [2]bgrules.Advisor
	games    int
	logger   *log.Logger

	turnTimer    *quartz.Timer
	turnTimerID  int
	offerTimer   *quartz.Timer
	offerTimerID int

	*bgrules.Game
}

func newServerMatch(id int, now time.Time, language string, opts MatchOptions, logger *log.Logger) *serverMatch {
	m := &serverMatch{
		id:       id,
		created:  now,
		language: language,
		advisors: opts.Advisors,
		games:    1,
		logger:   logger,
		Game:     bgrules.NewGame(opts.Roller),
	}
	for _, p := range []bgrules.Player{bgrules.PlayerA, bgrules.PlayerB} {
		m.SetAutomated(p, m.advisor(p) != nil)
	}
	return m
}

func (m *serverMatch) advisor(p bgrules.Player) bgrules.Advisor {
	switch p {
	case bgrules.PlayerA:
		return m.advisors[0]
	case bgrules.PlayerB:
		return m.advisors[1]
	}
	return nil
}

func (m *serverMatch) stopTurnTimer() {
	if m.turnTimer != nil {
		m.turnTimer.Stop()
		m.turnTimer = nil
	}
	m.turnTimerID = 0
}

func (m *serverMatch) stopOfferTimer() {
	if m.offerTimer != nil {
		m.offerTimer.Stop()
		m.offerTimer = nil
	}
	m.offerTimerID = 0
}

func (m *serverMatch) stopTimers() {
	m.stopTurnTimer()
	m.stopOfferTimer()
}

// rematch starts a new game in the match.
func (m *serverMatch) rematch() {
	m.stopTimers()
	m.Reset()
	m.games++
}
