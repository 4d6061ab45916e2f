package server

import (
	"context"
	"errors"

	"codeberg.org/tslocum/bgrules"
)

func (s *server) handleCommands() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case cmd := <-s.commands:
			resp := s.handleCommand(cmd)
			if cmd.reply != nil {
				cmd.reply <- resp
			}
		}
	}
}

func (s *server) handleCommand(cmd serverCommand) *Response {
	m := s.match(cmd.match)
	if m == nil {
		if cmd.timer {
			s.logger.Debug("Dropped timer of removed match", "match", cmd.match)
		}
		return nil
	} else if cmd.timer && cmd.game != m.games {
		m.logger.Debug("Dropped timer of previous game", "type", cmd.command.Type)
		return nil
	}

	switch cmd.kind {
	case commandState:
		return &Response{State: m.State()}
	case commandRemove:
		m.stopTimers()
		s.matchesLock.Lock()
		delete(s.matches, m.id)
		s.matchesLock.Unlock()
		m.logger.Debug("Removed match")
		return &Response{State: m.State()}
	case commandRematch:
		m.rematch()
		m.logger.Info("Started rematch", "game", m.games)
		fallthrough
	case commandAdvance:
		events := s.playAutomated(m, nil)
		s.schedule(m)
		return &Response{Events: events, State: m.State()}
	}

	events, err := m.Execute(cmd.command)
	if err != nil {
		switch {
		case cmd.timer:
			m.logger.Debug("Ignored timer", "type", cmd.command.Type, "id", cmd.command.ID, "reason", err)
		case errors.Is(err, bgrules.ErrInvariant):
			m.logger.Error("Command failed", "type", cmd.command.Type, "player", cmd.command.Player, "err", err)
		default:
			m.logger.Debug("Rejected command", "type", cmd.command.Type, "player", cmd.command.Player, "reason", err)
		}
		return &Response{
			State:  m.State(),
			Err:    err,
			Notice: s.localize(m.language, err),
		}
	}
	if cmd.timer {
		m.logger.Info("Timer expired", "type", cmd.command.Type, "id", cmd.command.ID)
	}
	s.logEvents(m, events)

	events = s.playAutomated(m, events)
	s.schedule(m)
	return &Response{Events: events, State: m.State()}
}

// playAutomated lets advisors act for as long as the game awaits an
// automated seat.
func (s *server) playAutomated(m *serverMatch, events []bgrules.Event) []bgrules.Event {
	for i := 0; i < s.opts.MaxAutomatedActions; i++ {
		state := m.State()
		p := state.Awaiting()
		advisor := m.advisor(p)
		if advisor == nil {
			return events
		}
		cmd, ok, err := bgrules.NextCommand(state, advisor)
		if err != nil {
			m.logger.Error("Advisor failed", "player", p, "err", err)
			return events
		} else if !ok {
			return events
		}
		evs, err := m.Execute(cmd)
		if err != nil {
			m.logger.Error("Advisor command rejected", "player", p, "type", cmd.Type, "err", err)
			return events
		}
		s.logEvents(m, evs)
		events = append(events, evs...)
	}
	m.logger.Warn("Automated seats reached their action limit", "limit", s.opts.MaxAutomatedActions)
	return events
}

// schedule starts the clock of the decision the game waits on and stops
// clocks which no longer apply. Automated seats are never timed.
func (s *server) schedule(m *serverMatch) {
	if m.Phase == bgrules.PhaseFirstRoll || m.Phase == bgrules.PhaseGameOver {
		m.stopTimers()
		return
	}

	if m.Cube.Pending() {
		m.stopTurnTimer()
		if m.offerTimer != nil && m.offerTimerID == m.Cube.OfferID {
			return
		}
		m.stopOfferTimer()
		if m.Automated(m.Cube.Offer.Opponent()) {
			return
		}
		id := m.Cube.OfferID
		m.offerTimerID = id
		m.offerTimer = s.clock.AfterFunc(s.opts.DoubleTimeout, s.expire(m, bgrules.CommandExpireDouble, id))
		return
	}
	m.stopOfferTimer()

	if m.Automated(m.Turn) {
		m.stopTurnTimer()
		return
	} else if m.turnTimer != nil && m.turnTimerID == m.TurnID {
		return
	}
	m.stopTurnTimer()
	id := m.TurnID
	m.turnTimerID = id
	m.turnTimer = s.clock.AfterFunc(s.opts.TurnTimeout, s.expire(m, bgrules.CommandExpireTurn, id))
}

// expire returns a timer function which submits an expiry command. The
// engine rejects it if the decision was made in the meantime.
func (s *server) expire(m *serverMatch, t bgrules.CommandType, id int) func() {
	match, game := m.id, m.games
	return func() {
		cmd := serverCommand{
			match:   match,
			kind:    commandGame,
			command: bgrules.Command{Type: t, ID: id},
			timer:   true,
			game:    game,
		}
		if err := s.enqueue(context.Background(), cmd); err != nil {
			s.logger.Debug("Dropped timer", "match", match, "type", t, "err", err)
		}
	}
}

func (s *server) logEvents(m *serverMatch, events []bgrules.Event) {
	for _, ev := range events {
		h := ev.Header()
		switch ev := ev.(type) {
		case *bgrules.EventWin:
			m.logger.Info("Game over",
				"winner", ev.Result.Winner,
				"reason", ev.Result.Reason,
				"kind", ev.Result.Kind,
				"stake", ev.Result.Stake,
				"points", ev.Result.Points)
		case *bgrules.EventMoved:
			m.logger.Debug("Moved", "player", h.Player, "move", ev.Move)
		default:
			m.logger.Debug("Event", "type", h.Type, "player", h.Player)
		}
	}
}
