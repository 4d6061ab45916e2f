package bgrules

import "fmt"

// Phase is the state of a game's turn sequence.
type Phase int8

const (
	PhaseFirstRoll       Phase = iota + 1 // Players draw one die each to decide who starts.
	PhaseAwaitingRoll                     // The current player may double or roll.
	PhaseRolled                           // Dice are fixed; moves are being played.
	PhaseAwaitingEndTurn                  // No further move is possible this turn.
	PhaseGameOver
)

var phaseNames = map[Phase]string{
	PhaseFirstRoll:       "first roll",
	PhaseAwaitingRoll:    "awaiting roll",
	PhaseRolled:          "rolled",
	PhaseAwaitingEndTurn: "awaiting end turn",
	PhaseGameOver:        "game over",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", p)
}

// WinReason is how a game ended.
type WinReason string

const (
	WinBearOff        WinReason = "bear off"
	WinResign         WinReason = "resign"
	WinDoubleDeclined WinReason = "double declined"
	WinTimeout        WinReason = "timeout"
)

// WinKind grades a bear-off win. It multiplies the stake.
type WinKind int8

const (
	WinSingle     WinKind = 1
	WinGammon     WinKind = 2
	WinBackgammon WinKind = 3
)

// Result is the outcome of a finished game.
type Result struct {
	Winner Player
	Reason WinReason
	Kind   WinKind
	Stake  int
	Points int
}

// maxUndo bounds the per-turn undo history. A turn never holds more moves
// than there are dice.
const maxUndo = 4

type snapshot struct {
	board     *Board
	dice      Dice
	turn      Player
	phase     Phase
	movesMade int
	moves     []Move
}

// Game sequences the turns of one game and is the only way to change its
// board. It is not safe for concurrent use; hosts serialize commands.
type Game struct {
	Board      *Board
	Dice       Dice
	Turn       Player
	Phase      Phase
	Cube       Cube
	FirstRolls [2]int
	TurnID     int // Incremented whenever a turn starts.
	MovesMade  int
	Moves      []Move // Moves played this turn.
	Result     *Result

	roller     Roller
	automated  [2]bool
	history    []snapshot
	undoLocked bool
}

// NewGame returns a game awaiting the first roll. A nil roller rolls with
// crypto/rand.
func NewGame(roller Roller) *Game {
	if roller == nil {
		roller = CryptoRoller{}
	}
	g := &Game{
		roller: roller,
	}
	g.Reset()
	return g
}

// Reset starts a new game with the opening layout, keeping the roller and
// automated seats.
func (g *Game) Reset() {
	g.Board = NewBoard()
	g.Dice = Dice{}
	g.Turn = PlayerNone
	g.Phase = PhaseFirstRoll
	g.Cube = NewCube()
	g.FirstRolls = [2]int{}
	g.TurnID = 0
	g.MovesMade = 0
	g.Moves = nil
	g.Result = nil
	g.history = nil
	g.undoLocked = false
}

// SetAutomated marks a seat as played by an automated actor. Its moves
// cannot be undone.
func (g *Game) SetAutomated(p Player, automated bool) {
	if p.Valid() {
		g.automated[p.index()] = automated
	}
}

// Automated reports whether the seat is played by an automated actor.
func (g *Game) Automated(p Player) bool {
	return p.Valid() && g.automated[p.index()]
}

// LegalMoves returns the legal moves of the current player's checker at
// from.
func (g *Game) LegalMoves(from Location) []Move {
	if g.Phase != PhaseRolled {
		return nil
	}
	return LegalMoves(g.Board, g.Dice, g.Turn, from)
}

// AllLegalMoves returns every legal move of the current player.
func (g *Game) AllLegalMoves() []Move {
	if g.Phase != PhaseRolled {
		return nil
	}
	return AllLegalMoves(g.Board, g.Dice, g.Turn)
}

// RollFirst draws the opening die of p. Player A draws first, then player
// B. The higher draw starts the game with both draws as its roll; a tie
// voids both draws.
func (g *Game) RollFirst(p Player) ([]Event, error) {
	if g.Phase == PhaseGameOver {
		return nil, ErrGameOver
	} else if g.Phase != PhaseFirstRoll {
		return nil, ErrAlreadyRolled
	}
	expected := PlayerA
	if g.FirstRolls[0] != 0 {
		expected = PlayerB
	}
	if p != expected {
		return nil, ErrNotYourFirstRoll
	}

	value := g.roll()
	g.FirstRolls[p.index()] = value
	events := []Event{&EventFirstRoll{
		EventHeader: EventHeader{Type: EventTypeFirstRoll, Player: p},
		Value:       value,
	}}
	if p == PlayerA {
		return events, nil
	}

	a, b := g.FirstRolls[0], g.FirstRolls[1]
	if a == b {
		g.FirstRolls = [2]int{}
		return append(events, &EventFirstRollTie{
			EventHeader: EventHeader{Type: EventTypeFirstRollTie},
			Value:       a,
		}), nil
	}
	starter := PlayerA
	if b > a {
		starter = PlayerB
	}
	g.startTurn(starter)
	g.Dice = NewDice(a, b)
	g.Phase = PhaseRolled
	events = append(events, &EventRolled{
		EventHeader: EventHeader{Type: EventTypeRolled, Player: starter},
		Dice:        g.Dice.Rolled,
		Allowed:     g.Dice.Allowed(),
		Starter:     true,
	})
	return g.checkEndTurn(events), nil
}

// Roll rolls the dice for the current player.
func (g *Game) Roll(p Player) ([]Event, error) {
	if err := g.checkActor(p); err != nil {
		return nil, err
	}
	if g.Cube.Pending() {
		return nil, ErrDoublePending
	} else if g.Phase != PhaseAwaitingRoll {
		return nil, ErrAlreadyRolled
	}

	g.Dice = NewDice(g.roll(), g.roll())
	g.Phase = PhaseRolled
	events := []Event{&EventRolled{
		EventHeader: EventHeader{Type: EventTypeRolled, Player: p},
		Dice:        g.Dice.Rolled,
		Allowed:     g.Dice.Allowed(),
	}}
	return g.checkEndTurn(events), nil
}

// Move plays m for the current player after checking it against the legal
// moves of its origin.
func (g *Game) Move(p Player, m Move) ([]Event, error) {
	if err := g.checkActor(p); err != nil {
		return nil, err
	}
	switch g.Phase {
	case PhaseAwaitingRoll:
		if g.Cube.Pending() {
			return nil, ErrDoublePending
		}
		return nil, ErrNotRolled
	case PhaseAwaitingEndTurn:
		return nil, ErrIllegalMove
	}

	var legal bool
	for _, candidate := range LegalMoves(g.Board, g.Dice, p, m.From) {
		if candidate == m {
			legal = true
			break
		}
	}
	if !legal {
		return nil, ErrIllegalMove
	}

	board, dice, events, err := Apply(g.Board, g.Dice, p, m)
	if err != nil {
		return nil, fmt.Errorf("failed to apply move %s: %w", m, err)
	}

	if g.Automated(p) {
		g.history = nil
		g.undoLocked = true
	} else if !g.undoLocked {
		g.pushHistory()
	}
	g.Board, g.Dice = board, dice
	g.MovesMade++
	g.Moves = append(g.Moves, m)

	for i, ev := range events {
		if win, ok := ev.(*EventWin); ok {
			events[i] = g.finish(win.Result)
			return events, nil
		}
	}
	return g.checkEndTurn(events), nil
}

// EndTurn passes the dice to the opponent. It is only valid once no
// further move can be played.
func (g *Game) EndTurn(p Player) ([]Event, error) {
	if err := g.checkActor(p); err != nil {
		return nil, err
	}
	if g.Phase != PhaseAwaitingEndTurn {
		return nil, ErrNotAwaitingEndTurn
	}
	return []Event{g.endTurn()}, nil
}

// Undo takes back the last move of the current turn.
func (g *Game) Undo(p Player) ([]Event, error) {
	if err := g.checkActor(p); err != nil {
		return nil, err
	}
	if g.Automated(p) || g.undoLocked || len(g.history) == 0 {
		return nil, ErrNothingToUndo
	}

	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	undone := g.Moves[len(g.Moves)-1]
	g.Board = last.board
	g.Dice = last.dice
	g.Turn = last.turn
	g.Phase = last.phase
	g.MovesMade = last.movesMade
	g.Moves = last.moves
	return []Event{&EventUndone{
		EventHeader: EventHeader{Type: EventTypeUndone, Player: p},
		Move:        undone,
	}}, nil
}

// OfferDouble offers the opponent a double of the stake. Only the player
// holding the right to double may offer, in their own turn before rolling.
func (g *Game) OfferDouble(p Player) ([]Event, error) {
	if err := g.checkActor(p); err != nil {
		return nil, err
	}
	if g.Phase != PhaseAwaitingRoll {
		return nil, ErrMayNotDouble
	}
	ev, err := g.Cube.offer(p)
	if err != nil {
		return nil, err
	}
	return []Event{ev}, nil
}

// RespondDouble accepts or declines the pending double offer. Declining
// ends the game in the offering player's favor at the pre-offer stake.
func (g *Game) RespondDouble(p Player, accept bool) ([]Event, error) {
	if g.Phase == PhaseGameOver {
		return nil, ErrGameOver
	} else if !g.Cube.Pending() {
		return nil, ErrNoDoubleOffer
	} else if p != g.Cube.Offer.Opponent() {
		return nil, ErrNotYourTurn
	}
	if accept {
		return []Event{g.Cube.accept(p)}, nil
	}
	return g.decline(p, false), nil
}

// ExpireDouble declines the offer identified by offerID because its
// decision time elapsed. Offers already decided are left alone.
func (g *Game) ExpireDouble(offerID int) ([]Event, error) {
	if g.Phase == PhaseGameOver {
		return nil, ErrGameOver
	} else if !g.Cube.Pending() || offerID != g.Cube.OfferID {
		return nil, ErrStaleTimer
	}
	return g.decline(g.Cube.Offer.Opponent(), true), nil
}

// ExpireTurn reacts to the turn clock of turn turnID running out. A player
// who still had a move to play loses the game; otherwise the turn ends.
func (g *Game) ExpireTurn(turnID int) ([]Event, error) {
	switch {
	case g.Phase == PhaseGameOver:
		return nil, ErrGameOver
	case g.Phase == PhaseFirstRoll:
		return nil, ErrFirstRollPending
	case turnID != g.TurnID:
		return nil, ErrStaleTimer
	case g.Cube.Pending():
		return nil, ErrDoublePending
	case g.Phase == PhaseAwaitingEndTurn:
		return []Event{g.endTurn()}, nil
	}
	return []Event{g.finish(Result{
		Winner: g.Turn.Opponent(),
		Reason: WinTimeout,
		Kind:   WinSingle,
	})}, nil
}

// Resign concedes the game at the current stake. A player responding to a
// double offer declines it instead.
func (g *Game) Resign(p Player) ([]Event, error) {
	if g.Phase == PhaseGameOver {
		return nil, ErrGameOver
	}
	if g.Cube.Pending() && p == g.Cube.Offer.Opponent() {
		return g.decline(p, false), nil
	}
	if err := g.checkActor(p); err != nil {
		return nil, err
	}
	return []Event{g.finish(Result{
		Winner: p.Opponent(),
		Reason: WinResign,
		Kind:   WinSingle,
	})}, nil
}

func (g *Game) decline(responder Player, expired bool) []Event {
	offeredBy := g.Cube.decline()
	return []Event{
		&EventDoubleDeclined{
			EventHeader: EventHeader{Type: EventTypeDoubleDeclined, Player: responder},
			Expired:     expired,
		},
		g.finish(Result{
			Winner: offeredBy,
			Reason: WinDoubleDeclined,
			Kind:   WinSingle,
		}),
	}
}

// checkActor rejects actions of anyone but the current player outside of
// the first roll and after the game.
func (g *Game) checkActor(p Player) error {
	switch {
	case g.Phase == PhaseGameOver:
		return ErrGameOver
	case g.Phase == PhaseFirstRoll:
		return ErrFirstRollPending
	case p != g.Turn:
		return ErrNotYourTurn
	}
	return nil
}

func (g *Game) roll() int {
	return g.roller.Roll()
}

func (g *Game) startTurn(p Player) {
	g.Turn = p
	g.TurnID++
	g.Dice = Dice{}
	g.Phase = PhaseAwaitingRoll
	g.MovesMade = 0
	g.Moves = nil
	g.history = nil
	g.undoLocked = false
}

func (g *Game) endTurn() *EventTurnEnded {
	previous := g.Turn
	g.startTurn(previous.Opponent())
	return &EventTurnEnded{
		EventHeader: EventHeader{Type: EventTypeTurnEnded, Player: g.Turn},
		Previous:    previous,
	}
}

// checkEndTurn moves the turn to PhaseAwaitingEndTurn once every die is
// used or none of the remaining dice can be played.
func (g *Game) checkEndTurn(events []Event) []Event {
	var reason EndTurnReason
	switch {
	case g.Dice.AllUsed():
		reason = EndTurnDiceUsed
	case HasLegalMove(g.Board, g.Dice, g.Turn):
		return events
	case g.MovesMade == 0:
		reason = EndTurnNoMoves
	default:
		reason = EndTurnBlocked
	}
	g.Phase = PhaseAwaitingEndTurn
	return append(events, &EventAwaitingEndTurn{
		EventHeader: EventHeader{Type: EventTypeAwaitingEndTurn, Player: g.Turn},
		Reason:      reason,
		MovesMade:   g.MovesMade,
	})
}

func (g *Game) finish(r Result) *EventWin {
	r.Stake = g.Cube.Stake
	r.Points = r.Stake * int(r.Kind)
	g.Result = &r
	g.Phase = PhaseGameOver
	g.history = nil
	return &EventWin{
		EventHeader: EventHeader{Type: EventTypeWin, Player: r.Winner},
		Result:      r,
	}
}

func (g *Game) pushHistory() {
	if len(g.history) == maxUndo {
		g.history = g.history[1:]
	}
	g.history = append(g.history, snapshot{
		board:     g.Board,
		dice:      g.Dice,
		turn:      g.Turn,
		phase:     g.Phase,
		movesMade: g.MovesMade,
		moves:     append([]Move(nil), g.Moves...),
	})
}

// Load replaces the game with a snapshot, such as one replicated from
// another instance. The board is verified first; the undo history is
// cleared.
func (g *Game) Load(s *GameState) error {
	if s == nil || s.Board == nil {
		return invariantf("snapshot has no board")
	}
	if err := s.Board.Verify(); err != nil {
		return err
	}
	if s.Phase != PhaseFirstRoll && s.Phase != PhaseGameOver && !s.Turn.Valid() {
		return invariantf("snapshot in phase %s has no current player", s.Phase)
	}
	g.Board = s.Board.Clone()
	g.Dice = s.Dice
	g.Turn = s.Turn
	g.Phase = s.Phase
	g.Cube = s.Cube
	g.FirstRolls = s.FirstRolls
	g.TurnID = s.TurnID
	g.MovesMade = s.MovesMade
	g.Moves = append([]Move(nil), s.Moves...)
	g.Result = nil
	if s.Result != nil {
		r := *s.Result
		g.Result = &r
	}
	g.history = nil
	g.undoLocked = false
	return nil
}

// State returns a snapshot of the game, including the legal moves of the
// current player.
func (g *Game) State() *GameState {
	s := &GameState{
		Board:      g.Board.Clone(),
		Dice:       g.Dice,
		Turn:       g.Turn,
		Phase:      g.Phase,
		Cube:       g.Cube,
		FirstRolls: g.FirstRolls,
		TurnID:     g.TurnID,
		MovesMade:  g.MovesMade,
		Moves:      append([]Move(nil), g.Moves...),
		Available:  g.AllLegalMoves(),
		MayUndo:    !g.Automated(g.Turn) && !g.undoLocked && len(g.history) != 0,
	}
	if g.Result != nil {
		r := *g.Result
		s.Result = &r
	}
	return s
}
