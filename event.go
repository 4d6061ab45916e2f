package bgrules

// Events are always produced by the engine, in the order they happened.

type EventType string

const (
	EventTypeFirstRoll       EventType = "firstroll"
	EventTypeFirstRollTie    EventType = "firstrolltie"
	EventTypeRolled          EventType = "rolled"
	EventTypeMoved           EventType = "moved"
	EventTypeHit             EventType = "hit"
	EventTypeBorneOff        EventType = "borneoff"
	EventTypeAwaitingEndTurn EventType = "awaitingendturn"
	EventTypeTurnEnded       EventType = "turnended"
	EventTypeUndone          EventType = "undone"
	EventTypeDoubleOffered   EventType = "doubleoffered"
	EventTypeDoubleAccepted  EventType = "doubleaccepted"
	EventTypeDoubleDeclined  EventType = "doubledeclined"
	EventTypeWin             EventType = "win"
)

// Event is implemented by every event type.
type Event interface {
	Header() EventHeader
}

// EventHeader is embedded in every event.
type EventHeader struct {
	Type   EventType
	Player Player // The player who acted, or whose checker was affected.
}

func (h EventHeader) Header() EventHeader {
	return h
}

// EventFirstRoll reports a single die drawn to decide the starting player.
type EventFirstRoll struct {
	EventHeader
	Value int
}

// EventFirstRollTie reports equal opening draws. Both players draw again.
type EventFirstRollTie struct {
	EventHeader
	Value int
}

// EventRolled reports the dice of a turn. Starter is set when the roll
// is the pair of opening draws.
type EventRolled struct {
	EventHeader
	Dice    [2]int
	Allowed []int
	Starter bool
}

// EventMoved reports a checker move and the dice it consumed.
type EventMoved struct {
	EventHeader
	Move    Move
	Checker int
	Dice    []int
}

// EventHit reports a checker sent to the bar. Player is its owner.
type EventHit struct {
	EventHeader
	Checker int
	Point   int
}

// EventBorneOff reports a checker removed from the board.
type EventBorneOff struct {
	EventHeader
	Checker  int
	BorneOff int
}

// EndTurnReason explains why a turn awaits its end.
type EndTurnReason string

const (
	EndTurnDiceUsed EndTurnReason = "dice used" // Every die was played.
	EndTurnNoMoves  EndTurnReason = "no moves"  // Nothing could be played with this roll.
	EndTurnBlocked  EndTurnReason = "blocked"   // Some dice were played, the rest cannot be.
)

// EventAwaitingEndTurn reports that the current turn may only be ended.
type EventAwaitingEndTurn struct {
	EventHeader
	Reason    EndTurnReason
	MovesMade int
}

// EventTurnEnded reports the end of a turn. Player is the next player.
type EventTurnEnded struct {
	EventHeader
	Previous Player
}

// EventUndone reports that the previous move was taken back.
type EventUndone struct {
	EventHeader
	Move Move
}

// EventDoubleOffered reports a double offer. Stake is the proposed stake.
type EventDoubleOffered struct {
	EventHeader
	Stake   int
	OfferID int
}

// EventDoubleAccepted reports an accepted double. Player accepted.
type EventDoubleAccepted struct {
	EventHeader
	Stake int
}

// EventDoubleDeclined reports a declined double. Player declined.
type EventDoubleDeclined struct {
	EventHeader
	Expired bool
}

// EventWin reports the end of the game. Player is the winner.
type EventWin struct {
	EventHeader
	Result Result
}
