package bgrules

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is matched by every rejected action. A rejected
	// action leaves the game unchanged.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInvariant is matched by every internal invariant breach.
	ErrInvariant = errors.New("invariant violated")
)

// ActionError is returned when an action is rejected. Reason is a
// player-facing sentence which is also used as the translation key.
type ActionError struct {
	Reason string
}

func (e *ActionError) Error() string {
	return "illegal action: " + e.Reason
}

func (e *ActionError) Is(target error) bool {
	return target == ErrIllegalAction
}

func illegal(reason string) *ActionError {
	return &ActionError{Reason: reason}
}

var (
	ErrGameOver           = illegal("The game is over.")
	ErrNotYourTurn        = illegal("It is not your turn.")
	ErrNotYourFirstRoll   = illegal("It is not your turn to roll.")
	ErrFirstRollPending   = illegal("The starting player has not been decided yet.")
	ErrAlreadyRolled      = illegal("You have already rolled.")
	ErrNotRolled          = illegal("You must roll before moving.")
	ErrDoublePending      = illegal("A double offer is awaiting a response.")
	ErrIllegalMove        = illegal("Illegal move.")
	ErrNotAwaitingEndTurn = illegal("You may not end your turn yet.")
	ErrNothingToUndo      = illegal("There is nothing to undo.")
	ErrMayNotDouble       = illegal("You may not double at this time.")
	ErrNoCube             = illegal("You do not currently hold the doubling cube.")
	ErrNoDoubleOffer      = illegal("There is no double offer to respond to.")
	ErrStaleTimer         = illegal("The timer has already been resolved.")
	ErrUnknownCommand     = illegal("Unknown command.")
)

// InvariantError reports an internal defect: a state the rules can never
// produce. It is surfaced rather than corrected.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "invariant violated: " + e.Message
}

func (e *InvariantError) Is(target error) bool {
	return target == ErrInvariant
}

func invariantf(format string, a ...any) *InvariantError {
	return &InvariantError{Message: fmt.Sprintf(format, a...)}
}
