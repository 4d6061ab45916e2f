package bgrules

// Commands are always sent TO the engine.

type CommandType string

const (
	CommandRollFirst    CommandType = "rollfirst"
	CommandRoll         CommandType = "roll"
	CommandMove         CommandType = "move"
	CommandEndTurn      CommandType = "endturn"
	CommandUndo         CommandType = "undo"
	CommandDouble       CommandType = "double"
	CommandAccept       CommandType = "accept"
	CommandDecline      CommandType = "decline"
	CommandResign       CommandType = "resign"
	CommandExpireDouble CommandType = "expiredouble" // Issued by a host's offer clock.
	CommandExpireTurn   CommandType = "expireturn"   // Issued by a host's turn clock.
)

type Command struct {
	Type   CommandType
	Player Player
	Move   Move // CommandMove only.
	ID     int  // Offer or turn ID of an expiry command.
}

// Execute performs a command and returns the events it produced. A rejected
// command returns an *ActionError and leaves the game unchanged.
func (g *Game) Execute(cmd Command) ([]Event, error) {
	switch cmd.Type {
	case CommandRollFirst:
		return g.RollFirst(cmd.Player)
	case CommandRoll:
		return g.Roll(cmd.Player)
	case CommandMove:
		return g.Move(cmd.Player, cmd.Move)
	case CommandEndTurn:
		return g.EndTurn(cmd.Player)
	case CommandUndo:
		return g.Undo(cmd.Player)
	case CommandDouble:
		return g.OfferDouble(cmd.Player)
	case CommandAccept:
		return g.RespondDouble(cmd.Player, true)
	case CommandDecline:
		return g.RespondDouble(cmd.Player, false)
	case CommandResign:
		return g.Resign(cmd.Player)
	case CommandExpireDouble:
		return g.ExpireDouble(cmd.ID)
	case CommandExpireTurn:
		return g.ExpireTurn(cmd.ID)
	default:
		return nil, ErrUnknownCommand
	}
}
