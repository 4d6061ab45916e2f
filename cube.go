package bgrules

// Cube is the doubling cube: the stake multiplier and who may raise it.
type Cube struct {
	Stake     int
	MayDouble [2]bool // Indexed by player: PlayerA first.
	Offer     Player  // Player who offered the pending double, if any.
	OfferID   int     // Identifies the pending offer. Incremented by every offer and decision.
}

// NewCube returns a centered cube: both players may double.
func NewCube() Cube {
	return Cube{
		Stake:     1,
		MayDouble: [2]bool{true, true},
	}
}

// Holds reports whether p currently holds the right to double.
func (c *Cube) Holds(p Player) bool {
	return p.Valid() && c.MayDouble[p.index()]
}

// Pending reports whether a double offer awaits a response.
func (c *Cube) Pending() bool {
	return c.Offer != PlayerNone
}

// offer records a double offer by p. The caller checks timing.
func (c *Cube) offer(p Player) (*EventDoubleOffered, error) {
	switch {
	case c.Pending():
		return nil, ErrDoublePending
	case !c.Holds(p):
		return nil, ErrNoCube
	}
	c.Offer = p
	c.OfferID++
	return &EventDoubleOffered{
		EventHeader: EventHeader{Type: EventTypeDoubleOffered, Player: p},
		Stake:       c.Stake * 2,
		OfferID:     c.OfferID,
	}, nil
}

// accept doubles the stake and hands the right to double to the
// responding player alone.
func (c *Cube) accept(responder Player) *EventDoubleAccepted {
	c.Stake *= 2
	c.MayDouble[c.Offer.index()] = false
	c.MayDouble[responder.index()] = true
	c.Offer = PlayerNone
	c.OfferID++
	return &EventDoubleAccepted{
		EventHeader: EventHeader{Type: EventTypeDoubleAccepted, Player: responder},
		Stake:       c.Stake,
	}
}

// decline withdraws the pending offer and returns the player who offered.
// The stake is left at its pre-offer value.
func (c *Cube) decline() Player {
	offeredBy := c.Offer
	c.Offer = PlayerNone
	c.OfferID++
	return offeredBy
}
