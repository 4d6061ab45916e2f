package bgrules

// barPips is the pip value of a checker on the bar.
const barPips = 25

// PipCount returns the total distance the player's checkers must travel to
// bear off.
func PipCount(b *Board, p Player) int {
	var pips int
	for _, c := range b.Checkers {
		if c.Owner != p {
			continue
		}
		switch c.Location {
		case LocationOff:
		case LocationBar:
			pips += barPips
		default:
			pips += p.Distance(int(c.Location))
		}
	}
	return pips
}
