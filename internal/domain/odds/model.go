package odds

// Odds carries a sportsbook point spread for an event. SpreadHome and
// SpreadAway are signed from the respective team's own perspective, so
// SpreadAway == -SpreadHome in well-formed quotes; both are stored because
// the upstream feed quotes them independently.
type Odds struct {
	EventID    string
	SpreadHome float64
	SpreadAway float64
}

// SpreadFor returns the spread from the chosen side's perspective.
func (o Odds) SpreadFor(isHomeTeam bool) float64 {
	if isHomeTeam {
		return o.SpreadHome
	}
	return o.SpreadAway
}
