package outcome

// Outcome is the authoritative final score of a completed event.
type Outcome struct {
	EventID   string
	HomeScore int
	AwayScore int
}
