package phase

import "time"

// Phase is a time-boxed slate of events within a season, e.g. one week.
// Picks may only be submitted strictly before PickLockAt.
type Phase struct {
	ID         string
	LeagueID   string
	SeasonID   string
	Name       string
	PickLockAt time.Time
}

// OpenForPicksAt reports whether picks are still accepted at instant t.
// The lock boundary itself is closed: a submission at exactly PickLockAt
// is rejected.
func (p Phase) OpenForPicksAt(t time.Time) bool {
	return t.Before(p.PickLockAt)
}
