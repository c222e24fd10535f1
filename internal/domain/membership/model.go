package membership

import "time"

// Member is one user's enrollment in a league.
type Member struct {
	LeagueID string
	UserID   string
	JoinedAt time.Time
}
