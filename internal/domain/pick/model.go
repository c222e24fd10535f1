package pick

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/event"
	"github.com/riskibarqy/pickem-league/internal/domain/outcome"
)

// Result is the graded state of a pick. ResultUngraded is an explicit
// variant (stored as SQL NULL) so grading call sites switch exhaustively
// instead of testing a nullable.
type Result string

const (
	ResultUngraded Result = ""
	ResultWin      Result = "win"
	ResultLoss     Result = "loss"
	ResultPush     Result = "push"
)

func (r Result) Graded() bool {
	return r == ResultWin || r == ResultLoss || r == ResultPush
}

// Pick is one user's selection of a team for one event in a league.
// Spread is non-nil only in spread leagues and is frozen at submission
// time; it is never re-derived, even if the odds later move.
type Pick struct {
	ID        string
	LeagueID  string
	SeasonID  string
	EventID   string
	UserID    string
	TeamID    string
	Spread    *float64
	Result    Result
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Selection is the caller-supplied portion of a pick before validation.
type Selection struct {
	EventID string
	TeamID  string
}

// Unassessed is a pick whose event has a final outcome but no stored
// result yet, joined with the rows the grader needs.
type Unassessed struct {
	Pick    Pick
	Event   event.Event
	Outcome outcome.Outcome
}
