package pick

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/platform/database"
)

type Repository interface {
	// ListByUserAndEvents returns the user's picks against any of the given
	// events, used for the no-resubmission rule.
	ListByUserAndEvents(ctx context.Context, q database.Querier, leagueID, userID string, eventIDs []string) ([]Pick, error)
	ListByUserAndLeague(ctx context.Context, q database.Querier, leagueID, userID string) ([]Pick, error)
	// ListUnassessedByLeague returns picks with a final outcome available
	// but a null result, joined with their event and outcome.
	ListUnassessedByLeague(ctx context.Context, q database.Querier, leagueID string) ([]Unassessed, error)
	// ListGradedByLeagueSeason returns every graded pick in the
	// league/season; the aggregator recomputes standings from this full set.
	ListGradedByLeagueSeason(ctx context.Context, q database.Querier, leagueID, seasonID string) ([]Pick, error)
	Insert(ctx context.Context, q database.Querier, item Pick) error
	UpdateResult(ctx context.Context, q database.Querier, pickID string, result Result) error
}
