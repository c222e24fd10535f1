package standings

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/platform/database"
)

type Repository interface {
	ListByLeagueSeason(ctx context.Context, q database.Querier, leagueID, seasonID string) ([]Standing, error)
	// Upsert replaces the stored tally/points for (league, season, user)
	// with the freshly recomputed values.
	Upsert(ctx context.Context, q database.Querier, item Standing) error
	UpdateRank(ctx context.Context, q database.Querier, leagueID, seasonID, userID string, rank int) error
}
