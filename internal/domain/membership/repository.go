package membership

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/platform/database"
)

type Repository interface {
	Get(ctx context.Context, q database.Querier, leagueID, userID string) (Member, bool, error)
	ListByLeague(ctx context.Context, q database.Querier, leagueID string) ([]Member, error)
	CountByLeague(ctx context.Context, q database.Querier, leagueID string) (int, error)
	Insert(ctx context.Context, q database.Querier, item Member) error
}
