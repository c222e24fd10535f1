package league

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/platform/database"
)

type Repository interface {
	GetByID(ctx context.Context, q database.Querier, leagueID string) (League, bool, error)
	GetByInviteCode(ctx context.Context, q database.Querier, inviteCode string) (League, bool, error)
	List(ctx context.Context, q database.Querier, limit, offset int) ([]League, error)
	Insert(ctx context.Context, q database.Querier, item League) error
}
