package odds

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/platform/database"
)

type Repository interface {
	GetByEvent(ctx context.Context, q database.Querier, eventID string) (Odds, bool, error)
	Upsert(ctx context.Context, q database.Querier, item Odds) error
}
