package event

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/platform/database"
)

type Repository interface {
	ListByPhase(ctx context.Context, q database.Querier, phaseID string) ([]Event, error)
	Upsert(ctx context.Context, q database.Querier, item Event) error
}
