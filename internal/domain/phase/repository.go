package phase

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/platform/database"
)

type Repository interface {
	// CurrentOpen resolves the phase currently open for pick submission in
	// the league: lock time in the future, earliest such lock first.
	CurrentOpen(ctx context.Context, q database.Querier, leagueID string) (Phase, bool, error)
	// Current resolves the most recent phase regardless of lock state.
	Current(ctx context.Context, q database.Querier, leagueID string) (Phase, bool, error)
	Upsert(ctx context.Context, q database.Querier, item Phase) error
}
