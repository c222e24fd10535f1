package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/phase"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type PhaseRepository struct{}

func NewPhaseRepository() *PhaseRepository {
	return &PhaseRepository{}
}

// CurrentOpen returns the phase accepting picks right now: lock still in
// the future, earliest lock first.
func (r *PhaseRepository) CurrentOpen(ctx context.Context, q database.Querier, leagueID string) (phase.Phase, bool, error) {
	query, args, err := qb.Select("*").From("phases").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Expr("pick_lock_at > NOW()"),
		).
		OrderBy("pick_lock_at ASC").
		Limit(1).
		ToSQL()
	if err != nil {
		return phase.Phase{}, false, fmt.Errorf("build current open phase query: %w", err)
	}

	var row phaseTableModel
	if err := q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return phase.Phase{}, false, nil
		}
		return phase.Phase{}, false, fmt.Errorf("get current open phase: %w", err)
	}

	return row.toDomain(), true, nil
}

// Current returns the most recently locked (or only) phase regardless of
// lock state, for score ingestion after the games have started.
func (r *PhaseRepository) Current(ctx context.Context, q database.Querier, leagueID string) (phase.Phase, bool, error) {
	query, args, err := qb.Select("*").From("phases").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Expr("pick_lock_at <= NOW()"),
		).
		OrderBy("pick_lock_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return phase.Phase{}, false, fmt.Errorf("build current phase query: %w", err)
	}

	var row phaseTableModel
	if err := q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return r.CurrentOpen(ctx, q, leagueID)
		}
		return phase.Phase{}, false, fmt.Errorf("get current phase: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PhaseRepository) Upsert(ctx context.Context, q database.Querier, item phase.Phase) error {
	query, args, err := qb.InsertModel("phases", phaseTableModel{
		ID:         item.ID,
		LeagueID:   item.LeagueID,
		SeasonID:   item.SeasonID,
		Name:       item.Name,
		PickLockAt: item.PickLockAt,
	}, "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, pick_lock_at = EXCLUDED.pick_lock_at")
	if err != nil {
		return fmt.Errorf("build upsert phase query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert phase: %w", err)
	}
	return nil
}
