package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type PickRepository struct{}

func NewPickRepository() *PickRepository {
	return &PickRepository{}
}

func (r *PickRepository) ListByUserAndEvents(ctx context.Context, q database.Querier, leagueID, userID string, eventIDs []string) ([]pick.Pick, error) {
	ids := make([]any, 0, len(eventIDs))
	for _, id := range eventIDs {
		ids = append(ids, id)
	}

	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("user_id", userID),
			qb.In("event_id", ids),
		).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks by user and events query: %w", err)
	}

	var rows []pickTableModel
	if err := q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks by user and events: %w", err)
	}

	return picksToDomain(rows), nil
}

func (r *PickRepository) ListByUserAndLeague(ctx context.Context, q database.Querier, leagueID, userID string) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("user_id", userID),
		).
		OrderBy("created_at DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks by user and league query: %w", err)
	}

	var rows []pickTableModel
	if err := q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks by user and league: %w", err)
	}

	return picksToDomain(rows), nil
}

// ListUnassessedByLeague joins ungraded picks with their event and the
// event's outcome, so only outcome-complete picks come back.
func (r *PickRepository) ListUnassessedByLeague(ctx context.Context, q database.Querier, leagueID string) ([]pick.Unassessed, error) {
	query, args, err := qb.Select(
		"p.id AS pick_id",
		"p.league_id",
		"p.season_id",
		"p.event_id",
		"p.user_id",
		"p.team_id",
		"p.spread",
		"p.created_at",
		"p.updated_at",
		"e.phase_id",
		"e.home_team_id",
		"e.away_team_id",
		"e.start_at",
		"o.home_score",
		"o.away_score",
	).From("picks p JOIN events e ON e.id = p.event_id JOIN outcomes o ON o.event_id = p.event_id").
		Where(
			qb.Eq("p.league_id", leagueID),
			qb.IsNull("p.result"),
		).
		OrderBy("e.start_at", "p.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list unassessed picks query: %w", err)
	}

	var rows []unassessedRowModel
	if err := q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list unassessed picks: %w", err)
	}

	out := make([]pick.Unassessed, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PickRepository) ListGradedByLeagueSeason(ctx context.Context, q database.Querier, leagueID, seasonID string) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("season_id", seasonID),
			qb.Expr("result IS NOT NULL"),
		).
		OrderBy("user_id", "created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list graded picks query: %w", err)
	}

	var rows []pickTableModel
	if err := q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list graded picks: %w", err)
	}

	return picksToDomain(rows), nil
}

func (r *PickRepository) Insert(ctx context.Context, q database.Querier, item pick.Pick) error {
	query, args, err := qb.InsertModel("picks", pickModelFromDomain(item), "")
	if err != nil {
		return fmt.Errorf("build insert pick query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert pick: %w", err)
	}
	return nil
}

func (r *PickRepository) UpdateResult(ctx context.Context, q database.Querier, pickID string, result pick.Result) error {
	query, args, err := qb.Update("picks").
		Set("result", resultToNullString(result)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", pickID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update pick result query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update pick result: %w", err)
	}
	return nil
}

func picksToDomain(rows []pickTableModel) []pick.Pick {
	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
