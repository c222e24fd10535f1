package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type StandingsRepository struct{}

func NewStandingsRepository() *StandingsRepository {
	return &StandingsRepository{}
}

func (r *StandingsRepository) ListByLeagueSeason(ctx context.Context, q database.Querier, leagueID, seasonID string) ([]standings.Standing, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("season_id", seasonID),
		).
		OrderBy("points DESC", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingTableModel
	if err := q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standings.Standing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Upsert replaces the stored tally for (league, season, user). The rank
// column is left alone here; the rank pass writes it separately.
func (r *StandingsRepository) Upsert(ctx context.Context, q database.Querier, item standings.Standing) error {
	query, args, err := qb.InsertModel("standings", standingTableModel{
		LeagueID:     item.LeagueID,
		SeasonID:     item.SeasonID,
		UserID:       item.UserID,
		Points:       item.Points,
		Rank:         item.Rank,
		Wins:         item.Wins,
		Losses:       item.Losses,
		Pushes:       item.Pushes,
		CalculatedAt: item.CalculatedAt,
	}, "ON CONFLICT (league_id, season_id, user_id) DO UPDATE SET points = EXCLUDED.points, wins = EXCLUDED.wins, losses = EXCLUDED.losses, pushes = EXCLUDED.pushes, calculated_at = EXCLUDED.calculated_at")
	if err != nil {
		return fmt.Errorf("build upsert standing query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert standing: %w", err)
	}
	return nil
}

func (r *StandingsRepository) UpdateRank(ctx context.Context, q database.Querier, leagueID, seasonID, userID string, rank int) error {
	query, args, err := qb.Update("standings").
		Set("rank", rank).
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("season_id", seasonID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update rank query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update rank: %w", err)
	}
	return nil
}
