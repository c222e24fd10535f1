package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/outcome"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type outcomeTableModel struct {
	EventID   string `db:"event_id"`
	HomeScore int    `db:"home_score"`
	AwayScore int    `db:"away_score"`
}

type OutcomeRepository struct{}

func NewOutcomeRepository() *OutcomeRepository {
	return &OutcomeRepository{}
}

func (r *OutcomeRepository) GetByEvent(ctx context.Context, q database.Querier, eventID string) (outcome.Outcome, bool, error) {
	query, args, err := qb.Select("*").From("outcomes").
		Where(qb.Eq("event_id", eventID)).
		ToSQL()
	if err != nil {
		return outcome.Outcome{}, false, fmt.Errorf("build get outcome query: %w", err)
	}

	var row outcomeTableModel
	if err := q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return outcome.Outcome{}, false, nil
		}
		return outcome.Outcome{}, false, fmt.Errorf("get outcome: %w", err)
	}

	return outcome.Outcome{
		EventID:   row.EventID,
		HomeScore: row.HomeScore,
		AwayScore: row.AwayScore,
	}, true, nil
}

func (r *OutcomeRepository) Upsert(ctx context.Context, q database.Querier, item outcome.Outcome) error {
	query, args, err := qb.InsertModel("outcomes", outcomeTableModel{
		EventID:   item.EventID,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
	}, "ON CONFLICT (event_id) DO UPDATE SET home_score = EXCLUDED.home_score, away_score = EXCLUDED.away_score")
	if err != nil {
		return fmt.Errorf("build upsert outcome query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert outcome: %w", err)
	}
	return nil
}
