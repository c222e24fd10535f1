package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type oddsTableModel struct {
	EventID    string  `db:"event_id"`
	SpreadHome float64 `db:"spread_home"`
	SpreadAway float64 `db:"spread_away"`
}

type OddsRepository struct{}

func NewOddsRepository() *OddsRepository {
	return &OddsRepository{}
}

func (r *OddsRepository) GetByEvent(ctx context.Context, q database.Querier, eventID string) (odds.Odds, bool, error) {
	query, args, err := qb.Select("*").From("odds").
		Where(qb.Eq("event_id", eventID)).
		ToSQL()
	if err != nil {
		return odds.Odds{}, false, fmt.Errorf("build get odds query: %w", err)
	}

	var row oddsTableModel
	if err := q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return odds.Odds{}, false, nil
		}
		return odds.Odds{}, false, fmt.Errorf("get odds: %w", err)
	}

	return odds.Odds{
		EventID:    row.EventID,
		SpreadHome: row.SpreadHome,
		SpreadAway: row.SpreadAway,
	}, true, nil
}

func (r *OddsRepository) Upsert(ctx context.Context, q database.Querier, item odds.Odds) error {
	query, args, err := qb.InsertModel("odds", oddsTableModel{
		EventID:    item.EventID,
		SpreadHome: item.SpreadHome,
		SpreadAway: item.SpreadAway,
	}, "ON CONFLICT (event_id) DO UPDATE SET spread_home = EXCLUDED.spread_home, spread_away = EXCLUDED.spread_away")
	if err != nil {
		return fmt.Errorf("build upsert odds query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert odds: %w", err)
	}
	return nil
}
