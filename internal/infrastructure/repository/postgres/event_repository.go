package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/event"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type EventRepository struct{}

func NewEventRepository() *EventRepository {
	return &EventRepository{}
}

func (r *EventRepository) ListByPhase(ctx context.Context, q database.Querier, phaseID string) ([]event.Event, error) {
	query, args, err := qb.Select("*").From("events").
		Where(qb.Eq("phase_id", phaseID)).
		OrderBy("start_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events by phase query: %w", err)
	}

	var rows []eventTableModel
	if err := q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list events by phase: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *EventRepository) Upsert(ctx context.Context, q database.Querier, item event.Event) error {
	query, args, err := qb.InsertModel("events", eventTableModel{
		ID:         item.ID,
		PhaseID:    item.PhaseID,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		StartAt:    item.StartAt,
	}, "ON CONFLICT (id) DO UPDATE SET phase_id = EXCLUDED.phase_id, home_team_id = EXCLUDED.home_team_id, away_team_id = EXCLUDED.away_team_id, start_at = EXCLUDED.start_at")
	if err != nil {
		return fmt.Errorf("build upsert event query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert event: %w", err)
	}
	return nil
}
