package postgres

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/event"
)

type eventTableModel struct {
	ID         string    `db:"id"`
	PhaseID    string    `db:"phase_id"`
	HomeTeamID string    `db:"home_team_id"`
	AwayTeamID string    `db:"away_team_id"`
	StartAt    time.Time `db:"start_at"`
}

func (m eventTableModel) toDomain() event.Event {
	return event.Event{
		ID:         m.ID,
		PhaseID:    m.PhaseID,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		StartAt:    m.StartAt,
	}
}
