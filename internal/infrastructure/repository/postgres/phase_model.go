package postgres

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/phase"
)

type phaseTableModel struct {
	ID         string    `db:"id"`
	LeagueID   string    `db:"league_id"`
	SeasonID   string    `db:"season_id"`
	Name       string    `db:"name"`
	PickLockAt time.Time `db:"pick_lock_at"`
}

func (m phaseTableModel) toDomain() phase.Phase {
	return phase.Phase{
		ID:         m.ID,
		LeagueID:   m.LeagueID,
		SeasonID:   m.SeasonID,
		Name:       m.Name,
		PickLockAt: m.PickLockAt,
	}
}
