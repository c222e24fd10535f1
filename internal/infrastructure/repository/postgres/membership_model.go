package postgres

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/membership"
)

type memberTableModel struct {
	LeagueID string    `db:"league_id"`
	UserID   string    `db:"user_id"`
	JoinedAt time.Time `db:"joined_at"`
}

func (m memberTableModel) toDomain() membership.Member {
	return membership.Member{
		LeagueID: m.LeagueID,
		UserID:   m.UserID,
		JoinedAt: m.JoinedAt,
	}
}
