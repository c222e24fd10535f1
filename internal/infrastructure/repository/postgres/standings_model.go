package postgres

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/standings"
)

type standingTableModel struct {
	LeagueID     string    `db:"league_id"`
	SeasonID     string    `db:"season_id"`
	UserID       string    `db:"user_id"`
	Points       float64   `db:"points"`
	Rank         int       `db:"rank"`
	Wins         int       `db:"wins"`
	Losses       int       `db:"losses"`
	Pushes       int       `db:"pushes"`
	CalculatedAt time.Time `db:"calculated_at"`
}

func (m standingTableModel) toDomain() standings.Standing {
	return standings.Standing{
		LeagueID:     m.LeagueID,
		SeasonID:     m.SeasonID,
		UserID:       m.UserID,
		Points:       m.Points,
		Rank:         m.Rank,
		Wins:         m.Wins,
		Losses:       m.Losses,
		Pushes:       m.Pushes,
		CalculatedAt: m.CalculatedAt,
	}
}
