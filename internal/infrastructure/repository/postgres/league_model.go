package postgres

import (
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
)

type leagueTableModel struct {
	ID            string    `db:"id"`
	Name          string    `db:"name"`
	SeasonID      string    `db:"season_id"`
	InviteCode    string    `db:"invite_code"`
	PicksPerPhase int       `db:"picks_per_phase"`
	PickType      string    `db:"pick_type"`
	MaxMembers    int       `db:"max_members"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:            m.ID,
		Name:          m.Name,
		SeasonID:      m.SeasonID,
		InviteCode:    m.InviteCode,
		PicksPerPhase: m.PicksPerPhase,
		PickType:      league.PickType(m.PickType),
		MaxMembers:    m.MaxMembers,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func leagueModelFromDomain(item league.League) leagueTableModel {
	return leagueTableModel{
		ID:            item.ID,
		Name:          item.Name,
		SeasonID:      item.SeasonID,
		InviteCode:    item.InviteCode,
		PicksPerPhase: item.PicksPerPhase,
		PickType:      string(item.PickType),
		MaxMembers:    item.MaxMembers,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}
