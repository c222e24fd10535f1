package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/event"
	"github.com/riskibarqy/pickem-league/internal/domain/outcome"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

// A NULL result column means the pick has not been graded yet.
type pickTableModel struct {
	ID        string          `db:"id"`
	LeagueID  string          `db:"league_id"`
	SeasonID  string          `db:"season_id"`
	EventID   string          `db:"event_id"`
	UserID    string          `db:"user_id"`
	TeamID    string          `db:"team_id"`
	Spread    sql.NullFloat64 `db:"spread"`
	Result    sql.NullString  `db:"result"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

func (m pickTableModel) toDomain() pick.Pick {
	return pick.Pick{
		ID:        m.ID,
		LeagueID:  m.LeagueID,
		SeasonID:  m.SeasonID,
		EventID:   m.EventID,
		UserID:    m.UserID,
		TeamID:    m.TeamID,
		Spread:    nullFloat64ToPtr(m.Spread),
		Result:    pick.Result(m.Result.String),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func pickModelFromDomain(item pick.Pick) pickTableModel {
	return pickTableModel{
		ID:        item.ID,
		LeagueID:  item.LeagueID,
		SeasonID:  item.SeasonID,
		EventID:   item.EventID,
		UserID:    item.UserID,
		TeamID:    item.TeamID,
		Spread:    ptrToNullFloat64(item.Spread),
		Result:    resultToNullString(item.Result),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// unassessedRowModel is the join of an ungraded pick with its event and
// the event's final outcome.
type unassessedRowModel struct {
	PickID     string          `db:"pick_id"`
	LeagueID   string          `db:"league_id"`
	SeasonID   string          `db:"season_id"`
	EventID    string          `db:"event_id"`
	UserID     string          `db:"user_id"`
	TeamID     string          `db:"team_id"`
	Spread     sql.NullFloat64 `db:"spread"`
	PhaseID    string          `db:"phase_id"`
	HomeTeamID string          `db:"home_team_id"`
	AwayTeamID string          `db:"away_team_id"`
	StartAt    time.Time       `db:"start_at"`
	HomeScore  int             `db:"home_score"`
	AwayScore  int             `db:"away_score"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (m unassessedRowModel) toDomain() pick.Unassessed {
	return pick.Unassessed{
		Pick: pick.Pick{
			ID:        m.PickID,
			LeagueID:  m.LeagueID,
			SeasonID:  m.SeasonID,
			EventID:   m.EventID,
			UserID:    m.UserID,
			TeamID:    m.TeamID,
			Spread:    nullFloat64ToPtr(m.Spread),
			Result:    pick.ResultUngraded,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		Event: event.Event{
			ID:         m.EventID,
			PhaseID:    m.PhaseID,
			HomeTeamID: m.HomeTeamID,
			AwayTeamID: m.AwayTeamID,
			StartAt:    m.StartAt,
		},
		Outcome: outcome.Outcome{
			EventID:   m.EventID,
			HomeScore: m.HomeScore,
			AwayScore: m.AwayScore,
		},
	}
}

func nullFloat64ToPtr(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	v := value.Float64
	return &v
}

func ptrToNullFloat64(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}

func resultToNullString(value pick.Result) sql.NullString {
	if value == pick.ResultUngraded {
		return sql.NullString{}
	}
	return sql.NullString{String: string(value), Valid: true}
}
