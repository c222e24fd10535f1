package postgres

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/membership"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type MembershipRepository struct{}

func NewMembershipRepository() *MembershipRepository {
	return &MembershipRepository{}
}

func (r *MembershipRepository) Get(ctx context.Context, q database.Querier, leagueID, userID string) (membership.Member, bool, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(
			qb.Eq("league_id", leagueID),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return membership.Member{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row memberTableModel
	if err := q.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return membership.Member{}, false, nil
		}
		return membership.Member{}, false, fmt.Errorf("get membership: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MembershipRepository) ListByLeague(ctx context.Context, q database.Querier, leagueID string) ([]membership.Member, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(qb.Eq("league_id", leagueID)).
		OrderBy("joined_at", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list members query: %w", err)
	}

	var rows []memberTableModel
	if err := q.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	out := make([]membership.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MembershipRepository) CountByLeague(ctx context.Context, q database.Querier, leagueID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("league_members").
		Where(qb.Eq("league_id", leagueID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count members query: %w", err)
	}

	var count int
	if err := q.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return count, nil
}

func (r *MembershipRepository) Insert(ctx context.Context, q database.Querier, item membership.Member) error {
	query, args, err := qb.InsertModel("league_members", memberTableModel{
		LeagueID: item.LeagueID,
		UserID:   item.UserID,
		JoinedAt: item.JoinedAt,
	}, "ON CONFLICT (league_id, user_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert membership query: %w", err)
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}
