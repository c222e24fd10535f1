package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/membership"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
)

// inviteCodeLength is the number of hex characters exposed in invite codes.
const inviteCodeLength = 8

// LeagueService manages league lifecycle and membership.
type LeagueService struct {
	tx         TxRunner
	leagueRepo league.Repository
	memberRepo membership.Repository
	ids        idgen.Generator
	now        func() time.Time
}

func NewLeagueService(
	tx TxRunner,
	leagueRepo league.Repository,
	memberRepo membership.Repository,
	ids idgen.Generator,
) *LeagueService {
	return &LeagueService{
		tx:         tx,
		leagueRepo: leagueRepo,
		memberRepo: memberRepo,
		ids:        ids,
		now:        time.Now,
	}
}

type CreateLeagueInput struct {
	Name          string
	SeasonID      string
	PicksPerPhase int
	PickType      league.PickType
	MaxMembers    int
}

// Create persists a new league and enrolls the creator as its first member.
func (s *LeagueService) Create(ctx context.Context, ownerUserID string, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Create")
	defer span.End()

	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return league.League{}, fmt.Errorf("%w: owner user id is required", ErrInvalidInput)
	}

	id, err := s.ids.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}
	inviteCode, err := s.newInviteCode()
	if err != nil {
		return league.League{}, err
	}

	now := s.now().UTC()
	item := league.League{
		ID:            id,
		Name:          strings.TrimSpace(input.Name),
		SeasonID:      strings.TrimSpace(input.SeasonID),
		InviteCode:    inviteCode,
		PicksPerPhase: input.PicksPerPhase,
		PickType:      input.PickType,
		MaxMembers:    input.MaxMembers,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, q database.Querier) error {
		if err := s.leagueRepo.Insert(ctx, q, item); err != nil {
			return fmt.Errorf("insert league: %w", err)
		}
		owner := membership.Member{LeagueID: item.ID, UserID: ownerUserID, JoinedAt: now}
		if err := s.memberRepo.Insert(ctx, q, owner); err != nil {
			return fmt.Errorf("insert owner membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return league.League{}, err
	}

	return item, nil
}

// JoinByInvite enrolls the user into the league behind the invite code.
// Rejoining is a no-op and returns the league.
func (s *LeagueService) JoinByInvite(ctx context.Context, userID, inviteCode string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinByInvite")
	defer span.End()

	userID = strings.TrimSpace(userID)
	inviteCode = strings.TrimSpace(inviteCode)
	if userID == "" || inviteCode == "" {
		return league.League{}, fmt.Errorf("%w: user_id and invite_code are required", ErrInvalidInput)
	}

	var joined league.League
	err := s.tx.WithinTx(ctx, func(ctx context.Context, q database.Querier) error {
		lg, exists, err := s.leagueRepo.GetByInviteCode(ctx, q, inviteCode)
		if err != nil {
			return fmt.Errorf("get league by invite code: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: no league for this invite code", ErrNotFound)
		}

		_, isMember, err := s.memberRepo.Get(ctx, q, lg.ID, userID)
		if err != nil {
			return fmt.Errorf("get league membership: %w", err)
		}
		if isMember {
			joined = lg
			return nil
		}

		if lg.MaxMembers > 0 {
			count, err := s.memberRepo.CountByLeague(ctx, q, lg.ID)
			if err != nil {
				return fmt.Errorf("count league members: %w", err)
			}
			if count >= lg.MaxMembers {
				return fmt.Errorf("%w: league %s is full", ErrForbidden, lg.ID)
			}
		}

		item := membership.Member{LeagueID: lg.ID, UserID: userID, JoinedAt: s.now().UTC()}
		if err := s.memberRepo.Insert(ctx, q, item); err != nil {
			return fmt.Errorf("insert membership: %w", err)
		}

		joined = lg
		return nil
	})
	if err != nil {
		return league.League{}, err
	}

	return joined, nil
}

// Get returns one league by id.
func (s *LeagueService) Get(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Get")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists, err := s.leagueRepo.GetByID(ctx, s.tx.Querier(), leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return item, nil
}

// List pages through leagues.
func (s *LeagueService) List(ctx context.Context, limit, offset int) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.List")
	defer span.End()

	if limit < 1 || limit > 100 {
		limit = 25
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.leagueRepo.List(ctx, s.tx.Querier(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return items, nil
}

// ListMembers returns the members of a league. Only members may see the
// roster.
func (s *LeagueService) ListMembers(ctx context.Context, leagueID, callerUserID string) ([]membership.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMembers")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	callerUserID = strings.TrimSpace(callerUserID)
	if leagueID == "" || callerUserID == "" {
		return nil, fmt.Errorf("%w: league_id and user_id are required", ErrInvalidInput)
	}

	q := s.tx.Querier()

	_, exists, err := s.leagueRepo.GetByID(ctx, q, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	_, isMember, err := s.memberRepo.Get(ctx, q, leagueID, callerUserID)
	if err != nil {
		return nil, fmt.Errorf("get league membership: %w", err)
	}
	if !isMember {
		return nil, fmt.Errorf("%w: user is not a member of league %s", ErrForbidden, leagueID)
	}

	items, err := s.memberRepo.ListByLeague(ctx, q, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list league members: %w", err)
	}

	return items, nil
}

func (s *LeagueService) newInviteCode() (string, error) {
	id, err := s.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate invite code: %w", err)
	}
	if len(id) > inviteCodeLength {
		id = id[:inviteCodeLength]
	}
	return id, nil
}
