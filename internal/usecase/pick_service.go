package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/event"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/membership"
	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/domain/phase"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
)

// PickService validates and persists pick submissions for the currently
// open phase. The whole submission runs in one transaction; any validation
// failure aborts it with no partial writes.
type PickService struct {
	tx         TxRunner
	leagueRepo league.Repository
	memberRepo membership.Repository
	phaseRepo  phase.Repository
	eventRepo  event.Repository
	oddsRepo   odds.Repository
	pickRepo   pick.Repository
	ids        idgen.Generator
	now        func() time.Time
}

func NewPickService(
	tx TxRunner,
	leagueRepo league.Repository,
	memberRepo membership.Repository,
	phaseRepo phase.Repository,
	eventRepo event.Repository,
	oddsRepo odds.Repository,
	pickRepo pick.Repository,
	ids idgen.Generator,
) *PickService {
	return &PickService{
		tx:         tx,
		leagueRepo: leagueRepo,
		memberRepo: memberRepo,
		phaseRepo:  phaseRepo,
		eventRepo:  eventRepo,
		oddsRepo:   oddsRepo,
		pickRepo:   pickRepo,
		ids:        ids,
		now:        time.Now,
	}
}

// SubmitPicks accepts a user's complete pick set for the league's open
// phase. Submissions are all-or-nothing: the required count must match
// exactly and a user with any existing pick against the phase cannot
// submit again.
func (s *PickService) SubmitPicks(ctx context.Context, userID, leagueID string, selections []pick.Selection) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SubmitPicks")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" || leagueID == "" {
		return fmt.Errorf("%w: user_id and league_id are required", ErrInvalidInput)
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context, q database.Querier) error {
		return s.submitPicksTx(ctx, q, userID, leagueID, selections)
	})
}

func (s *PickService) submitPicksTx(ctx context.Context, q database.Querier, userID, leagueID string, selections []pick.Selection) error {
	now := s.now().UTC()

	_, isMember, err := s.memberRepo.Get(ctx, q, leagueID, userID)
	if err != nil {
		return fmt.Errorf("get league membership: %w", err)
	}
	if !isMember {
		return fmt.Errorf("%w: user is not a member of league %s", ErrForbidden, leagueID)
	}

	lg, exists, err := s.leagueRepo.GetByID(ctx, q, leagueID)
	if err != nil {
		return fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	ph, exists, err := s.phaseRepo.CurrentOpen(ctx, q, leagueID)
	if err != nil {
		return fmt.Errorf("resolve open phase: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league %s has no open phase", ErrNotFound, leagueID)
	}
	if !ph.OpenForPicksAt(now) {
		return fmt.Errorf("%w: picks for phase %s are locked", ErrForbidden, ph.ID)
	}

	events, err := s.eventRepo.ListByPhase(ctx, q, ph.ID)
	if err != nil {
		return fmt.Errorf("list events by phase: %w", err)
	}
	if len(events) == 0 {
		return fmt.Errorf("%w: phase %s has no events", ErrNotFound, ph.ID)
	}

	phaseEventIDs := make([]string, 0, len(events))
	futureByID := make(map[string]event.Event)
	for _, item := range events {
		phaseEventIDs = append(phaseEventIDs, item.ID)
		if item.StartAt.After(now) {
			futureByID[item.ID] = item
		}
	}

	required := lg.PicksPerPhase
	if len(futureByID) < required {
		required = len(futureByID)
	}
	if len(selections) != required {
		return fmt.Errorf("%w: you must submit exactly %d picks for this phase (%d submitted)", ErrInvalidInput, required, len(selections))
	}

	existing, err := s.pickRepo.ListByUserAndEvents(ctx, q, leagueID, userID, phaseEventIDs)
	if err != nil {
		return fmt.Errorf("list existing picks: %w", err)
	}
	if len(existing) > 0 {
		return fmt.Errorf("%w: picks already submitted for phase %s", ErrForbidden, ph.ID)
	}

	seen := make(map[string]struct{}, len(selections))
	for _, sel := range selections {
		if _, dup := seen[sel.EventID]; dup {
			return fmt.Errorf("%w: duplicate pick for event %s", ErrInvalidInput, sel.EventID)
		}
		seen[sel.EventID] = struct{}{}
	}

	for _, sel := range selections {
		ev, ok := futureByID[sel.EventID]
		if !ok {
			return fmt.Errorf("%w: event %s is not open for picks in this phase", ErrInvalidInput, sel.EventID)
		}
		if !ev.HasTeam(sel.TeamID) {
			return fmt.Errorf("%w: team %s does not play in event %s", ErrInvalidInput, sel.TeamID, sel.EventID)
		}

		spread, err := s.freezeSpread(ctx, q, lg, ev, sel.TeamID)
		if err != nil {
			return err
		}

		id, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate pick id: %w", err)
		}

		item := pick.Pick{
			ID:        id,
			LeagueID:  leagueID,
			SeasonID:  ph.SeasonID,
			EventID:   ev.ID,
			UserID:    userID,
			TeamID:    sel.TeamID,
			Spread:    spread,
			Result:    pick.ResultUngraded,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.pickRepo.Insert(ctx, q, item); err != nil {
			return fmt.Errorf("insert pick event=%s: %w", ev.ID, err)
		}
	}

	return nil
}

// freezeSpread resolves the spread value stored on a new pick. Spread
// leagues freeze the chosen side's current quote; missing odds freeze nil.
// Straight-up leagues never carry a spread.
func (s *PickService) freezeSpread(ctx context.Context, q database.Querier, lg league.League, ev event.Event, teamID string) (*float64, error) {
	if lg.PickType != league.PickTypeSpread {
		return nil, nil
	}

	quote, found, err := s.oddsRepo.GetByEvent(ctx, q, ev.ID)
	if err != nil {
		return nil, fmt.Errorf("get odds for event %s: %w", ev.ID, err)
	}
	if !found {
		return nil, nil
	}

	spread := quote.SpreadFor(teamID == ev.HomeTeamID)
	return &spread, nil
}

// ListMine returns the caller's picks in a league, newest first per the
// repository ordering.
func (s *PickService) ListMine(ctx context.Context, leagueID, userID string) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListMine")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	userID = strings.TrimSpace(userID)
	if leagueID == "" || userID == "" {
		return nil, fmt.Errorf("%w: user_id and league_id are required", ErrInvalidInput)
	}

	q := s.tx.Querier()

	_, exists, err := s.leagueRepo.GetByID(ctx, q, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	items, err := s.pickRepo.ListByUserAndLeague(ctx, q, leagueID, userID)
	if err != nil {
		return nil, fmt.Errorf("list picks by user and league: %w", err)
	}

	return items, nil
}
