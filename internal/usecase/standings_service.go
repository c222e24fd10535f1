package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/standings"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

// leagueBatchSize bounds how many leagues a fleet-wide pass loads at once.
const leagueBatchSize = 50

// StandingsService grades outstanding picks and recomputes leaderboards.
// One league's grading pass runs in one transaction; leagues never share a
// transaction, so a failing league cannot block the rest of the fleet.
type StandingsService struct {
	tx           TxRunner
	leagueRepo   league.Repository
	pickRepo     pick.Repository
	standingRepo standings.Repository
	logger       *logging.Logger
	now          func() time.Time
}

func NewStandingsService(
	tx TxRunner,
	leagueRepo league.Repository,
	pickRepo pick.Repository,
	standingRepo standings.Repository,
	logger *logging.Logger,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StandingsService{
		tx:           tx,
		leagueRepo:   leagueRepo,
		pickRepo:     pickRepo,
		standingRepo: standingRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// CalculateForAllLeagues walks every league in fixed-size batches and runs
// the per-league calculation sequentially.
func (s *StandingsService) CalculateForAllLeagues(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.CalculateForAllLeagues")
	defer span.End()

	offset := 0
	for {
		batch, err := s.leagueRepo.List(ctx, s.tx.Querier(), leagueBatchSize, offset)
		if err != nil {
			return fmt.Errorf("list leagues offset=%d: %w", offset, err)
		}
		if len(batch) == 0 {
			return nil
		}

		ids := make([]string, 0, len(batch))
		for _, item := range batch {
			ids = append(ids, item.ID)
		}
		s.CalculateForLeagues(ctx, ids)

		if len(batch) < leagueBatchSize {
			return nil
		}
		offset += len(batch)
	}
}

// CalculateForLeagues grades and re-ranks each league in its own
// transaction. A failure is logged and the remaining leagues still run.
func (s *StandingsService) CalculateForLeagues(ctx context.Context, leagueIDs []string) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.CalculateForLeagues")
	defer span.End()

	for _, leagueID := range leagueIDs {
		leagueID = strings.TrimSpace(leagueID)
		if leagueID == "" {
			continue
		}
		if err := s.calculateLeague(ctx, leagueID); err != nil {
			s.logger.ErrorContext(ctx, "standings calculation failed",
				"league_id", leagueID,
				"error", err,
			)
		}
	}
}

func (s *StandingsService) calculateLeague(ctx context.Context, leagueID string) error {
	return s.tx.WithinTx(ctx, func(ctx context.Context, q database.Querier) error {
		outstanding, err := s.pickRepo.ListUnassessedByLeague(ctx, q, leagueID)
		if err != nil {
			return fmt.Errorf("list unassessed picks: %w", err)
		}
		if len(outstanding) == 0 {
			// Nothing was graded, so standings and ranks are untouched.
			return nil
		}

		affected, err := s.gradeOutstanding(ctx, q, outstanding)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		for seasonID, userIDs := range affected {
			if err := s.recomputeSeason(ctx, q, leagueID, seasonID, userIDs, now); err != nil {
				return err
			}
		}

		return nil
	})
}

// gradeOutstanding writes a result for every outcome-complete ungraded
// pick and reports the affected users grouped by season.
func (s *StandingsService) gradeOutstanding(ctx context.Context, q database.Querier, outstanding []pick.Unassessed) (map[string]map[string]struct{}, error) {
	affected := make(map[string]map[string]struct{})

	for _, row := range outstanding {
		var teamScore, opponentScore int
		switch row.Pick.TeamID {
		case row.Event.HomeTeamID:
			teamScore, opponentScore = row.Outcome.HomeScore, row.Outcome.AwayScore
		case row.Event.AwayTeamID:
			teamScore, opponentScore = row.Outcome.AwayScore, row.Outcome.HomeScore
		default:
			return nil, fmt.Errorf("%w: pick %s references team %s outside event %s", ErrInternal, row.Pick.ID, row.Pick.TeamID, row.Event.ID)
		}

		result := pick.Grade(row.Pick.Spread, teamScore, opponentScore)
		if err := s.pickRepo.UpdateResult(ctx, q, row.Pick.ID, result); err != nil {
			return nil, fmt.Errorf("update pick result pick=%s: %w", row.Pick.ID, err)
		}

		if affected[row.Pick.SeasonID] == nil {
			affected[row.Pick.SeasonID] = make(map[string]struct{})
		}
		affected[row.Pick.SeasonID][row.Pick.UserID] = struct{}{}
	}

	return affected, nil
}

// recomputeSeason rebuilds the affected users' standings rows from the full
// set of their graded picks and re-ranks the whole league/season. Totals
// are never incremented in place; the pick table is the source of truth
// and a full recompute self-heals any stored drift.
func (s *StandingsService) recomputeSeason(ctx context.Context, q database.Querier, leagueID, seasonID string, userIDs map[string]struct{}, now time.Time) error {
	graded, err := s.pickRepo.ListGradedByLeagueSeason(ctx, q, leagueID, seasonID)
	if err != nil {
		return fmt.Errorf("list graded picks season=%s: %w", seasonID, err)
	}

	type tally struct{ wins, losses, pushes int }
	tallyByUser := make(map[string]tally)
	for _, item := range graded {
		t := tallyByUser[item.UserID]
		switch item.Result {
		case pick.ResultWin:
			t.wins++
		case pick.ResultLoss:
			t.losses++
		case pick.ResultPush:
			t.pushes++
		case pick.ResultUngraded:
			return fmt.Errorf("%w: graded pick listing returned ungraded pick %s", ErrInternal, item.ID)
		}
		tallyByUser[item.UserID] = t
	}

	users := make([]string, 0, len(userIDs))
	for userID := range userIDs {
		users = append(users, userID)
	}
	sort.Strings(users)

	for _, userID := range users {
		t := tallyByUser[userID]
		row := standings.Standing{
			LeagueID:     leagueID,
			SeasonID:     seasonID,
			UserID:       userID,
			Points:       standings.PointsFor(t.wins, t.pushes),
			Wins:         t.wins,
			Losses:       t.losses,
			Pushes:       t.pushes,
			CalculatedAt: now,
		}
		if err := s.standingRepo.Upsert(ctx, q, row); err != nil {
			return fmt.Errorf("upsert standing user=%s season=%s: %w", userID, seasonID, err)
		}
	}

	return s.rankSeason(ctx, q, leagueID, seasonID)
}

// rankSeason assigns competition ranks across all standings rows in the
// league/season and persists every rank, changed or not.
func (s *StandingsService) rankSeason(ctx context.Context, q database.Querier, leagueID, seasonID string) error {
	rows, err := s.standingRepo.ListByLeagueSeason(ctx, q, leagueID, seasonID)
	if err != nil {
		return fmt.Errorf("list standings season=%s: %w", seasonID, err)
	}

	standings.AssignRanks(rows)

	for _, row := range rows {
		if err := s.standingRepo.UpdateRank(ctx, q, leagueID, seasonID, row.UserID, row.Rank); err != nil {
			return fmt.Errorf("update rank user=%s season=%s: %w", row.UserID, seasonID, err)
		}
	}

	return nil
}

// ListByLeague serves the leaderboard for a league's season, ordered by
// rank.
func (s *StandingsService) ListByLeague(ctx context.Context, leagueID, seasonID string) ([]standings.Standing, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.ListByLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	seasonID = strings.TrimSpace(seasonID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	q := s.tx.Querier()

	lg, exists, err := s.leagueRepo.GetByID(ctx, q, leagueID)
	if err != nil {
		return nil, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if seasonID == "" {
		seasonID = lg.SeasonID
	}

	rows, err := s.standingRepo.ListByLeagueSeason(ctx, q, leagueID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	return rows, nil
}
