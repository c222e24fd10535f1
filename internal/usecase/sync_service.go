package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/event"
	"github.com/riskibarqy/pickem-league/internal/domain/league"
	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/domain/outcome"
	"github.com/riskibarqy/pickem-league/internal/domain/phase"
	"github.com/riskibarqy/pickem-league/internal/platform/database"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

// ScheduleProvider is the upstream sports data feed.
type ScheduleProvider interface {
	FetchSchedule(ctx context.Context, seasonID string) ([]ExternalEvent, error)
	FetchScores(ctx context.Context, seasonID string) ([]ExternalScore, error)
	FetchOdds(ctx context.Context, seasonID string) ([]ExternalOdds, error)
}

type ExternalEvent struct {
	ExternalID string
	Week       int
	HomeTeamID string
	AwayTeamID string
	StartAt    time.Time
}

type ExternalScore struct {
	EventExternalID string
	HomeScore       int
	AwayScore       int
	Final           bool
}

type ExternalOdds struct {
	EventExternalID string
	SpreadHome      float64
	SpreadAway      float64
}

type SyncConfig struct {
	Enabled bool
}

// SyncService ingests schedules, final scores, and point spreads from the
// upstream feed into league-local phases, events, outcomes, and odds.
type SyncService struct {
	provider  ScheduleProvider
	tx        TxRunner
	phaseRepo phase.Repository
	eventRepo event.Repository
	outRepo   outcome.Repository
	oddsRepo  odds.Repository
	cfg       SyncConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewSyncService(
	provider ScheduleProvider,
	tx TxRunner,
	phaseRepo phase.Repository,
	eventRepo event.Repository,
	outRepo outcome.Repository,
	oddsRepo odds.Repository,
	cfg SyncConfig,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SyncService{
		provider:  provider,
		tx:        tx,
		phaseRepo: phaseRepo,
		eventRepo: eventRepo,
		outRepo:   outRepo,
		oddsRepo:  oddsRepo,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *SyncService) ready() error {
	if !s.cfg.Enabled {
		return fmt.Errorf("%w: schedule sync is disabled (ESPN_ENABLED=false)", ErrDependencyUnavailable)
	}
	if s.provider == nil {
		return fmt.Errorf("%w: schedule provider is not configured", ErrDependencyUnavailable)
	}
	return nil
}

// SyncSchedule pulls the season schedule and upserts league-local phases
// and events. Each provider week becomes one phase whose pick lock is the
// earliest kickoff of that week.
func (s *SyncService) SyncSchedule(ctx context.Context, lg league.League) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncSchedule")
	defer span.End()

	if err := s.ready(); err != nil {
		return 0, err
	}

	items, err := s.provider.FetchSchedule(ctx, lg.SeasonID)
	if err != nil {
		return 0, fmt.Errorf("fetch schedule season=%s league=%s: %w", lg.SeasonID, lg.ID, err)
	}

	phases, events := mapExternalSchedule(lg, items)
	if len(events) == 0 {
		s.logger.WarnContext(ctx, "schedule sync returned no usable events",
			"league_id", lg.ID,
			"season_id", lg.SeasonID,
			"provider_count", len(items),
		)
		return 0, nil
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, q database.Querier) error {
		for _, ph := range phases {
			if err := s.phaseRepo.Upsert(ctx, q, ph); err != nil {
				return fmt.Errorf("upsert phase %s league=%s: %w", ph.ID, lg.ID, err)
			}
		}
		for _, ev := range events {
			if err := s.eventRepo.Upsert(ctx, q, ev); err != nil {
				return fmt.Errorf("upsert event %s league=%s: %w", ev.ID, lg.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(events), nil
}

// SyncScores pulls final scores and upserts outcomes for the league's most
// recent phase. Non-final scores are skipped; grading only ever sees
// finished games.
func (s *SyncService) SyncScores(ctx context.Context, lg league.League) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncScores")
	defer span.End()

	if err := s.ready(); err != nil {
		return 0, err
	}

	scores, err := s.provider.FetchScores(ctx, lg.SeasonID)
	if err != nil {
		return 0, fmt.Errorf("fetch scores season=%s league=%s: %w", lg.SeasonID, lg.ID, err)
	}

	count := 0
	err = s.tx.WithinTx(ctx, func(ctx context.Context, q database.Querier) error {
		known, err := s.currentPhaseEvents(ctx, q, lg.ID)
		if err != nil {
			return err
		}
		if len(known) == 0 {
			return nil
		}

		for _, item := range scores {
			if !item.Final {
				continue
			}
			eventID := buildEventPublicID(lg.ID, item.EventExternalID)
			if _, ok := known[eventID]; !ok {
				continue
			}
			row := outcome.Outcome{
				EventID:   eventID,
				HomeScore: item.HomeScore,
				AwayScore: item.AwayScore,
			}
			if err := s.outRepo.Upsert(ctx, q, row); err != nil {
				return fmt.Errorf("upsert outcome event=%s league=%s: %w", eventID, lg.ID, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// SyncOdds pulls point spreads for the league's open phase. Existing picks
// keep their frozen spread; fresh quotes only affect future submissions.
func (s *SyncService) SyncOdds(ctx context.Context, lg league.League) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.SyncOdds")
	defer span.End()

	if err := s.ready(); err != nil {
		return 0, err
	}
	if lg.PickType != league.PickTypeSpread {
		return 0, nil
	}

	quotes, err := s.provider.FetchOdds(ctx, lg.SeasonID)
	if err != nil {
		return 0, fmt.Errorf("fetch odds season=%s league=%s: %w", lg.SeasonID, lg.ID, err)
	}

	count := 0
	err = s.tx.WithinTx(ctx, func(ctx context.Context, q database.Querier) error {
		ph, exists, err := s.phaseRepo.CurrentOpen(ctx, q, lg.ID)
		if err != nil {
			return fmt.Errorf("resolve open phase league=%s: %w", lg.ID, err)
		}
		if !exists {
			return nil
		}
		events, err := s.eventRepo.ListByPhase(ctx, q, ph.ID)
		if err != nil {
			return fmt.Errorf("list events phase=%s league=%s: %w", ph.ID, lg.ID, err)
		}
		known := make(map[string]struct{}, len(events))
		for _, ev := range events {
			known[ev.ID] = struct{}{}
		}

		for _, item := range quotes {
			eventID := buildEventPublicID(lg.ID, item.EventExternalID)
			if _, ok := known[eventID]; !ok {
				continue
			}
			row := odds.Odds{
				EventID:    eventID,
				SpreadHome: item.SpreadHome,
				SpreadAway: item.SpreadAway,
			}
			if err := s.oddsRepo.Upsert(ctx, q, row); err != nil {
				return fmt.Errorf("upsert odds event=%s league=%s: %w", eventID, lg.ID, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (s *SyncService) currentPhaseEvents(ctx context.Context, q database.Querier, leagueID string) (map[string]struct{}, error) {
	ph, exists, err := s.phaseRepo.Current(ctx, q, leagueID)
	if err != nil {
		return nil, fmt.Errorf("resolve current phase league=%s: %w", leagueID, err)
	}
	if !exists {
		return nil, nil
	}
	events, err := s.eventRepo.ListByPhase(ctx, q, ph.ID)
	if err != nil {
		return nil, fmt.Errorf("list events phase=%s league=%s: %w", ph.ID, leagueID, err)
	}

	out := make(map[string]struct{}, len(events))
	for _, ev := range events {
		out[ev.ID] = struct{}{}
	}
	return out, nil
}

// mapExternalSchedule converts provider events into league-local phases
// and events. Rows with no external id, unknown teams, or a zero kickoff
// are dropped.
func mapExternalSchedule(lg league.League, items []ExternalEvent) ([]phase.Phase, []event.Event) {
	lockByWeek := make(map[int]time.Time)
	events := make([]event.Event, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.ExternalID) == "" || item.Week <= 0 || item.StartAt.IsZero() {
			continue
		}
		if strings.TrimSpace(item.HomeTeamID) == "" || strings.TrimSpace(item.AwayTeamID) == "" {
			continue
		}

		startAt := item.StartAt.UTC()
		if lock, ok := lockByWeek[item.Week]; !ok || startAt.Before(lock) {
			lockByWeek[item.Week] = startAt
		}

		events = append(events, event.Event{
			ID:         buildEventPublicID(lg.ID, item.ExternalID),
			PhaseID:    buildPhasePublicID(lg.ID, item.Week),
			HomeTeamID: strings.TrimSpace(item.HomeTeamID),
			AwayTeamID: strings.TrimSpace(item.AwayTeamID),
			StartAt:    startAt,
		})
	}

	phases := make([]phase.Phase, 0, len(lockByWeek))
	for week, lockAt := range lockByWeek {
		phases = append(phases, phase.Phase{
			ID:         buildPhasePublicID(lg.ID, week),
			LeagueID:   lg.ID,
			SeasonID:   lg.SeasonID,
			Name:       fmt.Sprintf("Week %d", week),
			PickLockAt: lockAt,
		})
	}
	sort.SliceStable(phases, func(i, j int) bool { return phases[i].PickLockAt.Before(phases[j].PickLockAt) })
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].StartAt.Equal(events[j].StartAt) {
			return events[i].StartAt.Before(events[j].StartAt)
		}
		return events[i].ID < events[j].ID
	})

	return phases, events
}

func buildEventPublicID(leagueID, externalID string) string {
	return sanitizePublicIDSegment(leagueID) + "-event-" + sanitizePublicIDSegment(externalID)
}

func buildPhasePublicID(leagueID string, week int) string {
	return fmt.Sprintf("%s-week-%d", sanitizePublicIDSegment(leagueID), week)
}

func sanitizePublicIDSegment(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "x"
	}

	var builder strings.Builder
	lastDash := false
	for _, r := range value {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			builder.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			builder.WriteByte('-')
			lastDash = true
		}
	}

	out := strings.Trim(builder.String(), "-")
	if out == "" {
		return "x"
	}
	return out
}
